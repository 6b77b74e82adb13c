package repositories

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"networking-hub/internal/models"
)

func TestSaveCreatesProfileWithChildren(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresProfileRepository(db)

	profile := &models.Profile{
		UserID:       7,
		FirstName:    "Анна",
		Bio:          "Go разработчик",
		Skills:       `["go","postgres"]`,
		LanguageCode: "ru",
	}
	experience := []models.WorkExperience{
		{JobTitle: "Backend Engineer", Company: "Acme", IsCurrent: true},
		{JobTitle: "Intern", Company: "Startup"},
	}
	education := []models.Education{
		{Institution: "МГУ", Degree: "Бакалавр", FieldOfStudy: "CS"},
	}

	require.NoError(t, repo.Save(profile, experience, education))

	got, err := repo.GetByID(7)
	require.NoError(t, err)
	assert.Equal(t, "Анна", got.FirstName)
	assert.Equal(t, `["go","postgres"]`, got.Skills)
	assert.Len(t, got.Experience, 2)
	assert.Len(t, got.Education, 1)
}

func TestSaveReplacesChildrenExactly(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresProfileRepository(db)

	profile := &models.Profile{UserID: 7, FirstName: "Анна", Skills: "[]"}
	require.NoError(t, repo.Save(profile,
		[]models.WorkExperience{{JobTitle: "Old Job", Company: "Old Co"}},
		[]models.Education{{Institution: "Old School"}},
	))

	require.NoError(t, repo.Save(profile,
		[]models.WorkExperience{{JobTitle: "New Job", Company: "New Co"}},
		nil,
	))

	got, err := repo.GetByID(7)
	require.NoError(t, err)
	require.Len(t, got.Experience, 1)
	assert.Equal(t, "New Job", got.Experience[0].JobTitle)
	assert.Empty(t, got.Education)
}

func TestSaveTruncatesOversizedLists(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresProfileRepository(db)

	var experience []models.WorkExperience
	for i := 0; i < models.MaxExperienceEntries+3; i++ {
		experience = append(experience, models.WorkExperience{JobTitle: fmt.Sprintf("Job %d", i)})
	}
	var education []models.Education
	for i := 0; i < models.MaxEducationEntries+2; i++ {
		education = append(education, models.Education{Institution: fmt.Sprintf("School %d", i)})
	}

	profile := &models.Profile{UserID: 7, FirstName: "Анна", Skills: "[]"}
	require.NoError(t, repo.Save(profile, experience, education))

	got, err := repo.GetByID(7)
	require.NoError(t, err)
	assert.Len(t, got.Experience, models.MaxExperienceEntries)
	assert.Len(t, got.Education, models.MaxEducationEntries)
}

func TestSavePreservesPhotoAndSettings(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresProfileRepository(db)

	profile := &models.Profile{UserID: 7, FirstName: "Анна", PhotoPath: "uploads/7.jpg", Skills: "[]"}
	require.NoError(t, repo.Save(profile, nil, nil))

	require.NoError(t, repo.UpdateTheme(7, "dark"))
	require.NoError(t, repo.UpdateStatus(7, "hiring"))

	// a later save without a new photo keeps the stored one and leaves
	// settings endpoints' columns alone
	update := &models.Profile{UserID: 7, FirstName: "Анна Новая", Skills: "[]"}
	require.NoError(t, repo.Save(update, nil, nil))

	got, err := repo.GetByID(7)
	require.NoError(t, err)
	assert.Equal(t, "Анна Новая", got.FirstName)
	assert.Equal(t, "uploads/7.jpg", got.PhotoPath)
	assert.Equal(t, "dark", got.Theme)
	assert.Equal(t, "hiring", got.Status)
}

func TestDeleteCascades(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresProfileRepository(db)
	followRepo := NewPostgresFollowRepository(db)

	profile := &models.Profile{UserID: 7, FirstName: "Анна", Skills: "[]"}
	require.NoError(t, repo.Save(profile,
		[]models.WorkExperience{{JobTitle: "Job"}},
		[]models.Education{{Institution: "School"}},
	))
	createProfile(t, db, 8, "Борис")

	_, err := followRepo.CreateFollow(7, 8)
	require.NoError(t, err)
	_, err = followRepo.CreateFollow(8, 7)
	require.NoError(t, err)

	require.NoError(t, db.Create(&models.Post{UserID: 7, PostType: "looking", Content: "ищу команду", SkillTags: "[]"}).Error)
	require.NoError(t, db.Create(&models.Notification{RecipientID: 7, Kind: models.KindFollow, ActorID: 8, Message: "x"}).Error)
	require.NoError(t, db.Create(&models.NotificationLog{UserID: 7, Date: "2026-08-31", Kind: models.KindSkillMatch, Count: 2}).Error)

	require.NoError(t, repo.Delete(7))

	_, err = repo.GetByID(7)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	var count int64
	db.Model(&models.WorkExperience{}).Where("user_id = ?", 7).Count(&count)
	assert.Zero(t, count)
	db.Model(&models.Post{}).Where("user_id = ?", 7).Count(&count)
	assert.Zero(t, count)
	db.Model(&models.Notification{}).Where("recipient_id = ?", 7).Count(&count)
	assert.Zero(t, count)
	db.Model(&models.NotificationLog{}).Where("user_id = ?", 7).Count(&count)
	assert.Zero(t, count)

	following, err := followRepo.IsFollowing(8, 7)
	require.NoError(t, err)
	assert.False(t, following)

	// the other profile is untouched
	_, err = repo.GetByID(8)
	assert.NoError(t, err)
}

func TestDeleteMissingProfile(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresProfileRepository(db)

	assert.ErrorIs(t, repo.Delete(404), gorm.ErrRecordNotFound)
}

func TestDirectoryFiltersAndRanksJobs(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresProfileRepository(db)

	// caller, must be excluded
	require.NoError(t, repo.Save(&models.Profile{UserID: 1, FirstName: "Я", Bio: "здесь", Skills: "[]"}, nil, nil))

	// filled-in profile with two jobs, the current one wins
	require.NoError(t, repo.Save(
		&models.Profile{UserID: 2, FirstName: "Анна", Bio: "Go разработчик", Skills: `["go"]`},
		[]models.WorkExperience{
			{JobTitle: "Old Job", Company: "Old Co"},
			{JobTitle: "Current Job", Company: "New Co", IsCurrent: true},
		},
		nil,
	))

	// empty profile, filtered out
	createProfile(t, db, 3, "")

	// filled-in but private, filtered out
	require.NoError(t, repo.Save(&models.Profile{UserID: 4, FirstName: "Скрытый", Bio: "тайна", Skills: "[]"}, nil, nil))
	require.NoError(t, db.Model(&models.Profile{}).Where("user_id = ?", 4).Update("is_public", false).Error)

	entries, err := repo.Directory(1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, int64(2), entries[0].UserID)
	assert.Equal(t, "Current Job", entries[0].JobTitle)
	assert.Equal(t, "New Co", entries[0].Company)
}
