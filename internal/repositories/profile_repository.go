package repositories

import (
	"time"

	"gorm.io/gorm"

	"networking-hub/internal/models"
)

// ProfileRepository defines the interface for profile data operations
type ProfileRepository interface {
	GetByID(userID int64) (*models.Profile, error)
	Save(profile *models.Profile, experience []models.WorkExperience, education []models.Education) error
	UpdateLanguage(userID int64, lang string) error
	UpdateTheme(userID int64, theme string) error
	UpdateCustomTheme(userID int64, customThemeJSON string) error
	UpdateGlass(userID int64, enabled bool) error
	UpdateStatus(userID int64, status string) error
	TouchLastSeen(userID int64) error
	Delete(userID int64) error
	Directory(excludeUserID int64) ([]models.DirectoryEntry, error)
	GetProfilesWithSkills() ([]models.Profile, error)
	Count() (int64, error)
}

// PostgresProfileRepository implements ProfileRepository for PostgreSQL
type PostgresProfileRepository struct {
	db *gorm.DB
}

// NewPostgresProfileRepository creates a new PostgresProfileRepository
func NewPostgresProfileRepository(db *gorm.DB) *PostgresProfileRepository {
	return &PostgresProfileRepository{db: db}
}

func (r *PostgresProfileRepository) GetByID(userID int64) (*models.Profile, error) {
	var profile models.Profile
	err := r.db.Preload("Experience", func(db *gorm.DB) *gorm.DB {
		return db.Order("id DESC")
	}).Preload("Education", func(db *gorm.DB) *gorm.DB {
		return db.Order("id DESC")
	}).First(&profile, "user_id = ?", userID).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// Save upserts the profile row and replaces its work-history and
// education lists wholesale, all inside one transaction so a concurrent
// reader never observes the transient empty state between delete and
// reinsert. Lists longer than their caps are truncated.
func (r *PostgresProfileRepository) Save(profile *models.Profile, experience []models.WorkExperience, education []models.Education) error {
	if len(experience) > models.MaxExperienceEntries {
		experience = experience[:models.MaxExperienceEntries]
	}
	if len(education) > models.MaxEducationEntries {
		education = education[:models.MaxEducationEntries]
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		var existing models.Profile
		err := tx.Select("user_id", "photo_path").First(&existing, "user_id = ?", profile.UserID).Error
		switch {
		case err == gorm.ErrRecordNotFound:
			if err := tx.Omit("Experience", "Education").Create(profile).Error; err != nil {
				return err
			}
		case err != nil:
			return err
		default:
			if profile.PhotoPath == "" {
				profile.PhotoPath = existing.PhotoPath
			}
			// Theme, glass and status are managed by their own endpoints.
			updates := map[string]interface{}{
				"first_name":    profile.FirstName,
				"bio":           profile.Bio,
				"link1":         profile.Link1,
				"link2":         profile.Link2,
				"link3":         profile.Link3,
				"link4":         profile.Link4,
				"link5":         profile.Link5,
				"photo_path":    profile.PhotoPath,
				"skills":        profile.Skills,
				"language_code": profile.LanguageCode,
			}
			if err := tx.Model(&models.Profile{}).Where("user_id = ?", profile.UserID).Updates(updates).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("user_id = ?", profile.UserID).Delete(&models.WorkExperience{}).Error; err != nil {
			return err
		}
		for i := range experience {
			experience[i].ID = 0
			experience[i].UserID = profile.UserID
		}
		if len(experience) > 0 {
			if err := tx.Create(&experience).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("user_id = ?", profile.UserID).Delete(&models.Education{}).Error; err != nil {
			return err
		}
		for i := range education {
			education[i].ID = 0
			education[i].UserID = profile.UserID
		}
		if len(education) > 0 {
			if err := tx.Create(&education).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

func (r *PostgresProfileRepository) UpdateLanguage(userID int64, lang string) error {
	return r.db.Model(&models.Profile{}).Where("user_id = ?", userID).Update("language_code", lang).Error
}

func (r *PostgresProfileRepository) UpdateTheme(userID int64, theme string) error {
	return r.db.Model(&models.Profile{}).Where("user_id = ?", userID).Update("theme", theme).Error
}

func (r *PostgresProfileRepository) UpdateCustomTheme(userID int64, customThemeJSON string) error {
	return r.db.Model(&models.Profile{}).Where("user_id = ?", userID).Updates(map[string]interface{}{
		"theme":        "custom",
		"custom_theme": customThemeJSON,
	}).Error
}

func (r *PostgresProfileRepository) UpdateGlass(userID int64, enabled bool) error {
	return r.db.Model(&models.Profile{}).Where("user_id = ?", userID).Update("glass_enabled", enabled).Error
}

func (r *PostgresProfileRepository) UpdateStatus(userID int64, status string) error {
	return r.db.Model(&models.Profile{}).Where("user_id = ?", userID).Update("status", status).Error
}

func (r *PostgresProfileRepository) TouchLastSeen(userID int64) error {
	now := time.Now().UTC()
	return r.db.Model(&models.Profile{}).Where("user_id = ?", userID).Update("last_seen", now).Error
}

// Delete removes the profile and cascades to follows, posts and
// notifications that reference it.
func (r *PostgresProfileRepository) Delete(userID int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.WorkExperience{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.Education{}).Error; err != nil {
			return err
		}
		if err := tx.Where("follower_id = ? OR following_id = ?", userID, userID).Delete(&models.Follow{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.Post{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipient_id = ?", userID).Delete(&models.Notification{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.NotificationLog{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Profile{}, "user_id = ?", userID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// Directory returns every filled-in public profile except the caller's,
// each with its most recent job (current job first, then newest).
func (r *PostgresProfileRepository) Directory(excludeUserID int64) ([]models.DirectoryEntry, error) {
	var entries []models.DirectoryEntry
	err := r.db.Raw(`
		SELECT
			p.user_id, p.first_name, p.bio, p.photo_path, p.skills,
			p.language_code, p.status, p.last_seen,
			COALESCE(we.job_title, '') AS job_title,
			COALESCE(we.company, '') AS company
		FROM profiles p
		LEFT JOIN (
			SELECT user_id, job_title, company
			FROM (
				SELECT user_id, job_title, company,
					ROW_NUMBER() OVER (
						PARTITION BY user_id
						ORDER BY is_current DESC, id DESC
					) AS rn
				FROM work_experiences
			) ranked_jobs
			WHERE rn = 1
		) we ON p.user_id = we.user_id
		WHERE p.user_id != ?
			AND p.is_public
			AND (
				(p.bio IS NOT NULL AND p.bio != '') OR
				(p.photo_path IS NOT NULL AND p.photo_path != '') OR
				(p.skills IS NOT NULL AND p.skills != '[]')
			)
	`, excludeUserID).Scan(&entries).Error
	return entries, err
}

func (r *PostgresProfileRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Profile{}).Count(&count).Error
	return count, err
}

// GetProfilesWithSkills returns profiles that declare at least one
// skill, for skill-match audience computation.
func (r *PostgresProfileRepository) GetProfilesWithSkills() ([]models.Profile, error) {
	var profiles []models.Profile
	err := r.db.Where("skills IS NOT NULL AND skills != '' AND skills != '[]'").Find(&profiles).Error
	return profiles, err
}
