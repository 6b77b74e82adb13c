package repositories

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"networking-hub/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.Profile{},
		&models.WorkExperience{},
		&models.Education{},
		&models.Follow{},
		&models.Post{},
		&models.Notification{},
		&models.NotificationLog{},
	))

	return db
}

func createProfile(t *testing.T, db *gorm.DB, userID int64, name string) {
	t.Helper()
	require.NoError(t, db.Create(&models.Profile{
		UserID:    userID,
		FirstName: name,
		Skills:    "[]",
		IsPublic:  true,
	}).Error)
}
