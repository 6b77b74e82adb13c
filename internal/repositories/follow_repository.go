package repositories

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"networking-hub/internal/models"
)

// FollowRepository defines the interface for follow data operations
type FollowRepository interface {
	CreateFollow(followerID, followingID int64) (created bool, err error)
	DeleteFollow(followerID, followingID int64) error
	IsFollowing(followerID, followingID int64) (bool, error)
	GetFollowerIDs(userID int64) ([]int64, error)
	GetFollowersCount(userID int64) (int64, error)
	GetFollowingCount(userID int64) (int64, error)
	Count() (int64, error)
}

// PostgresFollowRepository implements FollowRepository for PostgreSQL
type PostgresFollowRepository struct {
	db *gorm.DB
}

// NewPostgresFollowRepository creates a new PostgresFollowRepository
func NewPostgresFollowRepository(db *gorm.DB) *PostgresFollowRepository {
	return &PostgresFollowRepository{db: db}
}

// CreateFollow inserts the follow edge if it does not exist yet.
// Re-following is a no-op, reported via created=false so callers can
// skip the notification.
func (r *PostgresFollowRepository) CreateFollow(followerID, followingID int64) (bool, error) {
	follow := models.Follow{FollowerID: followerID, FollowingID: followingID}
	res := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "follower_id"}, {Name: "following_id"}},
		DoNothing: true,
	}).Create(&follow)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// DeleteFollow removes the edge; removing a missing edge is a no-op.
func (r *PostgresFollowRepository) DeleteFollow(followerID, followingID int64) error {
	return r.db.Where("follower_id = ? AND following_id = ?", followerID, followingID).Delete(&models.Follow{}).Error
}

func (r *PostgresFollowRepository) IsFollowing(followerID, followingID int64) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Follow{}).Where("follower_id = ? AND following_id = ?", followerID, followingID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *PostgresFollowRepository) GetFollowerIDs(userID int64) ([]int64, error) {
	var ids []int64
	err := r.db.Model(&models.Follow{}).Where("following_id = ?", userID).Pluck("follower_id", &ids).Error
	return ids, err
}

func (r *PostgresFollowRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Follow{}).Count(&count).Error
	return count, err
}

func (r *PostgresFollowRepository) GetFollowersCount(userID int64) (int64, error) {
	var count int64
	err := r.db.Model(&models.Follow{}).Where("following_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *PostgresFollowRepository) GetFollowingCount(userID int64) (int64, error) {
	var count int64
	err := r.db.Model(&models.Follow{}).Where("follower_id = ?", userID).Count(&count).Error
	return count, err
}
