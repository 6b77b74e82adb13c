package repositories

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"networking-hub/internal/models"
)

var errCapReached = errors.New("daily cap reached")

// NotificationRepository defines the interface for notification
// operations, including the per-day delivery log behind the cap.
type NotificationRepository interface {
	CreateNotification(notification *models.Notification) error
	GetByRecipientID(recipientID int64, page, limit int) ([]models.Notification, int64, error)
	GetUnread(recipientID int64, limit int) ([]models.Notification, error)
	GetUnreadCount(recipientID int64) (int64, error)
	MarkAllAsRead(recipientID int64) error

	ReserveDailySlot(userID int64, date string, kind models.NotificationKind, cap int) (bool, error)
	DailyCount(userID int64, date string, kind models.NotificationKind) (int, error)
}

type postgresNotificationRepository struct {
	db *gorm.DB
}

// NewPostgresNotificationRepository creates a new notification repository
func NewPostgresNotificationRepository(db *gorm.DB) NotificationRepository {
	return &postgresNotificationRepository{db: db}
}

func (r *postgresNotificationRepository) CreateNotification(notification *models.Notification) error {
	return r.db.Create(notification).Error
}

func (r *postgresNotificationRepository) GetByRecipientID(recipientID int64, page, limit int) ([]models.Notification, int64, error) {
	var notifications []models.Notification
	var total int64

	if err := r.db.Model(&models.Notification{}).Where("recipient_id = ?", recipientID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := r.db.Where("recipient_id = ?", recipientID).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&notifications).Error

	return notifications, total, err
}

func (r *postgresNotificationRepository) GetUnread(recipientID int64, limit int) ([]models.Notification, error) {
	var notifications []models.Notification
	err := r.db.Where("recipient_id = ? AND is_read = ?", recipientID, false).
		Order("created_at DESC").
		Limit(limit).
		Find(&notifications).Error
	return notifications, err
}

func (r *postgresNotificationRepository) GetUnreadCount(recipientID int64) (int64, error) {
	var count int64
	err := r.db.Model(&models.Notification{}).Where("recipient_id = ? AND is_read = ?", recipientID, false).Count(&count).Error
	return count, err
}

func (r *postgresNotificationRepository) MarkAllAsRead(recipientID int64) error {
	return r.db.Model(&models.Notification{}).Where("recipient_id = ? AND is_read = ?", recipientID, false).Update("is_read", true).Error
}

// ReserveDailySlot atomically increments the (user, date, type) delivery
// counter if it is still below cap, and reports whether a slot was
// taken. The row lock closes the race between concurrent posts matching
// the same recipient. A reserved slot is kept even if the send later
// fails: under-notifying beats double counting.
func (r *postgresNotificationRepository) ReserveDailySlot(userID int64, date string, kind models.NotificationKind, cap int) (bool, error) {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var entry models.NotificationLog
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ? AND date = ? AND type = ?", userID, date, kind).
			First(&entry).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			entry = models.NotificationLog{UserID: userID, Date: date, Kind: kind, Count: 1}
			return tx.Create(&entry).Error
		}
		if err != nil {
			return err
		}
		if entry.Count >= cap {
			return errCapReached
		}
		return tx.Model(&entry).Update("count", entry.Count+1).Error
	})
	if errors.Is(err, errCapReached) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *postgresNotificationRepository) DailyCount(userID int64, date string, kind models.NotificationKind) (int, error) {
	var entry models.NotificationLog
	err := r.db.Where("user_id = ? AND date = ? AND type = ?", userID, date, kind).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return entry.Count, nil
}
