package repositories

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"networking-hub/internal/models"
)

func TestReserveDailySlotEnforcesCap(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresNotificationRepository(db)

	const day = "2026-08-31"

	for i := 0; i < models.SkillMatchDailyCap; i++ {
		ok, err := repo.ReserveDailySlot(7, day, models.KindSkillMatch, models.SkillMatchDailyCap)
		require.NoError(t, err)
		assert.True(t, ok, "reservation %d should fit under the cap", i+1)
	}

	ok, err := repo.ReserveDailySlot(7, day, models.KindSkillMatch, models.SkillMatchDailyCap)
	require.NoError(t, err)
	assert.False(t, ok, "reservation past the cap must be rejected")

	count, err := repo.DailyCount(7, day, models.KindSkillMatch)
	require.NoError(t, err)
	assert.Equal(t, models.SkillMatchDailyCap, count)
}

func TestReserveDailySlotIsScopedPerUserDateAndKind(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresNotificationRepository(db)

	for i := 0; i < models.SkillMatchDailyCap; i++ {
		ok, err := repo.ReserveDailySlot(7, "2026-08-31", models.KindSkillMatch, models.SkillMatchDailyCap)
		require.NoError(t, err)
		require.True(t, ok)
	}

	// another user, the next day and another kind all have fresh slots
	ok, err := repo.ReserveDailySlot(8, "2026-08-31", models.KindSkillMatch, models.SkillMatchDailyCap)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.ReserveDailySlot(7, "2026-09-01", models.KindSkillMatch, models.SkillMatchDailyCap)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.ReserveDailySlot(7, "2026-08-31", models.KindFollow, models.SkillMatchDailyCap)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestUnreadCountAndMarkAllAsRead(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresNotificationRepository(db)

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.CreateNotification(&models.Notification{
			RecipientID: 7,
			Kind:        models.KindFollow,
			ActorID:     int64(100 + i),
			Message:     fmt.Sprintf("подписчик %d", i),
		}))
	}
	require.NoError(t, repo.CreateNotification(&models.Notification{
		RecipientID: 8,
		Kind:        models.KindFollow,
		ActorID:     1,
		Message:     "чужое уведомление",
	}))

	count, err := repo.GetUnreadCount(7)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	require.NoError(t, repo.MarkAllAsRead(7))

	count, err = repo.GetUnreadCount(7)
	require.NoError(t, err)
	assert.Zero(t, count)

	// the other recipient's inbox is untouched
	count, err = repo.GetUnreadCount(8)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestGetByRecipientIDPaginates(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresNotificationRepository(db)

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		require.NoError(t, db.Create(&models.Notification{
			RecipientID: 7,
			Kind:        models.KindSkillMatch,
			ActorID:     1,
			Message:     fmt.Sprintf("пост %d", i),
			CreatedAt:   base.Add(time.Duration(i) * time.Minute),
		}).Error)
	}

	page1, total, err := repo.GetByRecipientID(7, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	require.Len(t, page1, 2)
	assert.Equal(t, "пост 4", page1[0].Message, "newest first")

	page3, total, err := repo.GetByRecipientID(7, 3, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Len(t, page3, 1)
}
