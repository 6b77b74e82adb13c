package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"networking-hub/internal/models"
	"networking-hub/internal/repositories"
)

func newNotificationHandler(env *testEnv) *NotificationHandler {
	return NewNotificationHandler(repositories.NewPostgresNotificationRepository(env.db))
}

func seedNotifications(t *testing.T, env *testEnv, recipientID int64, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		require.NoError(t, env.db.Create(&models.Notification{
			RecipientID: recipientID,
			Kind:        models.KindFollow,
			ActorID:     int64(100 + i),
			Message:     fmt.Sprintf("уведомление %d", i),
		}).Error)
	}
}

func TestGetNotificationsPaginationMeta(t *testing.T) {
	env := newTestEnv(t)
	h := newNotificationHandler(env)
	seedNotifications(t, env, 1, 5)

	c, rec := env.request(http.MethodGet, "/api/v1/notifications?page=2&limit=2", "", 1)
	require.NoError(t, h.GetNotifications(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data struct {
			Notifications []models.Notification `json:"notifications"`
		} `json:"data"`
		Meta struct {
			CurrentPage     int   `json:"currentPage"`
			TotalPages      int   `json:"totalPages"`
			TotalItems      int64 `json:"totalItems"`
			ItemsPerPage    int   `json:"itemsPerPage"`
			HasNextPage     bool  `json:"hasNextPage"`
			HasPreviousPage bool  `json:"hasPreviousPage"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Data.Notifications, 2)
	assert.Equal(t, 2, resp.Meta.CurrentPage)
	assert.Equal(t, 3, resp.Meta.TotalPages)
	assert.Equal(t, int64(5), resp.Meta.TotalItems)
	assert.True(t, resp.Meta.HasNextPage)
	assert.True(t, resp.Meta.HasPreviousPage)
}

func TestGetNotificationsClampsBadParams(t *testing.T) {
	env := newTestEnv(t)
	h := newNotificationHandler(env)
	seedNotifications(t, env, 1, 1)

	c, rec := env.request(http.MethodGet, "/api/v1/notifications?page=-3&limit=9000", "", 1)
	require.NoError(t, h.GetNotifications(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Meta struct {
			CurrentPage  int `json:"currentPage"`
			ItemsPerPage int `json:"itemsPerPage"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Meta.CurrentPage)
	assert.Equal(t, 20, resp.Meta.ItemsPerPage)
}

func TestUnreadCountAndReadAll(t *testing.T) {
	env := newTestEnv(t)
	h := newNotificationHandler(env)
	seedNotifications(t, env, 1, 3)
	seedNotifications(t, env, 2, 1)

	c, rec := env.request(http.MethodGet, "/api/v1/notifications/unread-count", "", 1)
	require.NoError(t, h.GetUnreadCount(c))
	assert.Contains(t, rec.Body.String(), `"count":3`)

	c, rec = env.request(http.MethodPut, "/api/v1/notifications/read-all", "", 1)
	require.NoError(t, h.MarkAllAsRead(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	c, rec = env.request(http.MethodGet, "/api/v1/notifications/unread-count", "", 1)
	require.NoError(t, h.GetUnreadCount(c))
	assert.Contains(t, rec.Body.String(), `"count":0`)

	// the other recipient's inbox is untouched
	c, rec = env.request(http.MethodGet, "/api/v1/notifications/unread-count", "", 2)
	require.NoError(t, h.GetUnreadCount(c))
	assert.Contains(t, rec.Body.String(), `"count":1`)
}
