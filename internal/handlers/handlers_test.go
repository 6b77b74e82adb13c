package handlers

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"networking-hub/internal/middleware"
	"networking-hub/internal/models"
	"networking-hub/internal/notify"
	"networking-hub/validators"
)

// testEnv bundles an in-memory database and a configured echo instance.
type testEnv struct {
	db *gorm.DB
	e  *echo.Echo
}

func newTestEnv(t *testing.T) *testEnv {
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

	e := echo.New()
	e.Validator = validators.NewValidator()

	return &testEnv{db: db, e: e}
}

// request builds an authenticated echo context the way the auth
// middleware leaves it: with the caller's user ID set.
func (env *testEnv) request(method, target string, body string, userID int64) (echo.Context, *httptest.ResponseRecorder) {
	httpReq := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		httpReq.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := env.e.NewContext(httpReq, rec)
	c.Set(middleware.ContextUserIDKey, userID)
	return c, rec
}

func (env *testEnv) seedProfile(t *testing.T, userID int64, name string) {
	t.Helper()
	require.NoError(t, env.db.Create(&models.Profile{
		UserID:    userID,
		FirstName: name,
		Skills:    "[]",
		IsPublic:  true,
	}).Error)
}

func (env *testEnv) seedPost(t *testing.T, userID int64, content string) uint {
	t.Helper()
	post := models.Post{UserID: userID, PostType: "looking", Content: content, SkillTags: "[]"}
	require.NoError(t, env.db.Create(&post).Error)
	return post.PostID
}

// idleDispatcher enqueues without a running worker pool, which is all
// the handler paths need.
func idleDispatcher() *notify.Dispatcher {
	return notify.NewDispatcher(nil, nil, nil, nil, notify.LinkBuilder{}, zap.NewNop())
}

func httpCode(t *testing.T, err error) int {
	t.Helper()
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected *echo.HTTPError, got %v", err)
	return he.Code
}
