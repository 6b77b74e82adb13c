package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"networking-hub/internal/repositories"
)

func newFollowHandler(env *testEnv) (*FollowHandler, repositories.FollowRepository) {
	followRepo := repositories.NewPostgresFollowRepository(env.db)
	return NewFollowHandler(
		followRepo,
		repositories.NewPostgresProfileRepository(env.db),
		idleDispatcher(),
	), followRepo
}

func TestFollowUser(t *testing.T) {
	env := newTestEnv(t)
	h, followRepo := newFollowHandler(env)
	env.seedProfile(t, 1, "Анна")
	env.seedProfile(t, 2, "Борис")

	c, rec := env.request(http.MethodPost, "/api/v1/users/2/follow", "", 1)
	c.SetParamNames("id")
	c.SetParamValues("2")

	require.NoError(t, h.FollowUser(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	following, err := followRepo.IsFollowing(1, 2)
	require.NoError(t, err)
	assert.True(t, following)
}

func TestFollowSelf(t *testing.T) {
	env := newTestEnv(t)
	h, _ := newFollowHandler(env)
	env.seedProfile(t, 1, "Анна")

	c, _ := env.request(http.MethodPost, "/api/v1/users/1/follow", "", 1)
	c.SetParamNames("id")
	c.SetParamValues("1")

	err := h.FollowUser(c)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, httpCode(t, err))
}

func TestFollowMissingTarget(t *testing.T) {
	env := newTestEnv(t)
	h, _ := newFollowHandler(env)
	env.seedProfile(t, 1, "Анна")

	c, _ := env.request(http.MethodPost, "/api/v1/users/404/follow", "", 1)
	c.SetParamNames("id")
	c.SetParamValues("404")

	err := h.FollowUser(c)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, httpCode(t, err))
}

func TestUnfollowUser(t *testing.T) {
	env := newTestEnv(t)
	h, followRepo := newFollowHandler(env)
	env.seedProfile(t, 1, "Анна")
	env.seedProfile(t, 2, "Борис")

	_, err := followRepo.CreateFollow(1, 2)
	require.NoError(t, err)

	c, rec := env.request(http.MethodDelete, "/api/v1/users/2/follow", "", 1)
	c.SetParamNames("id")
	c.SetParamValues("2")

	require.NoError(t, h.UnfollowUser(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	following, err := followRepo.IsFollowing(1, 2)
	require.NoError(t, err)
	assert.False(t, following)

	// unfollowing again is a quiet no-op
	c, rec = env.request(http.MethodDelete, "/api/v1/users/2/follow", "", 1)
	c.SetParamNames("id")
	c.SetParamValues("2")
	require.NoError(t, h.UnfollowUser(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}
