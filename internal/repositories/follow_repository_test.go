package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateFollowIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresFollowRepository(db)

	created, err := repo.CreateFollow(1, 2)
	require.NoError(t, err)
	assert.True(t, created)

	// second follow of the same pair does not create a new edge
	created, err = repo.CreateFollow(1, 2)
	require.NoError(t, err)
	assert.False(t, created)

	count, err := repo.GetFollowersCount(2)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestIsFollowingAndCounts(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresFollowRepository(db)

	_, err := repo.CreateFollow(1, 2)
	require.NoError(t, err)
	_, err = repo.CreateFollow(3, 2)
	require.NoError(t, err)
	_, err = repo.CreateFollow(1, 3)
	require.NoError(t, err)

	following, err := repo.IsFollowing(1, 2)
	require.NoError(t, err)
	assert.True(t, following)

	following, err = repo.IsFollowing(2, 1)
	require.NoError(t, err)
	assert.False(t, following)

	followers, err := repo.GetFollowersCount(2)
	require.NoError(t, err)
	assert.Equal(t, int64(2), followers)

	followingCount, err := repo.GetFollowingCount(1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), followingCount)

	ids, err := repo.GetFollowerIDs(2)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{1, 3}, ids)
}

func TestDeleteFollow(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresFollowRepository(db)

	_, err := repo.CreateFollow(1, 2)
	require.NoError(t, err)

	require.NoError(t, repo.DeleteFollow(1, 2))

	following, err := repo.IsFollowing(1, 2)
	require.NoError(t, err)
	assert.False(t, following)

	// unfollowing a pair that does not exist is a no-op
	require.NoError(t, repo.DeleteFollow(1, 2))
}
