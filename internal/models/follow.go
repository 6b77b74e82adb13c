package models

import "time"

// Follow represents a directed follower relationship between two profiles.
// The (follower, following) pair is unique; self-follows are rejected at
// the handler level.
type Follow struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	FollowerID  int64     `json:"follower_id" gorm:"index;uniqueIndex:idx_follower_following"`
	FollowingID int64     `json:"following_id" gorm:"index;uniqueIndex:idx_follower_following"`
	CreatedAt   time.Time `json:"created_at"`
}
