package model

import "github.com/google/uuid"

// Follower is a directed edge: FollowerID wants to see FollowedID's posts.
type Follower struct {
	FollowerID uuid.UUID `json:"follower_id"`
	FollowedID uuid.UUID `json:"followed_id"`
}

type FullFollower struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"-"`
	AboutMe  *string   `json:"about_me"`
}
