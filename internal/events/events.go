// Package events publishes domain events for other services (notifications,
// search indexing) to consume.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

const (
	FOLLOWS_QUEUE              = "follows"
	NEW_POST_QUEUE             = "posts.new"
	USER_FORGOT_PASSWORD_QUEUE = "user-forgot-password"
)

// Queues lists every queue the service publishes to.
var Queues = []string{FOLLOWS_QUEUE, NEW_POST_QUEUE, USER_FORGOT_PASSWORD_QUEUE}

type Publisher interface {
	Publish(ctx context.Context, queue string, body []byte) error
	Close() error
}

type FollowEvent struct {
	FollowerID uuid.UUID `json:"follower_id"`
	FollowedID uuid.UUID `json:"followed_id"`
	Following  bool      `json:"following"`
	At         time.Time `json:"at"`
}

type NewPostEvent struct {
	PostID    uuid.UUID `json:"post_id"`
	AuthorID  uuid.UUID `json:"author_id"`
	Body      string    `json:"body"`
	Language  string    `json:"language"`
	CreatedAt time.Time `json:"created_at"`
}

type PasswordResetEvent struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Token    string `json:"token"`
}

func PublishJSON(ctx context.Context, p Publisher, queue string, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return err
	}

	return p.Publish(ctx, queue, body)
}

// Noop drops every event. Used when no broker is configured.
type Noop struct{}

func (Noop) Publish(ctx context.Context, queue string, body []byte) error {
	return nil
}

func (Noop) Close() error {
	return nil
}
