// Package store declares the storage contracts implemented by the postgres,
// memory and graph repositories.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/BloggingApp/microblog-service/internal/model"
	"github.com/google/uuid"
)

const MaxLimit = 50

var (
	ErrNotFound = errors.New("record not found")
	ErrConflict = errors.New("record already exists")
)

// UpdatableUserFields lists the columns accepted by User.UpdateByID.
var UpdatableUserFields = []string{"username", "email", "about_me"}

type User interface {
	Create(ctx context.Context, user model.User) (*model.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByEmailOrUsername(ctx context.Context, email string, username string) (*model.User, error)
	UpdateByID(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	UpdateLastSeen(ctx context.Context, id uuid.UUID, lastSeen time.Time) error
}

// Follower is the follow graph. FollowedIDs always contains the user itself
// so that a timeline built from it includes the user's own posts, and
// IsFollowing(a, a) is true although no a->a edge is ever stored.
// Follow(a, a) is a no-op.
type Follower interface {
	Follow(ctx context.Context, followerID uuid.UUID, followedID uuid.UUID) error
	Unfollow(ctx context.Context, followerID uuid.UUID, followedID uuid.UUID) error
	IsFollowing(ctx context.Context, followerID uuid.UUID, followedID uuid.UUID) (bool, error)
	FollowedIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
	FindFollowers(ctx context.Context, userID uuid.UUID, limit int, offset int) ([]*model.FullFollower, error)
	FindFollowing(ctx context.Context, userID uuid.UUID, limit int, offset int) ([]*model.FullFollower, error)
	CountFollowers(ctx context.Context, userID uuid.UUID) (int64, error)
	CountFollowing(ctx context.Context, userID uuid.UUID) (int64, error)
}

// Post lists are ordered by created_at descending, then id descending.
type Post interface {
	Create(ctx context.Context, post model.Post) (*model.Post, error)
	FindByAuthor(ctx context.Context, authorID uuid.UUID, limit int, offset int) ([]*model.FullPost, error)
	CountByAuthor(ctx context.Context, authorID uuid.UUID) (int64, error)
	FindByAuthors(ctx context.Context, authorIDs []uuid.UUID, limit int, offset int) ([]*model.FullPost, error)
	CountByAuthors(ctx context.Context, authorIDs []uuid.UUID) (int64, error)
	FindAll(ctx context.Context, limit int, offset int) ([]*model.FullPost, error)
	CountAll(ctx context.Context) (int64, error)
}

func MaximumLimit(l *int) {
	if *l > MaxLimit || *l <= 0 {
		*l = MaxLimit
	}
}

// WithSelf returns ids with userID added when it is missing.
func WithSelf(userID uuid.UUID, ids []uuid.UUID) []uuid.UUID {
	for _, id := range ids {
		if id == userID {
			return ids
		}
	}

	return append(ids, userID)
}
