// Package memory keeps users, posts and the follow graph in process memory.
// It backs the "memory" storage driver and doubles as the fake store in tests.
package memory

import (
	"sync"
	"time"

	"github.com/BloggingApp/microblog-service/internal/model"
	"github.com/BloggingApp/microblog-service/internal/repository/store"
	"github.com/google/uuid"
)

type Storage struct {
	mu sync.RWMutex

	users map[uuid.UUID]*model.User
	// follower id -> set of followed ids
	edges map[uuid.UUID]map[uuid.UUID]struct{}
	posts []*model.Post

	now      func() time.Time
	lastPost time.Time
}

type Option func(*Storage)

// WithClock replaces time.Now as the source of post timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Storage) {
		s.now = now
	}
}

func New(opts ...Option) *Storage {
	s := &Storage{
		users: make(map[uuid.UUID]*model.User),
		edges: make(map[uuid.UUID]map[uuid.UUID]struct{}),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Storage) Users() store.User {
	return (*userRepo)(s)
}

func (s *Storage) Followers() store.Follower {
	return (*followerRepo)(s)
}

func (s *Storage) Posts() store.Post {
	return (*postRepo)(s)
}

func clampWindow(n int, limit int, offset int) (int, int) {
	if offset < 0 {
		offset = 0
	}
	if offset >= n {
		return n, n
	}
	end := offset + limit
	if limit <= 0 || end > n {
		end = n
	}
	return offset, end
}
