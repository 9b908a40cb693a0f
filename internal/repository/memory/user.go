package memory

import (
	"context"
	"strings"
	"time"

	"github.com/BloggingApp/microblog-service/internal/model"
	"github.com/BloggingApp/microblog-service/internal/repository/store"
	"github.com/google/uuid"
)

type userRepo Storage

func (r *userRepo) Create(ctx context.Context, user model.User) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Username == user.Username || strings.EqualFold(u.Email, user.Email) {
			return nil, store.ErrConflict
		}
	}

	user.ID = uuid.New()
	user.CreatedAt = r.now().UTC()
	user.LastSeen = user.CreatedAt
	stored := user
	r.users[user.ID] = &stored

	return &user, nil
}

func (r *userRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}

	found := *user
	return &found, nil
}

func (r *userRepo) find(match func(u *model.User) bool) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if match(u) {
			found := *u
			return &found, nil
		}
	}

	return nil, store.ErrNotFound
}

func (r *userRepo) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.find(func(u *model.User) bool { return u.Username == username })
}

func (r *userRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.find(func(u *model.User) bool { return strings.EqualFold(u.Email, email) })
}

func (r *userRepo) FindByEmailOrUsername(ctx context.Context, email string, username string) (*model.User, error) {
	return r.find(func(u *model.User) bool {
		return strings.EqualFold(u.Email, email) || u.Username == username
	})
}

func (r *userRepo) UpdateByID(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return store.ErrNotFound
	}

	updated := *user
	for field, value := range updates {
		switch field {
		case "username":
			if v, ok := value.(string); ok {
				updated.Username = v
			}
		case "email":
			if v, ok := value.(string); ok {
				updated.Email = v
			}
		case "about_me":
			if v, ok := value.(string); ok {
				updated.AboutMe = &v
			}
		}
	}

	for otherID, u := range r.users {
		if otherID == id {
			continue
		}
		if u.Username == updated.Username || strings.EqualFold(u.Email, updated.Email) {
			return store.ErrConflict
		}
	}

	r.users[id] = &updated
	return nil
}

func (r *userRepo) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return store.ErrNotFound
	}
	user.PasswordHash = passwordHash
	return nil
}

func (r *userRepo) UpdateLastSeen(ctx context.Context, id uuid.UUID, lastSeen time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return store.ErrNotFound
	}
	user.LastSeen = lastSeen
	return nil
}
