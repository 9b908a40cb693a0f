package postgres

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/BloggingApp/microblog-service/internal/model"
	"github.com/BloggingApp/microblog-service/internal/repository/store"
	"github.com/google/uuid"
)

type userRepo struct {
	db DB
}

func newUserRepo(db DB) store.User {
	return &userRepo{
		db: db,
	}
}

const selectUser = `
	SELECT u.id, u.email, u.username, u.password_hash, u.about_me, u.last_seen, u.created_at
	FROM users u
	`

func (r *userRepo) Create(ctx context.Context, user model.User) (*model.User, error) {
	user.ID = uuid.New()
	user.CreatedAt = time.Now().UTC()
	user.LastSeen = user.CreatedAt
	_, err := r.db.Exec(
		ctx,
		"INSERT INTO users(id, email, username, password_hash, about_me, last_seen, created_at) VALUES($1, $2, $3, $4, $5, $6, $7)",
		user.ID,
		user.Email,
		user.Username,
		user.PasswordHash,
		user.AboutMe,
		user.LastSeen,
		user.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert user: %w", mapError(err))
	}

	return &user, nil
}

func (r *userRepo) findOne(ctx context.Context, where string, args ...any) (*model.User, error) {
	var user model.User
	if err := r.db.QueryRow(ctx, selectUser+where, args...).Scan(
		&user.ID,
		&user.Email,
		&user.Username,
		&user.PasswordHash,
		&user.AboutMe,
		&user.LastSeen,
		&user.CreatedAt,
	); err != nil {
		return nil, mapError(err)
	}

	return &user, nil
}

func (r *userRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return r.findOne(ctx, "WHERE u.id = $1", id)
}

func (r *userRepo) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.findOne(ctx, "WHERE u.username = $1", username)
}

func (r *userRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.findOne(ctx, "WHERE lower(u.email) = lower($1)", email)
}

func (r *userRepo) FindByEmailOrUsername(ctx context.Context, email string, username string) (*model.User, error) {
	return r.findOne(ctx, "WHERE lower(u.email) = lower($1) OR u.username = $2 LIMIT 1", email, username)
}

func (r *userRepo) UpdateByID(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	// Columns follow the allow-list order; unknown keys are ignored.
	query := "UPDATE users SET "
	args := []interface{}{}
	i := 1
	for _, column := range store.UpdatableUserFields {
		value, ok := updates[column]
		if !ok {
			continue
		}
		query += (column + " = $" + strconv.Itoa(i) + ", ")
		args = append(args, value)
		i++
	}

	if len(args) == 0 {
		return nil
	}

	query = query[:len(query)-2] + " WHERE id = $" + strconv.Itoa(i)
	args = append(args, id)

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update user: %w", mapError(err))
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}

	return nil
}

func (r *userRepo) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	tag, err := r.db.Exec(ctx, "UPDATE users SET password_hash = $1 WHERE id = $2", passwordHash, id)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}

	return nil
}

func (r *userRepo) UpdateLastSeen(ctx context.Context, id uuid.UUID, lastSeen time.Time) error {
	if _, err := r.db.Exec(ctx, "UPDATE users SET last_seen = $1 WHERE id = $2", lastSeen, id); err != nil {
		return fmt.Errorf("update last seen: %w", err)
	}

	return nil
}
