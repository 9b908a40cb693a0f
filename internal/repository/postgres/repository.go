package postgres

import (
	"context"
	"errors"

	"github.com/BloggingApp/microblog-service/internal/repository/store"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB is the subset of pgx used by the repositories. Both *pgxpool.Pool and
// pgx.Tx satisfy it.
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PostgresRepository struct {
	User     store.User
	Follower store.Follower
	Post     store.Post
}

func New(db DB) *PostgresRepository {
	return &PostgresRepository{
		User:     newUserRepo(db),
		Follower: newFollowerRepo(db),
		Post:     newPostRepo(db),
	}
}

const uniqueViolation = "23505"

func mapError(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return store.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return store.ErrConflict
	}

	return err
}
