package postgres

import (
	"context"
	"fmt"

	"github.com/BloggingApp/microblog-service/internal/model"
	"github.com/BloggingApp/microblog-service/internal/repository/store"
	"github.com/google/uuid"
)

type followerRepo struct {
	db DB
}

func newFollowerRepo(db DB) store.Follower {
	return &followerRepo{
		db: db,
	}
}

func (r *followerRepo) Follow(ctx context.Context, followerID uuid.UUID, followedID uuid.UUID) error {
	if followerID == followedID {
		return nil
	}

	_, err := r.db.Exec(
		ctx,
		"INSERT INTO followers(follower_id, followed_id) VALUES($1, $2) ON CONFLICT DO NOTHING",
		followerID,
		followedID,
	)
	if err != nil {
		return fmt.Errorf("insert follower: %w", err)
	}

	return nil
}

func (r *followerRepo) Unfollow(ctx context.Context, followerID uuid.UUID, followedID uuid.UUID) error {
	_, err := r.db.Exec(
		ctx,
		"DELETE FROM followers WHERE follower_id = $1 AND followed_id = $2",
		followerID,
		followedID,
	)
	if err != nil {
		return fmt.Errorf("delete follower: %w", err)
	}

	return nil
}

func (r *followerRepo) IsFollowing(ctx context.Context, followerID uuid.UUID, followedID uuid.UUID) (bool, error) {
	if followerID == followedID {
		return true, nil
	}

	var exists bool
	if err := r.db.QueryRow(
		ctx,
		"SELECT EXISTS(SELECT 1 FROM followers f WHERE f.follower_id = $1 AND f.followed_id = $2)",
		followerID,
		followedID,
	).Scan(&exists); err != nil {
		return false, fmt.Errorf("check follower: %w", err)
	}

	return exists, nil
}

func (r *followerRepo) FollowedIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx, "SELECT f.followed_id FROM followers f WHERE f.follower_id = $1", userID)
	if err != nil {
		return nil, fmt.Errorf("select followed ids: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return store.WithSelf(userID, ids), nil
}

func (r *followerRepo) findUsers(ctx context.Context, query string, userID uuid.UUID, limit int, offset int) ([]*model.FullFollower, error) {
	store.MaximumLimit(&limit)

	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []*model.FullFollower
	for rows.Next() {
		var f model.FullFollower
		if err := rows.Scan(
			&f.ID,
			&f.Username,
			&f.Email,
			&f.AboutMe,
		); err != nil {
			return nil, err
		}

		list = append(list, &f)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return list, nil
}

func (r *followerRepo) FindFollowers(ctx context.Context, userID uuid.UUID, limit int, offset int) ([]*model.FullFollower, error) {
	return r.findUsers(
		ctx,
		`
		SELECT u.id, u.username, u.email, u.about_me
		FROM followers f
		JOIN users u ON f.follower_id = u.id
		WHERE f.followed_id = $1
		ORDER BY u.username
		LIMIT $2
		OFFSET $3
		`,
		userID,
		limit,
		offset,
	)
}

func (r *followerRepo) FindFollowing(ctx context.Context, userID uuid.UUID, limit int, offset int) ([]*model.FullFollower, error) {
	return r.findUsers(
		ctx,
		`
		SELECT u.id, u.username, u.email, u.about_me
		FROM followers f
		JOIN users u ON f.followed_id = u.id
		WHERE f.follower_id = $1
		ORDER BY u.username
		LIMIT $2
		OFFSET $3
		`,
		userID,
		limit,
		offset,
	)
}

func (r *followerRepo) count(ctx context.Context, query string, userID uuid.UUID) (int64, error) {
	var n int64
	if err := r.db.QueryRow(ctx, query, userID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count followers: %w", err)
	}

	return n, nil
}

func (r *followerRepo) CountFollowers(ctx context.Context, userID uuid.UUID) (int64, error) {
	return r.count(ctx, "SELECT COUNT(*) FROM followers f WHERE f.followed_id = $1", userID)
}

func (r *followerRepo) CountFollowing(ctx context.Context, userID uuid.UUID) (int64, error) {
	return r.count(ctx, "SELECT COUNT(*) FROM followers f WHERE f.follower_id = $1", userID)
}
