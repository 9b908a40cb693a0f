package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/BloggingApp/microblog-service/internal/model"
	"github.com/BloggingApp/microblog-service/internal/repository/store"
	"github.com/google/uuid"
)

type postRepo struct {
	db DB
}

func newPostRepo(db DB) store.Post {
	return &postRepo{
		db: db,
	}
}

const selectFullPost = `
	SELECT p.id, p.user_id, p.body, p.language, p.created_at, u.username, u.email
	FROM posts p
	JOIN users u ON p.user_id = u.id
	`

const feedOrder = " ORDER BY p.created_at DESC, p.id DESC"

func (r *postRepo) Create(ctx context.Context, post model.Post) (*model.Post, error) {
	post.ID = uuid.New()
	post.CreatedAt = time.Now().UTC()
	_, err := r.db.Exec(
		ctx,
		"INSERT INTO posts(id, user_id, body, language, created_at) VALUES($1, $2, $3, $4, $5)",
		post.ID,
		post.UserID,
		post.Body,
		post.Language,
		post.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert post: %w", err)
	}

	return &post, nil
}

func (r *postRepo) findMany(ctx context.Context, query string, args ...any) ([]*model.FullPost, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select posts: %w", err)
	}
	defer rows.Close()

	var posts []*model.FullPost
	for rows.Next() {
		var p model.FullPost
		if err := rows.Scan(
			&p.ID,
			&p.UserID,
			&p.Body,
			&p.Language,
			&p.CreatedAt,
			&p.Username,
			&p.AuthorEmail,
		); err != nil {
			return nil, err
		}

		posts = append(posts, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return posts, nil
}

func (r *postRepo) count(ctx context.Context, query string, args ...any) (int64, error) {
	var n int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count posts: %w", err)
	}

	return n, nil
}

func uuidStrings(ids []uuid.UUID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}
	return out
}

func (r *postRepo) FindByAuthor(ctx context.Context, authorID uuid.UUID, limit int, offset int) ([]*model.FullPost, error) {
	return r.findMany(ctx, selectFullPost+"WHERE p.user_id = $1"+feedOrder+" LIMIT $2 OFFSET $3", authorID, limit, offset)
}

func (r *postRepo) CountByAuthor(ctx context.Context, authorID uuid.UUID) (int64, error) {
	return r.count(ctx, "SELECT COUNT(*) FROM posts p WHERE p.user_id = $1", authorID)
}

func (r *postRepo) FindByAuthors(ctx context.Context, authorIDs []uuid.UUID, limit int, offset int) ([]*model.FullPost, error) {
	return r.findMany(ctx, selectFullPost+"WHERE p.user_id = ANY($1::uuid[])"+feedOrder+" LIMIT $2 OFFSET $3", uuidStrings(authorIDs), limit, offset)
}

func (r *postRepo) CountByAuthors(ctx context.Context, authorIDs []uuid.UUID) (int64, error) {
	return r.count(ctx, "SELECT COUNT(*) FROM posts p WHERE p.user_id = ANY($1::uuid[])", uuidStrings(authorIDs))
}

func (r *postRepo) FindAll(ctx context.Context, limit int, offset int) ([]*model.FullPost, error) {
	return r.findMany(ctx, selectFullPost+feedOrder+" LIMIT $1 OFFSET $2", limit, offset)
}

func (r *postRepo) CountAll(ctx context.Context) (int64, error) {
	return r.count(ctx, "SELECT COUNT(*) FROM posts p")
}
