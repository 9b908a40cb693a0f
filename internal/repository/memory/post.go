package memory

import (
	"context"
	"time"

	"github.com/BloggingApp/microblog-service/internal/model"
	"github.com/google/uuid"
)

type postRepo Storage

// Create assigns the id and a timestamp strictly later than the previous
// post's, so insertion order and timestamp order never disagree.
func (r *postRepo) Create(ctx context.Context, post model.Post) (*model.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ts := r.now().UTC()
	if !ts.After(r.lastPost) {
		ts = r.lastPost.Add(time.Nanosecond)
	}
	r.lastPost = ts

	post.ID = uuid.New()
	post.CreatedAt = ts
	stored := post
	r.posts = append(r.posts, &stored)

	return &post, nil
}

// newestFirst walks posts from the most recent one. Posts are appended with
// increasing timestamps, so reverse insertion order is the feed order.
func (r *postRepo) newestFirst(match func(p *model.Post) bool) []*model.Post {
	var out []*model.Post
	for i := len(r.posts) - 1; i >= 0; i-- {
		if match(r.posts[i]) {
			out = append(out, r.posts[i])
		}
	}
	return out
}

func (r *postRepo) page(match func(p *model.Post) bool, limit int, offset int) []*model.FullPost {
	r.mu.RLock()
	defer r.mu.RUnlock()

	posts := r.newestFirst(match)
	start, end := clampWindow(len(posts), limit, offset)

	list := make([]*model.FullPost, 0, end-start)
	for _, p := range posts[start:end] {
		full := &model.FullPost{Post: *p}
		if author, ok := r.users[p.UserID]; ok {
			full.Username = author.Username
			full.AuthorEmail = author.Email
		}
		list = append(list, full)
	}
	return list
}

func (r *postRepo) count(match func(p *model.Post) bool) int64 {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var n int64
	for _, p := range r.posts {
		if match(p) {
			n++
		}
	}
	return n
}

func byAuthors(ids []uuid.UUID) func(p *model.Post) bool {
	set := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return func(p *model.Post) bool {
		_, ok := set[p.UserID]
		return ok
	}
}

func all(*model.Post) bool { return true }

func (r *postRepo) FindByAuthor(ctx context.Context, authorID uuid.UUID, limit int, offset int) ([]*model.FullPost, error) {
	return r.page(byAuthors([]uuid.UUID{authorID}), limit, offset), nil
}

func (r *postRepo) CountByAuthor(ctx context.Context, authorID uuid.UUID) (int64, error) {
	return r.count(byAuthors([]uuid.UUID{authorID})), nil
}

func (r *postRepo) FindByAuthors(ctx context.Context, authorIDs []uuid.UUID, limit int, offset int) ([]*model.FullPost, error) {
	return r.page(byAuthors(authorIDs), limit, offset), nil
}

func (r *postRepo) CountByAuthors(ctx context.Context, authorIDs []uuid.UUID) (int64, error) {
	return r.count(byAuthors(authorIDs)), nil
}

func (r *postRepo) FindAll(ctx context.Context, limit int, offset int) ([]*model.FullPost, error) {
	return r.page(all, limit, offset), nil
}

func (r *postRepo) CountAll(ctx context.Context) (int64, error) {
	return r.count(all), nil
}
