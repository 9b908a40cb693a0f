package memory

import (
	"context"
	"sort"

	"github.com/BloggingApp/microblog-service/internal/model"
	"github.com/BloggingApp/microblog-service/internal/repository/store"
	"github.com/google/uuid"
)

type followerRepo Storage

func (r *followerRepo) Follow(ctx context.Context, followerID uuid.UUID, followedID uuid.UUID) error {
	if followerID == followedID {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	followed, ok := r.edges[followerID]
	if !ok {
		followed = make(map[uuid.UUID]struct{})
		r.edges[followerID] = followed
	}
	followed[followedID] = struct{}{}

	return nil
}

func (r *followerRepo) Unfollow(ctx context.Context, followerID uuid.UUID, followedID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	followed, ok := r.edges[followerID]
	if !ok {
		return nil
	}
	delete(followed, followedID)
	if len(followed) == 0 {
		delete(r.edges, followerID)
	}

	return nil
}

func (r *followerRepo) IsFollowing(ctx context.Context, followerID uuid.UUID, followedID uuid.UUID) (bool, error) {
	if followerID == followedID {
		return true, nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.edges[followerID][followedID]
	return ok, nil
}

func (r *followerRepo) FollowedIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]uuid.UUID, 0, len(r.edges[userID])+1)
	for id := range r.edges[userID] {
		ids = append(ids, id)
	}

	return store.WithSelf(userID, ids), nil
}

func (r *followerRepo) fullFollowers(ids []uuid.UUID, limit int, offset int) []*model.FullFollower {
	store.MaximumLimit(&limit)

	list := make([]*model.FullFollower, 0, len(ids))
	for _, id := range ids {
		user, ok := r.users[id]
		if !ok {
			continue
		}
		list = append(list, &model.FullFollower{
			ID:       user.ID,
			Username: user.Username,
			Email:    user.Email,
			AboutMe:  user.AboutMe,
		})
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Username < list[j].Username })

	start, end := clampWindow(len(list), limit, offset)
	return list[start:end]
}

func (r *followerRepo) FindFollowers(ctx context.Context, userID uuid.UUID, limit int, offset int) ([]*model.FullFollower, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var ids []uuid.UUID
	for followerID, followed := range r.edges {
		if _, ok := followed[userID]; ok {
			ids = append(ids, followerID)
		}
	}

	return r.fullFollowers(ids, limit, offset), nil
}

func (r *followerRepo) FindFollowing(ctx context.Context, userID uuid.UUID, limit int, offset int) ([]*model.FullFollower, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var ids []uuid.UUID
	for id := range r.edges[userID] {
		ids = append(ids, id)
	}

	return r.fullFollowers(ids, limit, offset), nil
}

func (r *followerRepo) CountFollowers(ctx context.Context, userID uuid.UUID) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var n int64
	for _, followed := range r.edges {
		if _, ok := followed[userID]; ok {
			n++
		}
	}
	return n, nil
}

func (r *followerRepo) CountFollowing(ctx context.Context, userID uuid.UUID) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return int64(len(r.edges[userID])), nil
}
