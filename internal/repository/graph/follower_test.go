package graph

import (
	"context"
	"errors"
	"testing"

	"github.com/BloggingApp/microblog-service/internal/model"
	"github.com/BloggingApp/microblog-service/internal/repository/memory"
	"github.com/BloggingApp/microblog-service/internal/repository/store"
	"github.com/google/uuid"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type call struct {
	mode   neo4j.AccessMode
	query  string
	params map[string]any
}

// fakeQuery answers with rows and err and records each query it receives.
type fakeQuery struct {
	rows  [][]any
	err   error
	calls []call
}

func (f *fakeQuery) run(ctx context.Context, mode neo4j.AccessMode, query string, params map[string]any) ([][]any, error) {
	f.calls = append(f.calls, call{mode: mode, query: query, params: params})
	return f.rows, f.err
}

func newTestRepo(t *testing.T, f *fakeQuery) (*followerRepo, store.User) {
	t.Helper()

	users := memory.New().Users()
	return &followerRepo{run: f.run, users: users}, users
}

func TestFollow_SelfIsNoop(t *testing.T) {
	f := &fakeQuery{}
	repo, _ := newTestRepo(t, f)
	id := uuid.New()

	require.NoError(t, repo.Follow(context.Background(), id, id))
	assert.Empty(t, f.calls)
}

func TestFollow_MergesEdge(t *testing.T) {
	f := &fakeQuery{}
	repo, _ := newTestRepo(t, f)
	a, b := uuid.New(), uuid.New()

	require.NoError(t, repo.Follow(context.Background(), a, b))
	require.Len(t, f.calls, 1)
	assert.Equal(t, neo4j.AccessModeWrite, f.calls[0].mode)
	assert.Contains(t, f.calls[0].query, "MERGE (a)-[:FOLLOWS]->(b)")
	assert.Equal(t, a.String(), f.calls[0].params["follower"])
	assert.Equal(t, b.String(), f.calls[0].params["followed"])
}

func TestFollow_Error(t *testing.T) {
	f := &fakeQuery{err: errors.New("connection reset")}
	repo, _ := newTestRepo(t, f)

	err := repo.Follow(context.Background(), uuid.New(), uuid.New())
	require.ErrorIs(t, err, f.err)
}

func TestIsFollowing(t *testing.T) {
	id := uuid.New()

	f := &fakeQuery{}
	repo, _ := newTestRepo(t, f)
	ok, err := repo.IsFollowing(context.Background(), id, id)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, f.calls)

	f = &fakeQuery{rows: [][]any{{true}}}
	repo, _ = newTestRepo(t, f)
	ok, err = repo.IsFollowing(context.Background(), id, uuid.New())
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, neo4j.AccessModeRead, f.calls[0].mode)

	f = &fakeQuery{}
	repo, _ = newTestRepo(t, f)
	ok, err = repo.IsFollowing(context.Background(), id, uuid.New())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFollowedIDs_IncludesSelf(t *testing.T) {
	me, other := uuid.New(), uuid.New()

	f := &fakeQuery{rows: [][]any{{other.String()}}}
	repo, _ := newTestRepo(t, f)
	ids, err := repo.FollowedIDs(context.Background(), me)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uuid.UUID{me, other}, ids)

	f = &fakeQuery{}
	repo, _ = newTestRepo(t, f)
	ids, err = repo.FollowedIDs(context.Background(), me)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{me}, ids)
}

func TestFollowedIDs_Error(t *testing.T) {
	f := &fakeQuery{err: errors.New("unavailable")}
	repo, _ := newTestRepo(t, f)

	_, err := repo.FollowedIDs(context.Background(), uuid.New())
	require.ErrorIs(t, err, f.err)
}

func TestCount(t *testing.T) {
	f := &fakeQuery{rows: [][]any{{int64(4)}}}
	repo, _ := newTestRepo(t, f)

	n, err := repo.CountFollowers(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)

	f = &fakeQuery{}
	repo, _ = newTestRepo(t, f)
	n, err = repo.CountFollowing(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Zero(t, n)

	f = &fakeQuery{err: errors.New("unavailable")}
	repo, _ = newTestRepo(t, f)
	_, err = repo.CountFollowers(context.Background(), uuid.New())
	require.ErrorIs(t, err, f.err)
	assert.Contains(t, err.Error(), "count follow edges")
}

func TestFindFollowers_Hydrates(t *testing.T) {
	f := &fakeQuery{}
	repo, users := newTestRepo(t, f)
	ctx := context.Background()

	alice, err := users.Create(ctx, model.User{Username: "alice", Email: "alice@example.com"})
	require.NoError(t, err)
	f.rows = [][]any{{alice.ID.String()}}

	list, err := repo.FindFollowers(ctx, uuid.New(), 500, 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "alice", list[0].Username)
	assert.Equal(t, store.MaxLimit, f.calls[0].params["limit"])
}

func TestFindFollowing_HydrateErrors(t *testing.T) {
	f := &fakeQuery{rows: [][]any{{uuid.New().String()}}}
	repo, _ := newTestRepo(t, f)

	_, err := repo.FindFollowing(context.Background(), uuid.New(), 10, 0)
	require.ErrorIs(t, err, store.ErrNotFound)

	f = &fakeQuery{rows: [][]any{{"not-a-uuid"}}}
	repo, _ = newTestRepo(t, f)
	_, err = repo.FindFollowing(context.Background(), uuid.New(), 10, 0)
	require.Error(t, err)

	f = &fakeQuery{err: errors.New("unavailable")}
	repo, _ = newTestRepo(t, f)
	_, err = repo.FindFollowers(context.Background(), uuid.New(), 10, 0)
	require.ErrorIs(t, err, f.err)
}

func TestIdsFromRows(t *testing.T) {
	a, b := uuid.New(), uuid.New()

	ids, err := idsFromRows([][]any{{a.String()}, {}, {b.String()}})
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{a, b}, ids)
}

func TestIdsFromRows_InvalidValue(t *testing.T) {
	_, err := idsFromRows([][]any{{int64(7)}})
	require.Error(t, err)

	_, err = idsFromRows([][]any{{"not-a-uuid"}})
	require.Error(t, err)
}
