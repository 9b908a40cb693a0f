// Package graph stores the follow relation as (:User)-[:FOLLOWS]->(:User)
// edges in neo4j. User details still come from the relational store.
package graph

import (
	"context"
	"fmt"

	"github.com/BloggingApp/microblog-service/internal/model"
	"github.com/BloggingApp/microblog-service/internal/repository/store"
	"github.com/google/uuid"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// queryFunc runs a cypher query and returns the values of every record.
type queryFunc func(ctx context.Context, mode neo4j.AccessMode, query string, params map[string]any) ([][]any, error)

type followerRepo struct {
	run   queryFunc
	users store.User
}

func NewFollowerRepo(driver neo4j.DriverWithContext, users store.User) store.Follower {
	return &followerRepo{
		run:   driverQuery(driver),
		users: users,
	}
}

func Connect(ctx context.Context, uri string, username string, password string) (neo4j.DriverWithContext, error) {
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(username, password, ""))
	if err != nil {
		return nil, fmt.Errorf("create neo4j driver: %w", err)
	}

	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, fmt.Errorf("connect neo4j: %w", err)
	}

	return driver, nil
}

// driverQuery executes queries in managed transactions on driver.
func driverQuery(driver neo4j.DriverWithContext) queryFunc {
	return func(ctx context.Context, mode neo4j.AccessMode, query string, params map[string]any) ([][]any, error) {
		session := driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: mode})
		defer session.Close(ctx)

		work := func(transaction neo4j.ManagedTransaction) (any, error) {
			result, err := transaction.Run(ctx, query, params)
			if err != nil {
				return nil, err
			}

			var rows [][]any
			for result.Next(ctx) {
				rows = append(rows, result.Record().Values)
			}

			return rows, result.Err()
		}

		var (
			data any
			err  error
		)
		if mode == neo4j.AccessModeWrite {
			data, err = session.ExecuteWrite(ctx, work)
		} else {
			data, err = session.ExecuteRead(ctx, work)
		}
		if err != nil {
			return nil, err
		}

		rows, _ := data.([][]any)
		return rows, nil
	}
}

func (r *followerRepo) Follow(ctx context.Context, followerID uuid.UUID, followedID uuid.UUID) error {
	if followerID == followedID {
		return nil
	}

	_, err := r.run(ctx, neo4j.AccessModeWrite,
		"MERGE (a:User {id: $follower}) MERGE (b:User {id: $followed}) MERGE (a)-[:FOLLOWS]->(b);",
		map[string]any{"follower": followerID.String(), "followed": followedID.String()})
	if err != nil {
		return fmt.Errorf("create follow edge: %w", err)
	}

	return nil
}

func (r *followerRepo) Unfollow(ctx context.Context, followerID uuid.UUID, followedID uuid.UUID) error {
	_, err := r.run(ctx, neo4j.AccessModeWrite,
		"MATCH (:User {id: $follower})-[r:FOLLOWS]->(:User {id: $followed}) DELETE r;",
		map[string]any{"follower": followerID.String(), "followed": followedID.String()})
	if err != nil {
		return fmt.Errorf("delete follow edge: %w", err)
	}

	return nil
}

func (r *followerRepo) IsFollowing(ctx context.Context, followerID uuid.UUID, followedID uuid.UUID) (bool, error) {
	if followerID == followedID {
		return true, nil
	}

	rows, err := r.run(ctx, neo4j.AccessModeRead,
		"MATCH (:User {id: $follower})-[r:FOLLOWS]->(:User {id: $followed}) RETURN count(r) > 0;",
		map[string]any{"follower": followerID.String(), "followed": followedID.String()})
	if err != nil {
		return false, fmt.Errorf("check follow edge: %w", err)
	}

	if len(rows) == 0 || len(rows[0]) == 0 {
		return false, nil
	}
	exists, _ := rows[0][0].(bool)
	return exists, nil
}

func (r *followerRepo) FollowedIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.run(ctx, neo4j.AccessModeRead,
		"MATCH (:User {id: $id})-[:FOLLOWS]->(b:User) RETURN b.id;",
		map[string]any{"id": userID.String()})
	if err != nil {
		return nil, fmt.Errorf("select followed ids: %w", err)
	}

	ids, err := idsFromRows(rows)
	if err != nil {
		return nil, err
	}

	return store.WithSelf(userID, ids), nil
}

func (r *followerRepo) hydrate(ctx context.Context, rows [][]any) ([]*model.FullFollower, error) {
	ids, err := idsFromRows(rows)
	if err != nil {
		return nil, err
	}

	list := make([]*model.FullFollower, 0, len(ids))
	for _, id := range ids {
		user, err := r.users.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		list = append(list, &model.FullFollower{
			ID:       user.ID,
			Username: user.Username,
			Email:    user.Email,
			AboutMe:  user.AboutMe,
		})
	}

	return list, nil
}

func (r *followerRepo) FindFollowers(ctx context.Context, userID uuid.UUID, limit int, offset int) ([]*model.FullFollower, error) {
	store.MaximumLimit(&limit)

	rows, err := r.run(ctx, neo4j.AccessModeRead,
		"MATCH (a:User)-[:FOLLOWS]->(:User {id: $id}) RETURN a.id ORDER BY a.id SKIP $skip LIMIT $limit;",
		map[string]any{"id": userID.String(), "skip": offset, "limit": limit})
	if err != nil {
		return nil, fmt.Errorf("select followers: %w", err)
	}

	return r.hydrate(ctx, rows)
}

func (r *followerRepo) FindFollowing(ctx context.Context, userID uuid.UUID, limit int, offset int) ([]*model.FullFollower, error) {
	store.MaximumLimit(&limit)

	rows, err := r.run(ctx, neo4j.AccessModeRead,
		"MATCH (:User {id: $id})-[:FOLLOWS]->(b:User) RETURN b.id ORDER BY b.id SKIP $skip LIMIT $limit;",
		map[string]any{"id": userID.String(), "skip": offset, "limit": limit})
	if err != nil {
		return nil, fmt.Errorf("select following: %w", err)
	}

	return r.hydrate(ctx, rows)
}

func (r *followerRepo) count(ctx context.Context, query string, userID uuid.UUID) (int64, error) {
	rows, err := r.run(ctx, neo4j.AccessModeRead, query, map[string]any{"id": userID.String()})
	if err != nil {
		return 0, fmt.Errorf("count follow edges: %w", err)
	}

	if len(rows) == 0 || len(rows[0]) == 0 {
		return 0, nil
	}
	n, _ := rows[0][0].(int64)
	return n, nil
}

func (r *followerRepo) CountFollowers(ctx context.Context, userID uuid.UUID) (int64, error) {
	return r.count(ctx, "MATCH (a:User)-[:FOLLOWS]->(:User {id: $id}) RETURN count(a);", userID)
}

func (r *followerRepo) CountFollowing(ctx context.Context, userID uuid.UUID) (int64, error) {
	return r.count(ctx, "MATCH (:User {id: $id})-[:FOLLOWS]->(b:User) RETURN count(b);", userID)
}

func idsFromRows(rows [][]any) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(rows))
	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		raw, ok := row[0].(string)
		if !ok {
			return nil, fmt.Errorf("unexpected id value %v", row[0])
		}
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("parse id %q: %w", raw, err)
		}
		ids = append(ids, id)
	}

	return ids, nil
}
