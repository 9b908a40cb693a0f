package repository

import (
	"github.com/BloggingApp/microblog-service/internal/repository/memory"
	"github.com/BloggingApp/microblog-service/internal/repository/postgres"
	"github.com/BloggingApp/microblog-service/internal/repository/redisrepo"
	"github.com/BloggingApp/microblog-service/internal/repository/store"
	"github.com/redis/go-redis/v9"
)

type Repository struct {
	Users     store.User
	Followers store.Follower
	Posts     store.Post
	Redis     *redisrepo.RedisRepository
}

func NewPostgres(db postgres.DB, rdb *redis.Client) *Repository {
	pg := postgres.New(db)
	return &Repository{
		Users:     pg.User,
		Followers: pg.Follower,
		Posts:     pg.Post,
		Redis:     redisrepo.New(rdb),
	}
}

func NewMemory(storage *memory.Storage, rdb *redis.Client) *Repository {
	return &Repository{
		Users:     storage.Users(),
		Followers: storage.Followers(),
		Posts:     storage.Posts(),
		Redis:     redisrepo.New(rdb),
	}
}

// WithFollowers swaps the follow graph backend, e.g. for the neo4j store.
func (r *Repository) WithFollowers(followers store.Follower) *Repository {
	r.Followers = followers
	return r
}
