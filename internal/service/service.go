package service

import (
	"context"
	"time"

	"github.com/BloggingApp/microblog-service/internal/dto"
	"github.com/BloggingApp/microblog-service/internal/events"
	"github.com/BloggingApp/microblog-service/internal/langdetect"
	"github.com/BloggingApp/microblog-service/internal/model"
	"github.com/BloggingApp/microblog-service/internal/repository"
	"github.com/BloggingApp/microblog-service/internal/translate"
	"github.com/BloggingApp/microblog-service/pkg/utils"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Auth interface {
	SignUp(ctx context.Context, input dto.CreateUser) (*model.User, *utils.JWTPair, error)
	SignIn(ctx context.Context, input dto.SignIn) (*model.User, *utils.JWTPair, error)
	RefreshTokens(ctx context.Context, refreshToken string) (*utils.JWTPair, error)
	// Authenticate resolves an access token to its user and records the
	// visit in last_seen.
	Authenticate(ctx context.Context, accessToken string) (*model.User, error)
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token string, input dto.ResetPassword) error
}

type User interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	GetProfile(ctx context.Context, viewer model.User, username string) (*dto.GetUserDto, error)
	Update(ctx context.Context, user model.User, updates map[string]interface{}) (*model.User, error)
	Follow(ctx context.Context, follower model.User, username string) (*model.User, error)
	Unfollow(ctx context.Context, follower model.User, username string) (*model.User, error)
	FindFollowers(ctx context.Context, userID uuid.UUID, limit int, offset int) ([]*dto.FollowerDto, error)
	FindFollowing(ctx context.Context, userID uuid.UUID, limit int, offset int) ([]*dto.FollowerDto, error)
}

// Feed is the timeline query engine: every listing is reverse chronological
// and paginated by page number.
type Feed interface {
	Timeline(ctx context.Context, userID uuid.UUID, page int) (*dto.PostsPage, error)
	UserPosts(ctx context.Context, username string, page int) (*dto.PostsPage, error)
	Explore(ctx context.Context, page int) (*dto.PostsPage, error)
	CreatePost(ctx context.Context, author model.User, body string) (*model.Post, error)
}

type Translation interface {
	Translate(ctx context.Context, input dto.TranslateRequest) (string, error)
}

type Service struct {
	Auth
	User
	Feed
	Translation
}

type Config struct {
	PostsPerPage  int
	AccessSecret  string
	RefreshSecret string
	ResetSecret   string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
	ResetTTL      time.Duration
}

type Deps struct {
	Logger     *zap.Logger
	Repo       *repository.Repository
	Publisher  events.Publisher
	Detector   langdetect.Detector
	Translator translate.Translator
}

func New(cfg Config, deps Deps) *Service {
	if deps.Publisher == nil {
		deps.Publisher = events.Noop{}
	}

	userService := newUserService(deps.Logger, deps.Repo, deps.Publisher)

	return &Service{
		Auth:        newAuthService(cfg, deps.Logger, deps.Repo, deps.Publisher, userService),
		User:        userService,
		Feed:        newFeedService(cfg.PostsPerPage, deps.Logger, deps.Repo, deps.Publisher, deps.Detector),
		Translation: newTranslationService(deps.Logger, deps.Translator),
	}
}
