package service

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/BloggingApp/microblog-service/internal/dto"
	"github.com/BloggingApp/microblog-service/internal/events"
	"github.com/BloggingApp/microblog-service/internal/langdetect"
	"github.com/BloggingApp/microblog-service/internal/model"
	"github.com/BloggingApp/microblog-service/internal/pagination"
	"github.com/BloggingApp/microblog-service/internal/repository"
	"github.com/BloggingApp/microblog-service/internal/repository/store"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const POSTS_PER_PAGE = 10

type feedService struct {
	perPage   int
	logger    *zap.Logger
	repo      *repository.Repository
	publisher events.Publisher
	detector  langdetect.Detector
}

func newFeedService(perPage int, logger *zap.Logger, repo *repository.Repository, publisher events.Publisher, detector langdetect.Detector) Feed {
	if perPage < 1 {
		perPage = POSTS_PER_PAGE
	}
	if detector == nil {
		detector = langdetect.NewWhatlang()
	}

	return &feedService{
		perPage:   perPage,
		logger:    logger,
		repo:      repo,
		publisher: publisher,
		detector:  detector,
	}
}

type fetchFunc func(ctx context.Context, limit int, offset int) ([]*model.FullPost, error)
type countFunc func(ctx context.Context) (int64, error)

// page runs one paginated listing. The window and the total come from two
// queries, so a post written in between may shift items across pages; the
// listing itself is always consistently ordered.
func (s *feedService) page(ctx context.Context, page int, what string, fetch fetchFunc, count countFunc) (*dto.PostsPage, error) {
	p, err := pagination.New(page, s.perPage)
	if err != nil {
		return nil, ErrInvalidPage
	}

	posts, err := fetch(ctx, p.Limit(), p.Offset())
	if err != nil {
		s.logger.Sugar().Errorf("failed to find %s posts: %s", what, err.Error())
		return nil, ErrInternal
	}

	total, err := count(ctx)
	if err != nil {
		s.logger.Sugar().Errorf("failed to count %s posts: %s", what, err.Error())
		return nil, ErrInternal
	}

	return pagination.Map(pagination.NewPage(posts, p, total), dto.PostDtoFromFullPost), nil
}

func (s *feedService) Timeline(ctx context.Context, userID uuid.UUID, page int) (*dto.PostsPage, error) {
	if page < 1 {
		return nil, ErrInvalidPage
	}

	authorIDs, err := s.repo.Followers.FollowedIDs(ctx, userID)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find users followed by user(%s): %s", userID.String(), err.Error())
		return nil, ErrInternal
	}

	return s.page(ctx, page, "timeline",
		func(ctx context.Context, limit int, offset int) ([]*model.FullPost, error) {
			return s.repo.Posts.FindByAuthors(ctx, authorIDs, limit, offset)
		},
		func(ctx context.Context) (int64, error) {
			return s.repo.Posts.CountByAuthors(ctx, authorIDs)
		},
	)
}

func (s *feedService) UserPosts(ctx context.Context, username string, page int) (*dto.PostsPage, error) {
	if page < 1 {
		return nil, ErrInvalidPage
	}

	author, err := s.repo.Users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}

		s.logger.Sugar().Errorf("failed to find user(%s): %s", username, err.Error())
		return nil, ErrInternal
	}

	return s.page(ctx, page, "user",
		func(ctx context.Context, limit int, offset int) ([]*model.FullPost, error) {
			return s.repo.Posts.FindByAuthor(ctx, author.ID, limit, offset)
		},
		func(ctx context.Context) (int64, error) {
			return s.repo.Posts.CountByAuthor(ctx, author.ID)
		},
	)
}

func (s *feedService) Explore(ctx context.Context, page int) (*dto.PostsPage, error) {
	return s.page(ctx, page, "explore", s.repo.Posts.FindAll, s.repo.Posts.CountAll)
}

func (s *feedService) CreatePost(ctx context.Context, author model.User, body string) (*model.Post, error) {
	body = strings.TrimSpace(body)
	if body == "" || utf8.RuneCountInString(body) > model.MaxPostLength {
		return nil, ErrInvalidPost
	}

	post, err := s.repo.Posts.Create(ctx, model.Post{
		UserID:   author.ID,
		Body:     body,
		Language: langdetect.Normalize(s.detector.Detect(body)),
	})
	if err != nil {
		s.logger.Sugar().Errorf("failed to create post of user(%s): %s", author.ID.String(), err.Error())
		return nil, ErrInternal
	}

	if err := events.PublishJSON(ctx, s.publisher, events.NEW_POST_QUEUE, events.NewPostEvent{
		PostID:    post.ID,
		AuthorID:  post.UserID,
		Body:      post.Body,
		Language:  post.Language,
		CreatedAt: post.CreatedAt,
	}); err != nil {
		s.logger.Sugar().Errorf("failed to publish to queue(%s): %s", events.NEW_POST_QUEUE, err.Error())
	}

	return post, nil
}
