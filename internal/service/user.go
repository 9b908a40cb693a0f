package service

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/BloggingApp/microblog-service/internal/dto"
	"github.com/BloggingApp/microblog-service/internal/events"
	"github.com/BloggingApp/microblog-service/internal/model"
	"github.com/BloggingApp/microblog-service/internal/repository"
	"github.com/BloggingApp/microblog-service/internal/repository/redisrepo"
	"github.com/BloggingApp/microblog-service/internal/repository/store"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	USER_CACHE_TTL  = time.Hour * 3
	COUNT_CACHE_TTL = time.Minute * 10

	MIN_USERNAME_LENGTH = 3
	MAX_USERNAME_LENGTH = 64
	MAX_EMAIL_LENGTH    = 120
)

type userService struct {
	logger    *zap.Logger
	repo      *repository.Repository
	publisher events.Publisher
}

func newUserService(logger *zap.Logger, repo *repository.Repository, publisher events.Publisher) *userService {
	return &userService{
		logger:    logger,
		repo:      repo,
		publisher: publisher,
	}
}

func (s *userService) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := s.repo.Users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}

		s.logger.Sugar().Errorf("failed to find user(%s): %s", id.String(), err.Error())
		return nil, ErrInternal
	}

	return user, nil
}

func (s *userService) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	userCache, err := redisrepo.Get[model.UserWithoutPasswordHash](s.repo.Redis.Default, ctx, redisrepo.UserKey(username))
	if err == nil && userCache != nil {
		user := userCache.User()
		return &user, nil
	}
	if err != nil && !redisrepo.IsMiss(err) {
		s.logger.Sugar().Errorf("failed to get user(%s) from redis: %s", username, err.Error())
	}

	user, err := s.repo.Users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}

		s.logger.Sugar().Errorf("failed to find user(%s): %s", username, err.Error())
		return nil, ErrInternal
	}

	if err := s.repo.Redis.SetJSON(ctx, redisrepo.UserKey(username), model.UserWithoutPasswordHashFromUser(*user), USER_CACHE_TTL); err != nil {
		s.logger.Sugar().Errorf("failed to set user(%s) in redis: %s", username, err.Error())
	}

	return user, nil
}

// uncacheUsers drops the cached profiles of usernames.
func uncacheUsers(ctx context.Context, logger *zap.Logger, repo *repository.Repository, usernames ...string) {
	keys := make([]string, 0, len(usernames))
	for _, username := range usernames {
		keys = append(keys, redisrepo.UserKey(username))
	}

	if err := repo.Redis.Del(ctx, keys...).Err(); err != nil {
		logger.Sugar().Errorf("failed to delete users(%s) from redis: %s", strings.Join(usernames, ", "), err.Error())
	}
}

// cachedCount serves a follow counter from redis, falling back to count.
func (s *userService) cachedCount(ctx context.Context, key string, count func(ctx context.Context, id uuid.UUID) (int64, error), id uuid.UUID) (int64, error) {
	n, err := s.repo.Redis.GetInt64(ctx, key)
	if err == nil {
		return n, nil
	}
	if !redisrepo.IsMiss(err) {
		s.logger.Sugar().Errorf("failed to get %s from redis: %s", key, err.Error())
	}

	n, err = count(ctx, id)
	if err != nil {
		s.logger.Sugar().Errorf("failed to count %s: %s", key, err.Error())
		return 0, ErrInternal
	}

	if err := s.repo.Redis.Set(ctx, key, n, COUNT_CACHE_TTL); err != nil {
		s.logger.Sugar().Errorf("failed to set %s in redis: %s", key, err.Error())
	}

	return n, nil
}

func (s *userService) GetProfile(ctx context.Context, viewer model.User, username string) (*dto.GetUserDto, error) {
	user, err := s.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	profile := dto.GetUserDtoFromUser(*user)

	profile.Followers, err = s.cachedCount(ctx, redisrepo.FollowersCountKey(user.ID.String()), s.repo.Followers.CountFollowers, user.ID)
	if err != nil {
		return nil, err
	}

	profile.Following, err = s.cachedCount(ctx, redisrepo.FollowingCountKey(user.ID.String()), s.repo.Followers.CountFollowing, user.ID)
	if err != nil {
		return nil, err
	}

	profile.IsFollowing, err = s.repo.Followers.IsFollowing(ctx, viewer.ID, user.ID)
	if err != nil {
		s.logger.Sugar().Errorf("failed to check if user(%s) follows user(%s): %s", viewer.ID.String(), user.ID.String(), err.Error())
		return nil, ErrInternal
	}

	return profile, nil
}

func validUsername(username string) bool {
	n := utf8.RuneCountInString(username)
	return n >= MIN_USERNAME_LENGTH && n <= MAX_USERNAME_LENGTH && !strings.ContainsAny(username, " \t\n@/")
}

func (s *userService) Update(ctx context.Context, user model.User, updates map[string]interface{}) (*model.User, error) {
	clean := make(map[string]interface{}, len(updates))
	for field, value := range updates {
		str, ok := value.(string)
		if !ok {
			return nil, ErrInvalidUpdate
		}

		switch field {
		case "username":
			str = strings.TrimSpace(str)
			if !validUsername(str) {
				return nil, ErrInvalidUsername
			}
			if str != user.Username {
				if _, err := s.repo.Users.FindByUsername(ctx, str); err == nil {
					return nil, ErrUsernameTaken
				} else if !errors.Is(err, store.ErrNotFound) {
					s.logger.Sugar().Errorf("failed to find user(%s): %s", str, err.Error())
					return nil, ErrInternal
				}
			}
		case "email":
			str = strings.TrimSpace(str)
			if !strings.Contains(str, "@") {
				return nil, ErrInvalidUpdate
			}
			if utf8.RuneCountInString(str) > MAX_EMAIL_LENGTH {
				return nil, ErrEmailTooLong
			}
			if !strings.EqualFold(str, user.Email) {
				if _, err := s.repo.Users.FindByEmail(ctx, str); err == nil {
					return nil, ErrEmailTaken
				} else if !errors.Is(err, store.ErrNotFound) {
					s.logger.Sugar().Errorf("failed to find user by email: %s", err.Error())
					return nil, ErrInternal
				}
			}
		case "about_me":
			if utf8.RuneCountInString(str) > model.MaxAboutMeLength {
				return nil, ErrAboutMeTooLong
			}
		default:
			return nil, ErrInvalidUpdate
		}

		clean[field] = str
	}

	if len(clean) > 0 {
		if err := s.repo.Users.UpdateByID(ctx, user.ID, clean); err != nil {
			switch {
			case errors.Is(err, store.ErrConflict):
				return nil, ErrUserAlreadyExists
			case errors.Is(err, store.ErrNotFound):
				return nil, ErrUserNotFound
			}

			s.logger.Sugar().Errorf("failed to update user(%s): %s", user.ID.String(), err.Error())
			return nil, ErrInternal
		}

		usernames := []string{user.Username}
		if username, ok := clean["username"].(string); ok {
			usernames = append(usernames, username)
		}
		uncacheUsers(ctx, s.logger, s.repo, usernames...)
	}

	return s.FindByID(ctx, user.ID)
}

func (s *userService) invalidateCounts(ctx context.Context, followerID uuid.UUID, followedID uuid.UUID) {
	if err := s.repo.Redis.Del(
		ctx,
		redisrepo.FollowingCountKey(followerID.String()),
		redisrepo.FollowersCountKey(followedID.String()),
	).Err(); err != nil {
		s.logger.Sugar().Errorf("failed to delete follow counters from redis: %s", err.Error())
	}
}

func (s *userService) publishFollow(ctx context.Context, followerID uuid.UUID, followedID uuid.UUID, following bool) {
	if err := events.PublishJSON(ctx, s.publisher, events.FOLLOWS_QUEUE, events.FollowEvent{
		FollowerID: followerID,
		FollowedID: followedID,
		Following:  following,
		At:         time.Now().UTC(),
	}); err != nil {
		s.logger.Sugar().Errorf("failed to publish to queue(%s): %s", events.FOLLOWS_QUEUE, err.Error())
	}
}

func (s *userService) Follow(ctx context.Context, follower model.User, username string) (*model.User, error) {
	followed, err := s.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	if followed.ID == follower.ID {
		return nil, ErrCannotFollowYourself
	}

	if err := s.repo.Followers.Follow(ctx, follower.ID, followed.ID); err != nil {
		s.logger.Sugar().Errorf("failed to follow user(%s) by user(%s): %s", followed.ID.String(), follower.ID.String(), err.Error())
		return nil, ErrInternal
	}

	s.invalidateCounts(ctx, follower.ID, followed.ID)
	s.publishFollow(ctx, follower.ID, followed.ID, true)

	return followed, nil
}

func (s *userService) Unfollow(ctx context.Context, follower model.User, username string) (*model.User, error) {
	followed, err := s.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	if followed.ID == follower.ID {
		return nil, ErrCannotUnfollowYourself
	}

	if err := s.repo.Followers.Unfollow(ctx, follower.ID, followed.ID); err != nil {
		s.logger.Sugar().Errorf("failed to unfollow user(%s) by user(%s): %s", followed.ID.String(), follower.ID.String(), err.Error())
		return nil, ErrInternal
	}

	s.invalidateCounts(ctx, follower.ID, followed.ID)
	s.publishFollow(ctx, follower.ID, followed.ID, false)

	return followed, nil
}

func (s *userService) FindFollowers(ctx context.Context, userID uuid.UUID, limit int, offset int) ([]*dto.FollowerDto, error) {
	store.MaximumLimit(&limit)
	if offset < 0 {
		offset = 0
	}

	followers, err := s.repo.Followers.FindFollowers(ctx, userID, limit, offset)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find followers of user(%s): %s", userID.String(), err.Error())
		return nil, ErrInternal
	}

	return dto.FollowerDtosFromFullFollowers(followers), nil
}

func (s *userService) FindFollowing(ctx context.Context, userID uuid.UUID, limit int, offset int) ([]*dto.FollowerDto, error) {
	store.MaximumLimit(&limit)
	if offset < 0 {
		offset = 0
	}

	following, err := s.repo.Followers.FindFollowing(ctx, userID, limit, offset)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find users followed by user(%s): %s", userID.String(), err.Error())
		return nil, ErrInternal
	}

	return dto.FollowerDtosFromFullFollowers(following), nil
}
