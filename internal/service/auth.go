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
	"github.com/BloggingApp/microblog-service/internal/repository/store"
	"github.com/BloggingApp/microblog-service/pkg/utils"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	BCRYPT_COST = 10
	// bcrypt rejects passwords longer than this many bytes.
	MAX_PASSWORD_BYTES = 72
)

type authService struct {
	cfg         Config
	logger      *zap.Logger
	repo        *repository.Repository
	publisher   events.Publisher
	userService User
}

func newAuthService(cfg Config, logger *zap.Logger, repo *repository.Repository, publisher events.Publisher, userService User) Auth {
	return &authService{
		cfg:         cfg,
		logger:      logger,
		repo:        repo,
		publisher:   publisher,
		userService: userService,
	}
}

func (s *authService) newJWTPair(user *model.User) (*utils.JWTPair, error) {
	jwtPair, err := utils.GenerateJWTPair(utils.GenerateJWTPairDto{
		Method:       jwt.SigningMethodHS256,
		AccessSecret: []byte(s.cfg.AccessSecret),
		AccessClaims: jwt.MapClaims{
			"id": user.ID.String(),
		},
		AccessExpiry:  s.cfg.AccessTTL,
		RefreshSecret: []byte(s.cfg.RefreshSecret),
		RefreshClaims: jwt.MapClaims{
			"id": user.ID.String(),
		},
		RefreshExpiry: s.cfg.RefreshTTL,
	})
	if err != nil {
		s.logger.Sugar().Errorf("failed to generate jwt pair: %s", err.Error())
		return nil, ErrInternal
	}

	return jwtPair, nil
}

func (s *authService) SignUp(ctx context.Context, input dto.CreateUser) (*model.User, *utils.JWTPair, error) {
	input.Username = strings.TrimSpace(input.Username)
	input.Email = strings.TrimSpace(input.Email)

	if !validUsername(input.Username) {
		return nil, nil, ErrInvalidUsername
	}
	if input.Password != input.Password2 {
		return nil, nil, ErrPasswordsDoNotMatch
	}
	if len(input.Password) > MAX_PASSWORD_BYTES {
		return nil, nil, ErrPasswordTooLong
	}
	if utf8.RuneCountInString(input.Email) > MAX_EMAIL_LENGTH {
		return nil, nil, ErrEmailTooLong
	}

	if _, err := s.repo.Users.FindByUsername(ctx, input.Username); err == nil {
		return nil, nil, ErrUsernameTaken
	} else if !errors.Is(err, store.ErrNotFound) {
		s.logger.Sugar().Errorf("failed to find user(%s): %s", input.Username, err.Error())
		return nil, nil, ErrInternal
	}

	if _, err := s.repo.Users.FindByEmail(ctx, input.Email); err == nil {
		return nil, nil, ErrEmailTaken
	} else if !errors.Is(err, store.ErrNotFound) {
		s.logger.Sugar().Errorf("failed to find user by email: %s", err.Error())
		return nil, nil, ErrInternal
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(input.Password), BCRYPT_COST)
	if err != nil {
		s.logger.Sugar().Errorf("failed to generate password hash: %s", err.Error())
		return nil, nil, ErrInternal
	}

	createdUser, err := s.repo.Users.Create(ctx, model.User{
		Email:        input.Email,
		Username:     input.Username,
		PasswordHash: string(passwordHash),
	})
	if err != nil {
		if errors.Is(err, store.ErrConflict) {
			return nil, nil, ErrUserAlreadyExists
		}

		s.logger.Sugar().Errorf("failed to create user: %s", err.Error())
		return nil, nil, ErrInternal
	}

	jwtPair, err := s.newJWTPair(createdUser)
	if err != nil {
		return nil, nil, err
	}

	return createdUser, jwtPair, nil
}

func (s *authService) SignIn(ctx context.Context, input dto.SignIn) (*model.User, *utils.JWTPair, error) {
	user, err := s.repo.Users.FindByUsername(ctx, strings.TrimSpace(input.Username))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil, ErrInvalidCredentials
		}

		s.logger.Sugar().Errorf("failed to find user(%s): %s", input.Username, err.Error())
		return nil, nil, ErrInternal
	}

	if len(input.Password) > MAX_PASSWORD_BYTES {
		return nil, nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	jwtPair, err := s.newJWTPair(user)
	if err != nil {
		return nil, nil, err
	}

	return user, jwtPair, nil
}

func userIDFromClaims(claims jwt.MapClaims, claim string) (uuid.UUID, bool) {
	id, ok := claims[claim].(string)
	if !ok {
		return uuid.Nil, false
	}

	userID, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, false
	}

	return userID, true
}

func (s *authService) userFromToken(ctx context.Context, token string, secret string, claim string) (*model.User, error) {
	claims, err := utils.DecodeJWT(token, []byte(secret))
	if err != nil {
		return nil, ErrUnauthorized
	}

	userID, ok := userIDFromClaims(claims, claim)
	if !ok {
		return nil, ErrUnauthorized
	}

	user, err := s.userService.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}

	return user, nil
}

func (s *authService) RefreshTokens(ctx context.Context, refreshToken string) (*utils.JWTPair, error) {
	user, err := s.userFromToken(ctx, refreshToken, s.cfg.RefreshSecret, "id")
	if err != nil {
		return nil, err
	}

	return s.newJWTPair(user)
}

func (s *authService) Authenticate(ctx context.Context, accessToken string) (*model.User, error) {
	user, err := s.userFromToken(ctx, accessToken, s.cfg.AccessSecret, "id")
	if err != nil {
		return nil, err
	}

	user.LastSeen = time.Now().UTC()
	if err := s.repo.Users.UpdateLastSeen(ctx, user.ID, user.LastSeen); err != nil {
		s.logger.Sugar().Errorf("failed to update last seen of user(%s): %s", user.ID.String(), err.Error())
	} else {
		uncacheUsers(ctx, s.logger, s.repo, user.Username)
	}

	return user, nil
}

// RequestPasswordReset publishes a reset token for the notification service
// to mail. Unknown emails are ignored so the endpoint cannot be used to probe
// for accounts.
func (s *authService) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := s.repo.Users.FindByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil
		}

		s.logger.Sugar().Errorf("failed to find user by email: %s", err.Error())
		return ErrInternal
	}

	token, err := utils.GenerateJWT(jwt.SigningMethodHS256, []byte(s.cfg.ResetSecret), jwt.MapClaims{
		"reset_password": user.ID.String(),
	}, s.cfg.ResetTTL)
	if err != nil {
		s.logger.Sugar().Errorf("failed to generate reset token: %s", err.Error())
		return ErrInternal
	}

	if err := events.PublishJSON(ctx, s.publisher, events.USER_FORGOT_PASSWORD_QUEUE, events.PasswordResetEvent{
		Email:    user.Email,
		Username: user.Username,
		Token:    token,
	}); err != nil {
		s.logger.Sugar().Errorf("failed to publish to queue(%s): %s", events.USER_FORGOT_PASSWORD_QUEUE, err.Error())
		return ErrInternal
	}

	return nil
}

func (s *authService) ResetPassword(ctx context.Context, token string, input dto.ResetPassword) error {
	if input.Password != input.Password2 {
		return ErrPasswordsDoNotMatch
	}
	if len(input.Password) > MAX_PASSWORD_BYTES {
		return ErrPasswordTooLong
	}

	user, err := s.userFromToken(ctx, token, s.cfg.ResetSecret, "reset_password")
	if err != nil {
		if errors.Is(err, ErrUnauthorized) {
			return ErrInvalidToken
		}
		return err
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(input.Password), BCRYPT_COST)
	if err != nil {
		s.logger.Sugar().Errorf("failed to generate password hash: %s", err.Error())
		return ErrInternal
	}

	if err := s.repo.Users.UpdatePassword(ctx, user.ID, string(passwordHash)); err != nil {
		s.logger.Sugar().Errorf("failed to update password of user(%s): %s", user.ID.String(), err.Error())
		return ErrInternal
	}
	uncacheUsers(ctx, s.logger, s.repo, user.Username)

	return nil
}
