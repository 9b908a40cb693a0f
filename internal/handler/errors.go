package handler

import (
	"errors"
	"net/http"

	"github.com/BloggingApp/microblog-service/internal/dto"
	"github.com/BloggingApp/microblog-service/internal/service"
	"github.com/gin-gonic/gin"
)

var (
	errNotAuthorized         = errors.New("user is not authorized")
	errUsernameIsNotProvided = errors.New("please provide username")
	errInvalidUsername       = errors.New("invalid username, it should start with: '@'")
	errInvalidLimit          = errors.New("limit and offset must be integers")
)

func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrInternal):
		return http.StatusInternalServerError
	case errors.Is(err, service.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrUnauthorized),
		errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrUsernameTaken),
		errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrUserAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, service.ErrTranslationUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, service.ErrTranslationFailed):
		return http.StatusBadGateway
	default:
		return http.StatusBadRequest
	}
}

func (h *Handler) respondError(c *gin.Context, err error) {
	c.JSON(statusFor(err), dto.NewBasicResponse(false, err.Error()))
}
