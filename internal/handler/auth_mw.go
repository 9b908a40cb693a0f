package handler

import (
	"strings"

	"github.com/BloggingApp/microblog-service/internal/dto"
	"github.com/gin-gonic/gin"
)

func (h *Handler) authMiddleware(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		h.abortUnauthorized(c, errNotAuthorized)
		return
	}

	accessToken := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	if accessToken == "" {
		h.abortUnauthorized(c, errNotAuthorized)
		return
	}

	user, err := h.services.Auth.Authenticate(c.Request.Context(), accessToken)
	if err != nil {
		c.AbortWithStatusJSON(statusFor(err), dto.NewBasicResponse(false, err.Error()))
		return
	}

	c.Set("user", *user)

	c.Next()
}
