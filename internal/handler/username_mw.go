package handler

import (
	"net/http"
	"strings"

	"github.com/BloggingApp/microblog-service/internal/dto"
	"github.com/gin-gonic/gin"
)

func (h *Handler) usernameMiddleware(c *gin.Context) {
	username := strings.TrimSpace(c.Param("username"))
	if username == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewBasicResponse(false, errUsernameIsNotProvided.Error()))
		return
	}

	if !strings.HasPrefix(username, "@") {
		c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewBasicResponse(false, errInvalidUsername.Error()))
		return
	}

	extractedUsername := strings.TrimSpace(strings.TrimPrefix(username, "@"))
	if extractedUsername == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewBasicResponse(false, errUsernameIsNotProvided.Error()))
		return
	}

	c.Set("username", extractedUsername)

	c.Next()
}
