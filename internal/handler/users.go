package handler

import (
	"fmt"
	"net/http"

	"github.com/BloggingApp/microblog-service/internal/dto"
	"github.com/gin-gonic/gin"
)

func (h *Handler) usersMe(c *gin.Context) {
	user := h.getUser(c)

	c.JSON(http.StatusOK, dto.GetMeDtoFromUser(*user))
}

func (h *Handler) usersGetByUsername(c *gin.Context) {
	user := h.getUser(c)
	username := c.GetString("username")

	profile, err := h.services.User.GetProfile(c.Request.Context(), *user, username)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (h *Handler) usersGetFollowers(c *gin.Context) {
	user := h.getUser(c)

	limit, offset, ok := limitOffsetQuery(c)
	if !ok {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, errInvalidLimit.Error()))
		return
	}

	followers, err := h.services.User.FindFollowers(c.Request.Context(), user.ID, limit, offset)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, followers)
}

func (h *Handler) usersGetFollowing(c *gin.Context) {
	user := h.getUser(c)

	limit, offset, ok := limitOffsetQuery(c)
	if !ok {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, errInvalidLimit.Error()))
		return
	}

	following, err := h.services.User.FindFollowing(c.Request.Context(), user.ID, limit, offset)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, following)
}

func (h *Handler) usersUpdate(c *gin.Context) {
	user := h.getUser(c)

	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return
	}

	updated, err := h.services.User.Update(c.Request.Context(), *user, updates)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.GetMeDtoFromUser(*updated))
}

func (h *Handler) usersFollow(c *gin.Context) {
	user := h.getUser(c)

	followed, err := h.services.User.Follow(c.Request.Context(), *user, c.GetString("username"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewBasicResponse(true, fmt.Sprintf("You are following %s!", followed.Username)))
}

func (h *Handler) usersUnfollow(c *gin.Context) {
	user := h.getUser(c)

	unfollowed, err := h.services.User.Unfollow(c.Request.Context(), *user, c.GetString("username"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewBasicResponse(true, fmt.Sprintf("You are not following %s.", unfollowed.Username)))
}
