package handler

import (
	"net/http"

	"github.com/BloggingApp/microblog-service/internal/dto"
	"github.com/gin-gonic/gin"
)

func (h *Handler) postsTimeline(c *gin.Context) {
	user := h.getUser(c)

	page, err := h.services.Feed.Timeline(c.Request.Context(), user.ID, pageQuery(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

func (h *Handler) postsExplore(c *gin.Context) {
	page, err := h.services.Feed.Explore(c.Request.Context(), pageQuery(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

func (h *Handler) postsByUser(c *gin.Context) {
	page, err := h.services.Feed.UserPosts(c.Request.Context(), c.GetString("username"), pageQuery(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

func (h *Handler) postsCreate(c *gin.Context) {
	user := h.getUser(c)

	var input dto.CreatePostRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return
	}

	post, err := h.services.Feed.CreatePost(c.Request.Context(), *user, input.Body)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, post)
}

func (h *Handler) translate(c *gin.Context) {
	var input dto.TranslateRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return
	}

	text, err := h.services.Translation.Translate(c.Request.Context(), input)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.TranslateResponse{Text: text})
}
