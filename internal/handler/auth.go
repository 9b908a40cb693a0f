package handler

import (
	"net/http"

	"github.com/BloggingApp/microblog-service/internal/dto"
	"github.com/BloggingApp/microblog-service/pkg/utils"
	"github.com/gin-gonic/gin"
)

const refreshTokenCookie = "refresh_token"

func setRefreshCookie(c *gin.Context, tokenPair *utils.JWTPair) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(refreshTokenCookie, tokenPair.RefreshToken, int(tokenPair.RefreshTokenExp.Seconds()), "/", "", true, true)
}

func (h *Handler) authSignUp(c *gin.Context) {
	var input dto.CreateUser
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return
	}

	user, tokenPair, err := h.services.Auth.SignUp(c.Request.Context(), input)
	if err != nil {
		h.respondError(c, err)
		return
	}

	setRefreshCookie(c, tokenPair)

	c.JSON(http.StatusCreated, dto.AuthResponse{Ok: true, AccessToken: tokenPair.AccessToken, User: dto.GetMeDtoFromUser(*user)})
}

func (h *Handler) authSignIn(c *gin.Context) {
	var input dto.SignIn
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return
	}

	user, tokenPair, err := h.services.Auth.SignIn(c.Request.Context(), input)
	if err != nil {
		h.respondError(c, err)
		return
	}

	setRefreshCookie(c, tokenPair)

	c.JSON(http.StatusOK, dto.AuthResponse{Ok: true, AccessToken: tokenPair.AccessToken, User: dto.GetMeDtoFromUser(*user)})
}

func (h *Handler) authRefresh(c *gin.Context) {
	refreshToken, err := c.Cookie(refreshTokenCookie)
	if err != nil {
		c.JSON(http.StatusUnauthorized, dto.NewBasicResponse(false, errNotAuthorized.Error()))
		return
	}

	tokenPair, err := h.services.Auth.RefreshTokens(c.Request.Context(), refreshToken)
	if err != nil {
		h.respondError(c, err)
		return
	}

	setRefreshCookie(c, tokenPair)

	c.JSON(http.StatusCreated, dto.RefreshResponse{Ok: true, AccessToken: tokenPair.AccessToken})
}

func (h *Handler) authRequestPasswordReset(c *gin.Context) {
	var input dto.ResetPasswordRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return
	}

	if err := h.services.Auth.RequestPasswordReset(c.Request.Context(), input.Email); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewBasicResponse(true, "Check your email for the instructions to reset your password"))
}

func (h *Handler) authResetPassword(c *gin.Context) {
	var input dto.ResetPassword
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return
	}

	if err := h.services.Auth.ResetPassword(c.Request.Context(), c.Param("token"), input); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewBasicResponse(true, "Your password has been reset."))
}
