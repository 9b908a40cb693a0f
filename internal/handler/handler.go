package handler

import (
	"net/http"
	"strconv"

	"github.com/BloggingApp/microblog-service/internal/dto"
	"github.com/BloggingApp/microblog-service/internal/metrics"
	"github.com/BloggingApp/microblog-service/internal/model"
	"github.com/BloggingApp/microblog-service/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	services     *service.Service
	logger       *zap.Logger
	metrics      *metrics.Metrics
	clientOrigin string
}

// New builds the HTTP layer. m may be nil, in which case no metrics are
// collected and /metrics is not served.
func New(services *service.Service, logger *zap.Logger, m *metrics.Metrics, clientOrigin string) *Handler {
	return &Handler{
		services:     services,
		logger:       logger,
		metrics:      m,
		clientOrigin: clientOrigin,
	}
}

func (h *Handler) InitRoutes() *gin.Engine {
	r := gin.New()

	r.Use(gin.Recovery(), h.requestLogger)
	if h.metrics != nil {
		r.Use(h.metrics.Middleware)
		r.GET("/metrics", gin.WrapH(h.metrics.Handler()))
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{h.clientOrigin},
		AllowMethods:     []string{"POST", "GET", "PATCH", "PUT"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	v1 := r.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/sign-up", h.authSignUp)
			auth.POST("/sign-in", h.authSignIn)
			auth.POST("/refresh", h.authRefresh)
			auth.POST("/reset-password/request", h.authRequestPasswordReset)
			auth.POST("/reset-password/:token", h.authResetPassword)
		}

		v1.GET("/feed", h.authMiddleware, h.postsTimeline)
		v1.GET("/explore", h.authMiddleware, h.postsExplore)
		v1.POST("/posts", h.authMiddleware, h.postsCreate)
		v1.POST("/translate", h.authMiddleware, h.translate)

		users := v1.Group("/users")
		{
			me := users.Group("/@me")
			{
				me.Use(h.authMiddleware)

				me.GET("", h.usersMe)
				me.PATCH("", h.usersUpdate)
				me.GET("/followers", h.usersGetFollowers)
				me.GET("/following", h.usersGetFollowing)
			}

			users.GET("/byUsername/:username", h.authMiddleware, h.usernameMiddleware, h.usersGetByUsername)
			users.GET("/byUsername/:username/posts", h.authMiddleware, h.usernameMiddleware, h.postsByUser)
			users.PUT("/follow/:username", h.authMiddleware, h.usernameMiddleware, h.usersFollow)
			users.PUT("/unfollow/:username", h.authMiddleware, h.usernameMiddleware, h.usersUnfollow)
		}
	}

	return r
}

func (h *Handler) getUser(c *gin.Context) *model.User {
	userReq, _ := c.Get("user")

	user, ok := userReq.(model.User)
	if !ok {
		return nil
	}

	return &user
}

// pageQuery reads ?page=, defaulting to the first page when it is missing
// or not a number. Numbers below 1 are passed through and rejected later.
func pageQuery(c *gin.Context) int {
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil {
		return 1
	}

	return page
}

func limitOffsetQuery(c *gin.Context) (int, int, bool) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil {
		return 0, 0, false
	}

	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil {
		return 0, 0, false
	}

	return limit, offset, true
}

func (h *Handler) abortUnauthorized(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewBasicResponse(false, err.Error()))
}
