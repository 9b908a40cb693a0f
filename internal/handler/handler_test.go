package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/BloggingApp/microblog-service/internal/dto"
	"github.com/BloggingApp/microblog-service/internal/metrics"
	"github.com/BloggingApp/microblog-service/internal/repository"
	"github.com/BloggingApp/microblog-service/internal/repository/memory"
	"github.com/BloggingApp/microblog-service/internal/service"
	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fixedDetector string

func (d fixedDetector) Detect(string) string { return string(d) }

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	services := service.New(service.Config{
		PostsPerPage:  2,
		AccessSecret:  "access",
		RefreshSecret: "refresh",
		ResetSecret:   "reset",
		AccessTTL:     time.Hour,
		RefreshTTL:    2 * time.Hour,
		ResetTTL:      10 * time.Minute,
	}, service.Deps{
		Logger:   zap.NewNop(),
		Repo:     repository.NewMemory(memory.New(), rdb),
		Detector: fixedDetector("en"),
	})

	return New(services, zap.NewNop(), metrics.New(), "http://localhost:3000").InitRoutes()
}

func do(t *testing.T, r *gin.Engine, method string, path string, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func signUp(t *testing.T, r *gin.Engine, username string) string {
	t.Helper()

	w := do(t, r, http.MethodPost, "/api/v1/auth/sign-up", "", dto.CreateUser{
		Username:  username,
		Email:     username + "@example.com",
		Password:  "password123",
		Password2: "password123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp dto.AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, username, resp.User.Username)
	return resp.AccessToken
}

func details(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp dto.BasicResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Details
}

func TestAuth_SignUpSetsRefreshCookie(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodPost, "/api/v1/auth/sign-up", "", dto.CreateUser{
		Username:  "john",
		Email:     "john@example.com",
		Password:  "password123",
		Password2: "password123",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var found bool
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == refreshTokenCookie {
			found = true
			assert.True(t, cookie.HttpOnly)
			assert.NotEmpty(t, cookie.Value)
		}
	}
	assert.True(t, found)

	w = do(t, r, http.MethodPost, "/api/v1/auth/sign-up", "", dto.CreateUser{
		Username:  "john",
		Email:     "other@example.com",
		Password:  "password123",
		Password2: "password123",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	long := strings.Repeat("é", 40)
	w = do(t, r, http.MethodPost, "/api/v1/auth/sign-up", "", dto.CreateUser{
		Username:  "jean",
		Email:     "jean@example.com",
		Password:  long,
		Password2: long,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, r, http.MethodPost, "/api/v1/auth/sign-in", "", dto.SignIn{Username: "john", Password: "nope"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(t, r, http.MethodPost, "/api/v1/auth/sign-in", "", dto.SignIn{Username: "john", Password: "password123"})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthMiddleware(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodGet, "/api/v1/feed", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(t, r, http.MethodGet, "/api/v1/feed", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token := signUp(t, r, "john")
	w = do(t, r, http.MethodGet, "/api/v1/users/@me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var me dto.GetMeDto
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &me))
	assert.Equal(t, "john", me.Username)
	assert.Equal(t, "john@example.com", me.Email)
}

func TestFeed_PageParsing(t *testing.T) {
	r := newTestRouter(t)
	token := signUp(t, r, "john")

	for _, body := range []string{"one", "two", "three"} {
		w := do(t, r, http.MethodPost, "/api/v1/posts", token, dto.CreatePostRequest{Body: body})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	tests := []struct {
		query   string
		status  int
		page    int
		items   int
		hasNext bool
	}{
		{query: "", status: http.StatusOK, page: 1, items: 2, hasNext: true},
		{query: "?page=abc", status: http.StatusOK, page: 1, items: 2, hasNext: true},
		{query: "?page=2", status: http.StatusOK, page: 2, items: 1, hasNext: false},
		{query: "?page=9", status: http.StatusOK, page: 9, items: 0, hasNext: false},
		{query: "?page=4611686018427387905", status: http.StatusOK, page: 4611686018427387905, items: 0, hasNext: false},
		{query: "?page=0", status: http.StatusBadRequest},
		{query: "?page=-3", status: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			w := do(t, r, http.MethodGet, "/api/v1/feed"+tt.query, token, nil)
			require.Equal(t, tt.status, w.Code)
			if tt.status != http.StatusOK {
				return
			}

			var page dto.PostsPage
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
			assert.Equal(t, tt.page, page.Page)
			assert.Len(t, page.Items, tt.items)
			assert.Equal(t, tt.hasNext, page.HasNext)
		})
	}

	w := do(t, r, http.MethodGet, "/api/v1/feed", token, nil)
	var page dto.PostsPage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Equal(t, "three", page.Items[0].Body)
	assert.Equal(t, "en", page.Items[0].Language)
}

func TestFollow(t *testing.T) {
	r := newTestRouter(t)
	john := signUp(t, r, "john")
	signUp(t, r, "susan")

	w := do(t, r, http.MethodPut, "/api/v1/users/follow/@john", john, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "You cannot follow yourself!", details(t, w))

	w = do(t, r, http.MethodPut, "/api/v1/users/unfollow/@john", john, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "You cannot unfollow yourself!", details(t, w))

	w = do(t, r, http.MethodPut, "/api/v1/users/follow/@ghost", john, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, r, http.MethodPut, "/api/v1/users/follow/susan", john, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, r, http.MethodPut, "/api/v1/users/follow/@susan", john, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "You are following susan!", details(t, w))

	w = do(t, r, http.MethodGet, "/api/v1/users/byUsername/@susan", john, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var profile dto.GetUserDto
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &profile))
	assert.Equal(t, int64(1), profile.Followers)
	assert.True(t, profile.IsFollowing)

	w = do(t, r, http.MethodGet, "/api/v1/users/@me/following?limit=10&offset=0", john, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var following []dto.FollowerDto
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &following))
	require.Len(t, following, 1)
	assert.Equal(t, "susan", following[0].Username)

	w = do(t, r, http.MethodGet, "/api/v1/users/@me/following?limit=ten", john, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, r, http.MethodPut, "/api/v1/users/unfollow/@susan", john, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "You are not following susan.", details(t, w))
}

func TestUpdateMe(t *testing.T) {
	r := newTestRouter(t)
	token := signUp(t, r, "john")
	signUp(t, r, "susan")

	w := do(t, r, http.MethodPatch, "/api/v1/users/@me", token, map[string]any{"about_me": "hi there"})
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, r, http.MethodPatch, "/api/v1/users/@me", token, map[string]any{"username": "susan"})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestTranslate_NotConfigured(t *testing.T) {
	r := newTestRouter(t)
	token := signUp(t, r, "john")

	w := do(t, r, http.MethodPost, "/api/v1/translate", token, dto.TranslateRequest{Text: "hola", DestLanguage: "en"})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	r := newTestRouter(t)

	do(t, r, http.MethodGet, "/api/v1/explore", "", nil)
	w := do(t, r, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "http_requests_total")
}

func TestRequestID(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/explore", nil).WithContext(context.Background())
	req.Header.Set(requestIDHeader, "abc")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc", w.Header().Get(requestIDHeader))
}
