package router_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Payphone-Digital/admin-panel/internal/constants"
	"github.com/Payphone-Digital/admin-panel/internal/handler"
	"github.com/Payphone-Digital/admin-panel/internal/middleware"
	"github.com/Payphone-Digital/admin-panel/internal/model"
	"github.com/Payphone-Digital/admin-panel/internal/repository"
	"github.com/Payphone-Digital/admin-panel/internal/router"
	"github.com/Payphone-Digital/admin-panel/internal/service"
	"github.com/Payphone-Digital/admin-panel/internal/testutil"
	"github.com/Payphone-Digital/admin-panel/pkg/cache"
	"github.com/Payphone-Digital/admin-panel/pkg/validation"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const password = "secret"

type apiSuite struct {
	t      *testing.T
	db     *gorm.DB
	engine *gin.Engine
}

func newAPI(t *testing.T) *apiSuite {
	t.Helper()
	gin.SetMode(gin.TestMode)
	require.NoError(t, validation.Setup())

	db := testutil.NewDB(t)
	cfg := testutil.TestConfig()

	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	store := cache.New[[]byte](0)
	userCache := service.NewMemoryUserCache(store, constants.DefaultCacheTTL)

	authService := service.NewAuthService(userRepo, service.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpirationTime), userCache)

	engine := router.NewRouter(
		handler.NewUserHandler(service.NewUserService(userRepo, userCache)),
		handler.NewAuthHandler(authService),
		handler.NewPostHandler(service.NewPostService(postRepo, userRepo)),
		handler.NewHealthHandler(db, nil, nil, "test"),
		middleware.NewJWTMiddleware(authService),
		cfg,
	).SetupRoutes()

	return &apiSuite{t: t, db: db, engine: engine}
}

func (s *apiSuite) do(method, path, token string, body any) (int, map[string]any) {
	s.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(s.t, err)
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
	s.engine.ServeHTTP(w, req)

	var out map[string]any
	if w.Body.Len() > 0 {
		require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	}
	return w.Code, out
}

func (s *apiSuite) login(email string) string {
	s.t.Helper()
	code, body := s.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{"email": email, "password": password})
	require.Equal(s.t, http.StatusOK, code, body)
	return body["token"].(string)
}

func (s *apiSuite) user(email, role string) *model.User {
	return testutil.CreateUser(s.t, s.db, email, password, role)
}

func TestHealth(t *testing.T) {
	api := newAPI(t)

	code, body := api.do(http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "healthy", body["status"])

	checks := body["checks"].(map[string]any)
	assert.Equal(t, "disabled", checks["redis"].(map[string]any)["status"])
}

func TestLogin(t *testing.T) {
	api := newAPI(t)
	api.user("admin@example.com", model.RoleAdmin)
	api.user("user@example.com", model.RoleUser)

	code, body := api.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{"email": "ADMIN@example.com", "password": password})
	require.Equal(t, http.StatusOK, code)
	assert.NotEmpty(t, body["token"])
	assert.Equal(t, constants.LandingAdmin, body["redirect"])
	assert.NotContains(t, body["user"], "password")

	code, body = api.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{"email": "user@example.com", "password": password})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, constants.LandingUser, body["redirect"])

	code, body = api.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{"email": "user@example.com", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "INVALID_CREDENTIALS", body["code"])

	code, body = api.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{"email": "not-an-email"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "INVALID_INPUT", body["code"])
	assert.Contains(t, body["details"], "email")
	assert.Contains(t, body["details"], "password")
}

func TestSessionAndLogout(t *testing.T) {
	api := newAPI(t)
	u := api.user("user@example.com", model.RoleUser)
	token := api.login(u.Email)

	code, body := api.do(http.MethodGet, "/api/v1/auth/session", token, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, u.ID, body["user_id"])
	assert.Equal(t, model.RoleUser, body["role"])

	code, _ = api.do(http.MethodPost, "/api/v1/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, code)

	code, body = api.do(http.MethodGet, "/api/v1/auth/session", token, nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "UNAUTHORIZED", body["code"])
}

func TestAuthRequired(t *testing.T) {
	api := newAPI(t)

	for _, path := range []string{"/api/v1/users", "/api/v1/users/me", "/api/v1/posts", "/api/v1/auth/session"} {
		code, body := api.do(http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, code, path)
		assert.Equal(t, "UNAUTHORIZED", body["code"], path)
	}

	code, _ := api.do(http.MethodGet, "/api/v1/users/me", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestUserRoutes_AdminOnly(t *testing.T) {
	api := newAPI(t)
	u := api.user("user@example.com", model.RoleUser)
	token := api.login(u.Email)

	code, _ := api.do(http.MethodGet, "/api/v1/users", token, nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _ = api.do(http.MethodPost, "/api/v1/users", token, map[string]string{"email": "x@example.com", "password": "p", "role": "user"})
	assert.Equal(t, http.StatusUnauthorized, code)

	code, body := api.do(http.MethodGet, "/api/v1/users/me", token, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, u.Email, body["email"])
}

func TestUserList_CursorPages(t *testing.T) {
	api := newAPI(t)
	admin := api.user("admin@example.com", model.RoleAdmin)
	ids := []string{admin.ID}
	for i := range 4 {
		ids = append(ids, api.user(fmt.Sprintf("u%d@example.com", i), model.RoleUser).ID)
	}
	token := api.login(admin.Email)

	itemIDs := func(body map[string]any) []string {
		var out []string
		for _, item := range body["items"].([]any) {
			out = append(out, item.(map[string]any)["id"].(string))
		}
		return out
	}

	code, body := api.do(http.MethodGet, "/api/v1/users?page_size=2", token, nil)
	require.Equal(t, http.StatusOK, code, body)
	assert.Equal(t, ids[:2], itemIDs(body))
	assert.Equal(t, ids[2], body["next_cursor"])
	assert.NotContains(t, body, "prev_cursor")

	// The cursor record itself is the exclusive boundary.
	code, body = api.do(http.MethodGet, "/api/v1/users?page_size=2&cursor="+ids[2], token, nil)
	require.Equal(t, http.StatusOK, code, body)
	assert.Equal(t, ids[3:], itemIDs(body))
	assert.NotContains(t, body, "next_cursor")
	assert.Equal(t, ids[3], body["prev_cursor"])

	code, body = api.do(http.MethodGet, "/api/v1/users?page_size=2&direction=backward", token, nil)
	require.Equal(t, http.StatusOK, code, body)
	assert.Equal(t, ids[3:], itemIDs(body))
	assert.Equal(t, ids[2], body["prev_cursor"])

	code, body = api.do(http.MethodGet, "/api/v1/users?page_size=2&cursor=missing", token, nil)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "INVALID_CURSOR", body["code"])

	code, body = api.do(http.MethodGet, "/api/v1/users?page_size=0", token, nil)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "INVALID_INPUT", body["code"])

	code, _ = api.do(http.MethodGet, "/api/v1/users?direction=sideways", token, nil)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestUserCRUD(t *testing.T) {
	api := newAPI(t)
	admin := api.user("admin@example.com", model.RoleAdmin)
	token := api.login(admin.Email)

	code, body := api.do(http.MethodPost, "/api/v1/users", token, map[string]any{
		"email": "New@Example.com", "password": "pw", "role": "user", "name": "New",
	})
	require.Equal(t, http.StatusCreated, code, body)
	id := body["id"].(string)
	assert.Equal(t, "new@example.com", body["email"])
	assert.Equal(t, "New", body["name"])

	code, body = api.do(http.MethodPost, "/api/v1/users", token, map[string]any{
		"email": "new@example.com", "password": "pw", "role": "user",
	})
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "EMAIL_EXISTS", body["code"])

	code, body = api.do(http.MethodPut, "/api/v1/users/"+id, token, map[string]any{"name": nil, "role": "admin"})
	require.Equal(t, http.StatusOK, code, body)
	assert.Equal(t, "admin", body["role"])
	assert.Nil(t, body["name"])

	code, _ = api.do(http.MethodGet, "/api/v1/users/"+id, token, nil)
	assert.Equal(t, http.StatusOK, code)

	code, body = api.do(http.MethodDelete, "/api/v1/users/"+admin.ID, token, nil)
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "SELF_DELETION", body["code"])

	code, _ = api.do(http.MethodDelete, "/api/v1/users/"+id, token, nil)
	assert.Equal(t, http.StatusOK, code)

	code, body = api.do(http.MethodGet, "/api/v1/users/"+id, token, nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "USER_NOT_FOUND", body["code"])
}

func TestUserUpdate_DemotionAppliesToExistingToken(t *testing.T) {
	api := newAPI(t)
	first := api.user("first@example.com", model.RoleAdmin)
	second := api.user("second@example.com", model.RoleAdmin)
	firstToken := api.login(first.Email)
	secondToken := api.login(second.Email)

	code, body := api.do(http.MethodPut, "/api/v1/users/"+second.ID, firstToken, map[string]any{"role": "user"})
	require.Equal(t, http.StatusOK, code, body)

	code, body = api.do(http.MethodGet, "/api/v1/users?page_size=5", secondToken, nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "UNAUTHORIZED", body["code"])

	code, _ = api.do(http.MethodDelete, "/api/v1/users/"+first.ID, secondToken, nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	code, body = api.do(http.MethodGet, "/api/v1/auth/session", secondToken, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, model.RoleUser, body["role"])
	assert.Equal(t, constants.LandingUser, body["redirect"])
}

func TestUserUpdate_NameOnlyChangesWhenSent(t *testing.T) {
	api := newAPI(t)
	admin := api.user("admin@example.com", model.RoleAdmin)
	token := api.login(admin.Email)

	code, body := api.do(http.MethodPost, "/api/v1/users", token, map[string]any{
		"email": "ada@example.com", "password": "pw", "role": "user", "name": "Ada",
	})
	require.Equal(t, http.StatusCreated, code, body)
	id := body["id"].(string)

	code, body = api.do(http.MethodPut, "/api/v1/users/"+id, token, map[string]any{"role": "admin"})
	require.Equal(t, http.StatusOK, code, body)
	assert.Equal(t, "Ada", body["name"])
	assert.Equal(t, "admin", body["role"])

	code, body = api.do(http.MethodPut, "/api/v1/users/"+id, token, map[string]any{"role": "admin", "name": "Lovelace"})
	require.Equal(t, http.StatusOK, code, body)
	assert.Equal(t, "Lovelace", body["name"])

	code, body = api.do(http.MethodPut, "/api/v1/users/"+id, token, map[string]any{"role": "admin", "name": nil})
	require.Equal(t, http.StatusOK, code, body)
	assert.Nil(t, body["name"])
}

func TestPostRoutes(t *testing.T) {
	api := newAPI(t)
	alice := api.user("alice@example.com", model.RoleUser)
	bob := api.user("bob@example.com", model.RoleUser)
	aliceToken := api.login(alice.Email)
	bobToken := api.login(bob.Email)

	code, body := api.do(http.MethodPost, "/api/v1/posts", aliceToken, map[string]string{"title": "Hello", "text": "World"})
	require.Equal(t, http.StatusCreated, code, body)
	postID := body["id"].(string)
	assert.Equal(t, alice.ID, body["user_id"])

	code, body = api.do(http.MethodPost, "/api/v1/posts", aliceToken, map[string]string{"title": "this title is definitely longer than 32", "text": "x"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "INVALID_INPUT", body["code"])

	code, body = api.do(http.MethodGet, "/api/v1/posts", aliceToken, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, body["items"], 1)
	assert.NotContains(t, body, "next_cursor")

	code, body = api.do(http.MethodGet, "/api/v1/posts", bobToken, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Empty(t, body["items"])

	code, body = api.do(http.MethodGet, "/api/v1/posts/"+postID, bobToken, nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "POST_NOT_FOUND", body["code"])

	code, _ = api.do(http.MethodPut, "/api/v1/posts/"+postID, bobToken, map[string]string{"title": "Hijack", "text": "x"})
	assert.Equal(t, http.StatusNotFound, code)

	code, body = api.do(http.MethodPut, "/api/v1/posts/"+postID, aliceToken, map[string]string{"title": "Edited", "text": "Again"})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Edited", body["title"])

	code, _ = api.do(http.MethodDelete, "/api/v1/posts/"+postID, aliceToken, nil)
	assert.Equal(t, http.StatusOK, code)

	code, _ = api.do(http.MethodGet, "/api/v1/posts/"+postID, aliceToken, nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestRequestIDHeader(t *testing.T) {
	api := newAPI(t)

	req := httptest.NewRequest(http.MethodGet, "/api/health/live", nil)
	req.Header.Set("X-Request-ID", "req-123")
	w := httptest.NewRecorder()
	api.engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "req-123", w.Header().Get("X-Request-ID"))
}
