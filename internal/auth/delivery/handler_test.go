package delivery_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	api "vidtube-backend/cmd/api"
	"vidtube-backend/internal/auth/repository"
	"vidtube-backend/internal/auth/token"
	"vidtube-backend/internal/auth/usecase"
	"vidtube-backend/pkg/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	StatusCode int             `json:"status_code"`
	Data       json.RawMessage `json:"data"`
	Message    string          `json:"message"`
	Success    bool            `json:"success"`
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		AccessTokenSecret:  "test-access-secret",
		RefreshTokenSecret: "test-refresh-secret",
		AccessTokenTTL:     15 * time.Minute,
		RefreshTokenTTL:    168 * time.Hour,
		CookieSecure:       false,
	}
	repo := repository.NewMemoryUserRepository()
	signer := token.NewSigner(cfg.AccessTokenSecret, cfg.RefreshTokenSecret,
		cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	uc := usecase.NewAuthUsecase(repo, signer)

	r := gin.New()
	api.SetupRoutes(r, uc, cfg)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}, cookies []*http.Cookie, headers map[string]string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return w, env
}

func cookieByName(cookies []*http.Cookie, name string) *http.Cookie {
	for _, c := range cookies {
		if c.Name == name {
			return c
		}
	}
	return nil
}

var aliceRegistration = map[string]string{
	"username":  "alice",
	"email":     "alice@x.com",
	"full_name": "Alice Example",
	"password":  "P@ss1234",
	"avatar":    "https://cdn.example.com/avatars/alice.png",
}

func TestRegisterLoginRefreshLogoutScenario(t *testing.T) {
	r := newTestRouter(t)

	// Register: 201, body excludes credential material.
	w, env := doJSON(t, r, http.MethodPost, "/api/users/register", aliceRegistration, nil, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, env.Success)
	assert.NotContains(t, string(env.Data), "P@ss1234")
	assert.NotContains(t, string(env.Data), "password")
	assert.NotContains(t, string(env.Data), "refresh_token")

	// Login: 200, both cookies set http-only, tokens in body.
	w, env = doJSON(t, r, http.MethodPost, "/api/users/login",
		map[string]string{"email": "alice@x.com", "password": "P@ss1234"}, nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var tokens struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &tokens))
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)

	loginCookies := w.Result().Cookies()
	access := cookieByName(loginCookies, "accessToken")
	refresh := cookieByName(loginCookies, "refreshToken")
	require.NotNil(t, access)
	require.NotNil(t, refresh)
	assert.True(t, access.HttpOnly)
	assert.True(t, refresh.HttpOnly)
	assert.Equal(t, tokens.AccessToken, access.Value)
	assert.Equal(t, tokens.RefreshToken, refresh.Value)

	// Refresh: 200, new tokens differ from the originals, cookies re-set.
	w, env = doJSON(t, r, http.MethodPost, "/api/users/refresh-token", nil,
		[]*http.Cookie{refresh}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var rotated struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &rotated))
	assert.NotEqual(t, tokens.RefreshToken, rotated.RefreshToken)
	newRefresh := cookieByName(w.Result().Cookies(), "refreshToken")
	require.NotNil(t, newRefresh)
	assert.Equal(t, rotated.RefreshToken, newRefresh.Value)

	// Logout with the rotated session: 200, cookies cleared.
	newAccess := cookieByName(w.Result().Cookies(), "accessToken")
	require.NotNil(t, newAccess)
	w, _ = doJSON(t, r, http.MethodPost, "/api/users/logout", nil,
		[]*http.Cookie{newAccess, newRefresh}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	for _, name := range []string{"accessToken", "refreshToken"} {
		cleared := cookieByName(w.Result().Cookies(), name)
		require.NotNil(t, cleared)
		assert.Empty(t, cleared.Value)
	}

	// The superseded refresh token is rejected after logout.
	w, _ = doJSON(t, r, http.MethodPost, "/api/users/refresh-token", nil,
		[]*http.Cookie{newRefresh}, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRegisterValidationAndConflict(t *testing.T) {
	r := newTestRouter(t)

	w, env := doJSON(t, r, http.MethodPost, "/api/users/register",
		map[string]string{"username": "bob"}, nil, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, env.Success)

	w, _ = doJSON(t, r, http.MethodPost, "/api/users/register", aliceRegistration, nil, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	w, _ = doJSON(t, r, http.MethodPost, "/api/users/register", aliceRegistration, nil, nil)
	require.Equal(t, http.StatusConflict, w.Code)
}

func TestLoginFailureCodes(t *testing.T) {
	r := newTestRouter(t)
	_, _ = doJSON(t, r, http.MethodPost, "/api/users/register", aliceRegistration, nil, nil)

	w, _ := doJSON(t, r, http.MethodPost, "/api/users/login",
		map[string]string{"email": "ghost@x.com", "password": "P@ss1234"}, nil, nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	w, _ = doJSON(t, r, http.MethodPost, "/api/users/login",
		map[string]string{"email": "alice@x.com", "password": "nope1234"}, nil, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProtectedRoutes(t *testing.T) {
	r := newTestRouter(t)
	_, _ = doJSON(t, r, http.MethodPost, "/api/users/register", aliceRegistration, nil, nil)

	w, env := doJSON(t, r, http.MethodPost, "/api/users/login",
		map[string]string{"username": "alice", "password": "P@ss1234"}, nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var tokens struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &tokens))

	// No token at all.
	w, _ = doJSON(t, r, http.MethodGet, "/api/users/profile", nil, nil, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	// Bearer header works.
	w, env = doJSON(t, r, http.MethodGet, "/api/users/profile", nil, nil,
		map[string]string{"Authorization": "Bearer " + tokens.AccessToken})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), "alice@x.com")

	// Cookie takes precedence over a garbage header.
	accessCookie := &http.Cookie{Name: "accessToken", Value: tokens.AccessToken}
	w, _ = doJSON(t, r, http.MethodGet, "/api/users/profile", nil,
		[]*http.Cookie{accessCookie},
		map[string]string{"Authorization": "Bearer garbage"})
	require.Equal(t, http.StatusOK, w.Code)

	// Tampered token fails.
	w, _ = doJSON(t, r, http.MethodGet, "/api/users/profile", nil, nil,
		map[string]string{"Authorization": "Bearer " + tokens.AccessToken + "x"})
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestChangePasswordAndProfileUpdates(t *testing.T) {
	r := newTestRouter(t)
	_, _ = doJSON(t, r, http.MethodPost, "/api/users/register", aliceRegistration, nil, nil)

	w, env := doJSON(t, r, http.MethodPost, "/api/users/login",
		map[string]string{"email": "alice@x.com", "password": "P@ss1234"}, nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var tokens struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &tokens))
	auth := map[string]string{"Authorization": "Bearer " + tokens.AccessToken}

	// Wrong old password.
	w, _ = doJSON(t, r, http.MethodPost, "/api/users/change-password",
		map[string]string{"old_password": "wrong123", "new_password": "N3w!pass"}, nil, auth)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = doJSON(t, r, http.MethodPost, "/api/users/change-password",
		map[string]string{"old_password": "P@ss1234", "new_password": "N3w!pass"}, nil, auth)
	require.Equal(t, http.StatusOK, w.Code)

	// Access token from before the change still authenticates.
	w, env = doJSON(t, r, http.MethodPatch, "/api/users/profile",
		map[string]string{"full_name": "Alice B. Example"}, nil, auth)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), "Alice B. Example")

	w, env = doJSON(t, r, http.MethodPatch, "/api/users/avatar",
		map[string]string{"avatar": "https://cdn.example.com/avatars/new.png"}, nil, auth)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), "avatars/new.png")

	w, _ = doJSON(t, r, http.MethodPatch, "/api/users/cover-image",
		map[string]string{"cover_image": "https://cdn.example.com/covers/new.png"}, nil, auth)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestHealth(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
}
