package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"blogsyte/internal/models"
	"blogsyte/internal/services"
)

type memUserService struct {
	services.UserService

	byEmail map[string]*models.User
	byToken map[string]*models.User
}

func (f *memUserService) GetUserByEmail(email string) (*models.User, error) {
	return f.byEmail[email], nil
}

func (f *memUserService) UpdateRefresh(userID int, token string, expiresAt time.Time) error {
	return nil
}

func (f *memUserService) GetByRefreshToken(token string) (*models.User, error) {
	return f.byToken[token], nil
}

func (f *memUserService) RotateRefresh(oldToken, newToken string, newExpiresAt time.Time) (*models.User, error) {
	u, ok := f.byToken[oldToken]
	if !ok {
		return nil, nil
	}
	delete(f.byToken, oldToken)
	f.byToken[newToken] = u
	return u, nil
}

func newLoginTestServer(t *testing.T, users ...*models.User) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc := &memUserService{byEmail: map[string]*models.User{}, byToken: map[string]*models.User{}}
	for _, u := range users {
		svc.byEmail[u.Email] = u
		if u.RefreshToken != nil {
			svc.byToken[*u.RefreshToken] = u
		}
	}
	h := NewAuthHandler(svc, services.NewAuthService())

	r := gin.New()
	r.POST("/api/login", h.Login)
	r.POST("/api/refresh", h.RefreshToken)
	return r
}

func withRefreshToken(u *models.User, token string, expiresAt time.Time) *models.User {
	u.RefreshToken = &token
	u.RefreshExpiresAt = &expiresAt
	return u
}

func userWithPassword(t *testing.T, id int, name, email, password string) *models.User {
	t.Helper()
	hash, err := services.NewAuthService().HashPassword(password)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	return &models.User{ID: id, Name: name, Email: email, PasswordHash: hash}
}

func TestLoginRequiresFields(t *testing.T) {
	r := newLoginTestServer(t)

	w, _ := postJSON(t, r, "/api/login", map[string]any{"email": "a@x.com"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	r := newLoginTestServer(t)

	w, _ := postJSON(t, r, "/api/login", map[string]any{"email": "a@x.com", "password": "whatever"})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	u := userWithPassword(t, 1, "Alice", "a@x.com", "secret123")
	r := newLoginTestServer(t, u)

	w, _ := postJSON(t, r, "/api/login", map[string]any{"email": "a@x.com", "password": "not-it"})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestLoginBannedAccount(t *testing.T) {
	u := userWithPassword(t, 1, "Alice", "a@x.com", "secret123")
	u.Banned = true
	r := newLoginTestServer(t, u)

	w, resp := postJSON(t, r, "/api/login", map[string]any{"email": "a@x.com", "password": "secret123"})
	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", w.Code)
	}
	if resp["message"] != "Your account has been banned" {
		t.Errorf("unexpected message: %v", resp["message"])
	}
}

func TestLoginSuccessReturnsUserAndTokens(t *testing.T) {
	u := userWithPassword(t, 9, "Alice", "a@x.com", "secret123")
	u.IsAdmin = true
	r := newLoginTestServer(t, u)

	w, resp := postJSON(t, r, "/api/login", map[string]any{"email": "a@x.com", "password": "secret123"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%v)", w.Code, resp)
	}

	user, ok := resp["user"].(map[string]any)
	if !ok {
		t.Fatalf("expected user payload, got %v", resp)
	}
	if user["isAdmin"] != true || user["email"] != "a@x.com" {
		t.Errorf("unexpected user payload: %v", user)
	}

	tokens, ok := resp["tokens"].(map[string]any)
	if !ok {
		t.Fatalf("expected tokens payload, got %v", resp)
	}
	if tokens["access_token"] == "" || tokens["refresh_token"] == "" {
		t.Error("both tokens should be present")
	}
}

func TestRefreshRotatesToken(t *testing.T) {
	u := withRefreshToken(
		userWithPassword(t, 5, "Alice", "a@x.com", "secret123"),
		"old-token", time.Now().Add(time.Hour),
	)
	r := newLoginTestServer(t, u)

	w, resp := postJSON(t, r, "/api/refresh", map[string]any{"refresh_token": "old-token"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%v)", w.Code, resp)
	}
	if resp["access_token"] == "" {
		t.Error("expected a fresh access token")
	}
	if rt, _ := resp["refresh_token"].(string); rt == "" || rt == "old-token" {
		t.Errorf("refresh token should rotate, got %q", rt)
	}
}

func TestRefreshRejectsBannedUser(t *testing.T) {
	u := withRefreshToken(
		userWithPassword(t, 5, "Alice", "a@x.com", "secret123"),
		"banned-token", time.Now().Add(time.Hour),
	)
	u.Banned = true
	r := newLoginTestServer(t, u)

	w, resp := postJSON(t, r, "/api/refresh", map[string]any{"refresh_token": "banned-token"})
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d (%v)", w.Code, resp)
	}
	if resp["message"] != "Your account has been banned" {
		t.Errorf("unexpected message: %v", resp["message"])
	}
	if _, hasToken := resp["access_token"]; hasToken {
		t.Error("no access token should be issued to a banned account")
	}
}

func TestRefreshRejectsExpiredToken(t *testing.T) {
	u := withRefreshToken(
		userWithPassword(t, 5, "Alice", "a@x.com", "secret123"),
		"stale-token", time.Now().Add(-time.Minute),
	)
	r := newLoginTestServer(t, u)

	w, _ := postJSON(t, r, "/api/refresh", map[string]any{"refresh_token": "stale-token"})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}
