package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"blogsyte/internal/models"
	"blogsyte/internal/repositories"
	"blogsyte/internal/services"
	"blogsyte/internal/storage"
)

type memUserRepo struct {
	repositories.UserRepository

	users  map[string]*models.User
	nextID int
}

func (f *memUserRepo) GetByEmail(email string) (*models.User, error) {
	u, ok := f.users[email]
	if !ok {
		return nil, nil
	}
	return u, nil
}

func (f *memUserRepo) Create(u *models.User) error {
	f.nextID++
	u.ID = f.nextID
	u.CreatedAt = time.Now()
	f.users[u.Email] = u
	return nil
}

type noopEmail struct{}

func (noopEmail) SendOTPEmail(email, code string) error { return nil }

func newOTPTestServer() (*gin.Engine, *storage.OtpStore) {
	gin.SetMode(gin.TestMode)

	store := storage.NewOtpStore()
	users := &memUserRepo{users: map[string]*models.User{}}
	svc := services.NewOTPService(store, users, noopEmail{}, services.NewAuthService(), nil)
	h := NewOTPHandler(svc)

	r := gin.New()
	r.POST("/api/send-otp", h.SendOTP)
	r.POST("/api/verify-otp", h.VerifyOTP)
	return r, store
}

func postJSON(t *testing.T, r *gin.Engine, path string, payload any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	var parsed map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &parsed); err != nil {
		t.Fatalf("unmarshal response %q: %v", w.Body.String(), err)
	}
	return w, parsed
}

func TestSendOTPRequiresEmail(t *testing.T) {
	r, _ := newOTPTestServer()

	w, resp := postJSON(t, r, "/api/send-otp", map[string]any{"fullName": "Alice"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	if resp["success"] != false {
		t.Errorf("expected success=false, got %v", resp["success"])
	}
}

func TestSendAndVerifyOTPFlow(t *testing.T) {
	r, store := newOTPTestServer()

	w, resp := postJSON(t, r, "/api/send-otp", map[string]any{
		"email":    "a@x.com",
		"fullName": "Alice",
		"password": "secret123",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("send-otp: expected 200, got %d (%v)", w.Code, resp)
	}
	if resp["email"] != "a@x.com" {
		t.Errorf("expected email echoed back, got %v", resp["email"])
	}

	ch, ok := store.GetChallenge("a@x.com")
	if !ok {
		t.Fatal("expected a stored challenge")
	}

	w, resp = postJSON(t, r, "/api/verify-otp", map[string]any{
		"email": "a@x.com",
		"otp":   ch.Code,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("verify-otp: expected 200, got %d (%v)", w.Code, resp)
	}
	user, ok := resp["user"].(map[string]any)
	if !ok {
		t.Fatalf("expected user payload, got %v", resp)
	}
	if user["name"] != "Alice" || user["email"] != "a@x.com" {
		t.Errorf("unexpected user payload: %v", user)
	}
	if _, hasID := user["id"]; !hasID {
		t.Error("user payload should carry an id")
	}
}

func TestVerifyOTPRequiresBothFields(t *testing.T) {
	r, _ := newOTPTestServer()

	w, _ := postJSON(t, r, "/api/verify-otp", map[string]any{"email": "a@x.com"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestVerifyOTPWrongCode(t *testing.T) {
	r, _ := newOTPTestServer()

	postJSON(t, r, "/api/send-otp", map[string]any{
		"email":    "a@x.com",
		"fullName": "Alice",
		"password": "secret123",
	})

	w, resp := postJSON(t, r, "/api/verify-otp", map[string]any{
		"email": "a@x.com",
		"otp":   "000000",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	if resp["message"] != "Invalid OTP. Please try again." {
		t.Errorf("unexpected message: %v", resp["message"])
	}
}

func TestVerifyOTPUnknownEmail(t *testing.T) {
	r, _ := newOTPTestServer()

	w, resp := postJSON(t, r, "/api/verify-otp", map[string]any{
		"email": "nobody@x.com",
		"otp":   "123456",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	if resp["message"] != "OTP expired or not found. Please request a new OTP." {
		t.Errorf("unexpected message: %v", resp["message"])
	}
}

func TestSendOTPDuplicateUser(t *testing.T) {
	r, store := newOTPTestServer()

	// register once
	postJSON(t, r, "/api/send-otp", map[string]any{
		"email": "b@x.com", "fullName": "Bob", "password": "secret123",
	})
	ch, _ := store.GetChallenge("b@x.com")
	postJSON(t, r, "/api/verify-otp", map[string]any{"email": "b@x.com", "otp": ch.Code})

	// second signup with the same email is rejected up front
	w, resp := postJSON(t, r, "/api/send-otp", map[string]any{
		"email": "b@x.com", "fullName": "Bob", "password": "secret123",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	if resp["message"] != "User with this email already exists" {
		t.Errorf("unexpected message: %v", resp["message"])
	}
	if _, ok := store.GetChallenge("b@x.com"); ok {
		t.Error("no new challenge should be issued for a duplicate user")
	}
}
