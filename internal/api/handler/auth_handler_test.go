package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/storelane/admin-panel/internal/api"
	"github.com/storelane/admin-panel/internal/api/handler"
	"github.com/storelane/admin-panel/internal/core/domain"
)

type stubAuthService struct {
	registerFn func(ctx context.Context, email, password, displayName string) (*domain.User, error)
	loginFn    func(ctx context.Context, email, password string) (string, *domain.User, error)
	currentFn  func(token string) (*domain.User, error)
}

func (s *stubAuthService) Register(ctx context.Context, email, password, displayName string) (*domain.User, error) {
	return s.registerFn(ctx, email, password, displayName)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) CurrentUser(token string) (*domain.User, error) {
	return s.currentFn(token)
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = api.NewHTTPErrorHandler(zerolog.Nop())
	return e
}

func doJSON(e *echo.Echo, method, path, body string) (*httptest.ResponseRecorder, echo.Context) {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return rec, e.NewContext(req, rec)
}

func TestAuthHandler_Register_Success(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, email, password, displayName string) (*domain.User, error) {
			if email != "alice@example.com" || displayName != "Alice" {
				t.Fatalf("unexpected args: %s %s", email, displayName)
			}
			return &domain.User{ID: "user_1", Email: email, DisplayName: displayName}, nil
		},
	}
	h := handler.NewAuthHandler(stub)

	rec, c := doJSON(e, http.MethodPost, "/auth/register",
		`{"display_name":"Alice","email":"alice@example.com","password":"secret1","confirm_password":"secret1"}`)

	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["message"] != "registration successful" {
		t.Fatalf("expected success message, got %v", resp["message"])
	}
	if _, hasToken := resp["token"]; hasToken {
		t.Fatalf("registration must not return a session token")
	}
	user, ok := resp["user"].(map[string]any)
	if !ok || user["email"] != "alice@example.com" {
		t.Fatalf("unexpected user payload: %v", resp["user"])
	}
}

func TestAuthHandler_Register_FieldErrors(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{
		registerFn: func(context.Context, string, string, string) (*domain.User, error) {
			t.Fatalf("service must not be called on invalid input")
			return nil, nil
		},
	}
	h := handler.NewAuthHandler(stub)

	rec, c := doJSON(e, http.MethodPost, "/auth/register",
		`{"display_name":"A","email":"not-an-email","password":"short","confirm_password":"other"}`)

	if err := h.Register(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	var resp struct {
		Errors map[string]string `json:"errors"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	for _, field := range []string{"display_name", "email", "password", "confirm_password"} {
		if resp.Errors[field] == "" {
			t.Fatalf("expected error for %s, got %v", field, resp.Errors)
		}
	}
	if resp.Errors["confirm_password"] != "passwords don't match" {
		t.Fatalf("unexpected confirm_password message: %s", resp.Errors["confirm_password"])
	}
}

func TestAuthHandler_Register_UserExists(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{
		registerFn: func(context.Context, string, string, string) (*domain.User, error) {
			return nil, domain.ErrUserExists
		},
	}
	h := handler.NewAuthHandler(stub)

	rec, c := doJSON(e, http.MethodPost, "/auth/register",
		`{"display_name":"Bob","email":"bob@example.com","password":"secret1","confirm_password":"secret1"}`)

	if err := h.Register(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (string, *domain.User, error) {
			return "signed-token", &domain.User{ID: "user_1", Email: email}, nil
		},
	}
	h := handler.NewAuthHandler(stub)

	rec, c := doJSON(e, http.MethodPost, "/auth/login",
		`{"email":"carol@example.com","password":"secret1"}`)

	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "signed-token" {
		t.Fatalf("expected token, got %v", resp["token"])
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{
		loginFn: func(context.Context, string, string) (string, *domain.User, error) {
			return "", nil, domain.ErrInvalidCredentials
		},
	}
	h := handler.NewAuthHandler(stub)

	rec, c := doJSON(e, http.MethodPost, "/auth/login",
		`{"email":"carol@example.com","password":"wrong-1"}`)

	if err := h.Login(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	e := newEcho()
	h := handler.NewAuthHandler(&stubAuthService{})

	rec, c := doJSON(e, http.MethodPost, "/auth/logout", "")

	if err := h.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}

func TestAuthHandler_Me(t *testing.T) {
	e := newEcho()
	h := handler.NewAuthHandler(&stubAuthService{})

	rec, c := doJSON(e, http.MethodGet, "/auth/me", "")
	c.Set("user_id", "user_1")
	c.Set("email", "erin@example.com")
	c.Set("display_name", "")

	if err := h.Me(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["display_name"] != domain.DefaultDisplayName {
		t.Fatalf("expected display name fallback, got %v", resp["display_name"])
	}
}

func TestAuthHandler_Me_MissingClaims(t *testing.T) {
	e := newEcho()
	h := handler.NewAuthHandler(&stubAuthService{})

	rec, c := doJSON(e, http.MethodGet, "/auth/me", "")

	if err := h.Me(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
