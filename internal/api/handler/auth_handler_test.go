package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/LeaEliezrov/ai-learning-platform/internal/core/domain"
)

type stubAuthService struct {
	registerFn func(ctx context.Context, name, phone string) (*domain.User, string, error)
	loginFn    func(ctx context.Context, name, phone string) (*domain.User, string, error)
}

func (s *stubAuthService) Register(ctx context.Context, name, phone string) (*domain.User, string, error) {
	return s.registerFn(ctx, name, phone)
}

func (s *stubAuthService) Login(ctx context.Context, name, phone string) (*domain.User, string, error) {
	return s.loginFn(ctx, name, phone)
}

func TestAuthHandler_Register_Success(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, name, phone string) (*domain.User, string, error) {
			if name != "Lea" || phone != "0501234567" {
				t.Fatalf("unexpected args: %s %s", name, phone)
			}
			return &domain.User{ID: 7, Name: name, Phone: phone, Role: domain.RoleUser}, "token123", nil
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := newContext(t, http.MethodPost, "/api/users/register",
		`{"name":"Lea","phone":"0501234567"}`)

	if err := handler.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "token123" {
		t.Fatalf("expected token, got %v", resp["token"])
	}
	user, ok := resp["user"].(map[string]any)
	if !ok || user["name"] != "Lea" || user["role"] != "USER" {
		t.Fatalf("unexpected user payload: %+v", resp["user"])
	}
}

func TestAuthHandler_Register_Duplicate(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, name, phone string) (*domain.User, string, error) {
			return nil, "", domain.ErrUserExists
		},
	}
	handler := NewAuthHandler(stub)

	c, _ := newContext(t, http.MethodPost, "/api/users/register",
		`{"name":"Lea","phone":"0501234567"}`)

	if err := handler.Register(c); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthHandler_Register_MissingFields(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, name, phone string) (*domain.User, string, error) {
			t.Fatalf("should not be called")
			return nil, "", nil
		},
	}
	handler := NewAuthHandler(stub)

	c, _ := newContext(t, http.MethodPost, "/api/users/register", `{"name":"Lea"}`)

	err := handler.Register(c)
	if code := httpCode(t, err); code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, name, phone string) (*domain.User, string, error) {
			return &domain.User{ID: 7, Name: name, Phone: phone, Role: domain.RoleUser}, "token456", nil
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := newContext(t, http.MethodPost, "/api/users/login",
		`{"name":"Lea","phone":"0501234567"}`)

	if err := handler.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "token456" {
		t.Fatalf("expected token, got %v", resp["token"])
	}
	if resp["message"] != "Login successful" {
		t.Fatalf("unexpected message: %v", resp["message"])
	}
}

func TestAuthHandler_Login_UnknownPair(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, name, phone string) (*domain.User, string, error) {
			return nil, "", domain.ErrInvalidLogin
		},
	}
	handler := NewAuthHandler(stub)

	c, _ := newContext(t, http.MethodPost, "/api/users/login",
		`{"name":"Ghost","phone":"0500000000"}`)

	if err := handler.Login(c); !errors.Is(err, domain.ErrInvalidLogin) {
		t.Fatalf("expected ErrInvalidLogin, got %v", err)
	}
}

func TestAuthHandler_Login_InvalidPayload(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, name, phone string) (*domain.User, string, error) {
			t.Fatalf("should not be called")
			return nil, "", nil
		},
	}
	handler := NewAuthHandler(stub)

	c, _ := newContext(t, http.MethodPost, "/api/users/login", "{")

	err := handler.Login(c)
	if code := httpCode(t, err); code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
}
