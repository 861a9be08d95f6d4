package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/LeaEliezrov/ai-learning-platform/internal/core/domain"
)

type stubUserRepo struct {
	users map[int64]*domain.User
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	return u, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id int64) (*domain.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByNameAndPhone(_ context.Context, _, _ string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) Update(_ context.Context, u *domain.User) (*domain.User, error) {
	return u, nil
}

func (r *stubUserRepo) List(_ context.Context) ([]domain.User, error) { return nil, nil }

func (r *stubUserRepo) Delete(_ context.Context, _ int64) error { return nil }

func adminContext(e *echo.Echo, identity *domain.Identity) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if identity != nil {
		c.Set(identityKey, *identity)
	}
	return c, rec
}

func TestRequireAdmin_NoIdentity(t *testing.T) {
	e := echo.New()
	repo := &stubUserRepo{users: map[int64]*domain.User{}}
	c, rec := adminContext(e, nil)

	handler := RequireAdmin(repo)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRequireAdmin_StoredAdminAllowed(t *testing.T) {
	e := echo.New()
	repo := &stubUserRepo{users: map[int64]*domain.User{
		1: {ID: 1, Name: "Dana", Role: domain.RoleAdmin},
	}}
	c, rec := adminContext(e, &domain.Identity{UserID: 1, Role: domain.RoleAdmin})

	called := false
	handler := RequireAdmin(repo)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRequireAdmin_TokenClaimsAdminButStorageSaysUser(t *testing.T) {
	e := echo.New()
	repo := &stubUserRepo{users: map[int64]*domain.User{
		2: {ID: 2, Name: "Lea", Role: domain.RoleUser},
	}}
	// The token claim is ADMIN; the persisted role wins.
	c, rec := adminContext(e, &domain.Identity{UserID: 2, Role: domain.RoleAdmin})

	handler := RequireAdmin(repo)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestRequireAdmin_DeletedUserRejected(t *testing.T) {
	e := echo.New()
	repo := &stubUserRepo{users: map[int64]*domain.User{}}
	c, rec := adminContext(e, &domain.Identity{UserID: 9, Role: domain.RoleAdmin})

	handler := RequireAdmin(repo)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}
