package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/LeaEliezrov/ai-learning-platform/internal/core/domain"
	"github.com/LeaEliezrov/ai-learning-platform/internal/core/ports"
)

func TestUserService_GetWithPromptCount(t *testing.T) {
	f := newPromptFixture()
	svc := NewUserService(f.users, f.repo, zerolog.Nop())

	for i := 0; i < 2; i++ {
		if _, err := submit(f, 7); err != nil {
			t.Fatalf("seed submit: %v", err)
		}
	}

	summary, err := svc.Get(context.Background(), 7)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if summary.PromptCount != 2 {
		t.Fatalf("expected prompt count 2, got %d", summary.PromptCount)
	}
}

func TestUserService_UpdateProfile(t *testing.T) {
	f := newPromptFixture()
	svc := NewUserService(f.users, f.repo, zerolog.Nop())

	summary, err := svc.Update(context.Background(), 7, ports.UpdateUserInput{Name: "Leah", Phone: "0509999999"})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if summary.Name != "Leah" || summary.Phone != "0509999999" {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	// Role untouched when the input leaves it empty.
	if summary.Role != domain.RoleUser {
		t.Fatalf("role changed unexpectedly: %s", summary.Role)
	}

	stored, err := f.users.FindByID(context.Background(), 7)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if stored.Name != "Leah" {
		t.Fatalf("update not persisted: %+v", stored)
	}
}

func TestUserService_UpdatePromotesRole(t *testing.T) {
	f := newPromptFixture()
	svc := NewUserService(f.users, f.repo, zerolog.Nop())

	summary, err := svc.Update(context.Background(), 7, ports.UpdateUserInput{Role: "ADMIN"})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if summary.Role != domain.RoleAdmin {
		t.Fatalf("expected ADMIN, got %s", summary.Role)
	}
	// Name and phone keep their stored values.
	if summary.Name != "Lea" || summary.Phone != "0501234567" {
		t.Fatalf("partial update touched other fields: %+v", summary)
	}
}

func TestUserService_UpdateInvalidRole(t *testing.T) {
	f := newPromptFixture()
	svc := NewUserService(f.users, f.repo, zerolog.Nop())

	if _, err := svc.Update(context.Background(), 7, ports.UpdateUserInput{Role: "SUPERUSER"}); !errors.Is(err, domain.ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}

	stored, _ := f.users.FindByID(context.Background(), 7)
	if stored.Role != domain.RoleUser {
		t.Fatalf("rejected update still changed the role: %s", stored.Role)
	}
}

func TestUserService_UpdateUnknown(t *testing.T) {
	f := newPromptFixture()
	svc := NewUserService(f.users, f.repo, zerolog.Nop())

	if _, err := svc.Update(context.Background(), 12345, ports.UpdateUserInput{Name: "Ghost"}); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_DeleteCascades(t *testing.T) {
	f := newPromptFixture()
	svc := NewUserService(f.users, f.repo, zerolog.Nop())

	if _, err := submit(f, 7); err != nil {
		t.Fatalf("seed submit: %v", err)
	}
	if _, err := submit(f, 8); err != nil {
		t.Fatalf("seed submit: %v", err)
	}

	if err := svc.Delete(context.Background(), 7); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}

	if _, err := f.users.FindByID(context.Background(), 7); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("user should be gone, got %v", err)
	}
	n, _ := f.repo.CountByUser(context.Background(), 7)
	if n != 0 {
		t.Fatalf("cascade left %d prompts behind", n)
	}
	// Other users' history is untouched.
	n, _ = f.repo.CountByUser(context.Background(), 8)
	if n != 1 {
		t.Fatalf("cascade removed a foreign prompt")
	}
}

func TestUserService_DeleteUnknown(t *testing.T) {
	f := newPromptFixture()
	svc := NewUserService(f.users, f.repo, zerolog.Nop())

	if err := svc.Delete(context.Background(), 12345); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
