package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/LeaEliezrov/ai-learning-platform/internal/core/domain"
	"github.com/LeaEliezrov/ai-learning-platform/internal/core/ports"
)

type stubPromptService struct {
	submitFn      func(ctx context.Context, in ports.SubmitPromptInput) (*ports.SubmitPromptResult, error)
	listForUserFn func(ctx context.Context, userID int64, page, limit int) (*ports.PromptPage, error)
	listAllFn     func(ctx context.Context, page, limit int) (*ports.AdminPromptPage, error)
	getByIDFn     func(ctx context.Context, identity domain.Identity, id int64) (*domain.Prompt, error)
	deleteFn      func(ctx context.Context, identity domain.Identity, id int64) error
}

func (s *stubPromptService) Submit(ctx context.Context, in ports.SubmitPromptInput) (*ports.SubmitPromptResult, error) {
	return s.submitFn(ctx, in)
}

func (s *stubPromptService) ListForUser(ctx context.Context, userID int64, page, limit int) (*ports.PromptPage, error) {
	return s.listForUserFn(ctx, userID, page, limit)
}

func (s *stubPromptService) ListAll(ctx context.Context, page, limit int) (*ports.AdminPromptPage, error) {
	return s.listAllFn(ctx, page, limit)
}

func (s *stubPromptService) GetByID(ctx context.Context, identity domain.Identity, id int64) (*domain.Prompt, error) {
	return s.getByIDFn(ctx, identity, id)
}

func (s *stubPromptService) Delete(ctx context.Context, identity domain.Identity, id int64) error {
	return s.deleteFn(ctx, identity, id)
}

func newContext(t *testing.T, method, target string, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func withIdentity(c echo.Context, id int64, role domain.Role) {
	c.Set("identity", domain.Identity{UserID: id, Name: "Lea", Phone: "0501234567", Role: role})
}

func httpCode(t *testing.T, err error) int {
	t.Helper()
	var he *echo.HTTPError
	if !errors.As(err, &he) {
		t.Fatalf("expected *echo.HTTPError, got %v", err)
	}
	return he.Code
}

func TestPromptHandler_Create_Success(t *testing.T) {
	created := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	stub := &stubPromptService{
		submitFn: func(ctx context.Context, in ports.SubmitPromptInput) (*ports.SubmitPromptResult, error) {
			if in.Identity.UserID != 7 {
				t.Fatalf("expected identity user 7, got %d", in.Identity.UserID)
			}
			if in.CategoryID != 1 || in.SubcategoryID != 3 || in.Prompt != "Explain inertia" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &ports.SubmitPromptResult{
				Prompt: &domain.Prompt{
					ID:            21,
					UserID:        7,
					CategoryID:    1,
					SubcategoryID: 3,
					Prompt:        "Explain inertia",
					Response:      "Inertia is the tendency of matter to resist changes in motion.",
					CreatedAt:     created,
				},
				Category:    &domain.Category{ID: 1, Name: "Science"},
				Subcategory: &domain.Subcategory{ID: 3, CategoryID: 1, Name: "Physics"},
				TokensUsed:  42,
			}, nil
		},
	}
	handler := NewPromptHandler(stub)

	c, rec := newContext(t, http.MethodPost, "/api/prompts",
		`{"categoryId":1,"subcategoryId":3,"prompt":"Explain inertia"}`)
	withIdentity(c, 7, domain.RoleUser)

	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["success"] != true {
		t.Fatalf("expected success true, got %v", resp["success"])
	}
	if resp["tokensUsed"] != float64(42) {
		t.Fatalf("expected tokensUsed 42, got %v", resp["tokensUsed"])
	}
	prompt, ok := resp["prompt"].(map[string]any)
	if !ok {
		t.Fatalf("expected prompt in response")
	}
	if prompt["userId"] != float64(7) {
		t.Fatalf("expected prompt owned by user 7, got %v", prompt["userId"])
	}
	if prompt["category"] != "Science" || prompt["subcategory"] != "Physics" {
		t.Fatalf("expected resolved taxonomy names, got %v / %v", prompt["category"], prompt["subcategory"])
	}
	if prompt["response"] == "" {
		t.Fatalf("expected a generated response")
	}
}

func TestPromptHandler_Create_NoIdentity(t *testing.T) {
	stub := &stubPromptService{
		submitFn: func(ctx context.Context, in ports.SubmitPromptInput) (*ports.SubmitPromptResult, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewPromptHandler(stub)

	c, _ := newContext(t, http.MethodPost, "/api/prompts",
		`{"categoryId":1,"subcategoryId":3,"prompt":"Explain inertia"}`)

	err := handler.Create(c)
	if code := httpCode(t, err); code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", code)
	}
}

func TestPromptHandler_Create_InvalidPayload(t *testing.T) {
	stub := &stubPromptService{
		submitFn: func(ctx context.Context, in ports.SubmitPromptInput) (*ports.SubmitPromptResult, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewPromptHandler(stub)

	c, _ := newContext(t, http.MethodPost, "/api/prompts", "not-json")
	withIdentity(c, 7, domain.RoleUser)

	err := handler.Create(c)
	if code := httpCode(t, err); code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
}

func TestPromptHandler_Create_MissingFields(t *testing.T) {
	stub := &stubPromptService{
		submitFn: func(ctx context.Context, in ports.SubmitPromptInput) (*ports.SubmitPromptResult, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewPromptHandler(stub)

	c, _ := newContext(t, http.MethodPost, "/api/prompts", `{"categoryId":1,"subcategoryId":3}`)
	withIdentity(c, 7, domain.RoleUser)

	err := handler.Create(c)
	if code := httpCode(t, err); code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
}

func TestPromptHandler_Create_GenerationFailure(t *testing.T) {
	stub := &stubPromptService{
		submitFn: func(ctx context.Context, in ports.SubmitPromptInput) (*ports.SubmitPromptResult, error) {
			return nil, fmt.Errorf("%w: provider timeout", domain.ErrGenerationFailed)
		},
	}
	handler := NewPromptHandler(stub)

	c, _ := newContext(t, http.MethodPost, "/api/prompts",
		`{"categoryId":1,"subcategoryId":3,"prompt":"Explain inertia"}`)
	withIdentity(c, 7, domain.RoleUser)

	err := handler.Create(c)
	if !errors.Is(err, domain.ErrGenerationFailed) {
		t.Fatalf("expected generation failure to propagate, got %v", err)
	}
}

func TestPromptHandler_MyPrompts_DefaultsAndScope(t *testing.T) {
	stub := &stubPromptService{
		listForUserFn: func(ctx context.Context, userID int64, page, limit int) (*ports.PromptPage, error) {
			if userID != 7 {
				t.Fatalf("expected list for user 7, got %d", userID)
			}
			// Absent query params arrive as zero; the service applies defaults.
			if page != 0 || limit != 0 {
				t.Fatalf("expected zero page/limit, got %d/%d", page, limit)
			}
			return &ports.PromptPage{
				Prompts: []domain.Prompt{{ID: 2, UserID: 7}, {ID: 1, UserID: 7}},
				Page:    1,
				Limit:   10,
				Total:   2,
				Pages:   1,
			}, nil
		},
	}
	handler := NewPromptHandler(stub)

	c, rec := newContext(t, http.MethodGet, "/api/prompts/my-prompts", "")
	withIdentity(c, 7, domain.RoleUser)

	if err := handler.MyPrompts(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	pagination, ok := resp["pagination"].(map[string]any)
	if !ok {
		t.Fatalf("expected pagination in response")
	}
	if pagination["page"] != float64(1) || pagination["limit"] != float64(10) ||
		pagination["total"] != float64(2) || pagination["pages"] != float64(1) {
		t.Fatalf("unexpected pagination: %+v", pagination)
	}
}

func TestPromptHandler_MyPrompts_NonNumericParams(t *testing.T) {
	stub := &stubPromptService{
		listForUserFn: func(ctx context.Context, userID int64, page, limit int) (*ports.PromptPage, error) {
			if page != 0 || limit != 0 {
				t.Fatalf("expected non-numeric params to fall back to zero, got %d/%d", page, limit)
			}
			return &ports.PromptPage{Prompts: []domain.Prompt{}, Page: 1, Limit: 10}, nil
		},
	}
	handler := NewPromptHandler(stub)

	c, rec := newContext(t, http.MethodGet, "/api/prompts/my-prompts?page=abc&limit=-5", "")
	withIdentity(c, 7, domain.RoleUser)

	if err := handler.MyPrompts(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestPromptHandler_AdminAll(t *testing.T) {
	stub := &stubPromptService{
		listAllFn: func(ctx context.Context, page, limit int) (*ports.AdminPromptPage, error) {
			return &ports.AdminPromptPage{
				Prompts: []domain.PromptWithOwner{
					{
						Prompt: domain.Prompt{ID: 5, UserID: 7},
						User:   domain.PromptOwner{ID: 7, Name: "Lea", Phone: "0501234567"},
					},
				},
				Page:  1,
				Limit: 20,
				Total: 1,
				Pages: 1,
			}, nil
		},
	}
	handler := NewPromptHandler(stub)

	c, rec := newContext(t, http.MethodGet, "/api/prompts/admin/all", "")
	withIdentity(c, 9, domain.RoleAdmin)

	if err := handler.AdminAll(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	prompts, ok := resp["prompts"].([]any)
	if !ok || len(prompts) != 1 {
		t.Fatalf("expected one prompt, got %v", resp["prompts"])
	}
	row := prompts[0].(map[string]any)
	owner, ok := row["user"].(map[string]any)
	if !ok || owner["name"] != "Lea" {
		t.Fatalf("expected owner annotation, got %v", row["user"])
	}
}

func TestPromptHandler_Get_NotFound(t *testing.T) {
	stub := &stubPromptService{
		getByIDFn: func(ctx context.Context, identity domain.Identity, id int64) (*domain.Prompt, error) {
			return nil, domain.ErrPromptNotFound
		},
	}
	handler := NewPromptHandler(stub)

	c, _ := newContext(t, http.MethodGet, "/api/prompts/99", "")
	c.SetParamNames("id")
	c.SetParamValues("99")
	withIdentity(c, 7, domain.RoleUser)

	if err := handler.Get(c); !errors.Is(err, domain.ErrPromptNotFound) {
		t.Fatalf("expected ErrPromptNotFound, got %v", err)
	}
}

func TestPromptHandler_Get_NonNumericID(t *testing.T) {
	stub := &stubPromptService{
		getByIDFn: func(ctx context.Context, identity domain.Identity, id int64) (*domain.Prompt, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewPromptHandler(stub)

	c, _ := newContext(t, http.MethodGet, "/api/prompts/abc", "")
	c.SetParamNames("id")
	c.SetParamValues("abc")
	withIdentity(c, 7, domain.RoleUser)

	if err := handler.Get(c); !errors.Is(err, domain.ErrPromptNotFound) {
		t.Fatalf("expected ErrPromptNotFound, got %v", err)
	}
}

func TestPromptHandler_Delete_Success(t *testing.T) {
	var deleted int64
	stub := &stubPromptService{
		deleteFn: func(ctx context.Context, identity domain.Identity, id int64) error {
			deleted = id
			return nil
		},
	}
	handler := NewPromptHandler(stub)

	c, rec := newContext(t, http.MethodDelete, "/api/prompts/5", "")
	c.SetParamNames("id")
	c.SetParamValues("5")
	withIdentity(c, 7, domain.RoleUser)

	if err := handler.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if deleted != 5 {
		t.Fatalf("expected delete of prompt 5, got %d", deleted)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "deleted") {
		t.Fatalf("expected confirmation message, got %s", rec.Body.String())
	}
}
