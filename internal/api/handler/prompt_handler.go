package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/LeaEliezrov/ai-learning-platform/internal/api/metrics"
	"github.com/LeaEliezrov/ai-learning-platform/internal/core/domain"
	"github.com/LeaEliezrov/ai-learning-platform/internal/core/ports"
)

// PromptHandler exposes the prompt pipeline over HTTP.
type PromptHandler struct {
	service ports.PromptService
}

func NewPromptHandler(service ports.PromptService) *PromptHandler {
	return &PromptHandler{service: service}
}

// Create handles POST /api/prompts.
//
// @Summary      Submit a prompt and get a generated lesson
// @Tags         prompts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createPromptRequest  true  "Prompt submission"
// @Success      201   {object}  createPromptResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      502   {object}  map[string]string
// @Router       /prompts [post]
func (h *PromptHandler) Create(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req createPromptRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	start := time.Now()
	result, err := h.service.Submit(c.Request().Context(), ports.SubmitPromptInput{
		Identity:      identity,
		CategoryID:    req.CategoryID,
		SubcategoryID: req.SubcategoryID,
		Prompt:        req.Prompt,
	})
	if err != nil {
		if errors.Is(err, domain.ErrGenerationFailed) {
			metrics.GenerationFailuresTotal.Inc()
		}
		return err
	}

	metrics.PromptsCreatedTotal.WithLabelValues(result.Category.Name).Inc()
	metrics.TokensUsedTotal.Add(float64(result.TokensUsed))
	metrics.GenerationDuration.Observe(time.Since(start).Seconds())

	return c.JSON(http.StatusCreated, createPromptResponse{
		Success: true,
		Prompt: promptResponse{
			ID:            result.Prompt.ID,
			UserID:        result.Prompt.UserID,
			CategoryID:    result.Prompt.CategoryID,
			SubcategoryID: result.Prompt.SubcategoryID,
			Category:      result.Category.Name,
			Subcategory:   result.Subcategory.Name,
			Prompt:        result.Prompt.Prompt,
			Response:      result.Prompt.Response,
			CreatedAt:     result.Prompt.CreatedAt.UTC().Format(time.RFC3339),
		},
		TokensUsed: result.TokensUsed,
	})
}

// MyPrompts handles GET /api/prompts/my-prompts.
//
// @Summary      List the caller's prompt history, newest first
// @Tags         prompts
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page (default 1)"
// @Param        limit  query     int  false  "Page size (default 10)"
// @Success      200    {object}  listPromptsResponse
// @Failure      401    {object}  map[string]string
// @Router       /prompts/my-prompts [get]
func (h *PromptHandler) MyPrompts(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	page := queryInt(c, "page")
	limit := queryInt(c, "limit")

	result, err := h.service.ListForUser(c.Request().Context(), identity.UserID, page, limit)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, listPromptsResponse{
		Prompts:    result.Prompts,
		Pagination: paginationOf(result.Page, result.Limit, result.Total, result.Pages),
	})
}

// AdminAll handles GET /api/prompts/admin/all (administrator-only).
//
// @Summary      List all users' prompts with owner details
// @Tags         prompts
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page (default 1)"
// @Param        limit  query     int  false  "Page size (default 20)"
// @Success      200    {object}  listAllPromptsResponse
// @Failure      401    {object}  map[string]string
// @Failure      403    {object}  map[string]string
// @Router       /prompts/admin/all [get]
func (h *PromptHandler) AdminAll(c echo.Context) error {
	result, err := h.service.ListAll(c.Request().Context(), queryInt(c, "page"), queryInt(c, "limit"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, listAllPromptsResponse{
		Prompts:    result.Prompts,
		Pagination: paginationOf(result.Page, result.Limit, result.Total, result.Pages),
	})
}

// Get handles GET /api/prompts/:id.
//
// @Summary      Get one prompt by id (owner-scoped)
// @Tags         prompts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Prompt id"
// @Success      200  {object}  getPromptResponse
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /prompts/{id} [get]
func (h *PromptHandler) Get(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	id, err := pathID(c)
	if err != nil {
		return err
	}

	prompt, err := h.service.GetByID(c.Request().Context(), identity, id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, getPromptResponse{Prompt: *prompt})
}

// Delete handles DELETE /api/prompts/:id.
//
// @Summary      Delete one prompt by id (owner-scoped)
// @Tags         prompts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Prompt id"
// @Success      200  {object}  deletePromptResponse
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /prompts/{id} [delete]
func (h *PromptHandler) Delete(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), identity, id); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, deletePromptResponse{Message: "Prompt deleted successfully"})
}

// queryInt parses a query parameter, returning 0 for absent or non-numeric
// values so the service applies its defaults.
func queryInt(c echo.Context, name string) int {
	n, err := strconv.Atoi(c.QueryParam(name))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// pathID parses the :id segment. A non-numeric id is treated as not found
// rather than bad request: the resource space is numeric, so "abc" can no
// more exist than an unallocated number.
func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.ErrPromptNotFound
	}
	return id, nil
}

func paginationOf(page, limit int, total int64, pages int) paginationResponse {
	return paginationResponse{Page: page, Limit: limit, Total: total, Pages: pages}
}
