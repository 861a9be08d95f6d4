package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/LeaEliezrov/ai-learning-platform/internal/core/domain"
	"github.com/LeaEliezrov/ai-learning-platform/internal/core/ports"
)

type categoryResponse struct {
	domain.Category
	Subcategories []domain.Subcategory `json:"subcategories"`
}

// TaxonomyHandler serves the read-only category and subcategory endpoints.
type TaxonomyHandler struct {
	repo ports.TaxonomyRepository
}

func NewTaxonomyHandler(repo ports.TaxonomyRepository) *TaxonomyHandler {
	return &TaxonomyHandler{repo: repo}
}

// ListCategories handles GET /api/categories, each category carrying its
// subcategories.
//
// @Summary      List all categories with their subcategories
// @Tags         categories
// @Produce      json
// @Success      200  {array}  categoryResponse
// @Router       /categories [get]
func (h *TaxonomyHandler) ListCategories(c echo.Context) error {
	ctx := c.Request().Context()

	categories, err := h.repo.ListCategories(ctx)
	if err != nil {
		return err
	}
	subcategories, err := h.repo.ListSubcategories(ctx)
	if err != nil {
		return err
	}

	children := make(map[int64][]domain.Subcategory, len(categories))
	for _, sub := range subcategories {
		children[sub.CategoryID] = append(children[sub.CategoryID], sub)
	}

	out := make([]categoryResponse, 0, len(categories))
	for _, cat := range categories {
		subs := children[cat.ID]
		if subs == nil {
			subs = []domain.Subcategory{}
		}
		out = append(out, categoryResponse{Category: cat, Subcategories: subs})
	}

	return c.JSON(http.StatusOK, out)
}

// GetCategory handles GET /api/categories/:id.
//
// @Summary      Get one category with its subcategories
// @Tags         categories
// @Produce      json
// @Param        id   path      int  true  "Category id"
// @Success      200  {object}  categoryResponse
// @Failure      404  {object}  map[string]string
// @Router       /categories/{id} [get]
func (h *TaxonomyHandler) GetCategory(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return domain.ErrCategoryNotFound
	}

	ctx := c.Request().Context()
	category, err := h.repo.FindCategoryByID(ctx, id)
	if err != nil {
		return err
	}
	subs, err := h.repo.ListSubcategoriesByCategory(ctx, id)
	if err != nil {
		return err
	}
	if subs == nil {
		subs = []domain.Subcategory{}
	}

	return c.JSON(http.StatusOK, categoryResponse{Category: *category, Subcategories: subs})
}

// CategorySubcategories handles GET /api/categories/:id/subcategories.
//
// @Summary      List the subcategories of one category
// @Tags         categories
// @Produce      json
// @Param        id   path     int  true  "Category id"
// @Success      200  {array}  domain.Subcategory
// @Failure      404  {object}  map[string]string
// @Router       /categories/{id}/subcategories [get]
func (h *TaxonomyHandler) CategorySubcategories(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return domain.ErrCategoryNotFound
	}

	ctx := c.Request().Context()
	if _, err := h.repo.FindCategoryByID(ctx, id); err != nil {
		return err
	}
	subs, err := h.repo.ListSubcategoriesByCategory(ctx, id)
	if err != nil {
		return err
	}
	if subs == nil {
		subs = []domain.Subcategory{}
	}

	return c.JSON(http.StatusOK, subs)
}

// ListSubcategories handles GET /api/subcategories, optionally filtered by
// ?categoryId=.
//
// @Summary      List subcategories
// @Tags         subcategories
// @Produce      json
// @Param        categoryId  query    int  false  "Filter by parent category"
// @Success      200  {array}  domain.Subcategory
// @Router       /subcategories [get]
func (h *TaxonomyHandler) ListSubcategories(c echo.Context) error {
	ctx := c.Request().Context()

	var (
		subs []domain.Subcategory
		err  error
	)
	if raw := c.QueryParam("categoryId"); raw != "" {
		categoryID, parseErr := strconv.ParseInt(raw, 10, 64)
		if parseErr != nil || categoryID <= 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "categoryId must be a positive integer")
		}
		subs, err = h.repo.ListSubcategoriesByCategory(ctx, categoryID)
	} else {
		subs, err = h.repo.ListSubcategories(ctx)
	}
	if err != nil {
		return err
	}
	if subs == nil {
		subs = []domain.Subcategory{}
	}

	return c.JSON(http.StatusOK, subs)
}

// GetSubcategory handles GET /api/subcategories/:id.
//
// @Summary      Get one subcategory
// @Tags         subcategories
// @Produce      json
// @Param        id   path      int  true  "Subcategory id"
// @Success      200  {object}  domain.Subcategory
// @Failure      404  {object}  map[string]string
// @Router       /subcategories/{id} [get]
func (h *TaxonomyHandler) GetSubcategory(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return domain.ErrSubcategoryNotFound
	}

	sub, err := h.repo.FindSubcategoryByID(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, sub)
}
