package ports

import (
	"context"

	"github.com/LeaEliezrov/ai-learning-platform/internal/core/domain"
)

// TaxonomyRepository is the read-only resolver for the Category→Subcategory
// hierarchy. The prompt service only uses the two FindBy* lookups; the rest
// serves the taxonomy browse endpoints.
type TaxonomyRepository interface {
	FindCategoryByID(ctx context.Context, id int64) (*domain.Category, error)
	FindSubcategoryByID(ctx context.Context, id int64) (*domain.Subcategory, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
	ListSubcategories(ctx context.Context) ([]domain.Subcategory, error)
	// ListSubcategoriesByCategory returns the children of one category,
	// name-ordered.
	ListSubcategoriesByCategory(ctx context.Context, categoryID int64) ([]domain.Subcategory, error)
}

// TaxonomyWriter is the write side of the taxonomy, used only by seeding.
// Both operations are find-or-create by name, so re-running a seed is safe.
type TaxonomyWriter interface {
	EnsureCategory(ctx context.Context, name string) (*domain.Category, error)
	EnsureSubcategory(ctx context.Context, categoryID int64, name string) (*domain.Subcategory, error)
}

// CategorySeed is one category with its child subcategories, as consumed by
// the seeder.
type CategorySeed struct {
	Name          string
	Subcategories []string
}
