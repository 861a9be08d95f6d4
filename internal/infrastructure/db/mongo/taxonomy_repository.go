package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/LeaEliezrov/ai-learning-platform/internal/core/domain"
)

const (
	collectionCategories    = "categories"
	collectionSubcategories = "subcategories"
)

// TaxonomyRepository stores the Category→Subcategory hierarchy. The API
// surface is read-only; the Ensure* writes exist for the seeder (cmd/seed).
type TaxonomyRepository struct {
	categories    *mongo.Collection
	subcategories *mongo.Collection
}

func NewTaxonomyRepository(db *mongo.Database) *TaxonomyRepository {
	return &TaxonomyRepository{
		categories:    db.Collection(collectionCategories),
		subcategories: db.Collection(collectionSubcategories),
	}
}

func (r *TaxonomyRepository) FindCategoryByID(ctx context.Context, id int64) (*domain.Category, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var category domain.Category
	if err := r.categories.FindOne(ctx, bson.M{"_id": id}).Decode(&category); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("find category: %w", err)
	}
	return &category, nil
}

func (r *TaxonomyRepository) FindSubcategoryByID(ctx context.Context, id int64) (*domain.Subcategory, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var subcategory domain.Subcategory
	if err := r.subcategories.FindOne(ctx, bson.M{"_id": id}).Decode(&subcategory); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrSubcategoryNotFound
		}
		return nil, fmt.Errorf("find subcategory: %w", err)
	}
	return &subcategory, nil
}

func (r *TaxonomyRepository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.categories.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	categories := []domain.Category{}
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, fmt.Errorf("decode categories: %w", err)
	}
	return categories, nil
}

func (r *TaxonomyRepository) ListSubcategories(ctx context.Context) ([]domain.Subcategory, error) {
	return r.findSubcategories(ctx, bson.M{})
}

func (r *TaxonomyRepository) ListSubcategoriesByCategory(ctx context.Context, categoryID int64) ([]domain.Subcategory, error) {
	return r.findSubcategories(ctx, bson.M{"category_id": categoryID})
}

// EnsureCategory returns the category with the given name, creating it with
// a fresh sequence id when absent.
func (r *TaxonomyRepository) EnsureCategory(ctx context.Context, name string) (*domain.Category, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var category domain.Category
	err := r.categories.FindOne(ctx, bson.M{"name": name}).Decode(&category)
	if err == nil {
		return &category, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("find category by name: %w", err)
	}

	id, err := nextSequence(ctx, r.categories.Database(), collectionCategories)
	if err != nil {
		return nil, err
	}
	category = domain.Category{ID: id, Name: name}
	if _, err := r.categories.InsertOne(ctx, category); err != nil {
		return nil, fmt.Errorf("insert category: %w", err)
	}
	return &category, nil
}

// EnsureSubcategory is EnsureCategory for one category's children; the name
// is only unique within its parent.
func (r *TaxonomyRepository) EnsureSubcategory(ctx context.Context, categoryID int64, name string) (*domain.Subcategory, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var subcategory domain.Subcategory
	err := r.subcategories.FindOne(ctx, bson.M{"category_id": categoryID, "name": name}).Decode(&subcategory)
	if err == nil {
		return &subcategory, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("find subcategory by name: %w", err)
	}

	id, err := nextSequence(ctx, r.subcategories.Database(), collectionSubcategories)
	if err != nil {
		return nil, err
	}
	subcategory = domain.Subcategory{ID: id, CategoryID: categoryID, Name: name}
	if _, err := r.subcategories.InsertOne(ctx, subcategory); err != nil {
		return nil, fmt.Errorf("insert subcategory: %w", err)
	}
	return &subcategory, nil
}

// EnsureIndexes creates the unique name indexes the Ensure* lookups rely on.
func (r *TaxonomyRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.categories.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}

	_, err = r.subcategories.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "category_id", Value: 1}, {Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (r *TaxonomyRepository) findSubcategories(ctx context.Context, filter bson.M) ([]domain.Subcategory, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.subcategories.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list subcategories: %w", err)
	}

	subcategories := []domain.Subcategory{}
	if err := cursor.All(ctx, &subcategories); err != nil {
		return nil, fmt.Errorf("decode subcategories: %w", err)
	}
	return subcategories, nil
}
