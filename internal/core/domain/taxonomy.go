package domain

import "errors"

var ErrCategoryNotFound = errors.New("category not found")
var ErrSubcategoryNotFound = errors.New("subcategory not found")

// Category is a top-level taxonomy node. Read-only from the prompt
// pipeline's perspective.
type Category struct {
	ID   int64  `json:"id" bson:"_id"`
	Name string `json:"name" bson:"name"`
}

// Subcategory belongs to exactly one Category.
type Subcategory struct {
	ID         int64  `json:"id" bson:"_id"`
	CategoryID int64  `json:"categoryId" bson:"category_id"`
	Name       string `json:"name" bson:"name"`
}
