package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Category is a catalog category. A nil parent marks a top-level category.
type Category struct {
	ID        primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Name      string              `bson:"name" json:"name"`
	Slug      string              `bson:"slug" json:"slug"`
	Parent    *primitive.ObjectID `bson:"parent,omitempty" json:"parent,omitempty"`
	CreatedAt time.Time           `bson:"created_at" json:"created_at"`
}

// CreateCategoryRequest is the payload for creating a category.
type CreateCategoryRequest struct {
	Name   string `json:"name" binding:"required,max=50"`
	Parent string `json:"parent,omitempty"`
}

// UpdateCategoryRequest carries a partial category update. An explicit
// empty parent string detaches the category from its parent.
type UpdateCategoryRequest struct {
	Name   *string `json:"name,omitempty" binding:"omitempty,max=50"`
	Parent *string `json:"parent,omitempty"`
}
