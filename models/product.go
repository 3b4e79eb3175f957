package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Specification is a single product attribute, e.g. {Color, Red}.
type Specification struct {
	Key   string `bson:"key" json:"key"`
	Value string `bson:"value" json:"value"`
}

// Product is a catalog entry owned by exactly one store. Soft-deleted
// products disappear from listings but stay addressable by id so that
// historical orders keep resolving.
type Product struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name           string             `bson:"name" json:"name"`
	Slug           string             `bson:"slug" json:"slug"`
	SKU            string             `bson:"sku" json:"sku"`
	Description    string             `bson:"description" json:"description"`
	Price          float64            `bson:"price" json:"price"`
	DiscountPrice  *float64           `bson:"discount_price,omitempty" json:"discount_price,omitempty"`
	Category       primitive.ObjectID `bson:"category" json:"category"`
	Brand          string             `bson:"brand,omitempty" json:"brand,omitempty"`
	Stock          int                `bson:"stock" json:"stock"`
	Sold           int                `bson:"sold" json:"sold"`
	Tags           []string           `bson:"tags,omitempty" json:"tags,omitempty"`
	Specifications []Specification    `bson:"specifications,omitempty" json:"specifications,omitempty"`
	Images         []Image            `bson:"images,omitempty" json:"images,omitempty"`
	Store          primitive.ObjectID `bson:"store" json:"store"`
	Rating         float64            `bson:"rating" json:"rating"`
	NumReviews     int                `bson:"num_reviews" json:"num_reviews"`
	IsDeleted      bool               `bson:"is_deleted" json:"is_deleted"`
	IsActive       bool               `bson:"is_active" json:"is_active"`
	CreatedAt      time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time          `bson:"updated_at" json:"updated_at"`
}

// EffectivePrice returns the discount price when one is set, otherwise the
// list price. Carts snapshot this value at add time.
func (p *Product) EffectivePrice() float64 {
	if p.DiscountPrice != nil {
		return *p.DiscountPrice
	}
	return p.Price
}

// CreateProductRequest is the payload for listing a new product.
type CreateProductRequest struct {
	Name           string          `json:"name" binding:"required,max=100"`
	Description    string          `json:"description" binding:"required,max=2000"`
	Price          float64         `json:"price" binding:"required,gt=0"`
	DiscountPrice  *float64        `json:"discount_price,omitempty" binding:"omitempty,gt=0"`
	Category       string          `json:"category" binding:"required"`
	Brand          string          `json:"brand,omitempty"`
	Stock          int             `json:"stock" binding:"gte=0"`
	Tags           []string        `json:"tags,omitempty"`
	Specifications []Specification `json:"specifications,omitempty"`
	Images         []Image         `json:"images,omitempty"`
}

// UpdateProductRequest carries a partial product update. Price and stock
// changes are re-validated against the catalog invariants on save.
type UpdateProductRequest struct {
	Name           *string          `json:"name,omitempty" binding:"omitempty,max=100"`
	Description    *string          `json:"description,omitempty" binding:"omitempty,max=2000"`
	Price          *float64         `json:"price,omitempty" binding:"omitempty,gt=0"`
	DiscountPrice  *float64         `json:"discount_price,omitempty"`
	Category       *string          `json:"category,omitempty"`
	Brand          *string          `json:"brand,omitempty"`
	Stock          *int             `json:"stock,omitempty"`
	Tags           *[]string        `json:"tags,omitempty"`
	Specifications *[]Specification `json:"specifications,omitempty"`
	Images         *[]Image         `json:"images,omitempty"`
	IsActive       *bool            `json:"is_active,omitempty"`
}
