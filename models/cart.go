package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartItem is one line of a cart. Price is a snapshot captured when the
// item was added; later catalog price changes do not touch it.
type CartItem struct {
	Product       primitive.ObjectID `bson:"product" json:"product"`
	Store         primitive.ObjectID `bson:"store" json:"store"`
	Quantity      int                `bson:"quantity" json:"quantity"`
	Price         float64            `bson:"price" json:"price"`
	SelectedSpecs []Specification    `bson:"selected_specs,omitempty" json:"selected_specs,omitempty"`
}

// Cart is a customer's in-progress selection, created lazily per user.
// TotalCartPrice is only trustworthy right after a recompute.
type Cart struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	User           primitive.ObjectID `bson:"user" json:"user"`
	Items          []CartItem         `bson:"items" json:"items"`
	TotalCartPrice float64            `bson:"total_cart_price" json:"total_cart_price"`
	UpdatedAt      time.Time          `bson:"updated_at" json:"updated_at"`
}

// AddCartItemRequest is the payload for adding a product to the cart.
type AddCartItemRequest struct {
	ProductID     string          `json:"product_id" binding:"required"`
	Quantity      int             `json:"quantity" binding:"required,min=1"`
	SelectedSpecs []Specification `json:"selected_specs,omitempty"`
}

// UpdateCartItemRequest adjusts the quantity of an existing line.
type UpdateCartItemRequest struct {
	ProductID     string          `json:"product_id" binding:"required"`
	Quantity      int             `json:"quantity" binding:"required,min=1"`
	SelectedSpecs []Specification `json:"selected_specs,omitempty"`
}

// RemoveCartItemRequest removes a line from the cart.
type RemoveCartItemRequest struct {
	ProductID     string          `json:"product_id" binding:"required"`
	SelectedSpecs []Specification `json:"selected_specs,omitempty"`
}
