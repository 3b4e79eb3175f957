package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderStatus is the fulfillment state of an order.
type OrderStatus string

const (
	OrderStatusProcessing OrderStatus = "Processing"
	OrderStatusShipped    OrderStatus = "Shipped"
	OrderStatusDelivered  OrderStatus = "Delivered"
	OrderStatusCancelled  OrderStatus = "Cancelled"
	OrderStatusReturned   OrderStatus = "Returned"
)

// PaymentMethod is the payment channel chosen at checkout.
type PaymentMethod string

const (
	PaymentCreditCard   PaymentMethod = "CreditCard"
	PaymentBankTransfer PaymentMethod = "BankTransfer"
)

// OrderItem is an immutable snapshot of a cart line taken at checkout.
// Name, price and image are copied at creation so later product edits
// never change an existing order.
type OrderItem struct {
	Product       primitive.ObjectID `bson:"product" json:"product"`
	Store         primitive.ObjectID `bson:"store" json:"store"`
	Name          string             `bson:"name" json:"name"`
	Quantity      int                `bson:"quantity" json:"quantity"`
	Price         float64            `bson:"price" json:"price"`
	Image         string             `bson:"image,omitempty" json:"image,omitempty"`
	SelectedSpecs []Specification    `bson:"selected_specs,omitempty" json:"selected_specs,omitempty"`
}

// ShippingAddress is the delivery destination captured at checkout.
type ShippingAddress struct {
	FullName   string `bson:"full_name" json:"full_name" binding:"required"`
	Address    string `bson:"address" json:"address" binding:"required"`
	City       string `bson:"city" json:"city" binding:"required"`
	District   string `bson:"district" json:"district" binding:"required"`
	PostalCode string `bson:"postal_code" json:"postal_code" binding:"required"`
	Phone      string `bson:"phone" json:"phone" binding:"required"`
}

// PaymentResult holds the identifiers returned by the payment provider.
type PaymentResult struct {
	ID           string `bson:"id,omitempty" json:"id,omitempty"`
	Status       string `bson:"status,omitempty" json:"status,omitempty"`
	EmailAddress string `bson:"email_address,omitempty" json:"email_address,omitempty"`
	UpdateTime   string `bson:"update_time,omitempty" json:"update_time,omitempty"`
}

// Order is the immutable record created from a cart at checkout. Only the
// status, tracking number and payment result change afterwards.
type Order struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	User            primitive.ObjectID `bson:"user" json:"user"`
	OrderNumber     string             `bson:"order_number" json:"order_number"`
	OrderItems      []OrderItem        `bson:"order_items" json:"order_items"`
	ShippingAddress ShippingAddress    `bson:"shipping_address" json:"shipping_address"`
	PaymentMethod   PaymentMethod      `bson:"payment_method" json:"payment_method"`
	PaymentResult   PaymentResult      `bson:"payment_result,omitempty" json:"payment_result,omitempty"`
	CouponCode      string             `bson:"coupon_code,omitempty" json:"coupon_code,omitempty"`
	ItemsPrice      float64            `bson:"items_price" json:"items_price"`
	DiscountAmount  float64            `bson:"discount_amount" json:"discount_amount"`
	TaxPrice        float64            `bson:"tax_price" json:"tax_price"`
	ShippingPrice   float64            `bson:"shipping_price" json:"shipping_price"`
	TotalPrice      float64            `bson:"total_price" json:"total_price"`
	OrderStatus     OrderStatus        `bson:"order_status" json:"order_status"`
	TrackingNumber  string             `bson:"tracking_number,omitempty" json:"tracking_number,omitempty"`
	DeliveredAt     *time.Time         `bson:"delivered_at,omitempty" json:"delivered_at,omitempty"`
	CreatedAt       time.Time          `bson:"created_at" json:"created_at"`
}

// CheckoutRequest turns the caller's cart into an order.
type CheckoutRequest struct {
	ShippingAddress ShippingAddress `json:"shipping_address" binding:"required"`
	PaymentMethod   PaymentMethod   `json:"payment_method" binding:"required,oneof=CreditCard BankTransfer"`
	CouponCode      string          `json:"coupon_code,omitempty"`
}

// UpdateOrderStatusRequest advances an order through its state machine.
type UpdateOrderStatusRequest struct {
	Status OrderStatus `json:"status" binding:"required,oneof=Processing Shipped Delivered Cancelled Returned"`
}

// SetTrackingRequest attaches a carrier tracking number.
type SetTrackingRequest struct {
	TrackingNumber string `json:"tracking_number" binding:"required"`
}
