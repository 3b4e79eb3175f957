package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DiscountType is how a coupon's value is interpreted.
type DiscountType string

const (
	DiscountPercent DiscountType = "percent"
	DiscountFixed   DiscountType = "fixed"
)

// Coupon is a discount definition. A nil store scope means the coupon is
// global; otherwise it only applies to items from that store. Codes are
// normalized to uppercase.
type Coupon struct {
	ID                primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Code              string               `bson:"code" json:"code"`
	Store             *primitive.ObjectID  `bson:"store,omitempty" json:"store,omitempty"`
	DiscountType      DiscountType         `bson:"discount_type" json:"discount_type"`
	DiscountValue     float64              `bson:"discount_value" json:"discount_value"`
	MinPurchaseAmount float64              `bson:"min_purchase_amount" json:"min_purchase_amount"`
	ExpirationDate    time.Time            `bson:"expiration_date" json:"expiration_date"`
	UsageLimit        int                  `bson:"usage_limit" json:"usage_limit"`
	UsedCount         int                  `bson:"used_count" json:"used_count"`
	UsedBy            []primitive.ObjectID `bson:"used_by,omitempty" json:"-"`
	IsActive          bool                 `bson:"is_active" json:"is_active"`
	CreatedAt         time.Time            `bson:"created_at" json:"created_at"`
}

// WasUsedBy reports whether the given user already redeemed this coupon.
func (c *Coupon) WasUsedBy(userID primitive.ObjectID) bool {
	for _, id := range c.UsedBy {
		if id == userID {
			return true
		}
	}
	return false
}

// CreateCouponRequest is the payload for creating a coupon. Sellers may
// only create coupons scoped to their own store; admins may create global
// ones by leaving StoreID empty.
type CreateCouponRequest struct {
	Code              string       `json:"code" binding:"required,min=3,max=64"`
	StoreID           string       `json:"store_id,omitempty"`
	DiscountType      DiscountType `json:"discount_type" binding:"required,oneof=percent fixed"`
	DiscountValue     float64      `json:"discount_value" binding:"required,gt=0"`
	MinPurchaseAmount float64      `json:"min_purchase_amount" binding:"gte=0"`
	ExpirationDate    time.Time    `json:"expiration_date" binding:"required"`
	UsageLimit        int          `json:"usage_limit" binding:"gte=0"`
}

// CheckCouponRequest asks whether a coupon is redeemable for the caller's
// current cart.
type CheckCouponRequest struct {
	Code string `json:"code" binding:"required"`
}

// CouponQuote is the answer to a validity check.
type CouponQuote struct {
	Code               string       `json:"code"`
	DiscountType       DiscountType `json:"discount_type"`
	DiscountValue      float64      `json:"discount_value"`
	CartTotal          float64      `json:"cart_total"`
	DiscountedSubtotal float64      `json:"discounted_subtotal"`
}
