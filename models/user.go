package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role is the access level a user holds. Sellers are promoted from
// customers when their store application is approved.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleSeller   Role = "seller"
	RoleAdmin    Role = "admin"
)

// Address is a shipping or contact address embedded in users and stores.
type Address struct {
	City        string `bson:"city,omitempty" json:"city,omitempty"`
	District    string `bson:"district,omitempty" json:"district,omitempty"`
	FullAddress string `bson:"full_address,omitempty" json:"full_address,omitempty"`
}

// User represents a marketplace account. The password field holds the
// bcrypt digest and is never serialized to JSON.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Password  string             `bson:"password" json:"-"`
	Role      Role               `bson:"role" json:"role"`
	Address   Address            `bson:"address,omitempty" json:"address"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}

// HasRole reports whether the user's role is one of the allowed roles.
func (u *User) HasRole(roles ...Role) bool {
	for _, r := range roles {
		if u.Role == r {
			return true
		}
	}
	return false
}

// RegisterRequest is the payload for account registration. Role is always
// forced to customer server-side.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// LoginRequest is the payload for credential verification.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileRequest carries a partial profile update. Nil fields are
// left untouched.
type UpdateProfileRequest struct {
	Name     *string        `json:"name,omitempty"`
	Email    *string        `json:"email,omitempty" binding:"omitempty,email"`
	Password *string        `json:"password,omitempty" binding:"omitempty,min=6"`
	Address  *AddressUpdate `json:"address,omitempty"`
}

// AddressUpdate is a field-by-field address merge.
type AddressUpdate struct {
	City        *string `json:"city,omitempty"`
	District    *string `json:"district,omitempty"`
	FullAddress *string `json:"full_address,omitempty"`
}
