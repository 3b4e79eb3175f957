package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StoreStatus is the approval state of a storefront.
type StoreStatus string

const (
	StoreStatusPending   StoreStatus = "pending"
	StoreStatusActive    StoreStatus = "active"
	StoreStatusSuspended StoreStatus = "suspended"
	StoreStatusClosed    StoreStatus = "closed"
)

// Image holds an uploaded asset reference.
type Image struct {
	PublicID string `bson:"public_id,omitempty" json:"public_id,omitempty"`
	URL      string `bson:"url,omitempty" json:"url,omitempty"`
}

// SocialMedia holds a store's public links.
type SocialMedia struct {
	Website   string `bson:"website,omitempty" json:"website,omitempty"`
	Instagram string `bson:"instagram,omitempty" json:"instagram,omitempty"`
	Facebook  string `bson:"facebook,omitempty" json:"facebook,omitempty"`
}

// TaxInfo holds a store's legal registration details.
type TaxInfo struct {
	TaxNumber   string `bson:"tax_number,omitempty" json:"tax_number,omitempty"`
	TaxOffice   string `bson:"tax_office,omitempty" json:"tax_office,omitempty"`
	CompanyType string `bson:"company_type,omitempty" json:"company_type,omitempty"`
}

// Store is an independent seller's storefront. Each user owns at most one
// non-deleted store. New stores start in pending until an admin approves
// them; closure is a soft delete and is terminal.
type Store struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Owner        primitive.ObjectID `bson:"owner" json:"owner"`
	Name         string             `bson:"name" json:"name"`
	Slug         string             `bson:"slug" json:"slug"`
	Description  string             `bson:"description" json:"description"`
	Logo         Image              `bson:"logo,omitempty" json:"logo,omitempty"`
	CoverImage   Image              `bson:"cover_image,omitempty" json:"cover_image,omitempty"`
	ContactEmail string             `bson:"contact_email,omitempty" json:"contact_email,omitempty"`
	Phone        string             `bson:"phone" json:"phone"`
	Address      Address            `bson:"address,omitempty" json:"address"`
	SocialMedia  SocialMedia        `bson:"social_media,omitempty" json:"social_media"`
	TaxInfo      TaxInfo            `bson:"tax_info,omitempty" json:"tax_info"`
	Status       StoreStatus        `bson:"status" json:"status"`
	Rating       float64            `bson:"rating" json:"rating"`
	IsDeleted    bool               `bson:"is_deleted" json:"is_deleted"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updated_at"`
}

// CreateStoreRequest is the seller application payload.
type CreateStoreRequest struct {
	Name         string       `json:"name" binding:"required,max=50"`
	Description  string       `json:"description" binding:"required,max=500"`
	Phone        string       `json:"phone" binding:"required"`
	ContactEmail string       `json:"contact_email" binding:"omitempty,email"`
	Address      *Address     `json:"address,omitempty"`
	SocialMedia  *SocialMedia `json:"social_media,omitempty"`
	TaxInfo      *TaxInfo     `json:"tax_info,omitempty"`
	Logo         *Image       `json:"logo,omitempty"`
	CoverImage   *Image       `json:"cover_image,omitempty"`
}

// UpdateStoreRequest carries a partial store update. Nested objects are
// merged field-by-field; status, rating and owner cannot be changed here.
type UpdateStoreRequest struct {
	Name         *string            `json:"name,omitempty" binding:"omitempty,max=50"`
	Description  *string            `json:"description,omitempty" binding:"omitempty,max=500"`
	ContactEmail *string            `json:"contact_email,omitempty" binding:"omitempty,email"`
	Phone        *string            `json:"phone,omitempty"`
	Address      *AddressUpdate     `json:"address,omitempty"`
	SocialMedia  *SocialMediaUpdate `json:"social_media,omitempty"`
	TaxInfo      *TaxInfoUpdate     `json:"tax_info,omitempty"`
	Logo         *Image             `json:"logo,omitempty"`
	CoverImage   *Image             `json:"cover_image,omitempty"`
}

// SocialMediaUpdate is a field-by-field social links merge.
type SocialMediaUpdate struct {
	Website   *string `json:"website,omitempty"`
	Instagram *string `json:"instagram,omitempty"`
	Facebook  *string `json:"facebook,omitempty"`
}

// TaxInfoUpdate is a field-by-field tax info merge.
type TaxInfoUpdate struct {
	TaxNumber   *string `json:"tax_number,omitempty"`
	TaxOffice   *string `json:"tax_office,omitempty"`
	CompanyType *string `json:"company_type,omitempty"`
}
