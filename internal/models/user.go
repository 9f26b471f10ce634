package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Role identifies the kind of registered account
type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleVendor   Role = "VENDOR"
	RoleAdmin    Role = "ADMIN"
)

// User holds the identity fields common to every account. Role-specific
// fields live in the profile records keyed by the same id.
type User struct {
	ID           int64     `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	FullName     string    `json:"full_name" db:"full_name"`
	Phone        *string   `json:"phone,omitempty" db:"phone"`
	Role         Role      `json:"role" db:"role"`
	CreatedAt    time.Time `json:"created_at,omitempty" db:"created_at"`
}

// CustomerProfile holds customer-specific fields, keyed by user id
type CustomerProfile struct {
	UserID          int64   `json:"user_id" db:"user_id"`
	DeliveryAddress *string `json:"delivery_address,omitempty" db:"delivery_address"`
	City            *string `json:"city,omitempty" db:"city"`
	PostalCode      *string `json:"postal_code,omitempty" db:"postal_code"`
	Preferences     *string `json:"preferences,omitempty" db:"preferences"`
}

// VendorProfile holds vendor-specific fields, keyed by user id
type VendorProfile struct {
	UserID          int64               `json:"user_id" db:"user_id"`
	BusinessName    string              `json:"business_name" db:"business_name"`
	BusinessAddress *string             `json:"business_address,omitempty" db:"business_address"`
	City            *string             `json:"city,omitempty" db:"city"`
	PostalCode      *string             `json:"postal_code,omitempty" db:"postal_code"`
	CuisineType     *string             `json:"cuisine_type,omitempty" db:"cuisine_type"`
	Description     *string             `json:"description,omitempty" db:"description"`
	MinimumOrder    decimal.NullDecimal `json:"minimum_order" db:"minimum_order"`
	DeliveryFee     decimal.NullDecimal `json:"delivery_fee" db:"delivery_fee"`
	Approved        bool                `json:"is_approved" db:"is_approved"`
}

// CustomerDetails carries the customer-specific registration fields
type CustomerDetails struct {
	DeliveryAddress *string `json:"delivery_address,omitempty"`
	City            *string `json:"city,omitempty"`
	PostalCode      *string `json:"postal_code,omitempty"`
}

// VendorDetails carries the vendor-specific registration fields
type VendorDetails struct {
	BusinessName    string              `json:"business_name"`
	BusinessAddress *string             `json:"business_address,omitempty"`
	City            *string             `json:"city,omitempty"`
	CuisineType     *string             `json:"cuisine_type,omitempty"`
	DeliveryFee     decimal.NullDecimal `json:"delivery_fee"`
}

// RegisterRequest is a role-tagged registration request. Exactly the
// variant matching Role may be set.
type RegisterRequest struct {
	Role     Role             `json:"role"`
	Email    string           `json:"email"`
	Password string           `json:"password"`
	FullName string           `json:"full_name"`
	Phone    *string          `json:"phone,omitempty"`
	Customer *CustomerDetails `json:"customer,omitempty"`
	Vendor   *VendorDetails   `json:"vendor,omitempty"`
}

// Validate checks the tagged variant is well formed for its role
func (req *RegisterRequest) Validate() error {
	if req.Email == "" {
		return InvalidInputf("email is required")
	}
	if req.Password == "" {
		return InvalidInputf("password is required")
	}
	if req.FullName == "" {
		return InvalidInputf("full_name is required")
	}
	switch req.Role {
	case RoleCustomer:
		if req.Vendor != nil {
			return InvalidInputf("vendor details must not be present for customer registration")
		}
	case RoleVendor:
		if req.Vendor == nil || req.Vendor.BusinessName == "" {
			return InvalidInputf("business_name is required for vendor registration")
		}
		if req.Customer != nil {
			return InvalidInputf("customer details must not be present for vendor registration")
		}
	case RoleAdmin:
		if req.Customer != nil || req.Vendor != nil {
			return InvalidInputf("profile details must not be present for admin registration")
		}
	default:
		return InvalidInputf("role must be one of: CUSTOMER, VENDOR, ADMIN")
	}
	return nil
}
