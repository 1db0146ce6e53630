package models

import (
	"time"
)

// Roles a user can hold. A user starts at RoleNone (federated first login)
// or RoleSeeker/RoleProvider depending on the signup flow; RoleProvider is
// otherwise only granted through an approved provider request.
const (
	RoleNone     = "none"
	RoleSeeker   = "seeker"
	RoleProvider = "provider"
	RoleAdmin    = "admin"
)

// Provider-request status mirrored onto the user row.
const (
	RequestStatusNone     = "none"
	RequestStatusPending  = "pending"
	RequestStatusApproved = "approved"
	RequestStatusRejected = "rejected"
)

type User struct {
	ID        uint    `json:"id" gorm:"primaryKey"`
	Name      string  `json:"name"`
	Email     string  `json:"email" gorm:"unique"`
	Password  *string `json:"-"`
	AvatarURL string  `json:"avatar_url,omitempty"`
	Phone     string  `json:"phone,omitempty"`
	City      string  `json:"city,omitempty"`

	Role                  string `json:"role" gorm:"default:none"`
	ProviderRequestStatus string `json:"provider_request_status" gorm:"default:none"`
	IsProviderAtFirst     bool   `json:"is_provider_at_first"`

	ProviderRequests []ProviderRequest `json:"provider_requests,omitempty" gorm:"foreignKey:UserID"`
	Services         []Service         `json:"services,omitempty" gorm:"foreignKey:ProviderID"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsFederatedOnly reports whether the account was created through a
// federated identity provider and has no local password.
func (u *User) IsFederatedOnly() bool {
	return u.Password == nil
}
