package models

import (
	"time"
)

// OTP purposes; the purpose decides the TTL at issue time.
const (
	OTPPurposeSignup = "signup"
	OTPPurposeReset  = "reset"
)

// OTP is a one-time passcode bound to an email address. Email is indexed
// but not unique: historical rows may linger until the next issue for the
// same address deletes them, and expiry is checked at verify time.
type OTP struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Email     string    `json:"email" gorm:"index;not null"`
	Code      string    `json:"-" gorm:"not null"`
	Purpose   string    `json:"purpose" gorm:"default:signup"`
	ExpiresAt time.Time `json:"expires_at" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
}

// Expired reports whether the code is past its expiry at the given instant.
func (o *OTP) Expired(now time.Time) bool {
	return now.After(o.ExpiresAt)
}
