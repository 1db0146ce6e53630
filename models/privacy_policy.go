package models

import (
	"time"
)

// PrivacyPolicyID is the fixed id of the single policy row.
const PrivacyPolicyID = 1

// PrivacyPolicy is a singleton document, upserted by admins.
type PrivacyPolicy struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Content   string    `json:"content"`
	UpdatedAt time.Time `json:"updated_at"`
}
