package models

import (
	"gorm.io/gorm"
)

// ProviderRequest statuses. PENDING is the only non-terminal state.
const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

// Applicant classifications.
const (
	ApplicantIndividual = "individual"
	ApplicantBusiness   = "business"
)

// Qualification is one education entry on an application.
type Qualification struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Year        string `json:"year"`
}

// License is one professional license entry, with the uploaded document's
// storage identifier.
type License struct {
	Name        string `json:"name"`
	Authority   string `json:"authority"`
	Number      string `json:"number"`
	Expiry      string `json:"expiry"`
	DocumentRef string `json:"document_ref"`
}

// Availability describes when the applicant can take work.
type Availability struct {
	Days      []string `json:"days"`
	StartTime string   `json:"start_time"`
	EndTime   string   `json:"end_time"`
	Emergency bool     `json:"emergency"`
}

// Pricing describes how the applicant charges.
type Pricing struct {
	Type           string   `json:"type"`
	BaseRate       string   `json:"base_rate"`
	PaymentMethods []string `json:"payment_methods"`
}

// IdentityProof is the applicant's identity document details.
type IdentityProof struct {
	Type                   string `json:"type"`
	Number                 string `json:"number"`
	BackgroundCheckConsent bool   `json:"background_check_consent"`
}

// LegalAcknowledgements are the terms the applicant must accept.
type LegalAcknowledgements struct {
	Terms   bool `json:"terms"`
	Privacy bool `json:"privacy"`
	Rules   bool `json:"rules"`
}

// ProviderRequest is a user's application to become a service provider.
// Rows are never hard-deleted: terminal requests stay visible so a user can
// see their history when reapplying. The partial unique index on user_id
// keeps concurrent submissions from creating two PENDING rows.
type ProviderRequest struct {
	gorm.Model
	UserID uint `json:"user_id" gorm:"index:idx_provider_requests_user_pending,unique,where:status = 'PENDING'"`
	User   User `json:"user,omitempty" gorm:"foreignKey:UserID"`

	ApplicantType        string `json:"applicant_type"`
	FirstName            string `json:"first_name"`
	LastName             string `json:"last_name"`
	BusinessName         string `json:"business_name"`
	BusinessRegistration string `json:"business_registration"`

	Phone   string `json:"phone"`
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zip_code"`

	CategoryID    uint        `json:"category_id"`
	SubCategoryID uint        `json:"sub_category_id"`
	SubCategory   SubCategory `json:"sub_category,omitempty" gorm:"foreignKey:SubCategoryID"`

	Description     string `json:"description"`
	YearsExperience string `json:"years_experience"`

	Qualifications []Qualification       `json:"qualifications" gorm:"serializer:json"`
	Licenses       []License             `json:"licenses" gorm:"serializer:json"`
	Availability   Availability          `json:"availability" gorm:"serializer:json"`
	Pricing        Pricing               `json:"pricing" gorm:"serializer:json"`
	IdentityProof  IdentityProof         `json:"identity_proof" gorm:"serializer:json"`
	Legal          LegalAcknowledgements `json:"legal" gorm:"serializer:json"`

	Status          string  `json:"status" gorm:"default:PENDING;index"`
	RejectionReason *string `json:"rejection_reason,omitempty"`
}

// Terminal reports whether the request has left PENDING.
func (r *ProviderRequest) Terminal() bool {
	return r.Status != StatusPending
}
