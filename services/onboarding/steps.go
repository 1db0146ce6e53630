package onboarding

import (
	"servicehub/models"
	"servicehub/utils"
)

// Step names. The account step only exists for unauthenticated signups;
// business applicants skip the credentials (education) step.
const (
	StepAccount      = "account"
	StepProfile      = "profile"
	StepApplicant    = "applicant"
	StepContact      = "contact"
	StepService      = "service"
	StepBackground   = "background"
	StepCredentials  = "credentials"
	StepAvailability = "availability"
	StepPricing      = "pricing"
	StepLegal        = "legal"
)

// Onboarding variants.
const (
	VariantSeeker   = "seeker"
	VariantProvider = "provider"
)

// AccountStep carries the signup credentials. The OTP sub-flow
// (not sent → sent → verified) is nested here: the code must verify
// before the client may advance, and the signup endpoint re-verifies
// before consuming it.
type AccountStep struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	OTP      string `json:"otp"`
}

func (s *AccountStep) sanitize() { s.OTP = utils.Digits(s.OTP) }

func (s *AccountStep) validate() []string {
	var missing []string
	if s.Name == "" {
		missing = append(missing, "name")
	}
	if s.Email == "" {
		missing = append(missing, "email")
	}
	if s.Password == "" {
		missing = append(missing, "password")
	}
	if s.OTP == "" {
		missing = append(missing, "otp")
	}
	return missing
}

// ProfileStep is the seeker variant's only data step.
type ProfileStep struct {
	Phone string `json:"phone"`
	City  string `json:"city"`
}

func (s *ProfileStep) sanitize() { s.Phone = utils.Digits(s.Phone) }

func (s *ProfileStep) validate() []string {
	var missing []string
	if s.Phone == "" {
		missing = append(missing, "phone")
	}
	if s.City == "" {
		missing = append(missing, "city")
	}
	return missing
}

// ApplicantStep classifies the applicant and names them.
type ApplicantStep struct {
	ApplicantType        string `json:"applicant_type"`
	FirstName            string `json:"first_name"`
	LastName             string `json:"last_name"`
	BusinessName         string `json:"business_name"`
	BusinessRegistration string `json:"business_registration"`
}

func (s *ApplicantStep) sanitize() {}

func (s *ApplicantStep) validate() []string {
	var missing []string
	switch s.ApplicantType {
	case models.ApplicantIndividual:
		if s.FirstName == "" {
			missing = append(missing, "first_name")
		}
		if s.LastName == "" {
			missing = append(missing, "last_name")
		}
	case models.ApplicantBusiness:
		if s.BusinessName == "" {
			missing = append(missing, "business_name")
		}
		if s.BusinessRegistration == "" {
			missing = append(missing, "business_registration")
		}
	default:
		missing = append(missing, "applicant_type")
	}
	return missing
}

type ContactStep struct {
	Phone   string `json:"phone"`
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zip_code"`
}

func (s *ContactStep) sanitize() {
	s.Phone = utils.Digits(s.Phone)
	s.ZipCode = utils.Digits(s.ZipCode)
}

func (s *ContactStep) validate() []string {
	var missing []string
	if s.Phone == "" {
		missing = append(missing, "phone")
	}
	if s.Address == "" {
		missing = append(missing, "address")
	}
	if s.City == "" {
		missing = append(missing, "city")
	}
	return missing
}

type ServiceStep struct {
	CategoryID    uint `json:"category_id"`
	SubCategoryID uint `json:"sub_category_id"`
}

func (s *ServiceStep) sanitize() {}

func (s *ServiceStep) validate() []string {
	var missing []string
	if s.CategoryID == 0 {
		missing = append(missing, "category_id")
	}
	if s.SubCategoryID == 0 {
		missing = append(missing, "sub_category_id")
	}
	return missing
}

type BackgroundStep struct {
	Description     string `json:"description"`
	YearsExperience string `json:"years_experience"`
}

func (s *BackgroundStep) sanitize() { s.YearsExperience = utils.Digits(s.YearsExperience) }

func (s *BackgroundStep) validate() []string {
	var missing []string
	if s.Description == "" {
		missing = append(missing, "description")
	}
	if s.YearsExperience == "" {
		missing = append(missing, "years_experience")
	}
	return missing
}

// CredentialsStep holds education and licenses. Individual applicants
// only; business applicants never reach this step.
type CredentialsStep struct {
	Qualifications []models.Qualification `json:"qualifications"`
	Licenses       []models.License       `json:"licenses"`
}

func (s *CredentialsStep) sanitize() {}

func (s *CredentialsStep) validate() []string {
	var missing []string
	for _, q := range s.Qualifications {
		if q.Degree == "" || q.Institution == "" {
			missing = append(missing, "qualifications")
			break
		}
	}
	for _, l := range s.Licenses {
		if l.Name == "" || l.Authority == "" {
			missing = append(missing, "licenses")
			break
		}
	}
	return missing
}

type AvailabilityStep struct {
	models.Availability
}

func (s *AvailabilityStep) sanitize() {}

func (s *AvailabilityStep) validate() []string {
	var missing []string
	if len(s.Days) == 0 {
		missing = append(missing, "days")
	}
	if s.StartTime == "" || s.EndTime == "" {
		missing = append(missing, "hours")
	}
	return missing
}

type PricingStep struct {
	models.Pricing
	IdentityProof models.IdentityProof `json:"identity_proof"`
}

func (s *PricingStep) sanitize() {}

func (s *PricingStep) validate() []string {
	var missing []string
	if s.Type == "" {
		missing = append(missing, "type")
	}
	if s.BaseRate == "" {
		missing = append(missing, "base_rate")
	}
	if len(s.PaymentMethods) == 0 {
		missing = append(missing, "payment_methods")
	}
	return missing
}

type LegalStep struct {
	models.LegalAcknowledgements
}

func (s *LegalStep) sanitize() {}

func (s *LegalStep) validate() []string {
	var missing []string
	if !s.Terms {
		missing = append(missing, "terms")
	}
	if !s.Privacy {
		missing = append(missing, "privacy")
	}
	if !s.Rules {
		missing = append(missing, "rules")
	}
	return missing
}
