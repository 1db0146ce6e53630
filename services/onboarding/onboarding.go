// Package onboarding models the multi-step data-collection flow for
// seeker and provider signups. Each step is a typed payload with its own
// validation predicate; nothing durable happens until the terminal step
// merges the staged slices into the aggregate application. The
// authenticated provider variant stages validated slices out-of-band so
// the walk can be resumed.
package onboarding

import (
	"encoding/json"
	"fmt"
	"strings"

	"servicehub/models"
)

// stepPayload is the tagged-union element: one shape per step, validated
// independently of the others.
type stepPayload interface {
	sanitize()
	validate() []string
}

// ValidationError carries the missing/invalid field names for one step.
type ValidationError struct {
	Step   string
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("step %q: missing or invalid fields: %s", e.Step, strings.Join(e.Fields, ", "))
}

// ErrUnknownStep is returned when the step name is not part of the
// variant's sequence.
type ErrUnknownStep struct {
	Step string
}

func (e *ErrUnknownStep) Error() string {
	return fmt.Sprintf("unknown onboarding step %q", e.Step)
}

var seekerSteps = []string{StepAccount, StepProfile}

var providerSteps = []string{
	StepAccount,
	StepApplicant,
	StepContact,
	StepService,
	StepBackground,
	StepCredentials,
	StepAvailability,
	StepPricing,
	StepLegal,
}

// Steps returns the ordered step names for a variant. The account step is
// dropped for authenticated walks, and business applicants skip the
// credentials step (a conditional edge, not a separate sequence).
func Steps(variant, applicantType string, authenticated bool) []string {
	var base []string
	switch variant {
	case VariantSeeker:
		base = seekerSteps
	case VariantProvider:
		base = providerSteps
	default:
		return nil
	}

	steps := make([]string, 0, len(base))
	for _, s := range base {
		if s == StepAccount && authenticated {
			continue
		}
		if s == StepCredentials && applicantType == models.ApplicantBusiness {
			continue
		}
		steps = append(steps, s)
	}
	return steps
}

// StepInVariant reports whether the step appears anywhere in the
// variant's walk, across applicant types and auth states. Stateless
// validation uses this so a seeker walk cannot validate provider steps.
func StepInVariant(variant, step string) bool {
	var base []string
	switch variant {
	case VariantSeeker:
		base = seekerSteps
	case VariantProvider:
		base = providerSteps
	default:
		return false
	}
	for _, s := range base {
		if s == step {
			return true
		}
	}
	return false
}

func payloadFor(step string) stepPayload {
	switch step {
	case StepAccount:
		return &AccountStep{}
	case StepProfile:
		return &ProfileStep{}
	case StepApplicant:
		return &ApplicantStep{}
	case StepContact:
		return &ContactStep{}
	case StepService:
		return &ServiceStep{}
	case StepBackground:
		return &BackgroundStep{}
	case StepCredentials:
		return &CredentialsStep{}
	case StepAvailability:
		return &AvailabilityStep{}
	case StepPricing:
		return &PricingStep{}
	case StepLegal:
		return &LegalStep{}
	default:
		return nil
	}
}

// ValidateStep decodes and validates one step's payload. Numeric-only
// fields are sanitized to digits before the predicate runs, so "12-34" is
// accepted as "1234" rather than rejected. The decoded payload is
// returned for staging.
func ValidateStep(step string, raw json.RawMessage) (stepPayload, error) {
	p := payloadFor(step)
	if p == nil {
		return nil, &ErrUnknownStep{Step: step}
	}
	if err := json.Unmarshal(raw, p); err != nil {
		return nil, &ValidationError{Step: step, Fields: []string{"body"}}
	}
	p.sanitize()
	if fields := p.validate(); len(fields) > 0 {
		return nil, &ValidationError{Step: step, Fields: fields}
	}
	return p, nil
}

// ApplyStep copies a validated step payload onto the request aggregate.
// Used both by the incremental (resumable) staging path and by the final
// merge.
func ApplyStep(req *models.ProviderRequest, payload stepPayload) {
	switch p := payload.(type) {
	case *ApplicantStep:
		req.ApplicantType = p.ApplicantType
		req.FirstName = p.FirstName
		req.LastName = p.LastName
		req.BusinessName = p.BusinessName
		req.BusinessRegistration = p.BusinessRegistration
	case *ContactStep:
		req.Phone = p.Phone
		req.Address = p.Address
		req.City = p.City
		req.State = p.State
		req.ZipCode = p.ZipCode
	case *ServiceStep:
		req.CategoryID = p.CategoryID
		req.SubCategoryID = p.SubCategoryID
	case *BackgroundStep:
		req.Description = p.Description
		req.YearsExperience = p.YearsExperience
	case *CredentialsStep:
		req.Qualifications = p.Qualifications
		req.Licenses = p.Licenses
	case *AvailabilityStep:
		req.Availability = p.Availability
	case *PricingStep:
		req.Pricing = p.Pricing
		req.IdentityProof = p.IdentityProof
	case *LegalStep:
		req.Legal = p.LegalAcknowledgements
	}
}

// Merge validates every staged slice and builds the aggregate request.
// Only the terminal transition calls this; a single invalid slice keeps
// the walk at that step.
func Merge(applicantType string, staged map[string]json.RawMessage) (*models.ProviderRequest, error) {
	req := &models.ProviderRequest{}
	for _, step := range Steps(VariantProvider, applicantType, true) {
		raw, ok := staged[step]
		if !ok {
			return nil, &ValidationError{Step: step, Fields: []string{"missing step"}}
		}
		payload, err := ValidateStep(step, raw)
		if err != nil {
			return nil, err
		}
		ApplyStep(req, payload)
	}
	return req, nil
}
