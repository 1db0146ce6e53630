package onboarding

import (
	"encoding/json"
	"errors"
	"testing"

	"servicehub/models"
)

func TestSteps_ProviderSequence(t *testing.T) {
	steps := Steps(VariantProvider, models.ApplicantIndividual, false)
	if len(steps) != 9 {
		t.Fatalf("expected 9 steps for unauthenticated individual, got %d: %v", len(steps), steps)
	}
	if steps[0] != StepAccount {
		t.Errorf("expected first step %q, got %q", StepAccount, steps[0])
	}
	if steps[len(steps)-1] != StepLegal {
		t.Errorf("expected terminal step %q, got %q", StepLegal, steps[len(steps)-1])
	}
}

func TestSteps_AuthenticatedSkipsAccount(t *testing.T) {
	for _, step := range Steps(VariantProvider, models.ApplicantIndividual, true) {
		if step == StepAccount {
			t.Fatal("authenticated walk must not contain the account step")
		}
	}
}

func TestSteps_BusinessSkipsCredentials(t *testing.T) {
	for _, step := range Steps(VariantProvider, models.ApplicantBusiness, true) {
		if step == StepCredentials {
			t.Fatal("business applicants must not see the credentials step")
		}
	}
	// The edge is conditional: individuals still pass through it.
	found := false
	for _, step := range Steps(VariantProvider, models.ApplicantIndividual, true) {
		if step == StepCredentials {
			found = true
		}
	}
	if !found {
		t.Fatal("individual applicants must see the credentials step")
	}
}

func TestSteps_UnknownVariant(t *testing.T) {
	if steps := Steps("wizard", "", false); steps != nil {
		t.Fatalf("expected nil for unknown variant, got %v", steps)
	}
}

func TestValidateStep_MissingFields(t *testing.T) {
	_, err := ValidateStep(StepContact, json.RawMessage(`{"phone":"555 0100"}`))
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	want := map[string]bool{"address": true, "city": true}
	for _, f := range verr.Fields {
		if !want[f] {
			t.Errorf("unexpected missing field %q", f)
		}
		delete(want, f)
	}
	if len(want) > 0 {
		t.Errorf("fields not reported missing: %v", want)
	}
}

func TestValidateStep_SanitizesNumericFields(t *testing.T) {
	payload := json.RawMessage(`{"phone":"(555) 010-0199","address":"1 Main St","city":"Springfield","zip_code":"62 704"}`)
	p, err := ValidateStep(StepContact, payload)
	if err != nil {
		t.Fatalf("expected sanitized payload to validate, got %v", err)
	}
	contact, ok := p.(*ContactStep)
	if !ok {
		t.Fatalf("expected *ContactStep, got %T", p)
	}
	if contact.Phone != "5550100199" {
		t.Errorf("expected phone digits only, got %q", contact.Phone)
	}
	if contact.ZipCode != "62704" {
		t.Errorf("expected zip digits only, got %q", contact.ZipCode)
	}
}

func TestValidateStep_ApplicantTypeBranches(t *testing.T) {
	t.Run("individual needs name pair", func(t *testing.T) {
		_, err := ValidateStep(StepApplicant, json.RawMessage(`{"applicant_type":"individual","first_name":"Ana"}`))
		if err == nil {
			t.Fatal("expected missing last_name to fail")
		}
	})
	t.Run("business needs registration", func(t *testing.T) {
		_, err := ValidateStep(StepApplicant, json.RawMessage(`{"applicant_type":"business","business_name":"Acme"}`))
		if err == nil {
			t.Fatal("expected missing business_registration to fail")
		}
	})
	t.Run("unknown type rejected", func(t *testing.T) {
		_, err := ValidateStep(StepApplicant, json.RawMessage(`{"applicant_type":"charity"}`))
		if err == nil {
			t.Fatal("expected unknown applicant_type to fail")
		}
	})
}

func TestValidateStep_LegalRequiresAllAcknowledgements(t *testing.T) {
	_, err := ValidateStep(StepLegal, json.RawMessage(`{"terms":true,"privacy":true,"rules":false}`))
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(verr.Fields) != 1 || verr.Fields[0] != "rules" {
		t.Errorf("expected only rules to be missing, got %v", verr.Fields)
	}
}

func TestValidateStep_UnknownStep(t *testing.T) {
	_, err := ValidateStep("fees", json.RawMessage(`{}`))
	var unknown *ErrUnknownStep
	if !errors.As(err, &unknown) {
		t.Fatalf("expected ErrUnknownStep, got %v", err)
	}
}

func individualStaged() map[string]json.RawMessage {
	return map[string]json.RawMessage{
		StepApplicant:    json.RawMessage(`{"applicant_type":"individual","first_name":"Ana","last_name":"Silva"}`),
		StepContact:      json.RawMessage(`{"phone":"5550100","address":"1 Main St","city":"Springfield"}`),
		StepService:      json.RawMessage(`{"category_id":2,"sub_category_id":7}`),
		StepBackground:   json.RawMessage(`{"description":"Residential plumbing","years_experience":"8"}`),
		StepCredentials:  json.RawMessage(`{"qualifications":[{"degree":"Diploma","institution":"Trade School","year":"2014"}],"licenses":[{"name":"Plumber","authority":"State Board","number":"PL-42","expiry":"2027-01-01","document_ref":"doc_ab12"}]}`),
		StepAvailability: json.RawMessage(`{"days":["mon","tue"],"start_time":"09:00","end_time":"17:00","emergency":true}`),
		StepPricing:      json.RawMessage(`{"type":"hourly","base_rate":"45","payment_methods":["card"],"identity_proof":{"type":"passport","number":"X123","background_check_consent":true}}`),
		StepLegal:        json.RawMessage(`{"terms":true,"privacy":true,"rules":true}`),
	}
}

func TestMerge_BuildsAggregate(t *testing.T) {
	req, err := Merge(models.ApplicantIndividual, individualStaged())
	if err != nil {
		t.Fatalf("merge failed: %v", err)
	}
	if req.FirstName != "Ana" || req.LastName != "Silva" {
		t.Errorf("applicant slice not applied: %+v", req)
	}
	if req.SubCategoryID != 7 {
		t.Errorf("service slice not applied, sub_category_id=%d", req.SubCategoryID)
	}
	if len(req.Licenses) != 1 || req.Licenses[0].DocumentRef != "doc_ab12" {
		t.Errorf("credentials slice not applied: %+v", req.Licenses)
	}
	if !req.Availability.Emergency {
		t.Error("availability slice not applied")
	}
	if !req.Legal.Terms || !req.Legal.Privacy || !req.Legal.Rules {
		t.Errorf("legal slice not applied: %+v", req.Legal)
	}
	if !req.IdentityProof.BackgroundCheckConsent {
		t.Error("identity proof not applied")
	}
}

func TestMerge_MissingStepFails(t *testing.T) {
	staged := individualStaged()
	delete(staged, StepAvailability)
	_, err := Merge(models.ApplicantIndividual, staged)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError for missing step, got %v", err)
	}
	if verr.Step != StepAvailability {
		t.Errorf("expected missing step %q, got %q", StepAvailability, verr.Step)
	}
}

func TestMerge_BusinessDoesNotNeedCredentials(t *testing.T) {
	staged := individualStaged()
	delete(staged, StepCredentials)
	staged[StepApplicant] = json.RawMessage(`{"applicant_type":"business","business_name":"Acme Plumbing","business_registration":"BR-99"}`)

	req, err := Merge(models.ApplicantBusiness, staged)
	if err != nil {
		t.Fatalf("business merge should not require credentials: %v", err)
	}
	if req.BusinessName != "Acme Plumbing" {
		t.Errorf("business fields not applied: %+v", req)
	}
	if len(req.Qualifications) != 0 {
		t.Errorf("expected no qualifications, got %v", req.Qualifications)
	}
}

func TestMerge_InvalidSliceKeepsWalkAtStep(t *testing.T) {
	staged := individualStaged()
	staged[StepPricing] = json.RawMessage(`{"type":"hourly","base_rate":"","payment_methods":[]}`)
	_, err := Merge(models.ApplicantIndividual, staged)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Step != StepPricing {
		t.Errorf("expected failure at %q, got %q", StepPricing, verr.Step)
	}
}

func TestStepInVariant(t *testing.T) {
	cases := []struct {
		variant, step string
		want          bool
	}{
		{VariantSeeker, StepProfile, true},
		{VariantSeeker, StepPricing, false},
		{VariantProvider, StepPricing, true},
		{VariantProvider, StepProfile, false},
		{VariantProvider, StepCredentials, true},
		{"vendor", StepContact, false},
	}
	for _, c := range cases {
		if got := StepInVariant(c.variant, c.step); got != c.want {
			t.Errorf("StepInVariant(%q, %q) = %v, want %v", c.variant, c.step, got, c.want)
		}
	}
}
