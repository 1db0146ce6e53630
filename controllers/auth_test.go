package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func postJSON(t *testing.T, app *fiber.App, path string, payload interface{}) *http.Response {
	t.Helper()
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	return resp
}

func TestSendOTP_RequiresEmail(t *testing.T) {
	app := fiber.New()
	app.Post("/auth/send-otp", SendOTP)

	resp := postJSON(t, app, "/auth/send-otp", map[string]string{})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 for missing email, got %d", resp.StatusCode)
	}
}

func TestVerifyOTP_RequiresEmailAndCode(t *testing.T) {
	app := fiber.New()
	app.Post("/auth/verify-otp", VerifyOTP)

	resp := postJSON(t, app, "/auth/verify-otp", map[string]string{"email": "a@x.com"})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 for missing otp, got %d", resp.StatusCode)
	}
}

func TestSignupSeeker_RequiresAllFields(t *testing.T) {
	app := fiber.New()
	app.Post("/auth/signup-seeker", SignupSeeker)

	resp := postJSON(t, app, "/auth/signup-seeker", map[string]string{
		"email":    "a@x.com",
		"password": "Secret123",
		// name and otp missing
	})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 for incomplete signup, got %d", resp.StatusCode)
	}
}

func TestSignupProvider_RejectsIncompleteApplication(t *testing.T) {
	app := fiber.New()
	app.Post("/auth/signup-provider", SignupProvider)

	// Account fields present, but the staged application is missing every
	// step: the merge must fail before any account is created.
	resp := postJSON(t, app, "/auth/signup-provider", map[string]interface{}{
		"name":     "Ana",
		"email":    "a@x.com",
		"password": "Secret123",
		"otp":      "482913",
		"steps":    map[string]interface{}{},
	})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 for missing steps, got %d", resp.StatusCode)
	}
}

func TestRegisterAdmin_RequiresFields(t *testing.T) {
	app := fiber.New()
	app.Post("/auth/register-admin", RegisterAdmin)

	resp := postJSON(t, app, "/auth/register-admin", map[string]string{
		"email": "root@x.com",
	})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 for incomplete admin registration, got %d", resp.StatusCode)
	}
}

func TestValidateOnboardingStep(t *testing.T) {
	app := fiber.New()
	app.Post("/onboarding/:variant/steps/:step/validate", ValidateOnboardingStep)

	t.Run("valid step", func(t *testing.T) {
		resp := postJSON(t, app, "/onboarding/provider/steps/contact/validate", map[string]string{
			"phone":   "(555) 010-0199",
			"address": "1 Main St",
			"city":    "Springfield",
		})
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Errorf("expected 200 for valid step, got %d", resp.StatusCode)
		}
	})

	t.Run("missing fields", func(t *testing.T) {
		resp := postJSON(t, app, "/onboarding/provider/steps/contact/validate", map[string]string{
			"phone": "5550100",
		})
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("expected 400 for invalid step, got %d", resp.StatusCode)
		}
	})

	t.Run("unknown step", func(t *testing.T) {
		resp := postJSON(t, app, "/onboarding/provider/steps/fees/validate", map[string]string{})
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("expected 404 for unknown step, got %d", resp.StatusCode)
		}
	})

	t.Run("step outside variant", func(t *testing.T) {
		// Pricing belongs to the provider walk only.
		resp := postJSON(t, app, "/onboarding/seeker/steps/pricing/validate", map[string]string{})
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("expected 404 for provider step under seeker variant, got %d", resp.StatusCode)
		}
	})

	t.Run("unknown variant", func(t *testing.T) {
		resp := postJSON(t, app, "/onboarding/vendor/steps/contact/validate", map[string]string{})
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("expected 404 for unknown variant, got %d", resp.StatusCode)
		}
	})
}
