package services

import (
	"errors"
	"testing"
	"time"

	"servicehub/models"
)

func liveOTP(code string) *models.OTP {
	return &models.OTP{
		Email:     "a@x.com",
		Code:      code,
		Purpose:   models.OTPPurposeSignup,
		ExpiresAt: time.Now().Add(5 * time.Minute),
	}
}

func TestCheckOTP_CorrectCode(t *testing.T) {
	otp := liveOTP("482913")
	if err := CheckOTP(otp, "482913", time.Now()); err != nil {
		t.Fatalf("correct code should verify, got %v", err)
	}
}

func TestCheckOTP_WrongCode(t *testing.T) {
	otp := liveOTP("482913")
	if err := CheckOTP(otp, "482914", time.Now()); !errors.Is(err, ErrInvalidOTP) {
		t.Fatalf("expected ErrInvalidOTP, got %v", err)
	}
}

func TestCheckOTP_Expired(t *testing.T) {
	otp := liveOTP("482913")
	after := otp.ExpiresAt.Add(time.Second)
	if err := CheckOTP(otp, "482913", after); !errors.Is(err, ErrOTPExpired) {
		t.Fatalf("expected ErrOTPExpired for correct-but-late code, got %v", err)
	}
}

func TestCheckOTP_SanitizesInput(t *testing.T) {
	otp := liveOTP("482913")
	// Clients paste codes with stray separators; digits are extracted
	// before comparison.
	if err := CheckOTP(otp, "482-913", time.Now()); err != nil {
		t.Fatalf("separator-laden input should verify, got %v", err)
	}
}

func TestCheckOTP_ExpiryCheckedAfterMatch(t *testing.T) {
	otp := liveOTP("482913")
	after := otp.ExpiresAt.Add(time.Hour)
	// A wrong code on an expired row reports the mismatch, not expiry.
	if err := CheckOTP(otp, "000000", after); !errors.Is(err, ErrInvalidOTP) {
		t.Fatalf("expected ErrInvalidOTP, got %v", err)
	}
}
