package services

import (
	"strings"
	"testing"
)

func TestOTPEmailBody(t *testing.T) {
	body := OTPEmailBody("482913", 5)
	if !strings.Contains(body, "482913") {
		t.Error("body should carry the code")
	}
	if !strings.Contains(body, "5 minutes") {
		t.Error("body should state the TTL")
	}
}

func TestRejectionEmailBody_CarriesReason(t *testing.T) {
	body := RejectionEmailBody("Ana", "incomplete license")
	if !strings.Contains(body, "Ana") {
		t.Error("body should address the applicant")
	}
	if !strings.Contains(body, "incomplete license") {
		t.Error("body should carry the rejection reason")
	}
}

func TestApprovalEmailBody(t *testing.T) {
	body := ApprovalEmailBody("Ana")
	if !strings.Contains(body, "Ana") {
		t.Error("body should address the applicant")
	}
	if !strings.Contains(body, "approved") {
		t.Error("body should state the approval")
	}
}
