package services

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"servicehub/models"
)

// captureNotifier records sends instead of dialing SMTP.
type captureNotifier struct {
	sent []string
}

func (n *captureNotifier) Send(to, subject, body string) error {
	n.sent = append(n.sent, to+": "+subject)
	return nil
}

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	database, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger:                                   gormlogger.Default.LogMode(gormlogger.Silent),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := database.AutoMigrate(&models.User{}, &models.OTP{}, &models.ProviderRequest{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return database
}

func seedSeeker(t *testing.T, database *gorm.DB, email string) *models.User {
	t.Helper()
	user := &models.User{
		Name:                  "Ana",
		Email:                 email,
		Role:                  models.RoleSeeker,
		ProviderRequestStatus: models.RequestStatusNone,
	}
	if err := database.Create(user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func upgradeRequest() *models.ProviderRequest {
	return &models.ProviderRequest{
		ApplicantType: models.ApplicantIndividual,
		FirstName:     "Ana",
		LastName:      "Ruiz",
	}
}

func reloadRequest(t *testing.T, database *gorm.DB, id uint) *models.ProviderRequest {
	t.Helper()
	var request models.ProviderRequest
	if err := database.First(&request, id).Error; err != nil {
		t.Fatalf("reload request: %v", err)
	}
	return &request
}

func reloadUser(t *testing.T, database *gorm.DB, id uint) *models.User {
	t.Helper()
	var user models.User
	if err := database.First(&user, id).Error; err != nil {
		t.Fatalf("reload user: %v", err)
	}
	return &user
}

func TestSubmit_SecondCallFailsAlreadyPending(t *testing.T) {
	database := testDB(t)
	lifecycle := NewRequestLifecycle(database, &captureNotifier{})
	user := seedSeeker(t, database, "ana@example.com")

	first, err := lifecycle.Submit(user.ID, upgradeRequest())
	if err != nil {
		t.Fatalf("first submit: %v", err)
	}
	if first.Status != models.StatusPending {
		t.Errorf("expected PENDING after submit, got %q", first.Status)
	}
	if got := reloadUser(t, database, user.ID).ProviderRequestStatus; got != models.RequestStatusPending {
		t.Errorf("expected user status pending, got %q", got)
	}

	if _, err := lifecycle.Submit(user.ID, upgradeRequest()); !errors.Is(err, ErrAlreadyPending) {
		t.Fatalf("expected ErrAlreadyPending on second submit, got %v", err)
	}

	var count int64
	database.Model(&models.ProviderRequest{}).Where("user_id = ?", user.ID).Count(&count)
	if count != 1 {
		t.Errorf("expected one stored request, got %d", count)
	}
}

func TestApprove_PromotesOwner(t *testing.T) {
	database := testDB(t)
	notifier := &captureNotifier{}
	lifecycle := NewRequestLifecycle(database, notifier)
	user := seedSeeker(t, database, "ana@example.com")

	request, err := lifecycle.Submit(user.ID, upgradeRequest())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if err := lifecycle.Approve(request.ID); err != nil {
		t.Fatalf("approve: %v", err)
	}

	if got := reloadRequest(t, database, request.ID).Status; got != models.StatusApproved {
		t.Errorf("expected APPROVED, got %q", got)
	}
	owner := reloadUser(t, database, user.ID)
	if owner.Role != models.RoleProvider {
		t.Errorf("expected provider role after approval, got %q", owner.Role)
	}
	if owner.ProviderRequestStatus != models.RequestStatusApproved {
		t.Errorf("expected approved status, got %q", owner.ProviderRequestStatus)
	}
	if len(notifier.sent) != 1 {
		t.Errorf("expected one notification, got %d", len(notifier.sent))
	}
}

func TestApprove_TerminalRequestConflicts(t *testing.T) {
	database := testDB(t)
	lifecycle := NewRequestLifecycle(database, &captureNotifier{})
	user := seedSeeker(t, database, "ana@example.com")

	request, err := lifecycle.Submit(user.ID, upgradeRequest())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if err := lifecycle.Approve(request.ID); err != nil {
		t.Fatalf("approve: %v", err)
	}

	if err := lifecycle.Approve(request.ID); !errors.Is(err, ErrNotPending) {
		t.Fatalf("expected ErrNotPending on second approve, got %v", err)
	}
	if err := lifecycle.Reject(request.ID, "too late"); !errors.Is(err, ErrNotPending) {
		t.Fatalf("expected ErrNotPending on reject after approve, got %v", err)
	}

	// The terminal state survives the refused actions untouched.
	stored := reloadRequest(t, database, request.ID)
	if stored.Status != models.StatusApproved {
		t.Errorf("expected status to stay APPROVED, got %q", stored.Status)
	}
	if stored.RejectionReason != nil {
		t.Errorf("expected no rejection reason, got %q", *stored.RejectionReason)
	}
	if got := reloadUser(t, database, user.ID).Role; got != models.RoleProvider {
		t.Errorf("expected role to stay provider, got %q", got)
	}
}

func TestReject_RoundTrip(t *testing.T) {
	database := testDB(t)
	lifecycle := NewRequestLifecycle(database, &captureNotifier{})
	user := seedSeeker(t, database, "ana@example.com")

	request, err := lifecycle.Submit(user.ID, upgradeRequest())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if err := lifecycle.Reject(request.ID, "license number could not be verified"); err != nil {
		t.Fatalf("reject: %v", err)
	}

	stored := reloadRequest(t, database, request.ID)
	if stored.Status != models.StatusRejected {
		t.Errorf("expected REJECTED, got %q", stored.Status)
	}
	if stored.RejectionReason == nil || *stored.RejectionReason != "license number could not be verified" {
		t.Errorf("rejection reason not stored: %v", stored.RejectionReason)
	}

	owner := reloadUser(t, database, user.ID)
	if owner.ProviderRequestStatus != models.RequestStatusRejected {
		t.Errorf("expected rejected status, got %q", owner.ProviderRequestStatus)
	}
	if owner.Role != models.RoleSeeker {
		t.Errorf("rejection must not change the role, got %q", owner.Role)
	}

	if err := lifecycle.Approve(request.ID); !errors.Is(err, ErrNotPending) {
		t.Fatalf("expected ErrNotPending on approve after reject, got %v", err)
	}

	// A rejected applicant may apply again.
	if _, err := lifecycle.Submit(user.ID, upgradeRequest()); err != nil {
		t.Fatalf("resubmit after rejection: %v", err)
	}
}

func TestReject_DefaultsReason(t *testing.T) {
	database := testDB(t)
	lifecycle := NewRequestLifecycle(database, &captureNotifier{})
	user := seedSeeker(t, database, "ana@example.com")

	request, err := lifecycle.Submit(user.ID, upgradeRequest())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if err := lifecycle.Reject(request.ID, ""); err != nil {
		t.Fatalf("reject: %v", err)
	}

	stored := reloadRequest(t, database, request.ID)
	if stored.RejectionReason == nil || *stored.RejectionReason != "Not specified" {
		t.Errorf("expected default reason, got %v", stored.RejectionReason)
	}
}

func TestApprove_MissingRequest(t *testing.T) {
	database := testDB(t)
	lifecycle := NewRequestLifecycle(database, &captureNotifier{})

	if err := lifecycle.Approve(999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
