package services

import (
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"servicehub/models"
)

// RequestLifecycle owns provider-request state transitions. Only PENDING
// requests can be actioned; APPROVED and REJECTED are terminal.
type RequestLifecycle struct {
	DB       *gorm.DB
	Notifier Notifier
}

func NewRequestLifecycle(db *gorm.DB, n Notifier) *RequestLifecycle {
	return &RequestLifecycle{DB: db, Notifier: n}
}

// Submit files a new request for an existing user (the authenticated
// "upgrade" path). Fails while a PENDING request exists; the partial
// unique index backs up this pre-check under concurrency.
func (l *RequestLifecycle) Submit(userID uint, request *models.ProviderRequest) (*models.ProviderRequest, error) {
	var pending models.ProviderRequest
	err := l.DB.Where("user_id = ? AND status = ?", userID, models.StatusPending).
		First(&pending).Error
	if err == nil {
		return nil, ErrAlreadyPending
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	request.UserID = userID
	request.Status = models.StatusPending

	err = l.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(request).Error; err != nil {
			return err
		}
		return tx.Model(&models.User{}).Where("id = ?", userID).
			Update("provider_request_status", models.RequestStatusPending).Error
	})
	if err != nil {
		return nil, err
	}
	return request, nil
}

// Approve moves a PENDING request to APPROVED and promotes the owner to
// the provider role in the same transaction. The notification email is
// attempted afterwards and never unwinds the approval.
func (l *RequestLifecycle) Approve(id uint) error {
	request, err := l.pendingByID(id)
	if err != nil {
		return err
	}

	err = l.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(request).Update("status", models.StatusApproved).Error; err != nil {
			return err
		}
		return tx.Model(&models.User{}).Where("id = ?", request.UserID).Updates(map[string]interface{}{
			"role":                    models.RoleProvider,
			"provider_request_status": models.RequestStatusApproved,
		}).Error
	})
	if err != nil {
		return err
	}

	l.notifyOwner(request.UserID, "Your provider application was approved", approvalBody)
	return nil
}

// Reject moves a PENDING request to REJECTED, storing the reason. The
// owner keeps their current role so seeker access survives rejection.
func (l *RequestLifecycle) Reject(id uint, reason string) error {
	request, err := l.pendingByID(id)
	if err != nil {
		return err
	}
	if reason == "" {
		reason = "Not specified"
	}

	err = l.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(request).Updates(map[string]interface{}{
			"status":           models.StatusRejected,
			"rejection_reason": reason,
		}).Error; err != nil {
			return err
		}
		return tx.Model(&models.User{}).Where("id = ?", request.UserID).
			Update("provider_request_status", models.RequestStatusRejected).Error
	})
	if err != nil {
		return err
	}

	l.notifyOwner(request.UserID, "Your provider application was not approved", func(name string) string {
		return RejectionEmailBody(name, reason)
	})
	return nil
}

func (l *RequestLifecycle) pendingByID(id uint) (*models.ProviderRequest, error) {
	var request models.ProviderRequest
	if err := l.DB.First(&request, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if request.Terminal() {
		return nil, ErrNotPending
	}
	return &request, nil
}

func approvalBody(name string) string {
	return ApprovalEmailBody(name)
}

func (l *RequestLifecycle) notifyOwner(userID uint, subject string, body func(name string) string) {
	var owner models.User
	if err := l.DB.First(&owner, userID).Error; err != nil {
		logrus.Warn("Could not load request owner for notification: ", err)
		return
	}
	if err := l.Notifier.Send(owner.Email, subject, body(owner.Name)); err != nil {
		logrus.WithField("email", owner.Email).Warn("Failed to send notification email: ", err)
	}
}
