package services

import (
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"servicehub/models"
	"servicehub/redis"
	"servicehub/utils"
)

// TTLs by call-site: signup verification codes live 5 minutes, password
// reset codes 10.
const (
	SignupOTPTTL = 5 * time.Minute
	ResetOTPTTL  = 10 * time.Minute

	otpResendCooldown = time.Minute
)

// OTPService issues and verifies one-time passcodes bound to an email.
type OTPService struct {
	DB       *gorm.DB
	Notifier Notifier
}

func NewOTPService(db *gorm.DB, n Notifier) *OTPService {
	return &OTPService{DB: db, Notifier: n}
}

// Issue generates a fresh 6-digit code for the email, invalidating every
// previously issued code for it, and emails the code best-effort. The
// stored code survives a dispatch failure so verification (or a resend)
// can still succeed.
func (s *OTPService) Issue(email, purpose string, ttl time.Duration) (*models.OTP, error) {
	if err := s.cooldownActive(email); err != nil {
		return nil, err
	}

	otp := &models.OTP{
		Email:     email,
		Code:      utils.GenerateOTP(),
		Purpose:   purpose,
		ExpiresAt: time.Now().Add(ttl),
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("email = ?", email).Delete(&models.OTP{}).Error; err != nil {
			return err
		}
		return tx.Create(otp).Error
	})
	if err != nil {
		return nil, err
	}
	s.armCooldown(email)

	body := OTPEmailBody(otp.Code, int(ttl.Minutes()))
	if err := s.Notifier.Send(email, "Your verification code", body); err != nil {
		logrus.WithField("email", email).Warn("Failed to send OTP email: ", err)
	}

	return otp, nil
}

// Verify checks the supplied code against the most recently issued one for
// the email. It is side-effect-free so callers can use it as a check-only
// step; completing flows must call Consume afterwards.
func (s *OTPService) Verify(email, code string) error {
	var otp models.OTP
	err := s.DB.Where("email = ?", email).Order("created_at DESC").First(&otp).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return ErrInvalidOTP
		}
		return err
	}
	return CheckOTP(&otp, code, time.Now())
}

// Consume deletes every code stored for the email.
func (s *OTPService) Consume(email string) error {
	return s.DB.Where("email = ?", email).Delete(&models.OTP{}).Error
}

// CheckOTP is the pure match/expiry check behind Verify. The supplied code
// is sanitized to digits first, matching the forgiving input policy used
// across the onboarding forms.
func CheckOTP(otp *models.OTP, code string, now time.Time) error {
	if otp.Code != utils.Digits(code) {
		return ErrInvalidOTP
	}
	if otp.Expired(now) {
		return ErrOTPExpired
	}
	return nil
}

// cooldownActive rate-limits sends per email through Redis. The window is
// armed only after a code is actually stored, so a failed issue does not
// lock the email out. With no Redis client wired (tests), sends are not
// throttled.
func (s *OTPService) cooldownActive(email string) error {
	if redis.Client == nil {
		return nil
	}
	n, err := redis.Client.Exists(redis.Ctx, cooldownKey(email)).Result()
	if err != nil {
		logrus.Warn("Redis cooldown check failed: ", err)
		return nil
	}
	if n > 0 {
		return ErrOTPCooldown
	}
	return nil
}

func (s *OTPService) armCooldown(email string) {
	if redis.Client == nil {
		return
	}
	if err := redis.Client.Set(redis.Ctx, cooldownKey(email), 1, otpResendCooldown).Err(); err != nil {
		logrus.Warn("Redis cooldown set failed: ", err)
	}
}

func cooldownKey(email string) string {
	return "otp:cooldown:" + email
}
