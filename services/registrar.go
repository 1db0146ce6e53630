package services

import (
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"servicehub/config"
	"servicehub/models"
)

// Registrar creates and authenticates user accounts.
type Registrar struct {
	DB  *gorm.DB
	OTP *OTPService
}

func NewRegistrar(db *gorm.DB, otp *OTPService) *Registrar {
	return &Registrar{DB: db, OTP: otp}
}

// SeekerProfile carries the seeker variant's profile step.
type SeekerProfile struct {
	Phone string
	City  string
}

// RegisterSeeker creates a seeker account after verifying and consuming
// the signup OTP.
func (r *Registrar) RegisterSeeker(email, password, otp, name string, profile SeekerProfile) (*models.User, error) {
	if err := r.ensureEmailFree(email); err != nil {
		return nil, err
	}
	if err := r.OTP.Verify(email, otp); err != nil {
		return nil, err
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:                  name,
		Email:                 email,
		Password:              &hash,
		Phone:                 profile.Phone,
		City:                  profile.City,
		Role:                  models.RoleSeeker,
		ProviderRequestStatus: models.RequestStatusNone,
	}
	if err := r.DB.Create(user).Error; err != nil {
		return nil, err
	}

	r.consumeOTP(email)
	return user, nil
}

// RegisterProvider creates the user and their PENDING provider request in
// one transaction: either both rows exist afterwards, or neither does.
func (r *Registrar) RegisterProvider(email, password, otp, name string, request *models.ProviderRequest) (*models.User, error) {
	if err := r.ensureEmailFree(email); err != nil {
		return nil, err
	}
	if err := r.OTP.Verify(email, otp); err != nil {
		return nil, err
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:                  name,
		Email:                 email,
		Password:              &hash,
		Role:                  models.RoleProvider,
		ProviderRequestStatus: models.RequestStatusPending,
		IsProviderAtFirst:     true,
	}

	err = r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		request.UserID = user.ID
		request.Status = models.StatusPending
		return tx.Create(request).Error
	})
	if err != nil {
		return nil, err
	}

	r.consumeOTP(email)
	return user, nil
}

// RegisterAdmin is the trusted provisioning path: no OTP, gated by the
// out-of-band shared secret.
func (r *Registrar) RegisterAdmin(email, password, name, adminSecret string) (*models.User, error) {
	cfg := config.Load()
	if cfg.AdminSecret == "" || adminSecret != cfg.AdminSecret {
		return nil, ErrInvalidSecret
	}
	if err := r.ensureEmailFree(email); err != nil {
		return nil, err
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:     name,
		Email:    email,
		Password: &hash,
		Role:     models.RoleAdmin,
	}
	if err := r.DB.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate checks the password against the stored hash. Federated-only
// accounts (no local password) cannot log in this way.
func (r *Registrar) Authenticate(email, password string) (*models.User, error) {
	var user models.User
	if err := r.DB.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, ErrInvalidCredentials
	}
	if user.IsFederatedOnly() {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

// LinkOrCreateFederated returns the account for a federated sign-in,
// creating it with role=none on first login. An existing account's role is
// never overwritten.
func (r *Registrar) LinkOrCreateFederated(email, name, avatarURL string) (*models.User, error) {
	var user models.User
	err := r.DB.Where("email = ?", email).First(&user).Error
	if err == nil {
		return &user, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	user = models.User{
		Name:                  name,
		Email:                 email,
		AvatarURL:             avatarURL,
		Role:                  models.RoleNone,
		ProviderRequestStatus: models.RequestStatusNone,
	}
	if err := r.DB.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// ResetPassword verifies and consumes a reset OTP, then replaces the hash.
func (r *Registrar) ResetPassword(email, otp, newPassword string) error {
	var user models.User
	if err := r.DB.Where("email = ?", email).First(&user).Error; err != nil {
		return ErrNotFound
	}
	if err := r.OTP.Verify(email, otp); err != nil {
		return err
	}

	hash, err := hashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := r.DB.Model(&user).Update("password", hash).Error; err != nil {
		return err
	}
	r.consumeOTP(email)
	return nil
}

// consumeOTP burns the verified code after the account change is already
// committed. A failure here must not turn the success into an error; the
// leftover row expires and the nightly sweep reclaims it.
func (r *Registrar) consumeOTP(email string) {
	if err := r.OTP.Consume(email); err != nil {
		logrus.WithField("email", email).Warn("Failed to consume OTP after commit: ", err)
	}
}

func (r *Registrar) ensureEmailFree(email string) error {
	var existing models.User
	if r.DB.Where("email = ?", email).First(&existing).RowsAffected > 0 {
		return ErrAlreadyExists
	}
	return nil
}

func hashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
