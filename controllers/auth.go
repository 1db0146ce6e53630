package controllers

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	"servicehub/config"
	"servicehub/db"
	"servicehub/middleware"
	"servicehub/models"
	"servicehub/services"
	"servicehub/services/onboarding"
	"servicehub/utils"
)

// buildRequest merges staged onboarding slices into the aggregate
// application. The applicant step is peeked first so the conditional
// credentials edge is applied for the right applicant type.
func buildRequest(steps map[string]json.RawMessage) (*models.ProviderRequest, error) {
	var applicant onboarding.ApplicantStep
	if raw, ok := steps[onboarding.StepApplicant]; ok {
		if err := json.Unmarshal(raw, &applicant); err != nil {
			return nil, &onboarding.ValidationError{Step: onboarding.StepApplicant, Fields: []string{"body"}}
		}
	}
	return onboarding.Merge(applicant.ApplicantType, steps)
}

// statusForAuthErr maps service-layer sentinels onto HTTP statuses.
// Unknown errors become a generic 500 so raw store text never reaches
// the client.
func statusForAuthErr(err error) (int, string) {
	switch {
	case errors.Is(err, services.ErrAlreadyExists):
		return fiber.StatusConflict, err.Error()
	case errors.Is(err, services.ErrInvalidOTP),
		errors.Is(err, services.ErrOTPExpired),
		errors.Is(err, services.ErrInvalidSecret):
		return fiber.StatusBadRequest, err.Error()
	case errors.Is(err, services.ErrOTPCooldown):
		return fiber.StatusTooManyRequests, err.Error()
	case errors.Is(err, services.ErrInvalidCredentials):
		return fiber.StatusUnauthorized, err.Error()
	case errors.Is(err, services.ErrNotFound):
		return fiber.StatusNotFound, err.Error()
	default:
		return fiber.StatusInternalServerError, "Something went wrong"
	}
}

// SendOTP issues a signup verification code for the given email.
func SendOTP(c *fiber.Ctx) error {
	var input struct {
		Email string `json:"email"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	if input.Email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Email is required",
		})
	}

	if _, err := otpSvc.Issue(input.Email, models.OTPPurposeSignup, services.SignupOTPTTL); err != nil {
		status, msg := statusForAuthErr(err)
		return c.Status(status).JSON(fiber.Map{"error": msg})
	}

	return c.JSON(fiber.Map{
		"message": "Verification code sent",
	})
}

// VerifyOTP is the check-only step of the onboarding account sub-flow.
// It does not consume the code; the signup endpoint re-verifies.
func VerifyOTP(c *fiber.Ctx) error {
	var input struct {
		Email string `json:"email"`
		OTP   string `json:"otp"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	if input.Email == "" || input.OTP == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Email and OTP are required",
		})
	}

	if err := otpSvc.Verify(input.Email, input.OTP); err != nil {
		status, msg := statusForAuthErr(err)
		return c.Status(status).JSON(fiber.Map{"error": msg})
	}

	return c.JSON(fiber.Map{
		"message": "Email verified",
	})
}

// SignupSeeker creates a seeker account from a verified email.
func SignupSeeker(c *fiber.Ctx) error {
	var input struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
		OTP      string `json:"otp"`
		Phone    string `json:"phone"`
		City     string `json:"city"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	if input.Email == "" || input.Password == "" || input.Name == "" || input.OTP == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing required fields",
		})
	}

	user, err := registrar.RegisterSeeker(input.Email, input.Password, input.OTP, input.Name, services.SeekerProfile{
		Phone: utils.Digits(input.Phone),
		City:  input.City,
	})
	if err != nil {
		status, msg := statusForAuthErr(err)
		return c.Status(status).JSON(fiber.Map{"error": msg})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Account created",
		"userId":  user.ID,
	})
}

// SignupProvider creates the user and their PENDING provider request in
// one transaction. The application arrives as the staged step payloads of
// the onboarding walk, each validated independently before the merge.
func SignupProvider(c *fiber.Ctx) error {
	var input struct {
		Name     string                     `json:"name"`
		Email    string                     `json:"email"`
		Password string                     `json:"password"`
		OTP      string                     `json:"otp"`
		Steps    map[string]json.RawMessage `json:"steps"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	if input.Email == "" || input.Password == "" || input.Name == "" || input.OTP == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing required fields",
		})
	}

	request, err := buildRequest(input.Steps)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	user, err := registrar.RegisterProvider(input.Email, input.Password, input.OTP, input.Name, request)
	if err != nil {
		status, msg := statusForAuthErr(err)
		return c.Status(status).JSON(fiber.Map{"error": msg})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":   "Application submitted",
		"userId":    user.ID,
		"requestId": request.ID,
	})
}

// RegisterAdmin is the trusted provisioning path gated by the shared
// secret.
func RegisterAdmin(c *fiber.Ctx) error {
	var input struct {
		Name        string `json:"name"`
		Email       string `json:"email"`
		Password    string `json:"password"`
		AdminSecret string `json:"admin_secret"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	if input.Email == "" || input.Password == "" || input.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing required fields",
		})
	}

	user, err := registrar.RegisterAdmin(input.Email, input.Password, input.Name, input.AdminSecret)
	if err != nil {
		status, msg := statusForAuthErr(err)
		return c.Status(status).JSON(fiber.Map{"error": msg})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Admin account created",
		"userId":  user.ID,
	})
}

// Login handles user authentication
func Login(c *fiber.Ctx) error {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	user, err := registrar.Authenticate(input.Email, input.Password)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid credentials",
		})
	}

	tokenString, refreshTokenString, err := IssueTokens(user)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to generate token",
		})
	}

	return c.JSON(fiber.Map{
		"token":        tokenString,
		"refreshToken": refreshTokenString,
		"user": fiber.Map{
			"id":                      user.ID,
			"name":                    user.Name,
			"email":                   user.Email,
			"role":                    user.Role,
			"provider_request_status": user.ProviderRequestStatus,
		},
	})
}

// IssueTokens creates the access (24h) and refresh (7d) token pair.
func IssueTokens(user *models.User) (string, string, error) {
	secret := []byte(config.Load().JWTSecret)

	claims := jwt.MapClaims{
		"id":    user.ID,
		"email": user.Email,
		"role":  user.Role,
		"exp":   time.Now().Add(time.Hour * 24).Unix(),
	}
	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", "", err
	}

	refreshClaims := jwt.MapClaims{
		"id":    user.ID,
		"email": user.Email,
		"exp":   time.Now().Add(time.Hour * 24 * 7).Unix(),
	}
	refreshTokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims).SignedString(secret)
	if err != nil {
		return "", "", err
	}
	return tokenString, refreshTokenString, nil
}

// RefreshToken generates a new access token using a refresh token. The
// user's role is re-read from the store so a role change since login is
// reflected in the new token.
func RefreshToken(c *fiber.Ctx) error {
	var input struct {
		RefreshToken string `json:"refreshToken"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	secret := config.Load().JWTSecret
	token, err := jwt.Parse(input.RefreshToken, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid refresh token",
		})
	}

	claims := token.Claims.(jwt.MapClaims)
	idVal, ok := claims["id"].(float64)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid refresh token",
		})
	}

	var user models.User
	if err := db.DB.First(&user, uint(idVal)).Error; err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User not found",
		})
	}

	tokenString, _, err := IssueTokens(&user)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to generate token",
		})
	}

	return c.JSON(fiber.Map{
		"token": tokenString,
	})
}

// Me returns the current user's profile.
func Me(c *fiber.Ctx) error {
	auth := middleware.Auth(c)

	var user models.User
	if err := db.DB.First(&user, auth.UserID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "User not found",
		})
	}
	return c.JSON(user)
}

// Logout doesn't invalidate the token as JWTs are stateless.
func Logout(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "Successfully logged out",
	})
}

// ForgotPassword issues a reset code with the longer reset TTL.
func ForgotPassword(c *fiber.Ctx) error {
	var input struct {
		Email string `json:"email"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	if input.Email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Email is required",
		})
	}

	// Always report success so the endpoint doesn't reveal which emails
	// have accounts.
	var user models.User
	if db.DB.Where("email = ?", input.Email).First(&user).RowsAffected > 0 {
		if _, err := otpSvc.Issue(input.Email, models.OTPPurposeReset, services.ResetOTPTTL); err != nil {
			status, msg := statusForAuthErr(err)
			return c.Status(status).JSON(fiber.Map{"error": msg})
		}
	}

	return c.JSON(fiber.Map{
		"message": "If an account exists for this email, a reset code has been sent",
	})
}

// ResetPassword verifies the reset code and replaces the password hash.
func ResetPassword(c *fiber.Ctx) error {
	var input struct {
		Email    string `json:"email"`
		OTP      string `json:"otp"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	if input.Email == "" || input.OTP == "" || input.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing required fields",
		})
	}

	if err := registrar.ResetPassword(input.Email, input.OTP, input.Password); err != nil {
		status, msg := statusForAuthErr(err)
		return c.Status(status).JSON(fiber.Map{"error": msg})
	}

	return c.JSON(fiber.Map{
		"message": "Password updated",
	})
}
