package services

import (
	"errors"
)

// Sentinel errors returned by the service layer. Controllers translate
// these into HTTP status codes; anything else is an internal error.
var (
	ErrAlreadyExists      = errors.New("an account with this email already exists")
	ErrInvalidOTP         = errors.New("invalid verification code")
	ErrOTPExpired         = errors.New("verification code has expired")
	ErrOTPCooldown        = errors.New("a code was sent recently, try again in a minute")
	ErrInvalidSecret      = errors.New("invalid admin secret")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAlreadyPending     = errors.New("a provider request is already pending for this user")
	ErrNotPending         = errors.New("request has already been actioned")
	ErrNotFound           = errors.New("record not found")
)
