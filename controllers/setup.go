package controllers

import (
	"gorm.io/gorm"

	"servicehub/services"
)

var (
	otpSvc    *services.OTPService
	registrar *services.Registrar
	lifecycle *services.RequestLifecycle
)

// Setup wires the service layer into the handler package. Called once
// from main after the DB connection is established.
func Setup(database *gorm.DB, notifier services.Notifier) {
	otpSvc = services.NewOTPService(database, notifier)
	registrar = services.NewRegistrar(database, otpSvc)
	lifecycle = services.NewRequestLifecycle(database, notifier)
}
