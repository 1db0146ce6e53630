package db

import (
	"github.com/sirupsen/logrus"

	"servicehub/models"
)

func Migrate() {
	// Initialize DB connection
	Init()

	// Run AutoMigrate only when explicitly called
	err := DB.AutoMigrate(
		&models.User{},
		&models.OTP{},
		&models.Category{},
		&models.SubCategory{},
		&models.ProviderRequest{},
		&models.Service{},
		&models.PrivacyPolicy{},
	)
	if err != nil {
		logrus.Fatal("Failed to run migrations: ", err)
	}

	logrus.Info("✅ Migrations applied successfully!")
}
