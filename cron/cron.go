package cron

import (
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"servicehub/db"
	"servicehub/models"
)

// StartCronJobs initializes the background scheduler. Expiry stays
// checked at verify time; the sweep only clears rows that have been dead
// long enough that no verification can want them.
func StartCronJobs() {
	c := cron.New()
	// Run daily at 03:00
	_, err := c.AddFunc("0 3 * * *", sweepExpiredOTPs)
	if err != nil {
		logrus.Fatalf("Failed to add cron job: %v", err)
	}
	c.Start()
	logrus.Info("Cron scheduler started for OTP cleanup")
}

func sweepExpiredOTPs() {
	cutoff := time.Now().Add(-24 * time.Hour)
	result := db.DB.Where("expires_at < ?", cutoff).Delete(&models.OTP{})
	if result.Error != nil {
		logrus.Warn("OTP sweep failed: ", result.Error)
		return
	}
	if result.RowsAffected > 0 {
		logrus.Infof("OTP sweep removed %d expired codes", result.RowsAffected)
	}
}
