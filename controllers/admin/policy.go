package admin

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"servicehub/db"
	"servicehub/models"
)

// GetPrivacyPolicy returns the singleton policy document, empty if it was
// never written.
func GetPrivacyPolicy(c *fiber.Ctx) error {
	var policy models.PrivacyPolicy
	err := db.DB.First(&policy, models.PrivacyPolicyID).Error
	if err != nil && err != gorm.ErrRecordNotFound {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch privacy policy",
		})
	}
	policy.ID = models.PrivacyPolicyID

	return c.JSON(policy)
}

// UpsertPrivacyPolicy creates or replaces the singleton policy document.
func UpsertPrivacyPolicy(c *fiber.Ctx) error {
	var input struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	if input.Content == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Content is required",
		})
	}

	policy := models.PrivacyPolicy{
		ID:      models.PrivacyPolicyID,
		Content: input.Content,
	}
	err := db.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"content", "updated_at"}),
	}).Create(&policy).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save privacy policy",
		})
	}

	return c.JSON(policy)
}
