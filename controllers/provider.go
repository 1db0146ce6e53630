package controllers

import (
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v2"

	"servicehub/db"
	"servicehub/middleware"
	"servicehub/models"
	"servicehub/services"
)

// UpgradeRequest files a provider application for an already-authenticated
// user in one shot: the client sends all staged step payloads together.
func UpgradeRequest(c *fiber.Ctx) error {
	auth := middleware.Auth(c)

	var input struct {
		Steps map[string]json.RawMessage `json:"steps"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	request, err := buildRequest(input.Steps)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if _, err := lifecycle.Submit(auth.UserID, request); err != nil {
		if errors.Is(err, services.ErrAlreadyPending) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to submit application",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":   "Application submitted",
		"requestId": request.ID,
	})
}

// MyRequests returns the caller's application history, newest first.
// Terminal requests stay visible so a rejected user can see why before
// reapplying.
func MyRequests(c *fiber.Ctx) error {
	auth := middleware.Auth(c)

	var requests []models.ProviderRequest
	if err := db.DB.Where("user_id = ?", auth.UserID).
		Order("created_at DESC").Find(&requests).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch requests",
		})
	}

	return c.JSON(fiber.Map{
		"requests": requests,
		"status":   auth.ProviderRequestStatus,
	})
}
