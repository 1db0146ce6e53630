package admin

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"servicehub/db"
	"servicehub/models"
	"servicehub/services"
)

var lifecycle *services.RequestLifecycle

// Setup wires the lifecycle service into the admin handlers.
func Setup(l *services.RequestLifecycle) {
	lifecycle = l
}

type requestSummary struct {
	ID            uint   `json:"id"`
	Status        string `json:"status"`
	ApplicantType string `json:"applicant_type"`
	CreatedAt     string `json:"created_at"`
	User          struct {
		ID    uint   `json:"id"`
		Email string `json:"email"`
		Name  string `json:"name"`
	} `json:"user"`
}

// ListRequests returns every provider request, newest first, with a
// minimal owner projection. The password hash never leaves the store.
func ListRequests(c *fiber.Ctx) error {
	var requests []models.ProviderRequest
	if err := db.DB.Preload("User").Order("created_at DESC").Find(&requests).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch requests",
		})
	}

	summaries := make([]requestSummary, 0, len(requests))
	for _, r := range requests {
		var s requestSummary
		s.ID = r.ID
		s.Status = r.Status
		s.ApplicantType = r.ApplicantType
		s.CreatedAt = r.CreatedAt.Format("2006-01-02 15:04:05")
		s.User.ID = r.User.ID
		s.User.Email = r.User.Email
		s.User.Name = r.User.Name
		summaries = append(summaries, s)
	}

	return c.JSON(fiber.Map{
		"requests": summaries,
	})
}

// GetRequest returns the full application detail.
func GetRequest(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request ID",
		})
	}

	var request models.ProviderRequest
	if err := db.DB.Preload("User").Preload("SubCategory").First(&request, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Request not found",
		})
	}
	request.User.Password = nil

	return c.JSON(request)
}

// ActionRequest approves or rejects a PENDING request.
func ActionRequest(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request ID",
		})
	}

	var input struct {
		Action string `json:"action"`
		Reason string `json:"reason"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	switch input.Action {
	case "approve":
		err = lifecycle.Approve(uint(id))
	case "reject":
		err = lifecycle.Reject(uint(id), input.Reason)
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Action must be approve or reject",
		})
	}

	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Request not found",
			})
		case errors.Is(err, services.ErrNotPending):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": err.Error(),
			})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to action request",
			})
		}
	}

	return c.JSON(fiber.Map{
		"success": true,
	})
}
