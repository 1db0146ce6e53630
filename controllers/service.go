package controllers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"servicehub/db"
	"servicehub/middleware"
	"servicehub/models"
)

// GetAllServices lists service postings with pagination, optionally
// filtered by subcategory.
func GetAllServices(c *fiber.Ctx) error {
	var services []models.Service

	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "10"))
	offset := (page - 1) * limit

	query := db.DB.Preload("SubCategory").Limit(limit).Offset(offset)
	if sub := c.Query("sub_category_id"); sub != "" {
		query = query.Where("sub_category_id = ?", sub)
	}
	if err := query.Find(&services).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch services",
		})
	}

	var count int64
	db.DB.Model(&models.Service{}).Count(&count)

	return c.JSON(fiber.Map{
		"services": services,
		"total":    count,
		"page":     page,
		"limit":    limit,
	})
}

// GetService returns one service posting.
func GetService(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid service ID",
		})
	}

	var service models.Service
	if err := db.DB.Preload("SubCategory").Preload("Provider").First(&service, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Service not found",
		})
	}
	service.Provider.Password = nil

	return c.JSON(service)
}

// CreateService posts a new listing for the authenticated provider.
func CreateService(c *fiber.Ctx) error {
	auth := middleware.Auth(c)

	service := new(models.Service)
	if err := c.BodyParser(service); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	if service.Name == "" || service.SubCategoryID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing required fields",
		})
	}

	service.ProviderID = auth.UserID
	if err := db.DB.Create(service).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create service",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(service)
}

// UpdateService edits a listing owned by the caller.
func UpdateService(c *fiber.Ctx) error {
	auth := middleware.Auth(c)

	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid service ID",
		})
	}

	var service models.Service
	if err := db.DB.Where("id = ? AND provider_id = ?", id, auth.UserID).First(&service).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Service not found",
		})
	}

	updates := make(map[string]interface{})
	if err := c.BodyParser(&updates); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	for _, field := range []string{"id", "ID", "provider_id", "provider"} {
		delete(updates, field)
	}

	if err := db.DB.Model(&service).Updates(updates).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update service",
		})
	}

	return c.JSON(service)
}

// DeleteService removes a listing owned by the caller.
func DeleteService(c *fiber.Ctx) error {
	auth := middleware.Auth(c)

	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid service ID",
		})
	}

	result := db.DB.Where("id = ? AND provider_id = ?", id, auth.UserID).Delete(&models.Service{})
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete service",
		})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Service not found",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Service deleted successfully",
	})
}
