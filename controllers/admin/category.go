package admin

import (
	"github.com/gofiber/fiber/v2"

	"servicehub/controllers"
	"servicehub/db"
	"servicehub/models"
)

// CreateCategory adds a top-level category.
func CreateCategory(c *fiber.Ctx) error {
	category := new(models.Category)
	if err := c.BodyParser(category); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	if category.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Name is required",
		})
	}

	if err := db.DB.Create(category).Error; err != nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Category already exists",
		})
	}
	controllers.InvalidateCategoryCache()

	return c.Status(fiber.StatusCreated).JSON(category)
}

// UpdateCategory renames a category or changes its image.
func UpdateCategory(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid category ID",
		})
	}

	var category models.Category
	if err := db.DB.First(&category, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Category not found",
		})
	}

	updates := make(map[string]interface{})
	if err := c.BodyParser(&updates); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	delete(updates, "id")
	delete(updates, "ID")

	if err := db.DB.Model(&category).Updates(updates).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update category",
		})
	}
	controllers.InvalidateCategoryCache()

	return c.JSON(category)
}

// DeleteCategory removes a category and its subcategories.
func DeleteCategory(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid category ID",
		})
	}

	if err := db.DB.Where("category_id = ?", id).Delete(&models.SubCategory{}).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete subcategories",
		})
	}
	result := db.DB.Delete(&models.Category{}, id)
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete category",
		})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Category not found",
		})
	}
	controllers.InvalidateCategoryCache()

	return c.JSON(fiber.Map{
		"message": "Category deleted successfully",
	})
}

// CreateSubCategory adds a subcategory under an existing category.
func CreateSubCategory(c *fiber.Ctx) error {
	sub := new(models.SubCategory)
	if err := c.BodyParser(sub); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	if sub.Name == "" || sub.CategoryID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Name and category_id are required",
		})
	}

	var parent models.Category
	if err := db.DB.First(&parent, sub.CategoryID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Parent category not found",
		})
	}

	if err := db.DB.Create(sub).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create subcategory",
		})
	}
	controllers.InvalidateCategoryCache()

	return c.Status(fiber.StatusCreated).JSON(sub)
}

// DeleteSubCategory removes one subcategory.
func DeleteSubCategory(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid subcategory ID",
		})
	}

	result := db.DB.Delete(&models.SubCategory{}, id)
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete subcategory",
		})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Subcategory not found",
		})
	}
	controllers.InvalidateCategoryCache()

	return c.JSON(fiber.Map{
		"message": "Subcategory deleted successfully",
	})
}
