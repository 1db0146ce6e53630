package controllers

import (
	"encoding/json"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"servicehub/db"
	"servicehub/models"
	"servicehub/redis"
)

const (
	categoryCacheKey = "categories:tree"
	categoryCacheTTL = 10 * time.Minute
)

// GetCategories returns every category with its subcategories nested,
// served from the Redis cache when warm.
func GetCategories(c *fiber.Ctx) error {
	if redis.Client != nil {
		if cached, err := redis.Client.Get(redis.Ctx, categoryCacheKey).Result(); err == nil {
			c.Set("Content-Type", "application/json")
			return c.SendString(cached)
		}
	}

	var categories []models.Category
	if err := db.DB.Preload("SubCategories").Order("name ASC").Find(&categories).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch categories",
		})
	}

	body := fiber.Map{"categories": categories}
	if redis.Client != nil {
		if encoded, err := json.Marshal(body); err == nil {
			if err := redis.Client.Set(redis.Ctx, categoryCacheKey, encoded, categoryCacheTTL).Err(); err != nil {
				logrus.Warn("Failed to cache categories: ", err)
			}
		}
	}

	return c.JSON(body)
}

// InvalidateCategoryCache drops the cached tree; admin writes call this.
func InvalidateCategoryCache() {
	if redis.Client == nil {
		return
	}
	if err := redis.Client.Del(redis.Ctx, categoryCacheKey).Err(); err != nil {
		logrus.Warn("Failed to invalidate category cache: ", err)
	}
}
