package controllers

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"servicehub/utils"
)

var documentTypes = map[string]bool{
	"application/pdf": true,
	"image/jpeg":      true,
	"image/png":       true,
}

var coverTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// UploadDocument accepts a license or qualification document and stores
// it with the media host. The returned public_id is what the onboarding
// credentials step references.
func UploadDocument(c *fiber.Ctx) error {
	return handleUpload(c, documentTypes, "documents")
}

// UploadCover accepts a cover photo for a service listing.
func UploadCover(c *fiber.Ctx) error {
	return handleUpload(c, coverTypes, "covers")
}

func handleUpload(c *fiber.Ctx, allowed map[string]bool, folder string) error {
	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "A file field is required",
			Error:   err.Error(),
		})
	}

	if !allowed[file.Header.Get("Content-Type")] {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Unsupported file type",
		})
	}

	tempDir := "uploads"
	if err := os.MkdirAll(tempDir, os.ModePerm); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to create temp directory",
			Error:   err.Error(),
		})
	}

	tempPath := filepath.Join(tempDir, fmt.Sprintf("%s%s", uuid.NewString(), filepath.Ext(file.Filename)))
	if err := c.SaveFile(file, tempPath); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to save file",
			Error:   err.Error(),
		})
	}
	defer os.Remove(tempPath)

	result, err := utils.UploadToCloudinary(tempPath, uuid.NewString(), folder)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to upload file to storage",
		})
	}

	return c.JSON(result)
}
