package utils

import (
	"context"
	"path/filepath"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"servicehub/config"
)

// UploadResult is what callers get back from the media host.
type UploadResult struct {
	PublicID  string `json:"public_id"`
	SecureURL string `json:"secure_url"`
}

// InitCloudinary initializes the Cloudinary client
func InitCloudinary() (*cloudinary.Cloudinary, error) {
	cfg := config.Load()
	return cloudinary.NewFromParams(
		cfg.CloudinaryCloudName,
		cfg.CloudinaryAPIKey,
		cfg.CloudinaryAPISecret,
	)
}

// UploadToCloudinary uploads a file and returns its public ID and secure
// URL. Images get a thumbnail transformation; PDFs are stored as-is.
func UploadToCloudinary(file interface{}, publicID string, folder string) (*UploadResult, error) {
	cld, err := InitCloudinary()
	if err != nil {
		return nil, err
	}

	ctx := context.Background()
	uploadParams := uploader.UploadParams{
		PublicID: publicID,
		Folder:   folder,
	}

	if fileStr, ok := file.(string); ok {
		ext := filepath.Ext(fileStr)
		if ext != ".pdf" && ext != ".PDF" {
			uploadParams.Transformation = "c_limit,w_1200"
		}
	}

	resp, err := cld.Upload.Upload(ctx, file, uploadParams)
	if err != nil {
		return nil, err
	}
	return &UploadResult{PublicID: resp.PublicID, SecureURL: resp.SecureURL}, nil
}
