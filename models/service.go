package models

import (
	"gorm.io/gorm"
)

// Service is a listing posted by an approved provider.
type Service struct {
	gorm.Model
	Name          string      `json:"name"`
	Description   string      `json:"description"`
	Rate          float64     `json:"rate"`
	CoverURL      string      `json:"cover_url"`
	ProviderID    uint        `json:"provider_id" gorm:"index"`
	Provider      User        `json:"provider,omitempty" gorm:"foreignKey:ProviderID"`
	SubCategoryID uint        `json:"sub_category_id" gorm:"index"`
	SubCategory   SubCategory `json:"sub_category,omitempty" gorm:"foreignKey:SubCategoryID"`
}
