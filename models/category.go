package models

import (
	"time"
)

type Category struct {
	ID            uint          `json:"id" gorm:"primaryKey"`
	Name          string        `json:"name" gorm:"unique;not null"`
	ImageURL      string        `json:"image_url"`
	SubCategories []SubCategory `json:"sub_categories,omitempty" gorm:"foreignKey:CategoryID"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

type SubCategory struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	Name       string    `json:"name" gorm:"not null"`
	CategoryID uint      `json:"category_id" gorm:"index;not null"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
