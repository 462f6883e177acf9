package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

type Banner struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"type:varchar(200);not null" json:"title" validate:"required,max=200"`
	ImageURL  string    `gorm:"type:varchar(255);not null" json:"image_url" validate:"required,max=255"`
	LinkURL   string    `gorm:"type:varchar(255);default:null" json:"link_url" validate:"omitempty,max=255"`
	Position  int       `gorm:"not null;default:0" json:"position"`
	IsActive  bool      `gorm:"default:true;index" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (b *Banner) Validate() error {
	return validator.New().Struct(b)
}
