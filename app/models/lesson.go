package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

type Lesson struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	CourseID    uint           `gorm:"not null;index" json:"course_id" validate:"required"`
	Title       string         `gorm:"type:varchar(200);not null" json:"title" validate:"required,max=200"`
	Description string         `gorm:"type:text" json:"description"`
	VideoURL    string         `gorm:"type:varchar(255);default:null" json:"video_url" validate:"omitempty,max=255"`
	Position    int            `gorm:"not null;default:0" json:"position"`
	IsFree      bool           `gorm:"default:false" json:"is_free"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (l *Lesson) Validate() error {
	return validator.New().Struct(l)
}
