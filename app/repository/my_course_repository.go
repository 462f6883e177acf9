package repository

import (
	"time"

	"github.com/akademia-dev/akademia-backend/app/models"
	"gorm.io/gorm"
)

// myCourseRepository implements the MyCourseRepository interface
type myCourseRepository struct {
	db *gorm.DB
}

// NewMyCourseRepository creates a new entitlement repository instance
func NewMyCourseRepository(db *gorm.DB) MyCourseRepository {
	return &myCourseRepository{db: db}
}

// GetByUserID retrieves all entitlements of a user, expired ones included
func (r *myCourseRepository) GetByUserID(userID uint) ([]models.MyCourse, error) {
	var entitlements []models.MyCourse
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&entitlements).Error
	return entitlements, err
}

// GetActiveByUserID retrieves the entitlements whose access window is still open
func (r *myCourseRepository) GetActiveByUserID(userID uint, now time.Time) ([]models.MyCourse, error) {
	var entitlements []models.MyCourse
	err := r.db.Where("user_id = ? AND expiration_date > ?", userID, now).
		Order("created_at DESC").Find(&entitlements).Error
	return entitlements, err
}

// GetByUserAndPlan retrieves a single entitlement by its natural key
func (r *myCourseRepository) GetByUserAndPlan(userID, planID uint) (*models.MyCourse, error) {
	var entitlement models.MyCourse
	err := r.db.Where("user_id = ? AND plan_id = ?", userID, planID).First(&entitlement).Error
	if err != nil {
		return nil, err
	}
	return &entitlement, nil
}

// HasActiveAccess reports whether the user currently has access to the course
func (r *myCourseRepository) HasActiveAccess(userID, courseID uint, now time.Time) (bool, error) {
	var count int64
	err := r.db.Model(&models.MyCourse{}).
		Where("user_id = ? AND course_id = ? AND expiration_date > ?", userID, courseID, now).
		Count(&count).Error
	return count > 0, err
}
