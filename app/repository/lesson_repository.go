package repository

import (
	"github.com/akademia-dev/akademia-backend/app/models"
	"gorm.io/gorm"
)

// lessonRepository implements the LessonRepository interface
type lessonRepository struct {
	db *gorm.DB
}

// NewLessonRepository creates a new lesson repository instance
func NewLessonRepository(db *gorm.DB) LessonRepository {
	return &lessonRepository{db: db}
}

// Create creates a new lesson in the database
func (r *lessonRepository) Create(lesson *models.Lesson) error {
	return r.db.Create(lesson).Error
}

// GetByID retrieves a lesson by its ID
func (r *lessonRepository) GetByID(id uint) (*models.Lesson, error) {
	var lesson models.Lesson
	if err := r.db.First(&lesson, id).Error; err != nil {
		return nil, err
	}
	return &lesson, nil
}

// GetByCourseID retrieves all lessons of a course ordered by position
func (r *lessonRepository) GetByCourseID(courseID uint) ([]models.Lesson, error) {
	var lessons []models.Lesson
	err := r.db.Where("course_id = ?", courseID).Order("position ASC").Find(&lessons).Error
	return lessons, err
}

// Update updates an existing lesson in the database
func (r *lessonRepository) Update(lesson *models.Lesson) error {
	return r.db.Save(lesson).Error
}

// Delete soft deletes a lesson by its ID
func (r *lessonRepository) Delete(id uint) error {
	return r.db.Delete(&models.Lesson{}, id).Error
}
