package repository

import (
	"time"

	"github.com/akademia-dev/akademia-backend/app/models"
	"gorm.io/gorm"
)

// UserRepository defines the interface for user-related database operations
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByPhone(phone string) (*models.User, error)
	Update(user *models.User) error
	Delete(id uint) error
	List(offset, limit int) ([]models.User, error)
	Count() (int64, error)
}

// CourseRepository defines the interface for course-related database operations
type CourseRepository interface {
	Create(course *models.Course) error
	GetByID(id uint) (*models.Course, error)
	GetByUUID(uuid string) (*models.Course, error)
	GetPublished(offset, limit int) ([]models.Course, error)
	GetAll(offset, limit int) ([]models.Course, error)
	Update(course *models.Course) error
	Delete(id uint) error
	Count() (int64, error)
}

// LessonRepository defines the interface for lesson-related database operations
type LessonRepository interface {
	Create(lesson *models.Lesson) error
	GetByID(id uint) (*models.Lesson, error)
	GetByCourseID(courseID uint) ([]models.Lesson, error)
	Update(lesson *models.Lesson) error
	Delete(id uint) error
}

// ArticleRepository defines the interface for article-related database operations
type ArticleRepository interface {
	Create(article *models.Article) error
	GetByID(id uint) (*models.Article, error)
	GetPublished(offset, limit int) ([]models.Article, error)
	GetAll(offset, limit int) ([]models.Article, error)
	Update(article *models.Article) error
	Delete(id uint) error
	Count() (int64, error)
}

// BannerRepository defines the interface for banner-related database operations
type BannerRepository interface {
	Create(banner *models.Banner) error
	GetByID(id uint) (*models.Banner, error)
	GetActive() ([]models.Banner, error)
	GetAll() ([]models.Banner, error)
	Update(banner *models.Banner) error
	Delete(id uint) error
}

// PlanRepository defines the interface for plan-related database operations
type PlanRepository interface {
	Create(plan *models.Plan) error
	GetByID(id uint) (*models.Plan, error)
	GetByCourseID(courseID uint) ([]models.Plan, error)
	Update(plan *models.Plan) error
	Delete(id uint) error
}

// MyCourseRepository defines the interface for entitlement queries
type MyCourseRepository interface {
	GetByUserID(userID uint) ([]models.MyCourse, error)
	GetActiveByUserID(userID uint, now time.Time) ([]models.MyCourse, error)
	GetByUserAndPlan(userID, planID uint) (*models.MyCourse, error)
	HasActiveAccess(userID, courseID uint, now time.Time) (bool, error)
}

// Repositories struct holds all repository instances
type Repositories struct {
	User     UserRepository
	Course   CourseRepository
	Lesson   LessonRepository
	Article  ArticleRepository
	Banner   BannerRepository
	Plan     PlanRepository
	MyCourse MyCourseRepository
}

// NewRepositories creates a new instance of all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:     NewUserRepository(db),
		Course:   NewCourseRepository(db),
		Lesson:   NewLessonRepository(db),
		Article:  NewArticleRepository(db),
		Banner:   NewBannerRepository(db),
		Plan:     NewPlanRepository(db),
		MyCourse: NewMyCourseRepository(db),
	}
}
