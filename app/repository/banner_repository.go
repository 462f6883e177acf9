package repository

import (
	"github.com/akademia-dev/akademia-backend/app/models"
	"gorm.io/gorm"
)

// bannerRepository implements the BannerRepository interface
type bannerRepository struct {
	db *gorm.DB
}

// NewBannerRepository creates a new banner repository instance
func NewBannerRepository(db *gorm.DB) BannerRepository {
	return &bannerRepository{db: db}
}

// Create creates a new banner in the database
func (r *bannerRepository) Create(banner *models.Banner) error {
	return r.db.Create(banner).Error
}

// GetByID retrieves a banner by its ID
func (r *bannerRepository) GetByID(id uint) (*models.Banner, error) {
	var banner models.Banner
	if err := r.db.First(&banner, id).Error; err != nil {
		return nil, err
	}
	return &banner, nil
}

// GetActive retrieves active banners ordered by position
func (r *bannerRepository) GetActive() ([]models.Banner, error) {
	var banners []models.Banner
	err := r.db.Where("is_active = ?", true).Order("position ASC").Find(&banners).Error
	return banners, err
}

// GetAll retrieves all banners ordered by position
func (r *bannerRepository) GetAll() ([]models.Banner, error) {
	var banners []models.Banner
	err := r.db.Order("position ASC").Find(&banners).Error
	return banners, err
}

// Update updates an existing banner in the database
func (r *bannerRepository) Update(banner *models.Banner) error {
	return r.db.Save(banner).Error
}

// Delete removes a banner by its ID
func (r *bannerRepository) Delete(id uint) error {
	return r.db.Delete(&models.Banner{}, id).Error
}
