package repository

import (
	"github.com/akademia-dev/akademia-backend/app/models"
	"gorm.io/gorm"
)

// articleRepository implements the ArticleRepository interface
type articleRepository struct {
	db *gorm.DB
}

// NewArticleRepository creates a new article repository instance
func NewArticleRepository(db *gorm.DB) ArticleRepository {
	return &articleRepository{db: db}
}

// Create creates a new article in the database
func (r *articleRepository) Create(article *models.Article) error {
	return r.db.Create(article).Error
}

// GetByID retrieves an article by its ID
func (r *articleRepository) GetByID(id uint) (*models.Article, error) {
	var article models.Article
	if err := r.db.First(&article, id).Error; err != nil {
		return nil, err
	}
	return &article, nil
}

// GetPublished retrieves published articles with pagination
func (r *articleRepository) GetPublished(offset, limit int) ([]models.Article, error) {
	var articles []models.Article
	err := r.db.Where("is_published = ?", true).
		Order("created_at DESC").Offset(offset).Limit(limit).Find(&articles).Error
	return articles, err
}

// GetAll retrieves all articles with pagination
func (r *articleRepository) GetAll(offset, limit int) ([]models.Article, error) {
	var articles []models.Article
	err := r.db.Order("created_at DESC").Offset(offset).Limit(limit).Find(&articles).Error
	return articles, err
}

// Update updates an existing article in the database
func (r *articleRepository) Update(article *models.Article) error {
	return r.db.Save(article).Error
}

// Delete soft deletes an article by its ID
func (r *articleRepository) Delete(id uint) error {
	return r.db.Delete(&models.Article{}, id).Error
}

// Count returns the total number of articles
func (r *articleRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Article{}).Count(&count).Error
	return count, err
}
