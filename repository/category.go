package repository

import (
	"reportdesk/models"

	"gorm.io/gorm"
)

// CategoryRepository persists and queries categories.
type CategoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository returns a repository bound to db.
func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// Save inserts or updates the category.
func (r *CategoryRepository) Save(category *models.Category) error {
	return r.db.Save(category).Error
}

// Delete removes the category unconditionally.
func (r *CategoryRepository) Delete(category *models.Category) error {
	return r.db.Delete(category).Error
}

// DeleteIfUnused removes the category in a single conditional statement
// that leaves the row untouched when any report still references it.
// Returns true when the row was deleted.
func (r *CategoryRepository) DeleteIfUnused(category *models.Category) (bool, error) {
	res := r.db.
		Where("id = ? AND NOT EXISTS (SELECT 1 FROM reports WHERE reports.category_id = ?)",
			category.ID, category.ID).
		Delete(&models.Category{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// FindOneByID returns the category or gorm.ErrRecordNotFound.
func (r *CategoryRepository) FindOneByID(id uint) (*models.Category, error) {
	var category models.Category
	if err := r.db.First(&category, id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// FindAll returns every category, alphabetically, for form selects.
func (r *CategoryRepository) FindAll() ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.Order("name ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// QueryAll returns the unfiltered listing query, newest first.
func (r *CategoryRepository) QueryAll() *gorm.DB {
	return r.db.Model(&models.Category{}).Order("created_at DESC")
}
