package service

import (
	"reportdesk/models"
	"reportdesk/repository"
)

// CategoryService orchestrates category persistence and the deletion guard.
type CategoryService struct {
	categories *repository.CategoryRepository
	reports    *repository.ReportRepository
}

// NewCategoryService wires the service to both repositories; the report
// repository backs the deletion guard.
func NewCategoryService(categories *repository.CategoryRepository, reports *repository.ReportRepository) *CategoryService {
	return &CategoryService{categories: categories, reports: reports}
}

// Save persists the category.
func (s *CategoryService) Save(category *models.Category) error {
	return s.categories.Save(category)
}

// Delete removes the category unless reports still reference it. The
// deletion is a single conditional statement, so the guard cannot race
// with a concurrent report creation. Any failure counts as a refusal.
func (s *CategoryService) Delete(category *models.Category) bool {
	deleted, err := s.categories.DeleteIfUnused(category)
	if err != nil {
		return false
	}
	return deleted
}

// CanBeDeleted reports whether no report references the category. Errors
// during the count fail closed.
func (s *CategoryService) CanBeDeleted(category *models.Category) bool {
	count, err := s.reports.CountByCategory(category)
	if err != nil {
		return false
	}
	return count == 0
}

// FindOneByID returns the category or an error when no row exists.
func (s *CategoryService) FindOneByID(id uint) (*models.Category, error) {
	return s.categories.FindOneByID(id)
}

// FindAll returns every category for selection widgets.
func (s *CategoryService) FindAll() ([]models.Category, error) {
	return s.categories.FindAll()
}

// GetPaginatedList returns one page of categories, newest first.
func (s *CategoryService) GetPaginatedList(page int) (*Pagination[models.Category], error) {
	return paginate[models.Category](s.categories.QueryAll(), page)
}
