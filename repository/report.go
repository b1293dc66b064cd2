package repository

import (
	"reportdesk/models"

	"gorm.io/gorm"
)

// ItemsPerPage is the fixed page size for every paginated listing.
const ItemsPerPage = 10

// ReportFilters narrows a report listing. A nil Category means no filter.
type ReportFilters struct {
	Category *models.Category
}

// ReportRepository persists and queries reports.
type ReportRepository struct {
	db *gorm.DB
}

// NewReportRepository returns a repository bound to db.
func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// Save inserts or updates the report. Timestamps are stamped by the ORM.
func (r *ReportRepository) Save(report *models.Report) error {
	return r.db.Save(report).Error
}

// Delete removes the report unconditionally.
func (r *ReportRepository) Delete(report *models.Report) error {
	return r.db.Delete(report).Error
}

// FindOneByID returns the report with its category and author loaded,
// or gorm.ErrRecordNotFound.
func (r *ReportRepository) FindOneByID(id uint) (*models.Report, error) {
	var report models.Report
	if err := r.db.Preload("Category").Preload("Author").First(&report, id).Error; err != nil {
		return nil, err
	}
	return &report, nil
}

// QueryAll returns the listing query, newest first, category preloaded.
// The result is a query description; callers materialize it themselves.
func (r *ReportRepository) QueryAll(filters ReportFilters) *gorm.DB {
	q := r.db.Model(&models.Report{}).
		Preload("Category").
		Order("created_at DESC")
	if filters.Category != nil {
		q = q.Where("category_id = ?", filters.Category.ID)
	}
	return q
}

// CountByCategory returns the distinct number of reports referencing the
// category.
func (r *ReportRepository) CountByCategory(category *models.Category) (int64, error) {
	var count int64
	err := r.db.Model(&models.Report{}).
		Distinct("id").
		Where("category_id = ?", category.ID).
		Count(&count).Error
	return count, err
}
