package service

import (
	"reportdesk/models"
	"reportdesk/repository"
)

// Filters is the raw listing filter as it arrives from the request.
type Filters struct {
	CategoryID uint
}

// ReportService orchestrates report persistence and listing.
type ReportService struct {
	reports    *repository.ReportRepository
	categories *CategoryService
}

// NewReportService wires the service to its repository and the category
// service used for filter normalization.
func NewReportService(reports *repository.ReportRepository, categories *CategoryService) *ReportService {
	return &ReportService{reports: reports, categories: categories}
}

// Save persists the report.
func (s *ReportService) Save(report *models.Report) error {
	return s.reports.Save(report)
}

// Delete removes the report.
func (s *ReportService) Delete(report *models.Report) error {
	return s.reports.Delete(report)
}

// FindOneByID returns the report or an error when no row exists.
func (s *ReportService) FindOneByID(id uint) (*models.Report, error) {
	return s.reports.FindOneByID(id)
}

// GetPaginatedList returns one page of reports, newest first. A zero or
// unresolvable category id leaves the listing unfiltered.
func (s *ReportService) GetPaginatedList(page int, filters Filters) (*Pagination[models.Report], error) {
	return paginate[models.Report](s.reports.QueryAll(s.prepareFilters(filters)), page)
}

func (s *ReportService) prepareFilters(filters Filters) repository.ReportFilters {
	prepared := repository.ReportFilters{}
	if filters.CategoryID != 0 {
		if category, err := s.categories.FindOneByID(filters.CategoryID); err == nil {
			prepared.Category = category
		}
	}
	return prepared
}
