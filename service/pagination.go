package service

import (
	"reportdesk/repository"

	"gorm.io/gorm"
)

// Pagination is one fixed-size slice of a listing plus its page metadata.
type Pagination[T any] struct {
	Items      []T
	Page       int
	PageSize   int
	TotalItems int64
	TotalPages int
}

// HasPrevious reports whether an earlier page exists.
func (p *Pagination[T]) HasPrevious() bool { return p.Page > 1 }

// HasNext reports whether a later page exists.
func (p *Pagination[T]) HasNext() bool { return p.Page < p.TotalPages }

// paginate materializes one page of the query. Pages below 1 are coerced
// to 1; a page past the end simply yields no items.
func paginate[T any](query *gorm.DB, page int) (*Pagination[T], error) {
	if page < 1 {
		page = 1
	}
	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, err
	}
	var items []T
	offset := (page - 1) * repository.ItemsPerPage
	if err := query.Session(&gorm.Session{}).Offset(offset).Limit(repository.ItemsPerPage).Find(&items).Error; err != nil {
		return nil, err
	}
	totalPages := int((total + repository.ItemsPerPage - 1) / repository.ItemsPerPage)
	return &Pagination[T]{
		Items:      items,
		Page:       page,
		PageSize:   repository.ItemsPerPage,
		TotalItems: total,
		TotalPages: totalPages,
	}, nil
}
