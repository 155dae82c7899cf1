package services

import (
	"context"

	"fact-tracker/internal/domain"
	"fact-tracker/internal/errors"
	"fact-tracker/internal/query"
	"fact-tracker/internal/repository"
)

// Paginator runs a predicate against the fact store one page at a time
type Paginator struct {
	store repository.FactStore
}

var _ FactPager = (*Paginator)(nil)

// NewPaginator creates a Paginator over store
func NewPaginator(store repository.FactStore) *Paginator {
	return &Paginator{store: store}
}

// Page returns the zero-based page pageIndex of facts matching pred, ordered by id.
// Indices past the last page yield an empty item list.
func (p *Paginator) Page(ctx context.Context, pred query.Predicate, pageIndex, pageSize int) (*domain.Page[*repository.FactDetail], error) {
	if pageSize <= 0 {
		return nil, errors.NewInvalidInputError("pageSize", pageSize, "must be greater than 0")
	}
	if pageIndex < 0 {
		return nil, errors.NewInvalidInputError("pageIndex", pageIndex, "must be greater than or equal to 0")
	}

	total, err := p.store.CountFacts(ctx, pred)
	if err != nil {
		return nil, err
	}

	page := &domain.Page[*repository.FactDetail]{
		Items:      []*repository.FactDetail{},
		TotalPages: TotalPages(total, pageSize),
		TotalCount: total,
		PageIndex:  pageIndex,
		PageSize:   pageSize,
	}
	if pageIndex >= page.TotalPages {
		return page, nil
	}

	items, err := p.store.FindFacts(ctx, pred, pageSize, pageIndex*pageSize)
	if err != nil {
		return nil, err
	}
	page.Items = items
	return page, nil
}

// TotalPages returns ceil(total/pageSize), 0 when there is nothing to page
func TotalPages(total int64, pageSize int) int {
	if total <= 0 || pageSize <= 0 {
		return 0
	}
	size := int64(pageSize)
	return int((total + size - 1) / size)
}
