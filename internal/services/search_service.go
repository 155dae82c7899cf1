package services

import (
	"context"
	"io"

	"fact-tracker/internal/domain"
	"fact-tracker/internal/logging"
	"fact-tracker/internal/monitor"
	"fact-tracker/internal/query"
	"fact-tracker/internal/repository"
	"fact-tracker/internal/validation"
)

// SearchService handles filtered listing and CSV reporting of execution facts
type SearchService struct {
	paginator *Paginator
	encoder   *CSVReportEncoder
	builder   *query.Builder
	filters   *validation.FilterValidator
	mapper    *Mapper
	tracer    *monitor.Tracer
}

// NewSearchService creates a new SearchService instance
func NewSearchService(store repository.FactStore, opts ...Option) *SearchService {
	o := buildOptions(opts)
	paginator := NewPaginator(store)
	return &SearchService{
		paginator: paginator,
		encoder:   NewCSVReportEncoder(paginator, o.metrics),
		builder:   query.DefaultBuilder(),
		filters:   validation.NewFilterValidator(o.validator),
		mapper:    NewMapper(),
		tracer:    o.tracer,
	}
}

// Search returns the requested page of facts matching criteria
func (s *SearchService) Search(ctx context.Context, criteria domain.FilterCriteria) (result *domain.Page[domain.ExecutionFact], err error) {
	criteria, err = s.prepare(criteria)
	if err != nil {
		return nil, err
	}

	ctx, span := s.tracer.StartSpan(ctx, "search",
		monitor.AttrPageIndex.Int(criteria.Index()),
		monitor.AttrPageSize.Int(criteria.Size()),
	)
	defer func() { monitor.EndSpan(span, err) }()

	pred := s.builder.Build(criteria)
	logging.FromContext(ctx).Debug().Str("predicate", pred.String()).Msg("searching execution facts")

	page, err := s.paginator.Page(ctx, pred, criteria.Index(), criteria.Size())
	if err != nil {
		return nil, err
	}

	return &domain.Page[domain.ExecutionFact]{
		Items:      s.mapper.Fact.FromDetailSlice(page.Items),
		TotalPages: page.TotalPages,
		TotalCount: page.TotalCount,
		PageIndex:  page.PageIndex,
		PageSize:   page.PageSize,
	}, nil
}

// Report writes every fact matching criteria as CSV, starting at the requested page.
// The page size is the fetch chunk. It returns the number of data rows written.
func (s *SearchService) Report(ctx context.Context, w io.Writer, criteria domain.FilterCriteria) (rows int, err error) {
	criteria, err = s.prepare(criteria)
	if err != nil {
		return 0, err
	}

	ctx, span := s.tracer.StartSpan(ctx, "report")
	defer func() {
		span.SetAttributes(monitor.AttrRows.Int(rows))
		monitor.EndSpan(span, err)
	}()

	rows, err = s.encoder.Encode(ctx, w, s.builder.Build(criteria), criteria.Index(), criteria.Size())
	return rows, err
}

// prepare validates caller input, then applies defaults.
// Text filters are compared verbatim.
func (s *SearchService) prepare(criteria domain.FilterCriteria) (domain.FilterCriteria, error) {
	if err := s.filters.Validate(criteria); err != nil {
		return criteria, validation.AsAppError(err)
	}

	criteria.ApplyDefaults()
	return criteria, nil
}
