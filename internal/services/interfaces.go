package services

import (
	"context"
	"time"

	"fact-tracker/internal/domain"
	"fact-tracker/internal/monitor"
	"fact-tracker/internal/query"
	"fact-tracker/internal/repository"
	"fact-tracker/internal/validation"
)

// FactCreator records a single execution fact candidate
type FactCreator interface {
	Create(ctx context.Context, candidate domain.FactCandidate) (string, error)
}

// FactPager returns one page of execution facts matching a predicate
type FactPager interface {
	Page(ctx context.Context, pred query.Predicate, pageIndex, pageSize int) (*domain.Page[*repository.FactDetail], error)
}

// Clock returns the current time
type Clock func() time.Time

// SystemClock returns the current wall clock time in UTC
func SystemClock() time.Time {
	return time.Now().UTC()
}

// FixedClock returns a clock that always reports t
func FixedClock(t time.Time) Clock {
	return func() time.Time { return t.UTC() }
}

// Option configures optional service dependencies
type Option func(*options)

type options struct {
	clock     Clock
	validator *validation.Validator
	metrics   *monitor.Metrics
	tracer    *monitor.Tracer
}

// WithClock replaces the system clock
func WithClock(clock Clock) Option {
	return func(o *options) { o.clock = clock }
}

// WithValidator sets the validator carrying the configured limits
func WithValidator(v *validation.Validator) Option {
	return func(o *options) { o.validator = v }
}

// WithMetrics enables Prometheus instrumentation
func WithMetrics(m *monitor.Metrics) Option {
	return func(o *options) { o.metrics = m }
}

// WithTracer sets the span source
func WithTracer(t *monitor.Tracer) Option {
	return func(o *options) { o.tracer = t }
}

func buildOptions(opts []Option) options {
	o := options{
		clock:     SystemClock,
		validator: validation.NewValidator(),
		tracer:    monitor.NewTracer(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// ServiceContainer manages all services and their dependencies
type ServiceContainer struct {
	Facts        *FactService
	Participants *ParticipantService
	Search       *SearchService
	Import       *BulkImportPipeline
}

// NewServiceContainer wires every service against one repository
func NewServiceContainer(repo repository.Repository, opts ...Option) *ServiceContainer {
	facts := NewFactService(repo, opts...)
	return &ServiceContainer{
		Facts:        facts,
		Participants: NewParticipantService(repo, opts...),
		Search:       NewSearchService(repo, opts...),
		Import:       NewBulkImportPipeline(facts, opts...),
	}
}
