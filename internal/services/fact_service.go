package services

import (
	"context"
	"strings"

	"fact-tracker/internal/domain"
	"fact-tracker/internal/errors"
	"fact-tracker/internal/logging"
	"fact-tracker/internal/monitor"
	"fact-tracker/internal/repository"
	"fact-tracker/internal/validation"
)

// FactService handles the execution fact lifecycle
type FactService struct {
	repo      repository.Repository
	mapper    *Mapper
	validator *validation.FactValidator
	ids       *validation.Validator
	clock     Clock
	tracer    *monitor.Tracer
}

var _ FactCreator = (*FactService)(nil)

// NewFactService creates a new FactService instance
func NewFactService(repo repository.Repository, opts ...Option) *FactService {
	o := buildOptions(opts)
	return &FactService{
		repo:      repo,
		mapper:    NewMapper(),
		validator: validation.NewFactValidator(o.validator),
		ids:       o.validator,
		clock:     o.clock,
		tracer:    o.tracer,
	}
}

// Create records a new execution fact and returns its id.
// An absent start time defaults to the current time.
func (s *FactService) Create(ctx context.Context, candidate domain.FactCandidate) (id string, err error) {
	ctx, span := s.tracer.StartSpan(ctx, "create")
	defer func() { monitor.EndSpan(span, err) }()

	candidate.ExecutorID = strings.TrimSpace(candidate.ExecutorID)
	candidate.Description = strings.TrimSpace(candidate.Description)

	if err := s.validator.ValidateForCreation(candidate); err != nil {
		return "", validation.AsAppError(err)
	}

	if _, err := s.resolveExecutor(ctx, candidate.ExecutorID); err != nil {
		return "", err
	}

	start := s.clock()
	if candidate.StartTime != nil {
		start = candidate.StartTime.Time()
	}

	record := &repository.ExecutionFact{
		StartTime:   start,
		FinishTime:  candidate.FinishTime.TimePtr(),
		Description: candidate.Description,
		ExecutorID:  candidate.ExecutorID,
	}
	if err := s.repo.CreateFact(ctx, record); err != nil {
		return "", err
	}

	span.SetAttributes(monitor.AttrFactID.String(record.ID))
	logging.FromContext(ctx).Debug().Str("fact_id", record.ID).Msg("execution fact recorded")
	return record.ID, nil
}

// Get returns the execution fact with its executor summary
func (s *FactService) Get(ctx context.Context, id string) (*domain.ExecutionFact, error) {
	id = strings.TrimSpace(id)
	if !s.ids.IsValidID(id) {
		return nil, errors.NewNotFoundError(repository.ResourceFact, id)
	}

	detail, err := s.repo.GetFact(ctx, id)
	if err != nil {
		return nil, err
	}

	fact := s.mapper.Fact.FromDetail(detail)
	return &fact, nil
}

// Update applies the non-nil fields of patch. A patch version must match the stored version.
func (s *FactService) Update(ctx context.Context, id string, patch domain.FactPatch) (err error) {
	ctx, span := s.tracer.StartSpan(ctx, "update", monitor.AttrFactID.String(id))
	defer func() { monitor.EndSpan(span, err) }()

	patch = trimFactPatch(patch)
	if err := s.validator.ValidateForUpdate(patch); err != nil {
		return validation.AsAppError(err)
	}

	current, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if patch.Version != nil && *patch.Version != current.Version {
		return errors.NewStaleVersionError(repository.ResourceFact, current.ID, *patch.Version)
	}

	merged := current.WithPatch(patch)
	if merged.Executor.ID != current.Executor.ID {
		executor, err := s.resolveExecutor(ctx, merged.Executor.ID)
		if err != nil {
			return err
		}
		merged.Executor = executor.Summary()
	}

	if err := s.validator.ValidateFact(merged); err != nil {
		return validation.AsAppError(err)
	}

	return s.repo.UpdateFact(ctx, s.mapper.Fact.ToRecord(merged))
}

// Delete removes the execution fact. Unknown ids are ignored.
func (s *FactService) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if !s.ids.IsValidID(id) {
		return nil
	}
	return s.repo.DeleteFact(ctx, id)
}

// resolveExecutor loads the participant referenced by a fact
func (s *FactService) resolveExecutor(ctx context.Context, id string) (domain.Participant, error) {
	record, err := s.repo.GetParticipant(ctx, id)
	if err != nil {
		if errors.IsErrorType(err, errors.ErrorTypeNotFound) {
			return domain.Participant{}, errors.NewNotFoundError(repository.ResourceExecutor, id)
		}
		return domain.Participant{}, err
	}
	return s.mapper.Participant.FromRecord(record), nil
}

func trimFactPatch(patch domain.FactPatch) domain.FactPatch {
	if patch.ExecutorID != nil {
		v := strings.TrimSpace(*patch.ExecutorID)
		patch.ExecutorID = &v
	}
	if patch.Description != nil {
		v := strings.TrimSpace(*patch.Description)
		patch.Description = &v
	}
	return patch
}
