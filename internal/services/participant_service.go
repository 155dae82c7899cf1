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

// ParticipantService handles participant registration and maintenance
type ParticipantService struct {
	repo      repository.ParticipantStore
	mapper    *Mapper
	validator *validation.ParticipantValidator
	ids       *validation.Validator
	tracer    *monitor.Tracer
}

// NewParticipantService creates a new ParticipantService instance
func NewParticipantService(repo repository.ParticipantStore, opts ...Option) *ParticipantService {
	o := buildOptions(opts)
	return &ParticipantService{
		repo:      repo,
		mapper:    NewMapper(),
		validator: validation.NewParticipantValidator(o.validator),
		ids:       o.validator,
		tracer:    o.tracer,
	}
}

// Register stores a new participant and returns its id. Emails are unique.
func (s *ParticipantService) Register(ctx context.Context, candidate domain.ParticipantCandidate) (id string, err error) {
	ctx, span := s.tracer.StartSpan(ctx, "register")
	defer func() { monitor.EndSpan(span, err) }()

	candidate.FullName = strings.TrimSpace(candidate.FullName)
	candidate.Email = strings.TrimSpace(candidate.Email)

	if err := s.validator.ValidateForRegistration(candidate); err != nil {
		return "", validation.AsAppError(err)
	}
	if err := s.ensureEmailAvailable(ctx, candidate.Email, ""); err != nil {
		return "", err
	}

	record := &repository.Participant{FullName: candidate.FullName, Email: candidate.Email}
	if err := s.repo.CreateParticipant(ctx, record); err != nil {
		return "", err
	}

	span.SetAttributes(monitor.AttrParticipantID.String(record.ID))
	logging.FromContext(ctx).Debug().Str("participant_id", record.ID).Msg("participant registered")
	return record.ID, nil
}

// List returns every participant ordered by name
func (s *ParticipantService) List(ctx context.Context) ([]domain.Participant, error) {
	records, err := s.repo.ListParticipants(ctx)
	if err != nil {
		return nil, err
	}
	return s.mapper.Participant.FromRecordSlice(records), nil
}

// Get returns a participant by id
func (s *ParticipantService) Get(ctx context.Context, id string) (*domain.Participant, error) {
	id = strings.TrimSpace(id)
	if !s.ids.IsValidID(id) {
		return nil, errors.NewNotFoundError(repository.ResourceParticipant, id)
	}

	record, err := s.repo.GetParticipant(ctx, id)
	if err != nil {
		return nil, err
	}

	participant := s.mapper.Participant.FromRecord(record)
	return &participant, nil
}

// Update applies the non-nil fields of patch. A patch version must match the stored version.
func (s *ParticipantService) Update(ctx context.Context, id string, patch domain.ParticipantPatch) (err error) {
	ctx, span := s.tracer.StartSpan(ctx, "participant_update", monitor.AttrParticipantID.String(id))
	defer func() { monitor.EndSpan(span, err) }()

	if patch.FullName != nil {
		v := strings.TrimSpace(*patch.FullName)
		patch.FullName = &v
	}
	if patch.Email != nil {
		v := strings.TrimSpace(*patch.Email)
		patch.Email = &v
	}

	if err := s.validator.ValidateForUpdate(patch); err != nil {
		return validation.AsAppError(err)
	}

	current, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if patch.Version != nil && *patch.Version != current.Version {
		return errors.NewStaleVersionError(repository.ResourceParticipant, current.ID, *patch.Version)
	}
	if patch.Email != nil && *patch.Email != current.Email {
		if err := s.ensureEmailAvailable(ctx, *patch.Email, current.ID); err != nil {
			return err
		}
	}

	merged := current.WithPatch(patch)
	return s.repo.UpdateParticipant(ctx, s.mapper.Participant.ToRecord(merged))
}

// Delete removes a participant. Unknown ids are ignored; a participant still
// referenced by execution facts cannot be deleted.
func (s *ParticipantService) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if !s.ids.IsValidID(id) {
		return nil
	}
	return s.repo.DeleteParticipant(ctx, id)
}

// ensureEmailAvailable fails when another participant owns email
func (s *ParticipantService) ensureEmailAvailable(ctx context.Context, email, ownerID string) error {
	existing, err := s.repo.FindParticipantByEmail(ctx, email)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != ownerID {
		return errors.NewEmailTakenError(email, nil)
	}
	return nil
}
