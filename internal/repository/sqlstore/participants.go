package sqlstore

import (
	"context"
	"database/sql"
	stderrors "errors"

	"fact-tracker/internal/errors"
	"fact-tracker/internal/repository"

	"github.com/google/uuid"
)

const participantSelect = `SELECT id, full_name, email, version FROM participants`

// CreateParticipant inserts a new participant
func (s *Store) CreateParticipant(ctx context.Context, participant *repository.Participant) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if participant.ID == "" {
		participant.ID = uuid.NewString()
	}
	participant.Version = 0

	q := `INSERT INTO participants (id, full_name, email, version) VALUES (?, ?, ?, ?)`
	_, err := s.db.ExecContext(ctx, s.dialect.Rebind(q),
		participant.ID, participant.FullName, participant.Email, participant.Version)
	if err != nil {
		return s.participantWriteError("create participant", participant, err)
	}
	return nil
}

// GetParticipant retrieves a participant by ID
func (s *Store) GetParticipant(ctx context.Context, id string) (*repository.Participant, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	q := participantSelect + ` WHERE id = ?`
	return QuerySingle(ctx, s.db, s.dialect.Rebind(q), ScanParticipant, repository.ResourceParticipant, id, id)
}

// FindParticipantByEmail returns the owner of an email, or nil
func (s *Store) FindParticipantByEmail(ctx context.Context, email string) (*repository.Participant, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	q := participantSelect + ` WHERE email = ?`
	participant, err := ScanParticipant(s.db.QueryRowContext(ctx, s.dialect.Rebind(q), email))
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, HandleDatabaseError("find participant by email", err)
	}
	return participant, nil
}

// ListParticipants retrieves all participants ordered by name
func (s *Store) ListParticipants(ctx context.Context) ([]*repository.Participant, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	q := participantSelect + ` ORDER BY full_name ASC, id ASC`
	return QueryMultiple(ctx, s.db, s.dialect.Rebind(q), ScanParticipants, "participants")
}

// UpdateParticipant replaces a participant if its version is unchanged
func (s *Store) UpdateParticipant(ctx context.Context, participant *repository.Participant) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	q := `
	UPDATE participants
	SET full_name = ?, email = ?, version = version + 1
	WHERE id = ? AND version = ?`

	result, err := s.db.ExecContext(ctx, s.dialect.Rebind(q),
		participant.FullName, participant.Email, participant.ID, participant.Version)
	if err != nil {
		return s.participantWriteError("update participant", participant, err)
	}

	rows, err := RowsAffected(result)
	if err != nil {
		return err
	}
	if rows == 0 {
		return s.missedUpdate(ctx, "participants", repository.ResourceParticipant, participant.ID, participant.Version)
	}

	participant.Version++
	return nil
}

// DeleteParticipant deletes a participant. Unknown ids are ignored; participants
// still referenced by execution facts cannot be deleted.
func (s *Store) DeleteParticipant(ctx context.Context, id string) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	q := `DELETE FROM participants WHERE id = ?`
	if _, err := s.db.ExecContext(ctx, s.dialect.Rebind(q), id); err != nil {
		if s.dialect.IsForeignKeyViolation(err) {
			return errors.NewConflictError("PARTICIPANT_IN_USE",
				"Participant with id '"+id+"' is referenced by execution facts", err)
		}
		return HandleDatabaseError("delete participant", err)
	}
	return nil
}

func (s *Store) participantWriteError(operation string, participant *repository.Participant, err error) error {
	if s.dialect.IsUniqueViolation(err) {
		return errors.NewEmailTakenError(participant.Email, err)
	}
	return HandleDatabaseError(operation, err)
}
