package sqlstore

import (
	"context"
	"database/sql"
	stderrors "errors"
	"time"

	"fact-tracker/internal/errors"
	"fact-tracker/internal/query"
	"fact-tracker/internal/repository"

	"github.com/google/uuid"
)

const factFrom = `
	FROM execution_facts f
	JOIN participants p ON p.id = f.executor_id`

const factSelect = `
	SELECT f.id, f.start_time, f.finish_time, f.description, f.executor_id, f.version, p.full_name, p.email` + factFrom

// CreateFact inserts a new execution fact
func (s *Store) CreateFact(ctx context.Context, fact *repository.ExecutionFact) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if fact.ID == "" {
		fact.ID = uuid.NewString()
	}
	fact.Version = 0

	q := `
	INSERT INTO execution_facts (id, start_time, finish_time, description, executor_id, version)
	VALUES (?, ?, ?, ?, ?, ?)`

	_, err := s.db.ExecContext(ctx, s.dialect.Rebind(q),
		fact.ID,
		s.dialect.TimeValue(fact.StartTime),
		s.timePtrValue(fact.FinishTime),
		fact.Description,
		fact.ExecutorID,
		fact.Version,
	)
	if err != nil {
		return s.factWriteError("create execution fact", fact, err)
	}
	return nil
}

// GetFact retrieves an execution fact with its executor
func (s *Store) GetFact(ctx context.Context, id string) (*repository.FactDetail, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	q := factSelect + `
	WHERE f.id = ?`
	return QuerySingle(ctx, s.db, s.dialect.Rebind(q), ScanFactDetail, repository.ResourceFact, id, id)
}

// UpdateFact replaces an execution fact if its version is unchanged
func (s *Store) UpdateFact(ctx context.Context, fact *repository.ExecutionFact) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	q := `
	UPDATE execution_facts
	SET start_time = ?, finish_time = ?, description = ?, executor_id = ?, version = version + 1
	WHERE id = ? AND version = ?`

	result, err := s.db.ExecContext(ctx, s.dialect.Rebind(q),
		s.dialect.TimeValue(fact.StartTime),
		s.timePtrValue(fact.FinishTime),
		fact.Description,
		fact.ExecutorID,
		fact.ID,
		fact.Version,
	)
	if err != nil {
		return s.factWriteError("update execution fact", fact, err)
	}

	rows, err := RowsAffected(result)
	if err != nil {
		return err
	}
	if rows == 0 {
		return s.missedUpdate(ctx, "execution_facts", repository.ResourceFact, fact.ID, fact.Version)
	}

	fact.Version++
	return nil
}

// DeleteFact deletes an execution fact. Unknown ids are ignored.
func (s *Store) DeleteFact(ctx context.Context, id string) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	q := `DELETE FROM execution_facts WHERE id = ?`
	if _, err := s.db.ExecContext(ctx, s.dialect.Rebind(q), id); err != nil {
		return HandleDatabaseError("delete execution fact", err)
	}
	return nil
}

// CountFacts counts the execution facts matching the predicate
func (s *Store) CountFacts(ctx context.Context, pred query.Predicate) (int64, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	where, args, err := s.where(pred)
	if err != nil {
		return 0, err
	}

	var count int64
	q := `SELECT COUNT(*)` + factFrom + where
	if err := s.db.QueryRowContext(ctx, s.dialect.Rebind(q), args...).Scan(&count); err != nil {
		return 0, HandleDatabaseError("count execution facts", err)
	}
	return count, nil
}

// FindFacts returns one window of matching execution facts ordered by id
func (s *Store) FindFacts(ctx context.Context, pred query.Predicate, limit, offset int) ([]*repository.FactDetail, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	where, args, err := s.where(pred)
	if err != nil {
		return nil, err
	}

	q := factSelect + where + `
	ORDER BY f.id
	LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	return QueryMultiple(ctx, s.db, s.dialect.Rebind(q), ScanFactDetails, "execution facts", args...)
}

func (s *Store) where(pred query.Predicate) (string, []interface{}, error) {
	wb := NewWhereBuilder(s.dialect)
	if err := wb.AddPredicate(pred); err != nil {
		return "", nil, errors.WrapError(err, errors.ErrorTypeInvalidInput, "Unsupported search predicate")
	}
	where, args := wb.Build()
	return where, args, nil
}

func (s *Store) timePtrValue(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return s.dialect.TimeValue(*t)
}

func (s *Store) factWriteError(operation string, fact *repository.ExecutionFact, err error) error {
	switch {
	case s.dialect.IsForeignKeyViolation(err):
		return errors.NewNotFoundError(repository.ResourceExecutor, fact.ExecutorID)
	case s.dialect.IsUniqueViolation(err):
		return errors.NewConflictError("DUPLICATE_ID", "Execution fact with id '"+fact.ID+"' already exists", err)
	}
	return HandleDatabaseError(operation, err)
}

// missedUpdate explains why a compare-and-swap update touched no rows
func (s *Store) missedUpdate(ctx context.Context, table, resource, id string, version int64) error {
	var current int64
	q := `SELECT version FROM ` + table + ` WHERE id = ?`
	err := s.db.QueryRowContext(ctx, s.dialect.Rebind(q), id).Scan(&current)
	if stderrors.Is(err, sql.ErrNoRows) {
		return errors.NewNotFoundError(resource, id)
	}
	if err != nil {
		return HandleDatabaseError("read "+resource+" version", err)
	}
	return errors.NewStaleVersionError(resource, id, version)
}
