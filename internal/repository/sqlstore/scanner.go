package sqlstore

import (
	"fmt"

	"fact-tracker/internal/repository"
)

// Scanner interface defines the common scanning behavior for both sql.Row and sql.Rows
type Scanner interface {
	Scan(dest ...interface{}) error
}

// Rows interface defines the common behavior for sql.Rows
type Rows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

// ScanFactDetail scans one row of factColumns
func ScanFactDetail(scanner Scanner) (*repository.FactDetail, error) {
	detail := &repository.FactDetail{}
	var start, finish nullTime

	err := scanner.Scan(
		&detail.ID,
		&start,
		&finish,
		&detail.Description,
		&detail.ExecutorID,
		&detail.Version,
		&detail.ExecutorFullName,
		&detail.ExecutorEmail,
	)
	if err != nil {
		return nil, err
	}
	if !start.Valid {
		return nil, fmt.Errorf("execution fact %s has no start time", detail.ID)
	}

	detail.StartTime = start.Time
	detail.FinishTime = finish.Ptr()
	return detail, nil
}

// ScanFactDetails scans multiple fact rows
func ScanFactDetails(rows Rows) ([]*repository.FactDetail, error) {
	return scanAll(rows, ScanFactDetail)
}

// ScanParticipant scans one row of participantColumns
func ScanParticipant(scanner Scanner) (*repository.Participant, error) {
	p := &repository.Participant{}
	if err := scanner.Scan(&p.ID, &p.FullName, &p.Email, &p.Version); err != nil {
		return nil, err
	}
	return p, nil
}

// ScanParticipants scans multiple participant rows
func ScanParticipants(rows Rows) ([]*repository.Participant, error) {
	return scanAll(rows, ScanParticipant)
}

func scanAll[T any](rows Rows, scan func(Scanner) (*T, error)) ([]*T, error) {
	results := make([]*T, 0)
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return results, nil
}
