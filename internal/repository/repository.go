// Package repository defines the persistence contract for execution facts and participants.
package repository

import (
	"context"

	"fact-tracker/internal/query"
)

// FactStore persists execution facts.
type FactStore interface {
	// CreateFact inserts the fact, assigning an ID when empty. Version starts at 0.
	CreateFact(ctx context.Context, fact *ExecutionFact) error
	// GetFact returns the fact joined with its executor.
	GetFact(ctx context.Context, id string) (*FactDetail, error)
	// UpdateFact replaces the fact when the stored version equals fact.Version,
	// then advances fact.Version.
	UpdateFact(ctx context.Context, fact *ExecutionFact) error
	// DeleteFact removes the fact. Deleting an unknown id is not an error.
	DeleteFact(ctx context.Context, id string) error
	// CountFacts returns the number of facts matching the predicate.
	CountFacts(ctx context.Context, pred query.Predicate) (int64, error)
	// FindFacts returns matching facts ordered by id.
	FindFacts(ctx context.Context, pred query.Predicate, limit, offset int) ([]*FactDetail, error)
}

// ParticipantStore persists participants.
type ParticipantStore interface {
	CreateParticipant(ctx context.Context, participant *Participant) error
	GetParticipant(ctx context.Context, id string) (*Participant, error)
	// FindParticipantByEmail returns nil without error when no participant owns the email.
	FindParticipantByEmail(ctx context.Context, email string) (*Participant, error)
	ListParticipants(ctx context.Context) ([]*Participant, error)
	UpdateParticipant(ctx context.Context, participant *Participant) error
	DeleteParticipant(ctx context.Context, id string) error
}

// Repository is the full storage surface used by the services.
type Repository interface {
	FactStore
	ParticipantStore

	Ping(ctx context.Context) error
	Close() error
}
