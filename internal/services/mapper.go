package services

import (
	"time"

	"fact-tracker/internal/domain"
	"fact-tracker/internal/repository"
)

// FactMapper handles conversion between domain and stored execution facts.
type FactMapper struct{}

// FromDetail converts a stored fact with executor columns to a domain ExecutionFact.
func (m *FactMapper) FromDetail(detail *repository.FactDetail) domain.ExecutionFact {
	return domain.ExecutionFact{
		ID:          detail.ID,
		StartTime:   detail.StartTime.UTC(),
		FinishTime:  utcPtr(detail.FinishTime),
		Description: detail.Description,
		Executor: domain.ParticipantSummary{
			ID:       detail.ExecutorID,
			FullName: detail.ExecutorFullName,
			Email:    detail.ExecutorEmail,
		},
		Version: detail.Version,
	}
}

// ToRecord converts a domain ExecutionFact to its stored form.
func (m *FactMapper) ToRecord(fact domain.ExecutionFact) *repository.ExecutionFact {
	return &repository.ExecutionFact{
		ID:          fact.ID,
		StartTime:   fact.StartTime.UTC(),
		FinishTime:  utcPtr(fact.FinishTime),
		Description: fact.Description,
		ExecutorID:  fact.Executor.ID,
		Version:     fact.Version,
	}
}

// FromDetailSlice converts stored facts to domain facts.
func (m *FactMapper) FromDetailSlice(details []*repository.FactDetail) []domain.ExecutionFact {
	facts := make([]domain.ExecutionFact, len(details))
	for i, detail := range details {
		facts[i] = m.FromDetail(detail)
	}
	return facts
}

// ParticipantMapper handles conversion between domain and stored participants.
type ParticipantMapper struct{}

// FromRecord converts a stored participant to a domain Participant.
func (m *ParticipantMapper) FromRecord(record *repository.Participant) domain.Participant {
	return domain.Participant{
		ID:       record.ID,
		FullName: record.FullName,
		Email:    record.Email,
		Version:  record.Version,
	}
}

// ToRecord converts a domain Participant to its stored form.
func (m *ParticipantMapper) ToRecord(participant domain.Participant) *repository.Participant {
	return &repository.Participant{
		ID:       participant.ID,
		FullName: participant.FullName,
		Email:    participant.Email,
		Version:  participant.Version,
	}
}

// FromRecordSlice converts stored participants to domain participants.
func (m *ParticipantMapper) FromRecordSlice(records []*repository.Participant) []domain.Participant {
	participants := make([]domain.Participant, len(records))
	for i, record := range records {
		participants[i] = m.FromRecord(record)
	}
	return participants
}

// Mapper groups the model mappers.
type Mapper struct {
	Fact        *FactMapper
	Participant *ParticipantMapper
}

// NewMapper creates a Mapper.
func NewMapper() *Mapper {
	return &Mapper{
		Fact:        &FactMapper{},
		Participant: &ParticipantMapper{},
	}
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC()
	return &v
}
