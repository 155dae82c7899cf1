package domain

import (
	"time"
)

// Labels used when reporting execution fact range violations.
const (
	StartTimeLabel  = "startTime"
	FinishTimeLabel = "finishTime"
)

// ParticipantSummary is the executor view embedded in an execution fact.
type ParticipantSummary struct {
	ID       string
	FullName string
	Email    string
}

// ExecutionFact represents a recorded unit of work performed by a participant.
// This is a pure domain model without database-specific concerns.
type ExecutionFact struct {
	ID          string
	StartTime   time.Time
	FinishTime  *time.Time
	Description string
	Executor    ParticipantSummary
	Version     int64
}

// IsFinished returns true if the fact has a finish time.
func (f ExecutionFact) IsFinished() bool {
	return f.FinishTime != nil
}

// Duration returns the length of a finished fact, zero otherwise.
func (f ExecutionFact) Duration() time.Duration {
	if f.FinishTime == nil {
		return 0
	}
	return f.FinishTime.Sub(f.StartTime)
}

// RangesToValidate implements RangeProvider.
func (f ExecutionFact) RangesToValidate() []RangeDescriptor {
	start := f.StartTime
	return []RangeDescriptor{NewRange(&start, f.FinishTime, StartTimeLabel, FinishTimeLabel)}
}

// WithPatch returns a copy of the fact with every non-nil patch field applied.
// A changed executor id resets the embedded summary; callers re-resolve it.
func (f ExecutionFact) WithPatch(p FactPatch) ExecutionFact {
	if p.ExecutorID != nil && *p.ExecutorID != f.Executor.ID {
		f.Executor = ParticipantSummary{ID: *p.ExecutorID}
	}
	if p.Description != nil {
		f.Description = *p.Description
	}
	if p.StartTime != nil {
		f.StartTime = p.StartTime.Time()
	}
	if p.FinishTime != nil {
		f.FinishTime = p.FinishTime.TimePtr()
	}
	return f
}

// FactCandidate is the payload for recording a new execution fact.
// It is also the element type of a bulk import batch.
type FactCandidate struct {
	ExecutorID  string     `json:"executorId"`
	Description string     `json:"description"`
	StartTime   *Timestamp `json:"startTime,omitempty"`
	FinishTime  *Timestamp `json:"finishTime,omitempty"`
}

// RangesToValidate implements RangeProvider.
func (c FactCandidate) RangesToValidate() []RangeDescriptor {
	return []RangeDescriptor{NewRange(c.StartTime.TimePtr(), c.FinishTime.TimePtr(), StartTimeLabel, FinishTimeLabel)}
}

// FactPatch is a partial update of an execution fact. Nil fields are left unchanged.
// Version, when set, must match the stored version.
type FactPatch struct {
	ExecutorID  *string    `json:"executorId,omitempty"`
	Description *string    `json:"description,omitempty"`
	StartTime   *Timestamp `json:"startTime,omitempty"`
	FinishTime  *Timestamp `json:"finishTime,omitempty"`
	Version     *int64     `json:"version,omitempty"`
}

// RangesToValidate implements RangeProvider.
func (p FactPatch) RangesToValidate() []RangeDescriptor {
	return []RangeDescriptor{NewRange(p.StartTime.TimePtr(), p.FinishTime.TimePtr(), StartTimeLabel, FinishTimeLabel)}
}

// IsEmpty returns true when the patch changes nothing.
func (p FactPatch) IsEmpty() bool {
	return p.ExecutorID == nil && p.Description == nil && p.StartTime == nil && p.FinishTime == nil
}
