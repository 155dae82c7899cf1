package repository

import "time"

// Resource names used in not-found messages
const (
	ResourceFact        = "Execution fact"
	ResourceParticipant = "Participant"
	ResourceExecutor    = "Executor"
)

// Participant is the stored form of a participant
type Participant struct {
	ID       string
	FullName string
	Email    string
	Version  int64
}

// ExecutionFact is the stored form of an execution fact
type ExecutionFact struct {
	ID          string
	StartTime   time.Time
	FinishTime  *time.Time // NULL until the execution finishes
	Description string
	ExecutorID  string
	Version     int64
}

// FactDetail is an execution fact joined with the executor columns needed by readers
type FactDetail struct {
	ExecutionFact
	ExecutorFullName string
	ExecutorEmail    string
}
