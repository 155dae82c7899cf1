package services

import (
	"context"
	"testing"
	"time"

	"fact-tracker/internal/domain"
	"fact-tracker/internal/monitor"
	"fact-tracker/internal/query"
	"fact-tracker/internal/repository"
	"fact-tracker/internal/repository/sqlstore"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2010, 1, 1, 0, 0, 0, 0, time.UTC)

func setupRepository(t *testing.T) repository.Repository {
	t.Helper()
	repo, err := sqlstore.OpenSQLite(context.Background(), ":memory:", 0755)
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func setupServices(t *testing.T) (*ServiceContainer, repository.Repository) {
	t.Helper()
	repo := setupRepository(t)
	return NewServiceContainer(repo,
		WithClock(FixedClock(fixedNow)),
		WithMetrics(monitor.NewMetrics()),
	), repo
}

func registerParticipant(t *testing.T, svc *ServiceContainer, fullName, email string) string {
	t.Helper()
	id, err := svc.Participants.Register(context.Background(), domain.ParticipantCandidate{FullName: fullName, Email: email})
	require.NoError(t, err)
	return id
}

func recordFact(t *testing.T, svc *ServiceContainer, executorID, description string, start time.Time, finish *time.Time) string {
	t.Helper()
	candidate := domain.FactCandidate{
		ExecutorID:  executorID,
		Description: description,
		StartTime:   domain.NewTimestamp(start),
	}
	if finish != nil {
		candidate.FinishTime = domain.NewTimestamp(*finish)
	}
	id, err := svc.Facts.Create(context.Background(), candidate)
	require.NoError(t, err)
	return id
}

func at(hour int) time.Time {
	return time.Date(2024, 1, 10, hour, 0, 0, 0, time.UTC)
}

func atPtr(hour int) *time.Time {
	t := at(hour)
	return &t
}

func strPtr(s string) *string {
	return &s
}

func intPtr(i int) *int {
	return &i
}

func int64Ptr(i int64) *int64 {
	return &i
}

// mockFactStore is a testify mock of repository.FactStore
type mockFactStore struct {
	mock.Mock
}

func (m *mockFactStore) CreateFact(ctx context.Context, fact *repository.ExecutionFact) error {
	return m.Called(ctx, fact).Error(0)
}

func (m *mockFactStore) GetFact(ctx context.Context, id string) (*repository.FactDetail, error) {
	args := m.Called(ctx, id)
	if detail, ok := args.Get(0).(*repository.FactDetail); ok {
		return detail, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockFactStore) UpdateFact(ctx context.Context, fact *repository.ExecutionFact) error {
	return m.Called(ctx, fact).Error(0)
}

func (m *mockFactStore) DeleteFact(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockFactStore) CountFacts(ctx context.Context, pred query.Predicate) (int64, error) {
	args := m.Called(ctx, pred)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockFactStore) FindFacts(ctx context.Context, pred query.Predicate, limit, offset int) ([]*repository.FactDetail, error) {
	args := m.Called(ctx, pred, limit, offset)
	if details, ok := args.Get(0).([]*repository.FactDetail); ok {
		return details, args.Error(1)
	}
	return nil, args.Error(1)
}

// mockFactCreator is a testify mock of FactCreator
type mockFactCreator struct {
	mock.Mock
}

func (m *mockFactCreator) Create(ctx context.Context, candidate domain.FactCandidate) (string, error) {
	args := m.Called(ctx, candidate)
	return args.String(0), args.Error(1)
}

func detail(id, description string) *repository.FactDetail {
	return &repository.FactDetail{
		ExecutionFact: repository.ExecutionFact{
			ID:          id,
			StartTime:   at(9),
			Description: description,
			ExecutorID:  "p-1",
		},
		ExecutorFullName: "Ann Example",
		ExecutorEmail:    "ann@example.com",
	}
}
