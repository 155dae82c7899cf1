package services

import (
	"context"
	"testing"

	"fact-tracker/internal/domain"
	"fact-tracker/internal/errors"
	"fact-tracker/internal/monitor"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestParticipantService_Register(t *testing.T) {
	tests := []struct {
		name           string
		candidate      domain.ParticipantCandidate
		errorAssertion func(t *testing.T, err error)
	}{
		{
			name:      "should register a valid participant",
			candidate: domain.ParticipantCandidate{FullName: " Ann Example ", Email: " ann@example.com "},
		},
		{
			name:      "should reject an invalid email",
			candidate: domain.ParticipantCandidate{FullName: "Ann Example", Email: "not-an-email"},
			errorAssertion: func(t *testing.T, err error) {
				assert.True(t, errors.IsErrorType(err, errors.ErrorTypeValidation))
				assert.Contains(t, errors.GetUserMessage(err), "email")
			},
		},
		{
			name:      "should collect every violation",
			candidate: domain.ParticipantCandidate{},
			errorAssertion: func(t *testing.T, err error) {
				appErr, ok := errors.AsAppError(err)
				require.True(t, ok)
				assert.Equal(t, []string{"fullName is required", "email is required"}, appErr.Details)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := setupServices(t)

			id, err := svc.Participants.Register(context.Background(), tt.candidate)

			if tt.errorAssertion != nil {
				require.Error(t, err)
				tt.errorAssertion(t, err)
				return
			}
			require.NoError(t, err)

			participant, err := svc.Participants.Get(context.Background(), id)
			require.NoError(t, err)
			assert.Equal(t, "Ann Example", participant.FullName)
			assert.Equal(t, "ann@example.com", participant.Email)
		})
	}
}

func TestParticipantService_RegisterDuplicateEmail(t *testing.T) {
	svc, _ := setupServices(t)
	registerParticipant(t, svc, "Ann Example", "ann@example.com")

	_, err := svc.Participants.Register(context.Background(),
		domain.ParticipantCandidate{FullName: "Another Ann", Email: "ann@example.com"})

	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeConflict))
	assert.Equal(t, "EMAIL_TAKEN", errors.GetErrorCode(err))
	assert.Equal(t, "Email ann@example.com is already taken.", errors.GetUserMessage(err))

	participants, err := svc.Participants.List(context.Background())
	require.NoError(t, err)
	require.Len(t, participants, 1)
	assert.Equal(t, "Ann Example", participants[0].FullName)
}

func TestParticipantService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("should keep its own email", func(t *testing.T) {
		svc, _ := setupServices(t)
		id := registerParticipant(t, svc, "Ann Example", "ann@example.com")

		err := svc.Participants.Update(ctx, id, domain.ParticipantPatch{
			FullName: strPtr("Ann B. Example"),
			Email:    strPtr("ann@example.com"),
		})
		require.NoError(t, err)

		participant, err := svc.Participants.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "Ann B. Example", participant.FullName)
		assert.Equal(t, int64(1), participant.Version)
	})

	t.Run("should reject another participant's email", func(t *testing.T) {
		svc, _ := setupServices(t)
		registerParticipant(t, svc, "Ann Example", "ann@example.com")
		bob := registerParticipant(t, svc, "Bob Example", "bob@example.com")

		err := svc.Participants.Update(ctx, bob, domain.ParticipantPatch{Email: strPtr("ann@example.com")})
		assert.Equal(t, "EMAIL_TAKEN", errors.GetErrorCode(err))
	})

	t.Run("should reject a stale version", func(t *testing.T) {
		svc, _ := setupServices(t)
		id := registerParticipant(t, svc, "Ann Example", "ann@example.com")
		require.NoError(t, svc.Participants.Update(ctx, id, domain.ParticipantPatch{FullName: strPtr("Ann")}))

		err := svc.Participants.Update(ctx, id, domain.ParticipantPatch{FullName: strPtr("Annie"), Version: int64Ptr(0)})
		assert.Equal(t, "STALE_VERSION", errors.GetErrorCode(err))
	})

	t.Run("should report an unknown participant", func(t *testing.T) {
		svc, _ := setupServices(t)
		missing := uuid.NewString()

		err := svc.Participants.Update(ctx, missing, domain.ParticipantPatch{FullName: strPtr("Ann")})
		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))
		assert.Equal(t, "Participant with id '"+missing+"' not found", errors.GetUserMessage(err))
	})
}

func TestParticipantService_List(t *testing.T) {
	svc, _ := setupServices(t)

	participants, err := svc.Participants.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, participants)

	registerParticipant(t, svc, "Zed Example", "zed@example.com")
	registerParticipant(t, svc, "Ann Example", "ann@example.com")

	participants, err = svc.Participants.List(context.Background())
	require.NoError(t, err)
	require.Len(t, participants, 2)
	assert.Equal(t, "Ann Example", participants[0].FullName)
	assert.Equal(t, "Zed Example", participants[1].FullName)
}

func TestParticipantService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("should be idempotent", func(t *testing.T) {
		svc, _ := setupServices(t)
		id := registerParticipant(t, svc, "Ann Example", "ann@example.com")

		require.NoError(t, svc.Participants.Delete(ctx, id))
		require.NoError(t, svc.Participants.Delete(ctx, id))
		require.NoError(t, svc.Participants.Delete(ctx, "garbage"))

		_, err := svc.Participants.Get(ctx, id)
		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))
	})

	t.Run("should refuse while facts reference the participant", func(t *testing.T) {
		svc, _ := setupServices(t)
		id := registerParticipant(t, svc, "Ann Example", "ann@example.com")
		recordFact(t, svc, id, "deploy", at(9), nil)

		err := svc.Participants.Delete(ctx, id)
		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeConflict))
		assert.Equal(t, "PARTICIPANT_IN_USE", errors.GetErrorCode(err))
	})
}

func TestParticipantService_RecordsSpans(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	svc := NewServiceContainer(setupRepository(t),
		WithClock(FixedClock(fixedNow)),
		WithTracer(monitor.NewTracerWithProvider(tp)),
	)
	ctx := context.Background()

	id := registerParticipant(t, svc, "Ann Example", "ann@example.com")
	_, err := svc.Participants.Register(ctx, domain.ParticipantCandidate{FullName: "Ann Again", Email: "ann@example.com"})
	require.Error(t, err)

	spans := recorder.Ended()
	require.Len(t, spans, 2)
	assert.Equal(t, "facts.register", spans[0].Name())
	assert.Equal(t, codes.Unset, spans[0].Status().Code)
	assert.Contains(t, spans[0].Attributes(), monitor.AttrParticipantID.String(id))
	assert.Equal(t, codes.Error, spans[1].Status().Code)
}
