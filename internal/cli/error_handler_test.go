package cli

import (
	"errors"
	"testing"

	apperrors "fact-tracker/internal/errors"
	"fact-tracker/internal/validation"

	"github.com/stretchr/testify/assert"
)

func rangeViolation() *validation.ValidationError {
	ve := validation.NewValidationError()
	ve.AddRangeOrderError("startTime", "finishTime")
	return ve
}

func TestErrorHandler_Handle(t *testing.T) {
	eh := NewErrorHandler()

	tests := []struct {
		name      string
		operation string
		err       error
		expected  string
	}{
		{
			name:      "Validation error",
			operation: "register participant",
			err:       apperrors.NewValidationError("email is required", nil),
			expected:  "failed to register participant: email is required",
		},
		{
			name:      "Not found error",
			operation: "get execution fact",
			err:       apperrors.NewNotFoundError("Execution fact", "123"),
			expected:  "failed to get execution fact: Execution fact with id '123' not found",
		},
		{
			name:      "Database error",
			operation: "import execution facts",
			err:       apperrors.NewDatabaseError("insert", errors.New("disk full")),
			expected:  "failed to import execution facts: A database error occurred. Please try again.",
		},
		{
			name:      "Raw validation result",
			operation: "write report",
			err:       rangeViolation(),
			expected:  "failed to write report: startTime is after finishTime",
		},
		{
			name:      "Regular error",
			operation: "serve",
			err:       errors.New("address already in use"),
			expected:  "failed to serve: address already in use",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := eh.Handle(tt.operation, tt.err)
			assert.EqualError(t, result, tt.expected)
		})
	}

	t.Run("nil error", func(t *testing.T) {
		assert.NoError(t, eh.Handle("serve", nil))
	})
}

func TestErrorHandler_HandleSimple(t *testing.T) {
	eh := NewErrorHandler()

	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"Conflict error", apperrors.NewEmailTakenError("ann@example.com", nil), "Email ann@example.com is already taken."},
		{"Timeout error", apperrors.NewTimeoutError("report", nil), "The operation timed out. Please try again."},
		{"Regular error", errors.New("regular error"), "regular error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.EqualError(t, eh.HandleSimple(tt.err), tt.expected)
		})
	}
}

func TestErrorHandler_IsValidationError(t *testing.T) {
	eh := NewErrorHandler()

	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"AppError validation", apperrors.NewValidationError("invalid input", nil), true},
		{"AppError range order", apperrors.NewRangeOrderError([]string{"startTime is after finishTime"}, nil), true},
		{"Raw validation result", rangeViolation(), true},
		{"Database error", apperrors.NewDatabaseError("insert", nil), false},
		{"Regular error", errors.New("regular error"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, eh.IsValidationError(tt.err))
		})
	}
}
