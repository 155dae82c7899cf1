package errors

import (
	"errors"
	"testing"
)

func TestNewValidationError(t *testing.T) {
	cause := errors.New("field is required")
	err := NewValidationError("validation failed", cause)

	if err.Type != ErrorTypeValidation {
		t.Errorf("NewValidationError type = %v, want %v", err.Type, ErrorTypeValidation)
	}
	if err.Message != "validation failed" {
		t.Errorf("NewValidationError message = %v, want %v", err.Message, "validation failed")
	}
	if err.Code != "VALIDATION_FAILED" {
		t.Errorf("NewValidationError code = %v, want %v", err.Code, "VALIDATION_FAILED")
	}
	if err.Cause != cause {
		t.Errorf("NewValidationError cause = %v, want %v", err.Cause, cause)
	}
}

func TestNewItemizedValidationError(t *testing.T) {
	details := []string{"description is required", "email has invalid format"}
	err := NewItemizedValidationError(details, nil)

	if err.Type != ErrorTypeValidation {
		t.Errorf("NewItemizedValidationError type = %v, want %v", err.Type, ErrorTypeValidation)
	}
	if err.Message != "description is required; email has invalid format" {
		t.Errorf("NewItemizedValidationError message = %q", err.Message)
	}
	if len(err.Details) != 2 {
		t.Errorf("NewItemizedValidationError details = %v, want 2 items", err.Details)
	}
}

func TestNewRangeOrderError(t *testing.T) {
	err := NewRangeOrderError([]string{"startTime is after finishTime"}, nil)

	if err.Type != ErrorTypeRangeOrder {
		t.Errorf("NewRangeOrderError type = %v, want %v", err.Type, ErrorTypeRangeOrder)
	}
	if err.Message != "startTime is after finishTime" {
		t.Errorf("NewRangeOrderError message = %q", err.Message)
	}
	if err.Code != "RANGE_ORDER" {
		t.Errorf("NewRangeOrderError code = %v, want %v", err.Code, "RANGE_ORDER")
	}
}

func TestNewNotFoundError(t *testing.T) {
	err := NewNotFoundError("Executor", "123")

	if err.Type != ErrorTypeNotFound {
		t.Errorf("NewNotFoundError type = %v, want %v", err.Type, ErrorTypeNotFound)
	}
	if err.Message != "Executor with id '123' not found" {
		t.Errorf("NewNotFoundError message = %v, want %v", err.Message, "Executor with id '123' not found")
	}
	if err.Code != "NOT_FOUND" {
		t.Errorf("NewNotFoundError code = %v, want %v", err.Code, "NOT_FOUND")
	}

	resource, ok := err.GetContext("resource")
	if !ok || resource != "Executor" {
		t.Errorf("NewNotFoundError should set resource context")
	}

	identifier, ok := err.GetContext("identifier")
	if !ok || identifier != "123" {
		t.Errorf("NewNotFoundError should set identifier context")
	}
}

func TestNewEmailTakenError(t *testing.T) {
	cause := errors.New("UNIQUE constraint failed: participants.email")
	err := NewEmailTakenError("ann@example.com", cause)

	if err.Type != ErrorTypeConflict {
		t.Errorf("NewEmailTakenError type = %v, want %v", err.Type, ErrorTypeConflict)
	}
	if err.Message != "Email ann@example.com is already taken." {
		t.Errorf("NewEmailTakenError message = %q", err.Message)
	}
	if err.Code != "EMAIL_TAKEN" {
		t.Errorf("NewEmailTakenError code = %v, want %v", err.Code, "EMAIL_TAKEN")
	}
	if !errors.Is(err, cause) {
		t.Errorf("NewEmailTakenError should wrap its cause")
	}
}

func TestNewStaleVersionError(t *testing.T) {
	err := NewStaleVersionError("Execution fact", "f-1", 3)

	if err.Type != ErrorTypeConflict {
		t.Errorf("NewStaleVersionError type = %v, want %v", err.Type, ErrorTypeConflict)
	}
	if err.Code != "STALE_VERSION" {
		t.Errorf("NewStaleVersionError code = %v, want %v", err.Code, "STALE_VERSION")
	}

	version, ok := err.GetContext("version")
	if !ok || version != int64(3) {
		t.Errorf("NewStaleVersionError should set version context")
	}
}

func TestNewParseError(t *testing.T) {
	cause := errors.New("unexpected end of JSON input")
	err := NewParseError("payload is not a JSON array", cause)

	if err.Type != ErrorTypeParse {
		t.Errorf("NewParseError type = %v, want %v", err.Type, ErrorTypeParse)
	}
	if err.Code != "PARSE_ERROR" {
		t.Errorf("NewParseError code = %v, want %v", err.Code, "PARSE_ERROR")
	}
	if err.Cause != cause {
		t.Errorf("NewParseError cause = %v, want %v", err.Cause, cause)
	}
}

func TestNewDatabaseError(t *testing.T) {
	cause := errors.New("connection timeout")
	err := NewDatabaseError("create participant", cause)

	if err.Type != ErrorTypeDatabase {
		t.Errorf("NewDatabaseError type = %v, want %v", err.Type, ErrorTypeDatabase)
	}
	if err.Message != "database operation failed: create participant" {
		t.Errorf("NewDatabaseError message = %v, want %v", err.Message, "database operation failed: create participant")
	}
	if err.Code != "DATABASE_ERROR" {
		t.Errorf("NewDatabaseError code = %v, want %v", err.Code, "DATABASE_ERROR")
	}
	if err.Cause != cause {
		t.Errorf("NewDatabaseError cause = %v, want %v", err.Cause, cause)
	}

	operation, ok := err.GetContext("operation")
	if !ok || operation != "create participant" {
		t.Errorf("NewDatabaseError should set operation context")
	}
}

func TestNewInvalidInputError(t *testing.T) {
	err := NewInvalidInputError("page-size", "abc", "must be a number")

	if err.Type != ErrorTypeInvalidInput {
		t.Errorf("NewInvalidInputError type = %v, want %v", err.Type, ErrorTypeInvalidInput)
	}
	if err.Message != "invalid input for page-size: must be a number" {
		t.Errorf("NewInvalidInputError message = %v", err.Message)
	}
	if err.Code != "INVALID_INPUT" {
		t.Errorf("NewInvalidInputError code = %v, want %v", err.Code, "INVALID_INPUT")
	}

	field, ok := err.GetContext("field")
	if !ok || field != "page-size" {
		t.Errorf("NewInvalidInputError should set field context")
	}
}

func TestNewTimeoutError(t *testing.T) {
	cause := errors.New("context deadline exceeded")
	err := NewTimeoutError("bulk import", cause)

	if err.Type != ErrorTypeTimeout {
		t.Errorf("NewTimeoutError type = %v, want %v", err.Type, ErrorTypeTimeout)
	}
	if err.Message != "operation timed out: bulk import" {
		t.Errorf("NewTimeoutError message = %v, want %v", err.Message, "operation timed out: bulk import")
	}
	if err.Code != "TIMEOUT" {
		t.Errorf("NewTimeoutError code = %v, want %v", err.Code, "TIMEOUT")
	}
}

func TestWrapError(t *testing.T) {
	cause := errors.New("original error")
	err := WrapError(cause, ErrorTypeDatabase, "wrapped message")

	if err.Type != ErrorTypeDatabase {
		t.Errorf("WrapError type = %v, want %v", err.Type, ErrorTypeDatabase)
	}
	if err.Message != "wrapped message" {
		t.Errorf("WrapError message = %v, want %v", err.Message, "wrapped message")
	}
	if err.Code != "database" {
		t.Errorf("WrapError code = %v, want %v", err.Code, "database")
	}
	if err.Cause != cause {
		t.Errorf("WrapError cause = %v, want %v", err.Cause, cause)
	}
}

func TestIsAppError(t *testing.T) {
	appError := &AppError{Type: ErrorTypeValidation}
	regularError := errors.New("regular error")

	if !IsAppError(appError) {
		t.Errorf("IsAppError should return true for AppError")
	}

	if IsAppError(regularError) {
		t.Errorf("IsAppError should return false for regular error")
	}

	if IsAppError(nil) {
		t.Errorf("IsAppError should return false for nil")
	}
}

func TestAsAppError(t *testing.T) {
	appError := &AppError{Type: ErrorTypeValidation}
	regularError := errors.New("regular error")

	result, ok := AsAppError(appError)
	if !ok {
		t.Errorf("AsAppError should return true for AppError")
	}
	if result != appError {
		t.Errorf("AsAppError should return the same AppError instance")
	}

	result, ok = AsAppError(regularError)
	if ok {
		t.Errorf("AsAppError should return false for regular error")
	}
	if result != nil {
		t.Errorf("AsAppError should return nil for regular error")
	}
}

func TestIsErrorType(t *testing.T) {
	appError := &AppError{Type: ErrorTypeConflict}
	regularError := errors.New("regular error")

	if !IsErrorType(appError, ErrorTypeConflict) {
		t.Errorf("IsErrorType should return true for matching type")
	}

	if IsErrorType(appError, ErrorTypeDatabase) {
		t.Errorf("IsErrorType should return false for different type")
	}

	if IsErrorType(regularError, ErrorTypeValidation) {
		t.Errorf("IsErrorType should return false for regular error")
	}
}

func TestGetUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "Validation error",
			err:      NewValidationError("invalid input", nil),
			expected: "invalid input",
		},
		{
			name:     "Not found error",
			err:      NewNotFoundError("Participant", "123"),
			expected: "Participant with id '123' not found",
		},
		{
			name:     "Conflict error",
			err:      NewEmailTakenError("a@b.c", nil),
			expected: "Email a@b.c is already taken.",
		},
		{
			name:     "Database error",
			err:      NewDatabaseError("query", errors.New("timeout")),
			expected: "A database error occurred. Please try again.",
		},
		{
			name:     "Timeout error",
			err:      NewTimeoutError("query", nil),
			expected: "The operation timed out. Please try again.",
		},
		{
			name:     "Regular error",
			err:      errors.New("regular error"),
			expected: "regular error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := GetUserMessage(tt.err)
			if result != tt.expected {
				t.Errorf("GetUserMessage() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestGetErrorCode(t *testing.T) {
	appError := &AppError{Code: "VALIDATION_FAILED"}
	regularError := errors.New("regular error")

	if GetErrorCode(appError) != "VALIDATION_FAILED" {
		t.Errorf("GetErrorCode should return correct code for AppError")
	}

	if GetErrorCode(regularError) != "UNKNOWN_ERROR" {
		t.Errorf("GetErrorCode should return UNKNOWN_ERROR for regular error")
	}
}

func TestShouldLogError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"Validation error", NewValidationError("invalid input", nil), false},
		{"Range order error", NewRangeOrderError([]string{"startTime is after finishTime"}, nil), false},
		{"Not found error", NewNotFoundError("Participant", "123"), false},
		{"Conflict error", NewStaleVersionError("Participant", "123", 1), false},
		{"Parse error", NewParseError("bad payload", nil), false},
		{"Database error", NewDatabaseError("query", errors.New("timeout")), true},
		{"Timeout error", NewTimeoutError("query", nil), true},
		{"Regular error", errors.New("regular error"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ShouldLogError(tt.err)
			if result != tt.expected {
				t.Errorf("ShouldLogError() = %v, want %v", result, tt.expected)
			}
		})
	}
}
