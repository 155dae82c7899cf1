package cli

import (
	"fmt"

	"fact-tracker/internal/errors"
	"fact-tracker/internal/validation"

	"github.com/rs/zerolog/log"
)

// ErrorHandler provides centralized error handling for command handlers
type ErrorHandler struct{}

// NewErrorHandler creates a new error handler
func NewErrorHandler() *ErrorHandler {
	return &ErrorHandler{}
}

// Handle provides user-friendly error messages prefixed with the failed operation
func (eh *ErrorHandler) Handle(operation string, err error) error {
	if err == nil {
		return nil
	}
	err = normalize(err)

	if _, ok := errors.AsAppError(err); ok {
		eh.log(operation, err)
		return fmt.Errorf("failed to %s: %s", operation, errors.GetUserMessage(err))
	}

	return fmt.Errorf("failed to %s: %w", operation, err)
}

// HandleSimple provides user-friendly error messages without operation context
func (eh *ErrorHandler) HandleSimple(err error) error {
	if err == nil {
		return nil
	}
	err = normalize(err)

	if _, ok := errors.AsAppError(err); ok {
		return fmt.Errorf("%s", errors.GetUserMessage(err))
	}

	return err
}

// IsValidationError checks if an error is a validation or range-order error
func (eh *ErrorHandler) IsValidationError(err error) bool {
	if validation.IsValidationError(err) {
		return true
	}
	return errors.IsErrorType(err, errors.ErrorTypeValidation) || errors.IsErrorType(err, errors.ErrorTypeRangeOrder)
}

// log records server-side failures; caller mistakes are only shown to the user
func (eh *ErrorHandler) log(operation string, err error) {
	if !errors.ShouldLogError(err) {
		return
	}
	log.Error().Err(err).Str("operation", operation).Str("code", errors.GetErrorCode(err)).Msg("command failed")
}

// normalize converts raw validation results into application errors
func normalize(err error) error {
	if _, ok := errors.AsAppError(err); ok {
		return err
	}
	return validation.AsAppError(err)
}
