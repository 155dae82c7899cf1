package validation

import (
	"fact-tracker/internal/domain"
)

const (
	fieldFullName = "fullName"
	fieldEmail    = "email"
)

// ParticipantValidator provides validation for participant operations
type ParticipantValidator struct {
	validator *Validator
}

// NewParticipantValidator creates a new participant validator
func NewParticipantValidator(v *Validator) *ParticipantValidator {
	if v == nil {
		v = NewValidator()
	}
	return &ParticipantValidator{validator: v}
}

// ValidateForRegistration validates a new participant
func (pv *ParticipantValidator) ValidateForRegistration(candidate domain.ParticipantCandidate) error {
	validationError := NewValidationError()

	pv.validateFullName(candidate.FullName, validationError)
	pv.validateEmail(candidate.Email, validationError)

	return validationError.result()
}

// ValidateForUpdate validates the fields a patch supplies
func (pv *ParticipantValidator) ValidateForUpdate(patch domain.ParticipantPatch) error {
	validationError := NewValidationError()

	if patch.FullName != nil {
		pv.validateFullName(*patch.FullName, validationError)
	}
	if patch.Email != nil {
		pv.validateEmail(*patch.Email, validationError)
	}
	if patch.Version != nil && *patch.Version < 0 {
		validationError.AddInvalidValueError(fieldVersion, *patch.Version, "must not be negative")
	}

	return validationError.result()
}

func (pv *ParticipantValidator) validateFullName(name string, ve *ValidationError) {
	if !pv.validator.IsNonEmptyString(name) {
		ve.AddRequiredError(fieldFullName)
		return
	}
	maxLen := pv.validator.FullNameMaxLength()
	if !pv.validator.IsValidStringLength(name, 1, maxLen) {
		ve.AddInvalidLengthError(fieldFullName, name, 1, maxLen)
	}
}

func (pv *ParticipantValidator) validateEmail(email string, ve *ValidationError) {
	if !pv.validator.IsNonEmptyString(email) {
		ve.AddRequiredError(fieldEmail)
		return
	}
	maxLen := pv.validator.EmailMaxLength()
	if !pv.validator.IsValidStringLength(email, 3, maxLen) {
		ve.AddInvalidLengthError(fieldEmail, email, 3, maxLen)
		return
	}
	if !pv.validator.IsValidEmail(email) {
		ve.AddInvalidFormatError(fieldEmail, email, "a valid email address")
	}
}
