package validation

import (
	"fact-tracker/internal/domain"
)

const (
	fieldExecutorID  = "executorId"
	fieldDescription = "description"
	fieldVersion     = "version"
)

// FactValidator provides validation for execution fact operations
type FactValidator struct {
	validator *Validator
	ranges    *RangeValidator
}

// NewFactValidator creates a new execution fact validator
func NewFactValidator(v *Validator) *FactValidator {
	if v == nil {
		v = NewValidator()
	}
	return &FactValidator{
		validator: v,
		ranges:    NewRangeValidator(),
	}
}

// ValidateForCreation validates a candidate before it is persisted
func (fv *FactValidator) ValidateForCreation(candidate domain.FactCandidate) error {
	validationError := NewValidationError()

	fv.validateExecutorID(candidate.ExecutorID, validationError)
	fv.validateDescription(candidate.Description, validationError)

	if candidate.FinishTime != nil && candidate.StartTime == nil {
		validationError.AddError(domain.StartTimeLabel, ErrorTypeRequired,
			"Start time must be specified if finish time is", nil)
	}

	fv.ranges.ValidateInto(candidate, validationError)

	return validationError.result()
}

// ValidateForUpdate validates the fields a patch supplies and the ranges formed by the patch alone
func (fv *FactValidator) ValidateForUpdate(patch domain.FactPatch) error {
	validationError := NewValidationError()

	if patch.ExecutorID != nil {
		fv.validateExecutorID(*patch.ExecutorID, validationError)
	}
	if patch.Description != nil {
		fv.validateDescription(*patch.Description, validationError)
	}
	if patch.Version != nil && *patch.Version < 0 {
		validationError.AddInvalidValueError(fieldVersion, *patch.Version, "must not be negative")
	}

	fv.ranges.ValidateInto(patch, validationError)

	return validationError.result()
}

// ValidateFact validates a complete execution fact, typically the result of merging a patch
func (fv *FactValidator) ValidateFact(fact domain.ExecutionFact) error {
	validationError := NewValidationError()

	fv.validateExecutorID(fact.Executor.ID, validationError)
	fv.validateDescription(fact.Description, validationError)
	fv.ranges.ValidateInto(fact, validationError)

	return validationError.result()
}

func (fv *FactValidator) validateExecutorID(id string, ve *ValidationError) {
	if !fv.validator.IsNonEmptyString(id) {
		ve.AddRequiredError(fieldExecutorID)
		return
	}
	if !fv.validator.IsValidID(id) {
		ve.AddInvalidFormatError(fieldExecutorID, id, "UUID")
	}
}

func (fv *FactValidator) validateDescription(description string, ve *ValidationError) {
	if !fv.validator.IsNonEmptyString(description) {
		ve.AddRequiredError(fieldDescription)
		return
	}
	maxLen := fv.validator.DescriptionMaxLength()
	if !fv.validator.IsValidStringLength(description, 1, maxLen) {
		ve.AddInvalidLengthError(fieldDescription, description, 1, maxLen)
	}
}
