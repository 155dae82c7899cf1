package validation

import (
	"fmt"

	"fact-tracker/internal/domain"
)

const (
	fieldExecutorEmail = "executorEmail"
	fieldPageIndex     = "pageIndex"
	fieldPageSize      = "pageSize"
)

// FilterValidator validates search criteria before defaults are applied
type FilterValidator struct {
	validator *Validator
	ranges    *RangeValidator
}

// NewFilterValidator creates a new filter criteria validator
func NewFilterValidator(v *Validator) *FilterValidator {
	if v == nil {
		v = NewValidator()
	}
	return &FilterValidator{
		validator: v,
		ranges:    NewRangeValidator(),
	}
}

// Validate checks caller-supplied criteria against the configured page size ceiling.
// It must run before ApplyDefaults so only explicit values are judged.
func (fv *FilterValidator) Validate(criteria domain.FilterCriteria) error {
	return fv.ValidateWithMaxPageSize(criteria, fv.validator.MaxPageSize())
}

// ValidateWithMaxPageSize is Validate with an explicit page size ceiling
func (fv *FilterValidator) ValidateWithMaxPageSize(criteria domain.FilterCriteria, maxPageSize int) error {
	validationError := NewValidationError()

	if criteria.PageSize != nil {
		size := *criteria.PageSize
		switch {
		case size > maxPageSize:
			validationError.AddError(fieldPageSize, ErrorTypeInvalidValue,
				fmt.Sprintf("%s: must be less than or equal to %d", fieldPageSize, maxPageSize), size)
		case size <= 0:
			validationError.AddError(fieldPageSize, ErrorTypeInvalidValue,
				fmt.Sprintf("%s: must be greater than 0", fieldPageSize), size)
		}
	}

	if criteria.PageIndex != nil && *criteria.PageIndex < 0 {
		validationError.AddError(fieldPageIndex, ErrorTypeInvalidValue,
			fmt.Sprintf("%s: must be greater than or equal to 0", fieldPageIndex), *criteria.PageIndex)
	}

	if criteria.ExecutorEmail != nil && !fv.validator.IsValidEmail(*criteria.ExecutorEmail) {
		validationError.AddInvalidFormatError(fieldExecutorEmail, *criteria.ExecutorEmail, "a valid email address")
	}

	if criteria.Description != nil {
		maxLen := fv.validator.DescriptionMaxLength()
		if !fv.validator.IsValidStringLength(*criteria.Description, 1, maxLen) {
			validationError.AddInvalidLengthError(fieldDescription, *criteria.Description, 1, maxLen)
		}
	}

	fv.ranges.ValidateInto(criteria, validationError)

	return validationError.result()
}
