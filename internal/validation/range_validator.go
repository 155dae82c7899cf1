package validation

import (
	"fmt"

	"fact-tracker/internal/domain"
)

// RangeValidator checks that every labeled range a record exposes is ordered.
// Records opt in by implementing domain.RangeProvider.
type RangeValidator struct{}

// NewRangeValidator creates a new range validator
func NewRangeValidator() *RangeValidator {
	return &RangeValidator{}
}

// IsValid reports whether all ranges of the record are ordered.
// Ranges with a missing bound are always valid.
func (rv *RangeValidator) IsValid(record domain.RangeProvider) bool {
	for _, r := range record.RangesToValidate() {
		if !r.Ordered() {
			return false
		}
	}
	return true
}

// Validate returns one "<from> is after <to>" message per violated range, in declaration order
func (rv *RangeValidator) Validate(record domain.RangeProvider) []string {
	var violations []string
	for _, r := range record.RangesToValidate() {
		if !r.Ordered() {
			violations = append(violations, fmt.Sprintf("%s is after %s", r.FromLabel, r.ToLabel))
		}
	}
	return violations
}

// ValidateInto records every violated range on an existing ValidationError
func (rv *RangeValidator) ValidateInto(record domain.RangeProvider, ve *ValidationError) {
	for _, r := range record.RangesToValidate() {
		if !r.Ordered() {
			ve.AddRangeOrderError(r.FromLabel, r.ToLabel)
		}
	}
}
