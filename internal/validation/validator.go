package validation

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"fact-tracker/internal/config"

	"github.com/google/uuid"
)

// emailPattern follows the HTML living standard definition of a valid e-mail address.
var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9.!#$%&'*+/=?^_` + "`" + `{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$`)

// Validator provides common validation utilities
type Validator struct {
	config *config.Config
}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{
		config: nil, // Use defaults
	}
}

// NewValidatorWithConfig creates a new validator instance with configuration
func NewValidatorWithConfig(cfg *config.Config) *Validator {
	return &Validator{
		config: cfg,
	}
}

// IsNonEmptyString checks if a string is not empty after trimming whitespace
func (v *Validator) IsNonEmptyString(s string) bool {
	return strings.TrimSpace(s) != ""
}

// IsValidStringLength checks if the character count of a trimmed string is within the specified range
func (v *Validator) IsValidStringLength(s string, min, max int) bool {
	length := utf8.RuneCountInString(strings.TrimSpace(s))
	return length >= min && length <= max
}

// IsValidEmail checks both the length limit and the address format
func (v *Validator) IsValidEmail(email string) bool {
	if !v.IsValidStringLength(email, 3, v.EmailMaxLength()) {
		return false
	}
	return emailPattern.MatchString(strings.TrimSpace(email))
}

// IsValidID checks that an identifier is a canonical UUID
func (v *Validator) IsValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// TrimAndValidateString trims whitespace from a string
func (v *Validator) TrimAndValidateString(s string) string {
	return strings.TrimSpace(s)
}

// DescriptionMaxLength returns the configured description limit
func (v *Validator) DescriptionMaxLength() int {
	if v.config != nil && v.config.Validation.DescriptionMaxLength > 0 {
		return v.config.Validation.DescriptionMaxLength
	}
	return 500
}

// FullNameMaxLength returns the configured full name limit
func (v *Validator) FullNameMaxLength() int {
	if v.config != nil && v.config.Validation.FullNameMaxLength > 0 {
		return v.config.Validation.FullNameMaxLength
	}
	return 100
}

// EmailMaxLength returns the configured email limit
func (v *Validator) EmailMaxLength() int {
	if v.config != nil && v.config.Validation.EmailMaxLength > 0 {
		return v.config.Validation.EmailMaxLength
	}
	return 320
}

// MaxPageSize returns the configured page size ceiling
func (v *Validator) MaxPageSize() int {
	if v.config != nil && v.config.Pagination.MaxPageSize > 0 {
		return v.config.Pagination.MaxPageSize
	}
	return 100
}
