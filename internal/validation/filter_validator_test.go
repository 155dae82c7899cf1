package validation

import (
	"strings"
	"testing"

	"fact-tracker/internal/config"
	"fact-tracker/internal/domain"
	apperrors "fact-tracker/internal/errors"
)

func intPtr(i int) *int {
	return &i
}

func TestFilterValidator_Validate(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Pagination.MaxPageSize = 100
	fv := NewFilterValidator(NewValidatorWithConfig(cfg))

	tests := []struct {
		name            string
		criteria        domain.FilterCriteria
		expectedFields  []string
		expectedMessage string
		expectedType    apperrors.ErrorType
	}{
		{name: "empty criteria", criteria: domain.FilterCriteria{}},
		{name: "size at maximum", criteria: domain.FilterCriteria{PageSize: intPtr(100)}},
		{
			name:            "size above maximum",
			criteria:        domain.FilterCriteria{PageSize: intPtr(101)},
			expectedFields:  []string{"pageSize"},
			expectedMessage: "pageSize: must be less than or equal to 100",
			expectedType:    apperrors.ErrorTypeValidation,
		},
		{
			name:           "zero size",
			criteria:       domain.FilterCriteria{PageSize: intPtr(0)},
			expectedFields: []string{"pageSize"},
			expectedType:   apperrors.ErrorTypeValidation,
		},
		{
			name:           "negative index",
			criteria:       domain.FilterCriteria{PageIndex: intPtr(-1)},
			expectedFields: []string{"pageIndex"},
			expectedType:   apperrors.ErrorTypeValidation,
		},
		{
			name:           "malformed email",
			criteria:       domain.FilterCriteria{ExecutorEmail: strPtr("nobody")},
			expectedFields: []string{"executorEmail"},
			expectedType:   apperrors.ErrorTypeValidation,
		},
		{
			name:           "blank description",
			criteria:       domain.FilterCriteria{Description: strPtr(" ")},
			expectedFields: []string{"description"},
			expectedType:   apperrors.ErrorTypeValidation,
		},
		{
			name:            "reversed finish time range",
			criteria:        domain.FilterCriteria{FromFinishTime: ts(12), ToFinishTime: ts(11)},
			expectedFields:  []string{"fromFinishTime"},
			expectedMessage: "fromFinishTime is after toFinishTime",
			expectedType:    apperrors.ErrorTypeRangeOrder,
		},
		{
			name:     "one-sided range is not checked",
			criteria: domain.FilterCriteria{FromFinishTime: ts(12)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := fv.Validate(tt.criteria)

			if len(tt.expectedFields) == 0 {
				if err != nil {
					t.Errorf("Validate() error = %v, expected nil", err)
				}
				return
			}

			if got := strings.Join(fieldsOf(err), ","); got != strings.Join(tt.expectedFields, ",") {
				t.Errorf("Validate() fields = %q, expected %v", got, tt.expectedFields)
			}
			appErr, ok := apperrors.AsAppError(AsAppError(err))
			if !ok || appErr.Type != tt.expectedType {
				t.Fatalf("Validate() converted error = %v, expected type %v", appErr, tt.expectedType)
			}
			if tt.expectedMessage != "" && appErr.Details[0] != tt.expectedMessage {
				t.Errorf("Details[0] = %q, expected %q", appErr.Details[0], tt.expectedMessage)
			}
		})
	}
}

func TestFilterValidator_ValidateWithMaxPageSize(t *testing.T) {
	fv := NewFilterValidator(nil)

	if err := fv.ValidateWithMaxPageSize(domain.FilterCriteria{PageSize: intPtr(10)}, 5); err == nil {
		t.Error("ValidateWithMaxPageSize() expected error when size exceeds explicit ceiling")
	}

	criteria := domain.FilterCriteria{}
	if err := fv.ValidateWithMaxPageSize(criteria, 10); err != nil {
		t.Fatalf("ValidateWithMaxPageSize() error = %v", err)
	}
	criteria.ApplyDefaults()
	if criteria.Size() != domain.DefaultPageSize {
		t.Errorf("defaulted size = %d, defaults are not re-checked against the ceiling", criteria.Size())
	}
}
