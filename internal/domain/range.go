package domain

import "time"

// RangeDescriptor is a labeled pair of optional bounds that must be ordered (From <= To).
type RangeDescriptor struct {
	From      *time.Time
	To        *time.Time
	FromLabel string
	ToLabel   string
}

// NewRange creates a RangeDescriptor.
func NewRange(from, to *time.Time, fromLabel, toLabel string) RangeDescriptor {
	return RangeDescriptor{
		From:      from,
		To:        to,
		FromLabel: fromLabel,
		ToLabel:   toLabel,
	}
}

// Bounded reports whether both bounds are present.
func (r RangeDescriptor) Bounded() bool {
	return r.From != nil && r.To != nil
}

// Ordered reports whether the range satisfies From <= To.
// A range with a missing bound is vacuously ordered.
func (r RangeDescriptor) Ordered() bool {
	if !r.Bounded() {
		return true
	}
	return !r.From.After(*r.To)
}

// RangeProvider is implemented by any record that exposes date ranges for ordering checks.
type RangeProvider interface {
	RangesToValidate() []RangeDescriptor
}
