package query

import (
	"fact-tracker/internal/domain"
)

// Fragment turns one optional part of the criteria into a predicate.
// It returns false when the criteria does not constrain that part.
type Fragment func(criteria domain.FilterCriteria) (Predicate, bool)

// Builder conjoins the predicates of its fragments
type Builder struct {
	fragments []Fragment
}

// NewBuilder creates a builder from the given fragments
func NewBuilder(fragments ...Fragment) *Builder {
	return &Builder{fragments: fragments}
}

// DefaultBuilder creates a builder covering every execution fact filter
func DefaultBuilder() *Builder {
	return NewBuilder(ByExecutorEmail, ByDescription, ByFinishTimeRange)
}

// Build returns the conjunction of all applicable fragments, or True when none applies
func (b *Builder) Build(criteria domain.FilterCriteria) Predicate {
	result := True()
	for _, fragment := range b.fragments {
		if p, ok := fragment(criteria); ok {
			result = result.And(p)
		}
	}
	return result
}

// ByExecutorEmail matches facts whose executor has exactly the given email
func ByExecutorEmail(criteria domain.FilterCriteria) (Predicate, bool) {
	if criteria.ExecutorEmail == nil {
		return Predicate{}, false
	}
	return Where(FieldExecutorEmail, OpEq, *criteria.ExecutorEmail), true
}

// ByDescription matches facts with exactly the given description.
// Surrounding whitespace is significant; stored descriptions are trimmed on write.
func ByDescription(criteria domain.FilterCriteria) (Predicate, bool) {
	if criteria.Description == nil {
		return Predicate{}, false
	}
	return Where(FieldDescription, OpEq, *criteria.Description), true
}

// ByFinishTimeRange matches facts finished within the inclusive range.
// A one-sided range does not constrain the search.
func ByFinishTimeRange(criteria domain.FilterCriteria) (Predicate, bool) {
	from, to, ok := criteria.FinishTimeRange()
	if !ok {
		return Predicate{}, false
	}
	return Where(FieldFinishTime, OpGte, from).And(Where(FieldFinishTime, OpLte, to)), true
}
