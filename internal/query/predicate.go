// Package query holds storage-neutral search predicates over execution facts.
package query

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Field names a searchable attribute of an execution fact
type Field string

const (
	FieldExecutorEmail Field = "executor.email"
	FieldDescription   Field = "description"
	FieldFinishTime    Field = "finishTime"
)

// Op is a comparison operator
type Op string

const (
	OpEq  Op = "="
	OpGte Op = ">="
	OpLte Op = "<="
)

// Condition compares one field against a value
type Condition struct {
	Field Field
	Op    Op
	Value interface{}
}

func (c Condition) String() string {
	value := c.Value
	if t, ok := value.(time.Time); ok {
		value = t.UTC().Format(time.RFC3339Nano)
	}
	return fmt.Sprintf("%s %s %v", c.Field, c.Op, value)
}

// Predicate is a conjunction of conditions. The zero value matches every record.
type Predicate struct {
	Conditions []Condition
}

// True returns the identity predicate
func True() Predicate {
	return Predicate{}
}

// Where builds a predicate with a single condition
func Where(field Field, op Op, value interface{}) Predicate {
	return Predicate{Conditions: []Condition{{Field: field, Op: op, Value: value}}}
}

// And returns the conjunction of p and others. Inputs are not modified.
func (p Predicate) And(others ...Predicate) Predicate {
	total := len(p.Conditions)
	for _, o := range others {
		total += len(o.Conditions)
	}
	if total == 0 {
		return True()
	}

	combined := make([]Condition, 0, total)
	combined = append(combined, p.Conditions...)
	for _, o := range others {
		combined = append(combined, o.Conditions...)
	}
	return Predicate{Conditions: combined}
}

// IsTrue reports whether the predicate has no conditions
func (p Predicate) IsTrue() bool {
	return len(p.Conditions) == 0
}

// Equivalent reports whether both predicates hold the same set of conditions regardless of order
func (p Predicate) Equivalent(other Predicate) bool {
	return p.String() == other.String()
}

// String renders the conditions in canonical order
func (p Predicate) String() string {
	if p.IsTrue() {
		return "TRUE"
	}
	parts := make([]string, 0, len(p.Conditions))
	for _, c := range p.Conditions {
		parts = append(parts, c.String())
	}
	sort.Strings(parts)
	return strings.Join(parts, " AND ")
}
