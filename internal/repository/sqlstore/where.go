package sqlstore

import (
	"fmt"
	"strings"
	"time"

	"fact-tracker/internal/query"
)

// columns maps predicate fields onto the joined fact/participant select
var columns = map[query.Field]string{
	query.FieldExecutorEmail: "p.email",
	query.FieldDescription:   "f.description",
	query.FieldFinishTime:    "f.finish_time",
}

// WhereBuilder renders a predicate as a SQL WHERE clause with ? placeholders
type WhereBuilder struct {
	dialect    Dialect
	conditions []string
	args       []interface{}
}

// NewWhereBuilder creates a builder that encodes values for the dialect
func NewWhereBuilder(dialect Dialect) *WhereBuilder {
	return &WhereBuilder{dialect: dialect}
}

// AddPredicate appends every condition of the predicate
func (wb *WhereBuilder) AddPredicate(pred query.Predicate) error {
	for _, c := range pred.Conditions {
		column, ok := columns[c.Field]
		if !ok {
			return fmt.Errorf("unsupported filter field %q", c.Field)
		}
		switch c.Op {
		case query.OpEq, query.OpGte, query.OpLte:
		default:
			return fmt.Errorf("unsupported filter operator %q", c.Op)
		}

		wb.conditions = append(wb.conditions, fmt.Sprintf("%s %s ?", column, c.Op))
		wb.args = append(wb.args, wb.value(c.Value))
	}
	return nil
}

// Build returns " WHERE ..." (or "" for no conditions) and the bound arguments
func (wb *WhereBuilder) Build() (string, []interface{}) {
	if len(wb.conditions) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(wb.conditions, " AND "), wb.args
}

func (wb *WhereBuilder) value(v interface{}) interface{} {
	if t, ok := v.(time.Time); ok {
		return wb.dialect.TimeValue(t)
	}
	return v
}
