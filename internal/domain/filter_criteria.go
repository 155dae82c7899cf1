package domain

import "time"

const (
	DefaultPageIndex = 0
	DefaultPageSize  = 50
)

// Labels used when reporting filter range violations.
const (
	FromFinishTimeLabel = "fromFinishTime"
	ToFinishTimeLabel   = "toFinishTime"
)

// FilterCriteria holds optional search constraints plus pagination parameters for execution facts.
type FilterCriteria struct {
	ExecutorEmail  *string    `json:"executorEmail,omitempty"`
	FromFinishTime *Timestamp `json:"fromFinishTime,omitempty"`
	ToFinishTime   *Timestamp `json:"toFinishTime,omitempty"`
	Description    *string    `json:"description,omitempty"`
	PageIndex      *int       `json:"pageIndex,omitempty"`
	PageSize       *int       `json:"pageSize,omitempty"`
}

// ApplyDefaults fills in absent pagination parameters. Explicit values are kept as is.
func (c *FilterCriteria) ApplyDefaults() {
	if c.PageIndex == nil {
		index := DefaultPageIndex
		c.PageIndex = &index
	}
	if c.PageSize == nil {
		size := DefaultPageSize
		c.PageSize = &size
	}
}

// Index returns the page index, falling back to the default.
func (c FilterCriteria) Index() int {
	if c.PageIndex == nil {
		return DefaultPageIndex
	}
	return *c.PageIndex
}

// Size returns the page size, falling back to the default.
func (c FilterCriteria) Size() int {
	if c.PageSize == nil {
		return DefaultPageSize
	}
	return *c.PageSize
}

// FinishTimeRange returns the inclusive finish-time bounds when both are present.
// A one-sided range is reported as absent.
func (c FilterCriteria) FinishTimeRange() (from, to time.Time, ok bool) {
	if c.FromFinishTime == nil || c.ToFinishTime == nil {
		return time.Time{}, time.Time{}, false
	}
	return c.FromFinishTime.Time(), c.ToFinishTime.Time(), true
}

// RangesToValidate implements RangeProvider.
func (c FilterCriteria) RangesToValidate() []RangeDescriptor {
	return []RangeDescriptor{
		NewRange(c.FromFinishTime.TimePtr(), c.ToFinishTime.TimePtr(), FromFinishTimeLabel, ToFinishTimeLabel),
	}
}
