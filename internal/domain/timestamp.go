package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// TimestampLayout is the ISO-8601 extended local form used on the wire and in reports.
// Timestamps are always rendered in UTC without an offset.
const TimestampLayout = "2006-01-02T15:04:05.999999999"

// parse layouts in order of preference; the seconds layout also accepts fractional seconds
var timestampParseLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// ParseTimestamp parses an ISO-8601 local date-time (seconds or minute precision) as UTC.
// RFC 3339 values with an explicit offset are accepted and converted to UTC.
func ParseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampParseLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q, expected ISO-8601 date-time such as 2010-01-01T00:00:00", s)
}

// FormatTimestamp renders t in TimestampLayout.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// Timestamp is a time.Time that (un)marshals as an ISO-8601 local date-time in UTC.
type Timestamp time.Time

// NewTimestamp returns a Timestamp pointer for t.
func NewTimestamp(t time.Time) *Timestamp {
	ts := Timestamp(t.UTC())
	return &ts
}

// Time returns the wrapped time in UTC.
func (t Timestamp) Time() time.Time {
	return time.Time(t).UTC()
}

// TimePtr returns the wrapped time, or nil for a nil Timestamp.
func (t *Timestamp) TimePtr() *time.Time {
	if t == nil {
		return nil
	}
	v := t.Time()
	return &v
}

// String implements fmt.Stringer
func (t Timestamp) String() string {
	return FormatTimestamp(time.Time(t))
}

// MarshalJSON implements json.Marshaler
func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON implements json.Unmarshaler
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("timestamp must be a string: %w", err)
	}
	parsed, err := ParseTimestamp(s)
	if err != nil {
		return err
	}
	*t = Timestamp(parsed)
	return nil
}
