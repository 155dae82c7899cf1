package sqlstore

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// dbTimeLayout is fixed width so lexical order equals chronological order
const dbTimeLayout = "2006-01-02T15:04:05.000000000Z"

// FormatTimeForDB formats a time.Time as fixed-width UTC text for SQLite storage
func FormatTimeForDB(t time.Time) string {
	return t.UTC().Format(dbTimeLayout)
}

// ParseTimeFromDB parses a stored timestamp, accepting the storage layout and RFC3339
func ParseTimeFromDB(s string) (time.Time, error) {
	if t, err := time.Parse(dbTimeLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

// nullTime scans a nullable timestamp stored either as text (SQLite) or natively (PostgreSQL)
type nullTime struct {
	Time  time.Time
	Valid bool
}

// Scan implements sql.Scanner
func (nt *nullTime) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		nt.Time, nt.Valid = time.Time{}, false
		return nil
	case time.Time:
		nt.Time, nt.Valid = v.UTC(), true
		return nil
	case string:
		return nt.parse(v)
	case []byte:
		return nt.parse(string(v))
	}
	return fmt.Errorf("cannot scan %T into timestamp", value)
}

// Value implements driver.Valuer
func (nt nullTime) Value() (driver.Value, error) {
	if !nt.Valid {
		return nil, nil
	}
	return FormatTimeForDB(nt.Time), nil
}

func (nt *nullTime) parse(s string) error {
	t, err := ParseTimeFromDB(s)
	if err != nil {
		return err
	}
	nt.Time, nt.Valid = t, true
	return nil
}

// Ptr returns nil for NULL
func (nt nullTime) Ptr() *time.Time {
	if !nt.Valid {
		return nil
	}
	t := nt.Time
	return &t
}
