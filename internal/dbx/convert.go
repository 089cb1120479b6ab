package dbx

import (
	"database/sql"
	"fmt"
	"time"
)

// SQLite has no native types for optional floats or timestamps, so the
// repositories store coordinates as nullable REALs and times as RFC 3339
// strings. These helpers keep the conversions in one place.

// NullFloat converts an optional float into its SQL representation.
func NullFloat(p *float64) sql.NullFloat64 {
	if p == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *p, Valid: true}
}

// FloatPtr converts a scanned nullable REAL back into an optional float.
func FloatPtr(n sql.NullFloat64) *float64 {
	if !n.Valid {
		return nil
	}
	v := n.Float64
	return &v
}

// FormatTime renders a timestamp for storage.
func FormatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// ParseTime parses a stored timestamp.
func ParseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse stored timestamp %q: %w", s, err)
	}
	return t, nil
}
