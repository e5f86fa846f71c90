package models

import (
	"fmt"
	"time"
)

// TimeLayout is the canonical encoding for entity timestamps: ISO-8601
// date and time without zone offset, microsecond precision.
const TimeLayout = "2006-01-02T15:04:05.999999"

// Timestamp is a time.Time that marshals to the canonical layout so the
// persisted document round-trips losslessly.
type Timestamp struct {
	time.Time
}

// Now returns the current wall time truncated to the stored precision.
func Now() Timestamp {
	return Timestamp{time.Now().Truncate(time.Microsecond)}
}

// ParseTimestamp parses a value in the canonical layout.
func ParseTimestamp(s string) (Timestamp, error) {
	t, err := time.ParseInLocation(TimeLayout, s, time.Local)
	if err != nil {
		return Timestamp{}, err
	}
	return Timestamp{t}, nil
}

// String renders the timestamp in the canonical layout.
func (t Timestamp) String() string {
	return t.Format(TimeLayout)
}

// MarshalJSON encodes the timestamp as a canonical-layout JSON string.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.Format(TimeLayout) + `"`), nil
}

// UnmarshalJSON decodes a canonical-layout JSON string.
func (t *Timestamp) UnmarshalJSON(b []byte) error {
	if len(b) < 2 || b[0] != '"' || b[len(b)-1] != '"' {
		return fmt.Errorf("timestamp must be a JSON string, got %s", b)
	}
	parsed, err := ParseTimestamp(string(b[1 : len(b)-1]))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
