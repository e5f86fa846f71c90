package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestTimestampRoundTrip(t *testing.T) {
	ts := Timestamp{time.Date(2025, 4, 12, 9, 30, 15, 123456000, time.Local)}

	encoded, err := json.Marshal(ts)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(encoded) != `"2025-04-12T09:30:15.123456"` {
		t.Fatalf("encoded = %s", encoded)
	}

	var decoded Timestamp
	if err := json.Unmarshal(encoded, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !decoded.Equal(ts.Time) {
		t.Fatalf("round trip changed value: %v != %v", decoded, ts)
	}
}

func TestTimestampRejectsNonString(t *testing.T) {
	var ts Timestamp
	if err := json.Unmarshal([]byte(`12345`), &ts); err == nil {
		t.Fatal("expected an error for a numeric timestamp")
	}
}

func TestNowIsStoredPrecision(t *testing.T) {
	ts := Now()
	if ts.Nanosecond()%1000 != 0 {
		t.Fatalf("Now() kept sub-microsecond precision: %v", ts)
	}
}
