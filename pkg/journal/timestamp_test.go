package journal

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestParseTimeAcceptsObservedFormats(t *testing.T) {
	stamps := []string{
		"2026-03-09T12:30:45Z",
		"2026-03-09T12:30:45+02:00",
		"2026-03-09T12:30:45.123456",
		"2026-03-09T12:30:45",
	}
	for _, s := range stamps {
		ts, err := ParseTime(s)
		if err != nil {
			t.Fatalf("parse %q: %v", s, err)
		}
		if ts.IsZero() {
			t.Fatalf("parse %q produced zero time", s)
		}
	}

	if _, err := ParseTime("next tuesday"); err == nil {
		t.Fatalf("expected error for junk stamp")
	}
}

func TestTimestampJSONEmptyStringIsZero(t *testing.T) {
	var ts Timestamp
	if err := json.Unmarshal([]byte(`""`), &ts); err != nil {
		t.Fatalf("unmarshal empty: %v", err)
	}
	if !ts.IsZero() {
		t.Fatalf("empty stamp should decode to zero time")
	}

	b, err := json.Marshal(&ts)
	if err != nil {
		t.Fatalf("marshal zero: %v", err)
	}
	if string(b) != `""` {
		t.Fatalf("zero time should encode as empty string, got %s", b)
	}
}

// Entries go to the sync client as values; zero stamps must still encode as
// the empty string the store expects, not time.Time's zero RFC3339 form.
func TestEntryValueEncodesZeroStampsEmpty(t *testing.T) {
	b, err := json.Marshal(Entry{OwnerID: "owner-1", FileID: "f1"})
	if err != nil {
		t.Fatalf("marshal entry: %v", err)
	}
	if !strings.Contains(string(b), `"created_at":""`) {
		t.Fatalf("zero created_at not empty on the wire: %s", b)
	}
	if strings.Contains(string(b), "0001-01-01") {
		t.Fatalf("zero stamp leaked time.Time encoding: %s", b)
	}
}

func TestTimestampJSONRoundTrip(t *testing.T) {
	in := Timestamp{Time: time.Date(2026, 3, 9, 12, 30, 45, 0, time.UTC)}
	b, err := json.Marshal(&in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var out Timestamp
	if err := json.Unmarshal(b, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !out.Equal(in.Time) {
		t.Fatalf("round trip drifted: %v != %v", out.Time, in.Time)
	}
}
