package json_types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/physiocrm/agenda-period-cache/internal/config"
)

func TestDateTime_UnmarshalJSON(t *testing.T) {
	var dt DateTime
	if err := json.Unmarshal([]byte(`"2024-01-17T10:30:00-03:00"`), &dt); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if dt.Date.Year() != 2024 || dt.Date.Month() != time.January || dt.Date.Day() != 17 {
		t.Errorf("got %v, want 2024-01-17", dt.Date)
	}
	if dt.Date.Location() != config.TimeZone {
		t.Errorf("location: got %v, want %v", dt.Date.Location(), config.TimeZone)
	}
}

func TestDateCodecs_RejectNonStringJSON(t *testing.T) {
	// Число, булево значение или объект вместо даты - ошибка, а не паника
	for _, raw := range []string{`5`, `true`, `{}`, `[]`} {
		var dt DateTime
		if err := json.Unmarshal([]byte(raw), &dt); err == nil {
			t.Errorf("DateTime: expected error for %s", raw)
		}

		var d Date
		if err := json.Unmarshal([]byte(raw), &d); err == nil {
			t.Errorf("Date: expected error for %s", raw)
		}

		var de DateTimeOrEmpty
		if err := json.Unmarshal([]byte(raw), &de); err == nil {
			t.Errorf("DateTimeOrEmpty: expected error for %s", raw)
		}
	}
}

func TestDateTimeOrEmpty_Null(t *testing.T) {
	var de DateTimeOrEmpty
	if err := json.Unmarshal([]byte(`null`), &de); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !de.Date.IsZero() {
		t.Errorf("null must stay a zero date, got %v", de.Date)
	}
}
