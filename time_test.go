package paylock

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/iov-one/paylock/errors"
)

func TestUnixTimeUnmarshal(t *testing.T) {
	cases := map[string]struct {
		raw      string
		wantTime UnixTime
		wantErr  *errors.Error
	}{
		"zero unix": {
			raw:      "0",
			wantTime: 0,
		},
		"unix time": {
			raw:      "1554465474",
			wantTime: 1554465474,
		},
		"negative unix time": {
			raw:     "-4",
			wantErr: errors.ErrInput,
		},
		"rfc3339 string": {
			raw:      `"2019-04-05T12:00:00Z"`,
			wantTime: UnixTime(time.Date(2019, 4, 5, 12, 0, 0, 0, time.UTC).Unix()),
		},
		"garbage": {
			raw:     `"tomorrow"`,
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var got UnixTime
			err := json.Unmarshal([]byte(tc.raw), &got)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			if tc.wantErr == nil && got != tc.wantTime {
				t.Fatalf("want %d, got %d", tc.wantTime, got)
			}
		})
	}
}

func TestUnixTimeAdd(t *testing.T) {
	base := UnixTime(1000)
	if got := base.Add(24 * time.Hour); got != 1000+86400 {
		t.Fatalf("unexpected time: %d", got)
	}
	if got := base.Add(-time.Second); got != 999 {
		t.Fatalf("unexpected time: %d", got)
	}
	// sub second precision is dropped
	if got := base.Add(1500 * time.Millisecond); got != 1001 {
		t.Fatalf("unexpected time: %d", got)
	}
	if !UnixTime(0).IsZero() || base.IsZero() {
		t.Fatal("invalid zero check")
	}
	if err := UnixTime(-1).Validate(); !errors.ErrState.Is(err) {
		t.Fatalf("negative time must be invalid: %v", err)
	}
}
