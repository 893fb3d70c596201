package training

import (
	"testing"
	"time"
)

func TestRelative(t *testing.T) {
	now := time.UnixMilli(10_000_000_000)

	tests := []struct {
		name    string
		elapsed int64 // milliseconds before now
		want    string
	}{
		{name: "sub_second", elapsed: 500, want: "just now"},
		{name: "exactly_now", elapsed: 0, want: "just now"},
		{name: "one_second", elapsed: 1_000, want: "1 second ago"},
		{name: "seconds", elapsed: 45_000, want: "45 seconds ago"},
		{name: "one_minute", elapsed: 60_000, want: "1 minute ago"},
		{name: "minutes", elapsed: 150_000, want: "2 minutes ago"},
		{name: "one_hour_with_remainder", elapsed: 3_661_000, want: "1 hour ago"},
		{name: "hours", elapsed: 7_200_000, want: "2 hours ago"},
		{name: "one_day", elapsed: 86_400_000, want: "1 day ago"},
		{name: "days", elapsed: 200_000_000, want: "2 days ago"},
		{name: "future_timestamp_clamped", elapsed: -5_000, want: "just now"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Relative(now, now.UnixMilli()-tt.elapsed)
			if got != tt.want {
				t.Errorf("Relative(%dms) = %q, want %q", tt.elapsed, got, tt.want)
			}
		})
	}
}
