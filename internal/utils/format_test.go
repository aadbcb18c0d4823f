package utils

import (
	"testing"
	"time"
)

func TestTruncateText(t *testing.T) {
	cases := []struct {
		name   string
		input  string
		maxLen int
		want   string
	}{
		{"short text unchanged", "hello", 10, "hello"},
		{"exact length unchanged", "hello", 5, "hello"},
		{"truncated with ellipsis", "hello world", 8, "hello..."},
		{"newlines flattened", "line1\nline2", 20, "line1 line2"},
		{"tiny max", "hello", 3, "..."},
		{"surrounding whitespace trimmed", "  hi  ", 10, "hi"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := TruncateText(tc.input, tc.maxLen); got != tc.want {
				t.Errorf("TruncateText(%q, %d) = %q, want %q", tc.input, tc.maxLen, got, tc.want)
			}
		})
	}
}

func TestFormatCount(t *testing.T) {
	if got := FormatCount(1, "more action"); got != "1 more action" {
		t.Errorf("got %q", got)
	}
	if got := FormatCount(3, "more action"); got != "3 more action(s)" {
		t.Errorf("got %q", got)
	}
}

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		d    time.Duration
		want string
	}{
		{45 * time.Second, "45s"},
		{2 * time.Minute, "2m"},
		{75 * time.Minute, "1h 15m"},
		{3 * time.Hour, "3h"},
		{76 * time.Hour, "3d 4h"},
		{72 * time.Hour, "3d"},
	}

	for _, tc := range cases {
		if got := FormatDuration(tc.d); got != tc.want {
			t.Errorf("FormatDuration(%v) = %q, want %q", tc.d, got, tc.want)
		}
	}
}
