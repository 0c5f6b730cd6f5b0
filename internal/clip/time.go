package clip

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseTimestamp converts a human time expression into whole seconds.
// Accepted shapes: "SS", "MM:SS", "HH:MM:SS". Each field is a base-10
// non-negative integer; leading zeros are decimal, never octal.
func ParseTimestamp(s string) (int, error) {
	fields := strings.Split(s, ":")
	if len(fields) > 3 {
		return 0, fmt.Errorf(
			"invalid time %q: expected SS, MM:SS or HH:MM:SS", s,
		)
	}

	total := 0
	for _, field := range fields {
		n, err := parseField(field)
		if err != nil {
			return 0, fmt.Errorf("invalid time %q: %w", s, err)
		}
		total = total*60 + n
	}
	return total, nil
}

func parseField(field string) (int, error) {
	if field == "" {
		return 0, fmt.Errorf("empty field")
	}
	for _, r := range field {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("non-numeric field %q", field)
		}
	}
	return strconv.Atoi(field)
}

// FormatTimestamp renders whole seconds as zero-padded HH:MM:SS.
func FormatTimestamp(seconds int) string {
	return fmt.Sprintf(
		"%02d:%02d:%02d",
		seconds/3600,
		seconds/60%60,
		seconds%60,
	)
}

// LongClipThreshold is the clip length in seconds above which an advisory
// warning is logged. Processing continues regardless.
const LongClipThreshold = 60

// Window is the [Start, End] range to extract, in seconds relative to the
// source video. Start is always strictly before End.
type Window struct {
	Start int
	End   int
}

// NewWindow validates the start < end invariant.
func NewWindow(start, end int) (Window, error) {
	if start >= end {
		return Window{}, fmt.Errorf(
			"start time %s is not before end time %s",
			FormatTimestamp(start),
			FormatTimestamp(end),
		)
	}
	return Window{Start: start, End: end}, nil
}

// Duration is the length of the clip.
func (w Window) Duration() time.Duration {
	return time.Duration(w.End-w.Start) * time.Second
}

// StartOffset is the clip start as an offset into the source video.
func (w Window) StartOffset() time.Duration {
	return time.Duration(w.Start) * time.Second
}

// IsLong reports whether the clip exceeds the advisory threshold.
func (w Window) IsLong() bool {
	return w.End-w.Start > LongClipThreshold
}
