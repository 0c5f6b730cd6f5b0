package subtitle

import (
	"time"
)

// ManualCaption builds a single-entry track spanning the whole clip, carrying
// the supplied text verbatim on one line. The result is already clip-relative
// (00:00:00,000 through the clip duration) and must not be passed through
// Rebase.
func ManualCaption(text string, duration time.Duration) *Track {
	return &Track{
		Entries: []Entry{
			{
				Index:     1,
				StartTime: 0,
				EndTime:   duration,
				Text:      text,
			},
		},
	}
}
