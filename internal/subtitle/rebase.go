package subtitle

import (
	"time"
)

// Rebase shifts a track timed against the full-length source video so it is
// timed against a clip starting at offset. Entries that end at or before the
// clip start are dropped; entries straddling the leading edge keep their end
// time and have their start clamped to zero. Text is never modified.
//
// Rebase is pure: the input track is left untouched and any well-formed
// track with a non-negative offset yields entries with 0 <= start <= end.
func Rebase(track *Track, offset time.Duration) *Track {
	out := &Track{}
	for _, entry := range track.Entries {
		start := entry.StartTime - offset
		end := entry.EndTime - offset
		if end <= 0 {
			continue
		}
		if start < 0 {
			start = 0
		}
		out.Entries = append(out.Entries, Entry{
			Index:     len(out.Entries) + 1,
			StartTime: start,
			EndTime:   end,
			Text:      entry.Text,
		})
	}
	return out
}
