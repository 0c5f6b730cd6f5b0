package subtitle

import (
	"time"
)

// Entry is a single timed caption. Times are relative to whatever the track
// is timed against: the full source video for downloaded captions, the clip
// itself after Rebase or for manual captions.
type Entry struct {
	Index     int
	StartTime time.Duration
	EndTime   time.Duration
	Text      string
}

// Track is an ordered caption sequence. A track belongs to exactly one clip
// run and lives only inside its workspace.
type Track struct {
	Entries []Entry
}
