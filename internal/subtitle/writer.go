package subtitle

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// WriteSRT writes the track as SubRip text. Entries are renumbered from 1;
// consumers key on order and the timestamp marker, not the source ordinal.
func WriteSRT(track *Track, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create subtitle directory: %w", err)
	}

	var sb strings.Builder
	for i, entry := range track.Entries {
		sb.WriteString(fmt.Sprintf("%d\n", i+1))
		sb.WriteString(fmt.Sprintf("%s --> %s\n",
			FormatSRTTime(entry.StartTime),
			FormatSRTTime(entry.EndTime)))
		sb.WriteString(entry.Text)
		sb.WriteString("\n\n")
	}

	return os.WriteFile(path, []byte(sb.String()), 0644)
}

// FormatSRTTime renders a duration as zero-padded HH:MM:SS,mmm.
func FormatSRTTime(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	millis := int(d.Milliseconds()) % 1000

	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, seconds, millis)
}
