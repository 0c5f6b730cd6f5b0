package subtitle

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strings"
)

// yt-dlp caption tracks commonly arrive as WebVTT, so both the long and the
// short cue timestamp shapes are accepted.
var (
	vttTimestampRegex = regexp.MustCompile(
		`(\d{2}):(\d{2}):(\d{2})\.(\d{3})\s*-->\s*(\d{2}):(\d{2}):(\d{2})\.(\d{3})`,
	)
	vttShortTimestampRegex = regexp.MustCompile(
		`(\d{2}):(\d{2})\.(\d{3})\s*-->\s*(\d{2}):(\d{2})\.(\d{3})`,
	)
)

// ParseVTT reads a WebVTT file into a Track. NOTE and STYLE blocks are
// skipped; cue identifiers are ignored and entries are renumbered.
func ParseVTT(path string) (*Track, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open VTT file: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	track := &Track{}
	scanner := bufio.NewScanner(file)

	var current *Entry
	var textLines []string
	lineNum := 0

	flush := func() {
		if current != nil && len(textLines) > 0 {
			current.Text = strings.Join(textLines, "\n")
			track.Entries = append(track.Entries, *current)
		}
		current = nil
		textLines = nil
	}

	for scanner.Scan() {
		line := scanner.Text()
		lineNum++

		if lineNum == 1 {
			line = strings.TrimPrefix(line, "\ufeff")
		}

		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, "WEBVTT") {
			continue
		}

		if strings.HasPrefix(trimmed, "NOTE") ||
			strings.HasPrefix(trimmed, "STYLE") {
			for scanner.Scan() {
				lineNum++
				if strings.TrimSpace(scanner.Text()) == "" {
					break
				}
			}
			continue
		}

		if trimmed == "" {
			flush()
			continue
		}

		if matches := vttTimestampRegex.FindStringSubmatch(line); len(matches) == 9 {
			flush()
			start, err := timestampFromFields(
				matches[1], matches[2], matches[3], matches[4],
			)
			if err != nil {
				return nil, fmt.Errorf(
					"invalid start timestamp at line %d: %w", lineNum, err,
				)
			}
			end, err := timestampFromFields(
				matches[5], matches[6], matches[7], matches[8],
			)
			if err != nil {
				return nil, fmt.Errorf(
					"invalid end timestamp at line %d: %w", lineNum, err,
				)
			}
			current = &Entry{
				Index:     len(track.Entries) + 1,
				StartTime: start,
				EndTime:   end,
			}
			continue
		}

		if matches := vttShortTimestampRegex.FindStringSubmatch(line); len(matches) == 7 {
			flush()
			start, err := timestampFromFields(
				"00", matches[1], matches[2], matches[3],
			)
			if err != nil {
				return nil, fmt.Errorf(
					"invalid start timestamp at line %d: %w", lineNum, err,
				)
			}
			end, err := timestampFromFields(
				"00", matches[4], matches[5], matches[6],
			)
			if err != nil {
				return nil, fmt.Errorf(
					"invalid end timestamp at line %d: %w", lineNum, err,
				)
			}
			current = &Entry{
				Index:     len(track.Entries) + 1,
				StartTime: start,
				EndTime:   end,
			}
			continue
		}

		if current != nil {
			textLines = append(textLines, line)
		}
	}

	flush()

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read VTT file: %w", err)
	}

	return track, nil
}
