package job

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"gifclip/internal/clip"
)

// Quality selects the source format cap.
type Quality int

const (
	QualityStandard Quality = iota // capped at 720p
	QualityBest                    // unrestricted resolution
)

func (q Quality) String() string {
	if q == QualityBest {
		return "best"
	}
	return "standard"
}

// SubtitleMode names the caption source branch.
type SubtitleMode int

const (
	SubtitlesDownloaded SubtitleMode = iota
	SubtitlesManual
	SubtitlesNone
)

// SubtitleSource is the caption branch for a run, chosen once at resolve
// time and never re-decided downstream. Manual text always wins over the
// downloaded path; --no-subs is irrelevant when manual text is present.
type SubtitleSource struct {
	Mode SubtitleMode
	Text string // manual caption text, set only when Mode is SubtitlesManual
}

// Options is the raw flag surface prior to validation.
type Options struct {
	FPS          int
	Width        int
	SubtitleSize int
	Text         string
	NoSubs       bool
	Quality      bool
}

// Config is the validated, immutable description of one clip run.
type Config struct {
	SourceURL    string
	Window       clip.Window
	OutputPath   string
	FPS          int
	Width        int
	SubtitleSize int
	Subtitles    SubtitleSource
	Quality      Quality
}

var videoHosts = map[string]bool{
	"youtube.com":       true,
	"www.youtube.com":   true,
	"m.youtube.com":     true,
	"music.youtube.com": true,
	"youtu.be":          true,
}

// Resolve validates the positional arguments and options into a Config.
// Checks run in a fixed order and the first failure wins: URL shape, start
// time, end time, window ordering, output extension.
func Resolve(rawURL, start, end, output string, opts Options) (Config, error) {
	if err := validateURL(rawURL); err != nil {
		return Config{}, err
	}

	startSec, err := clip.ParseTimestamp(start)
	if err != nil {
		return Config{}, fmt.Errorf("%w: start: %w", ErrValidation, err)
	}
	endSec, err := clip.ParseTimestamp(end)
	if err != nil {
		return Config{}, fmt.Errorf("%w: end: %w", ErrValidation, err)
	}

	window, err := clip.NewWindow(startSec, endSec)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	if !strings.EqualFold(filepath.Ext(output), ".gif") {
		return Config{}, fmt.Errorf(
			"%w: output path %q must end in .gif", ErrValidation, output,
		)
	}

	quality := QualityStandard
	if opts.Quality {
		quality = QualityBest
	}

	return Config{
		SourceURL:    rawURL,
		Window:       window,
		OutputPath:   output,
		FPS:          opts.FPS,
		Width:        opts.Width,
		SubtitleSize: opts.SubtitleSize,
		Subtitles:    resolveSubtitleSource(opts),
		Quality:      quality,
	}, nil
}

func resolveSubtitleSource(opts Options) SubtitleSource {
	switch {
	case opts.Text != "":
		return SubtitleSource{Mode: SubtitlesManual, Text: opts.Text}
	case opts.NoSubs:
		return SubtitleSource{Mode: SubtitlesNone}
	default:
		return SubtitleSource{Mode: SubtitlesDownloaded}
	}
}

func validateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") ||
		!videoHosts[u.Host] {
		return fmt.Errorf(
			"%w: %q is not a recognized video URL", ErrValidation, raw,
		)
	}
	return nil
}
