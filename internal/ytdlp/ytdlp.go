package ytdlp

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"gifclip/internal/logging"
)

// ErrNoCaptions reports that the source video has no usable caption track.
// It is an expected outcome, not a failure: callers degrade to rendering
// without subtitles.
var ErrNoCaptions = errors.New("no captions available")

const defaultBinary = "yt-dlp"

// Client drives the local yt-dlp binary.
type Client struct {
	binaryPath string
	logger     *logging.Logger
}

// New builds a client. GIFCLIP_YTDLP_PATH overrides the binary location;
// otherwise yt-dlp is expected on PATH.
func New(logger *logging.Logger) *Client {
	binary := defaultBinary
	if path := os.Getenv("GIFCLIP_YTDLP_PATH"); path != "" {
		binary = path
	}
	return &Client{binaryPath: binary, logger: logger}
}

// Binary returns the command the client will invoke.
func (c *Client) Binary() string {
	return c.binaryPath
}

// FormatSelector maps the quality preference to a yt-dlp format expression.
// The default caps the source at 720p; best removes the cap.
func FormatSelector(best bool) string {
	if best {
		return "bestvideo+bestaudio/best"
	}
	return "bestvideo[height<=720]+bestaudio/best[height<=720]/best"
}

// FetchVideo downloads url into dir and returns the local media file path.
func (c *Client) FetchVideo(
	ctx context.Context,
	url, dir string,
	best bool,
) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create download directory: %w", err)
	}

	args := []string{
		"-f", FormatSelector(best),
		"--merge-output-format", "mp4",
		"--no-playlist",
		"--no-warnings",
		"-o", filepath.Join(dir, "source.%(ext)s"),
		url,
	}

	if err := c.run(ctx, args); err != nil {
		return "", err
	}

	path, err := findDownload(dir)
	if err != nil {
		return "", err
	}
	return path, nil
}

// FetchCaptions downloads an English caption track for url into dir.
// Manually authored captions are preferred; auto-generated captions are the
// fallback. Any failure to produce a track reports ErrNoCaptions.
func (c *Client) FetchCaptions(
	ctx context.Context,
	url, dir string,
) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create caption directory: %w", err)
	}

	for _, flag := range []string{"--write-subs", "--write-auto-subs"} {
		args := []string{
			flag,
			"--skip-download",
			"--sub-langs", "en.*",
			"--convert-subs", "srt",
			"--no-playlist",
			"--no-warnings",
			"-o", filepath.Join(dir, "captions.%(ext)s"),
			url,
		}

		if err := c.run(ctx, args); err != nil {
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			c.logger.Debugw("caption fetch attempt failed",
				"flag", flag,
				"error", err.Error(),
			)
			continue
		}

		if path, ok := findCaptionFile(dir); ok {
			return path, nil
		}
	}

	return "", ErrNoCaptions
}

func (c *Client) run(ctx context.Context, args []string) error {
	cmd := exec.CommandContext(ctx, c.binaryPath, args...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	c.logger.Debugw("invoking yt-dlp", "args", strings.Join(args, " "))

	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail != "" {
			return fmt.Errorf("yt-dlp failed: %w: %s", err, detail)
		}
		return fmt.Errorf("yt-dlp failed: %w", err)
	}
	return nil
}

// findDownload locates the downloaded media file. yt-dlp substitutes the
// real extension for %(ext)s, so the name is only known after the run.
func findDownload(dir string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "source.*"))
	if err != nil {
		return "", err
	}
	for _, match := range matches {
		if strings.HasSuffix(match, ".part") ||
			strings.HasSuffix(match, ".ytdl") {
			continue
		}
		return match, nil
	}
	return "", fmt.Errorf("yt-dlp reported success but no media file found in %s", dir)
}

// findCaptionFile picks the fetched caption track, preferring the converted
// SRT over a raw VTT.
func findCaptionFile(dir string) (string, bool) {
	for _, ext := range []string{".srt", ".vtt"} {
		matches, err := filepath.Glob(filepath.Join(dir, "captions*"+ext))
		if err == nil && len(matches) > 0 {
			return matches[0], true
		}
	}
	return "", false
}
