package cli

import (
	"context"
	"fmt"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"gifclip/internal/deps"
	ffmpegbin "gifclip/internal/ffmpeg"
	"gifclip/internal/job"
	"gifclip/internal/logging"
	"gifclip/internal/video"
	"gifclip/internal/ytdlp"
)

var (
	verbose bool
	logger  *logging.Logger

	flagFPS          int
	flagWidth        int
	flagSubtitleSize int
	flagText         string
	flagNoSubs       bool
	flagQuality      bool
)

var rootCmd = &cobra.Command{
	Use:   "gifclip [flags] <video_url> <start_time> <end_time> <output.gif>",
	Short: "Turn a slice of a remote video into an animated GIF",
	Long: `Gifclip downloads a segment of a remote video and renders it as a
palette-optimized animated GIF, optionally burning in subtitles.

Captions are fetched from the video host when available (manually authored
tracks preferred over auto-generated ones) and retimed to the clip window.
A caption passed with --text replaces any downloaded track.

Times accept SS, MM:SS or HH:MM:SS.

Examples:
  gifclip https://www.youtube.com/watch?v=XXXX 1:00 1:05 out.gif
  gifclip -t "hello there" https://youtu.be/XXXX 90 95 out.gif
  gifclip --no-subs --width 480 https://youtu.be/XXXX 0:30 0:40 out.gif`,
	Args:          cobra.ExactArgs(4),
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger = logging.NewLogger(verbose)
	},
	RunE: runRoot,
}

func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		if logger == nil {
			logger = logging.NewLogger(false)
		}
		logger.Errorw("gifclip failed", "error", err.Error())
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().
		BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	rootCmd.Flags().
		IntVarP(&flagFPS, "fps", "f", 15, "Frames per second of the output GIF")
	rootCmd.Flags().
		IntVarP(&flagWidth, "width", "w", 800, "Output width in pixels (height follows aspect ratio)")
	rootCmd.Flags().
		IntVarP(&flagSubtitleSize, "subtitle-size", "s", 24, "Font size for burned-in subtitles")
	rootCmd.Flags().
		StringVarP(&flagText, "text", "t", "", "Manual caption text (overrides downloaded captions)")
	rootCmd.Flags().
		BoolVarP(&flagNoSubs, "no-subs", "n", false, "Skip caption download and embedding")
	rootCmd.Flags().
		BoolVarP(&flagQuality, "quality", "q", false, "Prefer an unrestricted-resolution source (default caps at 720p)")
}

func runRoot(cmd *cobra.Command, args []string) error {
	// Arguments parsed; failures past this point are pipeline errors and
	// should not echo the usage block.
	cmd.SilenceUsage = true

	cfg, err := job.Resolve(args[0], args[1], args[2], args[3], job.Options{
		FPS:          flagFPS,
		Width:        flagWidth,
		SubtitleSize: flagSubtitleSize,
		Text:         flagText,
		NoSubs:       flagNoSubs,
		Quality:      flagQuality,
	})
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(
		context.Background(), syscall.SIGINT, syscall.SIGTERM,
	)
	defer cancel()

	fetcher := ytdlp.New(logger)
	if err := preflight(fetcher); err != nil {
		return err
	}

	runner := &job.Runner{
		Fetcher:  fetcher,
		Captions: fetcher,
		Renderer: video.NewRenderer(logger),
		Logger:   logger,
	}

	result, err := runner.Run(ctx, cfg)
	if err != nil {
		return err
	}

	absOutput, _ := filepath.Abs(result.OutputPath)
	fmt.Printf("Clip written to %s (%s)\n", absOutput, humanSize(result.Size))
	return nil
}

// preflight verifies both external collaborators before any network work,
// naming every tool that is absent. ffmpeg counts as present when it can be
// provisioned into the user cache.
func preflight(fetcher *ytdlp.Client) error {
	missing := deps.Missing(deps.Check([]deps.Requirement{
		{Name: "yt-dlp", Command: fetcher.Binary()},
	}))

	if _, err := ffmpegbin.FFmpegPath(); err != nil {
		missing = append(missing, fmt.Sprintf("ffmpeg (%v)", err))
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", job.ErrDependency, strings.Join(missing, "; "))
	}
	return nil
}

func humanSize(n int64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MiB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KiB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}
