package job

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"gifclip/internal/clip"
	"gifclip/internal/fileutil"
	"gifclip/internal/logging"
	"gifclip/internal/subtitle"
	"gifclip/internal/video"
	"gifclip/internal/ytdlp"
)

// VideoFetcher obtains a local copy of the source video.
type VideoFetcher interface {
	FetchVideo(ctx context.Context, url, dir string, best bool) (string, error)
}

// CaptionFetcher obtains a caption track for the source video. A missing
// track is reported as ytdlp.ErrNoCaptions.
type CaptionFetcher interface {
	FetchCaptions(ctx context.Context, url, dir string) (string, error)
}

// Renderer encodes the clip.
type Renderer interface {
	RenderClip(
		ctx context.Context,
		videoPath string,
		window clip.Window,
		outputPath string,
		opts video.RenderOptions,
	) error
}

// Result reports a finished run.
type Result struct {
	JobID      string
	OutputPath string
	Size       int64
	Elapsed    time.Duration
}

// Runner sequences a single clip run: download, resolve subtitles, encode,
// publish. Each stage failure is terminal; nothing is retried.
type Runner struct {
	Fetcher  VideoFetcher
	Captions CaptionFetcher
	Renderer Renderer
	Logger   *logging.Logger
}

func (r *Runner) Run(ctx context.Context, cfg Config) (*Result, error) {
	started := time.Now()

	ws, err := NewWorkspace()
	if err != nil {
		return nil, err
	}
	defer ws.Cleanup()

	log := r.Logger.With("job_id", ws.ID)

	if cfg.Window.IsLong() {
		log.Warnw("clip is longer than recommended",
			"duration", cfg.Window.Duration().String(),
			"recommended_max", (clip.LongClipThreshold * time.Second).String(),
		)
	}

	log.Infow("downloading video",
		"url", cfg.SourceURL,
		"quality", cfg.Quality.String(),
	)
	videoPath, err := r.Fetcher.FetchVideo(
		ctx, cfg.SourceURL, ws.Path("download"), cfg.Quality == QualityBest,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDownload, err)
	}

	subtitlePath, err := r.resolveSubtitles(ctx, log, cfg, ws)
	if err != nil {
		return nil, err
	}

	log.Infow("encoding clip",
		"window", fmt.Sprintf("%s-%s",
			clip.FormatTimestamp(cfg.Window.Start),
			clip.FormatTimestamp(cfg.Window.End)),
		"fps", cfg.FPS,
		"width", cfg.Width,
		"subtitles", subtitlePath != "",
	)

	staged := ws.Path("clip.gif")
	renderOpts := video.RenderOptions{
		FPS:          cfg.FPS,
		Width:        cfg.Width,
		SubtitlePath: subtitlePath,
		SubtitleSize: cfg.SubtitleSize,
	}
	if err := r.Renderer.RenderClip(
		ctx, videoPath, cfg.Window, staged, renderOpts,
	); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncode, err)
	}

	if err := fileutil.MoveFile(staged, cfg.OutputPath); err != nil {
		return nil, fmt.Errorf("%w: publish output: %w", ErrEncode, err)
	}

	var size int64
	if info, err := os.Stat(cfg.OutputPath); err == nil {
		size = info.Size()
	}

	result := &Result{
		JobID:      ws.ID,
		OutputPath: cfg.OutputPath,
		Size:       size,
		Elapsed:    time.Since(started),
	}
	log.Infow("clip complete",
		"output", result.OutputPath,
		"bytes", result.Size,
		"elapsed", result.Elapsed.Round(time.Millisecond).String(),
	)
	return result, nil
}

// resolveSubtitles produces the clip-relative SRT to burn in, or an empty
// path when the run proceeds without subtitles. Only the downloaded branch
// applies the offset rebase; a manual caption is clip-relative by
// construction.
func (r *Runner) resolveSubtitles(
	ctx context.Context,
	log *logging.Logger,
	cfg Config,
	ws *Workspace,
) (string, error) {
	switch cfg.Subtitles.Mode {
	case SubtitlesManual:
		track := subtitle.ManualCaption(
			cfg.Subtitles.Text, cfg.Window.Duration(),
		)
		path := ws.Path("captions.srt")
		if err := subtitle.WriteSRT(track, path); err != nil {
			return "", fmt.Errorf("write manual caption: %w", err)
		}
		log.Infow("using manual caption")
		return path, nil

	case SubtitlesNone:
		return "", nil

	default:
		raw, err := r.Captions.FetchCaptions(
			ctx, cfg.SourceURL, ws.Path("subs"),
		)
		if err != nil {
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			if errors.Is(err, ytdlp.ErrNoCaptions) {
				log.Infow("no captions available, continuing without subtitles")
			} else {
				log.Infow("caption fetch failed, continuing without subtitles",
					"error", err.Error(),
				)
			}
			return "", nil
		}

		track, err := subtitle.Open(raw)
		if err != nil {
			log.Warnw("could not parse caption track, continuing without subtitles",
				"error", err.Error(),
			)
			return "", nil
		}

		rebased := subtitle.Rebase(track, cfg.Window.StartOffset())
		if len(rebased.Entries) == 0 {
			log.Infow("no captions fall inside the clip window")
			return "", nil
		}

		path := ws.Path("captions.srt")
		if err := subtitle.WriteSRT(rebased, path); err != nil {
			return "", fmt.Errorf("write captions: %w", err)
		}
		log.Infow("captions ready", "entries", len(rebased.Entries))
		return path, nil
	}
}
