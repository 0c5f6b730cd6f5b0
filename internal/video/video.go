package video

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	ffmpeg "github.com/u2takey/ffmpeg-go"

	"gifclip/internal/clip"
	ffmpegbin "gifclip/internal/ffmpeg"
	"gifclip/internal/logging"
)

// RenderOptions control the GIF encode.
type RenderOptions struct {
	FPS          int
	Width        int    // output width in pixels, height follows aspect ratio
	SubtitlePath string // SRT to burn in; empty means no subtitles
	SubtitleSize int
}

// Renderer encodes video clips as animated GIFs using ffmpeg.
type Renderer struct {
	logger *logging.Logger
}

func NewRenderer(logger *logging.Logger) *Renderer {
	return &Renderer{logger: logger}
}

// RenderClip extracts the window from videoPath and writes a
// palette-optimized GIF to outputPath. Two passes: palettegen over the
// trimmed, filtered frames, then paletteuse against that palette. The
// palette file is written next to outputPath, so callers should point
// outputPath into a scratch directory and publish the result themselves.
func (r *Renderer) RenderClip(
	ctx context.Context,
	videoPath string,
	window clip.Window,
	outputPath string,
	opts RenderOptions,
) error {
	if _, err := os.Stat(videoPath); os.IsNotExist(err) {
		return fmt.Errorf("video file not found: %s", videoPath)
	}

	ffmpegPath, err := ffmpegbin.FFmpegPath()
	if err != nil {
		return err
	}

	palettePath := filepath.Join(filepath.Dir(outputPath), "palette.png")

	input := ffmpeg.KwArgs{
		"ss": window.Start,
		"t":  window.End - window.Start,
	}

	// Both passes must see identical frames, so the trim and filter chain
	// is rebuilt per pass rather than shared.
	frames := func() *ffmpeg.Stream {
		stream := ffmpeg.Input(videoPath, input).
			Filter("fps", ffmpeg.Args{strconv.Itoa(opts.FPS)}).
			Filter("scale",
				ffmpeg.Args{fmt.Sprintf("%d:-1", opts.Width)},
				ffmpeg.KwArgs{"flags": "lanczos"},
			)
		if opts.SubtitlePath != "" {
			stream = stream.Filter("subtitles",
				ffmpeg.Args{opts.SubtitlePath},
				ffmpeg.KwArgs{"force_style": ForceStyle(opts.SubtitleSize)},
			)
		}
		return stream
	}

	r.logger.Debugw("generating palette",
		"video", videoPath,
		"palette", palettePath,
	)

	palettePass := frames().
		Filter("palettegen", ffmpeg.Args{},
			ffmpeg.KwArgs{"stats_mode": "diff"}).
		Output(palettePath).
		OverWriteOutput().
		SetFfmpegPath(ffmpegPath)
	if err := runStream(ctx, palettePass); err != nil {
		return fmt.Errorf("palette pass failed: %w", err)
	}

	r.logger.Debugw("encoding gif",
		"output", outputPath,
		"fps", opts.FPS,
		"width", opts.Width,
	)

	palette := ffmpeg.Input(palettePath)
	encodePass := ffmpeg.Filter(
		[]*ffmpeg.Stream{frames(), palette},
		"paletteuse",
		ffmpeg.Args{},
		ffmpeg.KwArgs{"dither": "bayer:bayer_scale=5"},
	).
		Output(outputPath).
		OverWriteOutput().
		SetFfmpegPath(ffmpegPath)
	if err := runStream(ctx, encodePass); err != nil {
		return fmt.Errorf("gif encode failed: %w", err)
	}

	return nil
}

// runStream executes the compiled ffmpeg invocation under ctx, so an
// interrupt kills a running encode instead of letting it finish.
func runStream(ctx context.Context, stream *ffmpeg.Stream) error {
	compiled := stream.Compile()

	cmd := exec.CommandContext(ctx, compiled.Path, compiled.Args[1:]...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if detail := strings.TrimSpace(stderr.String()); detail != "" {
			return fmt.Errorf("ffmpeg failed: %w: %s", err, detail)
		}
		return fmt.Errorf("ffmpeg failed: %w", err)
	}
	return nil
}

// ForceStyle renders the fixed burn-in style: white text with a black
// outline on a semi-transparent band, anchored to the bottom with a fixed
// margin. Only the font size varies.
func ForceStyle(fontSize int) string {
	return fmt.Sprintf(
		"FontSize=%d,PrimaryColour=&H00FFFFFF,OutlineColour=&H00000000,"+
			"BackColour=&H80000000,BorderStyle=4,Outline=1,Shadow=0,"+
			"Alignment=2,MarginV=16",
		fontSize,
	)
}
