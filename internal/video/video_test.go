package video

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

func TestRunStreamStopsOnCancelledContext(t *testing.T) {
	dir := t.TempDir()
	stub := filepath.Join(dir, "ffmpeg")
	if err := os.WriteFile(stub, []byte("#!/bin/sh\nsleep 5\n"), 0755); err != nil {
		t.Fatalf("write stub: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	stream := ffmpeg.Input(filepath.Join(dir, "in.mp4")).
		Output(filepath.Join(dir, "out.gif")).
		OverWriteOutput().
		SetFfmpegPath(stub)

	if err := runStream(ctx, stream); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestForceStyle(t *testing.T) {
	style := ForceStyle(24)

	if !strings.Contains(style, "FontSize=24") {
		t.Errorf("style %q missing font size", style)
	}
	// white text, black outline, translucent band, bottom anchored
	for _, want := range []string{
		"PrimaryColour=&H00FFFFFF",
		"OutlineColour=&H00000000",
		"BackColour=&H80000000",
		"BorderStyle=4",
		"Alignment=2",
		"MarginV=16",
	} {
		if !strings.Contains(style, want) {
			t.Errorf("style %q missing %q", style, want)
		}
	}
}

func TestForceStyleVariesOnlyFontSize(t *testing.T) {
	a := ForceStyle(24)
	b := ForceStyle(32)

	if a == b {
		t.Error("font size should change the style string")
	}
	if strings.Replace(b, "FontSize=32", "FontSize=24", 1) != a {
		t.Error("only the font size may differ between styles")
	}
}
