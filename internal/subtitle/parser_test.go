package subtitle

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestParseSRT(t *testing.T) {
	content := `1
00:00:01,000 --> 00:00:04,000
Hello, world!

2
00:00:05,500 --> 00:00:08,200
This is a test.
With multiple lines.

3
00:00:10,000 --> 00:00:12,500
Final subtitle.
`
	track, err := ParseSRT(writeFixture(t, "test.srt", content))
	if err != nil {
		t.Fatalf("ParseSRT failed: %v", err)
	}

	if len(track.Entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(track.Entries))
	}

	if track.Entries[0].StartTime != 1*time.Second {
		t.Errorf("entry 0: start = %v, want 1s", track.Entries[0].StartTime)
	}
	if track.Entries[0].EndTime != 4*time.Second {
		t.Errorf("entry 0: end = %v, want 4s", track.Entries[0].EndTime)
	}
	if track.Entries[0].Text != "Hello, world!" {
		t.Errorf("entry 0: text = %q", track.Entries[0].Text)
	}

	if track.Entries[1].StartTime != 5500*time.Millisecond {
		t.Errorf("entry 1: start = %v, want 5.5s", track.Entries[1].StartTime)
	}
	wantText := "This is a test.\nWith multiple lines."
	if track.Entries[1].Text != wantText {
		t.Errorf("entry 1: text = %q, want %q", track.Entries[1].Text, wantText)
	}
}

func TestParseSRTStripsBOM(t *testing.T) {
	content := "\ufeff1\n00:00:01,000 --> 00:00:02,000\nBOM test\n"
	track, err := ParseSRT(writeFixture(t, "bom.srt", content))
	if err != nil {
		t.Fatalf("ParseSRT failed: %v", err)
	}
	if len(track.Entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(track.Entries))
	}
	if track.Entries[0].Text != "BOM test" {
		t.Errorf("text = %q", track.Entries[0].Text)
	}
}

func TestParseVTT(t *testing.T) {
	content := `WEBVTT

NOTE this block is skipped
entirely

1
00:00:01.000 --> 00:00:04.000
Hello, world!

00:05.500 --> 00:08.200
Short timestamps.

00:00:10.000 --> 00:00:12.500
No cue identifier.
`
	track, err := ParseVTT(writeFixture(t, "test.vtt", content))
	if err != nil {
		t.Fatalf("ParseVTT failed: %v", err)
	}

	if len(track.Entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(track.Entries))
	}

	if track.Entries[0].StartTime != 1*time.Second {
		t.Errorf("entry 0: start = %v, want 1s", track.Entries[0].StartTime)
	}
	if track.Entries[1].StartTime != 5500*time.Millisecond {
		t.Errorf("entry 1: start = %v, want 5.5s", track.Entries[1].StartTime)
	}
	if track.Entries[1].Text != "Short timestamps." {
		t.Errorf("entry 1: text = %q", track.Entries[1].Text)
	}
	if track.Entries[2].Text != "No cue identifier." {
		t.Errorf("entry 2: text = %q", track.Entries[2].Text)
	}
}

func TestOpenDispatchesOnExtension(t *testing.T) {
	srt := "1\n00:00:01,000 --> 00:00:02,000\nvia srt\n"
	track, err := Open(writeFixture(t, "a.srt", srt))
	if err != nil {
		t.Fatalf("Open(.srt) failed: %v", err)
	}
	if len(track.Entries) != 1 || track.Entries[0].Text != "via srt" {
		t.Errorf("unexpected srt track: %+v", track.Entries)
	}

	vtt := "WEBVTT\n\n00:00:01.000 --> 00:00:02.000\nvia vtt\n"
	track, err = Open(writeFixture(t, "a.vtt", vtt))
	if err != nil {
		t.Fatalf("Open(.vtt) failed: %v", err)
	}
	if len(track.Entries) != 1 || track.Entries[0].Text != "via vtt" {
		t.Errorf("unexpected vtt track: %+v", track.Entries)
	}

	_, err = Open(writeFixture(t, "a.txt", "not subtitles"))
	if err == nil || !strings.Contains(err.Error(), "unsupported") {
		t.Errorf("expected unsupported format error, got %v", err)
	}
}

func TestWriteSRTRenumbersAndPads(t *testing.T) {
	track := &Track{
		Entries: []Entry{
			{Index: 7, StartTime: 500 * time.Millisecond, EndTime: 2 * time.Second, Text: "first"},
			{Index: 9, StartTime: time.Hour + 2*time.Minute + 3*time.Second, EndTime: time.Hour + 2*time.Minute + 4*time.Second, Text: "second"},
		},
	}

	path := filepath.Join(t.TempDir(), "out.srt")
	if err := WriteSRT(track, path); err != nil {
		t.Fatalf("WriteSRT failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}

	want := "1\n00:00:00,500 --> 00:00:02,000\nfirst\n\n" +
		"2\n01:02:03,000 --> 01:02:04,000\nsecond\n\n"
	if string(data) != want {
		t.Errorf("output = %q, want %q", string(data), want)
	}
}

func TestWriteThenParseSRT(t *testing.T) {
	track := &Track{
		Entries: []Entry{
			{Index: 1, StartTime: time.Second, EndTime: 2500 * time.Millisecond, Text: "round trip"},
		},
	}

	path := filepath.Join(t.TempDir(), "rt.srt")
	if err := WriteSRT(track, path); err != nil {
		t.Fatalf("WriteSRT failed: %v", err)
	}

	parsed, err := ParseSRT(path)
	if err != nil {
		t.Fatalf("ParseSRT failed: %v", err)
	}
	if len(parsed.Entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(parsed.Entries))
	}
	got := parsed.Entries[0]
	if got.StartTime != time.Second || got.EndTime != 2500*time.Millisecond {
		t.Errorf("times = [%v, %v], want [1s, 2.5s]", got.StartTime, got.EndTime)
	}
	if got.Text != "round trip" {
		t.Errorf("text = %q", got.Text)
	}
}
