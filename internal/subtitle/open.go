package subtitle

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Open parses a subtitle file based on its extension.
func Open(path string) (*Track, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".srt":
		return ParseSRT(path)
	case ".vtt":
		return ParseVTT(path)
	default:
		return nil, fmt.Errorf("unsupported subtitle format: %s", ext)
	}
}
