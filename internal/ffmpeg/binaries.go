package ffmpeg

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"
)

// Resolution order: GIFCLIP_FFMPEG_PATH / GIFCLIP_FFPROBE_PATH environment
// overrides, then PATH, then a per-user cached download of the ffbinaries
// release.
const (
	releaseVersion = "6.1"
	releaseBaseURL = "https://github.com/ffbinaries/ffbinaries-prebuilt/releases/download"
)

// BinaryPaths holds the resolved ffmpeg and ffprobe locations.
type BinaryPaths struct {
	FFmpeg  string
	FFprobe string
}

var (
	ensureOnce sync.Once
	ensureErr  error
	ensured    BinaryPaths
)

// Ensure resolves (provisioning if necessary) the ffmpeg and ffprobe
// binaries. The result is memoized for the life of the process.
func Ensure() (BinaryPaths, error) {
	ensureOnce.Do(func() {
		ensured, ensureErr = resolve()
	})
	return ensured, ensureErr
}

// FFmpegPath returns the resolved ffmpeg binary path.
func FFmpegPath() (string, error) {
	paths, err := Ensure()
	if err != nil {
		return "", err
	}
	return paths.FFmpeg, nil
}

// FFprobePath returns the resolved ffprobe binary path.
func FFprobePath() (string, error) {
	paths, err := Ensure()
	if err != nil {
		return "", err
	}
	return paths.FFprobe, nil
}

func resolve() (BinaryPaths, error) {
	paths := locate()
	if paths.FFmpeg != "" && paths.FFprobe != "" {
		return paths, nil
	}

	installed, err := install()
	if err != nil {
		return BinaryPaths{}, err
	}
	if paths.FFmpeg == "" {
		paths.FFmpeg = installed.FFmpeg
	}
	if paths.FFprobe == "" {
		paths.FFprobe = installed.FFprobe
	}
	return paths, nil
}

// locate checks the environment overrides and PATH.
func locate() BinaryPaths {
	paths := BinaryPaths{
		FFmpeg:  os.Getenv("GIFCLIP_FFMPEG_PATH"),
		FFprobe: os.Getenv("GIFCLIP_FFPROBE_PATH"),
	}
	if paths.FFmpeg == "" {
		if found, err := exec.LookPath("ffmpeg"); err == nil {
			paths.FFmpeg = found
		}
	}
	if paths.FFprobe == "" {
		if found, err := exec.LookPath("ffprobe"); err == nil {
			paths.FFprobe = found
		}
	}
	return paths
}

// install downloads the platform release into the user cache and returns the
// extracted binary paths. Reuses a previous extraction when present.
func install() (BinaryPaths, error) {
	assetName, err := assetForPlatform(runtime.GOOS, runtime.GOARCH)
	if err != nil {
		return BinaryPaths{}, err
	}

	cacheDir, err := os.UserCacheDir()
	if err != nil || cacheDir == "" {
		cacheDir = os.TempDir()
	}
	installDir := filepath.Join(
		cacheDir,
		"gifclip",
		"ffmpeg",
		releaseVersion,
		runtime.GOOS,
		runtime.GOARCH,
	)
	suffix := executableSuffix()
	paths := BinaryPaths{
		FFmpeg:  filepath.Join(installDir, "ffmpeg"+suffix),
		FFprobe: filepath.Join(installDir, "ffprobe"+suffix),
	}

	if binariesExist(paths) {
		return paths, nil
	}

	if err := os.MkdirAll(installDir, 0o755); err != nil {
		return BinaryPaths{}, fmt.Errorf("create ffmpeg cache dir: %w", err)
	}

	if err := download(assetName, installDir); err != nil {
		return BinaryPaths{}, err
	}

	if !binariesExist(paths) {
		return BinaryPaths{}, errors.New("ffmpeg binaries not found after extraction")
	}

	if runtime.GOOS != "windows" {
		if err := os.Chmod(paths.FFmpeg, 0o755); err != nil {
			return BinaryPaths{}, fmt.Errorf("chmod ffmpeg: %w", err)
		}
		if err := os.Chmod(paths.FFprobe, 0o755); err != nil {
			return BinaryPaths{}, fmt.Errorf("chmod ffprobe: %w", err)
		}
	}

	return paths, nil
}

func assetForPlatform(goos, goarch string) (string, error) {
	switch {
	case goos == "linux" && goarch == "amd64":
		return "ffmpeg-" + releaseVersion + "-linux-64.zip", nil
	case goos == "linux" && goarch == "arm64":
		return "ffmpeg-" + releaseVersion + "-linux-arm-64.zip", nil
	case goos == "darwin" && goarch == "amd64":
		return "ffmpeg-" + releaseVersion + "-macos-64.zip", nil
	case goos == "windows" && goarch == "amd64":
		return "ffmpeg-" + releaseVersion + "-win-64.zip", nil
	default:
		return "", fmt.Errorf("no prebuilt ffmpeg for platform %s/%s", goos, goarch)
	}
}

func download(assetName, installDir string) error {
	url := fmt.Sprintf("%s/v%s/%s", releaseBaseURL, releaseVersion, assetName)
	client := &http.Client{Timeout: 5 * time.Minute}
	resp, err := client.Get(url)
	if err != nil {
		return fmt.Errorf("download ffmpeg bundle: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download ffmpeg bundle: unexpected status %s", resp.Status)
	}

	tmpFile, err := os.CreateTemp("", "gifclip-ffmpeg-*.zip")
	if err != nil {
		return fmt.Errorf("create temp archive: %w", err)
	}
	archivePath := tmpFile.Name()
	defer func() {
		_ = os.Remove(archivePath)
	}()

	if _, err := io.Copy(tmpFile, resp.Body); err != nil {
		_ = tmpFile.Close()
		return fmt.Errorf("write archive: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("close archive: %w", err)
	}

	if err := extractArchive(archivePath, installDir); err != nil {
		return fmt.Errorf("extract %s: %w", assetName, err)
	}
	return nil
}

func extractArchive(archivePath, installDir string) error {
	zipReader, err := zip.OpenReader(archivePath)
	if err != nil {
		return fmt.Errorf("open ffmpeg archive: %w", err)
	}
	defer func() {
		_ = zipReader.Close()
	}()

	found := map[string]bool{}
	for _, file := range zipReader.File {
		name := strings.ToLower(filepath.Base(file.Name))
		base := strings.TrimSuffix(name, ".exe")
		if base != "ffmpeg" && base != "ffprobe" {
			continue
		}
		dest := filepath.Join(installDir, base+executableSuffix())
		if err := extractZipFile(file, dest); err != nil {
			return err
		}
		found[base] = true
	}

	if !found["ffmpeg"] || !found["ffprobe"] {
		return errors.New("ffmpeg archive missing required binaries")
	}
	return nil
}

func extractZipFile(file *zip.File, dest string) error {
	reader, err := file.Open()
	if err != nil {
		return fmt.Errorf("open ffmpeg archive entry: %w", err)
	}
	defer func() {
		_ = reader.Close()
	}()

	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("create ffmpeg binary: %w", err)
	}
	defer func() {
		_ = out.Close()
	}()

	if _, err := io.Copy(out, reader); err != nil {
		return fmt.Errorf("write ffmpeg binary: %w", err)
	}
	return nil
}

func binariesExist(paths BinaryPaths) bool {
	return fileExists(paths.FFmpeg) && fileExists(paths.FFprobe)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir() && info.Size() > 0
}

func executableSuffix() string {
	if runtime.GOOS == "windows" {
		return ".exe"
	}
	return ""
}
