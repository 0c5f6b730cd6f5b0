package main

import (
	"os"

	"github.com/joho/godotenv"

	"gifclip/internal/cli"
)

func main() {
	// Tool path overrides (GIFCLIP_YTDLP_PATH, GIFCLIP_FFMPEG_PATH, ...)
	// may come from a local .env; absence is fine.
	_ = godotenv.Load()

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
