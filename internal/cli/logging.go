package cli

import (
	"log/slog"
	"os"
	"strings"
)

// levelSilent sits above every level the packages log at.
const levelSilent = slog.LevelError + 4

func debugEnabled() bool {
	if debugFlag {
		return true
	}
	switch strings.ToLower(strings.TrimSpace(os.Getenv("RTEND_DEBUG"))) {
	case "1", "true", "yes":
		return true
	}
	return false
}

// configureLogging installs the default slog handler on stderr.
func configureLogging(debug bool) {
	level := levelSilent
	if debug {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}
