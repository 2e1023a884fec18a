package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/studiowebux/postboard/internal/config"
)

// Setup points the global zerolog logger at path (JSON lines, appended).
// The returned closer must be called on exit.
func Setup(path string, level string) (io.Closer, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, config.FilePermissions)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	configure(f, level)
	return f, nil
}

// SetupConsole writes human-readable logs to w; used by the non-interactive commands
func SetupConsole(w io.Writer, level string) {
	configure(zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}, level)
}

func configure(w io.Writer, level string) {
	zerolog.SetGlobalLevel(ParseLevel(level))
	log.Logger = zerolog.New(w).With().Timestamp().Logger()
}

// ParseLevel maps a config level name to a zerolog level, defaulting to info
func ParseLevel(level string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}
