// Package logutils builds the process logger.
package logutils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// New returns a JSON logger at the given level. An empty file logs to
// stderr; otherwise the file is opened for appending and the returned
// closer releases it.
func New(level string, file string) (zerolog.Logger, func(), error) {
	noop := func() {}

	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), noop, fmt.Errorf("parse log level %q: %w", level, err)
	}

	var w io.Writer = os.Stderr
	closer := noop

	if file != "" {
		if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
			return zerolog.Nop(), noop, fmt.Errorf("create log dir: %w", err)
		}

		f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return zerolog.Nop(), noop, fmt.Errorf("open log file: %w", err)
		}
		w = f
		closer = func() { _ = f.Close() }
	}

	return zerolog.New(w).Level(lvl).With().Timestamp().Logger(), closer, nil
}
