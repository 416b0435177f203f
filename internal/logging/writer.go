package logging

import (
	"context"
	"log/slog"
	"strings"
)

// Writer is an io.Writer implementation that forwards framework output to slog.
type Writer struct {
	logger *slog.Logger
	source string
	level  slog.Level
}

// NewWriter constructs a Writer bound to the provided logger. Every line is
// tagged with source and emitted at the given level.
func NewWriter(logger *slog.Logger, source string, level Level) *Writer {
	return &Writer{logger: logger, source: source, level: slog.Level(level)}
}

// Write logs each non-empty line of p as a separate record.
func (w *Writer) Write(p []byte) (int, error) {
	if w.logger == nil {
		return len(p), nil
	}
	for _, line := range strings.Split(strings.TrimRight(string(p), "\n"), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		w.logger.Log(context.Background(), w.level, line, "source", w.source)
	}
	return len(p), nil
}
