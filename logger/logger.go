// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package logger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

const (
	FormatJSON = "json"
	FormatText = "text"
)

// Redacted replaces capability segments in logged paths.
const Redacted = "[redacted]"

// capabilitySegments maps a public route prefix to the index of the path
// segment that grants access on its own: manage, brewer and voter codes,
// brewer tokens and voter IDs. Event codes and event IDs are public.
var capabilitySegments = map[string]int{
	"m":      2,
	"b":      2,
	"brewer": 2,
	"v":      2,
	"vote":   3,
}

type Config struct {
	Writer    io.Writer
	Format    string
	Level     slog.Level
	AddSource bool
}

// New builds a slog logger. Unknown formats fall back to JSON.
func New(cfg Config) *slog.Logger {
	if cfg.Writer == nil {
		cfg.Writer = os.Stdout
	}

	opts := &slog.HandlerOptions{
		Level:     cfg.Level,
		AddSource: cfg.AddSource,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			switch a.Key {
			case slog.SourceKey:
				if source, ok := a.Value.Any().(*slog.Source); ok {
					source.File = filepath.Base(source.File)
				}
			case "path":
				if a.Value.Kind() == slog.KindString {
					a.Value = slog.StringValue(RedactPath(a.Value.String()))
				}
			}
			return a
		},
	}

	var handler slog.Handler
	if cfg.Format == FormatText {
		handler = slog.NewTextHandler(cfg.Writer, opts)
	} else {
		handler = slog.NewJSONHandler(cfg.Writer, opts)
	}
	return slog.New(handler)
}

// ParseLevel converts a string to slog.Level, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// RedactPath masks the capability segment of a public URL path, so request
// logs never carry a working manage, brewer or voter link.
func RedactPath(path string) string {
	parts := strings.Split(path, "/")
	if len(parts) < 3 || parts[0] != "" {
		return path
	}
	i, ok := capabilitySegments[parts[1]]
	if !ok || i >= len(parts) || parts[i] == "" {
		return path
	}
	parts[i] = Redacted
	return strings.Join(parts, "/")
}
