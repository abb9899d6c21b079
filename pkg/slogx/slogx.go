package slogx

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Config selects the process logger.
type Config struct {
	Service string
	Version string
	Env     string
	Level   string // debug, info, warn or error
	Format  string // json (default) or text

	Output io.Writer
}

// redacted attribute keys. Secrets must never reach a log line even when a
// caller slips one into an attribute.
var redacted = map[string]bool{
	"password":        true,
	"password_digest": true,
	"token":           true,
	"link":            true,
}

// New builds the logger, tags every record with service metadata and
// installs it as slog's default.
func New(cfg Config) *slog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}

	opts := &slog.HandlerOptions{
		AddSource:   cfg.Env == "dev",
		Level:       ParseLevel(cfg.Level),
		ReplaceAttr: redact,
	}

	var h slog.Handler = slog.NewJSONHandler(out, opts)
	if strings.EqualFold(cfg.Format, "text") {
		h = slog.NewTextHandler(out, opts)
	}

	logger := slog.New(h).With(
		slog.String("service", cfg.Service),
		slog.String("version", cfg.Version),
		slog.String("env", cfg.Env),
	)
	slog.SetDefault(logger)
	return logger
}

// ParseLevel accepts slog level names, case-insensitive, plus "warning".
// Anything unrecognized is info.
func ParseLevel(s string) slog.Level {
	if strings.EqualFold(s, "warning") {
		return slog.LevelWarn
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

func redact(_ []string, a slog.Attr) slog.Attr {
	if redacted[a.Key] {
		return slog.String(a.Key, "[REDACTED]")
	}
	return a
}
