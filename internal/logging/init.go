package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/regenrek/debugkit/internal/appdirs"
	"github.com/regenrek/debugkit/internal/identity"
)

type InitOptions struct {
	App     string
	Version string
	Mode    Mode
}

// Init builds the process logger from the mode defaults, cfg and the
// DEBUGKIT_LOG_* variables, installs it as the slog default and returns a
// func that flushes and closes the sink.
func Init(ctx context.Context, cfg Config, opts InitOptions) (func() error, error) {
	if opts.App == "" {
		opts.App = identity.AppSlug
	}
	if opts.Mode == 0 {
		opts.Mode = ModeCLI
	}
	normalized, err := DefaultConfig(opts.Mode).Merge(cfg).WithEnv().Normalize()
	if err != nil {
		return nil, err
	}
	logger, closeFn, err := buildLogger(normalized, opts)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(logger)
	return closeFn, nil
}

func buildLogger(cfg Config, opts InitOptions) (*slog.Logger, func() error, error) {
	writer, closeFn, err := openSink(cfg, opts.App)
	if err != nil {
		return nil, nil, err
	}
	handlerOpts := &slog.HandlerOptions{
		Level:     parseLevel(cfg.Level),
		AddSource: cfg.AddSource != nil && *cfg.AddSource,
	}
	var handler slog.Handler
	if cfg.Format != nil && Format(*cfg.Format) == FormatJSON {
		handler = slog.NewJSONHandler(writer, handlerOpts)
	} else {
		handler = slog.NewTextHandler(writer, handlerOpts)
	}
	logger := slog.New(handler).With(
		slog.String("app", opts.App),
		slog.String("version", opts.Version),
		slog.String("mode", opts.Mode.String()),
	)
	return logger, closeFn, nil
}

func parseLevel(value *string) slog.Leveler {
	if value == nil {
		return slog.LevelInfo
	}
	switch strings.ToLower(strings.TrimSpace(*value)) {
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

func noClose() error { return nil }

// openSink returns the writer for the configured sink. The file sink writes
// to cfg.File or <runtime dir>/<app>.log through a lumberjack rotator.
func openSink(cfg Config, app string) (io.Writer, func() error, error) {
	sink := SinkStderr
	if cfg.Sink != nil {
		sink = Sink(*cfg.Sink)
	}
	switch sink {
	case SinkNone:
		return io.Discard, noClose, nil
	case SinkStderr:
		return os.Stderr, noClose, nil
	case SinkFile:
	default:
		return nil, nil, fmt.Errorf("logging: unknown sink %q", sink)
	}

	var path string
	if cfg.File != nil {
		path = *cfg.File
		if err := appdirs.EnsurePrivateDir(filepath.Dir(path), true); err != nil {
			return nil, nil, fmt.Errorf("logging: %w", err)
		}
	} else {
		dir, err := appdirs.RuntimeDir()
		if err != nil {
			return nil, nil, fmt.Errorf("logging: %w", err)
		}
		path = filepath.Join(dir, app+".log")
	}
	rot := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    derefOr(cfg.MaxSizeMB, 20),
		MaxBackups: derefOr(cfg.MaxBackups, 5),
		MaxAge:     derefOr(cfg.MaxAgeDays, 7),
		Compress:   derefOr(cfg.Compress, true),
	}
	return rot, rot.Close, nil
}

func derefOr[T any](v *T, fallback T) T {
	if v == nil {
		return fallback
	}
	return *v
}
