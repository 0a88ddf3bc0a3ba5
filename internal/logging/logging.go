// Package logging configures the process-wide slog logger.
//
// Terminals get colourised tint output, everything else gets plain text or
// JSON. The level defaults to info (debug with --verbose) and can always be
// overridden through the GO_LOG environment variable.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	slogenv "github.com/cbrewster/slog-env"
	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
)

// Format selects the handler.
type Format string

const (
	FormatAuto Format = ""
	FormatTint Format = "tint"
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// Options configures New.
type Options struct {
	// Format defaults to LOG_FORMAT, then to tint on a terminal and text elsewhere.
	Format Format
	// Verbose lowers the default level to debug.
	Verbose bool
	// Writer defaults to os.Stderr.
	Writer io.Writer
}

// New builds a logger from opts without installing it.
func New(opts Options) *slog.Logger {
	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}

	level := slog.LevelInfo
	if opts.Verbose {
		level = slog.LevelDebug
	}

	format := opts.Format
	if format == FormatAuto {
		format = Format(strings.ToLower(os.Getenv("LOG_FORMAT")))
	}
	if format == FormatAuto {
		if isTerminal(w) {
			format = FormatTint
		} else {
			format = FormatText
		}
	}

	var handler slog.Handler
	switch format {
	case FormatJSON:
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})
	case FormatTint:
		handler = tint.NewHandler(w, &tint.Options{
			Level:       slog.LevelDebug,
			TimeFormat:  time.TimeOnly,
			NoColor:     !isTerminal(w),
			ReplaceAttr: tintErrors,
		})
	default:
		handler = slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})
	}

	// slogenv does the actual filtering; the inner handlers accept everything.
	return slog.New(slogenv.NewHandler(handler, slogenv.WithDefaultLevel(level)))
}

// Setup installs a logger built from opts as the slog default.
func Setup(opts Options) *slog.Logger {
	logger := New(opts)
	slog.SetDefault(logger)
	logger.Debug("logging configured", "format", string(opts.Format), "verbose", opts.Verbose)
	return logger
}

func tintErrors(_ []string, a slog.Attr) slog.Attr {
	if err, ok := a.Value.Any().(error); ok {
		aErr := tint.Err(err)
		aErr.Key = a.Key
		return aErr
	}
	return a
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
