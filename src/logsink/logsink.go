// Package logsink carries the simulation's event lines and sets up process logging.
package logsink

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"elevsim/src/config"
)

// Sink receives one line per simulation event.
type Sink interface {
	Log(message string)
}

type SlogSink struct {
	logger *slog.Logger
}

func NewSlogSink(logger *slog.Logger) SlogSink {
	if logger == nil {
		logger = slog.Default()
	}
	return SlogSink{logger: logger}
}

func (s SlogSink) Log(message string) {
	s.logger.Info(message)
}

type ZerologSink struct {
	logger zerolog.Logger
}

func NewZerologSink(w io.Writer) ZerologSink {
	output := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.TimeOnly,
	}
	return ZerologSink{logger: zerolog.New(output).With().Timestamp().Logger()}
}

func (s ZerologSink) Log(message string) {
	s.logger.Info().Msg(message)
}

// New builds the sink named by cfg.Driver, writing to w.
func New(cfg config.Logging, w io.Writer) (Sink, error) {
	switch strings.ToLower(cfg.Driver) {
	case "", "slog":
		return NewSlogSink(slog.Default()), nil
	case "zerolog":
		return NewZerologSink(w), nil
	}
	return nil, fmt.Errorf("unknown log driver %q", cfg.Driver)
}

// ParseLevel maps a config level name to a slog level. Unknown names are info.
func ParseLevel(level string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return slog.LevelInfo
	}
	return l
}

// InitLogger sets up global logging configuration with compact time format.
// When cfg.File is set, output is written to stdout and the file. The
// returned writer is what the handler writes to, for sinks that need one.
func InitLogger(cfg config.Logging) (io.Writer, func() error, error) {
	var w io.Writer = os.Stdout
	closeFn := func() error { return nil }
	if cfg.File != "" {
		logFile, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w = io.MultiWriter(os.Stdout, logFile)
		closeFn = logFile.Close
	}

	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level:     ParseLevel(cfg.Level),
		AddSource: true,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				if t, ok := a.Value.Any().(time.Time); ok {
					a.Value = slog.StringValue(t.Format("15:04:05"))
				}
			}
			if a.Key == slog.SourceKey {
				if source, ok := a.Value.Any().(*slog.Source); ok {
					file := source.File
					if lastSlash := strings.LastIndexByte(file, '/'); lastSlash >= 0 {
						file = file[lastSlash+1:]
					}
					a.Value = slog.StringValue(fmt.Sprintf("%s:%d", file, source.Line))
				}
			}
			return a
		},
	})

	slog.SetDefault(slog.New(handler))
	return w, closeFn, nil
}
