// Package logging configures the process-wide zerolog logger and adapts it
// for the libraries that bring their own logger interfaces.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	gormlogger "gorm.io/gorm/logger"
)

// Setup sets the global level and output. Pretty console output is used in
// gin's debug mode; everything else logs JSON lines.
func Setup(level string, pretty bool) {
	var out io.Writer = os.Stdout
	if pretty {
		out = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen}
	}

	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	zerolog.SetGlobalLevel(lvl)
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = zerolog.New(out).With().Timestamp().Logger()
}

type gormWriter struct {
	logger zerolog.Logger
}

func (w gormWriter) Printf(format string, args ...interface{}) {
	w.logger.Warn().Msgf(format, args...)
}

// GormLogger routes GORM's slow-query and error output through zerolog.
func GormLogger() gormlogger.Interface {
	return gormlogger.New(
		gormWriter{logger: log.With().Str("component", "gorm").Logger()},
		gormlogger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
}
