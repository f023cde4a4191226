package logger

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/lshigami/ExamPortal/config"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Init sets up the global zerolog logger with a console writer so that
// anything logged before the configuration is loaded is still readable.
func Init() {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen}).
		With().Timestamp().Caller().Logger()
}

// Configure applies the configured level and, when LOG_FILE is set, tees
// JSON output into a rotating file.
func Configure(cfg *config.Config) {
	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	var out io.Writer = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen}
	if cfg.Log.File != "" {
		if dir := filepath.Dir(cfg.Log.File); dir != "." {
			_ = os.MkdirAll(dir, 0o755)
		}
		out = zerolog.MultiLevelWriter(out, &lumberjack.Logger{
			Filename:   cfg.Log.File,
			MaxSize:    100,
			MaxBackups: 5,
			MaxAge:     30,
			Compress:   true,
		})
	}
	log.Logger = zerolog.New(out).With().Timestamp().Caller().Logger()
	log.Info().Str("level", level.String()).Str("file", cfg.Log.File).Msg("Logger configured")
}

// Printf adapts the global logger to libraries that take a printf-style
// sink, such as cron and the gorm logger. Component is added as a field.
type Printf struct {
	Level     zerolog.Level
	Component string
}

func (p Printf) Printf(format string, args ...interface{}) {
	log.WithLevel(p.Level).Str("component", p.Component).Msgf(format, args...)
}
