package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/lshigami/ExamPortal/config"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	gormlogger "gorm.io/gorm/logger"
)

func captureGlobal(t *testing.T) *bytes.Buffer {
	t.Helper()
	prev := log.Logger
	var buf bytes.Buffer
	log.Logger = zerolog.New(&buf)
	t.Cleanup(func() { log.Logger = prev })
	return &buf
}

func TestPrintfWritesThroughGlobalLogger(t *testing.T) {
	tests := []struct {
		name    string
		emit    func()
		level   string
		comp    string
		message string
	}{
		{
			name:    "direct",
			emit:    func() { Printf{Level: zerolog.WarnLevel, Component: "gorm"}.Printf("slow query %dms", 250) },
			level:   "warn",
			comp:    "gorm",
			message: "slow query 250ms",
		},
		{
			name: "cron error",
			emit: func() {
				cron.PrintfLogger(Printf{Level: zerolog.WarnLevel, Component: "cron"}).Error(errors.New("boom"), "job panicked")
			},
			level: "warn",
			comp:  "cron",
		},
		{
			name: "gorm logger",
			emit: func() {
				l := gormlogger.New(Printf{Level: zerolog.WarnLevel, Component: "gorm"}, gormlogger.Config{LogLevel: gormlogger.Warn})
				l.Warn(context.Background(), "pool exhausted")
			},
			level: "warn",
			comp:  "gorm",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			buf := captureGlobal(t)
			tc.emit()

			var entry map[string]interface{}
			if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
				t.Fatalf("output %q is not one JSON entry: %v", buf.String(), err)
			}
			if entry["level"] != tc.level || entry["component"] != tc.comp {
				t.Fatalf("entry = %v", entry)
			}
			if tc.message != "" && entry["message"] != tc.message {
				t.Fatalf("message = %v, want %q", entry["message"], tc.message)
			}
		})
	}
}

func TestConfigureFallsBackToInfo(t *testing.T) {
	prev := zerolog.GlobalLevel()
	t.Cleanup(func() { zerolog.SetGlobalLevel(prev) })
	prevLogger := log.Logger
	t.Cleanup(func() { log.Logger = prevLogger })

	cfg := &config.Config{}
	cfg.Log.Level = "loud"
	Configure(cfg)
	if zerolog.GlobalLevel() != zerolog.InfoLevel {
		t.Fatalf("level = %s, want info", zerolog.GlobalLevel())
	}
}
