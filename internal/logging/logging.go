// Package logging configures the process-wide logrus logger.
package logging

import (
	"io"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/adscalemedia/adsite-backend/internal/config"
)

// Setup applies the log configuration once at startup. When a file is
// configured, output goes to stdout and a size-rotated file.
func Setup(cfg config.LogConfig) {
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	log.SetLevel(parseLevel(cfg.Level))

	if strings.TrimSpace(cfg.File) == "" {
		log.SetOutput(os.Stdout)
		return
	}

	rotated := &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   true,
	}
	log.SetOutput(io.MultiWriter(os.Stdout, rotated))
}

func parseLevel(level string) log.Level {
	parsed, err := log.ParseLevel(strings.TrimSpace(strings.ToLower(level)))
	if err != nil {
		return log.InfoLevel
	}
	return parsed
}
