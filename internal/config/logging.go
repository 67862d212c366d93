package config

import (
	"io"
	"log"
	"os"

	"github.com/covalenthq/lumberjack"
)

// LogConfig selects where the standard logger writes.
type LogConfig struct {
	File       string // empty: stderr only
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

func LoadLogConfig() LogConfig {
	return LogConfig{
		File:       envStr("LOG_FILE", ""),
		MaxSizeMB:  envInt("LOG_MAX_SIZE_MB", 500),
		MaxBackups: envInt("LOG_MAX_BACKUPS", 3),
		MaxAgeDays: envInt("LOG_MAX_AGE_DAYS", 30),
	}
}

// SetupLogging points the standard logger at stderr and, when File is
// set, a rotated copy on disk.  The returned writer is what request logs
// should use too.
func SetupLogging(cfg LogConfig) io.Writer {
	var w io.Writer = os.Stderr
	if cfg.File != "" {
		w = io.MultiWriter(os.Stderr, &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   true,
		})
	}
	log.SetOutput(w)
	log.SetFlags(log.LstdFlags | log.LUTC)
	return w
}
