// Package logging configures the application logger.
//
// The TUI owns the terminal, so log output always goes to a file.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/llehouerou/reelcheck/internal/config"
)

// Setup creates a logger writing to cfg.LogFile(). The returned closer
// releases the file.
func Setup(cfg *config.Config) (*logrus.Logger, io.Closer, error) {
	path := cfg.LogFile()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	return New(f, cfg.Log), f, nil
}

// New creates a logger writing to w.
func New(w io.Writer, cfg config.LogConfig) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(w)

	if cfg.JSON {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{
			DisableColors: true,
			FullTimestamp: true,
		})
	}

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	return log
}
