package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/dcsystems/dcsite/internal/config"
	"github.com/sirupsen/logrus"
)

// SetupLogrus builds the process logger from the [log] section and mirrors
// its settings onto the standard logrus logger.
func SetupLogrus(cfg config.LogConfig) *logrus.Logger {
	return SetupLogrusWriter(cfg, os.Stderr)
}

// SetupLogrusWriter is SetupLogrus with an explicit destination
func SetupLogrusWriter(cfg config.LogConfig, out io.Writer) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(out)

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		logger.Warnf("Invalid log level '%s', defaulting to 'info': %v", cfg.Level, err)
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	switch strings.ToLower(cfg.Format) {
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: time.RFC3339Nano,
		})
	case "text", "":
		logger.SetFormatter(textFormatter())
	default:
		logger.Warnf("Invalid log format '%s', defaulting to 'text'", cfg.Format)
		logger.SetFormatter(textFormatter())
	}

	logrus.SetLevel(logger.GetLevel())
	logrus.SetFormatter(logger.Formatter)
	logrus.SetOutput(logger.Out)

	logger.Debugf("Logrus initialized with level '%s' and format '%s'.", logger.GetLevel(), cfg.Format)
	return logger
}

func textFormatter() *logrus.TextFormatter {
	return &logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339Nano,
	}
}
