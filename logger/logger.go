// Package logger provides leveled logging for the application on a single
// console backend.
package logger

import (
	"os"

	"github.com/op/go-logging"

	"eventdesk/config"
)

const timeFormat = "2006/01/02 15:04:05"

var logger *logging.Logger

func init() {
	InitLogger(logging.INFO)
}

// InitLogger configures the module logger with the given console level.
func InitLogger(level logging.Level) {
	newLogger := logging.MustGetLogger("eventdesk")

	backend := logging.NewLogBackend(os.Stderr, "", 0)
	format := logging.MustStringFormatter(`%{time:` + timeFormat + `} %{level} - %{message}`)
	formatted := logging.NewBackendFormatter(backend, format)

	leveled := logging.AddModuleLevel(formatted)
	leveled.SetLevel(level, "eventdesk")

	newLogger.SetBackend(leveled)
	logger = newLogger
}

// LevelFromConfig maps the configured log level onto go-logging levels.
func LevelFromConfig(level config.LogLevel) logging.Level {
	switch level {
	case config.Debug:
		return logging.DEBUG
	case config.Warn:
		return logging.WARNING
	case config.Error:
		return logging.ERROR
	default:
		return logging.INFO
	}
}

func Debug(args ...any) {
	logger.Debug(args...)
}

func Debugf(format string, args ...any) {
	logger.Debugf(format, args...)
}

func Info(args ...any) {
	logger.Info(args...)
}

func Infof(format string, args ...any) {
	logger.Infof(format, args...)
}

func Warning(args ...any) {
	logger.Warning(args...)
}

func Warningf(format string, args ...any) {
	logger.Warningf(format, args...)
}

func Error(args ...any) {
	logger.Error(args...)
}

func Errorf(format string, args ...any) {
	logger.Errorf(format, args...)
}
