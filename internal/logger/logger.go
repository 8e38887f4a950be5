// Package logger wraps a process-wide charmbracelet logger. File output goes
// through a rotating lumberjack writer next to the store.
package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/julianstephens/daytrack/internal/constants"
)

var (
	// Logger is the global logger instance
	Logger *log.Logger

	rotating *lumberjack.Logger
)

const (
	maxLogSizeMB  = 10
	maxLogBackups = 3
	maxLogAgeDays = 28
)

type Config struct {
	// Debug lowers the level to debug, reports callers and echoes to stderr
	Debug     bool
	ConfigDir string
}

// Init sends logs to <ConfigDir>/logs/daytrack.log.
func Init(cfg Config) error {
	logDir := filepath.Join(cfg.ConfigDir, constants.LogDirName)
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return err
	}

	if err := Close(); err != nil {
		return err
	}
	rotating = &lumberjack.Logger{
		Filename:   filepath.Join(logDir, constants.LogFileName),
		MaxSize:    maxLogSizeMB,
		MaxBackups: maxLogBackups,
		MaxAge:     maxLogAgeDays,
		Compress:   true,
	}

	level := log.WarnLevel
	var writer io.Writer = rotating
	if cfg.Debug {
		level = log.DebugLevel
		writer = io.MultiWriter(os.Stderr, rotating)
	}

	Logger = newLogger(writer, level)
	Logger.SetReportCaller(cfg.Debug)
	return nil
}

// UseWriter points the global logger at w. Used by commands that must not
// touch the config directory and by tests.
func UseWriter(w io.Writer, level log.Level) {
	_ = Close()
	Logger = newLogger(w, level)
}

func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Level:           level,
		Prefix:          constants.AppName,
	})
}

// File returns the path of the rotating log file, or "" when logging is not
// going to a file.
func File() string {
	if rotating == nil {
		return ""
	}
	return rotating.Filename
}

// Close flushes and closes the rotating log file.
func Close() error {
	if rotating == nil {
		return nil
	}
	err := rotating.Close()
	rotating = nil
	return err
}

func Debug(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Debug(msg, keyvals...)
	}
}

func Info(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Info(msg, keyvals...)
	}
}

func Warn(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Warn(msg, keyvals...)
	}
}

func Error(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Error(msg, keyvals...)
	}
}
