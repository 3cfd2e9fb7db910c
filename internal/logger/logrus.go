package logger

import (
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/sirupsen/logrus"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"

	"github.com/anchore/bomcodec/bomcodec/logger"
)

const defaultLogFilePermissions fs.FileMode = 0644

var _ logger.Logger = (*LogrusLogger)(nil)

// LogrusConfig selects where log entries go and how they are rendered.
type LogrusConfig struct {
	EnableConsole bool
	EnableFile    bool
	Structured    bool
	Level         logrus.Level
	FileLocation  string
}

// LogrusLogger adapts a logrus entry to the library logger interface.
type LogrusLogger struct {
	Config LogrusConfig
	Logger logrus.FieldLogger
	Output io.Writer
}

// NewLogrusLogger creates a logger writing to stderr and/or the configured file. When neither is enabled all
// entries are discarded.
func NewLogrusLogger(cfg LogrusConfig) (*LogrusLogger, error) {
	appLogger := logrus.New()

	var outputs []io.Writer
	if cfg.EnableConsole {
		outputs = append(outputs, os.Stderr)
	}
	if cfg.EnableFile {
		logFile, err := os.OpenFile(cfg.FileLocation, os.O_WRONLY|os.O_CREATE|os.O_APPEND, defaultLogFilePermissions)
		if err != nil {
			return nil, fmt.Errorf("unable to setup log file: %w", err)
		}
		outputs = append(outputs, logFile)
	}

	var output io.Writer
	switch len(outputs) {
	case 0:
		output = io.Discard
	case 1:
		output = outputs[0]
	default:
		output = io.MultiWriter(outputs...)
	}

	appLogger.SetOutput(output)
	appLogger.SetLevel(cfg.Level)

	if cfg.Structured {
		appLogger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02 15:04:05",
		})
	} else {
		appLogger.SetFormatter(&prefixed.TextFormatter{
			TimestampFormat: "2006-01-02 15:04:05",
			ForceColors:     true,
			ForceFormatting: true,
		})
	}

	return &LogrusLogger{
		Config: cfg,
		Logger: appLogger,
		Output: output,
	}, nil
}

// Nested returns a logger that tags every entry with the given fields (e.g. the subsystem "prefix" shown by the
// text formatter).
func (l *LogrusLogger) Nested(fields map[string]interface{}) *LogrusLogger {
	return &LogrusLogger{
		Config: l.Config,
		Logger: l.Logger.WithFields(fields),
		Output: l.Output,
	}
}

func (l *LogrusLogger) Tracef(format string, args ...interface{}) {
	if entry, ok := l.Logger.(interface{ Tracef(string, ...interface{}) }); ok {
		entry.Tracef(format, args...)
	}
}

func (l *LogrusLogger) Debugf(format string, args ...interface{}) {
	l.Logger.Debugf(format, args...)
}

func (l *LogrusLogger) Infof(format string, args ...interface{}) {
	l.Logger.Infof(format, args...)
}

func (l *LogrusLogger) Warnf(format string, args ...interface{}) {
	l.Logger.Warnf(format, args...)
}

func (l *LogrusLogger) Errorf(format string, args ...interface{}) {
	l.Logger.Errorf(format, args...)
}

func (l *LogrusLogger) Trace(args ...interface{}) {
	if entry, ok := l.Logger.(interface{ Trace(...interface{}) }); ok {
		entry.Trace(args...)
	}
}

func (l *LogrusLogger) Debug(args ...interface{}) {
	l.Logger.Debug(args...)
}

func (l *LogrusLogger) Info(args ...interface{}) {
	l.Logger.Info(args...)
}

func (l *LogrusLogger) Warn(args ...interface{}) {
	l.Logger.Warn(args...)
}

func (l *LogrusLogger) Error(args ...interface{}) {
	l.Logger.Error(args...)
}
