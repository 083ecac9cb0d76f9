// Package logger provides structured logging using zap.
//
// Entries carry one of five severities: DEBUG, INFO, WARNING, ERROR and FATAL.
// FATAL is logged at zap's DPanic level, which never panics or exits outside
// development mode; terminating the process is left to the caller.
package logger

import (
	"io"
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Log is the global logger instance.
var Log *zap.Logger

// Sugar is the sugared logger for convenient logging.
var Sugar *zap.SugaredLogger

var (
	mu    sync.Mutex
	level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	cores []zapcore.Core
)

// FileConfig holds file logging configuration.
type FileConfig struct {
	Path       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// DefaultFileConfig returns default file logging settings.
func DefaultFileConfig(path string) FileConfig {
	return FileConfig{
		Path:       path,
		MaxSizeMB:  50,
		MaxBackups: 3,
		MaxAgeDays: 7,
		Compress:   true,
	}
}

// Init initializes the logger with the given level and optional file output.
func Init(level string, logFile string) error {
	if logFile != "" {
		return InitWithFileConfig(level, DefaultFileConfig(logFile), true)
	}
	return InitWithFileConfig(level, FileConfig{}, true)
}

// InitWithFileConfig initializes the logger with custom file configuration.
// Set consoleOutput to false to disable console logging (useful for tests).
// Sinks registered with AddSink before this call are dropped.
func InitWithFileConfig(lvl string, fileCfg FileConfig, consoleOutput bool) error {
	mu.Lock()
	defer mu.Unlock()

	level.SetLevel(parseLevel(lvl))
	cores = nil

	// Console output
	if consoleOutput {
		cores = append(cores, zapcore.NewCore(
			newEncoder(zapcore.TimeEncoderOfLayout("15:04:05"), true),
			zapcore.AddSync(os.Stdout),
			level,
		))
	}

	// File output (if configured)
	if fileCfg.Path != "" {
		fileWriter := &lumberjack.Logger{
			Filename:   fileCfg.Path,
			MaxSize:    fileCfg.MaxSizeMB,
			MaxBackups: fileCfg.MaxBackups,
			MaxAge:     fileCfg.MaxAgeDays,
			Compress:   fileCfg.Compress,
			LocalTime:  true, // Use local time in rotated filename
		}

		cores = append(cores, zapcore.NewCore(
			newEncoder(zapcore.ISO8601TimeEncoder, false),
			zapcore.AddSync(fileWriter),
			level,
		))
	}

	rebuild()
	return nil
}

// AddSink registers an additional output stream. Every entry that passes the
// configured level is written to all registered streams.
func AddSink(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()

	cores = append(cores, zapcore.NewCore(
		newEncoder(zapcore.ISO8601TimeEncoder, false),
		zapcore.AddSync(w),
		level,
	))
	rebuild()
}

// Replace swaps the global logger, returning a function that restores the
// previous one. Intended for tests that observe log output.
func Replace(l *zap.Logger) func() {
	mu.Lock()
	prevLog, prevSugar := Log, Sugar
	Log, Sugar = l, l.Sugar()
	mu.Unlock()

	return func() {
		mu.Lock()
		Log, Sugar = prevLog, prevSugar
		mu.Unlock()
	}
}

func init() {
	rebuild()
}

func rebuild() {
	all := append([]zapcore.Core{lastErrorCore{zapcore.WarnLevel}}, cores...)
	Log = zap.New(zapcore.NewTee(all...), zap.AddCaller(), zap.AddCallerSkip(1))
	Sugar = Log.Sugar()
}

func newEncoder(timeEnc zapcore.TimeEncoder, color bool) zapcore.Encoder {
	return zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		TimeKey:          "time",
		LevelKey:         "level",
		MessageKey:       "msg",
		CallerKey:        "caller",
		EncodeTime:       timeEnc,
		EncodeLevel:      severityEncoder(color),
		EncodeCaller:     zapcore.ShortCallerEncoder,
		ConsoleSeparator: " ",
	})
}

// severityEncoder writes engine severity names. WARN is spelled WARNING and
// DPanic is reported as FATAL.
func severityEncoder(color bool) zapcore.LevelEncoder {
	return func(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
		switch l {
		case zapcore.WarnLevel:
			if color {
				enc.AppendString("\x1b[33mWARNING\x1b[0m")
			} else {
				enc.AppendString("WARNING")
			}
		case zapcore.DPanicLevel:
			if color {
				enc.AppendString("\x1b[35mFATAL\x1b[0m")
			} else {
				enc.AppendString("FATAL")
			}
		default:
			if color {
				zapcore.CapitalColorLevelEncoder(l, enc)
			} else {
				zapcore.CapitalLevelEncoder(l, enc)
			}
		}
	}
}

// parseLevel converts a string level to zapcore.Level.
func parseLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// Sync flushes any buffered log entries.
func Sync() {
	if Log != nil {
		_ = Log.Sync()
	}
}

// Debug logs a debug message.
func Debug(msg string, fields ...zap.Field) {
	Log.Debug(msg, fields...)
}

// Info logs an info message.
func Info(msg string, fields ...zap.Field) {
	Log.Info(msg, fields...)
}

// Warn logs a warning message.
func Warn(msg string, fields ...zap.Field) {
	Log.Warn(msg, fields...)
}

// Error logs an error message.
func Error(msg string, fields ...zap.Field) {
	Log.Error(msg, fields...)
}

// Fatal logs a fatal-severity message. It does not exit.
func Fatal(msg string, fields ...zap.Field) {
	Log.DPanic(msg, fields...)
}
