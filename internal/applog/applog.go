// Package applog provides a small leveled wrapper around the standard
// library's log package, used by cmd/symcalc and internal/api. It
// mirrors cmd/tqi/main.go's plain stderr logging and cmd/tqserver's
// "LEVEL message" log line shape, rather than reaching for a
// third-party logging library that nothing here calls for.
package applog

import (
	"fmt"
	"io"
	"log"
	"os"
)

// Level is the severity of a logged message.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "LOG"
	}
}

// Logger writes leveled, prefixed lines to an underlying *log.Logger.
// Messages below the configured Min level are discarded.
type Logger struct {
	std *log.Logger
	Min Level
}

// New creates a Logger that writes to w with the standard date/time
// prefix, the same log.LstdFlags default cmd/tqserver/main.go's
// log.Printf calls rely on from the standard logger.
func New(w io.Writer, min Level) *Logger {
	return &Logger{
		std: log.New(w, "", log.LstdFlags),
		Min: min,
	}
}

// Default returns a Logger writing to stderr at LevelInfo, the logger
// cmd/symcalc uses unless a config file requests otherwise.
func Default() *Logger {
	return New(os.Stderr, LevelInfo)
}

func (l *Logger) log(lvl Level, format string, args ...interface{}) {
	if lvl < l.Min {
		return
	}
	l.std.Printf("%-5s %s", lvl, fmt.Sprintf(format, args...))
}

func (l *Logger) Debug(format string, args ...interface{}) { l.log(LevelDebug, format, args...) }
func (l *Logger) Info(format string, args ...interface{})  { l.log(LevelInfo, format, args...) }
func (l *Logger) Warn(format string, args ...interface{})  { l.log(LevelWarn, format, args...) }
func (l *Logger) Error(format string, args ...interface{}) { l.log(LevelError, format, args...) }
