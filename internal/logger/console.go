// Package logger provides the leveled console logger used across the
// archivist pipeline. Output is timestamped, thread-safe, and colorized only
// when writing to a real terminal.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Log level constants for filtering
const (
	levelDebug int = iota
	levelInfo
	levelWarn
	levelError
)

// ConsoleLogger logs pipeline progress to a writer with [HH:MM:SS] prefixes.
// A nil writer silently discards all output, which keeps library code free
// of nil checks.
type ConsoleLogger struct {
	writer      io.Writer
	level       int
	mutex       sync.Mutex
	colorOutput bool
}

// NewConsoleLogger creates a ConsoleLogger writing to w at the given level.
// Valid levels are debug, info, warn, error (case-insensitive); anything
// else defaults to info. Color is enabled only for TTY stdout/stderr.
func NewConsoleLogger(w io.Writer, level string) *ConsoleLogger {
	return &ConsoleLogger{
		writer:      w,
		level:       parseLevel(level),
		colorOutput: isTerminal(w),
	}
}

// isTerminal reports whether w is a terminal that supports colors.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	if f != os.Stdout && f != os.Stderr {
		return false
	}
	return isatty.IsTerminal(f.Fd()) && !color.NoColor
}

func parseLevel(level string) int {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return levelDebug
	case "warn":
		return levelWarn
	case "error":
		return levelError
	default:
		return levelInfo
	}
}

// Debugf logs a debug-level message.
func (cl *ConsoleLogger) Debugf(format string, args ...interface{}) {
	cl.logf(levelDebug, "DEBUG", format, args...)
}

// Infof logs an info-level message.
func (cl *ConsoleLogger) Infof(format string, args ...interface{}) {
	cl.logf(levelInfo, "INFO", format, args...)
}

// Warnf logs a warning-level message.
func (cl *ConsoleLogger) Warnf(format string, args ...interface{}) {
	cl.logf(levelWarn, "WARN", format, args...)
}

// Errorf logs an error-level message.
func (cl *ConsoleLogger) Errorf(format string, args ...interface{}) {
	cl.logf(levelError, "ERROR", format, args...)
}

func (cl *ConsoleLogger) logf(level int, tag string, format string, args ...interface{}) {
	if cl == nil || cl.writer == nil || level < cl.level {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	ts := time.Now().Format("15:04:05")
	if cl.colorOutput {
		tag = colorizeTag(tag)
	}
	fmt.Fprintf(cl.writer, "[%s] [%s] %s\n", ts, tag, fmt.Sprintf(format, args...))
}

func colorizeTag(tag string) string {
	switch tag {
	case "DEBUG":
		return color.New(color.FgCyan).Sprint(tag)
	case "INFO":
		return color.New(color.FgBlue).Sprint(tag)
	case "WARN":
		return color.New(color.FgYellow).Sprint(tag)
	case "ERROR":
		return color.New(color.FgRed).Sprint(tag)
	}
	return tag
}
