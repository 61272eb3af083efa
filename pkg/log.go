package casetree

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// LogLevel controls which run-log lines are emitted
type LogLevel int

const (
	LogError LogLevel = iota
	LogWarning
	LogInfo
)

// ParseLogLevel maps a config value to a LogLevel. Unknown values
// fall back to info so a typo never silences the run log.
func ParseLogLevel(s string) LogLevel {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "error":
		return LogError
	case "warning", "warn":
		return LogWarning
	default:
		return LogInfo
	}
}

// Logger writes timestamped run-log lines to a log file and stderr.
// It is owned by the Runner; there is no package-level logger state.
type Logger struct {
	level LogLevel
	out   io.Writer
	file  *os.File
}

// NewLogger opens (truncating) the log file at path and returns a
// logger writing to it and to stderr. An empty path logs to stderr
// only.
func NewLogger(path string, level LogLevel) (*Logger, error) {
	l := &Logger{level: level, out: os.Stderr}
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file %s: %w", path, err)
		}
		l.file = f
	}
	return l, nil
}

// Close closes the underlying log file, if any
func (l *Logger) Close() error {
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}

func (l *Logger) emit(level LogLevel, tag, format string, args ...interface{}) {
	if level > l.level {
		return
	}
	line := fmt.Sprintf("%s [%s] %s", time.Now().Format("2006-01-02 15:04:05"), tag, fmt.Sprintf(format, args...))
	if !strings.HasSuffix(line, "\n") {
		line += "\n"
	}
	fmt.Fprint(l.out, line)
	if l.file != nil {
		fmt.Fprint(l.file, line)
	}
}

// Infof logs an informational line
func (l *Logger) Infof(format string, args ...interface{}) {
	l.emit(LogInfo, "INFO", format, args...)
}

// Warnf logs a warning line
func (l *Logger) Warnf(format string, args ...interface{}) {
	l.emit(LogWarning, "WARNING", format, args...)
}

// Errorf logs an error line
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.emit(LogError, "ERROR", format, args...)
}
