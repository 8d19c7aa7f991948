package main

import (
	"fmt"
	"io"
	"log"
	"strings"
)

// LogLevel represents severity.
type LogLevel int32

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

var levelNames = map[string]LogLevel{
	"debug":   LevelDebug,
	"info":    LevelInfo,
	"warn":    LevelWarn,
	"warning": LevelWarn,
	"error":   LevelError,
}

// ParseLogLevel maps a level name onto a LogLevel.
func ParseLogLevel(s string) (LogLevel, error) {
	l, ok := levelNames[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return LevelInfo, fmt.Errorf("unknown log level: %s", s)
	}
	return l, nil
}

// statusLogger writes leveled status lines to stderr.
type statusLogger struct {
	level LogLevel
	base  *log.Logger
}

func newStatusLogger(w io.Writer, level LogLevel) *statusLogger {
	return &statusLogger{level: level, base: log.New(w, "", log.Ldate|log.Ltime)}
}

func (l *statusLogger) logf(level LogLevel, format string, args ...interface{}) {
	if l.level > level {
		return
	}
	prefix := "INFO"
	switch level {
	case LevelDebug:
		prefix = "DEBUG"
	case LevelWarn:
		prefix = "WARN"
	case LevelError:
		prefix = "ERROR"
	}
	if len(args) == 0 {
		l.base.Printf("[%s] %s", prefix, format)
		return
	}
	l.base.Printf("[%s] %s", prefix, fmt.Sprintf(format, args...))
}

func (l *statusLogger) Debugf(format string, a ...interface{}) { l.logf(LevelDebug, format, a...) }
func (l *statusLogger) Infof(format string, a ...interface{})  { l.logf(LevelInfo, format, a...) }
func (l *statusLogger) Warnf(format string, a ...interface{})  { l.logf(LevelWarn, format, a...) }
func (l *statusLogger) Errorf(format string, a ...interface{}) { l.logf(LevelError, format, a...) }
