package logger

import (
	"fmt"
	"log"
	"strings"
)

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// ParseLevel falls back to LevelInfo for unknown names.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

type Logger struct {
	l     *log.Logger
	level Level
}

func New(l *log.Logger, level Level) *Logger {
	return &Logger{l: l, level: level}
}

func (l *Logger) LogDebugf(format string, v ...any) {
	l.print(LevelDebug, "Debug", format, v...)
}

func (l *Logger) LogInfo(format string, v ...any) {
	l.print(LevelInfo, "Info", format, v...)
}

func (l *Logger) LogWarnf(format string, v ...any) {
	l.print(LevelWarn, "Warn", format, v...)
}

func (l *Logger) LogErrorf(format string, v ...any) {
	l.print(LevelError, "Error", format, v...)
}

func (l *Logger) print(level Level, tag, format string, v ...any) {
	if level < l.level {
		return
	}

	msg := fmt.Sprintf(format, v...)
	l.l.Printf("[%s]: %s\n", tag, msg)
}
