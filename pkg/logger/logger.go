package logger

import (
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
	"time"
)

// Minimal leveled logger used across the service.
// - zero external deps
// - Init(level) then Debugf/Infof/Warnf/Errorf/Fatalf

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal
)

var (
	mu  sync.RWMutex
	out = log.New(os.Stdout, "", 0)
	min = LevelInfo
)

// Init sets the global log level (case-insensitive: debug, info, warn, error,
// fatal). Default is Info; unknown values fall back to it.
func Init(l string) {
	mu.Lock()
	defer mu.Unlock()
	switch strings.ToLower(strings.TrimSpace(l)) {
	case "debug":
		min = LevelDebug
	case "warn", "warning":
		min = LevelWarn
	case "error":
		min = LevelError
	case "fatal":
		min = LevelFatal
	default:
		min = LevelInfo
	}
}

func logf(l Level, tag, format string, v ...interface{}) {
	mu.RLock()
	enabled := l >= min
	mu.RUnlock()
	if !enabled {
		return
	}
	out.Printf("%s [%s] %s", time.Now().Format(time.RFC3339), tag, fmt.Sprintf(format, v...))
}

func Debugf(format string, v ...interface{}) { logf(LevelDebug, "DEBUG", format, v...) }
func Infof(format string, v ...interface{})  { logf(LevelInfo, "INFO", format, v...) }
func Warnf(format string, v ...interface{})  { logf(LevelWarn, "WARN", format, v...) }
func Errorf(format string, v ...interface{}) { logf(LevelError, "ERROR", format, v...) }

func Fatalf(format string, v ...interface{}) {
	logf(LevelFatal, "FATAL", format, v...)
	os.Exit(1)
}

// single-string helpers
func Debug(v string) { Debugf("%s", v) }
func Info(v string)  { Infof("%s", v) }
func Warn(v string)  { Warnf("%s", v) }
func Error(v string) { Errorf("%s", v) }

// LevelString returns the current level as text.
func LevelString() string {
	mu.RLock()
	defer mu.RUnlock()
	switch min {
	case LevelDebug:
		return "debug"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	case LevelFatal:
		return "fatal"
	}
	return "info"
}
