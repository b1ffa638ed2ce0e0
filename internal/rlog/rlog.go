// Package rlog provides structured logging for swmmout.
//
// It supports five severity levels (TRACE, DEBUG, INFO, WARN, ERROR) with
// atomic level checks so that disabled levels cost almost nothing to call,
// and every line carries the calling function, file, and line number.
//
// Log format:
//
//	YYYY/MM/DD HH:MM:SS.ssssss [PID] [LEVEL] function.file:line: message
package rlog

import (
	"fmt"
	"log"
	"os"
	"runtime"
	"strings"
	"sync/atomic"
	"time"
)

// Level is the severity of a log message. Higher values are more severe.
type Level int32

const (
	TRACE Level = iota
	DEBUG
	INFO
	WARN
	ERROR
)

var levelNames = map[Level]string{
	TRACE: "TRACE",
	DEBUG: "DEBUG",
	INFO:  "INFO",
	WARN:  "WARN",
	ERROR: "ERROR",
}

var (
	currentLevel atomic.Int32
	processID    = os.Getpid()
	std          *log.Logger
)

func init() {
	std = log.New(os.Stdout, "", 0)
	currentLevel.Store(int32(INFO))
}

// SetLevel sets the minimum level that will be emitted.
func SetLevel(level string) error {
	switch strings.ToUpper(level) {
	case "TRACE":
		currentLevel.Store(int32(TRACE))
	case "DEBUG":
		currentLevel.Store(int32(DEBUG))
	case "INFO":
		currentLevel.Store(int32(INFO))
	case "WARN":
		currentLevel.Store(int32(WARN))
	case "ERROR":
		currentLevel.Store(int32(ERROR))
	default:
		return fmt.Errorf("invalid log level: %s", level)
	}
	return nil
}

// CurrentLevel returns the active minimum level as a string.
func CurrentLevel() string {
	return levelNames[Level(currentLevel.Load())]
}

func formatMessage(level Level, skip int, format string, args ...interface{}) string {
	pc, file, line, ok := runtime.Caller(skip)
	if !ok {
		file, line = "unknown", 0
	}
	if idx := strings.LastIndex(file, "/"); idx != -1 {
		file = file[idx+1:]
	}
	if idx := strings.LastIndex(file, ".go"); idx != -1 {
		file = file[:idx]
	}
	funcName := "unknown"
	if fn := runtime.FuncForPC(pc); fn != nil {
		full := fn.Name()
		if idx := strings.LastIndex(full, "."); idx != -1 {
			funcName = full[idx+1:]
		}
	}
	msg := fmt.Sprintf(format, args...)
	ts := time.Now().Format("2006/01/02 15:04:05.000000")
	return fmt.Sprintf("%s [%d] [%s] %s.%s:%d: %s", ts, processID, levelNames[level], funcName, file, line, msg)
}

func logMessage(level Level, skip int, format string, args ...interface{}) {
	if level < Level(currentLevel.Load()) {
		return
	}
	std.Println(formatMessage(level, skip, format, args...))
}

func Trace(format string, args ...interface{}) { logMessage(TRACE, 3, format, args...) }
func Debug(format string, args ...interface{}) { logMessage(DEBUG, 3, format, args...) }
func Info(format string, args ...interface{})  { logMessage(INFO, 3, format, args...) }
func Warn(format string, args ...interface{})  { logMessage(WARN, 3, format, args...) }
func Error(format string, args ...interface{}) { logMessage(ERROR, 3, format, args...) }

// Fatal logs at ERROR and terminates the process.
func Fatal(format string, args ...interface{}) {
	std.Println(formatMessage(ERROR, 2, format, args...))
	os.Exit(1)
}

// Configure sets the log level from SWMMOUT_LOG_LEVEL if present.
func Configure() {
	if level := os.Getenv("SWMMOUT_LOG_LEVEL"); level != "" {
		if err := SetLevel(level); err != nil {
			Warn("%v", err)
		}
	}
}
