package logger

import (
	"fmt"
	"time"

	"fyne.io/fyne/v2/data/binding"
	"go.uber.org/zap"

	"github.com/ConserveLee/aim-assist/internal/constants"
)

// LogLevel defines the severity of the log
type LogLevel int

const (
	LevelInfo LogLevel = iota
	LevelError
	LevelDebug
)

// AppLogger handles application logging to UI and console
type AppLogger struct {
	dataBinding binding.StringList
	console     *zap.SugaredLogger
	maxLines    int
}

// NewAppLogger creates a new logger instance. A nil console discards debug output.
func NewAppLogger(data binding.StringList, console *zap.SugaredLogger) *AppLogger {
	if console == nil {
		console = zap.NewNop().Sugar()
	}
	return &AppLogger{
		dataBinding: data,
		console:     console,
		maxLines:    constants.MaxLogLines,
	}
}

// NewConsole builds the development console logger used for debug output
func NewConsole() (*zap.SugaredLogger, error) {
	l, err := zap.NewDevelopment()
	if err != nil {
		return nil, fmt.Errorf("failed to build console logger: %w", err)
	}
	return l.Sugar(), nil
}

// Info logs an informational message
func (l *AppLogger) Info(format string, args ...interface{}) {
	l.log("INFO", format, args...)
	l.console.Infof(format, args...)
}

// Error logs an error message
func (l *AppLogger) Error(format string, args ...interface{}) {
	l.log("ERROR", format, args...)
	l.console.Errorf(format, args...)
}

// Debug logs a debug message to the console only (to keep UI clean)
func (l *AppLogger) Debug(format string, args ...interface{}) {
	l.console.Debugf(format, args...)
}

// Sync flushes the console logger
func (l *AppLogger) Sync() {
	_ = l.console.Sync()
}

// log handles the formatting and appending
func (l *AppLogger) log(level, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	timestamp := time.Now().Format("15:04:05")
	formattedMsg := fmt.Sprintf("[%s] %s: %s", timestamp, level, msg)

	l.dataBinding.Append(formattedMsg)

	// Keep log size manageable
	list, _ := l.dataBinding.Get()
	if len(list) > l.maxLines {
		l.dataBinding.Set(list[len(list)-l.maxLines:])
	}
}
