// Package log provides structured logging for irscope.
// Entries go to a debug log file, a bounded in-memory buffer used by the log
// overlay, and a pubsub broker so the TUI can follow new entries live.
package log

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/zjrosen/irscope/internal/pubsub"
)

// Level represents log severity.
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
		return "UNKNOWN"
	}
}

// Category groups related log messages.
type Category string

const (
	CatCompile Category = "compile" // Compiler invocations and results
	CatUI      Category = "ui"      // UI component updates
	CatLayout  Category = "layout"  // Resize gestures
	CatHover   Category = "hover"   // Span highlighting
	CatConfig  Category = "config"  // Configuration loading/saving
	CatWatcher Category = "watcher" // Source file watcher events
	CatCache   Category = "cache"   // Compile cache
	CatTrace   Category = "trace"   // Tracing provider
)

// DefaultBufferSize is the number of entries kept for the log overlay.
const DefaultBufferSize = 500

// Logger provides structured logging.
type Logger struct {
	mu       sync.Mutex
	file     *os.File
	writer   io.Writer
	enabled  bool
	minLevel Level
	buffer   []string
	bufSize  int
	broker   *pubsub.Broker[string]
}

var (
	defaultLogger *Logger
	once          sync.Once
)

// Init initializes the global logger writing to path.
// Returns a cleanup function to close the log file.
func Init(path string) (func(), error) {
	var initErr error
	once.Do(func() {
		defaultLogger, initErr = newLogger(path)
	})
	if initErr != nil {
		return nil, initErr
	}
	if defaultLogger == nil {
		return nil, fmt.Errorf("logger initialization failed or already attempted")
	}
	return func() {
		if defaultLogger != nil && defaultLogger.file != nil {
			_ = defaultLogger.file.Close()
		}
	}, nil
}

// InitWriter installs a logger writing to w. Tests use it with a buffer.
func InitWriter(w io.Writer) {
	defaultLogger = &Logger{
		writer:   w,
		enabled:  true,
		minLevel: LevelDebug,
		bufSize:  DefaultBufferSize,
		broker:   pubsub.NewBroker[string](),
	}
}

func newLogger(path string) (*Logger, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644) //nolint:gosec // G304: path is user-controlled debug log path
	if err != nil {
		return nil, err
	}

	return &Logger{
		file:     f,
		writer:   f,
		enabled:  true,
		minLevel: LevelDebug,
		bufSize:  DefaultBufferSize,
		broker:   pubsub.NewBroker[string](),
	}, nil
}

// SetEnabled toggles logging on/off.
func SetEnabled(enabled bool) {
	if defaultLogger != nil {
		defaultLogger.mu.Lock()
		defaultLogger.enabled = enabled
		defaultLogger.mu.Unlock()
	}
}

// SetMinLevel sets the minimum log level.
func SetMinLevel(level Level) {
	if defaultLogger != nil {
		defaultLogger.mu.Lock()
		defaultLogger.minLevel = level
		defaultLogger.mu.Unlock()
	}
}

// Debug logs at debug level.
func Debug(cat Category, msg string, fields ...any) {
	log(LevelDebug, cat, msg, fields...)
}

// Info logs at info level.
func Info(cat Category, msg string, fields ...any) {
	log(LevelInfo, cat, msg, fields...)
}

// Warn logs at warning level.
func Warn(cat Category, msg string, fields ...any) {
	log(LevelWarn, cat, msg, fields...)
}

// Error logs at error level.
func Error(cat Category, msg string, fields ...any) {
	log(LevelError, cat, msg, fields...)
}

// ErrorErr logs an error with the error value.
func ErrorErr(cat Category, msg string, err error, fields ...any) {
	if err != nil {
		fields = append(fields, "error", err.Error())
	} else {
		fields = append(fields, "error", "<nil>")
	}
	log(LevelError, cat, msg, fields...)
}

func log(level Level, cat Category, msg string, fields ...any) {
	if defaultLogger == nil {
		return
	}

	defaultLogger.mu.Lock()
	defer defaultLogger.mu.Unlock()

	if !defaultLogger.enabled || level < defaultLogger.minLevel {
		return
	}

	// Format: 2025-12-06T10:45:00 [ERROR] [compile] message key=value key2=value2
	timestamp := time.Now().Format("2006-01-02T15:04:05")
	entry := fmt.Sprintf("%s [%s] [%s] %s", timestamp, level, cat, msg)

	for i := 0; i+1 < len(fields); i += 2 {
		entry += fmt.Sprintf(" %v=%v", fields[i], fields[i+1])
	}
	// Odd field count: orphan key with no value
	if len(fields)%2 != 0 {
		entry += fmt.Sprintf(" %v=<missing>", fields[len(fields)-1])
	}
	entry += "\n"

	if defaultLogger.writer != nil {
		_, _ = defaultLogger.writer.Write([]byte(entry))
	}

	defaultLogger.buffer = append(defaultLogger.buffer, entry)
	if over := len(defaultLogger.buffer) - defaultLogger.bufSize; over > 0 {
		defaultLogger.buffer = defaultLogger.buffer[over:]
	}

	if defaultLogger.broker != nil {
		defaultLogger.broker.Publish(pubsub.CreatedEvent, entry)
	}
}

// GetRecentLogs returns up to n of the most recent entries, oldest first.
func GetRecentLogs(n int) []string {
	if defaultLogger == nil {
		return nil
	}
	defaultLogger.mu.Lock()
	defer defaultLogger.mu.Unlock()

	start := max(len(defaultLogger.buffer)-n, 0)
	out := make([]string, len(defaultLogger.buffer)-start)
	copy(out, defaultLogger.buffer[start:])
	return out
}

// ClearBuffer empties the in-memory buffer. The log file is untouched.
func ClearBuffer() {
	if defaultLogger == nil {
		return
	}
	defaultLogger.mu.Lock()
	defaultLogger.buffer = nil
	defaultLogger.mu.Unlock()
}

// LogEvent is a pubsub event containing a log entry.
type LogEvent = pubsub.Event[string]

// LogListener wraps a continuous listener for log events.
type LogListener = pubsub.ContinuousListener[string]

// NewListener creates a new log event listener.
// The listener is automatically cleaned up when the context is cancelled.
func NewListener(ctx context.Context) *LogListener {
	if defaultLogger == nil || defaultLogger.broker == nil {
		return nil
	}
	return pubsub.NewContinuousListener(ctx, defaultLogger.broker)
}
