// Package logging builds the process logger: JSON records appended to a file
// in the configured log directory, duplicated to the console.
package logging

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const fileTimeLayout = "2006-01-02_15-04-05"

// ErrInvalidLevel indicates a verbosity string that names no log level.
var ErrInvalidLevel = errors.New("invalid log level")

// Options configures New.
type Options struct {
	// Dir is created if missing.
	Dir string
	// Level is a verbosity name such as "info" or "debug".
	Level string
	// Name prefixes the log file name. Defaults to "squadconv".
	Name string
	// Console receives the duplicated records. Defaults to os.Stderr.
	Console io.Writer
	// Now stamps the log file name. Defaults to time.Now.
	Now func() time.Time
}

// Logger is a zap logger bound to an open log file.
type Logger struct {
	*zap.Logger
	file *os.File
	path string
}

// ParseLevel maps a verbosity name onto a zap level. Matching ignores case
// and accepts "trace" and "warning" as aliases of debug and warn.
func ParseLevel(s string) (zapcore.Level, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	switch name {
	case "trace":
		return zapcore.DebugLevel, nil
	case "warning":
		return zapcore.WarnLevel, nil
	case "":
		return zapcore.InfoLevel, fmt.Errorf("%w: empty", ErrInvalidLevel)
	}

	level, err := zapcore.ParseLevel(name)
	if err != nil {
		return zapcore.InfoLevel, fmt.Errorf("%w: %q", ErrInvalidLevel, s)
	}
	return level, nil
}

// New opens a fresh log file in opts.Dir and returns a logger writing to it
// and to the console at the configured level.
func New(opts Options) (*Logger, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}

	name := opts.Name
	if name == "" {
		name = "squadconv"
	}
	console := opts.Console
	if console == nil {
		console = os.Stderr
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}

	path := filepath.Join(opts.Dir, fmt.Sprintf("%s_%s.log", name, now().Format(fileTimeLayout)))
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "timestamp"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encCfg.StacktraceKey = "stacktrace"

	consoleCfg := encCfg
	consoleCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	core := zapcore.NewTee(
		zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), zapcore.AddSync(f), level),
		zapcore.NewCore(zapcore.NewConsoleEncoder(consoleCfg), zapcore.AddSync(console), level),
	)

	return &Logger{
		Logger: zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)),
		file:   f,
		path:   path,
	}, nil
}

// Path returns the log file path.
func (l *Logger) Path() string {
	return l.path
}

// Close flushes buffered records and closes the log file. Calling it again is a no-op.
func (l *Logger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}

	// Sync reports EINVAL/ENOTTY for terminals on the console core; only the file matters here.
	_ = l.Logger.Sync()
	syncErr := l.file.Sync()
	closeErr := l.file.Close()
	l.file = nil

	return errors.Join(syncErr, closeErr)
}
