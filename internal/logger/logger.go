package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	"github.com/sirupsen/logrus"
)

// Options controls where and how NewLogger writes.
type Options struct {
	Dir     string
	Level   string
	MaxAge  time.Duration
	UseJSON bool
}

var (
	mu      sync.Mutex
	opts    = Options{Dir: "./logs", Level: "info", MaxAge: 7 * 24 * time.Hour}
	loggers = map[string]*logrus.Logger{}
)

// Setup replaces the defaults. Loggers created earlier keep their settings.
func Setup(o Options) {
	mu.Lock()
	defer mu.Unlock()
	if o.Dir != "" {
		opts.Dir = o.Dir
	}
	if o.Level != "" {
		opts.Level = o.Level
	}
	if o.MaxAge > 0 {
		opts.MaxAge = o.MaxAge
	}
	opts.UseJSON = o.UseJSON
}

// NewLogger returns the logger for logType, writing to <dir>/<logType>/<logType>.log
// with daily rotation. Calls with the same logType share one logger.
func NewLogger(logType string) *logrus.Logger {
	mu.Lock()
	defer mu.Unlock()
	if l, ok := loggers[logType]; ok {
		return l
	}

	l := logrus.New()
	logPath := filepath.Join(opts.Dir, logType)
	writer, err := openRotating(logPath, logType, opts.MaxAge)
	if err != nil {
		l.SetOutput(os.Stdout)
		l.Warnf("log file for %s unavailable, writing to stdout: %v", logType, err)
	} else {
		l.SetOutput(writer)
	}

	if opts.UseJSON {
		l.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339})
	} else {
		l.SetFormatter(&logrus.TextFormatter{
			TimestampFormat: "2006-01-02 15:04:05",
			FullTimestamp:   true,
			CallerPrettyfier: func(f *runtime.Frame) (string, string) {
				return f.Function, fmt.Sprintf("%s:%d", f.File, f.Line)
			},
		})
	}
	level, err := logrus.ParseLevel(opts.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)

	loggers[logType] = l
	return l
}

func openRotating(dir, name string, maxAge time.Duration) (*rotatelogs.RotateLogs, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	base := filepath.Join(dir, name+".log")
	return rotatelogs.New(
		base+".%Y-%m-%d",
		rotatelogs.WithLinkName(base),
		rotatelogs.WithRotationTime(24*time.Hour),
		rotatelogs.WithMaxAge(maxAge),
	)
}
