package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"video-edit-service/pkg/config"
)

// Logger wraps a logrus instance configured from LogConfig.
type Logger struct {
	entry *logrus.Logger
	file  *os.File
}

var global = &Logger{entry: newDefault()}

func newDefault() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.InfoLevel)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return l
}

// NewLogger 根据配置创建日志器
func NewLogger(cfg *config.Config) *Logger {
	l := logrus.New()

	level, err := logrus.ParseLevel(strings.ToLower(cfg.Log.Level))
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)

	if strings.EqualFold(cfg.Log.Format, "json") {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	logger := &Logger{entry: l}
	switch strings.ToLower(cfg.Log.Output) {
	case "file":
		if cfg.Log.Filename != "" {
			f, err := os.OpenFile(cfg.Log.Filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
			if err == nil {
				l.SetOutput(io.MultiWriter(os.Stdout, f))
				logger.file = f
			}
		}
	default:
		l.SetOutput(os.Stdout)
	}

	return logger
}

// SetGlobalLogger 设置全局日志器
func SetGlobalLogger(l *Logger) {
	if l != nil {
		global = l
	}
}

// Close releases the log file if one was opened.
func (l *Logger) Close() {
	if l.file != nil {
		_ = l.file.Close()
	}
}

// Debug 输出调试日志
func Debug(msg string, fields map[string]interface{}) {
	global.entry.WithFields(logrus.Fields(fields)).Debug(msg)
}

// Info 输出信息日志
func Info(msg string, fields map[string]interface{}) {
	global.entry.WithFields(logrus.Fields(fields)).Info(msg)
}

// Warn 输出警告日志
func Warn(msg string, fields map[string]interface{}) {
	global.entry.WithFields(logrus.Fields(fields)).Warn(msg)
}

// Error 输出错误日志
func Error(msg string, fields map[string]interface{}) {
	global.entry.WithFields(logrus.Fields(fields)).Error(msg)
}

func Debugf(format string, args ...interface{}) {
	global.entry.Debugf(format, args...)
}

func Infof(format string, args ...interface{}) {
	global.entry.Infof(format, args...)
}

func Warnf(format string, args ...interface{}) {
	global.entry.Warnf(format, args...)
}

func Errorf(format string, args ...interface{}) {
	global.entry.Errorf(format, args...)
}

// Fatal 输出致命错误日志并退出
func Fatal(msg string) {
	global.entry.Fatal(msg)
}
