package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"service-launcher/internal/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	base          = zap.NewNop()
	defaultLogger = base.Sugar()
)

// GetLogLevelFromString 将字符串转换为日志级别，无法识别时返回WARN
func GetLogLevelFromString(level string) zapcore.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.WarnLevel
	}
}

/**
 * Initialize the logging system
 * @param {*config.LogConfig} cfg - Logging configuration
 * @param {bool} isServerMode - Server mode logs at least at info level and always to stderr as well
 * @returns {error} Error when the log file cannot be prepared
 * @description
 * - Path "" or "console" writes to stderr, anything else appends to the file
 * - Format "json" uses the zap production encoder, otherwise the console encoder
 */
func InitLoggerWithMode(cfg *config.LogConfig, isServerMode bool) error {
	level := GetLogLevelFromString(cfg.Level)
	if isServerMode && level > zapcore.InfoLevel {
		level = zapcore.InfoLevel
	}

	var zcfg zap.Config
	if cfg.Format == "json" {
		zcfg = zap.NewProductionConfig()
	} else {
		zcfg = zap.NewDevelopmentConfig()
		zcfg.Development = false
		zcfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)
	zcfg.Sampling = nil

	outputs := []string{"stderr"}
	if cfg.Path != "" && cfg.Path != "console" {
		// 确保日志目录存在
		if err := os.MkdirAll(filepath.Dir(cfg.Path), 0755); err != nil {
			return fmt.Errorf("create log directory: %w", err)
		}
		outputs = []string{cfg.Path}
		if isServerMode {
			outputs = append(outputs, "stderr")
		}
	}
	zcfg.OutputPaths = outputs
	zcfg.ErrorOutputPaths = []string{"stderr"}

	l, err := zcfg.Build(
		zap.AddCallerSkip(1),
		zap.AddStacktrace(zapcore.FatalLevel),
	)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	base = l
	defaultLogger = l.Sugar()
	return nil
}

// InitLogger 初始化CLI模式的日志系统
func InitLogger(cfg *config.LogConfig) error {
	return InitLoggerWithMode(cfg, false)
}

func Sync() {
	_ = base.Sync()
}

func Debugf(format string, v ...interface{}) {
	defaultLogger.Debugf(format, v...)
}

func Infof(format string, v ...interface{}) {
	defaultLogger.Infof(format, v...)
}

func Warnf(format string, v ...interface{}) {
	defaultLogger.Warnf(format, v...)
}

func Errorf(format string, v ...interface{}) {
	defaultLogger.Errorf(format, v...)
}

// Infow 输出带键值对的信息日志
func Infow(msg string, keysAndValues ...interface{}) {
	defaultLogger.Infow(msg, keysAndValues...)
}

func Warnw(msg string, keysAndValues ...interface{}) {
	defaultLogger.Warnw(msg, keysAndValues...)
}

func Errorw(msg string, keysAndValues ...interface{}) {
	defaultLogger.Errorw(msg, keysAndValues...)
}

// Fatal 输出致命错误日志并退出程序
func Fatal(v ...interface{}) {
	if base.Core().Enabled(zapcore.FatalLevel) {
		defaultLogger.Fatal(v...)
	}
	fmt.Fprintln(os.Stderr, append([]interface{}{"FATAL:"}, v...)...)
	os.Exit(1)
}

func Fatalf(format string, v ...interface{}) {
	Fatal(fmt.Sprintf(format, v...))
}
