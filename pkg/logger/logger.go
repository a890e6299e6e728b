package logger

import (
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Logger 全局日志实例
	Logger = zap.NewNop()

	// consoleOutput 控制台日志输出，默认 stderr
	// 部署命令的 stdout/stderr 原样透传，控制台日志只在 verbose 模式下出现
	consoleOutput io.Writer = os.Stderr

	// logFile --log-file 打开的文件，由 Close 关闭
	logFile *os.File
)

// SetConsoleOutput 设置控制台日志输出（测试用）
func SetConsoleOutput(w io.Writer) {
	consoleOutput = w
}

// InitLogger 初始化日志系统
func InitLogger(verbose bool, logPath string) error {
	Close()

	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalColorLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.SecondsDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	var cores []zapcore.Core

	if verbose {
		consoleCore := zapcore.NewCore(
			zapcore.NewConsoleEncoder(encoderConfig),
			zapcore.AddSync(consoleOutput),
			zapcore.DebugLevel,
		)
		cores = append(cores, consoleCore)
	}

	// 文件输出（如果指定），始终记录 Info 及以上
	if logPath != "" {
		if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
			return err
		}

		file, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return err
		}
		logFile = file

		level := zapcore.InfoLevel
		if verbose {
			level = zapcore.DebugLevel
		}

		fileEncoderConfig := encoderConfig
		fileEncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		fileCore := zapcore.NewCore(
			zapcore.NewJSONEncoder(fileEncoderConfig),
			zapcore.AddSync(file),
			level,
		)
		cores = append(cores, fileCore)
	}

	if len(cores) == 0 {
		Logger = zap.NewNop()
	} else {
		Logger = zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddCallerSkip(1))
	}

	return nil
}

// Sync 刷新日志缓冲区
func Sync() {
	_ = Logger.Sync()
}

// Close 刷新日志并关闭日志文件，之后的日志被丢弃
func Close() {
	Sync()
	Logger = zap.NewNop()
	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
}

// Debug 调试日志
func Debug(msg string, fields ...zap.Field) {
	Logger.Debug(msg, fields...)
}

// Info 信息日志
func Info(msg string, fields ...zap.Field) {
	Logger.Info(msg, fields...)
}
