package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var l = zap.NewNop()

// Init 初始化全局 logger，level: debug/info/warn/error
func Init(level string) error {
	lv, err := zapcore.ParseLevel(level)
	if err != nil {
		return err
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lv)
	lg, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return err
	}
	l = lg
	zap.ReplaceGlobals(lg)
	return nil
}

// L 返回底层 *zap.Logger
func L() *zap.Logger { return l }

func Debug(msg string, fields ...zap.Field) { l.Debug(msg, fields...) }
func Info(msg string, fields ...zap.Field)  { l.Info(msg, fields...) }
func Warn(msg string, fields ...zap.Field)  { l.Warn(msg, fields...) }
func Error(msg string, fields ...zap.Field) { l.Error(msg, fields...) }

func Sync() { _ = l.Sync() }
