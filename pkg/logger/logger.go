package logger

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger per concern. Semuanya no-op sampai InitLoggers dipanggil.
var (
	ErrorLogger    = zap.NewNop()
	AuditLogger    = zap.NewNop()
	RequestLogger  = zap.NewNop()
	SecurityLogger = zap.NewNop()
	SystemLogger   = zap.NewNop()
	ContextLogger  = zap.NewNop()
)

func newLogger(filePath string, level zapcore.Level, console bool) *zap.Logger {
	ws := zapcore.AddSync(&lumberjack.Logger{
		Filename:   filePath,
		MaxSize:    100, // MB
		MaxBackups: 30,
		MaxAge:     90, // days
	})

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "timestamp"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		ws,
		level,
	)
	if console {
		core = zapcore.NewTee(core, zapcore.NewCore(
			zapcore.NewConsoleEncoder(encoderCfg),
			zapcore.AddSync(os.Stdout),
			level,
		))
	}
	return zap.New(core)
}

// InitLoggers membuat file log di dir. System dan error log juga ditulis ke stdout.
func InitLoggers(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	ErrorLogger = newLogger(filepath.Join(dir, "errors.log"), zapcore.ErrorLevel, true)
	AuditLogger = newLogger(filepath.Join(dir, "audit.log"), zapcore.InfoLevel, false)
	RequestLogger = newLogger(filepath.Join(dir, "request.log"), zapcore.InfoLevel, false)
	SecurityLogger = newLogger(filepath.Join(dir, "security.log"), zapcore.WarnLevel, false)
	SystemLogger = newLogger(filepath.Join(dir, "system.log"), zapcore.InfoLevel, true)
	ContextLogger = newLogger(filepath.Join(dir, "context.log"), zapcore.DebugLevel, false)
	return nil
}

func SyncLoggers() {
	_ = ErrorLogger.Sync()
	_ = AuditLogger.Sync()
	_ = RequestLogger.Sync()
	_ = SecurityLogger.Sync()
	_ = SystemLogger.Sync()
	_ = ContextLogger.Sync()
}
