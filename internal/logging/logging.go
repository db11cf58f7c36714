package logging

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// sugared zap logger shared by the CLI and the conversion stages
type Logger struct {
	*zap.SugaredLogger
}

// builds a console logger on stderr; verbose enables debug output,
// otherwise only warnings and errors are printed
func NewLogger(verbose bool) *Logger {
	level := zapcore.WarnLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	return build(zapcore.Lock(os.Stderr), level, true)
}

// builds a logger writing plain console-encoded entries to sink at or above level
func New(sink zapcore.WriteSyncer, level zapcore.Level) *Logger {
	return build(sink, level, false)
}

func build(sink zapcore.WriteSyncer, level zapcore.Level, color bool) *Logger {
	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	if color {
		encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), sink, level)
	return FromCore(core)
}

// wraps an existing zap core, used by tests with zaptest/observer
func FromCore(core zapcore.Core) *Logger {
	return &Logger{SugaredLogger: zap.New(core).Sugar()}
}

// logger that discards everything
func Nop() *Logger {
	return &Logger{SugaredLogger: zap.NewNop().Sugar()}
}

// returns l, or a no-op logger when l is nil
func OrNop(l *Logger) *Logger {
	if l == nil || l.SugaredLogger == nil {
		return Nop()
	}
	return l
}
