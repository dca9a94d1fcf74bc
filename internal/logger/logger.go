package logger

import (
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Field is a structured log field.
type Field = zap.Field

// Logger is the structured logger handed to every component. Packages use
// the field constructors below instead of importing zap.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	Fatal(msg string, fields ...Field)

	Debugf(template string, args ...interface{})
	Infof(template string, args ...interface{})
	Warnf(template string, args ...interface{})
	Errorf(template string, args ...interface{})
	Fatalf(template string, args ...interface{})

	// Named returns a child logger tagged with a component name.
	Named(name string) Logger
	// With returns a child logger adding fields to every entry.
	With(fields ...Field) Logger

	Sync() error
}

type loggerImpl struct {
	base    *zap.Logger
	sugared *zap.SugaredLogger
}

// New builds the process logger: colored console output when pretty,
// JSON otherwise. Every entry carries service=secdash.
func New(level string, pretty bool) Logger {
	var cfg zap.Config
	if pretty {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		cfg = zap.NewProductionConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(parseLevel(level))

	base, err := cfg.Build(
		zap.AddStacktrace(zapcore.FatalLevel), // Only add stack traces for Fatal
	)
	if err != nil {
		panic(err)
	}

	return wrap(base.With(zap.String("service", "secdash")))
}

// NewNop returns a logger that discards everything. Intended for tests.
func NewNop() Logger {
	return wrap(zap.NewNop())
}

func wrap(base *zap.Logger) Logger {
	return &loggerImpl{
		base:    base,
		sugared: base.Sugar(),
	}
}

// parseLevel accepts zap level names in any case. Unknown names mean info.
func parseLevel(lvl string) zapcore.Level {
	l, err := zapcore.ParseLevel(strings.ToLower(strings.TrimSpace(lvl)))
	if err != nil {
		return zapcore.InfoLevel
	}
	return l
}

func (l *loggerImpl) Debug(msg string, fields ...Field) { l.base.Debug(msg, fields...) }
func (l *loggerImpl) Info(msg string, fields ...Field)  { l.base.Info(msg, fields...) }
func (l *loggerImpl) Warn(msg string, fields ...Field)  { l.base.Warn(msg, fields...) }
func (l *loggerImpl) Error(msg string, fields ...Field) { l.base.Error(msg, fields...) }
func (l *loggerImpl) Fatal(msg string, fields ...Field) { l.base.Fatal(msg, fields...) }

func (l *loggerImpl) Debugf(t string, args ...interface{}) { l.sugared.Debugf(t, args...) }
func (l *loggerImpl) Infof(t string, args ...interface{})  { l.sugared.Infof(t, args...) }
func (l *loggerImpl) Warnf(t string, args ...interface{})  { l.sugared.Warnf(t, args...) }
func (l *loggerImpl) Errorf(t string, args ...interface{}) { l.sugared.Errorf(t, args...) }
func (l *loggerImpl) Fatalf(t string, args ...interface{}) { l.sugared.Fatalf(t, args...) }

func (l *loggerImpl) Named(name string) Logger    { return wrap(l.base.Named(name)) }
func (l *loggerImpl) With(fields ...Field) Logger { return wrap(l.base.With(fields...)) }

func (l *loggerImpl) Sync() error { return l.base.Sync() }

// Field constructors, so other packages log without importing zap.
func String(key, val string) Field                 { return zap.String(key, val) }
func Strings(key string, val []string) Field       { return zap.Strings(key, val) }
func Int(key string, val int) Field                { return zap.Int(key, val) }
func Int64(key string, val int64) Field            { return zap.Int64(key, val) }
func Bool(key string, val bool) Field              { return zap.Bool(key, val) }
func Duration(key string, val time.Duration) Field { return zap.Duration(key, val) }
func Error(err error) Field                        { return zap.Error(err) }
