package log

import (
	"context"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type ctxKey struct{}

var defaultLogger *zap.Logger

func init() {
	conf := zap.NewProductionConfig()
	conf.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if os.Getenv("EEFETCH_DEBUG") != "" {
		conf.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	l, err := conf.Build(zap.AddStacktrace(zapcore.FatalLevel))
	if err != nil {
		panic(err)
	}
	defaultLogger = l
}

// Logger returns the logger attached to the context, or the process-wide default.
func Logger(ctx context.Context) *zap.Logger {
	if l, ok := ctx.Value(ctxKey{}).(*zap.Logger); ok {
		return l
	}
	return defaultLogger
}

// With returns a context whose logger carries the given key/value pairs in
// every entry.
func With(ctx context.Context, args ...interface{}) context.Context {
	return context.WithValue(ctx, ctxKey{}, Logger(ctx).Sugar().With(args...).Desugar())
}
