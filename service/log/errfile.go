package log

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ErrorFile returns a logger that appends timestamped entries of level ERROR
// and above to the given file, creating it if needed. The file is kept open
// for the life of the logger.
func ErrorFile(path string) (*zap.Logger, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("ErrorFile.OpenFile: %w", err)
	}
	conf := zap.NewProductionEncoderConfig()
	conf.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(conf), zapcore.AddSync(f), zapcore.ErrorLevel)
	return zap.New(core), nil
}
