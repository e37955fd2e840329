// Package logging writes structured JSON logs to a file. The interface owns
// the terminal, so nothing here may touch stdout or stderr once the program
// is running.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const defaultLogFile = "claimdeck.log"

var (
	mu     sync.Mutex
	logger = zap.NewNop()
)

// Configure points the shared logger at the given file, creating parent
// directories when missing. An empty path falls back to the default file in
// the working directory.
func Configure(path string) error {
	mu.Lock()
	defer mu.Unlock()

	if path == "" {
		path = defaultLogFile
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create log directory: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		zapcore.Lock(zapcore.AddSync(f)),
		zap.DebugLevel,
	)
	logger = zap.New(core)
	return nil
}

// L returns the shared logger.
func L() *zap.Logger {
	mu.Lock()
	defer mu.Unlock()
	return logger
}

// Error logs an error when there is one.
func Error(err error) {
	if err == nil {
		return
	}
	L().Error("error", zap.Error(err))
}

// Sync flushes buffered entries. Called on shutdown.
func Sync() {
	_ = L().Sync()
}
