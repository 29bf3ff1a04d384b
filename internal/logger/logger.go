package logger

import (
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
)

var (
	mu          sync.Mutex
	globalBase  *zap.Logger
	globalSugar *zap.SugaredLogger
)

// Init builds the global zap logger. env is "production"/"prod" or anything
// else for development config. Safe to call more than once; only the first
// call takes effect.
func Init(env string) (*zap.SugaredLogger, error) {
	mu.Lock()
	defer mu.Unlock()
	if globalSugar != nil {
		return globalSugar, nil
	}

	var cfg zap.Config
	if strings.EqualFold(env, "prod") || strings.EqualFold(env, "production") {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}
	// The TUI owns the terminal; keep logs off stdout.
	cfg.OutputPaths = []string{"stderr"}

	base, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	zap.ReplaceGlobals(base)

	globalBase = base
	globalSugar = base.Sugar()
	return globalSugar, nil
}

// L returns the global sugared logger, initializing it on first use. A
// failed build yields a per-call nop logger without touching the globals,
// so a later Init can still succeed.
func L() *zap.SugaredLogger {
	s, err := Init(os.Getenv("LOG_ENV"))
	if err != nil {
		return zap.NewNop().Sugar()
	}
	return s
}

// Base returns the non-sugared global logger.
func Base() *zap.Logger {
	L()
	mu.Lock()
	defer mu.Unlock()
	if globalBase == nil {
		return zap.NewNop()
	}
	return globalBase
}

// Sync flushes any buffered log entries.
func Sync() {
	mu.Lock()
	base := globalBase
	mu.Unlock()
	if base != nil {
		_ = base.Sync()
	}
}
