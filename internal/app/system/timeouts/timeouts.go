// Package timeouts holds the deadlines pmhub applies outside the project core.
//
// The project and team operations set no deadlines of their own; they rely
// on the Mongo client's operation timeout. The values here bound the
// supporting paths:
//   - Ping: health checks and startup connectivity
//   - Short: product catalog reads and writes, session lookups
//   - Repair: one pass of the cascade repair worker
//   - Shutdown: draining the HTTP server and disconnecting Mongo
package timeouts

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Default timeout values (used if Configure is not called).
const (
	DefaultPing     = 2 * time.Second
	DefaultShort    = 5 * time.Second
	DefaultRepair   = 60 * time.Second
	DefaultShutdown = 10 * time.Second
)

var (
	mu       sync.RWMutex
	ping     = DefaultPing
	short    = DefaultShort
	repair   = DefaultRepair
	shutdown = DefaultShutdown
)

// Ping returns the timeout for connectivity checks.
func Ping() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return ping
}

// Short returns the timeout for single catalog operations.
func Short() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return short
}

// Repair returns the timeout for one reconciliation pass.
func Repair() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return repair
}

// Shutdown returns the timeout for graceful shutdown steps.
func Shutdown() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return shutdown
}

// Config holds timeout overrides. Zero values keep the current setting.
type Config struct {
	Ping     time.Duration
	Short    time.Duration
	Repair   time.Duration
	Shutdown time.Duration
}

// Configure applies cfg. Call it during startup before handlers are built.
func Configure(cfg Config) {
	mu.Lock()
	defer mu.Unlock()
	if cfg.Ping > 0 {
		ping = cfg.Ping
	}
	if cfg.Short > 0 {
		short = cfg.Short
	}
	if cfg.Repair > 0 {
		repair = cfg.Repair
	}
	if cfg.Shutdown > 0 {
		shutdown = cfg.Shutdown
	}
}

// Reset restores the defaults. Tests use it.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	ping = DefaultPing
	short = DefaultShort
	repair = DefaultRepair
	shutdown = DefaultShutdown
}

// Current returns the active configuration for logging.
func Current() Config {
	mu.RLock()
	defer mu.RUnlock()
	return Config{Ping: ping, Short: short, Repair: repair, Shutdown: shutdown}
}

// WithTimeout is context.WithTimeout whose cancel func logs a warning when
// the deadline was the reason the operation ended.
//
//	ctx, cancel := timeouts.WithTimeout(ctx, timeouts.Repair(), log, "cascade repair")
//	defer cancel()
func WithTimeout(parent context.Context, timeout time.Duration, log *zap.Logger, operation string) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(parent, timeout)
	return ctx, func() {
		if ctx.Err() == context.DeadlineExceeded && log != nil {
			log.Warn("operation timed out",
				zap.String("operation", operation),
				zap.Duration("timeout", timeout),
			)
		}
		cancel()
	}
}
