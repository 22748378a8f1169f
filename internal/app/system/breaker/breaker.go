// Package breaker fails store calls fast while MongoDB is unhealthy.
//
// Only infrastructure failures count toward tripping. Expected outcomes such
// as a missing document or a canceled request do not.
package breaker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sony/gobreaker"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// ErrOpen is returned without calling the store while the breaker is open.
var ErrOpen = errors.New("store unavailable")

// Breaker wraps a gobreaker.CircuitBreaker. A nil *Breaker passes calls
// straight through.
type Breaker struct {
	cb *gobreaker.CircuitBreaker
}

// New returns a Breaker that opens after maxFailures consecutive failures
// and probes again after openFor. maxFailures of 0 disables the breaker.
func New(name string, maxFailures uint32, openFor time.Duration, log *zap.Logger) *Breaker {
	if maxFailures == 0 {
		return nil
	}
	if openFor <= 0 {
		openFor = 5 * time.Second
	}
	return &Breaker{cb: gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     openFor,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		IsSuccessful: isSuccessful,
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})}
}

func isSuccessful(err error) bool {
	switch {
	case err == nil:
		return true
	case errors.Is(err, mongo.ErrNoDocuments):
		return true
	case errors.Is(err, context.Canceled):
		return true
	case mongo.IsDuplicateKeyError(err):
		return true
	}
	return false
}

// Do runs fn through the breaker.
func (b *Breaker) Do(fn func() error) error {
	_, err := Call(b, func() (struct{}, error) {
		return struct{}{}, fn()
	})
	return err
}

// Call runs fn through b and returns its result.
func Call[T any](b *Breaker, fn func() (T, error)) (T, error) {
	if b == nil {
		return fn()
	}
	out, err := b.cb.Execute(func() (interface{}, error) {
		return fn()
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		var zero T
		return zero, fmt.Errorf("%w: %v", ErrOpen, err)
	}
	v, _ := out.(T)
	return v, err
}

// State reports the current breaker state for health output.
func (b *Breaker) State() string {
	if b == nil {
		return "disabled"
	}
	return b.cb.State().String()
}
