package breaker

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func TestBreaker_OpensAfterConsecutiveFailures(t *testing.T) {
	b := New("test", 3, time.Minute, zap.NewNop())
	boom := errors.New("connection refused")

	for i := 0; i < 3; i++ {
		if err := b.Do(func() error { return boom }); !errors.Is(err, boom) {
			t.Fatalf("call %d: got %v, want boom", i, err)
		}
	}

	called := false
	err := b.Do(func() error { called = true; return nil })
	if !errors.Is(err, ErrOpen) {
		t.Errorf("got %v, want ErrOpen", err)
	}
	if called {
		t.Error("fn must not run while the breaker is open")
	}
	if b.State() != "open" {
		t.Errorf("State = %q, want open", b.State())
	}
}

func TestBreaker_ExpectedErrorsDoNotTrip(t *testing.T) {
	b := New("test", 2, time.Minute, zap.NewNop())

	expected := []error{
		mongo.ErrNoDocuments,
		fmt.Errorf("get project: %w", mongo.ErrNoDocuments),
		context.Canceled,
	}
	for i := 0; i < 3; i++ {
		for _, e := range expected {
			_ = b.Do(func() error { return e })
		}
	}

	if b.State() != "closed" {
		t.Errorf("State = %q, want closed", b.State())
	}
}

func TestCall_ReturnsValue(t *testing.T) {
	b := New("test", 1, time.Minute, zap.NewNop())
	got, err := Call(b, func() (int, error) { return 42, nil })
	if err != nil || got != 42 {
		t.Errorf("Call = %d, %v", got, err)
	}
}

func TestNilBreaker_PassesThrough(t *testing.T) {
	var b *Breaker
	got, err := Call(b, func() (string, error) { return "ok", nil })
	if err != nil || got != "ok" {
		t.Errorf("Call = %q, %v", got, err)
	}
	if b.State() != "disabled" {
		t.Errorf("State = %q", b.State())
	}
	if New("off", 0, time.Second, zap.NewNop()) != nil {
		t.Error("maxFailures 0 should disable the breaker")
	}
}
