package timeouts

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestConfigure_IgnoresZeroValues(t *testing.T) {
	t.Cleanup(Reset)

	Configure(Config{Short: 7 * time.Second})

	got := Current()
	if got.Short != 7*time.Second {
		t.Errorf("Short = %v, want 7s", got.Short)
	}
	if got.Ping != DefaultPing {
		t.Errorf("Ping = %v, want default %v", got.Ping, DefaultPing)
	}
	if got.Repair != DefaultRepair {
		t.Errorf("Repair = %v, want default %v", got.Repair, DefaultRepair)
	}
}

func TestReset(t *testing.T) {
	Configure(Config{Ping: time.Minute, Shutdown: time.Minute})
	Reset()

	if Ping() != DefaultPing || Shutdown() != DefaultShutdown {
		t.Errorf("Reset did not restore defaults: %+v", Current())
	}
}

func TestWithTimeout_Expires(t *testing.T) {
	ctx, cancel := WithTimeout(context.Background(), time.Millisecond, zap.NewNop(), "test")
	defer cancel()

	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatal("context did not expire")
	}
	if ctx.Err() != context.DeadlineExceeded {
		t.Errorf("Err = %v, want DeadlineExceeded", ctx.Err())
	}
}
