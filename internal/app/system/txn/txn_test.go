package txn

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// standalone mimics Run against a server without transactions: the first
// attempt fails inside the transaction and fn is retried without one.
func standalone(calls *int) func(context.Context, func(context.Context) error) error {
	return func(ctx context.Context, fn func(context.Context) error) error {
		*calls++
		err := fn(ctx)
		if IsNotSupported(err) {
			return fn(ctx)
		}
		return err
	}
}

var errNoReplicaSet = mongo.CommandError{
	Code:    20,
	Message: "Transaction numbers are only allowed on a replica set member or mongos",
}

func TestRunner_RemembersUnsupportedDeployment(t *testing.T) {
	var txCalls, fnCalls int
	r := &Runner{log: zap.NewNop(), inTx: standalone(&txCalls)}

	deactivate := func(ctx context.Context) error {
		fnCalls++
		if fnCalls == 1 {
			return errNoReplicaSet
		}
		return nil
	}

	if err := r.RunInTx(context.Background(), deactivate); err != nil {
		t.Fatalf("first delete: %v", err)
	}
	if r.Atomic() {
		t.Error("runner should stop attempting transactions after a rejection")
	}
	if err := r.RunInTx(context.Background(), deactivate); err != nil {
		t.Fatalf("second delete: %v", err)
	}
	if txCalls != 1 {
		t.Errorf("transaction attempts = %d, want 1", txCalls)
	}
	if fnCalls != 3 {
		t.Errorf("fn calls = %d, want 3 (rejected, retried, direct)", fnCalls)
	}
}

func TestRunner_FallsBackWhenSessionRejected(t *testing.T) {
	r := &Runner{
		log: zap.NewNop(),
		inTx: func(context.Context, func(context.Context) error) error {
			return fmt.Errorf("start session: %w", errNoReplicaSet)
		},
	}

	ran := 0
	err := r.RunInTx(context.Background(), func(context.Context) error {
		ran++
		return nil
	})
	if err != nil {
		t.Fatalf("RunInTx: %v", err)
	}
	if ran != 1 || r.Atomic() {
		t.Errorf("ran=%d atomic=%v, want ran=1 atomic=false", ran, r.Atomic())
	}
}

func TestRunner_WriteFailureKeepsTransactions(t *testing.T) {
	var txCalls int
	r := &Runner{log: zap.NewNop(), inTx: standalone(&txCalls)}
	cascade := errors.New("deactivate tasks: write concern timeout")

	for i := 0; i < 2; i++ {
		err := r.RunInTx(context.Background(), func(context.Context) error { return cascade })
		if !errors.Is(err, cascade) {
			t.Fatalf("attempt %d: got %v, want cascade error", i, err)
		}
	}
	if txCalls != 2 || !r.Atomic() {
		t.Errorf("txCalls=%d atomic=%v, want 2 and true", txCalls, r.Atomic())
	}
}

func TestIsNotSupported(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"plain write failure", errors.New("E11000 duplicate key"), false},
		{"standalone server", errNoReplicaSet, true},
		{"illegal operation code", mongo.CommandError{Code: 51}, true},
		{"not allowed in transaction", mongo.CommandError{Code: 263}, true},
		{"unrelated command error", mongo.CommandError{Code: 11600, Message: "interrupted at shutdown"}, false},
		{"wrapped by a store", fmt.Errorf("deactivate project: %w", errNoReplicaSet), true},
		{"driver message about sessions", errors.New("Sessions are not supported by this deployment"), true},
		{"transaction on a replica set only", errors.New("Transactions require a REPLICA SET"), true},
		{"transaction word alone", errors.New("transaction aborted"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsNotSupported(tt.err); got != tt.want {
				t.Errorf("IsNotSupported(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
