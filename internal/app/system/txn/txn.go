// Package txn runs groups of writes in a MongoDB transaction when the
// deployment supports one.
//
// Standalone servers reject transactions. In that case the writes run
// sequentially without atomicity, and callers must tolerate a partial
// result (see workers.CascadeRepair for the project cascade).
package txn

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Run executes fn inside a transaction on db's client. If transactions are
// not supported, fn runs once more without one using ctx. fn must use the
// context it receives for every store call so that the calls join the
// transaction.
func Run(ctx context.Context, db *mongo.Database, log *zap.Logger, fn func(ctx context.Context) error) error {
	sess, err := db.Client().StartSession()
	if err != nil {
		if IsNotSupported(err) {
			log.Debug("sessions not supported; running without transaction", zap.Error(err))
			return fn(ctx)
		}
		return err
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	if err != nil && IsNotSupported(err) {
		log.Debug("transactions not supported; running without transaction", zap.Error(err))
		return fn(ctx)
	}
	return err
}

// Runner remembers whether the deployment rejected a transaction so that
// later calls skip straight to sequential writes.
type Runner struct {
	log         *zap.Logger
	unsupported atomic.Bool
	inTx        func(ctx context.Context, fn func(ctx context.Context) error) error
}

// NewRunner returns a Runner bound to db.
func NewRunner(db *mongo.Database, log *zap.Logger) *Runner {
	return &Runner{
		log: log,
		inTx: func(ctx context.Context, fn func(ctx context.Context) error) error {
			return Run(ctx, db, log, fn)
		},
	}
}

// RunInTx runs fn in a transaction when possible.
func (r *Runner) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if r.unsupported.Load() {
		return fn(ctx)
	}
	err := r.inTx(ctx, func(txCtx context.Context) error {
		err := fn(txCtx)
		if IsNotSupported(err) {
			r.markUnsupported()
		}
		return err
	})
	if IsNotSupported(err) {
		r.markUnsupported()
		return fn(ctx)
	}
	return err
}

// Atomic reports whether RunInTx still attempts transactions.
func (r *Runner) Atomic() bool {
	return !r.unsupported.Load()
}

func (r *Runner) markUnsupported() {
	if r.unsupported.CompareAndSwap(false, true) {
		r.log.Info("mongo deployment does not support transactions; multi-document writes are not atomic")
	}
}

// Server error codes returned when transactions are unavailable.
var notSupportedCodes = map[int32]bool{
	20:  true, // IllegalOperation
	51:  true,
	263: true, // OperationNotSupportedInTransaction
}

// IsNotSupported reports whether err means the server cannot run the
// operation inside a session or transaction (for example a standalone
// mongod).
func IsNotSupported(err error) bool {
	if err == nil {
		return false
	}

	var ce mongo.CommandError
	if errors.As(err, &ce) {
		if notSupportedCodes[ce.Code] {
			return true
		}
	}

	msg := strings.ToLower(err.Error())
	has := func(s string) bool { return strings.Contains(msg, s) }

	switch {
	case has("transaction") && has("replica set"):
		return true
	case has("session") && has("not supported"):
		return true
	case has("transaction") && has("session"):
		return true
	case has("illegal operation"):
		return true
	}
	return false
}
