package utils

import (
	"github.com/iov-one/paylock"
	"github.com/iov-one/paylock/errors"
)

// Recovery is a decorator to recover from panics in transactions,
// so we can log them as errors
type Recovery struct{}

var _ paylock.Decorator = Recovery{}

// NewRecovery creates a Recovery decorator
func NewRecovery() Recovery {
	return Recovery{}
}

// Check turns panics into normal errors
func (Recovery) Check(ctx paylock.Context, store paylock.KVStore, tx paylock.Tx, next paylock.Checker) (_ *paylock.CheckResult, err error) {
	defer errors.Recover(&err)
	return next.Check(ctx, store, tx)
}

// Deliver turns panics into normal errors
func (Recovery) Deliver(ctx paylock.Context, store paylock.KVStore, tx paylock.Tx, next paylock.Deliverer) (_ *paylock.DeliverResult, err error) {
	defer errors.Recover(&err)
	return next.Deliver(ctx, store, tx)
}
