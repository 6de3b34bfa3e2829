package eventlog

import (
	"github.com/iov-one/paylock"
	"github.com/iov-one/paylock/errors"
)

// Decorator records events returned by a successful Deliver. Events are
// written to the same store as the transaction state changes, so both are
// either committed or discarded together.
type Decorator struct {
	log *Log
}

var _ paylock.Decorator = Decorator{}

// NewDecorator returns a decorator writing into given log.
func NewDecorator(l *Log) Decorator {
	return Decorator{log: l}
}

// Check does nothing. Events are only produced on Deliver.
func (d Decorator) Check(ctx paylock.Context, store paylock.KVStore, tx paylock.Tx, next paylock.Checker) (*paylock.CheckResult, error) {
	return next.Check(ctx, store, tx)
}

// Deliver appends emitted events to the log.
func (d Decorator) Deliver(ctx paylock.Context, store paylock.KVStore, tx paylock.Tx, next paylock.Deliverer) (*paylock.DeliverResult, error) {
	res, err := next.Deliver(ctx, store, tx)
	if err != nil {
		return nil, err
	}
	if _, err := d.log.Append(ctx, store, res.Events...); err != nil {
		return nil, errors.Wrap(err, "event log")
	}
	return res, nil
}
