package paylocktest

import "github.com/iov-one/paylock"

// Decorator is a mock implementation of the paylock.Decorator interface.
//
// Set CheckErr or DeliverErr to force error response for corresponding
// method. Otherwise the wrapped handler is called and its result returned.
type Decorator struct {
	checkCall int
	CheckErr  error

	deliverCall int
	DeliverErr  error
}

var _ paylock.Decorator = (*Decorator)(nil)

func (d *Decorator) Check(ctx paylock.Context, db paylock.KVStore, tx paylock.Tx, next paylock.Checker) (*paylock.CheckResult, error) {
	d.checkCall++
	if d.CheckErr != nil {
		return &paylock.CheckResult{}, d.CheckErr
	}
	return next.Check(ctx, db, tx)
}

func (d *Decorator) Deliver(ctx paylock.Context, db paylock.KVStore, tx paylock.Tx, next paylock.Deliverer) (*paylock.DeliverResult, error) {
	d.deliverCall++
	if d.DeliverErr != nil {
		return &paylock.DeliverResult{}, d.DeliverErr
	}
	return next.Deliver(ctx, db, tx)
}

func (d *Decorator) CheckCallCount() int {
	return d.checkCall
}

func (d *Decorator) DeliverCallCount() int {
	return d.deliverCall
}

// Decorate wraps the handler with one decorator and returns it as a single
// handler.
func Decorate(h paylock.Handler, d paylock.Decorator) paylock.Handler {
	return &decoratedHandler{hn: h, dc: d}
}

type decoratedHandler struct {
	hn paylock.Handler
	dc paylock.Decorator
}

func (d *decoratedHandler) Check(ctx paylock.Context, db paylock.KVStore, tx paylock.Tx) (*paylock.CheckResult, error) {
	return d.dc.Check(ctx, db, tx, d.hn)
}

func (d *decoratedHandler) Deliver(ctx paylock.Context, db paylock.KVStore, tx paylock.Tx) (*paylock.DeliverResult, error) {
	return d.dc.Deliver(ctx, db, tx, d.hn)
}
