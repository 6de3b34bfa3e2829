package utils

import (
	"github.com/iov-one/paylock"
	"github.com/iov-one/paylock/errors"
)

// Savepoint will isolate all data inside of the call,
// and commit/rollback to savepoint based on if error.
// Decorators placed before it keep their writes when the call fails.
type Savepoint struct {
	onCheck   bool
	onDeliver bool
}

var _ paylock.Decorator = Savepoint{}

// NewSavepoint creates a Savepoint decorator,
// but you must call OnCheck/OnDeliver so it will be triggered
func NewSavepoint() Savepoint {
	return Savepoint{}
}

// OnCheck returns a savepoint that will trigger on Check
func (s Savepoint) OnCheck() Savepoint {
	s.onCheck = true
	return s
}

// OnDeliver returns a savepoint that will trigger on Deliver
func (s Savepoint) OnDeliver() Savepoint {
	s.onDeliver = true
	return s
}

// Check will optionally set a checkpoint
func (s Savepoint) Check(ctx paylock.Context, store paylock.KVStore, tx paylock.Tx, next paylock.Checker) (*paylock.CheckResult, error) {
	cache, ok := s.wrap(store, s.onCheck)
	if !ok {
		return next.Check(ctx, store, tx)
	}
	res, err := next.Check(ctx, cache, tx)
	if err := finish(cache, err); err != nil {
		return nil, err
	}
	return res, nil
}

// Deliver will optionally set a checkpoint
func (s Savepoint) Deliver(ctx paylock.Context, store paylock.KVStore, tx paylock.Tx, next paylock.Deliverer) (*paylock.DeliverResult, error) {
	cache, ok := s.wrap(store, s.onDeliver)
	if !ok {
		return next.Deliver(ctx, store, tx)
	}
	res, err := next.Deliver(ctx, cache, tx)
	if err := finish(cache, err); err != nil {
		return nil, err
	}
	return res, nil
}

func (Savepoint) wrap(store paylock.KVStore, enabled bool) (paylock.KVCacheWrap, bool) {
	if !enabled {
		return nil, false
	}
	cstore, ok := store.(paylock.CacheableKVStore)
	if !ok {
		return nil, false
	}
	return cstore.CacheWrap(), true
}

// finish writes the cache if the call succeeded and drops it otherwise.
func finish(cache paylock.KVCacheWrap, err error) error {
	if err != nil {
		cache.Discard()
		return err
	}
	if err := cache.Write(); err != nil {
		return errors.Wrap(err, "writing savepoint")
	}
	return nil
}
