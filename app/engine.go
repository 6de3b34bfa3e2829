package app

import (
	"sync"

	"github.com/iov-one/paylock"
	"github.com/iov-one/paylock/errors"
	"github.com/iov-one/paylock/eventlog"
	"github.com/iov-one/paylock/orm"
	"github.com/tendermint/tendermint/libs/log"
)

// Engine owns the committed state and processes transactions one at a time.
//
// Every delivered transaction runs on its own cache wrap of the committed
// store. The wrap is written only if the handler stack returns no error, so
// a transaction is either applied in full or not at all. Reads run under a
// shared lock and always observe the state between two transactions.
type Engine struct {
	mu      sync.RWMutex
	store   paylock.CacheableKVStore
	handler paylock.Handler
	init    paylock.Initializer
	clock   Clock
	logger  log.Logger
	events  *eventlog.Log
	height  orm.Sequence
	chainID string

	// publish is acquired before the state lock is released, so that
	// sinks observe entries in commit order.
	publish sync.Mutex
	sinks   []eventlog.Sink
}

// NewEngine returns an engine on top of given store. If the store was
// already initialized, the chain id and height are loaded from it.
func NewEngine(
	store paylock.CacheableKVStore,
	handler paylock.Handler,
	init paylock.Initializer,
	clock Clock,
	events *eventlog.Log,
) (*Engine, error) {
	chainID, err := loadChainID(store)
	if err != nil {
		return nil, err
	}
	return &Engine{
		store:   store,
		handler: handler,
		init:    init,
		clock:   clock,
		logger:  log.NewNopLogger(),
		events:  events,
		height:  orm.NewSequence("_pl", "height"),
		chainID: chainID,
	}, nil
}

// WithLogger sets the logger passed to every handler and returns the engine,
// to make it easy to chain in initialization.
func (e *Engine) WithLogger(logger log.Logger) *Engine {
	e.logger = logger
	return e
}

// ChainID returns the chain id or an empty string if the engine was not
// initialized yet.
func (e *Engine) ChainID() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.chainID
}

// Height returns the number of committed transactions.
func (e *Engine) Height() (int64, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.height.Latest(e.store)
}

// InitChain stores the chain id and runs all initializers against the
// genesis state. It can be called only once for a given store.
func (e *Engine) InitChain(gen Genesis) error {
	if err := gen.Validate(); err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.chainID != "" {
		return errors.Wrapf(errors.ErrState, "already initialized for chain %s", e.chainID)
	}

	cache := e.store.CacheWrap()
	if err := saveChainID(cache, gen.ChainID); err != nil {
		cache.Discard()
		return err
	}
	if e.init != nil {
		if err := e.init.FromGenesis(gen.AppState, cache); err != nil {
			cache.Discard()
			return errors.Wrap(err, "genesis")
		}
	}
	if err := cache.Write(); err != nil {
		return errors.Wrap(err, "write genesis")
	}
	e.chainID = gen.ChainID
	e.logger.Info("Chain initialized", "chainID", gen.ChainID)
	return nil
}

// Subscribe registers a sink that receives the event log entries of every
// transaction committed from now on.
func (e *Engine) Subscribe(s eventlog.Sink) {
	e.publish.Lock()
	e.sinks = append(e.sinks, s)
	e.publish.Unlock()
}

// Deliver executes the transaction and commits its result. Only one
// transaction is delivered at a time.
func (e *Engine) Deliver(ctx paylock.Context, tx paylock.Tx) (*paylock.DeliverResult, error) {
	e.mu.Lock()
	locked := true
	defer func() {
		if locked {
			e.mu.Unlock()
		}
	}()

	if e.chainID == "" {
		return nil, errors.Wrap(errors.ErrState, "not initialized")
	}
	if err := checkContext(ctx); err != nil {
		return nil, err
	}

	cache := e.store.CacheWrap()
	lastEvent, err := e.events.Latest(cache)
	if err != nil {
		cache.Discard()
		return nil, err
	}
	height, err := e.height.NextInt(cache)
	if err != nil {
		cache.Discard()
		return nil, err
	}

	ctx = e.context(ctx, height)
	res, err := e.handler.Deliver(ctx, cache, tx)
	if err != nil {
		cache.Discard()
		return nil, err
	}
	entries, err := e.events.Since(cache, lastEvent, 0)
	if err != nil {
		cache.Discard()
		return nil, err
	}
	if err := cache.Write(); err != nil {
		return nil, errors.Wrap(err, "commit")
	}

	e.publish.Lock()
	e.mu.Unlock()
	locked = false
	e.notify(entries)
	e.publish.Unlock()

	return res, nil
}

// notify must be called with the publish lock held.
func (e *Engine) notify(entries []eventlog.Entry) {
	for _, s := range e.sinks {
		for _, entry := range entries {
			if err := s.Publish(entry); err != nil {
				e.logger.Error("Cannot publish event", "id", entry.ID, "kind", entry.Record.Kind, "err", err)
			}
		}
	}
}

// Check runs the transaction against a throw away copy of the committed
// state. Nothing is ever written.
func (e *Engine) Check(ctx paylock.Context, tx paylock.Tx) (*paylock.CheckResult, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if e.chainID == "" {
		return nil, errors.Wrap(errors.ErrState, "not initialized")
	}
	if err := checkContext(ctx); err != nil {
		return nil, err
	}

	cache := e.store.CacheWrap()
	defer cache.Discard()

	height, err := e.height.Latest(cache)
	if err != nil {
		return nil, err
	}
	return e.handler.Check(e.context(ctx, height+1), cache, tx)
}

// View runs fn with read access to the committed state. No transaction is
// committed while fn runs.
func (e *Engine) View(fn func(db paylock.ReadOnlyKVStore) error) error {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return fn(e.store)
}

// checkContext rejects a context that already carries values the engine is
// the only source of.
func checkContext(ctx paylock.Context) error {
	if id := paylock.GetChainID(ctx); id != "" {
		return errors.Wrapf(errors.ErrInput, "context already carries chain id %s", id)
	}
	if h, ok := paylock.GetHeight(ctx); ok {
		return errors.Wrapf(errors.ErrInput, "context already carries height %d", h)
	}
	return nil
}

func (e *Engine) context(ctx paylock.Context, height int64) paylock.Context {
	ctx = paylock.WithChainID(ctx, e.chainID)
	ctx = paylock.WithHeight(ctx, height)
	ctx = paylock.WithBlockTime(ctx, e.clock.Now())
	return paylock.WithLogger(ctx, e.logger)
}
