package utils

import (
	"time"

	"github.com/iov-one/paylock"
)

// Logging is a decorator to log messages as they pass through
type Logging struct{}

var _ paylock.Decorator = Logging{}

// NewLogging creates a Logging decorator
func NewLogging() Logging {
	return Logging{}
}

// Check logs error -> error, success -> debug
func (Logging) Check(ctx paylock.Context, store paylock.KVStore, tx paylock.Tx, next paylock.Checker) (*paylock.CheckResult, error) {
	start := time.Now()
	res, err := next.Check(ctx, store, tx)
	var resLog string
	if err == nil {
		resLog = res.Log
	}
	logDuration(ctx, tx, start, resLog, err, true)
	return res, err
}

// Deliver logs error -> error, success -> info
func (Logging) Deliver(ctx paylock.Context, store paylock.KVStore, tx paylock.Tx, next paylock.Deliverer) (*paylock.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, store, tx)
	var resLog string
	if err == nil {
		resLog = res.Log
		ctx = paylock.WithLogInfo(ctx, "events", len(res.Events))
	}
	logDuration(ctx, tx, start, resLog, err, false)
	return res, err
}

func logDuration(ctx paylock.Context, tx paylock.Tx, start time.Time, msg string, err error, lowPrio bool) {
	delta := time.Since(start)
	logger := paylock.GetLogger(ctx).With(
		"path", paylock.GetPath(tx),
		"duration", delta/time.Microsecond,
	)

	// An entry is emitted even for an empty message, the attached key
	// values are what matters.
	switch {
	case err != nil:
		logger.With("err", err).Error(msg)
	case lowPrio:
		logger.Debug(msg)
	default:
		logger.Info(msg)
	}
}
