package paylocktest

import "github.com/iov-one/paylock"

// Handler is a mock implementation of the paylock.Handler interface that
// counts calls and returns preconfigured results.
type Handler struct {
	checkCall   int
	CheckResult paylock.CheckResult
	CheckErr    error

	deliverCall   int
	DeliverResult paylock.DeliverResult
	DeliverErr    error
}

var _ paylock.Handler = (*Handler)(nil)

func (h *Handler) Check(ctx paylock.Context, db paylock.KVStore, tx paylock.Tx) (*paylock.CheckResult, error) {
	h.checkCall++
	res := h.CheckResult
	return &res, h.CheckErr
}

func (h *Handler) Deliver(ctx paylock.Context, db paylock.KVStore, tx paylock.Tx) (*paylock.DeliverResult, error) {
	h.deliverCall++
	res := h.DeliverResult
	return &res, h.DeliverErr
}

func (h *Handler) CheckCallCount() int {
	return h.checkCall
}

func (h *Handler) DeliverCallCount() int {
	return h.deliverCall
}

// WriteHandler writes a key value pair to the store before returning the
// configured error. Useful to verify rollback of failed transactions.
type WriteHandler struct {
	Key   []byte
	Value []byte
	Err   error
}

var _ paylock.Handler = (*WriteHandler)(nil)

func (h *WriteHandler) Check(ctx paylock.Context, db paylock.KVStore, tx paylock.Tx) (*paylock.CheckResult, error) {
	if err := db.Set(h.Key, h.Value); err != nil {
		return nil, err
	}
	return &paylock.CheckResult{}, h.Err
}

func (h *WriteHandler) Deliver(ctx paylock.Context, db paylock.KVStore, tx paylock.Tx) (*paylock.DeliverResult, error) {
	if err := db.Set(h.Key, h.Value); err != nil {
		return nil, err
	}
	return &paylock.DeliverResult{}, h.Err
}

// PanicHandler panics with the configured value on every call.
type PanicHandler struct {
	Value interface{}
}

var _ paylock.Handler = PanicHandler{}

func (h PanicHandler) Check(paylock.Context, paylock.KVStore, paylock.Tx) (*paylock.CheckResult, error) {
	panic(h.Value)
}

func (h PanicHandler) Deliver(paylock.Context, paylock.KVStore, paylock.Tx) (*paylock.DeliverResult, error) {
	panic(h.Value)
}
