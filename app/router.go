package app

import (
	"fmt"
	"regexp"

	"github.com/iov-one/paylock"
	"github.com/iov-one/paylock/errors"
)

// isPath is the RegExp to ensure the routes make sense
var isPath = regexp.MustCompile(`^[a-zA-Z0-9_/]+$`).MatchString

// Router allows us to register many handlers with different
// paths and then direct each message to the proper handler.
//
// Minimal interface modeled after net/http.ServeMux
type Router struct {
	routes map[string]paylock.Handler
}

var _ paylock.Registry = (*Router)(nil)
var _ paylock.Handler = (*Router)(nil)

// NewRouter returns a new empty router instance.
func NewRouter() *Router {
	return &Router{
		routes: make(map[string]paylock.Handler),
	}
}

// Handle adds a new Handler for the given message path.
// Panics if the path is invalid or a handler is already registered.
func (r *Router) Handle(msg paylock.Msg, h paylock.Handler) {
	path := msg.Path()
	if !isPath(path) {
		panic(fmt.Sprintf("invalid path: %q", path))
	}
	if _, ok := r.routes[path]; ok {
		panic(fmt.Sprintf("re-registered path: %s", path))
	}
	r.routes[path] = h
}

// handler returns the registered Handler for this path. If no handler is
// found, returns a handler that always fails with ErrNotFound.
func (r *Router) handler(path string) paylock.Handler {
	if h, ok := r.routes[path]; ok {
		return h
	}
	return notFoundHandler(path)
}

// Check dispatches to the proper handler based on path
func (r *Router) Check(ctx paylock.Context, store paylock.KVStore, tx paylock.Tx) (*paylock.CheckResult, error) {
	return r.handler(paylock.GetPath(tx)).Check(ctx, store, tx)
}

// Deliver dispatches to the proper handler based on path
func (r *Router) Deliver(ctx paylock.Context, store paylock.KVStore, tx paylock.Tx) (*paylock.DeliverResult, error) {
	return r.handler(paylock.GetPath(tx)).Deliver(ctx, store, tx)
}

// notFoundHandler always returns ErrNotFound error regardless of the
// arguments.
type notFoundHandler string

func (path notFoundHandler) Check(paylock.Context, paylock.KVStore, paylock.Tx) (*paylock.CheckResult, error) {
	return nil, errors.Wrapf(errors.ErrNotFound, "no handler for message path %q", string(path))
}

func (path notFoundHandler) Deliver(paylock.Context, paylock.KVStore, paylock.Tx) (*paylock.DeliverResult, error) {
	return nil, errors.Wrapf(errors.ErrNotFound, "no handler for message path %q", string(path))
}
