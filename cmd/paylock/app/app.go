/*
Package app links together all the various components
to construct the paylock application.
*/
package app

import (
	"path/filepath"
	"strings"

	"github.com/iov-one/paylock"
	"github.com/iov-one/paylock/app"
	"github.com/iov-one/paylock/errors"
	"github.com/iov-one/paylock/eventlog"
	"github.com/iov-one/paylock/store"
	"github.com/iov-one/paylock/x"
	"github.com/iov-one/paylock/x/cash"
	"github.com/iov-one/paylock/x/owner"
	"github.com/iov-one/paylock/x/pause"
	"github.com/iov-one/paylock/x/sigs"
	"github.com/iov-one/paylock/x/timelock"
	"github.com/iov-one/paylock/x/utils"
	"github.com/tendermint/tendermint/libs/log"
)

// Authenticator returns the typical authentication,
// just using public key signatures
func Authenticator() x.Authenticator {
	return x.ChainAuth(sigs.Authenticate{})
}

// Chain returns a chain of decorators, to handle authentication,
// logging, recovery and the event log.
func Chain(events *eventlog.Log) app.Decorators {
	return app.ChainDecorators(
		utils.NewLogging(),
		utils.NewRecovery(),
		sigs.NewDecorator(),
		// a failed message leaves no writes below this point, the engine
		// then drops the whole transaction
		utils.NewSavepoint().OnDeliver(),
		eventlog.NewDecorator(events),
	)
}

// Router returns a router dispatching to all paylock messages.
func Router(authFn x.Authenticator) *app.Router {
	r := app.NewRouter()
	owners := owner.NewController(owner.NewBucket())
	switcher := pause.NewController(pause.NewBucket())
	bank := cash.NewController(cash.NewBucket())

	cash.RegisterRoutes(r, authFn, bank)
	owner.RegisterRoutes(r, authFn, owners)
	pause.RegisterRoutes(r, authFn, owners, switcher)
	timelock.RegisterRoutes(r, authFn, owners, switcher, bank)
	return r
}

// Initializers returns all genesis readers, in the order they must run.
func Initializers() paylock.Initializer {
	return paylock.ChainInitializers{
		cash.Initializer{},
		owner.Initializer{},
		pause.Initializer{},
		timelock.Initializer{},
	}
}

// Stack wires up a standard router with a standard decorator
// chain. This can be passed into an engine.
func Stack(events *eventlog.Log) paylock.Handler {
	authFn := Authenticator()
	return Chain(events).WithHandler(Router(authFn))
}

// Application constructs the engine on top of given store.
func Application(db paylock.CacheableKVStore, clock app.Clock, logger log.Logger) (*app.Engine, error) {
	events := eventlog.NewLog()
	engine, err := app.NewEngine(db, Stack(events), Initializers(), clock, events)
	if err != nil {
		return nil, err
	}
	return engine.WithLogger(logger), nil
}

// Database is a store that must be closed once no longer used.
type Database interface {
	paylock.CacheableKVStore
	Close()
}

// OpenDatabase returns a store of given kind. Supported kinds are "memory"
// and "goleveldb". Only the latter persists its data, in a directory named
// after dbPath.
func OpenDatabase(kind, dbPath string) (Database, error) {
	switch kind {
	case "memory":
		return store.NewMemDBStore(), nil
	case "goleveldb":
		path, err := filepath.Abs(dbPath)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrInput, "invalid database name: %s", dbPath)
		}
		// Some external calls accidently add a ".db", which is now removed
		path = strings.TrimSuffix(path, filepath.Ext(path))
		db, err := store.NewLevelDBStore(filepath.Base(path), filepath.Dir(path))
		if err != nil {
			return nil, err
		}
		return db, nil
	default:
		return nil, errors.Wrapf(errors.ErrInput, "unknown database kind %q", kind)
	}
}
