package pause

import (
	"github.com/iov-one/paylock"
	"github.com/iov-one/paylock/errors"
	"github.com/iov-one/paylock/x"
	"github.com/iov-one/paylock/x/owner"
)

// RegisterRoutes registers handlers for the pause and unpause messages.
func RegisterRoutes(r paylock.Registry, auth x.Authenticator, owners owner.Controller, control Controller) {
	r.Handle(&PauseMsg{}, NewSwitchHandler(auth, owners, control, true))
	r.Handle(&UnpauseMsg{}, NewSwitchHandler(auth, owners, control, false))
}

// SwitchHandler moves the pause switch into a single position. It can be
// used by the owner only.
type SwitchHandler struct {
	auth    x.Authenticator
	owners  owner.Controller
	control Controller
	pause   bool
}

var _ paylock.Handler = SwitchHandler{}

// NewSwitchHandler returns a handler that engages the switch if pause is
// true, or releases it otherwise.
func NewSwitchHandler(auth x.Authenticator, owners owner.Controller, control Controller, pause bool) SwitchHandler {
	return SwitchHandler{
		auth:    auth,
		owners:  owners,
		control: control,
		pause:   pause,
	}
}

func (h SwitchHandler) Check(ctx paylock.Context, db paylock.KVStore, tx paylock.Tx) (*paylock.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &paylock.CheckResult{}, nil
}

func (h SwitchHandler) Deliver(ctx paylock.Context, db paylock.KVStore, tx paylock.Tx) (*paylock.DeliverResult, error) {
	account, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.control.SetPaused(db, h.pause); err != nil {
		return nil, err
	}

	var ev paylock.Event = &Unpaused{Account: account}
	if h.pause {
		ev = &Paused{Account: account}
	}
	paylock.GetLogger(ctx).Info("pause switch", "paused", h.pause, "account", account)
	return &paylock.DeliverResult{Events: []paylock.Event{ev}}, nil
}

func (h SwitchHandler) validate(ctx paylock.Context, db paylock.KVStore, tx paylock.Tx) (paylock.Address, error) {
	var msg interface{} = &UnpauseMsg{}
	if h.pause {
		msg = &PauseMsg{}
	}
	if err := paylock.LoadMsg(tx, msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}

	account, err := h.owners.RequireOwner(ctx, db, h.auth)
	if err != nil {
		return nil, err
	}

	paused, err := h.control.IsPaused(db)
	if err != nil {
		return nil, err
	}
	if paused == h.pause {
		return nil, errors.Wrapf(errors.ErrState, "paused is already %v", paused)
	}
	return account, nil
}
