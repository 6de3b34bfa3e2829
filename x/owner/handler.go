package owner

import (
	"github.com/iov-one/paylock"
	"github.com/iov-one/paylock/errors"
	"github.com/iov-one/paylock/x"
)

// RegisterRoutes registers handlers for all owner messages.
func RegisterRoutes(r paylock.Registry, auth x.Authenticator, control Controller) {
	r.Handle(&TransferOwnershipMsg{}, NewTransferOwnershipHandler(auth, control))
}

// TransferOwnershipHandler processes TransferOwnershipMsg.
type TransferOwnershipHandler struct {
	auth    x.Authenticator
	control Controller
}

var _ paylock.Handler = TransferOwnershipHandler{}

func NewTransferOwnershipHandler(auth x.Authenticator, control Controller) TransferOwnershipHandler {
	return TransferOwnershipHandler{auth: auth, control: control}
}

func (h TransferOwnershipHandler) Check(ctx paylock.Context, db paylock.KVStore, tx paylock.Tx) (*paylock.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &paylock.CheckResult{}, nil
}

func (h TransferOwnershipHandler) Deliver(ctx paylock.Context, db paylock.KVStore, tx paylock.Tx) (*paylock.DeliverResult, error) {
	msg, previous, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.control.SetOwner(db, msg.NewOwner); err != nil {
		return nil, err
	}
	paylock.GetLogger(ctx).Info("ownership transferred", "previous", previous, "new", msg.NewOwner)
	return &paylock.DeliverResult{
		Events: []paylock.Event{
			&OwnershipTransferred{PreviousOwner: previous, NewOwner: msg.NewOwner},
		},
	}, nil
}

func (h TransferOwnershipHandler) validate(ctx paylock.Context, db paylock.KVStore, tx paylock.Tx) (*TransferOwnershipMsg, paylock.Address, error) {
	var msg TransferOwnershipMsg
	if err := paylock.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	previous, err := h.control.RequireOwner(ctx, db, h.auth)
	if err != nil {
		return nil, nil, err
	}
	return &msg, previous, nil
}
