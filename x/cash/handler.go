package cash

import (
	"github.com/iov-one/paylock"
	"github.com/iov-one/paylock/errors"
	"github.com/iov-one/paylock/x"
)

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r paylock.Registry, auth x.Authenticator, control Controller) {
	r.Handle(&SendMsg{}, NewSendHandler(auth, control))
}

// SendHandler will handle sending coins
type SendHandler struct {
	auth    x.Authenticator
	control Controller
}

var _ paylock.Handler = SendHandler{}

// NewSendHandler creates a handler for SendMsg
func NewSendHandler(auth x.Authenticator, control Controller) SendHandler {
	return SendHandler{
		auth:    auth,
		control: control,
	}
}

// Check just verifies it is properly formed and authorized.
func (h SendHandler) Check(ctx paylock.Context, store paylock.KVStore, tx paylock.Tx) (*paylock.CheckResult, error) {
	if _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &paylock.CheckResult{}, nil
}

// Deliver moves the tokens from source to receiver if
// all preconditions are met
func (h SendHandler) Deliver(ctx paylock.Context, store paylock.KVStore, tx paylock.Tx) (*paylock.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := h.control.MoveCoins(store, msg.Source, msg.Destination, msg.Amount); err != nil {
		return nil, err
	}
	return &paylock.DeliverResult{}, nil
}

func (h SendHandler) validate(ctx paylock.Context, tx paylock.Tx) (*SendMsg, error) {
	var msg SendMsg
	if err := paylock.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if len(msg.Source) == 0 {
		msg.Source = x.MainSignerAddress(ctx, h.auth)
	}
	if !h.auth.HasAddress(ctx, msg.Source) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "account owner signature missing")
	}
	return &msg, nil
}
