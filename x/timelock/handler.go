package timelock

import (
	"github.com/iov-one/paylock"
	"github.com/iov-one/paylock/coin"
	"github.com/iov-one/paylock/errors"
	"github.com/iov-one/paylock/gconf"
	"github.com/iov-one/paylock/x"
	"github.com/iov-one/paylock/x/cash"
	"github.com/iov-one/paylock/x/owner"
	"github.com/iov-one/paylock/x/pause"
)

// RegisterRoutes registers handlers for all timelock messages.
func RegisterRoutes(r paylock.Registry, auth x.Authenticator, owners owner.Controller, switcher pause.Controller, bank cash.Controller) {
	ledger := NewLedger()
	r.Handle(&CommitPaymentMsg{}, NewCommitPaymentHandler(auth, switcher, bank, ledger))
	r.Handle(&ClaimPaymentsMsg{}, NewClaimPaymentsHandler(auth, switcher, bank, ledger))
	r.Handle(&CancelPaymentMsg{}, NewCancelPaymentHandler(auth, switcher, bank, ledger))
	r.Handle(&UpdateConfigurationMsg{}, gconf.NewUpdateConfigurationHandler(packageName, &Configuration{}, auth, owners.CurrentOwner))
}

// CommitPaymentHandler moves funds into custody and records the payment.
type CommitPaymentHandler struct {
	auth     x.Authenticator
	switcher pause.Controller
	bank     cash.Controller
	ledger   *Ledger
}

var _ paylock.Handler = CommitPaymentHandler{}

func NewCommitPaymentHandler(auth x.Authenticator, switcher pause.Controller, bank cash.Controller, ledger *Ledger) CommitPaymentHandler {
	return CommitPaymentHandler{
		auth:     auth,
		switcher: switcher,
		bank:     bank,
		ledger:   ledger,
	}
}

func (h CommitPaymentHandler) Check(ctx paylock.Context, db paylock.KVStore, tx paylock.Tx) (*paylock.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &paylock.CheckResult{}, nil
}

func (h CommitPaymentHandler) Deliver(ctx paylock.Context, db paylock.KVStore, tx paylock.Tx) (*paylock.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	now, err := paylock.BlockTime(ctx)
	if err != nil {
		return nil, err
	}

	if err := h.bank.MoveCoins(db, msg.Payer, CustodyAddress(), msg.Amount); err != nil {
		return nil, errors.Wrap(err, "fund custody")
	}
	p, err := h.ledger.Insert(db, msg.Payer, msg.Receiver, msg.UnlockTime, msg.Amount, paylock.AsUnixTime(now))
	if err != nil {
		return nil, err
	}

	return &paylock.DeliverResult{
		Data: p.ID,
		Events: []paylock.Event{
			&PaymentCommitted{
				ID:         p.ID,
				Payer:      p.Payer,
				Receiver:   p.Receiver,
				UnlockTime: p.UnlockTime,
				Amount:     p.Amount,
			},
		},
	}, nil
}

func (h CommitPaymentHandler) validate(ctx paylock.Context, db paylock.KVStore, tx paylock.Tx) (*CommitPaymentMsg, error) {
	if err := h.switcher.Guard(db); err != nil {
		return nil, err
	}
	var msg CommitPaymentMsg
	if err := paylock.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if len(msg.Payer) == 0 {
		msg.Payer = x.MainSignerAddress(ctx, h.auth)
		if msg.Payer.Equals(msg.Receiver) {
			return nil, errors.Field("Receiver", errors.ErrInput, "payer cannot be the receiver")
		}
	}
	if len(msg.Payer) == 0 || !h.auth.HasAddress(ctx, msg.Payer) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "payer signature missing")
	}

	conf, err := loadConf(db)
	if err != nil {
		return nil, err
	}
	if conf.Ticker != "" && msg.Amount.Ticker != conf.Ticker {
		return nil, errors.Field("Amount", errors.ErrInput, "only %s can be committed", conf.Ticker)
	}
	return &msg, nil
}

// ClaimPaymentsHandler releases all unlocked payments of a receiver in a
// single transfer.
type ClaimPaymentsHandler struct {
	auth     x.Authenticator
	switcher pause.Controller
	bank     cash.Controller
	ledger   *Ledger
}

var _ paylock.Handler = ClaimPaymentsHandler{}

func NewClaimPaymentsHandler(auth x.Authenticator, switcher pause.Controller, bank cash.Controller, ledger *Ledger) ClaimPaymentsHandler {
	return ClaimPaymentsHandler{
		auth:     auth,
		switcher: switcher,
		bank:     bank,
		ledger:   ledger,
	}
}

func (h ClaimPaymentsHandler) Check(ctx paylock.Context, db paylock.KVStore, tx paylock.Tx) (*paylock.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &paylock.CheckResult{}, nil
}

func (h ClaimPaymentsHandler) Deliver(ctx paylock.Context, db paylock.KVStore, tx paylock.Tx) (*paylock.DeliverResult, error) {
	receiver, eligible, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	now, err := paylock.BlockTime(ctx)
	if err != nil {
		return nil, err
	}

	var total coin.Coins
	events := make([]paylock.Event, 0, len(eligible))
	for _, p := range eligible {
		if _, err := h.ledger.MarkClaimed(db, p.ID, paylock.AsUnixTime(now)); err != nil {
			return nil, err
		}
		if total, err = total.Add(p.Amount); err != nil {
			return nil, errors.Wrap(err, "claim total")
		}
		events = append(events, &PaymentClaimed{
			ID:         p.ID,
			Receiver:   p.Receiver,
			Payer:      p.Payer,
			UnlockTime: p.UnlockTime,
			Amount:     p.Amount,
		})
	}

	// One transfer per currency, after all payments are marked.
	for _, c := range total {
		if err := h.bank.MoveCoins(db, CustodyAddress(), receiver, c); err != nil {
			return nil, errors.Wrap(err, "release custody")
		}
	}

	paylock.GetLogger(ctx).Debug("payments claimed", "receiver", receiver, "count", len(eligible), "total", total)
	return &paylock.DeliverResult{Events: events}, nil
}

// validate returns the receiver and all of their unlocked payments, oldest
// first. ErrNothingToClaim is returned when there is none.
func (h ClaimPaymentsHandler) validate(ctx paylock.Context, db paylock.KVStore, tx paylock.Tx) (paylock.Address, []*Payment, error) {
	if err := h.switcher.Guard(db); err != nil {
		return nil, nil, err
	}
	var msg ClaimPaymentsMsg
	if err := paylock.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	receiver := msg.Receiver
	if len(receiver) == 0 {
		receiver = x.MainSignerAddress(ctx, h.auth)
	}
	if len(receiver) == 0 || !h.auth.HasAddress(ctx, receiver) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "receiver signature missing")
	}

	payable, err := h.ledger.PayableFor(db, receiver)
	if err != nil {
		return nil, nil, err
	}
	var eligible []*Payment
	for _, p := range payable {
		if paylock.IsExpired(ctx, p.UnlockTime) {
			eligible = append(eligible, p)
		}
	}
	if len(eligible) == 0 {
		return nil, nil, errors.ErrNothingToClaim
	}
	return receiver, eligible, nil
}

// CancelPaymentHandler returns a committed payment to its payer.
type CancelPaymentHandler struct {
	auth     x.Authenticator
	switcher pause.Controller
	bank     cash.Controller
	ledger   *Ledger
}

var _ paylock.Handler = CancelPaymentHandler{}

func NewCancelPaymentHandler(auth x.Authenticator, switcher pause.Controller, bank cash.Controller, ledger *Ledger) CancelPaymentHandler {
	return CancelPaymentHandler{
		auth:     auth,
		switcher: switcher,
		bank:     bank,
		ledger:   ledger,
	}
}

func (h CancelPaymentHandler) Check(ctx paylock.Context, db paylock.KVStore, tx paylock.Tx) (*paylock.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &paylock.CheckResult{}, nil
}

func (h CancelPaymentHandler) Deliver(ctx paylock.Context, db paylock.KVStore, tx paylock.Tx) (*paylock.DeliverResult, error) {
	p, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	now, err := paylock.BlockTime(ctx)
	if err != nil {
		return nil, err
	}

	if _, err := h.ledger.MarkCancelled(db, p.ID, paylock.AsUnixTime(now)); err != nil {
		return nil, err
	}
	if err := h.bank.MoveCoins(db, CustodyAddress(), p.Payer, p.Amount); err != nil {
		return nil, errors.Wrap(err, "refund")
	}

	return &paylock.DeliverResult{
		Data: p.ID,
		Events: []paylock.Event{
			&PaymentCancelled{
				ID:         p.ID,
				Payer:      p.Payer,
				Receiver:   p.Receiver,
				UnlockTime: p.UnlockTime,
				Amount:     p.Amount,
			},
		},
	}, nil
}

func (h CancelPaymentHandler) validate(ctx paylock.Context, db paylock.KVStore, tx paylock.Tx) (*Payment, error) {
	if err := h.switcher.Guard(db); err != nil {
		return nil, err
	}
	var msg CancelPaymentMsg
	if err := paylock.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if len(msg.Payer) == 0 {
		msg.Payer = x.MainSignerAddress(ctx, h.auth)
	}
	if len(msg.Payer) == 0 || !h.auth.HasAddress(ctx, msg.Payer) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "only the payer can cancel")
	}

	p, err := h.ledger.FindOutstanding(db, msg.Payer, msg.Receiver, msg.UnlockTime, msg.Amount)
	if err != nil {
		return nil, err
	}

	conf, err := loadConf(db)
	if err != nil {
		return nil, err
	}
	if paylock.IsExpired(ctx, p.UnlockTime.Add(-conf.Notice())) {
		return nil, errors.Wrapf(errors.ErrTooLate, "notice of %s required", conf.Notice())
	}
	return p, nil
}
