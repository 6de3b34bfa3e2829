package timelock

import (
	"fmt"

	"github.com/iov-one/paylock"
	"github.com/iov-one/paylock/coin"
	"github.com/iov-one/paylock/errors"
	"github.com/iov-one/paylock/orm"
)

// PaymentState is the position of a payment in its life cycle. Claimed and
// Cancelled are terminal.
type PaymentState int32

const (
	Committed PaymentState = 1
	Claimed   PaymentState = 2
	Cancelled PaymentState = 3
)

func (s PaymentState) String() string {
	switch s {
	case Committed:
		return "committed"
	case Claimed:
		return "claimed"
	case Cancelled:
		return "cancelled"
	default:
		return fmt.Sprintf("PaymentState(%d)", int32(s))
	}
}

// Validate returns an error if the state is not one of the known values.
func (s PaymentState) Validate() error {
	switch s {
	case Committed, Claimed, Cancelled:
		return nil
	default:
		return errors.Wrapf(errors.ErrState, "unknown state %d", int32(s))
	}
}

// Payment is a single escrowed obligation.
type Payment struct {
	Metadata *paylock.Metadata `json:"metadata"`
	// ID is the sequence number of the payment. It is never reused.
	ID         []byte           `json:"id"`
	Payer      paylock.Address  `json:"payer"`
	Receiver   paylock.Address  `json:"receiver"`
	UnlockTime paylock.UnixTime `json:"unlock_time"`
	Amount     coin.Coin        `json:"amount"`
	State      PaymentState     `json:"state"`
	CreatedAt  paylock.UnixTime `json:"created_at"`
	// SettledAt is set when the payment reaches a terminal state.
	SettledAt paylock.UnixTime `json:"settled_at,omitempty"`
}

var _ orm.Model = (*Payment)(nil)

func (p *Payment) Marshal() ([]byte, error) {
	return paylock.Marshal(p)
}

func (p *Payment) Unmarshal(raw []byte) error {
	return paylock.Unmarshal(raw, p)
}

func (p *Payment) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", p.Metadata.Validate())
	if len(p.ID) != 8 {
		errs = errors.Append(errs, errors.Field("ID", errors.ErrInput, "id must be 8 bytes"))
	}
	errs = errors.AppendField(errs, "Payer", p.Payer.Validate())
	errs = errors.AppendField(errs, "Receiver", p.Receiver.Validate())
	errs = errors.AppendField(errs, "UnlockTime", p.UnlockTime.Validate())
	errs = errors.AppendField(errs, "Amount", p.Amount.Validate())
	errs = errors.AppendField(errs, "State", p.State.Validate())
	errs = errors.AppendField(errs, "CreatedAt", p.CreatedAt.Validate())
	errs = errors.AppendField(errs, "SettledAt", p.SettledAt.Validate())
	return errs
}

const (
	bucketName    = "payment"
	payerIndex    = "payer"
	receiverIndex = "receiver"
)

// newPaymentBucket returns a bucket for payments. Both indexes reference
// committed payments only.
func newPaymentBucket() orm.ModelBucket {
	return orm.NewModelBucket(bucketName, &Payment{},
		orm.WithIndex(payerIndex, committedIndexer(func(p *Payment) []byte { return p.Payer }), false),
		orm.WithIndex(receiverIndex, committedIndexer(func(p *Payment) []byte { return p.Receiver }), false),
	)
}

func committedIndexer(field func(*Payment) []byte) orm.Indexer {
	return func(obj orm.Object) ([]byte, error) {
		p, ok := obj.Value().(*Payment)
		if !ok {
			return nil, errors.Wrapf(errors.ErrType, "%T", obj.Value())
		}
		if p.State != Committed {
			return nil, nil
		}
		return field(p), nil
	}
}
