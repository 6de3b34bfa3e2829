package timelock

import (
	"github.com/iov-one/paylock"
	"github.com/iov-one/paylock/coin"
	"github.com/iov-one/paylock/eventlog"
)

func init() {
	eventlog.MustRegister(&PaymentCommitted{})
	eventlog.MustRegister(&PaymentClaimed{})
	eventlog.MustRegister(&PaymentCancelled{})
}

var (
	_ paylock.Event = (*PaymentCommitted)(nil)
	_ paylock.Event = (*PaymentClaimed)(nil)
	_ paylock.Event = (*PaymentCancelled)(nil)
)

// PaymentCommitted is emitted when funds are moved into custody.
type PaymentCommitted struct {
	ID         []byte           `json:"id"`
	Payer      paylock.Address  `json:"payer"`
	Receiver   paylock.Address  `json:"receiver"`
	UnlockTime paylock.UnixTime `json:"unlock_time"`
	Amount     coin.Coin        `json:"amount"`
}

func (*PaymentCommitted) EventKind() string { return "PaymentCommitted" }

func (e *PaymentCommitted) Participants() []paylock.Address {
	return []paylock.Address{e.Payer, e.Receiver}
}

func (e *PaymentCommitted) Marshal() ([]byte, error) {
	return paylock.Marshal(e)
}

func (e *PaymentCommitted) Unmarshal(raw []byte) error {
	return paylock.Unmarshal(raw, e)
}

// PaymentClaimed is emitted for every payment released to its receiver.
type PaymentClaimed struct {
	ID         []byte           `json:"id"`
	Receiver   paylock.Address  `json:"receiver"`
	Payer      paylock.Address  `json:"payer"`
	UnlockTime paylock.UnixTime `json:"unlock_time"`
	Amount     coin.Coin        `json:"amount"`
}

func (*PaymentClaimed) EventKind() string { return "PaymentClaimed" }

func (e *PaymentClaimed) Participants() []paylock.Address {
	return []paylock.Address{e.Receiver, e.Payer}
}

func (e *PaymentClaimed) Marshal() ([]byte, error) {
	return paylock.Marshal(e)
}

func (e *PaymentClaimed) Unmarshal(raw []byte) error {
	return paylock.Unmarshal(raw, e)
}

// PaymentCancelled is emitted when a payment is returned to its payer.
type PaymentCancelled struct {
	ID         []byte           `json:"id"`
	Payer      paylock.Address  `json:"payer"`
	Receiver   paylock.Address  `json:"receiver"`
	UnlockTime paylock.UnixTime `json:"unlock_time"`
	Amount     coin.Coin        `json:"amount"`
}

func (*PaymentCancelled) EventKind() string { return "PaymentCancelled" }

func (e *PaymentCancelled) Participants() []paylock.Address {
	return []paylock.Address{e.Payer, e.Receiver}
}

func (e *PaymentCancelled) Marshal() ([]byte, error) {
	return paylock.Marshal(e)
}

func (e *PaymentCancelled) Unmarshal(raw []byte) error {
	return paylock.Unmarshal(raw, e)
}
