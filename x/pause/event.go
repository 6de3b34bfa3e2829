package pause

import (
	"github.com/iov-one/paylock"
	"github.com/iov-one/paylock/eventlog"
)

func init() {
	eventlog.MustRegister(&Paused{})
	eventlog.MustRegister(&Unpaused{})
}

// Paused is emitted when the switch is engaged.
type Paused struct {
	Account paylock.Address `json:"account"`
}

var _ paylock.Event = (*Paused)(nil)

func (*Paused) EventKind() string { return "Paused" }

func (e *Paused) Participants() []paylock.Address {
	return []paylock.Address{e.Account}
}

func (e *Paused) Marshal() ([]byte, error) {
	return paylock.Marshal(e)
}

func (e *Paused) Unmarshal(raw []byte) error {
	return paylock.Unmarshal(raw, e)
}

// Unpaused is emitted when the switch is released.
type Unpaused struct {
	Account paylock.Address `json:"account"`
}

var _ paylock.Event = (*Unpaused)(nil)

func (*Unpaused) EventKind() string { return "Unpaused" }

func (e *Unpaused) Participants() []paylock.Address {
	return []paylock.Address{e.Account}
}

func (e *Unpaused) Marshal() ([]byte, error) {
	return paylock.Marshal(e)
}

func (e *Unpaused) Unmarshal(raw []byte) error {
	return paylock.Unmarshal(raw, e)
}
