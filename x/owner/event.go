package owner

import (
	"github.com/iov-one/paylock"
	"github.com/iov-one/paylock/eventlog"
)

func init() {
	eventlog.MustRegister(&OwnershipTransferred{})
}

// OwnershipTransferred is emitted when the owner changes.
type OwnershipTransferred struct {
	PreviousOwner paylock.Address `json:"previous_owner"`
	NewOwner      paylock.Address `json:"new_owner"`
}

var _ paylock.Event = (*OwnershipTransferred)(nil)

func (*OwnershipTransferred) EventKind() string {
	return "OwnershipTransferred"
}

func (e *OwnershipTransferred) Participants() []paylock.Address {
	return []paylock.Address{e.PreviousOwner, e.NewOwner}
}

func (e *OwnershipTransferred) Marshal() ([]byte, error) {
	return paylock.Marshal(e)
}

func (e *OwnershipTransferred) Unmarshal(raw []byte) error {
	return paylock.Unmarshal(raw, e)
}
