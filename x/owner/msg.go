package owner

import (
	"github.com/iov-one/paylock"
	"github.com/iov-one/paylock/errors"
)

// TransferOwnershipMsg hands over the ownership to another account.
type TransferOwnershipMsg struct {
	Metadata *paylock.Metadata `json:"metadata"`
	NewOwner paylock.Address   `json:"new_owner"`
}

var _ paylock.Msg = (*TransferOwnershipMsg)(nil)

func (TransferOwnershipMsg) Path() string {
	return "owner/transfer_ownership"
}

func (m *TransferOwnershipMsg) Marshal() ([]byte, error) {
	return paylock.Marshal(m)
}

func (m *TransferOwnershipMsg) Unmarshal(raw []byte) error {
	return paylock.Unmarshal(raw, m)
}

func (m *TransferOwnershipMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "NewOwner", m.NewOwner.Validate())
	return errs
}
