package cash

import (
	"github.com/iov-one/paylock"
	"github.com/iov-one/paylock/coin"
	"github.com/iov-one/paylock/errors"
)

const maxMemoSize int = 128

// SendMsg moves free balance between two accounts.
type SendMsg struct {
	Metadata    *paylock.Metadata `json:"metadata"`
	Source      paylock.Address   `json:"source"`
	Destination paylock.Address   `json:"destination"`
	Amount      coin.Coin         `json:"amount"`
	Memo        string            `json:"memo,omitempty"`
}

var _ paylock.Msg = (*SendMsg)(nil)

// Path returns the routing path for this message
func (SendMsg) Path() string {
	return "cash/send"
}

func (m *SendMsg) Marshal() ([]byte, error) {
	return paylock.Marshal(m)
}

func (m *SendMsg) Unmarshal(raw []byte) error {
	return paylock.Unmarshal(raw, m)
}

// Validate makes sure that this is sensible
func (m *SendMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	if err := m.Amount.Validate(); err != nil {
		errs = errors.AppendField(errs, "Amount", err)
	} else if !m.Amount.IsPositive() {
		errs = errors.Append(errs, errors.Field("Amount", errors.ErrInput, "non-positive amount %s", m.Amount))
	}
	if len(m.Source) != 0 {
		errs = errors.AppendField(errs, "Source", m.Source.Validate())
	}
	errs = errors.AppendField(errs, "Destination", m.Destination.Validate())
	if len(m.Memo) > maxMemoSize {
		errs = errors.Append(errs, errors.Field("Memo", errors.ErrInput, "memo too long"))
	}
	return errs
}
