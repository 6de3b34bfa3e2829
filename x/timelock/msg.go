package timelock

import (
	"github.com/iov-one/paylock"
	"github.com/iov-one/paylock/coin"
	"github.com/iov-one/paylock/errors"
)

var (
	_ paylock.Msg = (*CommitPaymentMsg)(nil)
	_ paylock.Msg = (*ClaimPaymentsMsg)(nil)
	_ paylock.Msg = (*CancelPaymentMsg)(nil)
	_ paylock.Msg = (*UpdateConfigurationMsg)(nil)
)

// CommitPaymentMsg moves funds of the payer into custody, to be claimed by
// the receiver after the unlock time. Payer defaults to the main signer.
type CommitPaymentMsg struct {
	Metadata   *paylock.Metadata `json:"metadata"`
	Payer      paylock.Address   `json:"payer,omitempty"`
	Receiver   paylock.Address   `json:"receiver"`
	UnlockTime paylock.UnixTime  `json:"unlock_time"`
	Amount     coin.Coin         `json:"amount"`
}

func (CommitPaymentMsg) Path() string {
	return "timelock/commit"
}

func (m *CommitPaymentMsg) Marshal() ([]byte, error) {
	return paylock.Marshal(m)
}

func (m *CommitPaymentMsg) Unmarshal(raw []byte) error {
	return paylock.Unmarshal(raw, m)
}

func (m *CommitPaymentMsg) Validate() error {
	return validatePaymentTerms(m.Metadata, m.Payer, m.Receiver, m.UnlockTime, m.Amount)
}

// ClaimPaymentsMsg releases all unlocked payments of the receiver. Receiver
// defaults to the main signer.
type ClaimPaymentsMsg struct {
	Metadata *paylock.Metadata `json:"metadata"`
	Receiver paylock.Address   `json:"receiver,omitempty"`
}

func (ClaimPaymentsMsg) Path() string {
	return "timelock/claim"
}

func (m *ClaimPaymentsMsg) Marshal() ([]byte, error) {
	return paylock.Marshal(m)
}

func (m *ClaimPaymentsMsg) Unmarshal(raw []byte) error {
	return paylock.Unmarshal(raw, m)
}

func (m *ClaimPaymentsMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	if len(m.Receiver) != 0 {
		errs = errors.AppendField(errs, "Receiver", m.Receiver.Validate())
	}
	return errs
}

// CancelPaymentMsg returns a committed payment to its payer. The payment is
// identified by its terms, not by its id. Payer defaults to the main signer.
type CancelPaymentMsg struct {
	Metadata   *paylock.Metadata `json:"metadata"`
	Payer      paylock.Address   `json:"payer,omitempty"`
	Receiver   paylock.Address   `json:"receiver"`
	UnlockTime paylock.UnixTime  `json:"unlock_time"`
	Amount     coin.Coin         `json:"amount"`
}

func (CancelPaymentMsg) Path() string {
	return "timelock/cancel"
}

func (m *CancelPaymentMsg) Marshal() ([]byte, error) {
	return paylock.Marshal(m)
}

func (m *CancelPaymentMsg) Unmarshal(raw []byte) error {
	return paylock.Unmarshal(raw, m)
}

func (m *CancelPaymentMsg) Validate() error {
	return validatePaymentTerms(m.Metadata, m.Payer, m.Receiver, m.UnlockTime, m.Amount)
}

func validatePaymentTerms(meta *paylock.Metadata, payer, receiver paylock.Address, unlock paylock.UnixTime, amount coin.Coin) error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", meta.Validate())
	if len(payer) != 0 {
		errs = errors.AppendField(errs, "Payer", payer.Validate())
	}
	errs = errors.AppendField(errs, "Receiver", receiver.Validate())
	if len(payer) != 0 && payer.Equals(receiver) {
		errs = errors.Append(errs, errors.Field("Receiver", errors.ErrInput, "payer cannot be the receiver"))
	}
	if unlock <= 0 {
		errs = errors.Append(errs, errors.Field("UnlockTime", errors.ErrInput, "unlock time is required"))
	}
	if err := amount.Validate(); err != nil {
		errs = errors.AppendField(errs, "Amount", err)
	} else if !amount.IsPositive() {
		errs = errors.Append(errs, errors.Field("Amount", errors.ErrInput, "non-positive amount %s", amount))
	}
	return errs
}

// UpdateConfigurationMsg changes the escrow configuration. Only non-zero
// fields of the patch are applied.
type UpdateConfigurationMsg struct {
	Metadata *paylock.Metadata `json:"metadata"`
	Patch    *Configuration    `json:"patch"`
}

func (UpdateConfigurationMsg) Path() string {
	return "timelock/update_configuration"
}

func (m *UpdateConfigurationMsg) Marshal() ([]byte, error) {
	return paylock.Marshal(m)
}

func (m *UpdateConfigurationMsg) Unmarshal(raw []byte) error {
	return paylock.Unmarshal(raw, m)
}

func (m *UpdateConfigurationMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	if m.Patch == nil {
		return errors.Append(errs, errors.Field("Patch", errors.ErrEmpty, "patch is required"))
	}
	if m.Patch.CancelNotice < 0 {
		errs = errors.Append(errs, errors.Field("Patch", errors.ErrInput, "negative cancel notice"))
	}
	return errs
}
