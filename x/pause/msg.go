package pause

import (
	"github.com/iov-one/paylock"
	"github.com/iov-one/paylock/errors"
)

// PauseMsg engages the pause switch.
type PauseMsg struct {
	Metadata *paylock.Metadata `json:"metadata"`
}

var _ paylock.Msg = (*PauseMsg)(nil)

func (PauseMsg) Path() string {
	return "pause/pause"
}

func (m *PauseMsg) Marshal() ([]byte, error) {
	return paylock.Marshal(m)
}

func (m *PauseMsg) Unmarshal(raw []byte) error {
	return paylock.Unmarshal(raw, m)
}

func (m *PauseMsg) Validate() error {
	return errors.AppendField(nil, "Metadata", m.Metadata.Validate())
}

// UnpauseMsg releases the pause switch.
type UnpauseMsg struct {
	Metadata *paylock.Metadata `json:"metadata"`
}

var _ paylock.Msg = (*UnpauseMsg)(nil)

func (UnpauseMsg) Path() string {
	return "pause/unpause"
}

func (m *UnpauseMsg) Marshal() ([]byte, error) {
	return paylock.Marshal(m)
}

func (m *UnpauseMsg) Unmarshal(raw []byte) error {
	return paylock.Unmarshal(raw, m)
}

func (m *UnpauseMsg) Validate() error {
	return errors.AppendField(nil, "Metadata", m.Metadata.Validate())
}
