package pause

import (
	"github.com/iov-one/paylock"
	"github.com/iov-one/paylock/errors"
	"github.com/iov-one/paylock/orm"
)

var stateKey = []byte("switch")

// State is the pause switch position.
type State struct {
	Metadata *paylock.Metadata `json:"metadata"`
	Paused   bool              `json:"paused"`
}

var _ orm.Model = (*State)(nil)

func (s *State) Marshal() ([]byte, error) {
	return paylock.Marshal(s)
}

func (s *State) Unmarshal(raw []byte) error {
	return paylock.Unmarshal(raw, s)
}

func (s *State) Validate() error {
	return errors.AppendField(nil, "Metadata", s.Metadata.Validate())
}

// NewBucket returns a bucket for the switch state.
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket("pause", &State{})
}
