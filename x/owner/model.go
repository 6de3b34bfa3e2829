package owner

import (
	"github.com/iov-one/paylock"
	"github.com/iov-one/paylock/errors"
	"github.com/iov-one/paylock/orm"
)

// stateKey is the only key used in the owner bucket.
var stateKey = []byte("current")

// State holds the address of the current owner.
type State struct {
	Metadata *paylock.Metadata `json:"metadata"`
	Owner    paylock.Address   `json:"owner"`
}

var _ orm.Model = (*State)(nil)

func (s *State) Marshal() ([]byte, error) {
	return paylock.Marshal(s)
}

func (s *State) Unmarshal(raw []byte) error {
	return paylock.Unmarshal(raw, s)
}

func (s *State) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", s.Metadata.Validate())
	errs = errors.AppendField(errs, "Owner", s.Owner.Validate())
	return errs
}

// NewBucket returns a bucket for the owner state.
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket("owner", &State{})
}
