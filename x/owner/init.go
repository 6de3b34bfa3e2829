package owner

import (
	"github.com/iov-one/paylock"
	"github.com/iov-one/paylock/errors"
)

const optKey = "owner"

// Initializer sets the owner from the genesis file. The "owner" value is an
// address. The owner is left unset if the value is missing.
type Initializer struct{}

var _ paylock.Initializer = Initializer{}

func (Initializer) FromGenesis(opts paylock.Options, kv paylock.KVStore) error {
	var owner paylock.Address
	if err := opts.ReadOptions(optKey, &owner); err != nil {
		return err
	}
	if owner == nil {
		return nil
	}
	if err := owner.Validate(); err != nil {
		return errors.Wrap(err, "genesis owner")
	}
	return NewController(NewBucket()).SetOwner(kv, owner)
}
