package pause

import (
	"github.com/iov-one/paylock"
)

const optKey = "pause"

// Initializer engages the switch if the genesis "pause" value is true.
type Initializer struct{}

var _ paylock.Initializer = Initializer{}

func (Initializer) FromGenesis(opts paylock.Options, kv paylock.KVStore) error {
	var paused bool
	if err := opts.ReadOptions(optKey, &paused); err != nil {
		return err
	}
	if !paused {
		return nil
	}
	return NewController(NewBucket()).SetPaused(kv, true)
}
