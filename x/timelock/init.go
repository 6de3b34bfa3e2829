package timelock

import (
	"github.com/iov-one/paylock"
	"github.com/iov-one/paylock/errors"
	"github.com/iov-one/paylock/gconf"
)

// Initializer stores the configuration found under the genesis
// "conf.timelock" key, or the default configuration if there is none.
type Initializer struct{}

var _ paylock.Initializer = Initializer{}

func (Initializer) FromGenesis(opts paylock.Options, kv paylock.KVStore) error {
	var conf Configuration
	err := gconf.InitConfig(kv, opts, packageName, &conf)
	if errors.ErrNotFound.Is(err) {
		return gconf.Save(kv, packageName, DefaultConfiguration())
	}
	return err
}
