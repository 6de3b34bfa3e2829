package cash

import (
	"github.com/iov-one/paylock"
	"github.com/iov-one/paylock/coin"
	"github.com/iov-one/paylock/errors"
)

const optKey = "cash"

// GenesisAccount is used to parse the json from genesis file.
type GenesisAccount struct {
	Address paylock.Address `json:"address"`
	Coins   []coin.Coin     `json:"coins"`
}

// Initializer fulfils the Initializer interface to load data from
// the genesis file
type Initializer struct{}

var _ paylock.Initializer = Initializer{}

// FromGenesis will parse initial account info from genesis
// and save it to the database
func (Initializer) FromGenesis(opts paylock.Options, kv paylock.KVStore) error {
	var accts []GenesisAccount
	if err := opts.ReadOptions(optKey, &accts); err != nil {
		return err
	}
	bucket := NewBucket()
	for i, acct := range accts {
		if err := acct.Address.Validate(); err != nil {
			return errors.Wrapf(err, "account %d", i)
		}
		set, err := NewSet(acct.Coins...)
		if err != nil {
			return errors.Wrapf(err, "account %d", i)
		}
		if _, err := bucket.Put(kv, acct.Address, set); err != nil {
			return errors.Wrapf(err, "account %d", i)
		}
	}
	return nil
}
