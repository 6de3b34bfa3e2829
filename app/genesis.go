package app

import (
	"encoding/json"
	"io/ioutil"

	"github.com/iov-one/paylock"
	"github.com/iov-one/paylock/errors"
)

// Genesis file format.
type Genesis struct {
	ChainID  string          `json:"chain_id"`
	AppState paylock.Options `json:"app_state"`
}

// Validate ensures the genesis can be used to initialize an engine.
func (g Genesis) Validate() error {
	if !paylock.IsValidChainID(g.ChainID) {
		return errors.Wrapf(errors.ErrInput, "invalid chain id %q", g.ChainID)
	}
	return nil
}

// LoadGenesis tries to load a given file into a Genesis struct
func LoadGenesis(filePath string) (Genesis, error) {
	var gen Genesis

	bytes, err := ioutil.ReadFile(filePath)
	if err != nil {
		return gen, errors.Wrapf(errors.ErrInput, "loading genesis file: %s", err)
	}
	if err := json.Unmarshal(bytes, &gen); err != nil {
		return gen, errors.Wrapf(errors.ErrInput, "unmarshaling genesis file: %s", err)
	}
	return gen, gen.Validate()
}

//------- storing chainID ---------

var chainIDKey = []byte("_pl:chainID")

// loadChainID returns the chain id stored if any
func loadChainID(kv paylock.ReadOnlyKVStore) (string, error) {
	v, err := kv.Get(chainIDKey)
	if err != nil {
		return "", errors.Wrap(err, "load chain id")
	}
	return string(v), nil
}

// saveChainID stores a chain id in the kv store.
// Returns error if already set, or invalid name
func saveChainID(kv paylock.KVStore, chainID string) error {
	if !paylock.IsValidChainID(chainID) {
		return errors.Wrapf(errors.ErrInput, "invalid chain id %q", chainID)
	}
	switch ok, err := kv.Has(chainIDKey); {
	case err != nil:
		return errors.Wrap(err, "load chain id")
	case ok:
		return errors.Wrap(errors.ErrState, "chain id already set")
	}
	return kv.Set(chainIDKey, []byte(chainID))
}
