package paylock

import (
	amino "github.com/tendermint/go-amino"

	"github.com/iov-one/paylock/errors"
)

// cdc is shared by all models, messages and events. None of them contain
// interface fields, so no concrete types have to be registered.
var cdc = amino.NewCodec()

// Marshal serializes given value into its binary representation.
func Marshal(obj interface{}) ([]byte, error) {
	bz, err := cdc.MarshalBinaryBare(obj)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrModel, "marshal %T: %s", obj, err)
	}
	return bz, nil
}

// Unmarshal deserializes binary representation into given pointer.
func Unmarshal(raw []byte, ptr interface{}) error {
	if err := cdc.UnmarshalBinaryBare(raw, ptr); err != nil {
		return errors.Wrapf(errors.ErrModel, "unmarshal %T: %s", ptr, err)
	}
	return nil
}

// MustMarshal will succeed or panic
func MustMarshal(obj Marshaller) []byte {
	bz, err := obj.Marshal()
	if err != nil {
		panic(err)
	}
	return bz
}
