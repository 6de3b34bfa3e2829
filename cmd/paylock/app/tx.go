package app

import (
	"github.com/iov-one/paylock"
	"github.com/iov-one/paylock/crypto"
	"github.com/iov-one/paylock/errors"
	"github.com/iov-one/paylock/x/sigs"
)

// Tx carries a single message and the signatures authorizing it.
type Tx struct {
	Msg        paylock.Msg
	Signatures []*sigs.StdSignature
}

var _ paylock.Tx = (*Tx)(nil)
var _ sigs.SignedTx = (*Tx)(nil)

// GetMsg returns the single message of this transaction.
func (tx *Tx) GetMsg() (paylock.Msg, error) {
	if tx.Msg == nil {
		return nil, errors.Wrap(errors.ErrMsg, "no message")
	}
	return tx.Msg, nil
}

// GetSignatures returns all signatures of this transaction.
func (tx *Tx) GetSignatures() []*sigs.StdSignature {
	return tx.Signatures
}

// GetSignBytes returns the message path followed by the serialized message.
func (tx *Tx) GetSignBytes() ([]byte, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, err
	}
	raw, err := msg.Marshal()
	if err != nil {
		return nil, errors.Wrap(err, "marshal message")
	}
	path := msg.Path()
	bz := make([]byte, 0, len(path)+1+len(raw))
	bz = append(bz, path...)
	bz = append(bz, 0)
	bz = append(bz, raw...)
	return bz, nil
}

// Sign appends the signature of given key to the transaction.
func (tx *Tx) Sign(key *crypto.PrivateKey, chainID string, seq int64) error {
	sig, err := sigs.SignTx(key, tx, chainID, seq)
	if err != nil {
		return errors.Wrap(err, "sign")
	}
	tx.Signatures = append(tx.Signatures, sig)
	return nil
}
