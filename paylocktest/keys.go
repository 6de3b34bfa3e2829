package paylocktest

import (
	"github.com/iov-one/paylock"
	"github.com/iov-one/paylock/crypto"
)

// NewKey returns a freshly generated ed25519 private key.
func NewKey() *crypto.PrivateKey {
	return crypto.GenPrivKeyEd25519()
}

// NewCondition returns the signature condition of a new random key.
func NewCondition() paylock.Condition {
	return NewKey().PublicKey().Condition()
}
