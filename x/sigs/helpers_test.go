package sigs

import (
	"github.com/iov-one/paylock"
	"github.com/iov-one/paylock/paylocktest"
)

type StdTx struct {
	paylocktest.Tx
	Signatures []*StdSignature
}

var _ SignedTx = (*StdTx)(nil)
var _ paylock.Tx = (*StdTx)(nil)

func NewStdTx(payload []byte) *StdTx {
	msg := &paylocktest.Msg{RoutePath: "test/std", Serialized: payload}
	return &StdTx{Tx: paylocktest.Tx{Msg: msg}}
}

func (tx *StdTx) GetSignatures() []*StdSignature {
	return tx.Signatures
}

func (tx *StdTx) GetSignBytes() ([]byte, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, err
	}
	return msg.Marshal()
}
