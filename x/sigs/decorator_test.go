package sigs

import (
	"context"
	"testing"

	"github.com/iov-one/paylock"
	"github.com/iov-one/paylock/crypto"
	"github.com/iov-one/paylock/errors"
	"github.com/iov-one/paylock/paylocktest"
	"github.com/iov-one/paylock/store"
)

func TestDecorator(t *testing.T) {
	kv := store.MemStore()
	chainID := "deco-rate"
	ctx := paylock.WithChainID(context.Background(), chainID)

	priv := crypto.GenPrivKeyEd25519()
	perm := priv.PublicKey().Condition()

	signers := new(signerHandler)
	d := NewDecorator()
	stack := paylocktest.Decorate(signers, d)

	// unsigned tx is rejected
	tx := NewStdTx([]byte("foo"))
	if _, err := stack.Check(ctx, kv, tx); !errors.ErrUnauthorized.Is(err) {
		t.Fatalf("want unauthorized, got %+v", err)
	}

	// a signed one passes
	sig, err := SignTx(priv, tx, chainID, 0)
	if err != nil {
		t.Fatalf("cannot sign: %s", err)
	}
	tx.Signatures = []*StdSignature{sig}
	if _, err := stack.Deliver(ctx, kv, tx); err != nil {
		t.Fatalf("cannot deliver: %s", err)
	}
	if len(signers.signers) != 1 || !perm.Equals(signers.signers[0]) {
		t.Fatalf("unexpected signers: %v", signers.signers)
	}

	// replay is rejected
	if _, err := stack.Deliver(ctx, kv, tx); !ErrInvalidSequence.Is(err) {
		t.Fatalf("want invalid sequence, got %+v", err)
	}

	// the next nonce is accepted
	sig1, err := SignTx(priv, tx, chainID, 1)
	if err != nil {
		t.Fatalf("cannot sign: %s", err)
	}
	tx.Signatures = []*StdSignature{sig1}
	if _, err := stack.Check(ctx, kv, tx); err != nil {
		t.Fatalf("cannot check: %s", err)
	}

	// missing signatures may be allowed
	allow := paylocktest.Decorate(signers, d.AllowMissingSigs())
	if _, err := allow.Check(ctx, kv, NewStdTx([]byte("bar"))); err != nil {
		t.Fatalf("missing signatures must be allowed: %s", err)
	}
	if len(signers.signers) != 0 {
		t.Fatalf("unexpected signers: %v", signers.signers)
	}
}

// signerHandler records the conditions authenticated for the last call.
type signerHandler struct {
	signers []paylock.Condition
}

var _ paylock.Handler = (*signerHandler)(nil)

func (s *signerHandler) Check(ctx paylock.Context, store paylock.KVStore, tx paylock.Tx) (*paylock.CheckResult, error) {
	s.signers = Authenticate{}.GetConditions(ctx)
	return &paylock.CheckResult{}, nil
}

func (s *signerHandler) Deliver(ctx paylock.Context, store paylock.KVStore, tx paylock.Tx) (*paylock.DeliverResult, error) {
	s.signers = Authenticate{}.GetConditions(ctx)
	return &paylock.DeliverResult{}, nil
}
