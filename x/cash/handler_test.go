package cash

import (
	"context"
	"testing"

	"github.com/iov-one/paylock"
	"github.com/iov-one/paylock/coin"
	"github.com/iov-one/paylock/errors"
	"github.com/iov-one/paylock/paylocktest"
	"github.com/iov-one/paylock/store"
)

func TestSend(t *testing.T) {
	foo := coin.NewCoin(100, "FOO")
	some := coin.NewCoin(300, "SOME")

	perm := paylock.NewCondition("sigs", "ed25519", []byte{1, 2, 3})
	perm2 := paylock.NewCondition("sigs", "ed25519", []byte{4, 5, 6})

	cases := map[string]struct {
		signers     []paylock.Condition
		initState   map[string][]coin.Coin
		msg         paylock.Msg
		wantCheck   *errors.Error
		wantDeliver *errors.Error
	}{
		"no message": {
			wantCheck:   errors.ErrMsg,
			wantDeliver: errors.ErrMsg,
		},
		"missing amount": {
			msg:         &SendMsg{Metadata: &paylock.Metadata{Schema: 1}, Destination: perm2.Address()},
			wantCheck:   errors.ErrCurrency,
			wantDeliver: errors.ErrCurrency,
		},
		"missing destination": {
			msg:         &SendMsg{Metadata: &paylock.Metadata{Schema: 1}, Amount: foo},
			wantCheck:   errors.ErrInput,
			wantDeliver: errors.ErrInput,
		},
		"not signed": {
			msg:         &SendMsg{Metadata: &paylock.Metadata{Schema: 1}, Amount: foo, Source: perm.Address(), Destination: perm2.Address()},
			wantCheck:   errors.ErrUnauthorized,
			wantDeliver: errors.ErrUnauthorized,
		},
		"sender has no account": {
			signers:     []paylock.Condition{perm},
			msg:         &SendMsg{Metadata: &paylock.Metadata{Schema: 1}, Amount: foo, Source: perm.Address(), Destination: perm2.Address()},
			wantDeliver: errors.ErrInsufficientFunds,
		},
		"sender too poor": {
			signers:     []paylock.Condition{perm},
			initState:   map[string][]coin.Coin{string(perm.Address()): {some}},
			msg:         &SendMsg{Metadata: &paylock.Metadata{Schema: 1}, Amount: foo, Source: perm.Address(), Destination: perm2.Address()},
			wantDeliver: errors.ErrInsufficientFunds,
		},
		"sender got cash": {
			signers:   []paylock.Condition{perm},
			initState: map[string][]coin.Coin{string(perm.Address()): {foo}},
			msg:       &SendMsg{Metadata: &paylock.Metadata{Schema: 1}, Amount: foo, Source: perm.Address(), Destination: perm2.Address()},
		},
		"source defaults to the main signer": {
			signers:   []paylock.Condition{perm},
			initState: map[string][]coin.Coin{string(perm.Address()): {foo, some}},
			msg:       &SendMsg{Metadata: &paylock.Metadata{Schema: 1}, Amount: foo, Destination: perm2.Address()},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			auth := &paylocktest.Auth{Signers: tc.signers}
			controller := NewController(NewBucket())
			h := NewSendHandler(auth, controller)

			kv := store.MemStore()
			bucket := NewBucket()
			for addr, coins := range tc.initState {
				set, err := NewSet(coins...)
				if err != nil {
					t.Fatalf("cannot create a set: %s", err)
				}
				if _, err := bucket.Put(kv, paylock.Address(addr), set); err != nil {
					t.Fatalf("cannot save a set: %s", err)
				}
			}

			tx := &paylocktest.Tx{Msg: tc.msg}
			ctx := context.Background()

			if _, err := h.Check(ctx, kv, tx); !tc.wantCheck.Is(err) {
				t.Fatalf("unexpected check error: %+v", err)
			}
			if _, err := h.Deliver(ctx, kv, tx); !tc.wantDeliver.Is(err) {
				t.Fatalf("unexpected deliver error: %+v", err)
			}
			if tc.wantDeliver != nil {
				return
			}
			coins, err := controller.Balance(kv, perm2.Address())
			if err != nil {
				t.Fatalf("cannot get balance: %s", err)
			}
			if !coins.Balance("FOO").Equals(foo) {
				t.Fatalf("unexpected destination balance: %v", coins)
			}
		})
	}
}
