package app

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/libs/log"

	"github.com/iov-one/paylock"
	"github.com/iov-one/paylock/app"
	"github.com/iov-one/paylock/coin"
	"github.com/iov-one/paylock/crypto"
	"github.com/iov-one/paylock/errors"
	"github.com/iov-one/paylock/eventlog"
	"github.com/iov-one/paylock/paylocktest"
	"github.com/iov-one/paylock/store"
	"github.com/iov-one/paylock/x/cash"
	"github.com/iov-one/paylock/x/pause"
	"github.com/iov-one/paylock/x/sigs"
	"github.com/iov-one/paylock/x/timelock"
)

const chainID = "paylock-test"

var start = time.Date(2019, time.June, 1, 12, 0, 0, 0, time.UTC)

type harness struct {
	t      *testing.T
	engine *app.Engine
	clock  *app.ManualClock
	sink   *eventlog.MemorySink
}

func newHarness(t *testing.T, owner *crypto.PrivateKey, accounts map[*crypto.PrivateKey]string) *harness {
	t.Helper()

	var wallets []cash.GenesisAccount
	for key, amount := range accounts {
		c, err := coin.ParseHumanFormat(amount)
		require.NoError(t, err)
		wallets = append(wallets, cash.GenesisAccount{
			Address: key.PublicKey().Address(),
			Coins:   []coin.Coin{c},
		})
	}
	rawWallets, err := json.Marshal(wallets)
	require.NoError(t, err)
	rawOwner, err := json.Marshal(owner.PublicKey().Address())
	require.NoError(t, err)

	db, err := OpenDatabase("memory", "")
	require.NoError(t, err)
	clock := app.NewManualClock(start)
	engine, err := Application(db, clock, log.NewNopLogger())
	require.NoError(t, err)

	gen := app.Genesis{
		ChainID: chainID,
		AppState: paylock.Options{
			"cash":  rawWallets,
			"owner": rawOwner,
		},
	}
	require.NoError(t, engine.InitChain(gen))

	var sink eventlog.MemorySink
	engine.Subscribe(&sink)
	return &harness{t: t, engine: engine, clock: clock, sink: &sink}
}

func (h *harness) deliver(key *crypto.PrivateKey, msg paylock.Msg) error {
	h.t.Helper()
	var seq int64
	err := h.engine.View(func(db paylock.ReadOnlyKVStore) error {
		var err error
		seq, err = sigs.NextNonce(db, key.PublicKey())
		return err
	})
	require.NoError(h.t, err)

	tx := &Tx{Msg: msg}
	require.NoError(h.t, tx.Sign(key, chainID, seq))
	_, err = h.engine.Deliver(context.Background(), tx)
	return err
}

func (h *harness) balance(addr paylock.Address) int64 {
	h.t.Helper()
	var coins coin.Coins
	err := h.engine.View(func(db paylock.ReadOnlyKVStore) error {
		var err error
		coins, err = cash.NewController(cash.NewBucket()).Balance(db, addr)
		return err
	})
	require.NoError(h.t, err)
	return coins.Balance("ETH").Amount
}

func (h *harness) kinds() []string {
	var kinds []string
	for _, e := range h.sink.Entries() {
		kinds = append(kinds, e.Record.Kind)
	}
	return kinds
}

func meta() *paylock.Metadata {
	return &paylock.Metadata{Schema: 1}
}

func TestPaymentLifecycle(t *testing.T) {
	alice := crypto.PrivKeyFromName("alice")
	bob := crypto.PrivKeyFromName("bob")
	carol := crypto.PrivKeyFromName("carol")
	aliceAddr := alice.PublicKey().Address()
	bobAddr := bob.PublicKey().Address()

	h := newHarness(t, alice, map[*crypto.PrivateKey]string{
		alice: "10000 ETH",
	})

	unlock := paylock.AsUnixTime(start.Add(48 * time.Hour))
	commit := &timelock.CommitPaymentMsg{
		Metadata:   meta(),
		Receiver:   bobAddr,
		UnlockTime: unlock,
		Amount:     coin.NewCoin(1000, "ETH"),
	}
	require.NoError(t, h.deliver(alice, commit))
	assert.Equal(t, int64(9000), h.balance(aliceAddr))
	assert.Equal(t, int64(1000), h.balance(timelock.CustodyAddress()))

	err := h.deliver(bob, &timelock.ClaimPaymentsMsg{Metadata: meta()})
	assert.True(t, errors.ErrNothingToClaim.Is(err), "early claim: %v", err)

	h.clock.Advance(48 * time.Hour)
	require.NoError(t, h.deliver(bob, &timelock.ClaimPaymentsMsg{Metadata: meta()}))
	assert.Equal(t, int64(1000), h.balance(bobAddr))
	assert.Equal(t, int64(0), h.balance(timelock.CustodyAddress()))

	// Cancellation is allowed while the unlock time is further away than
	// the notice period.
	later := &timelock.CommitPaymentMsg{
		Metadata:   meta(),
		Receiver:   bobAddr,
		UnlockTime: paylock.AsUnixTime(h.clock.Now().Add(72 * time.Hour)),
		Amount:     coin.NewCoin(500, "ETH"),
	}
	require.NoError(t, h.deliver(alice, later))
	cancel := &timelock.CancelPaymentMsg{
		Metadata:   meta(),
		Receiver:   later.Receiver,
		UnlockTime: later.UnlockTime,
		Amount:     later.Amount,
	}
	err = h.deliver(carol, cancel)
	assert.True(t, errors.ErrNotFound.Is(err), "carol did not pay: %v", err)
	require.NoError(t, h.deliver(alice, cancel))
	assert.Equal(t, int64(9000), h.balance(aliceAddr))

	assert.Equal(t, []string{
		"PaymentCommitted",
		"PaymentClaimed",
		"PaymentCommitted",
		"PaymentCancelled",
	}, h.kinds())

	err = h.engine.View(func(db paylock.ReadOnlyKVStore) error {
		entries, err := eventlog.NewLog().ForAddress(db, bobAddr)
		if err != nil {
			return err
		}
		assert.Len(t, entries, 4)
		return nil
	})
	require.NoError(t, err)
}

func TestUnsignedTransactionIsRejected(t *testing.T) {
	alice := crypto.PrivKeyFromName("alice")
	h := newHarness(t, alice, map[*crypto.PrivateKey]string{
		alice: "100 ETH",
	})

	tx := &Tx{Msg: &timelock.ClaimPaymentsMsg{Metadata: meta()}}
	_, err := h.engine.Deliver(context.Background(), tx)
	assert.True(t, errors.ErrUnauthorized.Is(err), "got %v", err)

	// Signature for another chain.
	tx = &Tx{Msg: &timelock.ClaimPaymentsMsg{Metadata: meta()}}
	require.NoError(t, tx.Sign(alice, "another-chain", 0))
	_, err = h.engine.Deliver(context.Background(), tx)
	assert.True(t, errors.ErrUnauthorized.Is(err), "got %v", err)

	height, err := h.engine.Height()
	require.NoError(t, err)
	assert.Equal(t, int64(0), height)
}

func TestPauseBlocksPayments(t *testing.T) {
	alice := crypto.PrivKeyFromName("alice")
	bob := crypto.PrivKeyFromName("bob")
	h := newHarness(t, alice, map[*crypto.PrivateKey]string{
		bob: "100 ETH",
	})

	commit := &timelock.CommitPaymentMsg{
		Metadata:   meta(),
		Receiver:   alice.PublicKey().Address(),
		UnlockTime: paylock.AsUnixTime(start.Add(time.Hour)),
		Amount:     coin.NewCoin(10, "ETH"),
	}

	err := h.deliver(bob, &pause.PauseMsg{Metadata: meta()})
	assert.True(t, errors.ErrUnauthorized.Is(err), "only owner can pause: %v", err)

	require.NoError(t, h.deliver(alice, &pause.PauseMsg{Metadata: meta()}))
	err = h.deliver(bob, commit)
	assert.True(t, errors.ErrPaused.Is(err), "got %v", err)

	require.NoError(t, h.deliver(alice, &pause.UnpauseMsg{Metadata: meta()}))
	require.NoError(t, h.deliver(bob, commit))
	assert.Equal(t, int64(90), h.balance(bob.PublicKey().Address()))

	assert.Equal(t, []string{"Paused", "Unpaused", "PaymentCommitted"}, h.kinds())
}

func TestTxSignBytesBindPath(t *testing.T) {
	pauseTx := &Tx{Msg: &pause.PauseMsg{Metadata: meta()}}
	claimTx := &Tx{Msg: &timelock.ClaimPaymentsMsg{Metadata: meta()}}

	a, err := pauseTx.GetSignBytes()
	require.NoError(t, err)
	b, err := claimTx.GetSignBytes()
	require.NoError(t, err)
	assert.NotEqual(t, a, b)

	_, err = (&Tx{}).GetSignBytes()
	assert.True(t, errors.ErrMsg.Is(err))
}

func TestChainIsolatesFailedMessage(t *testing.T) {
	alice := crypto.PrivKeyFromName("alice")
	db := store.MemStore()
	h := Chain(eventlog.NewLog()).WithHandler(&paylocktest.WriteHandler{
		Key:   []byte("written"),
		Value: []byte("by handler"),
		Err:   errors.ErrHuman,
	})

	tx := &Tx{Msg: &pause.PauseMsg{Metadata: meta()}}
	require.NoError(t, tx.Sign(alice, chainID, 0))
	ctx := paylock.WithChainID(context.Background(), chainID)
	ctx = paylock.WithHeight(ctx, 1)
	ctx = paylock.WithBlockTime(ctx, start)

	_, err := h.Deliver(ctx, db, tx)
	assert.True(t, errors.ErrHuman.Is(err), "got %v", err)

	has, err := db.Has([]byte("written"))
	require.NoError(t, err)
	assert.False(t, has, "handler write must be dropped")

	// The signature check runs before the savepoint, so its nonce update
	// stays in the store.
	seq, err := sigs.NextNonce(db, alice.PublicKey())
	require.NoError(t, err)
	assert.Equal(t, int64(1), seq)
}
