package cash

import (
	"encoding/json"
	"testing"

	"github.com/iov-one/paylock"
	"github.com/iov-one/paylock/coin"
	"github.com/iov-one/paylock/errors"
	"github.com/iov-one/paylock/store"
)

func TestGenesis(t *testing.T) {
	const genesis = `{
		"cash": [
			{
				"address": "E28AE9A6EB94FC88B73EB7CBD6B87BF93EB9BEF0",
				"coins": ["1000 IOV", {"ticker": "ETH", "amount": 5}]
			}
		]
	}`
	var opts paylock.Options
	if err := json.Unmarshal([]byte(genesis), &opts); err != nil {
		t.Fatalf("cannot unmarshal genesis: %s", err)
	}

	db := store.MemStore()
	if err := (Initializer{}).FromGenesis(opts, db); err != nil {
		t.Fatalf("cannot load genesis: %s", err)
	}

	addr, err := paylock.ParseAddress("E28AE9A6EB94FC88B73EB7CBD6B87BF93EB9BEF0")
	if err != nil {
		t.Fatalf("cannot parse address: %s", err)
	}
	coins, err := NewController(NewBucket()).Balance(db, addr)
	if err != nil {
		t.Fatalf("cannot get balance: %s", err)
	}
	want := coin.Coins{coin.NewCoin(5, "ETH"), coin.NewCoin(1000, "IOV")}
	if !coins.Equals(want) {
		t.Fatalf("want %v, got %v", want, coins)
	}
}

func TestGenesisInvalidAddress(t *testing.T) {
	opts := paylock.Options{
		"cash": []byte(`[{"address": "", "coins": ["1 IOV"]}]`),
	}
	err := (Initializer{}).FromGenesis(opts, store.MemStore())
	if !errors.ErrInput.Is(err) {
		t.Fatalf("want invalid input, got %+v", err)
	}
}
