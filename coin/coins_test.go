package coin

import (
	"testing"

	"github.com/iov-one/paylock/errors"
	"github.com/iov-one/paylock/paylocktest/assert"
)

func TestCombineCoins(t *testing.T) {
	cs, err := CombineCoins(NewCoin(5, "IOV"), NewCoin(3, "ETH"), NewCoin(2, "IOV"))
	assert.Nil(t, err)
	assert.Equal(t, Coins{NewCoin(3, "ETH"), NewCoin(7, "IOV")}, cs)
	assert.Nil(t, cs.Validate())

	if _, err := CombineCoins(NewCoin(-5, "IOV")); err != nil {
		t.Fatalf("negative values are allowed in combine: %v", err)
	}
}

func TestCoinsAddSubtract(t *testing.T) {
	orig := Coins{NewCoin(10, "ETH")}

	more, err := orig.Add(NewCoin(5, "BTC"))
	assert.Nil(t, err)
	assert.Equal(t, Coins{NewCoin(5, "BTC"), NewCoin(10, "ETH")}, more)
	// receiver is never modified
	assert.Equal(t, Coins{NewCoin(10, "ETH")}, orig)

	less, err := more.Subtract(NewCoin(10, "ETH"))
	assert.Nil(t, err)
	assert.Equal(t, Coins{NewCoin(5, "BTC")}, less)

	if !more.Contains(NewCoin(10, "ETH")) || more.Contains(NewCoin(11, "ETH")) {
		t.Fatal("invalid contains result")
	}
	if more.Contains(NewCoin(1, "IOV")) {
		t.Fatal("missing currency cannot be contained")
	}
	assert.Equal(t, NewCoin(5, "BTC"), more.Balance("BTC"))
	assert.Equal(t, NewCoin(0, "IOV"), more.Balance("IOV"))

	neg, err := less.Subtract(NewCoin(6, "BTC"))
	assert.Nil(t, err)
	if neg.IsNonNegative() {
		t.Fatal("negative holdings must be reported")
	}
}

func TestCoinsValidate(t *testing.T) {
	unsorted := Coins{NewCoin(1, "IOV"), NewCoin(1, "ETH")}
	if err := unsorted.Validate(); !errors.ErrState.Is(err) {
		t.Fatalf("unsorted set must fail: %v", err)
	}
	zero := Coins{NewCoin(0, "IOV")}
	if err := zero.Validate(); !errors.ErrState.Is(err) {
		t.Fatalf("zero coin must fail: %v", err)
	}
	if !(Coins{}).Equals(nil) {
		t.Fatal("empty sets must be equal")
	}
}
