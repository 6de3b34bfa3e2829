package cash

import (
	"github.com/iov-one/paylock"
	"github.com/iov-one/paylock/coin"
	"github.com/iov-one/paylock/errors"
	"github.com/iov-one/paylock/orm"
)

// BucketName is where we store the balances
const BucketName = "cash"

// Set is the balance of a single account.
type Set struct {
	Metadata *paylock.Metadata `json:"metadata"`
	Coins    coin.Coins        `json:"coins"`
}

var _ orm.Model = (*Set)(nil)

func (s *Set) Marshal() ([]byte, error) {
	return paylock.Marshal(s)
}

func (s *Set) Unmarshal(raw []byte) error {
	return paylock.Unmarshal(raw, s)
}

// Validate requires that all coins are in alphabetical order and positive.
func (s *Set) Validate() error {
	if err := s.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if err := s.Coins.Validate(); err != nil {
		return errors.Wrap(err, "coins")
	}
	if !s.Coins.IsNonNegative() {
		return errors.Wrap(errors.ErrAmount, "negative balance")
	}
	return nil
}

// NewSet returns a normalized set holding given coins.
func NewSet(coins ...coin.Coin) (*Set, error) {
	cs, err := coin.CombineCoins(coins...)
	if err != nil {
		return nil, err
	}
	return &Set{
		Metadata: &paylock.Metadata{Schema: 1},
		Coins:    cs,
	}, nil
}

// NewBucket returns a bucket that stores wallets under the owner address.
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket(BucketName, &Set{})
}
