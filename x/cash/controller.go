package cash

import (
	"github.com/iov-one/paylock"
	"github.com/iov-one/paylock/coin"
	"github.com/iov-one/paylock/errors"
	"github.com/iov-one/paylock/orm"
)

// Controller is the fund transfer primitive. Every method either fully
// succeeds or returns an error without modifying the store.
type Controller interface {
	// Balance returns all coins held by given account.
	Balance(db paylock.ReadOnlyKVStore, addr paylock.Address) (coin.Coins, error)

	// Debit removes given amount from the account. ErrInsufficientFunds
	// is returned if the account does not hold enough.
	Debit(db paylock.KVStore, addr paylock.Address, amount coin.Coin) error

	// Credit adds given amount to the account. ErrTransferFailed is
	// returned if the account cannot receive the funds.
	Credit(db paylock.KVStore, addr paylock.Address, amount coin.Coin) error

	// MoveCoins debits the source and credits the destination.
	MoveCoins(db paylock.KVStore, src, dest paylock.Address, amount coin.Coin) error
}

// BaseController is the default Controller implementation backed by the
// wallet bucket.
type BaseController struct {
	bucket orm.ModelBucket
}

var _ Controller = BaseController{}

// NewController returns a controller operating on given bucket.
func NewController(bucket orm.ModelBucket) BaseController {
	return BaseController{bucket: bucket}
}

func (c BaseController) Balance(db paylock.ReadOnlyKVStore, addr paylock.Address) (coin.Coins, error) {
	set, err := c.load(db, addr)
	if err != nil {
		return nil, err
	}
	return set.Coins, nil
}

func (c BaseController) Debit(db paylock.KVStore, addr paylock.Address, amount coin.Coin) error {
	if err := checkAmount(amount); err != nil {
		return err
	}
	set, err := c.load(db, addr)
	if err != nil {
		return err
	}
	if err := subtract(set, addr, amount); err != nil {
		return err
	}
	return c.save(db, addr, set)
}

func (c BaseController) Credit(db paylock.KVStore, addr paylock.Address, amount coin.Coin) error {
	if err := checkAmount(amount); err != nil {
		return err
	}
	if err := addr.Validate(); err != nil {
		return errors.Wrapf(errors.ErrTransferFailed, "recipient: %s", err)
	}
	set, err := c.load(db, addr)
	if err != nil {
		return err
	}
	if err := add(set, addr, amount); err != nil {
		return err
	}
	return c.save(db, addr, set)
}

// MoveCoins updates both wallets in memory and saves them only when the
// debit and the credit both succeeded.
func (c BaseController) MoveCoins(db paylock.KVStore, src, dest paylock.Address, amount coin.Coin) error {
	if err := checkAmount(amount); err != nil {
		return err
	}
	if err := dest.Validate(); err != nil {
		return errors.Wrapf(errors.ErrTransferFailed, "recipient: %s", err)
	}

	sender, err := c.load(db, src)
	if err != nil {
		return err
	}
	if err := subtract(sender, src, amount); err != nil {
		return err
	}

	recipient := sender
	if !src.Equals(dest) {
		if recipient, err = c.load(db, dest); err != nil {
			return err
		}
	}
	if err := add(recipient, dest, amount); err != nil {
		return err
	}

	if err := c.save(db, src, sender); err != nil {
		return err
	}
	if src.Equals(dest) {
		return nil
	}
	return c.save(db, dest, recipient)
}

func subtract(set *Set, addr paylock.Address, amount coin.Coin) error {
	if !set.Coins.Contains(amount) {
		return errors.Wrapf(errors.ErrInsufficientFunds, "%s has %s", addr, set.Coins.Balance(amount.Ticker))
	}
	coins, err := set.Coins.Subtract(amount)
	if err != nil {
		return errors.Wrap(err, "subtract")
	}
	set.Coins = coins
	return nil
}

func add(set *Set, addr paylock.Address, amount coin.Coin) error {
	coins, err := set.Coins.Add(amount)
	if err != nil {
		return errors.Wrapf(errors.ErrTransferFailed, "credit %s: %s", addr, err)
	}
	set.Coins = coins
	return nil
}

// load returns the wallet of given account or an empty one if the account
// holds nothing.
func (c BaseController) load(db paylock.ReadOnlyKVStore, addr paylock.Address) (*Set, error) {
	var set Set
	switch err := c.bucket.One(db, addr, &set); {
	case err == nil:
		return &set, nil
	case errors.ErrNotFound.Is(err):
		return &Set{Metadata: &paylock.Metadata{Schema: 1}}, nil
	default:
		return nil, errors.Wrap(err, "cannot load wallet")
	}
}

// save stores the wallet. Empty wallets are removed from the store.
func (c BaseController) save(db paylock.KVStore, addr paylock.Address, set *Set) error {
	if set.Coins.IsEmpty() {
		if err := c.bucket.Delete(db, addr); err != nil && !errors.ErrNotFound.Is(err) {
			return err
		}
		return nil
	}
	if _, err := c.bucket.Put(db, addr, set); err != nil {
		return errors.Wrap(err, "cannot save wallet")
	}
	return nil
}

func checkAmount(amount coin.Coin) error {
	if err := amount.Validate(); err != nil {
		return errors.Wrap(err, "amount")
	}
	if !amount.IsPositive() {
		return errors.Wrapf(errors.ErrAmount, "non-positive amount: %s", amount)
	}
	return nil
}
