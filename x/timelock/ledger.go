package timelock

import (
	"github.com/iov-one/paylock"
	"github.com/iov-one/paylock/coin"
	"github.com/iov-one/paylock/errors"
	"github.com/iov-one/paylock/orm"
)

// CustodyCondition owns the account that holds all committed funds.
var CustodyCondition = paylock.NewCondition("timelock", "custody", []byte("ledger"))

// CustodyAddress returns the address of the custody account.
func CustodyAddress() paylock.Address {
	return CustodyCondition.Address()
}

// Ledger stores payments. It does not validate business rules, that is the
// job of the handlers.
type Ledger struct {
	bucket orm.ModelBucket
	ids    orm.Sequence
}

// NewLedger returns a ledger using the "payment" bucket.
func NewLedger() *Ledger {
	return &Ledger{
		bucket: newPaymentBucket(),
		ids:    orm.NewSequence(bucketName, orm.SeqID),
	}
}

// Insert creates a committed payment with the next free id.
func (l *Ledger) Insert(db paylock.KVStore, payer, receiver paylock.Address, unlockTime paylock.UnixTime, amount coin.Coin, now paylock.UnixTime) (*Payment, error) {
	id, err := l.ids.NextVal(db)
	if err != nil {
		return nil, errors.Wrap(err, "payment id")
	}
	p := Payment{
		Metadata:   &paylock.Metadata{Schema: 1},
		ID:         id,
		Payer:      payer,
		Receiver:   receiver,
		UnlockTime: unlockTime,
		Amount:     amount,
		State:      Committed,
		CreatedAt:  now,
	}
	if _, err := l.bucket.Put(db, id, &p); err != nil {
		return nil, errors.Wrap(err, "save payment")
	}
	return &p, nil
}

// Get returns the payment with given id, in any state.
func (l *Ledger) Get(db paylock.ReadOnlyKVStore, id []byte) (*Payment, error) {
	var p Payment
	if err := l.bucket.One(db, id, &p); err != nil {
		return nil, errors.Wrapf(err, "payment %X", id)
	}
	return &p, nil
}

// OutstandingFor returns committed payments funded by payer, oldest first.
func (l *Ledger) OutstandingFor(db paylock.ReadOnlyKVStore, payer paylock.Address) ([]*Payment, error) {
	return l.committed(db, payerIndex, payer)
}

// PayableFor returns committed payments owed to receiver, oldest first.
func (l *Ledger) PayableFor(db paylock.ReadOnlyKVStore, receiver paylock.Address) ([]*Payment, error) {
	return l.committed(db, receiverIndex, receiver)
}

func (l *Ledger) committed(db paylock.ReadOnlyKVStore, index string, addr paylock.Address) ([]*Payment, error) {
	if len(addr) == 0 {
		return nil, nil
	}
	var payments []*Payment
	if _, err := l.bucket.ByIndex(db, index, addr, &payments); err != nil {
		return nil, errors.Wrapf(err, "index %s", index)
	}
	return payments, nil
}

// FindOutstanding returns the oldest committed payment of the payer that
// matches all given values. ErrNotFound is returned if there is none.
func (l *Ledger) FindOutstanding(db paylock.ReadOnlyKVStore, payer, receiver paylock.Address, unlockTime paylock.UnixTime, amount coin.Coin) (*Payment, error) {
	payments, err := l.OutstandingFor(db, payer)
	if err != nil {
		return nil, err
	}
	for _, p := range payments {
		if p.Receiver.Equals(receiver) && p.UnlockTime == unlockTime && p.Amount.Equals(amount) {
			return p, nil
		}
	}
	return nil, errors.Wrap(errors.ErrNotFound, "no matching committed payment")
}

// MarkClaimed moves a committed payment into the claimed state.
func (l *Ledger) MarkClaimed(db paylock.KVStore, id []byte, now paylock.UnixTime) (*Payment, error) {
	return l.settle(db, id, Claimed, now)
}

// MarkCancelled moves a committed payment into the cancelled state.
func (l *Ledger) MarkCancelled(db paylock.KVStore, id []byte, now paylock.UnixTime) (*Payment, error) {
	return l.settle(db, id, Cancelled, now)
}

func (l *Ledger) settle(db paylock.KVStore, id []byte, state PaymentState, now paylock.UnixTime) (*Payment, error) {
	p, err := l.Get(db, id)
	if err != nil {
		return nil, err
	}
	if p.State != Committed {
		return nil, errors.Wrapf(errors.ErrState, "payment %X is %s", id, p.State)
	}
	p.State = state
	p.SettledAt = now
	if _, err := l.bucket.Put(db, id, p); err != nil {
		return nil, errors.Wrap(err, "save payment")
	}
	return p, nil
}

// Custody returns the sum of all committed payments. It must always be equal
// to the balance of the custody account.
func (l *Ledger) Custody(db paylock.ReadOnlyKVStore) (coin.Coins, error) {
	prefix := []byte(bucketName + ":")
	end := append([]byte(bucketName), ':'+1)
	it, err := db.Iterator(prefix, end)
	if err != nil {
		return nil, err
	}
	defer it.Release()

	var total coin.Coins
	for {
		_, value, err := it.Next()
		if errors.ErrIteratorDone.Is(err) {
			return total, nil
		}
		if err != nil {
			return nil, err
		}
		var p Payment
		if err := p.Unmarshal(value); err != nil {
			return nil, err
		}
		if p.State != Committed {
			continue
		}
		if total, err = total.Add(p.Amount); err != nil {
			return nil, err
		}
	}
}
