package timelock

import (
	"github.com/iov-one/paylock"
	"github.com/iov-one/paylock/coin"
)

// CommittedPayments lists the outstanding payments of a payer as parallel
// sequences, oldest first.
type CommittedPayments struct {
	IDs         [][]byte           `json:"ids"`
	Receivers   []paylock.Address  `json:"receivers"`
	UnlockTimes []paylock.UnixTime `json:"unlock_times"`
	Amounts     []coin.Coin        `json:"amounts"`
}

// PayablePayments lists the outstanding payments owed to a receiver as
// parallel sequences, oldest first.
type PayablePayments struct {
	IDs         [][]byte           `json:"ids"`
	Payers      []paylock.Address  `json:"payers"`
	UnlockTimes []paylock.UnixTime `json:"unlock_times"`
	Amounts     []coin.Coin        `json:"amounts"`
}

// ListCommitted returns all committed payments funded by payer.
func (l *Ledger) ListCommitted(db paylock.ReadOnlyKVStore, payer paylock.Address) (*CommittedPayments, error) {
	payments, err := l.OutstandingFor(db, payer)
	if err != nil {
		return nil, err
	}
	res := CommittedPayments{
		IDs:         make([][]byte, 0, len(payments)),
		Receivers:   make([]paylock.Address, 0, len(payments)),
		UnlockTimes: make([]paylock.UnixTime, 0, len(payments)),
		Amounts:     make([]coin.Coin, 0, len(payments)),
	}
	for _, p := range payments {
		res.IDs = append(res.IDs, p.ID)
		res.Receivers = append(res.Receivers, p.Receiver)
		res.UnlockTimes = append(res.UnlockTimes, p.UnlockTime)
		res.Amounts = append(res.Amounts, p.Amount)
	}
	return &res, nil
}

// ListPayable returns all committed payments owed to receiver, whether
// already unlocked or not.
func (l *Ledger) ListPayable(db paylock.ReadOnlyKVStore, receiver paylock.Address) (*PayablePayments, error) {
	payments, err := l.PayableFor(db, receiver)
	if err != nil {
		return nil, err
	}
	res := PayablePayments{
		IDs:         make([][]byte, 0, len(payments)),
		Payers:      make([]paylock.Address, 0, len(payments)),
		UnlockTimes: make([]paylock.UnixTime, 0, len(payments)),
		Amounts:     make([]coin.Coin, 0, len(payments)),
	}
	for _, p := range payments {
		res.IDs = append(res.IDs, p.ID)
		res.Payers = append(res.Payers, p.Payer)
		res.UnlockTimes = append(res.UnlockTimes, p.UnlockTime)
		res.Amounts = append(res.Amounts, p.Amount)
	}
	return &res, nil
}
