package main

import (
	"context"
	"encoding/json"
	"flag"
	"io"
	"io/ioutil"
	"path/filepath"
	"sort"
	"time"

	"github.com/iov-one/paylock"
	"github.com/iov-one/paylock/app"
	paylockapp "github.com/iov-one/paylock/cmd/paylock/app"
	"github.com/iov-one/paylock/coin"
	"github.com/iov-one/paylock/errors"
	"github.com/iov-one/paylock/eventlog"
	"github.com/iov-one/paylock/x/cash"
	"github.com/iov-one/paylock/x/owner"
	"github.com/iov-one/paylock/x/pause"
	"github.com/iov-one/paylock/x/sigs"
	"github.com/iov-one/paylock/x/timelock"
	"github.com/tendermint/tendermint/libs/log"
)

// Script is a list of actions applied in order. The ledger clock starts at
// Start and only moves on "advance" actions.
type Script struct {
	Start   time.Time `json:"start"`
	Actions []Action  `json:"actions"`
}

// Action is a single step of a script. Which fields are used depends on the
// action name. Signer and To are account names. To is the receiving account
// or the new owner. UnlockIn is the unlock time relative to the current clock
// (for example "48h") and takes precedence over UnlockAt. Duration is used by
// "advance". Fail marks an action that is expected to be rejected.
type Action struct {
	Action   string           `json:"action"`
	Signer   string           `json:"signer,omitempty"`
	To       string           `json:"to,omitempty"`
	Amount   coin.Coin        `json:"amount,omitempty"`
	UnlockAt paylock.UnixTime `json:"unlock_at,omitempty"`
	UnlockIn string           `json:"unlock_in,omitempty"`
	Duration string           `json:"duration,omitempty"`
	Fail     bool             `json:"fail,omitempty"`
}

// Report is printed once all actions are applied.
type Report struct {
	ChainID  string                                 `json:"chain_id"`
	Height   int64                                  `json:"height"`
	Time     time.Time                              `json:"time"`
	Balances map[string]coin.Coins                  `json:"balances"`
	Custody  coin.Coins                             `json:"custody"`
	Payments map[string]*timelock.CommittedPayments `json:"payments"`
}

// ReplayCmd applies the script given as the only argument on top of the
// state defined by the genesis file. Every event is written to out as a line
// of JSON, followed by a final report.
func ReplayCmd(logger log.Logger, home string, args []string, out io.Writer) error {
	fl := flag.NewFlagSet("replay", flag.ContinueOnError)
	var (
		genPath = fl.String("genesis", filepath.Join(home, genesisFile), "genesis file")
		dbKind  = fl.String("db", "memory", "database backend: memory or goleveldb")
	)
	if err := fl.Parse(args); err != nil {
		return err
	}
	if fl.NArg() != 1 {
		return errors.Wrap(errors.ErrInput, "script file required")
	}

	script, err := loadScript(fl.Arg(0))
	if err != nil {
		return err
	}
	gen, err := app.LoadGenesis(*genPath)
	if err != nil {
		return err
	}

	db, err := paylockapp.OpenDatabase(*dbKind, filepath.Join(home, "paylock.db"))
	if err != nil {
		return err
	}
	defer db.Close()

	clock := app.NewManualClock(script.Start)
	engine, err := paylockapp.Application(db, clock, logger)
	if err != nil {
		return err
	}
	switch chainID := engine.ChainID(); chainID {
	case "":
		if err := engine.InitChain(gen); err != nil {
			return err
		}
	case gen.ChainID:
		logger.Info("Continuing existing chain", "chainID", chainID)
	default:
		return errors.Wrapf(errors.ErrState, "database holds chain %s, genesis is for %s", chainID, gen.ChainID)
	}
	engine.Subscribe(eventlog.NewWriterSink(out))

	r := replayer{engine: engine, clock: clock, logger: logger, accounts: make(map[string]struct{})}
	for i, a := range script.Actions {
		if err := r.apply(a); err != nil {
			return errors.Wrapf(err, "action %d (%s)", i, a.Action)
		}
	}

	report, err := r.report()
	if err != nil {
		return err
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	return nil
}

func loadScript(path string) (*Script, error) {
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "read script: %s", err)
	}
	var s Script
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "parse script: %s", err)
	}
	if s.Start.IsZero() {
		return nil, errors.Wrap(errors.ErrInput, "script start time required")
	}
	return &s, nil
}

type replayer struct {
	engine *app.Engine
	clock  *app.ManualClock
	logger log.Logger

	// accounts collects every name used, for the final report.
	accounts map[string]struct{}
}

func (r *replayer) apply(a Action) error {
	if a.Action == "advance" {
		d, err := time.ParseDuration(a.Duration)
		if err != nil {
			return errors.Wrapf(errors.ErrInput, "duration: %s", err)
		}
		now := r.clock.Advance(d)
		r.logger.Info("Clock advanced", "now", now)
		return nil
	}

	msg, err := r.message(a)
	if err != nil {
		return err
	}
	if a.Signer == "" {
		return errors.Wrap(errors.ErrInput, "signer required")
	}
	r.accounts[a.Signer] = struct{}{}

	err = r.deliver(a.Signer, msg)
	switch {
	case err == nil && a.Fail:
		return errors.Wrap(errors.ErrState, "expected a failure")
	case err != nil && a.Fail:
		r.logger.Info("Rejected as expected", "action", a.Action, "err", err)
		return nil
	default:
		return err
	}
}

func (r *replayer) message(a Action) (paylock.Msg, error) {
	meta := &paylock.Metadata{Schema: 1}
	var to paylock.Address
	if a.To != "" {
		r.accounts[a.To] = struct{}{}
		to = accountAddress(a.To)
	}

	switch a.Action {
	case "commit":
		unlock, err := r.unlockTime(a)
		if err != nil {
			return nil, err
		}
		return &timelock.CommitPaymentMsg{Metadata: meta, Receiver: to, UnlockTime: unlock, Amount: a.Amount}, nil
	case "cancel":
		unlock, err := r.unlockTime(a)
		if err != nil {
			return nil, err
		}
		return &timelock.CancelPaymentMsg{Metadata: meta, Receiver: to, UnlockTime: unlock, Amount: a.Amount}, nil
	case "claim":
		return &timelock.ClaimPaymentsMsg{Metadata: meta}, nil
	case "send":
		return &cash.SendMsg{Metadata: meta, Destination: to, Amount: a.Amount}, nil
	case "pause":
		return &pause.PauseMsg{Metadata: meta}, nil
	case "unpause":
		return &pause.UnpauseMsg{Metadata: meta}, nil
	case "transfer_ownership":
		return &owner.TransferOwnershipMsg{Metadata: meta, NewOwner: to}, nil
	default:
		return nil, errors.Wrapf(errors.ErrInput, "unknown action %q", a.Action)
	}
}

func (r *replayer) unlockTime(a Action) (paylock.UnixTime, error) {
	if a.UnlockIn == "" {
		return a.UnlockAt, nil
	}
	d, err := time.ParseDuration(a.UnlockIn)
	if err != nil {
		return 0, errors.Wrapf(errors.ErrInput, "unlock_in: %s", err)
	}
	return paylock.AsUnixTime(r.clock.Now().Add(d)), nil
}

func (r *replayer) deliver(signer string, msg paylock.Msg) error {
	key := accountKey(signer)
	var seq int64
	err := r.engine.View(func(db paylock.ReadOnlyKVStore) error {
		var err error
		seq, err = sigs.NextNonce(db, key.PublicKey())
		return err
	})
	if err != nil {
		return err
	}

	tx := &paylockapp.Tx{Msg: msg}
	if err := tx.Sign(key, r.engine.ChainID(), seq); err != nil {
		return err
	}
	_, err = r.engine.Deliver(context.Background(), tx)
	return err
}

func (r *replayer) report() (*Report, error) {
	height, err := r.engine.Height()
	if err != nil {
		return nil, err
	}
	rep := Report{
		ChainID:  r.engine.ChainID(),
		Height:   height,
		Time:     r.clock.Now(),
		Balances: make(map[string]coin.Coins),
		Payments: make(map[string]*timelock.CommittedPayments),
	}

	names := make([]string, 0, len(r.accounts))
	for name := range r.accounts {
		names = append(names, name)
	}
	sort.Strings(names)

	bank := cash.NewController(cash.NewBucket())
	ledger := timelock.NewLedger()
	err = r.engine.View(func(db paylock.ReadOnlyKVStore) error {
		for _, name := range names {
			addr := accountAddress(name)
			coins, err := bank.Balance(db, addr)
			if err != nil {
				return err
			}
			rep.Balances[name] = coins
			payments, err := ledger.ListCommitted(db, addr)
			if err != nil {
				return err
			}
			if len(payments.IDs) > 0 {
				rep.Payments[name] = payments
			}
		}
		custody, err := bank.Balance(db, timelock.CustodyAddress())
		if err != nil {
			return err
		}
		rep.Custody = custody
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &rep, nil
}
