package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	"github.com/iov-one/paylock"
	"github.com/iov-one/paylock/app"
	"github.com/iov-one/paylock/coin"
	"github.com/iov-one/paylock/crypto"
	"github.com/iov-one/paylock/errors"
	"github.com/iov-one/paylock/x/cash"
	"github.com/iov-one/paylock/x/timelock"
)

const genesisFile = "genesis.json"

// accountKey returns the key of a named account. Keys are derived from the
// name, which is fine for local scenarios but must never hold real value.
func accountKey(name string) *crypto.PrivateKey {
	return crypto.PrivKeyFromName(name)
}

func accountAddress(name string) paylock.Address {
	return accountKey(name).PublicKey().Address()
}

// InitCmd writes a genesis file funding the named accounts given as
// name=amount arguments, for example "alice=10000ETH".
func InitCmd(home string, args []string, out io.Writer) error {
	fl := flag.NewFlagSet("init", flag.ContinueOnError)
	var (
		chainID = fl.String("chain_id", "paylock-local", "chain id stored in the genesis")
		owner   = fl.String("owner", "", "name of the account that owns the ledger")
		paused  = fl.Bool("paused", false, "start with the pause switch engaged")
		notice  = fl.Duration("notice", timelock.DefaultConfiguration().Notice(), "cancellation notice period")
		ticker  = fl.String("ticker", "", "only currency accepted in escrow, any if empty")
		genPath = fl.String("genesis", filepath.Join(home, genesisFile), "genesis file to write")
	)
	if err := fl.Parse(args); err != nil {
		return err
	}

	var wallets []cash.GenesisAccount
	for _, arg := range fl.Args() {
		chunks := strings.SplitN(arg, "=", 2)
		if len(chunks) != 2 || chunks[0] == "" {
			return errors.Wrapf(errors.ErrInput, "invalid account %q, want name=amount", arg)
		}
		amount, err := coin.ParseHumanFormat(chunks[1])
		if err != nil {
			return errors.Wrapf(err, "account %s", chunks[0])
		}
		wallets = append(wallets, cash.GenesisAccount{
			Address: accountAddress(chunks[0]),
			Coins:   []coin.Coin{amount},
		})
	}

	conf := timelock.DefaultConfiguration()
	conf.CancelNotice = int64(notice.Seconds())
	conf.Ticker = *ticker
	if err := conf.Validate(); err != nil {
		return errors.Wrap(err, "configuration")
	}

	state := make(map[string]interface{})
	state["cash"] = wallets
	state["pause"] = *paused
	state["conf"] = map[string]interface{}{"timelock": conf}
	if *owner != "" {
		state["owner"] = accountAddress(*owner)
	}
	rawState, err := json.Marshal(state)
	if err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}

	gen := app.Genesis{ChainID: *chainID}
	if err := json.Unmarshal(rawState, &gen.AppState); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	if err := gen.Validate(); err != nil {
		return err
	}

	raw, err := json.MarshalIndent(gen, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	if err := os.MkdirAll(filepath.Dir(*genPath), 0755); err != nil {
		return errors.Wrapf(errors.ErrInput, "create directory: %s", err)
	}
	if err := ioutil.WriteFile(*genPath, raw, 0644); err != nil {
		return errors.Wrapf(errors.ErrInput, "write genesis: %s", err)
	}
	fmt.Fprintf(out, "genesis written to %s\n", *genPath)
	return nil
}
