package utils

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/tendermint/tendermint/libs/log"

	"github.com/iov-one/paylock"
	"github.com/iov-one/paylock/errors"
	"github.com/iov-one/paylock/paylocktest"
	"github.com/iov-one/paylock/store"
)

func TestLogging(t *testing.T) {
	var buf bytes.Buffer
	ctx := paylock.WithLogger(context.Background(), log.NewTMLogger(&buf))
	tx := &paylocktest.Tx{Msg: &paylocktest.Msg{RoutePath: "test/log"}}
	db := store.MemStore()

	ok := paylocktest.Decorate(&paylocktest.Handler{
		DeliverResult: paylock.DeliverResult{Log: "all good"},
	}, NewLogging())
	if _, err := ok.Deliver(ctx, db, tx); err != nil {
		t.Fatalf("cannot deliver: %s", err)
	}
	out := buf.String()
	if !strings.Contains(out, "all good") || !strings.Contains(out, "path=test/log") {
		t.Fatalf("unexpected log output: %s", out)
	}

	buf.Reset()
	failing := paylocktest.Decorate(&paylocktest.Handler{
		DeliverErr: errors.Wrap(errors.ErrState, "broken"),
	}, NewLogging())
	if _, err := failing.Deliver(ctx, db, tx); !errors.ErrState.Is(err) {
		t.Fatalf("unexpected error: %+v", err)
	}
	if out := buf.String(); !strings.Contains(out, "broken") {
		t.Fatalf("error not logged: %s", out)
	}
}
