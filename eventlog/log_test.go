package eventlog

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/iov-one/paylock"
	"github.com/iov-one/paylock/errors"
	"github.com/iov-one/paylock/paylocktest"
	"github.com/iov-one/paylock/paylocktest/assert"
	"github.com/iov-one/paylock/store"
)

type pinged struct {
	From paylock.Address `json:"from"`
	To   paylock.Address `json:"to"`
	N    int64           `json:"n"`
}

func (*pinged) EventKind() string { return "Pinged" }

func (p *pinged) Participants() []paylock.Address {
	return []paylock.Address{p.From, p.To}
}

func (p *pinged) Marshal() ([]byte, error) {
	return paylock.Marshal(p)
}

func (p *pinged) Unmarshal(raw []byte) error {
	return paylock.Unmarshal(raw, p)
}

func init() {
	MustRegister(&pinged{})
}

func blockCtx(height int64, now time.Time) paylock.Context {
	ctx := paylock.WithBlockTime(context.Background(), now)
	return paylock.WithHeight(ctx, height)
}

func TestRegisterTwice(t *testing.T) {
	assert.Panics(t, func() { MustRegister(&pinged{}) })
}

func TestLogAppendAndRead(t *testing.T) {
	alice := paylocktest.NewCondition().Address()
	bob := paylocktest.NewCondition().Address()
	carol := paylocktest.NewCondition().Address()

	db := store.MemStore()
	l := NewLog()
	now := time.Unix(1500000000, 0)

	latest, err := l.Latest(db)
	assert.Nil(t, err)
	assert.Equal(t, int64(0), latest)

	ids, err := l.Append(blockCtx(1, now), db,
		&pinged{From: alice, To: bob, N: 1},
		&pinged{From: bob, To: carol, N: 2},
	)
	assert.Nil(t, err)
	assert.Equal(t, []int64{1, 2}, ids)

	ids, err = l.Append(blockCtx(2, now.Add(time.Hour)), db, &pinged{From: alice, To: alice, N: 3})
	assert.Nil(t, err)
	assert.Equal(t, []int64{3}, ids)

	latest, err = l.Latest(db)
	assert.Nil(t, err)
	assert.Equal(t, int64(3), latest)

	all, err := l.Since(db, 0, 0)
	assert.Nil(t, err)
	if len(all) != 3 {
		t.Fatalf("want 3 entries, got %d", len(all))
	}
	for i, e := range all {
		assert.Equal(t, int64(i+1), e.ID)
		assert.Equal(t, "Pinged", e.Record.Kind)
		if got := e.Event.(*pinged).N; got != int64(i+1) {
			t.Fatalf("entry %d: unexpected event number %d", i, got)
		}
	}
	assert.Equal(t, int64(2), all[2].Record.Height)
	assert.Equal(t, paylock.AsUnixTime(now.Add(time.Hour)), all[2].Record.Time)

	tail, err := l.Since(db, 1, 1)
	assert.Nil(t, err)
	if len(tail) != 1 || tail[0].ID != 2 {
		t.Fatalf("unexpected tail: %+v", tail)
	}

	empty, err := l.Since(db, 3, 0)
	assert.Nil(t, err)
	assert.Equal(t, 0, len(empty))

	cases := map[string]struct {
		addr    paylock.Address
		wantIDs []int64
	}{
		"sender and self receiver": {addr: alice, wantIDs: []int64{1, 3}},
		"sender and receiver":      {addr: bob, wantIDs: []int64{1, 2}},
		"receiver only":            {addr: carol, wantIDs: []int64{2}},
		"stranger":                 {addr: paylocktest.NewCondition().Address(), wantIDs: []int64{}},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			entries, err := l.ForAddress(db, tc.addr)
			assert.Nil(t, err)
			got := make([]int64, 0, len(entries))
			for _, e := range entries {
				got = append(got, e.ID)
			}
			assert.Equal(t, tc.wantIDs, got)
		})
	}

	if _, err := l.ForAddress(db, nil); !errors.ErrInput.Is(err) {
		t.Fatalf("want invalid address error, got %v", err)
	}
}

func TestLogAppendRequiresBlockTime(t *testing.T) {
	db := store.MemStore()
	_, err := NewLog().Append(context.Background(), db, &pinged{N: 1})
	if err == nil {
		t.Fatal("want error when block time is missing")
	}
}

func TestDecodeUnknownKind(t *testing.T) {
	_, err := Decode(&Record{Kind: "Unknown"})
	if !errors.ErrType.Is(err) {
		t.Fatalf("want type error, got %v", err)
	}
}

func TestDecorator(t *testing.T) {
	alice := paylocktest.NewCondition().Address()
	now := time.Unix(1500000000, 0)

	cases := map[string]struct {
		handler    paylocktest.Handler
		wantErr    *errors.Error
		wantLogged int64
	}{
		"events of a successful deliver are recorded": {
			handler: paylocktest.Handler{
				DeliverResult: paylock.DeliverResult{
					Events: []paylock.Event{
						&pinged{From: alice, To: alice, N: 1},
						&pinged{From: alice, To: alice, N: 2},
					},
				},
			},
			wantLogged: 2,
		},
		"nothing is recorded on failure": {
			handler: paylocktest.Handler{
				DeliverResult: paylock.DeliverResult{
					Events: []paylock.Event{&pinged{From: alice, To: alice, N: 1}},
				},
				DeliverErr: errors.ErrState,
			},
			wantErr:    errors.ErrState,
			wantLogged: 0,
		},
		"no events": {
			handler:    paylocktest.Handler{},
			wantLogged: 0,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			l := NewLog()
			h := paylocktest.Decorate(&tc.handler, NewDecorator(l))

			_, err := h.Deliver(blockCtx(1, now), db, &paylocktest.Tx{})
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			latest, err := l.Latest(db)
			assert.Nil(t, err)
			assert.Equal(t, tc.wantLogged, latest)

			_, err = h.Check(blockCtx(1, now), db, &paylocktest.Tx{})
			assert.Nil(t, err)
			assert.Equal(t, 1, tc.handler.CheckCallCount())
		})
	}
}

func TestSinks(t *testing.T) {
	alice := paylocktest.NewCondition().Address()
	entry := Entry{
		ID: 7,
		Record: &Record{
			Metadata: &paylock.Metadata{Schema: 1},
			Height:   3,
			Time:     1500000000,
			Kind:     "Pinged",
		},
		Event: &pinged{From: alice, To: alice, N: 4},
	}

	var mem MemorySink
	assert.Nil(t, mem.Publish(entry))
	assert.Equal(t, 1, len(mem.Entries()))
	assert.Equal(t, int64(7), mem.Entries()[0].ID)

	var buf bytes.Buffer
	w := NewWriterSink(&buf)
	assert.Nil(t, w.Publish(entry))
	assert.Nil(t, w.Publish(entry))

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	assert.Equal(t, 2, len(lines))

	var got struct {
		ID    int64  `json:"id"`
		Kind  string `json:"kind"`
		Event struct {
			N int64 `json:"n"`
		} `json:"event"`
	}
	assert.Nil(t, json.Unmarshal(lines[0], &got))
	assert.Equal(t, int64(7), got.ID)
	assert.Equal(t, "Pinged", got.Kind)
	assert.Equal(t, int64(4), got.Event.N)
}
