package paylock

import (
	"encoding/json"
	"testing"

	"github.com/iov-one/paylock/errors"
	"github.com/iov-one/paylock/paylocktest/assert"
)

func TestReadOptions(t *testing.T) {
	cases := map[string]struct {
		json    string
		wantErr *errors.Error
		exp     []struct{ Key int }
	}{
		"happy path": {
			json: `{"list": [{"key": 1}, {"key": 2}]}`,
			exp: []struct{ Key int }{
				{Key: 1},
				{Key: 2},
			},
		},
		"missing key": {
			json: `{}`,
		},
		"wrong value": {
			json:    `{"list": [{"key": "dasdasas"}]}`,
			wantErr: errors.ErrInput,
		},
		"wrong body": {
			json:    `{"list": "adasda"}`,
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var o Options
			assert.Nil(t, json.Unmarshal([]byte(tc.json), &o))

			var got []struct{ Key int }
			err := o.ReadOptions("list", &got)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			if tc.wantErr == nil {
				assert.Equal(t, tc.exp, got)
			}
		})
	}
}

type recordingInitializer struct {
	name  string
	calls *[]string
	err   error
}

func (r recordingInitializer) FromGenesis(Options, KVStore) error {
	*r.calls = append(*r.calls, r.name)
	return r.err
}

func TestChainInitializers(t *testing.T) {
	var calls []string
	chain := ChainInitializers{
		recordingInitializer{name: "first", calls: &calls},
		recordingInitializer{name: "second", calls: &calls, err: errors.ErrState},
		recordingInitializer{name: "third", calls: &calls},
	}
	err := chain.FromGenesis(Options{}, nil)
	if !errors.ErrState.Is(err) {
		t.Fatalf("unexpected error: %+v", err)
	}
	assert.Equal(t, []string{"first", "second"}, calls)
}
