package paylock

import (
	"testing"

	"github.com/iov-one/paylock/errors"
)

type demoMsg struct {
	Num  int64
	Text string
}

func (demoMsg) Path() string { return "demo/path" }

func (m demoMsg) Validate() error {
	if m.Num < 0 {
		return errors.Wrap(errors.ErrInput, "negative")
	}
	return nil
}

func (m demoMsg) Marshal() ([]byte, error)     { return Marshal(m) }
func (m *demoMsg) Unmarshal(bz []byte) error { return Unmarshal(bz, m) }

type otherMsg struct{ demoMsg }

type demoTx struct {
	msg Msg
	err error
}

func (tx demoTx) GetMsg() (Msg, error) { return tx.msg, tx.err }

func TestLoadMsg(t *testing.T) {
	cases := map[string]struct {
		tx      Tx
		dest    interface{}
		wantErr *errors.Error
		want    demoMsg
	}{
		"pointer message": {
			tx:   demoTx{msg: &demoMsg{Num: 3, Text: "x"}},
			dest: &demoMsg{},
			want: demoMsg{Num: 3, Text: "x"},
		},
		"invalid message": {
			tx:      demoTx{msg: &demoMsg{Num: -1}},
			dest:    &demoMsg{},
			wantErr: errors.ErrInput,
		},
		"no message": {
			tx:      demoTx{},
			dest:    &demoMsg{},
			wantErr: errors.ErrMsg,
		},
		"transaction error": {
			tx:      demoTx{err: errors.ErrHuman},
			dest:    &demoMsg{},
			wantErr: errors.ErrHuman,
		},
		"destination is not a pointer": {
			tx:      demoTx{msg: &demoMsg{}},
			dest:    demoMsg{},
			wantErr: errors.ErrType,
		},
		"destination type mismatch": {
			tx:      demoTx{msg: &otherMsg{}},
			dest:    &demoMsg{},
			wantErr: errors.ErrType,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := LoadMsg(tc.tx, tc.dest)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			if tc.wantErr != nil {
				return
			}
			if got := *tc.dest.(*demoMsg); got != tc.want {
				t.Fatalf("want %+v, got %+v", tc.want, got)
			}
		})
	}
}

func TestCodecRoundtrip(t *testing.T) {
	in := demoMsg{Num: 42, Text: "payload"}
	raw, err := in.Marshal()
	if err != nil {
		t.Fatalf("cannot marshal: %s", err)
	}
	var out demoMsg
	if err := out.Unmarshal(raw); err != nil {
		t.Fatalf("cannot unmarshal: %s", err)
	}
	if out != in {
		t.Fatalf("want %+v, got %+v", in, out)
	}
}

func TestMetadataValidate(t *testing.T) {
	var m *Metadata
	if err := m.Validate(); !errors.ErrMetadata.Is(err) {
		t.Fatalf("nil metadata must be invalid: %v", err)
	}
	if err := (&Metadata{}).Validate(); !errors.ErrMetadata.Is(err) {
		t.Fatalf("zero schema must be invalid: %v", err)
	}
	if err := (&Metadata{Schema: 1}).Validate(); err != nil {
		t.Fatalf("valid metadata rejected: %v", err)
	}
}
