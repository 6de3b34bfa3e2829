package errors

import (
	"reflect"
	"testing"
)

func TestFieldErrors(t *testing.T) {
	// Shared instances, so that results can be compared with DeepEqual.
	var (
		missingUnlockErr = Field("UnlockTime", ErrInput, "unlock time is required")
		zeroAmountErr    = Field("Amount", ErrInput, "non-positive amount 0 ETH")
		tickerAmountErr  = Field("Amount", ErrCurrency, "only ETH can be committed")
		selfPaymentErr   = Field("Receiver", ErrInput, "payer cannot be the receiver")
		termsErr         = Field("Terms", Append(
			zeroAmountErr,
			Append(selfPaymentErr, ErrState),
		), "invalid terms")

		outerReceiverErr = Field("Receiver", selfPaymentErr, "outer")
	)

	cases := map[string]struct {
		err   error
		field string
		want  []error
	}{
		"single field error": {
			err:   missingUnlockErr,
			field: "UnlockTime",
			want:  []error{missingUnlockErr},
		},
		"two errors for the same field": {
			err:   Append(zeroAmountErr, missingUnlockErr, tickerAmountErr),
			field: "Amount",
			want:  []error{zeroAmountErr, tickerAmountErr},
		},
		"field holding a group of errors": {
			err:   termsErr,
			field: "Terms",
			want:  []error{termsErr},
		},
		"field found inside a group": {
			err:   termsErr,
			field: "Receiver",
			want:  []error{selfPaymentErr},
		},
		"nil error": {
			err:   nil,
			field: "Amount",
			want:  nil,
		},
		"error without a field": {
			err:   ErrUnauthorized,
			field: "Amount",
			want:  nil,
		},
		"other field only": {
			err:   missingUnlockErr,
			field: "Amount",
			want:  nil,
		},
		"wrapped field error": {
			err:   Wrap(Wrap(zeroAmountErr, "inner"), "outer"),
			field: "Amount",
			want:  []error{zeroAmountErr},
		},
		"wrapped group": {
			err:   Wrapf(termsErr, "commit %d", 3),
			field: "Amount",
			want:  []error{zeroAmountErr},
		},
		"wrapped group without a match": {
			err:   Wrap(termsErr, "outer"),
			field: "Payer",
			want:  nil,
		},
		"inner field under other fields": {
			err:   Field("Msg", Field("Terms", missingUnlockErr, ""), ""),
			field: "UnlockTime",
			want:  []error{missingUnlockErr},
		},
		"same field twice returns the outer one": {
			err:   outerReceiverErr,
			field: "Receiver",
			want:  []error{outerReceiverErr},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got := FieldErrors(tc.err, tc.field)
			if !reflect.DeepEqual(tc.want, got) {
				t.Logf("want: %#v", tc.want)
				t.Logf(" got: %#v", got)
				t.Fatal("unexpected result")
			}
		})
	}
}

func TestFieldKeepsKind(t *testing.T) {
	if err := Field("Amount", nil, "ignored"); err != nil {
		t.Fatalf("nil error must give nil, got %v", err)
	}
	if err := AppendField(nil, "Amount", nil); err != nil {
		t.Fatalf("nil errors must give nil, got %v", err)
	}

	err := Field("CancelNotice", ErrInput, "must not be %s", "negative")
	if !ErrInput.Is(err) {
		t.Fatalf("want an input error, got %v", err)
	}
	if got, want := err.Error(), "CancelNotice: must not be negative: invalid input"; got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
}
