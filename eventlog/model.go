package eventlog

import (
	"github.com/iov-one/paylock"
	"github.com/iov-one/paylock/errors"
)

// Record is a single persisted event.
type Record struct {
	Metadata *paylock.Metadata `json:"metadata"`
	// Height is the ordinal number of the transaction that emitted the
	// event.
	Height int64 `json:"height"`
	// Time is the block time of the emitting transaction.
	Time         paylock.UnixTime  `json:"time"`
	Kind         string            `json:"kind"`
	Payload      []byte            `json:"payload"`
	Participants []paylock.Address `json:"participants"`
}

func (r *Record) Marshal() ([]byte, error) {
	return paylock.Marshal(r)
}

func (r *Record) Unmarshal(raw []byte) error {
	return paylock.Unmarshal(raw, r)
}

func (r *Record) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", r.Metadata.Validate())
	if r.Height < 0 {
		errs = errors.Append(errs, errors.Field("Height", errors.ErrInput, "negative height"))
	}
	errs = errors.AppendField(errs, "Time", r.Time.Validate())
	if r.Kind == "" {
		errs = errors.Append(errs, errors.Field("Kind", errors.ErrEmpty, "kind is required"))
	}
	for i, a := range r.Participants {
		if err := a.Validate(); err != nil {
			errs = errors.Append(errs, errors.Field("Participants", err, "participant %d", i))
		}
	}
	return errs
}

// Entry is a decoded record together with its position in the log.
type Entry struct {
	// ID is the position of the record in the log, starting with 1.
	ID     int64
	Record *Record
	Event  paylock.Event
}
