package eventlog

import (
	"encoding/json"
	"io"
	"sync"

	"github.com/iov-one/paylock"
	"github.com/iov-one/paylock/errors"
)

// Sink receives entries of committed transactions, in log order.
type Sink interface {
	Publish(Entry) error
}

// MemorySink collects all published entries in memory.
type MemorySink struct {
	mu      sync.Mutex
	entries []Entry
}

var _ Sink = (*MemorySink)(nil)

func (s *MemorySink) Publish(e Entry) error {
	s.mu.Lock()
	s.entries = append(s.entries, e)
	s.mu.Unlock()
	return nil
}

// Entries returns a copy of all entries published so far.
func (s *MemorySink) Entries() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	cpy := make([]Entry, len(s.entries))
	copy(cpy, s.entries)
	return cpy
}

// WriterSink writes each entry as a single line of JSON.
type WriterSink struct {
	mu  sync.Mutex
	enc *json.Encoder
}

var _ Sink = (*WriterSink)(nil)

// NewWriterSink returns a sink writing JSON lines to w.
func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{enc: json.NewEncoder(w)}
}

type jsonEntry struct {
	ID     int64            `json:"id"`
	Height int64            `json:"height"`
	Time   paylock.UnixTime `json:"time"`
	Kind   string           `json:"kind"`
	Event  paylock.Event    `json:"event"`
}

func (s *WriterSink) Publish(e Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := s.enc.Encode(jsonEntry{
		ID:     e.ID,
		Height: e.Record.Height,
		Time:   e.Record.Time,
		Kind:   e.Record.Kind,
		Event:  e.Event,
	})
	if err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	return nil
}
