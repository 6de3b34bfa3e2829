package eventlog

import (
	"bytes"

	"github.com/iov-one/paylock"
	"github.com/iov-one/paylock/errors"
	"github.com/iov-one/paylock/orm"
)

const (
	bucketName       = "events"
	participantIndex = "participant"
)

// Log is an append-only event history kept in the store.
type Log struct {
	bucket orm.ModelBucket
}

// NewLog returns a log stored in the "events" bucket.
func NewLog() *Log {
	return &Log{
		bucket: orm.NewModelBucket(bucketName, &Record{},
			orm.WithMultiKeyIndex(participantIndex, participantIndexer, false)),
	}
}

func participantIndexer(obj orm.Object) ([][]byte, error) {
	r, ok := obj.Value().(*Record)
	if !ok {
		return nil, errors.Wrapf(errors.ErrType, "%T", obj.Value())
	}
	keys := make([][]byte, 0, len(r.Participants))
	for _, p := range r.Participants {
		if !containsAddr(keys, p) {
			keys = append(keys, p)
		}
	}
	return keys, nil
}

func containsAddr(keys [][]byte, a paylock.Address) bool {
	for _, k := range keys {
		if bytes.Equal(k, a) {
			return true
		}
	}
	return false
}

// Append stores all events in the order given. Height and time are taken
// from the context.
func (l *Log) Append(ctx paylock.Context, db paylock.KVStore, events ...paylock.Event) ([]int64, error) {
	if len(events) == 0 {
		return nil, nil
	}
	now, err := paylock.BlockTime(ctx)
	if err != nil {
		return nil, err
	}
	height, _ := paylock.GetHeight(ctx)

	ids := make([]int64, 0, len(events))
	for _, e := range events {
		payload, err := e.Marshal()
		if err != nil {
			return nil, errors.Wrapf(err, "marshal %s", e.EventKind())
		}
		r := Record{
			Metadata: &paylock.Metadata{Schema: 1},
			Height:   height,
			Time:     paylock.AsUnixTime(now),
			Kind:     e.EventKind(),
			Payload:  payload,
		}
		if p, ok := e.(paylock.Participant); ok {
			for _, a := range p.Participants() {
				if len(a) != 0 {
					r.Participants = append(r.Participants, a)
				}
			}
		}
		key, err := l.bucket.Put(db, nil, &r)
		if err != nil {
			return nil, errors.Wrapf(err, "append %s", e.EventKind())
		}
		id, err := orm.DecodeSequence(key)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// Since returns up to limit entries with an id greater than given one, in
// log order. A limit of zero or less means no limit.
func (l *Log) Since(db paylock.ReadOnlyKVStore, id int64, limit int) ([]Entry, error) {
	prefix := []byte(bucketName + ":")
	start := append(append([]byte{}, prefix...), orm.EncodeSequence(id+1)...)
	end := append(append([]byte{}, prefix[:len(prefix)-1]...), ':'+1)

	it, err := db.Iterator(start, end)
	if err != nil {
		return nil, err
	}
	defer it.Release()

	var entries []Entry
	for limit <= 0 || len(entries) < limit {
		key, value, err := it.Next()
		if errors.ErrIteratorDone.Is(err) {
			break
		}
		if err != nil {
			return nil, err
		}
		entry, err := decodeEntry(key[len(prefix):], value)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// ForAddress returns all entries that concern given address, in log order.
func (l *Log) ForAddress(db paylock.ReadOnlyKVStore, addr paylock.Address) ([]Entry, error) {
	if err := addr.Validate(); err != nil {
		return nil, err
	}
	var records []*Record
	keys, err := l.bucket.ByIndex(db, participantIndex, addr, &records)
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(records))
	for i, r := range records {
		entry, err := newEntry(keys[i], r)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// Latest returns the id of the last appended entry, or zero for an empty
// log.
func (l *Log) Latest(db paylock.ReadOnlyKVStore) (int64, error) {
	seq := orm.NewSequence(bucketName, orm.SeqID)
	return seq.Latest(db)
}

func decodeEntry(key, value []byte) (Entry, error) {
	var r Record
	if err := r.Unmarshal(value); err != nil {
		return Entry{}, err
	}
	return newEntry(key, &r)
}

func newEntry(key []byte, r *Record) (Entry, error) {
	id, err := orm.DecodeSequence(key)
	if err != nil {
		return Entry{}, err
	}
	e, err := Decode(r)
	if err != nil {
		return Entry{}, err
	}
	return Entry{ID: id, Record: r, Event: e}, nil
}
