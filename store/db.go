package store

import (
	"github.com/iov-one/paylock/errors"
	dbm "github.com/tendermint/tendermint/libs/db"
)

// DBStore exposes a tendermint database (memory or goleveldb backed) as a
// CacheableKVStore. It is the committed state of the application: every
// transaction works on a cache wrap that is flushed with a single atomic
// database batch.
type DBStore struct {
	db dbm.DB
}

var _ CacheableKVStore = (*DBStore)(nil)

// NewDBStore wraps given database.
func NewDBStore(db dbm.DB) *DBStore {
	return &DBStore{db: db}
}

// NewMemDBStore returns a store backed by an in-memory database.
func NewMemDBStore() *DBStore {
	return NewDBStore(dbm.NewMemDB())
}

// NewLevelDBStore opens (or creates) a goleveldb database with given name in
// given directory.
func NewLevelDBStore(name, dir string) (*DBStore, error) {
	db, err := dbm.NewGoLevelDB(name, dir)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrDatabase, "open %s in %s: %s", name, dir, err)
	}
	return NewDBStore(db), nil
}

// Get returns nil iff key doesn't exist.
func (s *DBStore) Get(key []byte) ([]byte, error) {
	return s.db.Get(key), nil
}

// Has checks if a key exists.
func (s *DBStore) Has(key []byte) (bool, error) {
	return s.db.Has(key), nil
}

// Set writes synchronously to the database.
func (s *DBStore) Set(key, value []byte) error {
	s.db.Set(key, value)
	return nil
}

// Delete removes the key from the database.
func (s *DBStore) Delete(key []byte) error {
	s.db.Delete(key)
	return nil
}

// Iterator over a domain of keys in ascending order. End is exclusive.
func (s *DBStore) Iterator(start, end []byte) (Iterator, error) {
	return &dbIterator{it: s.db.Iterator(start, end)}, nil
}

// ReverseIterator over a domain of keys in descending order. End is
// exclusive. The range is loaded into memory, the same way as the forward
// iterator defines it.
func (s *DBStore) ReverseIterator(start, end []byte) (Iterator, error) {
	it := s.db.Iterator(start, end)
	defer it.Close()

	var res []Model
	for ; it.Valid(); it.Next() {
		res = append(res, Pair(copyBytes(it.Key()), copyBytes(it.Value())))
	}
	for i, j := 0, len(res)-1; i < j; i, j = i+1, j-1 {
		res[i], res[j] = res[j], res[i]
	}
	return NewSliceIterator(res), nil
}

// NewBatch returns an atomic database batch.
func (s *DBStore) NewBatch() Batch {
	return &dbBatch{batch: s.db.NewBatch()}
}

// CacheWrap returns a savepoint on top of the database. Writing it applies
// all changes in one atomic batch.
func (s *DBStore) CacheWrap() KVCacheWrap {
	return NewBTreeCacheWrap(s, s.NewBatch(), nil)
}

// Close releases the database.
func (s *DBStore) Close() {
	s.db.Close()
}

type dbIterator struct {
	it dbm.Iterator
}

func (i *dbIterator) Next() (key, value []byte, err error) {
	if !i.it.Valid() {
		return nil, nil, errors.ErrIteratorDone
	}
	key, value = copyBytes(i.it.Key()), copyBytes(i.it.Value())
	i.it.Next()
	return key, value, nil
}

func (i *dbIterator) Release() {
	i.it.Close()
}

type dbBatch struct {
	batch dbm.Batch
	ops   []Op
}

func (b *dbBatch) Set(key, value []byte) error {
	b.batch.Set(key, value)
	b.ops = append(b.ops, SetOp(key, value))
	return nil
}

func (b *dbBatch) Delete(key []byte) error {
	b.batch.Delete(key)
	b.ops = append(b.ops, DelOp(key))
	return nil
}

// Write flushes the batch with fsync so that a committed transaction
// survives a crash.
func (b *dbBatch) Write() error {
	b.batch.WriteSync()
	b.ops = nil
	return nil
}

func (b *dbBatch) ShowOps() []Op {
	return b.ops
}

func copyBytes(bz []byte) []byte {
	if bz == nil {
		return nil
	}
	return append([]byte(nil), bz...)
}
