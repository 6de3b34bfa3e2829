package orm

import (
	"bytes"

	"github.com/iov-one/paylock"
	"github.com/iov-one/paylock/errors"
)

const indexPrefix = "_i."

// Index represents a secondary index on some data.
// It is indexed by an arbitrary key returned by Indexer.
// The value is one primary key (unique),
// Or a sorted list of primary keys (!unique).
type Index struct {
	name   string
	id     []byte
	unique bool
	index  MultiKeyIndexer
}

// NewIndex constructs an index
// Indexer calculates the index for an object
// unique enforces a unique constraint on the index
func NewIndex(name string, indexer Indexer, unique bool) Index {
	return NewMultiKeyIndex(name, asMultiKeyIndexer(indexer), unique)
}

// NewMultiKeyIndex constructs an index that references an object under
// every key returned by the indexer.
func NewMultiKeyIndex(name string, indexer MultiKeyIndexer, unique bool) Index {
	return Index{
		name:   name,
		id:     append([]byte(indexPrefix), []byte(name+":")...),
		index:  indexer,
		unique: unique,
	}
}

func asMultiKeyIndexer(indexer Indexer) MultiKeyIndexer {
	return func(obj Object) ([][]byte, error) {
		key, err := indexer(obj)
		if err != nil || key == nil {
			return nil, err
		}
		return [][]byte{key}, nil
	}
}

// Name returns the name of this index.
func (i Index) Name() string {
	return i.name
}

// IndexKey is the full key we store in the db, including prefix
// We copy into a new array rather than use append, as we don't
// want consecutive calls to overwrite the same byte array.
func (i Index) IndexKey(key []byte) []byte {
	l := len(i.id)
	out := make([]byte, l+len(key))
	copy(out, i.id)
	copy(out[l:], key)
	return out
}

// Update handles updating the reference to the object in
// the secondary index.
//
// prev == nil means insert
// save == nil means delete
// both == nil is error
// if both != nil and prev.Key() != save.Key() this is an error
//
// Otherwise, it will check indexer(prev) and indexer(save)
// and make sure the key is now stored in the right location
func (i Index) Update(db paylock.KVStore, prev Object, save Object) error {
	switch {
	case prev == nil && save == nil:
		return errors.Wrap(errors.ErrHuman, "update requires at least one non-nil object")
	case prev == nil:
		keys, err := i.index(save)
		if err != nil {
			return err
		}
		for _, key := range keys {
			if err := i.insert(db, key, save.Key()); err != nil {
				return err
			}
		}
		return nil
	case save == nil:
		keys, err := i.index(prev)
		if err != nil {
			return err
		}
		for _, key := range keys {
			if err := i.remove(db, key, prev.Key()); err != nil {
				return err
			}
		}
		return nil
	default:
		return i.move(db, prev, save)
	}
}

// GetAt returns a list of all pk at that index (may be empty), or error.
// Primary keys are returned in ascending order.
func (i Index) GetAt(db paylock.ReadOnlyKVStore, index []byte) ([][]byte, error) {
	val, err := db.Get(i.IndexKey(index))
	if err != nil {
		return nil, err
	}
	if val == nil {
		return nil, nil
	}
	if i.unique {
		return [][]byte{val}, nil
	}
	var data MultiRef
	if err := data.Unmarshal(val); err != nil {
		return nil, err
	}
	return data.Refs, nil
}

func (i Index) move(db paylock.KVStore, prev Object, save Object) error {
	if !bytes.Equal(prev.Key(), save.Key()) {
		return errors.Wrap(errors.ErrImmutable, "cannot modify the primary key of an object")
	}
	oldKeys, err := i.index(prev)
	if err != nil {
		return err
	}
	newKeys, err := i.index(save)
	if err != nil {
		return err
	}
	for _, k := range oldKeys {
		if containsKey(newKeys, k) {
			continue
		}
		if err := i.remove(db, k, prev.Key()); err != nil {
			return err
		}
	}
	for _, k := range newKeys {
		if containsKey(oldKeys, k) {
			continue
		}
		if err := i.insert(db, k, save.Key()); err != nil {
			return err
		}
	}
	return nil
}

func containsKey(keys [][]byte, key []byte) bool {
	for _, k := range keys {
		if bytes.Equal(k, key) {
			return true
		}
	}
	return false
}

func (i Index) remove(db paylock.KVStore, index []byte, pk []byte) error {
	key := i.IndexKey(index)
	cur, err := db.Get(key)
	if err != nil {
		return err
	}
	if cur == nil {
		return errors.Wrapf(errors.ErrDatabase, "index %s: cannot remove missing %X", i.name, pk)
	}

	if i.unique {
		if !bytes.Equal(cur, pk) {
			return errors.Wrapf(errors.ErrDatabase, "index %s: cannot remove missing %X", i.name, pk)
		}
		return db.Delete(key)
	}

	var data MultiRef
	if err := data.Unmarshal(cur); err != nil {
		return err
	}
	if err := data.Remove(pk); err != nil {
		return err
	}
	if len(data.Refs) == 0 {
		return db.Delete(key)
	}
	val, err := data.Marshal()
	if err != nil {
		return err
	}
	return db.Set(key, val)
}

func (i Index) insert(db paylock.KVStore, index []byte, pk []byte) error {
	key := i.IndexKey(index)
	cur, err := db.Get(key)
	if err != nil {
		return err
	}

	if i.unique {
		if cur != nil {
			return errors.Wrapf(errors.ErrDuplicate, "index %s: %X", i.name, index)
		}
		return db.Set(key, pk)
	}

	var data MultiRef
	if cur != nil {
		if err := data.Unmarshal(cur); err != nil {
			return err
		}
	}
	if err := data.Add(pk); err != nil {
		return err
	}
	val, err := data.Marshal()
	if err != nil {
		return err
	}
	return db.Set(key, val)
}
