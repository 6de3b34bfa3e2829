package orm

import (
	"github.com/iov-one/paylock"
)

// Object is what is stored in the bucket
// Key is joined with the prefix to set the full key
// Value is the data stored
type Object interface {
	Keyed
	Cloneable
	// Validate returns error if the object is not in a valid
	// state to save to the db (eg. field missing, out of range, ...)
	paylock.Validater
	Value() Model
}

// Keyed is anything that can identify itself
type Keyed interface {
	Key() []byte
	SetKey([]byte)
}

// Cloneable will create a new object that can be loaded into
type Cloneable interface {
	Clone() Object
}

// Model is implemented by any entity that can be stored in a bucket.
type Model interface {
	paylock.Persistent
	paylock.Validater
}

// Indexer calculates the secondary index key for a given object
type Indexer func(Object) ([]byte, error)

// MultiKeyIndexer calculates all secondary index keys for a given object.
// An object is referenced under each of the returned keys.
type MultiKeyIndexer func(Object) ([][]byte, error)
