//nolint
package store

import "github.com/iov-one/paylock"

// Move references for all storage types into this package
// for shorter names everywhere

type ReadOnlyKVStore = paylock.ReadOnlyKVStore
type SetDeleter = paylock.SetDeleter
type KVStore = paylock.KVStore
type Batch = paylock.Batch
type Op = paylock.Op
type Iterator = paylock.Iterator
type CacheableKVStore = paylock.CacheableKVStore
type KVCacheWrap = paylock.KVCacheWrap

// SetOp is a helper to create a set operation
func SetOp(key, value []byte) Op {
	return paylock.SetOpFor(key, value)
}

// DelOp is a helper to create a del operation
func DelOp(key []byte) Op {
	return paylock.DelOpFor(key)
}
