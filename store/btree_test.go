package store

import (
	"testing"

	"github.com/iov-one/paylock/errors"
	"github.com/iov-one/paylock/paylocktest/assert"
)

func makeBTreeBase() (CacheableKVStore, func()) {
	return MemStore(), func() {}
}

func TestBTreeCache(t *testing.T) {
	suite := NewTestSuite(makeBTreeBase)
	t.Run("GetSet", suite.GetSet)
	t.Run("CacheConflicts", suite.CacheConflicts)
	t.Run("FuzzIterator", suite.FuzzIterator)
	t.Run("IteratorWithConflicts", suite.IteratorWithConflicts)
}

func TestLogableStore(t *testing.T) {
	kv, ops := LogableStore()
	assert.Nil(t, kv.Set([]byte("a"), []byte("1")))
	assert.Nil(t, kv.Delete([]byte("b")))

	got := ops.ShowOps()
	if len(got) != 2 {
		t.Fatalf("want 2 operations, got %d", len(got))
	}
	if !got[0].IsSetOp() || string(got[0].Key()) != "a" || string(got[0].Value()) != "1" {
		t.Fatalf("unexpected first operation: %+v", got[0])
	}
	if got[1].IsSetOp() || string(got[1].Key()) != "b" {
		t.Fatalf("unexpected second operation: %+v", got[1])
	}
}

func TestCacheIteratorRelease(t *testing.T) {
	db := MemStore()
	assert.Nil(t, db.Set([]byte("a"), []byte("A")))
	cache := db.CacheWrap()

	it, err := cache.Iterator([]byte("a"), []byte("z"))
	if err != nil {
		t.Fatalf("cannot create iterator: %s", err)
	}
	it.Release()
	assert.Nil(t, db.Delete([]byte("a")))

	rit, err := cache.ReverseIterator([]byte("a"), []byte("z"))
	if err != nil {
		t.Fatalf("cannot create iterator: %s", err)
	}
	rit.Release()
}

func TestSliceIterator(t *testing.T) {
	const size = 10

	ks := randKeys(size, 8)
	vs := randKeys(size, 40)

	models := make([]Model, size)
	for i := 0; i < size; i++ {
		models[i] = Pair(ks[i], vs[i])
	}

	it := NewSliceIterator(models)
	for i := 0; i < size; i++ {
		key, value, err := it.Next()
		assert.Nil(t, err)
		assert.Equal(t, ks[i], key)
		assert.Equal(t, vs[i], value)
	}
	if _, _, err := it.Next(); !errors.ErrIteratorDone.Is(err) {
		t.Fatalf("want ErrIteratorDone, got %v", err)
	}
}
