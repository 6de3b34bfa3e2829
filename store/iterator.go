package store

import (
	"bytes"

	"github.com/google/btree"
	"github.com/iov-one/paylock/errors"
)

// ascendBtree returns a snapshot of all cached items within [start, end) in
// ascending order. Nil boundaries are open.
func ascendBtree(bt *btree.BTree, start, end []byte) []keyer {
	var res []keyer
	collect := func(item btree.Item) bool {
		res = append(res, item.(keyer))
		return true
	}
	switch {
	case start == nil && end == nil:
		bt.Ascend(collect)
	case start == nil:
		bt.AscendLessThan(bkey{end}, collect)
	case end == nil:
		bt.AscendGreaterOrEqual(bkey{start}, collect)
	default:
		bt.AscendRange(bkey{start}, bkey{end}, collect)
	}
	return res
}

// descendBtree returns a snapshot of all cached items within [start, end) in
// descending order.
func descendBtree(bt *btree.BTree, start, end []byte) []keyer {
	items := ascendBtree(bt, start, end)
	for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
		items[i], items[j] = items[j], items[i]
	}
	return items
}

// source marks where the current item comes from
type source int32

const (
	us source = iota
	parent
	both
	none
)

// cacheIterator joins our results with those of the parent,
// taking into consideration overwrites and deletes...
type cacheIterator struct {
	items   []keyer
	idx     int
	reverse bool

	parent     Iterator
	parentKey  []byte
	parentVal  []byte
	parentDone bool
}

var _ Iterator = (*cacheIterator)(nil)

func newCacheIterator(items []keyer, parent Iterator, reverse bool) (*cacheIterator, error) {
	it := &cacheIterator{
		items:   items,
		reverse: reverse,
		parent:  parent,
	}
	if err := it.advanceParent(); err != nil {
		parent.Release()
		return nil, err
	}
	return it, nil
}

func (i *cacheIterator) advanceParent() error {
	key, value, err := i.parent.Next()
	if errors.ErrIteratorDone.Is(err) {
		i.parentDone = true
		i.parentKey, i.parentVal = nil, nil
		return nil
	}
	if err != nil {
		return err
	}
	i.parentKey, i.parentVal = key, value
	return nil
}

// Next returns the next key/value pair, skipping every entry that was
// deleted in the cache.
func (i *cacheIterator) Next() (key, value []byte, err error) {
	for {
		switch src := i.firstKey(); src {
		case none:
			return nil, nil, errors.ErrIteratorDone
		case parent:
			key, value := i.parentKey, i.parentVal
			if err := i.advanceParent(); err != nil {
				return nil, nil, err
			}
			return key, value, nil
		case us, both:
			item := i.items[i.idx]
			i.idx++
			// our value shadows the parent one
			if src == both {
				if err := i.advanceParent(); err != nil {
					return nil, nil, err
				}
			}
			if set, ok := item.(setItem); ok {
				return set.key, set.value, nil
			}
		}
	}
}

// Release releases the Iterator.
func (i *cacheIterator) Release() {
	i.parent.Release()
	i.items = nil
}

// firstKey selects the iterator with the lowest key (highest when
// iterating in reverse) if any
func (i *cacheIterator) firstKey() source {
	ourValid := i.idx < len(i.items)
	if i.parentDone {
		if !ourValid {
			return none
		}
		return us
	} else if !ourValid {
		return parent
	}

	cmp := bytes.Compare(i.parentKey, i.items[i.idx].Key())
	if i.reverse {
		cmp = -cmp
	}
	switch {
	case cmp < 0:
		return parent
	case cmp > 0:
		return us
	default:
		return both
	}
}
