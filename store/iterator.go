package store

import (
	"bytes"

	"github.com/safeharbor/harbor/errors"
)

// source marks where the current item comes from.
type source int32

const (
	us source = iota
	parent
	both
	none
)

// cacheIterator joins the cached items with the parent iterator, taking
// into consideration overwrites and deletes.
type cacheIterator struct {
	items     []keyer
	parent    Iterator
	ascending bool
}

var _ Iterator = (*cacheIterator)(nil)

func newCacheIterator(items []keyer, parent Iterator, ascending bool) *cacheIterator {
	iter := &cacheIterator{
		items:     items,
		parent:    parent,
		ascending: ascending,
	}
	// Skipping deleted items may only fail when the parent fails to
	// advance, which leaves the iterator invalid.
	_ = iter.skipAllDeleted()
	return iter
}

// Valid implements Iterator and returns true iff it can be read.
func (i *cacheIterator) Valid() bool {
	return len(i.items) > 0 || i.parentValid()
}

// Next moves the iterator to the next sequential key in the database, as
// defined by order of iteration.
func (i *cacheIterator) Next() error {
	switch i.firstKey() {
	case us:
		i.items = i.items[1:]
	case both:
		i.items = i.items[1:]
		if err := i.parent.Next(); err != nil {
			return err
		}
	case parent:
		if err := i.parent.Next(); err != nil {
			return err
		}
	default:
		return errors.Wrap(errors.ErrHuman, "iterator advanced past the end")
	}
	return i.skipAllDeleted()
}

// Key returns the key of the cursor.
func (i *cacheIterator) Key() []byte {
	switch i.firstKey() {
	case us, both:
		return i.items[0].Key()
	case parent:
		return i.parent.Key()
	default:
		panic("read after end of iterator")
	}
}

// Value returns the value of the cursor.
func (i *cacheIterator) Value() []byte {
	switch i.firstKey() {
	case us, both:
		return i.items[0].(setItem).value
	case parent:
		return i.parent.Value()
	default:
		panic("read after end of iterator")
	}
}

// Close releases the Iterator.
func (i *cacheIterator) Close() {
	i.parent.Close()
	i.items = nil
}

// skipAllDeleted skips any number of deleted items.
func (i *cacheIterator) skipAllDeleted() error {
	for {
		src := i.firstKey()
		if src != us && src != both {
			return nil
		}
		if _, ok := i.items[0].(deletedItem); !ok {
			return nil
		}
		i.items = i.items[1:]
		// if parent had the same key, advance parent as well
		if src == both {
			if err := i.parent.Next(); err != nil {
				return err
			}
		}
	}
}

// firstKey selects the source with the next key in iteration order.
func (i *cacheIterator) firstKey() source {
	if !i.parentValid() {
		if len(i.items) == 0 {
			return none
		}
		return us
	}
	if len(i.items) == 0 {
		return parent
	}

	cmp := bytes.Compare(i.parent.Key(), i.items[0].Key())
	if !i.ascending {
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

func (i *cacheIterator) parentValid() bool {
	return i.parent != nil && i.parent.Valid()
}
