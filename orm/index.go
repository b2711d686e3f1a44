package orm

import (
	"bytes"

	"github.com/gogo/protobuf/proto"
	"github.com/safeharbor/harbor"
	"github.com/safeharbor/harbor/errors"
)

// ErrInvalidIndex is returned when an index specified is invalid.
var ErrInvalidIndex = errors.Register(100, "invalid index")

const compactIdxPrefix = "_i."

// Indexer calculates the secondary index key for a given model. A nil key
// means the model is not indexed.
type Indexer func(Model) ([]byte, error)

// Index is a secondary index of a bucket.
type Index interface {
	harbor.QueryHandler

	// Name returns the name of this index.
	Name() string

	// Update updates the index for the entity stored under key.
	//
	// prev == nil means insert
	// save == nil means delete
	// both == nil is error
	Update(db harbor.KVStore, key []byte, prev, save Model) error

	// Keys returns all primary keys indexed under the given value.
	Keys(db harbor.ReadOnlyKVStore, value []byte) ([][]byte, error)
}

// compactIndex stores all indexed primary keys as a set, serialized and
// stored under a single key. It is meant for small sized collections.
//
// The value is one primary key (unique), or a MultiRef of primary keys
// (!unique).
type compactIndex struct {
	name   string
	id     []byte
	unique bool
	index  Indexer
	refKey func([]byte) []byte
}

var _ Index = compactIndex{}

// NewIndex constructs an index.
// Indexer calculates the index for a model.
// unique enforces a unique constraint on the index.
// refKey calculates the absolute dbkey for a ref.
func NewIndex(name string, indexer Indexer, unique bool, refKey func([]byte) []byte) Index {
	return compactIndex{
		name:   name,
		id:     append([]byte(compactIdxPrefix), []byte(name+":")...),
		index:  indexer,
		unique: unique,
		refKey: refKey,
	}
}

func (i compactIndex) Name() string {
	return i.name
}

func (i compactIndex) indexKey(key []byte) []byte {
	l := len(i.id)
	out := make([]byte, l+len(key))
	copy(out, i.id)
	copy(out[l:], key)
	return out
}

// Update handles updating the reference to the entity in the secondary
// index.
func (i compactIndex) Update(db harbor.KVStore, key []byte, prev, save Model) error {
	if prev == nil && save == nil {
		return errors.Wrap(errors.ErrHuman, "update requires at least one non-nil model")
	}

	var oldIdx, newIdx []byte
	var err error
	if prev != nil {
		if oldIdx, err = i.index(prev); err != nil {
			return err
		}
	}
	if save != nil {
		if newIdx, err = i.index(save); err != nil {
			return err
		}
	}
	if prev != nil && save != nil && bytes.Equal(oldIdx, newIdx) {
		return nil
	}
	if prev != nil && oldIdx != nil {
		if err := i.remove(db, oldIdx, key); err != nil {
			return err
		}
	}
	if save != nil && newIdx != nil {
		if err := i.insert(db, newIdx, key); err != nil {
			return err
		}
	}
	return nil
}

func (i compactIndex) insert(db harbor.KVStore, index, pk []byte) error {
	key := i.indexKey(index)
	cur, err := db.Get(key)
	if err != nil {
		return err
	}

	if i.unique {
		if cur != nil {
			return errors.Wrapf(errors.ErrDuplicate, "index %s", i.name)
		}
		return db.Set(key, pk)
	}

	var refs MultiRef
	if cur != nil {
		if err := proto.Unmarshal(cur, &refs); err != nil {
			return errors.Wrapf(errors.ErrModel, "cannot unmarshal index: %s", err)
		}
	}
	if err := refs.Add(pk); err != nil {
		return err
	}
	raw, err := proto.Marshal(&refs)
	if err != nil {
		return errors.Wrapf(errors.ErrModel, "cannot marshal index: %s", err)
	}
	return db.Set(key, raw)
}

func (i compactIndex) remove(db harbor.KVStore, index, pk []byte) error {
	key := i.indexKey(index)
	cur, err := db.Get(key)
	if err != nil {
		return err
	}
	if cur == nil {
		return errors.Wrapf(errors.ErrNotFound, "index %s", i.name)
	}

	if i.unique {
		if !bytes.Equal(cur, pk) {
			return errors.Wrapf(errors.ErrState, "index %s points to another entity", i.name)
		}
		return db.Delete(key)
	}

	var refs MultiRef
	if err := proto.Unmarshal(cur, &refs); err != nil {
		return errors.Wrapf(errors.ErrModel, "cannot unmarshal index: %s", err)
	}
	if err := refs.Remove(pk); err != nil {
		return err
	}
	if len(refs.Refs) == 0 {
		return db.Delete(key)
	}
	raw, err := proto.Marshal(&refs)
	if err != nil {
		return errors.Wrapf(errors.ErrModel, "cannot marshal index: %s", err)
	}
	return db.Set(key, raw)
}

// Keys returns a list of all primary keys indexed under the given value.
func (i compactIndex) Keys(db harbor.ReadOnlyKVStore, value []byte) ([][]byte, error) {
	raw, err := db.Get(i.indexKey(value))
	if err != nil {
		return nil, err
	}
	return i.refs(raw)
}

func (i compactIndex) refs(raw []byte) ([][]byte, error) {
	if raw == nil {
		return nil, nil
	}
	if i.unique {
		return [][]byte{raw}, nil
	}
	var refs MultiRef
	if err := proto.Unmarshal(raw, &refs); err != nil {
		return nil, errors.Wrapf(errors.ErrModel, "cannot unmarshal index: %s", err)
	}
	return refs.Refs, nil
}

// Query handles queries from the QueryRouter. Returned models are the
// indexed entities.
func (i compactIndex) Query(db harbor.ReadOnlyKVStore, mod string, data []byte) ([]harbor.Model, error) {
	var pks [][]byte
	switch mod {
	case harbor.KeyQueryMod:
		refs, err := i.Keys(db, data)
		if err != nil {
			return nil, err
		}
		pks = refs
	case harbor.PrefixQueryMod:
		entries, err := queryPrefix(db, i.indexKey(data))
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			refs, err := i.refs(e.Value)
			if err != nil {
				return nil, err
			}
			pks = append(pks, refs...)
		}
	default:
		return nil, errors.Wrapf(errors.ErrInput, "unknown query mod %q", mod)
	}
	return i.loadRefs(db, pks)
}

func (i compactIndex) loadRefs(db harbor.ReadOnlyKVStore, refs [][]byte) ([]harbor.Model, error) {
	if len(refs) == 0 {
		return nil, nil
	}
	res := make([]harbor.Model, len(refs))
	for j, ref := range refs {
		key := i.refKey(ref)
		value, err := db.Get(key)
		if err != nil {
			return nil, err
		}
		res[j] = harbor.Pair(key, value)
	}
	return res, nil
}
