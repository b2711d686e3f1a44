/*
Package orm provides an easy to use db wrapper.

Break state space into prefixed sections called Buckets.
* Each bucket contains only one type of model.
* It has a primary key chosen by the caller (for example a derived address).
* It may possess one or more secondary indexes (1:1 or 1:N).
* Easy queries for one and iteration.

Models are protobuf messages and are serialized using the gogo protobuf
wire format.
*/
package orm

import (
	"fmt"
	"reflect"
	"regexp"

	"github.com/gogo/protobuf/proto"
	"github.com/safeharbor/harbor"
	"github.com/safeharbor/harbor/errors"
)

var isBucketName = regexp.MustCompile(`^[a-z_]{3,10}$`).MatchString

// Model is implemented by any entity that can be stored in a Bucket.
type Model interface {
	proto.Message
	// Validate returns error if the model is not in a valid state to save
	// to the db (eg. field missing, out of range, ...).
	Validate() error
}

// Bucket is a prefixed subspace of the DB that stores models of a single
// type, as well as references to secondary indexes.
type Bucket struct {
	name    string
	prefix  []byte
	model   reflect.Type
	indexes map[string]Index
}

var _ harbor.QueryHandler = Bucket{}

// NewBucket creates a bucket to store data. The model is the type of all
// stored entities and must be a pointer.
func NewBucket(name string, model Model) Bucket {
	if !isBucketName(name) {
		panic(fmt.Sprintf("Illegal bucket: %s", name))
	}
	t := reflect.TypeOf(model)
	if t.Kind() != reflect.Ptr {
		panic(fmt.Sprintf("Bucket model must be a pointer, got %T", model))
	}
	return Bucket{
		name:   name,
		prefix: append([]byte(name), ':'),
		model:  t.Elem(),
	}
}

// Name returns the name of this bucket.
func (b Bucket) Name() string {
	return b.name
}

// Register registers this Bucket and all indexes. You can define a name
// here for queries, which is different than the bucket name used to prefix
// the data.
func (b Bucket) Register(name string, r harbor.QueryRouter) {
	if name == "" {
		name = b.name
	}
	root := "/" + name
	r.Register(root, b)
	for name, idx := range b.indexes {
		r.Register(root+"/"+name, idx)
	}
}

// Query handles queries from the QueryRouter.
func (b Bucket) Query(db harbor.ReadOnlyKVStore, mod string, data []byte) ([]harbor.Model, error) {
	switch mod {
	case harbor.KeyQueryMod:
		key := b.DBKey(data)
		value, err := db.Get(key)
		if err != nil {
			return nil, err
		}
		// return nothing on miss
		if value == nil {
			return nil, nil
		}
		return []harbor.Model{{Key: key, Value: value}}, nil
	case harbor.PrefixQueryMod:
		return queryPrefix(db, b.DBKey(data))
	default:
		return nil, errors.Wrapf(errors.ErrInput, "unknown query mod %q", mod)
	}
}

// DBKey is the full key we store in the db, including prefix. We copy
// into a new array rather than use append, as we don't want consecutive
// calls to overwrite the same byte array.
func (b Bucket) DBKey(key []byte) []byte {
	l := len(b.prefix)
	out := make([]byte, l+len(key))
	copy(out, b.prefix)
	copy(out[l:], key)
	return out
}

// One loads the model stored under the given key into the destination.
// Returns ErrNotFound if the entity does not exist in the database.
func (b Bucket) One(db harbor.ReadOnlyKVStore, key []byte, dest Model) error {
	if reflect.TypeOf(dest) != reflect.PtrTo(b.model) {
		return errors.Wrapf(errors.ErrType, "%T cannot be represented as %s", dest, b.model)
	}
	raw, err := db.Get(b.DBKey(key))
	if err != nil {
		return errors.Wrap(err, "cannot read from the database")
	}
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "%s not in the store", b.model.Name())
	}
	if err := proto.Unmarshal(raw, dest); err != nil {
		return errors.Wrapf(errors.ErrModel, "cannot unmarshal %s: %s", b.model.Name(), err)
	}
	return nil
}

// Has returns true if an entity with the given key exists.
func (b Bucket) Has(db harbor.ReadOnlyKVStore, key []byte) (bool, error) {
	ok, err := db.Has(b.DBKey(key))
	if err != nil {
		return false, errors.Wrap(err, "cannot read from the database")
	}
	return ok, nil
}

// Put validates and saves the model under the given key, updating all
// indexes.
func (b Bucket) Put(db harbor.KVStore, key []byte, m Model) error {
	if reflect.TypeOf(m) != reflect.PtrTo(b.model) {
		return errors.Wrapf(errors.ErrType, "%T cannot be stored in %s bucket", m, b.name)
	}
	if len(key) == 0 {
		return errors.Wrap(errors.ErrEmpty, "key")
	}
	if err := m.Validate(); err != nil {
		return errors.Wrap(err, "invalid model")
	}
	raw, err := proto.Marshal(m)
	if err != nil {
		return errors.Wrapf(errors.ErrModel, "cannot marshal: %s", err)
	}
	if err := b.updateIndexes(db, key, m); err != nil {
		return err
	}
	if err := db.Set(b.DBKey(key), raw); err != nil {
		return errors.Wrap(err, "cannot store in the database")
	}
	return nil
}

// Delete removes an entity with given primary key from the database. It
// returns ErrNotFound if an entity with given key does not exist.
func (b Bucket) Delete(db harbor.KVStore, key []byte) error {
	ok, err := b.Has(db, key)
	if err != nil {
		return err
	}
	if !ok {
		return errors.Wrapf(errors.ErrNotFound, "%s not in the store", b.model.Name())
	}
	if err := b.updateIndexes(db, key, nil); err != nil {
		return err
	}
	if err := db.Delete(b.DBKey(key)); err != nil {
		return errors.Wrap(err, "cannot delete from the database")
	}
	return nil
}

func (b Bucket) updateIndexes(db harbor.KVStore, key []byte, m Model) error {
	if len(b.indexes) == 0 {
		return nil
	}
	var prev Model
	if ok, err := b.Has(db, key); err != nil {
		return err
	} else if ok {
		prev = reflect.New(b.model).Interface().(Model)
		if err := b.One(db, key, prev); err != nil {
			return err
		}
	}
	for _, idx := range b.indexes {
		if err := idx.Update(db, key, prev, m); err != nil {
			return errors.Wrapf(err, "index %s", idx.Name())
		}
	}
	return nil
}

// WithIndex returns a copy of this bucket with given index, panics if an
// index with that name is already registered.
//
// Designed to be chained.
func (b Bucket) WithIndex(name string, indexer Indexer, unique bool) Bucket {
	if _, ok := b.indexes[name]; ok {
		panic(fmt.Sprintf("Index %s registered twice", name))
	}
	idx := NewIndex(b.name+"_"+name, indexer, unique, b.DBKey)
	indexes := make(map[string]Index, len(b.indexes)+1)
	for n, i := range b.indexes {
		indexes[n] = i
	}
	indexes[name] = idx
	b.indexes = indexes
	return b
}

// ByIndex returns the primary keys of all entities indexed under the given
// value by the named index.
func (b Bucket) ByIndex(db harbor.ReadOnlyKVStore, name string, value []byte) ([][]byte, error) {
	idx, ok := b.indexes[name]
	if !ok {
		return nil, errors.Wrapf(ErrInvalidIndex, "name %q", name)
	}
	return idx.Keys(db, value)
}
