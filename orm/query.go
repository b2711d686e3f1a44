package orm

import (
	"github.com/safeharbor/harbor"
	"github.com/safeharbor/harbor/errors"
)

// queryPrefix returns all entries whose key starts with the prefix.
func queryPrefix(db harbor.ReadOnlyKVStore, prefix []byte) ([]harbor.Model, error) {
	itr, err := db.Iterator(prefixRange(prefix))
	if err != nil {
		return nil, err
	}
	return ConsumeIterator(itr)
}

// ConsumeIterator will read all remaining data into an array and close the
// iterator.
func ConsumeIterator(itr harbor.Iterator) ([]harbor.Model, error) {
	defer itr.Close()

	var res []harbor.Model
	for itr.Valid() {
		res = append(res, harbor.Pair(itr.Key(), itr.Value()))
		if err := itr.Next(); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// prefixRange turns a prefix into (start, end) to create an iterator.
func prefixRange(prefix []byte) ([]byte, []byte) {
	// special case: no prefix is whole range
	if len(prefix) == 0 {
		return nil, nil
	}

	// copy the prefix and update last byte
	end := make([]byte, len(prefix))
	copy(end, prefix)
	l := len(end) - 1
	end[l]++

	// wait, what if that overflowed?....
	for end[l] == 0 && l > 0 {
		l--
		end[l]++
	}

	// okay, funny guy, you gave us FFF, no end to this range...
	if l == 0 && end[0] == 0 {
		end = nil
	}
	return prefix, end
}

// RegisterQuery exposes the raw store under "/". A key query returns the
// value of the key, a prefix query all entries starting with it.
func RegisterQuery(qr harbor.QueryRouter) {
	qr.Register("/", rawQuery{})
}

type rawQuery struct{}

func (rawQuery) Query(db harbor.ReadOnlyKVStore, mod string, data []byte) ([]harbor.Model, error) {
	switch mod {
	case harbor.KeyQueryMod:
		val, err := db.Get(data)
		if err != nil || val == nil {
			return nil, err
		}
		return []harbor.Model{harbor.Pair(data, val)}, nil
	case harbor.PrefixQueryMod:
		return queryPrefix(db, data)
	default:
		return nil, errors.Wrapf(errors.ErrInput, "unknown query mod %q", mod)
	}
}
