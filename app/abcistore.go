package app

import (
	"github.com/safeharbor/harbor"
	"github.com/safeharbor/harbor/errors"
	"github.com/safeharbor/harbor/store"
	abci "github.com/tendermint/tendermint/abci/types"
)

// ABCIStore exposes the abci.Query interface as a ReadOnlyKVStore. It
// requires the raw store to be registered under "/" (see orm.RegisterQuery)
// and can be wrapped with a bucket to reuse key and parse logic on the
// client side.
type ABCIStore struct {
	app abci.Application
}

var _ harbor.ReadOnlyKVStore = (*ABCIStore)(nil)

func NewABCIStore(app abci.Application) *ABCIStore {
	return &ABCIStore{app: app}
}

// Get will query for exactly one value over the abci store.
func (a *ABCIStore) Get(key []byte) ([]byte, error) {
	query := a.app.Query(abci.RequestQuery{
		Path: "/",
		Data: key,
	})
	if query.Code != errors.SuccessABCICode {
		return nil, errors.ABCIError(query.Code, query.Log)
	}
	var value ResultSet
	if err := value.Unmarshal(query.Value); err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	switch len(value.Results) {
	case 0:
		return nil, nil
	case 1:
		return value.Results[0], nil
	default:
		return nil, errors.Wrapf(errors.ErrState, "%d values for a single key", len(value.Results))
	}
}

// Has returns true if the given key is in the abci app store.
func (a *ABCIStore) Has(key []byte) (bool, error) {
	val, err := a.Get(key)
	return len(val) > 0, err
}

// Iterator only supports prefix ranges, as that is all the abci query can
// serve. An open end is accepted only together with an empty start.
func (a *ABCIStore) Iterator(start, end []byte) (harbor.Iterator, error) {
	if !isPrefixRange(start, end) {
		return nil, errors.Wrap(errors.ErrInput, "only prefix ranges are supported")
	}
	query := a.app.Query(abci.RequestQuery{
		Path: "/?" + harbor.PrefixQueryMod,
		Data: start,
	})
	if query.Code != errors.SuccessABCICode {
		return nil, errors.ABCIError(query.Code, query.Log)
	}
	var keys, values ResultSet
	if err := keys.Unmarshal(query.Key); err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	if err := values.Unmarshal(query.Value); err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	models, err := JoinResults(&keys, &values)
	if err != nil {
		return nil, err
	}
	return store.NewSliceIterator(models), nil
}

func (a *ABCIStore) ReverseIterator(start, end []byte) (harbor.Iterator, error) {
	itr, err := a.Iterator(start, end)
	if err != nil {
		return nil, err
	}
	var models []harbor.Model
	for itr.Valid() {
		models = append([]harbor.Model{harbor.Pair(itr.Key(), itr.Value())}, models...)
		if err := itr.Next(); err != nil {
			return nil, err
		}
	}
	itr.Close()
	return store.NewSliceIterator(models), nil
}

// isPrefixRange checks that end is the smallest key greater than all keys
// starting with start.
func isPrefixRange(start, end []byte) bool {
	if len(start) == 0 {
		return len(end) == 0
	}
	want := make([]byte, len(start))
	copy(want, start)
	l := len(want) - 1
	want[l]++
	for want[l] == 0 && l > 0 {
		l--
		want[l]++
	}
	if l == 0 && want[0] == 0 {
		return end == nil
	}
	return string(want) == string(end)
}
