package app

import (
	"github.com/gogo/protobuf/proto"
	"github.com/safeharbor/harbor"
	"github.com/safeharbor/harbor/errors"
)

// ResultSet is the container of query results. Keys and values of a query
// are returned as two ResultSets of the same length.
type ResultSet struct {
	Results [][]byte `protobuf:"bytes,1,rep,name=results,proto3" json:"results,omitempty"`
}

func (m *ResultSet) Reset()         { *m = ResultSet{} }
func (m *ResultSet) String() string { return proto.CompactTextString(m) }
func (*ResultSet) ProtoMessage()    {}

func (m *ResultSet) Marshal() ([]byte, error) {
	return proto.Marshal(m)
}

func (m *ResultSet) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, m)
}

// ResultsFromKeys returns a ResultSet of all keys given a set of models.
func ResultsFromKeys(models []harbor.Model) *ResultSet {
	res := make([][]byte, len(models))
	for i, m := range models {
		res[i] = m.Key
	}
	return &ResultSet{Results: res}
}

// ResultsFromValues returns a ResultSet of all values given a set of
// models.
func ResultsFromValues(models []harbor.Model) *ResultSet {
	res := make([][]byte, len(models))
	for i, m := range models {
		res[i] = m.Value
	}
	return &ResultSet{Results: res}
}

// JoinResults inverts ResultsFromKeys and ResultsFromValues and makes them
// a consistent whole again.
func JoinResults(keys, values *ResultSet) ([]harbor.Model, error) {
	kref, vref := keys.Results, values.Results
	if len(kref) != len(vref) {
		return nil, errors.Wrapf(errors.ErrState, "%d keys, %d values", len(kref), len(vref))
	}
	mods := make([]harbor.Model, len(kref))
	for i := range mods {
		mods[i] = harbor.Pair(kref[i], vref[i])
	}
	return mods, nil
}

// UnmarshalOneResult will parse a ResultSet, and if it is not empty,
// unmarshal the first result into o. It returns ErrNotFound for an empty
// set.
func UnmarshalOneResult(raw []byte, o proto.Message) error {
	var res ResultSet
	if err := res.Unmarshal(raw); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	if len(res.Results) == 0 {
		return errors.ErrNotFound
	}
	if err := proto.Unmarshal(res.Results[0], o); err != nil {
		return errors.Wrap(errors.ErrModel, err.Error())
	}
	return nil
}
