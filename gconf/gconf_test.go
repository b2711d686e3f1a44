package gconf

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/gogo/protobuf/proto"
	"github.com/safeharbor/harbor"
	"github.com/safeharbor/harbor/errors"
	"github.com/safeharbor/harbor/harbortest"
	"github.com/safeharbor/harbor/harbortest/assert"
	"github.com/safeharbor/harbor/store"
)

type myconfig struct {
	Owner harbor.Address `protobuf:"bytes,1,opt,name=owner,proto3,casttype=github.com/safeharbor/harbor.Address" json:"owner,omitempty"`
	Num   int64          `protobuf:"varint,2,opt,name=num,proto3" json:"num,omitempty"`
	Str   string         `protobuf:"bytes,3,opt,name=str,proto3" json:"str,omitempty"`
}

func (m *myconfig) Reset()         { *m = myconfig{} }
func (m *myconfig) String() string { return proto.CompactTextString(m) }
func (*myconfig) ProtoMessage()    {}

func (m *myconfig) GetOwner() harbor.Address { return m.Owner }

func (m *myconfig) Validate() error {
	if m.Num < 0 {
		return errors.Wrap(errors.ErrModel, "negative num")
	}
	return nil
}

type patchMsg struct {
	Patch *myconfig `protobuf:"bytes,1,opt,name=patch,proto3" json:"patch,omitempty"`
}

func (m *patchMsg) Reset()         { *m = patchMsg{} }
func (m *patchMsg) String() string { return proto.CompactTextString(m) }
func (*patchMsg) ProtoMessage()    {}
func (*patchMsg) Path() string     { return "test/update_configuration" }
func (*patchMsg) Validate() error  { return nil }

func TestSaveLoad(t *testing.T) {
	db := store.MemStore()

	var got myconfig
	assert.IsErr(t, errors.ErrNotFound, Load(db, "test", &got))

	assert.IsErr(t, errors.ErrModel, Save(db, "test", &myconfig{Num: -1}))

	want := myconfig{Owner: harbortest.NewCondition().Address(), Num: 7, Str: "x"}
	assert.Nil(t, Save(db, "test", &want))
	assert.Nil(t, Load(db, "test", &got))
	assert.Equal(t, want, got)
}

func TestInitConfig(t *testing.T) {
	owner := harbortest.NewCondition().Address()
	genesis := `{"conf": {"test": {"owner": "` + owner.String() + `", "num": 3}}}`
	var opts harbor.Options
	if err := json.Unmarshal([]byte(genesis), &opts); err != nil {
		t.Fatalf("cannot parse genesis: %s", err)
	}

	db := store.MemStore()
	assert.Nil(t, InitConfig(db, opts, "test", &myconfig{}))

	var got myconfig
	assert.Nil(t, Load(db, "test", &got))
	assert.Equal(t, int64(3), got.Num)
	assert.Equal(t, owner, got.Owner)

	assert.IsErr(t, errors.ErrNotFound, InitConfig(db, opts, "missing", &myconfig{}))
}

func TestUpdateConfigurationHandler(t *testing.T) {
	owner := harbortest.NewCondition()

	cases := map[string]struct {
		Init       *myconfig
		Signer     harbor.Condition
		Msg        harbor.Msg
		WantErr    *errors.Error
		WantConfig *myconfig
	}{
		"owner patches non zero fields": {
			Init:       &myconfig{Owner: owner.Address(), Num: 5, Str: "foo"},
			Signer:     owner,
			Msg:        &patchMsg{Patch: &myconfig{Num: 9}},
			WantConfig: &myconfig{Owner: owner.Address(), Num: 9, Str: "foo"},
		},
		"stranger cannot patch": {
			Init:       &myconfig{Owner: owner.Address(), Num: 5},
			Signer:     harbortest.NewCondition(),
			Msg:        &patchMsg{Patch: &myconfig{Num: 9}},
			WantErr:    errors.ErrUnauthorized,
			WantConfig: &myconfig{Owner: owner.Address(), Num: 5},
		},
		"missing configuration": {
			Signer:  owner,
			Msg:     &patchMsg{Patch: &myconfig{Num: 9}},
			WantErr: errors.ErrNotFound,
		},
		"patch is required": {
			Init:    &myconfig{Owner: owner.Address(), Num: 5},
			Signer:  owner,
			Msg:     &patchMsg{},
			WantErr: errors.ErrState,
		},
		"invalid result is not saved": {
			Init:       &myconfig{Owner: owner.Address(), Num: 5},
			Signer:     owner,
			Msg:        &patchMsg{Patch: &myconfig{Num: -4}},
			WantErr:    errors.ErrModel,
			WantConfig: &myconfig{Owner: owner.Address(), Num: 5},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			if tc.Init != nil {
				assert.Nil(t, Save(db, "test", tc.Init))
			}
			auth := &harbortest.Auth{Signer: tc.Signer}
			h := NewUpdateConfigurationHandler("test", &myconfig{}, auth)
			tx := &harbortest.Tx{Msg: tc.Msg}

			cache := db.CacheWrap()
			_, err := h.Check(context.Background(), cache, tx)
			cache.Discard()
			if !tc.WantErr.Is(err) {
				t.Fatalf("unexpected check error: %+v", err)
			}
			_, err = h.Deliver(context.Background(), db, tx)
			if !tc.WantErr.Is(err) {
				t.Fatalf("unexpected deliver error: %+v", err)
			}

			if tc.WantConfig != nil {
				var got myconfig
				assert.Nil(t, Load(db, "test", &got))
				assert.Equal(t, *tc.WantConfig, got)
			}
		})
	}
}
