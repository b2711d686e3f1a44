package token

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/safeharbor/harbor"
	"github.com/safeharbor/harbor/errors"
	"github.com/safeharbor/harbor/harbortest"
	"github.com/safeharbor/harbor/harbortest/assert"
	"github.com/safeharbor/harbor/store"
)

type router map[string]harbor.Handler

func (r router) Handle(path string, h harbor.Handler) { r[path] = h }

func TestHandlers(t *testing.T) {
	authority := harbortest.NewCondition()
	alice := harbortest.NewCondition()
	bob := harbortest.NewCondition()
	usdc := MintAddress("USDC")
	meta := &harbor.Metadata{Schema: 1}

	cases := map[string]struct {
		signer  harbor.Condition
		msg     harbor.Msg
		wantErr *errors.Error
	}{
		"create mint": {
			signer: authority,
			msg:    &CreateMintMsg{Metadata: meta, Authority: authority.Address(), Symbol: "WSOL", Decimals: 9},
		},
		"create mint for someone else": {
			signer:  alice,
			msg:     &CreateMintMsg{Metadata: meta, Authority: authority.Address(), Symbol: "WSOL", Decimals: 9},
			wantErr: errors.ErrUnauthorized,
		},
		"issue": {
			signer: authority,
			msg:    &IssueMsg{Metadata: meta, Mint: usdc, Recipient: bob.Address(), Amount: 3},
		},
		"issue without authority": {
			signer:  bob,
			msg:     &IssueMsg{Metadata: meta, Mint: usdc, Recipient: bob.Address(), Amount: 3},
			wantErr: errors.ErrUnauthorized,
		},
		"transfer": {
			signer: alice,
			msg:    &TransferMsg{Metadata: meta, Mint: usdc, Source: alice.Address(), Destination: bob.Address(), Amount: 30},
		},
		"transfer too much": {
			signer:  alice,
			msg:     &TransferMsg{Metadata: meta, Mint: usdc, Source: alice.Address(), Destination: bob.Address(), Amount: 300},
			wantErr: errors.ErrInsufficientAmount,
		},
		"transfer zero": {
			signer:  alice,
			msg:     &TransferMsg{Metadata: meta, Mint: usdc, Source: alice.Address(), Destination: bob.Address()},
			wantErr: errors.ErrInvalidAmount,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			genesis := `{"token": {
				"mints": [{"authority": "` + authority.Address().String() + `", "symbol": "USDC", "decimals": 6}],
				"accounts": [{"owner": "` + alice.Address().String() + `", "symbol": "USDC", "amount": 100}]
			}}`
			var opts harbor.Options
			assert.Nil(t, json.Unmarshal([]byte(genesis), &opts))
			assert.Nil(t, Initializer{}.FromGenesis(opts, db))

			auth := &harbortest.Auth{Signer: tc.signer}
			r := make(router)
			RegisterRoutes(r, auth, NewController(auth))
			h := r[tc.msg.Path()]
			tx := &harbortest.Tx{Msg: tc.msg}

			cache := db.CacheWrap()
			if _, err := h.Check(context.Background(), cache, tx); !tc.wantErr.Is(err) {
				t.Fatalf("unexpected check error: %+v", err)
			}
			cache.Discard()
			if _, err := h.Deliver(context.Background(), db, tx); !tc.wantErr.Is(err) {
				t.Fatalf("unexpected deliver error: %+v", err)
			}
		})
	}
}

func TestGenesis(t *testing.T) {
	authority := harbortest.NewCondition().Address()
	alice := harbortest.NewCondition().Address()
	bob := harbortest.NewCondition().Address()

	genesis := Genesis{
		Mints: []GenesisMint{
			{Authority: authority, Symbol: "USDC", Decimals: 6},
			{Authority: authority, Symbol: "WSOL", Decimals: 9},
		},
		Accounts: []GenesisAccount{
			{Owner: alice, Symbol: "USDC", Amount: 10},
			{Owner: alice, Symbol: "USDC", Amount: 5},
			{Owner: bob, Symbol: "WSOL"},
		},
	}
	raw, err := json.Marshal(map[string]interface{}{"token": genesis})
	assert.Nil(t, err)
	var opts harbor.Options
	assert.Nil(t, json.Unmarshal(raw, &opts))

	db := store.MemStore()
	assert.Nil(t, Initializer{}.FromGenesis(opts, db))

	ctrl := NewController(nil)
	got, err := ctrl.Balance(db, alice, MintAddress("USDC"))
	assert.Nil(t, err)
	assert.Equal(t, uint64(15), got)

	m, err := ctrl.Mint(db, MintAddress("USDC"))
	assert.Nil(t, err)
	assert.Equal(t, uint64(15), m.Supply)

	acc, err := ctrl.Account(db, bob, MintAddress("WSOL"))
	assert.Nil(t, err)
	assert.Equal(t, uint64(0), acc.Amount)

	bad := `{"token": {"accounts": [{"owner": "` + alice.String() + `", "symbol": "NOPE", "amount": 1}]}}`
	assert.Nil(t, json.Unmarshal([]byte(bad), &opts))
	assert.IsErr(t, errors.ErrNotFound, Initializer{}.FromGenesis(opts, store.MemStore()))
}
