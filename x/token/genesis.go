package token

import (
	"github.com/safeharbor/harbor"
	"github.com/safeharbor/harbor/errors"
)

const optKey = "token"

// GenesisMint declares a mint in the genesis file.
type GenesisMint struct {
	Authority harbor.Address `json:"authority"`
	Symbol    string         `json:"symbol"`
	Decimals  uint32         `json:"decimals"`
}

// GenesisAccount declares an initial balance in the genesis file.
type GenesisAccount struct {
	Owner  harbor.Address `json:"owner"`
	Symbol string         `json:"symbol"`
	Amount uint64         `json:"amount"`
}

// Genesis is the content of the "token" genesis section.
type Genesis struct {
	Mints    []GenesisMint    `json:"mints"`
	Accounts []GenesisAccount `json:"accounts"`
}

// Initializer loads mints and balances from the genesis file.
type Initializer struct{}

var _ harbor.Initializer = Initializer{}

func (Initializer) FromGenesis(opts harbor.Options, db harbor.KVStore) error {
	var gen Genesis
	if err := opts.ReadOptions(optKey, &gen); err != nil {
		return err
	}
	ctrl := NewController(nil)
	for i, m := range gen.Mints {
		if _, err := ctrl.CreateMint(db, m.Authority, m.Symbol, m.Decimals); err != nil {
			return errors.Wrapf(err, "mint #%d", i)
		}
	}
	for i, a := range gen.Accounts {
		if err := a.Owner.Validate(); err != nil {
			return errors.Wrapf(err, "account #%d owner", i)
		}
		m, err := ctrl.Mint(db, MintAddress(a.Symbol))
		if err != nil {
			return errors.Wrapf(err, "account #%d", i)
		}
		if a.Amount == 0 {
			if _, err := ctrl.OpenAccount(db, a.Owner, m.Address()); err != nil {
				return errors.Wrapf(err, "account #%d", i)
			}
			continue
		}
		if err := ctrl.issue(db, m, a.Owner, a.Amount); err != nil {
			return errors.Wrapf(err, "account #%d", i)
		}
	}
	return nil
}
