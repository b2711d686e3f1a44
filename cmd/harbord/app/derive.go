package app

import (
	"github.com/safeharbor/harbor"
	"github.com/safeharbor/harbor/errors"
	"github.com/safeharbor/harbor/x/escrow"
	"github.com/safeharbor/harbor/x/token"
)

// EscrowAddresses are the program owned addresses of one escrow.
type EscrowAddresses struct {
	Record harbor.Address
	Bump   uint8
	Vault  harbor.Address
}

// DeriveEscrow computes the addresses an escrow of maker with given seed
// uses. mint is either a token symbol or an address in any format
// harbor.ParseAddress accepts.
func DeriveEscrow(maker string, seed uint64, mint string) (*EscrowAddresses, error) {
	makerAddr, err := harbor.ParseAddress(maker)
	if err != nil {
		return nil, errors.Wrap(err, "maker")
	}
	if err := makerAddr.Validate(); err != nil {
		return nil, errors.Wrap(err, "maker")
	}

	var mintAddr harbor.Address
	if token.IsSymbol(mint) {
		mintAddr = token.MintAddress(mint)
	} else if mintAddr, err = harbor.ParseAddress(mint); err != nil {
		return nil, errors.Wrap(err, "mint")
	}
	if err := mintAddr.Validate(); err != nil {
		return nil, errors.Wrap(err, "mint")
	}

	record, bump, err := escrow.RecordAddress(makerAddr, seed)
	if err != nil {
		return nil, err
	}
	return &EscrowAddresses{
		Record: record,
		Bump:   bump,
		Vault:  escrow.VaultAddress(record, mintAddr),
	}, nil
}
