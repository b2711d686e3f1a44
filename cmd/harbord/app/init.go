package app

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/gogo/protobuf/proto"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/safeharbor/harbor"
	"github.com/safeharbor/harbor/crypto"
	"github.com/safeharbor/harbor/errors"
	"github.com/safeharbor/harbor/x/rent"
	"github.com/safeharbor/harbor/x/token"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

const (
	// RentSymbol is the mint rent is paid in on a fresh chain.
	RentSymbol = "RENT"

	devFunds     = 1000000000000
	devRentFunds = 1000000
)

// GenInitOptions will produce some basic options for one rich account, to
// use for dev mode.
//
// The first argument is the symbol of the asset to create, the second the
// hex address of the account receiving it and the rent funds. A fresh key
// is generated when no address is given.
func GenInitOptions(args []string) (json.RawMessage, error) {
	symbol := "USDC"
	if len(args) > 0 {
		symbol = args[0]
		if !token.IsSymbol(symbol) || symbol == RentSymbol {
			return nil, errors.Wrapf(errors.ErrInput, "invalid symbol %q", symbol)
		}
	}

	var addr harbor.Address
	if len(args) > 1 {
		var err error
		if addr, err = harbor.ParseAddress(args[1]); err != nil {
			return nil, err
		}
		if err := addr.Validate(); err != nil {
			return nil, err
		}
	} else {
		// if no address provided, auto-generate one and print out the
		// private key so the funds can be used
		key := crypto.GenPrivKeyEd25519()
		addr = key.PublicKey().Address()
		raw, err := proto.Marshal(key)
		if err != nil {
			return nil, err
		}
		fmt.Printf("Generated dev key %X for %s\n", raw, addr)
	}

	state := map[string]interface{}{
		"conf": map[string]interface{}{
			"rent": rent.Configuration{
				Metadata:        &harbor.Metadata{Schema: 1},
				Owner:           addr,
				Mint:            token.MintAddress(RentSymbol),
				LamportsPerByte: 1,
			},
		},
		"token": token.Genesis{
			Mints: []token.GenesisMint{
				{Authority: addr, Symbol: symbol, Decimals: 6},
				{Authority: addr, Symbol: RentSymbol},
			},
			Accounts: []token.GenesisAccount{
				{Owner: addr, Symbol: symbol, Amount: devFunds},
				{Owner: addr, Symbol: RentSymbol, Amount: devRentFunds},
			},
		},
	}
	raw, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return raw, nil
}

// GenerateApp is used to create a stub for server/start.go command.
func GenerateApp(home string, logger log.Logger, debug bool, reg prometheus.Registerer) (abci.Application, error) {
	// db goes in a subdir, but "" -> "" for memdb
	var dbPath string
	if home != "" {
		dbPath = filepath.Join(home, "harbor.db")
	}

	metrics, err := NewMetrics(reg)
	if err != nil {
		return nil, err
	}
	application, err := Application(Name, Stack(metrics), TxDecoder, dbPath, debug)
	if err != nil {
		return nil, err
	}
	application.WithLogger(logger)
	return application, nil
}
