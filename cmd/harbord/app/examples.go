package app

import (
	"github.com/safeharbor/harbor"
	"github.com/safeharbor/harbor/commands"
	"github.com/safeharbor/harbor/crypto"
	"github.com/safeharbor/harbor/x/escrow"
	"github.com/safeharbor/harbor/x/sigs"
	"github.com/safeharbor/harbor/x/token"
)

// ExampleChainID is the chain the example transactions are signed for.
const ExampleChainID = "test-harbor"

// Examples generates some example structs to dump out with testgen.
func Examples() []commands.Example {
	makerKey := crypto.PrivKeyEd25519FromSeed(make([]byte, 32))
	takerKey := crypto.PrivKeyEd25519FromSeed(append(make([]byte, 31), 1))
	maker := makerKey.PublicKey().Address()
	taker := takerKey.PublicKey().Address()
	usdc := token.MintAddress("USDC")
	wsol := token.MintAddress("WSOL")

	const seed = 1
	record, bump, err := escrow.RecordAddress(maker, seed)
	if err != nil {
		panic(err)
	}

	createMsg := &escrow.CreateMsg{
		Metadata:      &harbor.Metadata{Schema: 1},
		Maker:         maker,
		Seed:          seed,
		MintDeposit:   usdc,
		MintReceive:   wsol,
		DepositAmount: 100000000,
		ReceiveAmount: 500000000,
	}
	takeMsg := &escrow.TakeMsg{
		Metadata: &harbor.Metadata{Schema: 1},
		Taker:    taker,
		Escrow:   record,
	}
	refundMsg := &escrow.RefundMsg{
		Metadata: &harbor.Metadata{Schema: 1},
		Maker:    maker,
		Escrow:   record,
	}
	rec := &escrow.Escrow{
		Metadata:      &harbor.Metadata{Schema: 1},
		Seed:          seed,
		Maker:         maker,
		MintDeposit:   usdc,
		MintReceive:   wsol,
		ReceiveAmount: createMsg.ReceiveAmount,
		Bump:          uint32(bump),
	}

	createTx := mustSign(makerKey, createMsg, 0)
	takeTx := mustSign(takerKey, takeMsg, 0)
	refundTx := mustSign(makerKey, refundMsg, 1)

	return []commands.Example{
		{Filename: "escrow", Obj: rec},
		{Filename: "create_msg", Obj: createMsg},
		{Filename: "take_msg", Obj: takeMsg},
		{Filename: "refund_msg", Obj: refundMsg},
		{Filename: "create_tx", Obj: createTx},
		{Filename: "take_tx", Obj: takeTx},
		{Filename: "refund_tx", Obj: refundTx},
		{Filename: "user", Obj: &sigs.UserData{
			Metadata: &harbor.Metadata{Schema: 1},
			Pubkey:   makerKey.PublicKey(),
			Sequence: 2,
		}},
	}
}

func mustSign(key crypto.Signer, msg harbor.Msg, seq int64) *Tx {
	tx, err := NewTx(msg)
	if err != nil {
		panic(err)
	}
	sig, err := sigs.SignTx(key, tx, ExampleChainID, seq)
	if err != nil {
		panic(err)
	}
	tx.Signatures = []*sigs.StdSignature{sig}
	return tx
}
