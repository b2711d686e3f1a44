package escrow

import (
	"encoding/binary"

	"github.com/safeharbor/harbor"
	"github.com/safeharbor/harbor/x/token"
)

// ProgramName is the program every escrow record address is derived for.
const ProgramName = "escrow"

var recordPrefix = []byte("escrow")

// RecordAddress finds the address of the escrow opened by maker with given
// seed. The returned bump must be stored with the record.
func RecordAddress(maker harbor.Address, seed uint64) (harbor.Address, uint8, error) {
	return harbor.FindProgramAddress(ProgramName, recordPrefix, maker, seedBytes(seed))
}

// RecordCondition derives the condition owning the escrow record without
// searching for the bump.
func RecordCondition(maker harbor.Address, seed uint64, bump uint8) (harbor.Condition, error) {
	return harbor.CreateProgramCondition(ProgramName, bump, recordPrefix, maker, seedBytes(seed))
}

// VaultAddress returns the holding account that keeps the deposit of the
// escrow stored at record.
func VaultAddress(record, mintDeposit harbor.Address) harbor.Address {
	return token.HoldingAddress(record, mintDeposit)
}

func seedBytes(seed uint64) []byte {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, seed)
	return b
}
