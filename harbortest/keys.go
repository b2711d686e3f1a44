package harbortest

import (
	"encoding/binary"
	"testing"

	"github.com/safeharbor/harbor"
	"github.com/safeharbor/harbor/crypto"
)

// NewKey returns a fresh ed25519 private key.
func NewKey() *crypto.PrivateKey {
	return crypto.GenPrivKeyEd25519()
}

// NewCondition returns the signature condition of a fresh key.
func NewCondition() harbor.Condition {
	return NewKey().PublicKey().Condition()
}

// SequenceID returns the big endian encoding of n.
func SequenceID(n uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, n)
	return b
}

// ParseAddress decodes an address in any of the formats ParseAddress
// accepts and fails the test on error.
func ParseAddress(t testing.TB, enc string) harbor.Address {
	t.Helper()

	addr, err := harbor.ParseAddress(enc)
	if err != nil {
		t.Fatalf("cannot parse %q address: %s", enc, err)
	}
	return addr
}
