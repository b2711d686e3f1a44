package harbor

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/safeharbor/harbor/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedBytes(n uint64) []byte {
	raw := make([]byte, 8)
	binary.LittleEndian.PutUint64(raw, n)
	return raw
}

func TestFindProgramCondition(t *testing.T) {
	maker := NewCondition("sigs", "ed25519", []byte("maker")).Address()

	cond, bump, err := FindProgramCondition("escrow", []byte("escrow"), maker, seedBytes(42))
	require.NoError(t, err)
	require.NoError(t, cond.Validate())

	ext, typ, data, err := cond.Parse()
	require.NoError(t, err)
	assert.Equal(t, "escrow", ext)
	assert.Equal(t, "pda", typ)
	assert.Len(t, data, 32)
	assert.False(t, onCurve(data), "derived digest must not be a public key")

	// Re-deriving with the stored bump gives the same condition.
	again, err := CreateProgramCondition("escrow", bump, []byte("escrow"), maker, seedBytes(42))
	require.NoError(t, err)
	assert.Equal(t, cond, again)

	// Every bump above the found one is a valid public key.
	for b := 255; b > int(bump); b-- {
		_, err := CreateProgramCondition("escrow", uint8(b), []byte("escrow"), maker, seedBytes(42))
		assert.True(t, errors.ErrInput.Is(err), "bump %d", b)
	}
}

func TestProgramAddressIsDeterministic(t *testing.T) {
	maker := NewCondition("sigs", "ed25519", []byte("maker")).Address()
	other := NewCondition("sigs", "ed25519", []byte("other")).Address()

	a1, b1, err := FindProgramAddress("escrow", maker, seedBytes(1))
	require.NoError(t, err)
	a2, b2, err := FindProgramAddress("escrow", maker, seedBytes(1))
	require.NoError(t, err)
	assert.Equal(t, a1, a2)
	assert.Equal(t, b1, b2)

	a3, _, err := FindProgramAddress("escrow", maker, seedBytes(2))
	require.NoError(t, err)
	assert.False(t, bytes.Equal(a1, a3), "different seed must give a different address")

	a4, _, err := FindProgramAddress("escrow", other, seedBytes(1))
	require.NoError(t, err)
	assert.False(t, bytes.Equal(a1, a4), "different maker must give a different address")

	a5, _, err := FindProgramAddress("token", maker, seedBytes(1))
	require.NoError(t, err)
	assert.False(t, bytes.Equal(a1, a5), "different program must give a different address")
}

func TestProgramSeedLimits(t *testing.T) {
	_, _, err := FindProgramCondition("escrow", make([]byte, MaxSeedLength+1))
	assert.True(t, errors.ErrInput.Is(err))

	seeds := make([][]byte, MaxSeeds+1)
	_, _, err = FindProgramCondition("escrow", seeds...)
	assert.True(t, errors.ErrInput.Is(err))
}
