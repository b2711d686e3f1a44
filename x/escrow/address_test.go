package escrow

import (
	"testing"

	"github.com/safeharbor/harbor/harbortest"
	"github.com/safeharbor/harbor/x/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordAddress(t *testing.T) {
	maker := harbortest.NewCondition().Address()
	other := harbortest.NewCondition().Address()

	addr, bump, err := RecordAddress(maker, 66)
	require.NoError(t, err)

	again, againBump, err := RecordAddress(maker, 66)
	require.NoError(t, err)
	assert.Equal(t, addr, again)
	assert.Equal(t, bump, againBump)

	cond, err := RecordCondition(maker, 66, bump)
	require.NoError(t, err)
	assert.Equal(t, addr, cond.Address())

	next, _, err := RecordAddress(maker, 67)
	require.NoError(t, err)
	assert.NotEqual(t, addr, next)

	foreign, _, err := RecordAddress(other, 66)
	require.NoError(t, err)
	assert.NotEqual(t, addr, foreign)

	assert.Equal(t, token.HoldingAddress(addr, mintA), VaultAddress(addr, mintA))
	assert.NotEqual(t, VaultAddress(addr, mintA), VaultAddress(addr, mintB))
}

func TestSeedEncoding(t *testing.T) {
	assert.Equal(t, []byte{66, 0, 0, 0, 0, 0, 0, 0}, seedBytes(66))
	assert.Equal(t, []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}, seedBytes(^uint64(0)))
}
