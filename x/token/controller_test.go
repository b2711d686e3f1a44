package token

import (
	"context"
	"testing"

	"github.com/safeharbor/harbor"
	"github.com/safeharbor/harbor/errors"
	"github.com/safeharbor/harbor/harbortest"
	"github.com/safeharbor/harbor/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixture creates a USDC mint with alice holding 100 tokens.
func fixture(t *testing.T) (harbor.KVStore, harbor.Address, harbor.Condition, harbor.Condition) {
	t.Helper()
	db := store.MemStore()
	authority := harbortest.NewCondition()
	alice := harbortest.NewCondition()

	ctrl := NewController(&harbortest.Auth{Signer: authority})
	m, err := ctrl.CreateMint(db, authority.Address(), "USDC", 6)
	require.NoError(t, err)
	require.NoError(t, ctrl.Issue(context.Background(), db, m.Address(), alice.Address(), 100))
	return db, m.Address(), authority, alice
}

func TestTransfer(t *testing.T) {
	bob := harbortest.NewCondition()

	cases := map[string]struct {
		signer    func(alice harbor.Condition) harbor.Condition
		amount    uint64
		wantErr   *errors.Error
		wantAlice uint64
		wantBob   uint64
	}{
		"owner moves funds": {
			signer:    func(a harbor.Condition) harbor.Condition { return a },
			amount:    40,
			wantAlice: 60,
			wantBob:   40,
		},
		"entire balance": {
			signer:    func(a harbor.Condition) harbor.Condition { return a },
			amount:    100,
			wantAlice: 0,
			wantBob:   100,
		},
		"insufficient balance": {
			signer:    func(a harbor.Condition) harbor.Condition { return a },
			amount:    101,
			wantErr:   errors.ErrInsufficientAmount,
			wantAlice: 100,
		},
		"zero amount": {
			signer:    func(a harbor.Condition) harbor.Condition { return a },
			amount:    0,
			wantErr:   errors.ErrInvalidAmount,
			wantAlice: 100,
		},
		"not the owner": {
			signer:    func(harbor.Condition) harbor.Condition { return bob },
			amount:    1,
			wantErr:   errors.ErrUnauthorized,
			wantAlice: 100,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db, mint, _, alice := fixture(t)
			ctrl := NewController(&harbortest.Auth{Signer: tc.signer(alice)})

			err := ctrl.Transfer(context.Background(), db, mint, alice.Address(), bob.Address(), tc.amount)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}

			got, err := ctrl.Balance(db, alice.Address(), mint)
			require.NoError(t, err)
			assert.Equal(t, tc.wantAlice, got)
			got, err = ctrl.Balance(db, bob.Address(), mint)
			require.NoError(t, err)
			assert.Equal(t, tc.wantBob, got)
		})
	}
}

func TestTransferFromMissingAccount(t *testing.T) {
	db, mint, _, _ := fixture(t)
	carol := harbortest.NewCondition()
	ctrl := NewController(&harbortest.Auth{Signer: carol})

	err := ctrl.Transfer(context.Background(), db, mint, carol.Address(), harbortest.NewCondition().Address(), 1)
	assert.True(t, errors.ErrNotFound.Is(err))
}

func TestOpenCloseAccount(t *testing.T) {
	db, mint, _, alice := fixture(t)
	vault := harbortest.NewCondition()
	ctx := context.Background()

	stranger := NewController(&harbortest.Auth{Signer: alice})
	owner := NewController(&harbortest.Auth{Signers: []harbor.Condition{alice, vault}})

	acc, err := owner.OpenAccount(db, vault.Address(), mint)
	require.NoError(t, err)
	assert.Equal(t, HoldingAddress(vault.Address(), mint), acc.Address())

	_, err = owner.OpenAccount(db, vault.Address(), mint)
	assert.True(t, errors.ErrDuplicate.Is(err))

	_, err = owner.OpenAccount(db, vault.Address(), MintAddress("NOPE"))
	assert.True(t, errors.ErrNotFound.Is(err))

	require.NoError(t, owner.Transfer(ctx, db, mint, alice.Address(), vault.Address(), 10))

	err = owner.CloseAccount(ctx, db, vault.Address(), mint)
	assert.True(t, errors.ErrState.Is(err))

	require.NoError(t, owner.Transfer(ctx, db, mint, vault.Address(), alice.Address(), 10))

	err = stranger.CloseAccount(ctx, db, vault.Address(), mint)
	assert.True(t, errors.ErrUnauthorized.Is(err))

	require.NoError(t, owner.CloseAccount(ctx, db, vault.Address(), mint))
	_, err = owner.Account(db, vault.Address(), mint)
	assert.True(t, errors.ErrNotFound.Is(err))
}

func TestLockedAccount(t *testing.T) {
	db, mint, authority, alice := fixture(t)
	program := harbortest.NewCondition()
	ctx := context.Background()

	stranger := NewController(&harbortest.Auth{Signer: alice})
	owner := NewController(&harbortest.Auth{Signers: []harbor.Condition{alice, program}})

	_, err := stranger.Lock(ctx, db, program.Address(), mint)
	assert.True(t, errors.ErrUnauthorized.Is(err))

	// funds sent before the lock stay with the account
	require.NoError(t, stranger.Transfer(ctx, db, mint, alice.Address(), program.Address(), 3))
	acc, err := owner.Lock(ctx, db, program.Address(), mint)
	require.NoError(t, err)
	assert.True(t, acc.Locked)
	assert.Equal(t, uint64(3), acc.Amount)

	_, err = owner.Lock(ctx, db, program.Address(), mint)
	assert.True(t, errors.ErrState.Is(err))

	err = stranger.Transfer(ctx, db, mint, alice.Address(), program.Address(), 1)
	assert.True(t, errors.ErrUnauthorized.Is(err))
	err = NewController(&harbortest.Auth{Signer: authority}).Issue(ctx, db, mint, program.Address(), 1)
	assert.True(t, errors.ErrUnauthorized.Is(err))

	require.NoError(t, owner.Transfer(ctx, db, mint, alice.Address(), program.Address(), 1))
	got, err := owner.Balance(db, program.Address(), mint)
	require.NoError(t, err)
	assert.Equal(t, uint64(4), got)
	got, err = owner.Balance(db, alice.Address(), mint)
	require.NoError(t, err)
	assert.Equal(t, uint64(96), got)
}

func TestIssue(t *testing.T) {
	db, mint, authority, alice := fixture(t)
	ctx := context.Background()

	err := NewController(&harbortest.Auth{Signer: alice}).Issue(ctx, db, mint, alice.Address(), 5)
	assert.True(t, errors.ErrUnauthorized.Is(err))

	ctrl := NewController(&harbortest.Auth{Signer: authority})
	require.NoError(t, ctrl.Issue(ctx, db, mint, alice.Address(), 5))

	m, err := ctrl.Mint(db, mint)
	require.NoError(t, err)
	assert.Equal(t, uint64(105), m.Supply)

	err = ctrl.Issue(ctx, db, mint, alice.Address(), ^uint64(0))
	assert.True(t, errors.ErrOverflow.Is(err))

	_, err = ctrl.CreateMint(db, authority.Address(), "USDC", 2)
	assert.True(t, errors.ErrDuplicate.Is(err))
	_, err = ctrl.CreateMint(db, authority.Address(), "usdc", 2)
	assert.True(t, errors.ErrInput.Is(err))
}

func TestHoldingAddressIsDeterministic(t *testing.T) {
	owner := harbortest.NewCondition().Address()
	a := HoldingAddress(owner, MintAddress("USDC"))
	b := HoldingAddress(owner, MintAddress("USDC"))
	c := HoldingAddress(owner, MintAddress("WSOL"))
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.NoError(t, a.Validate())
}
