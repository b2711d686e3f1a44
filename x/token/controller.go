package token

import (
	"math"

	"github.com/safeharbor/harbor"
	"github.com/safeharbor/harbor/errors"
	"github.com/safeharbor/harbor/orm"
	"github.com/safeharbor/harbor/x"
)

// Controller is the asset transfer primitive other extensions build on.
// Every method that takes funds out of an account requires the account
// owner to be authenticated.
type Controller interface {
	// Transfer moves amount of mint from the holding account of from to
	// the holding account of to. The destination account is created if
	// it does not exist.
	Transfer(ctx harbor.Context, db harbor.KVStore, mint, from, to harbor.Address, amount uint64) error
	// OpenAccount creates an empty holding account. It fails with
	// ErrDuplicate if the account exists.
	OpenAccount(db harbor.KVStore, owner, mint harbor.Address) (*Account, error)
	// Lock marks the holding account of owner as program controlled,
	// creating it if needed. The owner must be authenticated. Any balance
	// the account held before is kept.
	Lock(ctx harbor.Context, db harbor.KVStore, owner, mint harbor.Address) (*Account, error)
	// CloseAccount deletes an empty holding account.
	CloseAccount(ctx harbor.Context, db harbor.KVStore, owner, mint harbor.Address) error
	// Account loads a holding account.
	Account(db harbor.ReadOnlyKVStore, owner, mint harbor.Address) (*Account, error)
	// Balance returns the balance of a holding account, zero if the
	// account does not exist.
	Balance(db harbor.ReadOnlyKVStore, owner, mint harbor.Address) (uint64, error)
	// Issue creates new tokens. Only the mint authority may issue.
	Issue(ctx harbor.Context, db harbor.KVStore, mint, to harbor.Address, amount uint64) error
	// Mint loads a mint.
	Mint(db harbor.ReadOnlyKVStore, mint harbor.Address) (*Mint, error)
}

// BaseController is the Controller implementation backed by the mint and
// account buckets.
type BaseController struct {
	auth     x.Authenticator
	mints    orm.Bucket
	accounts orm.Bucket
}

var _ Controller = BaseController{}

// NewController returns a controller that authenticates account owners
// and mint authorities with auth.
func NewController(auth x.Authenticator) BaseController {
	return BaseController{
		auth:     auth,
		mints:    NewMintBucket(),
		accounts: NewAccountBucket(),
	}
}

func (c BaseController) Transfer(ctx harbor.Context, db harbor.KVStore, mint, from, to harbor.Address, amount uint64) error {
	if amount == 0 {
		return errors.Wrap(errors.ErrInvalidAmount, "transfer amount must be positive")
	}
	src, err := c.Account(db, from, mint)
	if err != nil {
		return errors.Wrap(err, "source")
	}
	if !c.auth.HasAddress(ctx, src.Owner) {
		return errors.Wrapf(errors.ErrUnauthorized, "owner %s did not authorize", src.Owner)
	}
	if src.Amount < amount {
		return errors.Wrapf(errors.ErrInsufficientAmount, "balance %d, want %d", src.Amount, amount)
	}
	if from.Equals(to) {
		return nil
	}

	dst, err := c.Account(db, to, mint)
	switch {
	case errors.ErrNotFound.Is(err):
		dst = newAccount(to, mint)
	case err != nil:
		return errors.Wrap(err, "destination")
	}
	if err := c.canCredit(ctx, dst); err != nil {
		return err
	}
	if dst.Amount > math.MaxUint64-amount {
		return errors.Wrap(errors.ErrOverflow, "destination balance")
	}

	src.Amount -= amount
	dst.Amount += amount
	if err := c.accounts.Put(db, src.Address(), src); err != nil {
		return errors.Wrap(err, "save source")
	}
	if err := c.accounts.Put(db, dst.Address(), dst); err != nil {
		return errors.Wrap(err, "save destination")
	}
	return nil
}

func (c BaseController) OpenAccount(db harbor.KVStore, owner, mint harbor.Address) (*Account, error) {
	if _, err := c.Mint(db, mint); err != nil {
		return nil, err
	}
	acc := newAccount(owner, mint)
	switch has, err := c.accounts.Has(db, acc.Address()); {
	case err != nil:
		return nil, err
	case has:
		return nil, errors.Wrapf(errors.ErrDuplicate, "account %s", acc.Address())
	}
	if err := c.accounts.Put(db, acc.Address(), acc); err != nil {
		return nil, errors.Wrap(err, "save account")
	}
	return acc, nil
}

func (c BaseController) Lock(ctx harbor.Context, db harbor.KVStore, owner, mint harbor.Address) (*Account, error) {
	if !c.auth.HasAddress(ctx, owner) {
		return nil, errors.Wrapf(errors.ErrUnauthorized, "owner %s did not authorize", owner)
	}
	if _, err := c.Mint(db, mint); err != nil {
		return nil, err
	}
	acc, err := c.Account(db, owner, mint)
	switch {
	case errors.ErrNotFound.Is(err):
		acc = newAccount(owner, mint)
	case err != nil:
		return nil, err
	case acc.Locked:
		return nil, errors.Wrapf(errors.ErrState, "account %s already locked", acc.Address())
	}
	acc.Locked = true
	if err := c.accounts.Put(db, acc.Address(), acc); err != nil {
		return nil, errors.Wrap(err, "save account")
	}
	return acc, nil
}

// canCredit refuses funds for a locked account unless its owner signed.
func (c BaseController) canCredit(ctx harbor.Context, acc *Account) error {
	if acc.Locked && !c.auth.HasAddress(ctx, acc.Owner) {
		return errors.Wrapf(errors.ErrUnauthorized, "account %s is locked", acc.Address())
	}
	return nil
}

func (c BaseController) CloseAccount(ctx harbor.Context, db harbor.KVStore, owner, mint harbor.Address) error {
	acc, err := c.Account(db, owner, mint)
	if err != nil {
		return err
	}
	if !c.auth.HasAddress(ctx, acc.Owner) {
		return errors.Wrapf(errors.ErrUnauthorized, "owner %s did not authorize", acc.Owner)
	}
	if acc.Amount != 0 {
		return errors.Wrapf(errors.ErrState, "account holds %d", acc.Amount)
	}
	return c.accounts.Delete(db, acc.Address())
}

func (c BaseController) Account(db harbor.ReadOnlyKVStore, owner, mint harbor.Address) (*Account, error) {
	var acc Account
	if err := c.accounts.One(db, HoldingAddress(owner, mint), &acc); err != nil {
		return nil, errors.Wrapf(err, "account of %s", owner)
	}
	return &acc, nil
}

func (c BaseController) Balance(db harbor.ReadOnlyKVStore, owner, mint harbor.Address) (uint64, error) {
	acc, err := c.Account(db, owner, mint)
	switch {
	case err == nil:
		return acc.Amount, nil
	case errors.ErrNotFound.Is(err):
		return 0, nil
	default:
		return 0, err
	}
}

func (c BaseController) Issue(ctx harbor.Context, db harbor.KVStore, mint, to harbor.Address, amount uint64) error {
	if amount == 0 {
		return errors.Wrap(errors.ErrInvalidAmount, "issue amount must be positive")
	}
	m, err := c.Mint(db, mint)
	if err != nil {
		return err
	}
	if !c.auth.HasAddress(ctx, m.Authority) {
		return errors.Wrap(errors.ErrUnauthorized, "mint authority did not sign")
	}
	switch acc, err := c.Account(db, to, mint); {
	case err == nil:
		if err := c.canCredit(ctx, acc); err != nil {
			return err
		}
	case !errors.ErrNotFound.Is(err):
		return err
	}
	return c.issue(db, m, to, amount)
}

// issue credits new tokens without any authentication. Genesis uses it
// directly.
func (c BaseController) issue(db harbor.KVStore, m *Mint, to harbor.Address, amount uint64) error {
	if m.Supply > math.MaxUint64-amount {
		return errors.Wrap(errors.ErrOverflow, "mint supply")
	}
	dst, err := c.Account(db, to, m.Address())
	switch {
	case errors.ErrNotFound.Is(err):
		dst = newAccount(to, m.Address())
	case err != nil:
		return err
	}
	m.Supply += amount
	dst.Amount += amount
	if err := c.mints.Put(db, m.Address(), m); err != nil {
		return errors.Wrap(err, "save mint")
	}
	if err := c.accounts.Put(db, dst.Address(), dst); err != nil {
		return errors.Wrap(err, "save account")
	}
	return nil
}

func (c BaseController) Mint(db harbor.ReadOnlyKVStore, mint harbor.Address) (*Mint, error) {
	var m Mint
	if err := c.mints.One(db, mint, &m); err != nil {
		return nil, errors.Wrapf(err, "mint %s", mint)
	}
	return &m, nil
}

// CreateMint saves a new mint with a zero supply.
func (c BaseController) CreateMint(db harbor.KVStore, authority harbor.Address, symbol string, decimals uint32) (*Mint, error) {
	m := &Mint{
		Metadata:  &harbor.Metadata{Schema: 1},
		Authority: authority,
		Symbol:    symbol,
		Decimals:  decimals,
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	switch has, err := c.mints.Has(db, m.Address()); {
	case err != nil:
		return nil, err
	case has:
		return nil, errors.Wrapf(errors.ErrDuplicate, "mint %s", symbol)
	}
	if err := c.mints.Put(db, m.Address(), m); err != nil {
		return nil, errors.Wrap(err, "save mint")
	}
	return m, nil
}

func newAccount(owner, mint harbor.Address) *Account {
	return &Account{
		Metadata: &harbor.Metadata{Schema: 1},
		Owner:    owner,
		Mint:     mint,
	}
}
