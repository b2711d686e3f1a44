package rent

import (
	"math"

	"github.com/safeharbor/harbor"
	"github.com/safeharbor/harbor/errors"
	"github.com/safeharbor/harbor/gconf"
	"github.com/safeharbor/harbor/orm"
	"github.com/safeharbor/harbor/x"
	"github.com/safeharbor/harbor/x/token"
)

const confPkg = "rent"

// PoolCondition owns the holding accounts all rent is paid into. Only this
// package authenticates it.
var PoolCondition = harbor.NewCondition("rent", "pool", []byte("pool"))

// Controller allocates and releases rent deposits.
type Controller struct {
	tokens   token.Controller
	deposits orm.Bucket
}

// NewController returns a controller that charges payers authenticated by
// auth.
func NewController(auth x.Authenticator) Controller {
	return Controller{
		tokens:   token.NewController(x.ChainAuth(auth, poolAuth{})),
		deposits: NewDepositBucket(),
	}
}

// Configuration loads the current rent configuration.
func (c Controller) Configuration(db gconf.ReadStore) (*Configuration, error) {
	var conf Configuration
	if err := gconf.Load(db, confPkg, &conf); err != nil {
		return nil, errors.Wrap(err, "rent configuration")
	}
	return &conf, nil
}

// Required returns how much rent an allocation of size bytes costs.
func (c Controller) Required(db gconf.ReadStore, size uint64) (uint64, error) {
	conf, err := c.Configuration(db)
	if err != nil {
		return 0, err
	}
	return required(conf, size)
}

func required(conf *Configuration, size uint64) (uint64, error) {
	if size > math.MaxUint64-conf.AccountOverhead {
		return 0, errors.Wrap(errors.ErrOverflow, "size")
	}
	bytes := size + conf.AccountOverhead
	if conf.LamportsPerByte != 0 && bytes > math.MaxUint64/conf.LamportsPerByte {
		return 0, errors.Wrap(errors.ErrOverflow, "rent")
	}
	return bytes * conf.LamportsPerByte, nil
}

// Allocate charges payer the rent of size bytes allocated at account.
func (c Controller) Allocate(ctx harbor.Context, db harbor.KVStore, payer, account harbor.Address, size uint64) (*Deposit, error) {
	conf, err := c.Configuration(db)
	if err != nil {
		return nil, err
	}
	amount, err := required(conf, size)
	if err != nil {
		return nil, err
	}
	switch has, err := c.deposits.Has(db, account); {
	case err != nil:
		return nil, err
	case has:
		return nil, errors.Wrapf(errors.ErrDuplicate, "rent of %s", account)
	}
	if amount > 0 {
		if err := c.tokens.Transfer(ctx, db, conf.Mint, payer, PoolCondition.Address(), amount); err != nil {
			return nil, errors.Wrap(err, "pay rent")
		}
	}
	dep := &Deposit{
		Metadata: &harbor.Metadata{Schema: 1},
		Payer:    payer,
		Amount:   amount,
		Size:     size,
		Mint:     conf.Mint,
	}
	if err := c.deposits.Put(db, account, dep); err != nil {
		return nil, errors.Wrap(err, "save deposit")
	}
	return dep, nil
}

// Release returns the whole deposit of account to recipient and forgets
// the allocation. It returns the refunded amount.
func (c Controller) Release(ctx harbor.Context, db harbor.KVStore, account, recipient harbor.Address) (uint64, error) {
	var dep Deposit
	if err := c.deposits.One(db, account, &dep); err != nil {
		return 0, errors.Wrapf(err, "rent of %s", account)
	}
	if dep.Amount > 0 {
		if err := c.tokens.Transfer(ctx, db, dep.Mint, PoolCondition.Address(), recipient, dep.Amount); err != nil {
			return 0, errors.Wrap(err, "refund rent")
		}
	}
	if err := c.deposits.Delete(db, account); err != nil {
		return 0, err
	}
	return dep.Amount, nil
}

// Deposit loads the deposit of an allocated address.
func (c Controller) Deposit(db harbor.ReadOnlyKVStore, account harbor.Address) (*Deposit, error) {
	var dep Deposit
	if err := c.deposits.One(db, account, &dep); err != nil {
		return nil, err
	}
	return &dep, nil
}

type poolAuth struct{}

func (poolAuth) GetConditions(harbor.Context) []harbor.Condition {
	return []harbor.Condition{PoolCondition}
}

func (poolAuth) HasAddress(_ harbor.Context, addr harbor.Address) bool {
	return PoolCondition.Address().Equals(addr)
}
