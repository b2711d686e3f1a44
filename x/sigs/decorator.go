package sigs

import (
	"context"

	"github.com/safeharbor/harbor"
	"github.com/safeharbor/harbor/errors"
	"github.com/safeharbor/harbor/x"
)

const signatureVerifyCost = 500

// RegisterQuery registers the signer bucket under "/auth".
func RegisterQuery(qr harbor.QueryRouter) {
	NewBucket().Register("auth", qr)
}

// Decorator verifies the signatures and adds the signers to the context.
type Decorator struct {
	allowMissingSigs bool
}

var _ harbor.Decorator = Decorator{}

// NewDecorator returns a decorator that requires at least one signature.
func NewDecorator() Decorator {
	return Decorator{}
}

// AllowMissingSigs lets unsigned transactions pass.
func (d Decorator) AllowMissingSigs() Decorator {
	d.allowMissingSigs = true
	return d
}

func (d Decorator) Check(ctx harbor.Context, store harbor.KVStore, tx harbor.Tx, next harbor.Checker) (*harbor.CheckResult, error) {
	ctx, n, err := d.withSigners(ctx, store, tx)
	if err != nil {
		return nil, err
	}
	res, err := next.Check(ctx, store, tx)
	if err != nil {
		return nil, err
	}
	res.GasAllocated += int64(n * signatureVerifyCost)
	return res, nil
}

func (d Decorator) Deliver(ctx harbor.Context, store harbor.KVStore, tx harbor.Tx, next harbor.Deliverer) (*harbor.DeliverResult, error) {
	ctx, _, err := d.withSigners(ctx, store, tx)
	if err != nil {
		return nil, err
	}
	return next.Deliver(ctx, store, tx)
}

func (d Decorator) withSigners(ctx harbor.Context, store harbor.KVStore, tx harbor.Tx) (harbor.Context, int, error) {
	var signers []harbor.Condition
	if stx, ok := tx.(SignedTx); ok {
		var err error
		signers, err = VerifyTxSignatures(store, stx, harbor.GetChainID(ctx))
		if err != nil {
			return nil, 0, errors.Wrap(err, "cannot verify signatures")
		}
	}
	if len(signers) == 0 && !d.allowMissingSigs {
		return nil, 0, errors.Wrap(errors.ErrUnauthorized, "missing signature")
	}
	return context.WithValue(ctx, contextKeySigners, signers), len(signers), nil
}

type contextKey int

const contextKeySigners contextKey = iota

// Authenticate returns the conditions of the verified signers.
type Authenticate struct{}

var _ x.Authenticator = Authenticate{}

func (Authenticate) GetConditions(ctx harbor.Context) []harbor.Condition {
	val, _ := ctx.Value(contextKeySigners).([]harbor.Condition)
	return val
}

func (a Authenticate) HasAddress(ctx harbor.Context, addr harbor.Address) bool {
	return x.HasConditionAddress(a.GetConditions(ctx), addr)
}
