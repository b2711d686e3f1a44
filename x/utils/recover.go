package utils

import (
	"github.com/safeharbor/harbor"
	"github.com/safeharbor/harbor/errors"
)

// Recovery turns panics in the wrapped handler into ErrPanic errors.
type Recovery struct{}

var _ harbor.Decorator = Recovery{}

func NewRecovery() Recovery {
	return Recovery{}
}

func (Recovery) Check(ctx harbor.Context, store harbor.KVStore, tx harbor.Tx, next harbor.Checker) (_ *harbor.CheckResult, err error) {
	defer errors.Recover(&err)
	return next.Check(ctx, store, tx)
}

func (Recovery) Deliver(ctx harbor.Context, store harbor.KVStore, tx harbor.Tx, next harbor.Deliverer) (_ *harbor.DeliverResult, err error) {
	defer errors.Recover(&err)
	return next.Deliver(ctx, store, tx)
}
