package harbortest

import "github.com/safeharbor/harbor"

// Decorator counts the calls and fails with CheckErr or DeliverErr before
// reaching the wrapped handler, when set.
type Decorator struct {
	checkCall   int
	CheckErr    error
	deliverCall int
	DeliverErr  error
}

var _ harbor.Decorator = (*Decorator)(nil)

func (d *Decorator) Check(ctx harbor.Context, db harbor.KVStore, tx harbor.Tx, next harbor.Checker) (*harbor.CheckResult, error) {
	d.checkCall++
	if d.CheckErr != nil {
		return nil, d.CheckErr
	}
	return next.Check(ctx, db, tx)
}

func (d *Decorator) Deliver(ctx harbor.Context, db harbor.KVStore, tx harbor.Tx, next harbor.Deliverer) (*harbor.DeliverResult, error) {
	d.deliverCall++
	if d.DeliverErr != nil {
		return nil, d.DeliverErr
	}
	return next.Deliver(ctx, db, tx)
}

func (d *Decorator) CheckCallCount() int   { return d.checkCall }
func (d *Decorator) DeliverCallCount() int { return d.deliverCall }
func (d *Decorator) CallCount() int        { return d.checkCall + d.deliverCall }

// Decorate wraps a handler with a single decorator.
func Decorate(h harbor.Handler, d harbor.Decorator) harbor.Handler {
	return decorated{h: h, d: d}
}

type decorated struct {
	h harbor.Handler
	d harbor.Decorator
}

func (x decorated) Check(ctx harbor.Context, db harbor.KVStore, tx harbor.Tx) (*harbor.CheckResult, error) {
	return x.d.Check(ctx, db, tx, x.h)
}

func (x decorated) Deliver(ctx harbor.Context, db harbor.KVStore, tx harbor.Tx) (*harbor.DeliverResult, error) {
	return x.d.Deliver(ctx, db, tx, x.h)
}
