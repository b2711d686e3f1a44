package app

import (
	"reflect"

	"github.com/safeharbor/harbor"
)

// Decorators holds a chain of decorators, not yet resolved by a Handler.
type Decorators struct {
	chain []harbor.Decorator
}

/*
ChainDecorators takes a chain of decorators, and upon adding a final
Handler (often a Router), returns a Handler that will execute this whole
stack.

  app.ChainDecorators(
    utils.NewLogging(),
    utils.NewRecovery(),
    sigs.NewDecorator(),
    utils.NewSavepoint().OnDeliver(),
  ).WithHandler(
    myapp.NewRouter(),
  )
*/
func ChainDecorators(chain ...harbor.Decorator) Decorators {
	return Decorators{}.Chain(chain...)
}

// Chain allows us to keep adding more Decorators to the chain. Nil
// decorators are skipped.
func (d Decorators) Chain(chain ...harbor.Decorator) Decorators {
	newChain := make([]harbor.Decorator, 0, len(d.chain)+len(chain))
	newChain = append(newChain, d.chain...)
	for _, dec := range chain {
		if isNil(dec) {
			continue
		}
		newChain = append(newChain, dec)
	}
	return Decorators{newChain}
}

func isNil(d harbor.Decorator) bool {
	if d == nil {
		return true
	}
	v := reflect.ValueOf(d)
	return v.Kind() == reflect.Ptr && v.IsNil()
}

// WithHandler resolves the stack and returns a concrete Handler that will
// pass through the chain of decorators before calling the final Handler.
func (d Decorators) WithHandler(h harbor.Handler) harbor.Handler {
	// the first decorator of the chain is the outermost one
	for i := len(d.chain) - 1; i >= 0; i-- {
		h = step{d: d.chain[i], next: h}
	}
	return h
}

// step captures one step executing a decorator around a specific Handler.
type step struct {
	d    harbor.Decorator
	next harbor.Handler
}

var _ harbor.Handler = step{}

func (s step) Check(ctx harbor.Context, store harbor.KVStore, tx harbor.Tx) (*harbor.CheckResult, error) {
	return s.d.Check(ctx, store, tx, s.next)
}

func (s step) Deliver(ctx harbor.Context, store harbor.KVStore, tx harbor.Tx) (*harbor.DeliverResult, error) {
	return s.d.Deliver(ctx, store, tx, s.next)
}
