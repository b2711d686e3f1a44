package harbortest

import (
	"context"
	"fmt"

	"github.com/safeharbor/harbor"
)

// Auth authenticates every condition it references. Signer and Signers are
// both considered, Signer is only a shortcut for the single signer case.
type Auth struct {
	Signer  harbor.Condition
	Signers []harbor.Condition
}

func (a *Auth) GetConditions(harbor.Context) []harbor.Condition {
	if a.Signer == nil {
		return a.Signers
	}
	conds := make([]harbor.Condition, 0, len(a.Signers)+1)
	conds = append(conds, a.Signers...)
	return append(conds, a.Signer)
}

func (a *Auth) HasAddress(ctx harbor.Context, addr harbor.Address) bool {
	for _, c := range a.GetConditions(ctx) {
		if addr.Equals(c.Address()) {
			return true
		}
	}
	return false
}

// CtxAuth keeps the authenticated conditions in the context, under Key.
type CtxAuth struct {
	Key string
}

func (a *CtxAuth) SetConditions(ctx harbor.Context, conds ...harbor.Condition) harbor.Context {
	return context.WithValue(ctx, a.Key, conds)
}

func (a *CtxAuth) GetConditions(ctx harbor.Context) []harbor.Condition {
	val := ctx.Value(a.Key)
	if val == nil {
		return nil
	}
	conds, ok := val.([]harbor.Condition)
	if !ok {
		panic(fmt.Sprintf("want []harbor.Condition, got %T", val))
	}
	return conds
}

func (a *CtxAuth) HasAddress(ctx harbor.Context, addr harbor.Address) bool {
	for _, c := range a.GetConditions(ctx) {
		if addr.Equals(c.Address()) {
			return true
		}
	}
	return false
}
