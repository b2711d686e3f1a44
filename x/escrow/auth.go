package escrow

import (
	"context"

	"github.com/safeharbor/harbor"
	"github.com/safeharbor/harbor/x"
)

type contextKey int

const contextKeyRecord contextKey = iota

// withRecord grants the record condition to everything run with the
// returned context.
func withRecord(ctx harbor.Context, cond harbor.Condition) harbor.Context {
	return context.WithValue(ctx, contextKeyRecord, cond)
}

// Authenticate reveals the condition of the escrow record that is being
// created or closed. Only this package can set it, which makes the record
// and its locked vault controllable by this package alone.
type Authenticate struct{}

var _ x.Authenticator = Authenticate{}

func (Authenticate) GetConditions(ctx harbor.Context) []harbor.Condition {
	cond, ok := ctx.Value(contextKeyRecord).(harbor.Condition)
	if !ok {
		return nil
	}
	return []harbor.Condition{cond}
}

func (a Authenticate) HasAddress(ctx harbor.Context, addr harbor.Address) bool {
	return x.HasConditionAddress(a.GetConditions(ctx), addr)
}
