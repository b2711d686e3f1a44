package utils

import (
	"github.com/safeharbor/harbor"
	"github.com/tendermint/tendermint/libs/common"
)

// ActionKey is the tag key ActionTagger uses.
const ActionKey = "action"

// ActionTagger tags every delivered transaction with `action = msg.Path()`
// so clients can subscribe to, for example, all escrow/take events.
type ActionTagger struct{}

var _ harbor.Decorator = ActionTagger{}

func NewActionTagger() ActionTagger {
	return ActionTagger{}
}

// Check just passes the request along.
func (ActionTagger) Check(ctx harbor.Context, db harbor.KVStore, tx harbor.Tx, next harbor.Checker) (*harbor.CheckResult, error) {
	return next.Check(ctx, db, tx)
}

// Deliver appends the tag to a successful result.
func (ActionTagger) Deliver(ctx harbor.Context, db harbor.KVStore, tx harbor.Tx, next harbor.Deliverer) (*harbor.DeliverResult, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, err
	}
	res, err := next.Deliver(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	res.Tags = append(res.Tags, common.KVPair{
		Key:   []byte(ActionKey),
		Value: []byte(msg.Path()),
	})
	return res, nil
}
