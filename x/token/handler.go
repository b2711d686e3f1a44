package token

import (
	"github.com/safeharbor/harbor"
	"github.com/safeharbor/harbor/errors"
	"github.com/safeharbor/harbor/x"
)

const (
	createMintCost = 100
	issueCost      = 50
	transferCost   = 50
)

// RegisterRoutes registers all token handlers.
func RegisterRoutes(r harbor.Registry, auth x.Authenticator, ctrl BaseController) {
	r.Handle(pathCreateMintMsg, CreateMintHandler{auth: auth, ctrl: ctrl})
	r.Handle(pathIssueMsg, IssueHandler{ctrl: ctrl})
	r.Handle(pathTransferMsg, TransferHandler{ctrl: ctrl})
}

// RegisterQuery exposes "/mints", "/mints/authority", "/accounts" and
// "/accounts/owner".
func RegisterQuery(qr harbor.QueryRouter) {
	NewMintBucket().Register("mints", qr)
	NewAccountBucket().Register("accounts", qr)
}

// CreateMintHandler registers new mints.
type CreateMintHandler struct {
	auth x.Authenticator
	ctrl BaseController
}

var _ harbor.Handler = CreateMintHandler{}

func (h CreateMintHandler) Check(ctx harbor.Context, db harbor.KVStore, tx harbor.Tx) (*harbor.CheckResult, error) {
	if _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &harbor.CheckResult{GasAllocated: createMintCost}, nil
}

func (h CreateMintHandler) Deliver(ctx harbor.Context, db harbor.KVStore, tx harbor.Tx) (*harbor.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	m, err := h.ctrl.CreateMint(db, msg.Authority, msg.Symbol, msg.Decimals)
	if err != nil {
		return nil, err
	}
	return &harbor.DeliverResult{Data: m.Address()}, nil
}

func (h CreateMintHandler) validate(ctx harbor.Context, tx harbor.Tx) (*CreateMintMsg, error) {
	var msg CreateMintMsg
	if err := harbor.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasAddress(ctx, msg.Authority) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "authority signature missing")
	}
	return &msg, nil
}

// IssueHandler creates new tokens.
type IssueHandler struct {
	ctrl Controller
}

var _ harbor.Handler = IssueHandler{}

func (h IssueHandler) Check(ctx harbor.Context, db harbor.KVStore, tx harbor.Tx) (*harbor.CheckResult, error) {
	var msg IssueMsg
	if err := harbor.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := h.ctrl.Issue(ctx, db, msg.Mint, msg.Recipient, msg.Amount); err != nil {
		return nil, err
	}
	return &harbor.CheckResult{GasAllocated: issueCost}, nil
}

func (h IssueHandler) Deliver(ctx harbor.Context, db harbor.KVStore, tx harbor.Tx) (*harbor.DeliverResult, error) {
	var msg IssueMsg
	if err := harbor.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := h.ctrl.Issue(ctx, db, msg.Mint, msg.Recipient, msg.Amount); err != nil {
		return nil, err
	}
	return &harbor.DeliverResult{}, nil
}

// TransferHandler moves tokens between owners.
type TransferHandler struct {
	ctrl Controller
}

var _ harbor.Handler = TransferHandler{}

func (h TransferHandler) Check(ctx harbor.Context, db harbor.KVStore, tx harbor.Tx) (*harbor.CheckResult, error) {
	var msg TransferMsg
	if err := harbor.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	// The check state follows the balances so that a second spend of
	// the same funds is rejected before it reaches a block.
	if err := h.ctrl.Transfer(ctx, db, msg.Mint, msg.Source, msg.Destination, msg.Amount); err != nil {
		return nil, err
	}
	return &harbor.CheckResult{GasAllocated: transferCost}, nil
}

func (h TransferHandler) Deliver(ctx harbor.Context, db harbor.KVStore, tx harbor.Tx) (*harbor.DeliverResult, error) {
	var msg TransferMsg
	if err := harbor.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := h.ctrl.Transfer(ctx, db, msg.Mint, msg.Source, msg.Destination, msg.Amount); err != nil {
		return nil, err
	}
	return &harbor.DeliverResult{Log: msg.Memo}, nil
}
