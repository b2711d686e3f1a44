package escrow

import (
	"math"

	"github.com/safeharbor/harbor"
	"github.com/safeharbor/harbor/errors"
	"github.com/safeharbor/harbor/orm"
	"github.com/safeharbor/harbor/x"
	"github.com/safeharbor/harbor/x/rent"
	"github.com/safeharbor/harbor/x/token"
)

const (
	createEscrowCost = 300
	takeEscrowCost   = 200
	refundEscrowCost = 100
)

// RegisterRoutes registers the escrow handlers. Vault transfers are
// authorized by auth and by the condition of the escrow being closed.
func RegisterRoutes(r harbor.Registry, auth x.Authenticator) {
	tokens := token.NewController(x.ChainAuth(auth, Authenticate{}))
	rents := rent.NewController(auth)
	r.Handle(pathCreateMsg, NewCreateHandler(auth, tokens, rents))
	r.Handle(pathTakeMsg, NewTakeHandler(auth, tokens, rents))
	r.Handle(pathRefundMsg, NewRefundHandler(auth, tokens, rents))
}

// RegisterQuery exposes escrows under "/escrows" and "/escrows/maker".
func RegisterQuery(qr harbor.QueryRouter) {
	NewBucket().Register("escrows", qr)
}

// CreateHandler opens escrows.
type CreateHandler struct {
	auth   x.Authenticator
	tokens token.Controller
	rents  rent.Controller
	bucket orm.Bucket
}

var _ harbor.Handler = CreateHandler{}

func NewCreateHandler(auth x.Authenticator, tokens token.Controller, rents rent.Controller) CreateHandler {
	return CreateHandler{
		auth:   auth,
		tokens: tokens,
		rents:  rents,
		bucket: NewBucket(),
	}
}

func (h CreateHandler) Check(ctx harbor.Context, db harbor.KVStore, tx harbor.Tx) (*harbor.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &harbor.CheckResult{GasAllocated: createEscrowCost}, nil
}

func (h CreateHandler) Deliver(ctx harbor.Context, db harbor.KVStore, tx harbor.Tx) (*harbor.DeliverResult, error) {
	msg, escrow, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	record, err := escrow.Condition()
	if err != nil {
		return nil, errors.Wrap(err, "record condition")
	}
	addr := record.Address()
	vault := VaultAddress(addr, escrow.MintDeposit)

	if _, err := h.rents.Allocate(ctx, db, escrow.Maker, addr, RecordSize); err != nil {
		return nil, errors.Wrap(err, "record rent")
	}
	if _, err := h.rents.Allocate(ctx, db, escrow.Maker, vault, token.AccountSize); err != nil {
		return nil, errors.Wrap(err, "vault rent")
	}
	if err := h.bucket.Put(db, addr, escrow); err != nil {
		return nil, errors.Wrap(err, "save escrow")
	}

	// The record signs for its own vault, so the maker may fund it.
	ctx = withRecord(ctx, record)
	stale, err := h.tokens.Lock(ctx, db, addr, escrow.MintDeposit)
	if err != nil {
		return nil, errors.Wrap(err, "open vault")
	}
	// Funds sent to the vault address before it existed belong to the maker.
	if stale.Amount > 0 {
		if err := h.tokens.Transfer(ctx, db, escrow.MintDeposit, addr, escrow.Maker, stale.Amount); err != nil {
			return nil, errors.Wrap(err, "sweep vault")
		}
	}
	if err := h.tokens.Transfer(ctx, db, escrow.MintDeposit, escrow.Maker, addr, msg.DepositAmount); err != nil {
		return nil, errors.Wrap(err, "deposit")
	}

	harbor.GetLogger(ctx).Info("escrow created",
		"escrow", addr,
		"maker", escrow.Maker,
		"seed", escrow.Seed,
		"deposit", msg.DepositAmount,
		"receive", escrow.ReceiveAmount)
	return &harbor.DeliverResult{Data: addr}, nil
}

// validate checks everything that can fail before any state is modified,
// so that a failing create never reaches the store.
func (h CreateHandler) validate(ctx harbor.Context, db harbor.KVStore, tx harbor.Tx) (*CreateMsg, *Escrow, error) {
	var msg CreateMsg
	if err := harbor.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasAddress(ctx, msg.Maker) {
		return nil, nil, errors.Wrap(ErrUnauthorized, "maker signature required")
	}
	if msg.MakerDepositAccount != nil && !msg.MakerDepositAccount.Equals(token.HoldingAddress(msg.Maker, msg.MintDeposit)) {
		return nil, nil, errors.Wrap(errors.ErrInput, "maker deposit account mismatch")
	}

	addr, bump, err := RecordAddress(msg.Maker, msg.Seed)
	if err != nil {
		return nil, nil, errors.Wrap(err, "record address")
	}
	switch has, err := h.bucket.Has(db, addr); {
	case err != nil:
		return nil, nil, err
	case has:
		return nil, nil, errors.Wrapf(ErrDuplicateOffer, "seed %d", msg.Seed)
	}
	if _, err := h.tokens.Mint(db, msg.MintDeposit); err != nil {
		return nil, nil, errors.Wrap(err, "deposit mint")
	}
	if _, err := h.tokens.Mint(db, msg.MintReceive); err != nil {
		return nil, nil, errors.Wrap(err, "receive mint")
	}
	switch acc, err := h.tokens.Account(db, addr, msg.MintDeposit); {
	case err == nil && acc.Locked:
		return nil, nil, errors.Wrap(ErrDuplicateOffer, "vault already in use")
	case err != nil && !errors.ErrNotFound.Is(err):
		return nil, nil, err
	}
	if err := h.checkFunds(db, &msg); err != nil {
		return nil, nil, err
	}

	escrow := &Escrow{
		Metadata:      &harbor.Metadata{Schema: 1},
		Seed:          msg.Seed,
		Maker:         msg.Maker,
		MintDeposit:   msg.MintDeposit,
		MintReceive:   msg.MintReceive,
		ReceiveAmount: msg.ReceiveAmount,
		Bump:          uint32(bump),
	}
	if err := escrow.Validate(); err != nil {
		return nil, nil, err
	}
	return &msg, escrow, nil
}

// checkFunds ensures the maker can pay both the deposit and the rent of
// the record and the vault.
func (h CreateHandler) checkFunds(db harbor.KVStore, msg *CreateMsg) error {
	conf, err := h.rents.Configuration(db)
	if err != nil {
		return err
	}
	fee, err := h.rents.Required(db, RecordSize)
	if err != nil {
		return err
	}
	vaultRent, err := h.rents.Required(db, token.AccountSize)
	if err != nil {
		return err
	}
	if fee > math.MaxUint64-vaultRent {
		return errors.Wrap(errors.ErrOverflow, "rent")
	}
	fee += vaultRent

	deposit := msg.DepositAmount
	if conf.Mint.Equals(msg.MintDeposit) {
		if deposit > math.MaxUint64-fee {
			return errors.Wrap(errors.ErrOverflow, "deposit and rent")
		}
		deposit += fee
		fee = 0
	}
	balance, err := h.tokens.Balance(db, msg.Maker, msg.MintDeposit)
	if err != nil {
		return err
	}
	if balance < deposit {
		return errors.Wrapf(ErrInsufficientFunds, "balance %d, deposit %d", balance, deposit)
	}
	if fee == 0 {
		return nil
	}
	balance, err = h.tokens.Balance(db, msg.Maker, conf.Mint)
	if err != nil {
		return err
	}
	if balance < fee {
		return errors.Wrapf(ErrInsufficientFunds, "balance %d, rent %d", balance, fee)
	}
	return nil
}

// TakeHandler fulfills escrows.
type TakeHandler struct {
	auth   x.Authenticator
	tokens token.Controller
	rents  rent.Controller
	bucket orm.Bucket
}

var _ harbor.Handler = TakeHandler{}

func NewTakeHandler(auth x.Authenticator, tokens token.Controller, rents rent.Controller) TakeHandler {
	return TakeHandler{
		auth:   auth,
		tokens: tokens,
		rents:  rents,
		bucket: NewBucket(),
	}
}

func (h TakeHandler) Check(ctx harbor.Context, db harbor.KVStore, tx harbor.Tx) (*harbor.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &harbor.CheckResult{GasAllocated: takeEscrowCost}, nil
}

func (h TakeHandler) Deliver(ctx harbor.Context, db harbor.KVStore, tx harbor.Tx) (*harbor.DeliverResult, error) {
	msg, escrow, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.tokens.Transfer(ctx, db, escrow.MintReceive, msg.Taker, escrow.Maker, escrow.ReceiveAmount); err != nil {
		return nil, errors.Wrap(err, "pay maker")
	}
	paid, err := closeEscrow(ctx, db, h.tokens, h.rents, h.bucket, msg.Escrow, escrow, msg.Taker)
	if err != nil {
		return nil, err
	}

	harbor.GetLogger(ctx).Info("escrow taken",
		"escrow", msg.Escrow,
		"maker", escrow.Maker,
		"taker", msg.Taker,
		"paid", escrow.ReceiveAmount,
		"received", paid)
	return &harbor.DeliverResult{}, nil
}

func (h TakeHandler) validate(ctx harbor.Context, db harbor.KVStore, tx harbor.Tx) (*TakeMsg, *Escrow, error) {
	var msg TakeMsg
	if err := harbor.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasAddress(ctx, msg.Taker) {
		return nil, nil, errors.Wrap(ErrUnauthorized, "taker signature required")
	}
	escrow, err := loadEscrow(db, h.bucket, msg.Escrow)
	if err != nil {
		return nil, nil, err
	}
	accounts := []struct {
		name  string
		given harbor.Address
		want  harbor.Address
	}{
		{"taker receive account", msg.TakerReceiveAccount, token.HoldingAddress(msg.Taker, escrow.MintReceive)},
		{"taker deposit account", msg.TakerDepositAccount, token.HoldingAddress(msg.Taker, escrow.MintDeposit)},
		{"maker receive account", msg.MakerReceiveAccount, token.HoldingAddress(escrow.Maker, escrow.MintReceive)},
	}
	for _, a := range accounts {
		if a.given != nil && !a.given.Equals(a.want) {
			return nil, nil, errors.Wrapf(errors.ErrInput, "%s mismatch", a.name)
		}
	}
	balance, err := h.tokens.Balance(db, msg.Taker, escrow.MintReceive)
	if err != nil {
		return nil, nil, err
	}
	if balance < escrow.ReceiveAmount {
		return nil, nil, errors.Wrapf(ErrInsufficientFunds, "balance %d, price %d", balance, escrow.ReceiveAmount)
	}
	return &msg, escrow, nil
}

// RefundHandler cancels escrows.
type RefundHandler struct {
	auth   x.Authenticator
	tokens token.Controller
	rents  rent.Controller
	bucket orm.Bucket
}

var _ harbor.Handler = RefundHandler{}

func NewRefundHandler(auth x.Authenticator, tokens token.Controller, rents rent.Controller) RefundHandler {
	return RefundHandler{
		auth:   auth,
		tokens: tokens,
		rents:  rents,
		bucket: NewBucket(),
	}
}

func (h RefundHandler) Check(ctx harbor.Context, db harbor.KVStore, tx harbor.Tx) (*harbor.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &harbor.CheckResult{GasAllocated: refundEscrowCost}, nil
}

func (h RefundHandler) Deliver(ctx harbor.Context, db harbor.KVStore, tx harbor.Tx) (*harbor.DeliverResult, error) {
	msg, escrow, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	refunded, err := closeEscrow(ctx, db, h.tokens, h.rents, h.bucket, msg.Escrow, escrow, escrow.Maker)
	if err != nil {
		return nil, err
	}

	harbor.GetLogger(ctx).Info("escrow refunded",
		"escrow", msg.Escrow,
		"maker", escrow.Maker,
		"refunded", refunded)
	return &harbor.DeliverResult{}, nil
}

func (h RefundHandler) validate(ctx harbor.Context, db harbor.KVStore, tx harbor.Tx) (*RefundMsg, *Escrow, error) {
	var msg RefundMsg
	if err := harbor.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	escrow, err := loadEscrow(db, h.bucket, msg.Escrow)
	if err != nil {
		return nil, nil, err
	}
	if !msg.Maker.Equals(escrow.Maker) || !h.auth.HasAddress(ctx, escrow.Maker) {
		return nil, nil, errors.Wrap(ErrUnauthorized, "only the maker can refund")
	}
	if msg.MakerDepositAccount != nil && !msg.MakerDepositAccount.Equals(token.HoldingAddress(escrow.Maker, escrow.MintDeposit)) {
		return nil, nil, errors.Wrap(errors.ErrInput, "maker deposit account mismatch")
	}
	return &msg, escrow, nil
}

func loadEscrow(db harbor.ReadOnlyKVStore, bucket orm.Bucket, addr harbor.Address) (*Escrow, error) {
	var escrow Escrow
	switch err := bucket.One(db, addr, &escrow); {
	case errors.ErrNotFound.Is(err):
		return nil, errors.Wrapf(ErrOfferNotFound, "escrow %s", addr)
	case err != nil:
		return nil, err
	}
	return &escrow, nil
}
