package app

import (
	"context"

	"github.com/safeharbor/harbor"
	"github.com/safeharbor/harbor/errors"
	abci "github.com/tendermint/tendermint/abci/types"
)

// BaseApp executes transactions on top of StoreApp. Every transaction is
// decoded, tagged in the logger context and passed to a single handler,
// usually the decorator stack wrapping the router.
type BaseApp struct {
	*StoreApp
	decoder harbor.TxDecoder
	handler harbor.Handler
	debug   bool
}

var _ abci.Application = BaseApp{}

// NewBaseApp returns an application that runs handler for every transaction
// decoded with decoder. With debug set, error responses carry stack traces.
func NewBaseApp(store *StoreApp, decoder harbor.TxDecoder, handler harbor.Handler, debug bool) BaseApp {
	return BaseApp{
		StoreApp: store,
		decoder:  decoder,
		handler:  handler,
		debug:    debug,
	}
}

// DeliverTx executes a transaction on the block state.
func (b BaseApp) DeliverTx(txBytes []byte) abci.ResponseDeliverTx {
	ctx, tx, err := b.prepare("deliver_tx", txBytes)
	if err != nil {
		return harbor.DeliverTxError(err, b.debug)
	}
	res, err := b.handler.Deliver(ctx, b.DeliverStore(), tx)
	return harbor.DeliverOrError(res, err, b.debug)
}

// CheckTx validates a transaction against the mempool state.
func (b BaseApp) CheckTx(txBytes []byte) abci.ResponseCheckTx {
	ctx, tx, err := b.prepare("check_tx", txBytes)
	if err != nil {
		return harbor.CheckTxError(err, b.debug)
	}
	res, err := b.handler.Check(ctx, b.CheckStore(), tx)
	return harbor.CheckOrError(res, err, b.debug)
}

func (b BaseApp) prepare(call string, txBytes []byte) (context.Context, harbor.Tx, error) {
	tx, err := b.decode(txBytes)
	if err != nil {
		return nil, nil, err
	}
	ctx := harbor.WithLogInfo(b.BlockContext(), "call", call, "path", harbor.GetPath(tx))
	return ctx, tx, nil
}

// decode never panics, a broken decoder is reported as an error.
func (b BaseApp) decode(txBytes []byte) (tx harbor.Tx, err error) {
	defer errors.Recover(&err)
	return b.decoder(txBytes)
}
