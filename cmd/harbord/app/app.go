/*
Package app links together all the various components to construct the
harbor escrow application.
*/
package app

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/safeharbor/harbor"
	"github.com/safeharbor/harbor/app"
	"github.com/safeharbor/harbor/errors"
	"github.com/safeharbor/harbor/orm"
	"github.com/safeharbor/harbor/store/iavl"
	"github.com/safeharbor/harbor/x"
	"github.com/safeharbor/harbor/x/escrow"
	"github.com/safeharbor/harbor/x/rent"
	"github.com/safeharbor/harbor/x/sigs"
	"github.com/safeharbor/harbor/x/token"
	"github.com/safeharbor/harbor/x/utils"
)

// Name is returned by abci.Info.
const Name = "harbor"

// Authenticator returns the typical authentication, just using public key
// signatures.
func Authenticator() x.Authenticator {
	return x.ChainAuth(sigs.Authenticate{})
}

// Chain returns a chain of decorators, to handle authentication, logging,
// metrics and recovery. metrics may be nil.
func Chain(metrics *utils.Metrics) app.Decorators {
	return app.ChainDecorators(
		utils.NewLogging(),
		utils.NewRecovery(),
		metrics,
		utils.NewActionTagger(),
		// on CheckTx, bad tx don't affect state
		utils.NewSavepoint().OnCheck(),
		sigs.NewDecorator(),
		// on DeliverTx, bad tx will increment the nonce even if the
		// message fails
		utils.NewSavepoint().OnDeliver(),
	)
}

// Router returns a router dispatching to the token, rent and escrow
// handlers.
func Router(authFn x.Authenticator) *app.Router {
	r := app.NewRouter()
	token.RegisterRoutes(r, authFn, token.NewController(authFn))
	rent.RegisterRoutes(r, authFn)
	escrow.RegisterRoutes(r, authFn)
	return r
}

// QueryRouter returns a default query router, allowing access to
// "/escrows", "/mints", "/accounts", "/rents", "/auth" and "/".
func QueryRouter() harbor.QueryRouter {
	r := harbor.NewQueryRouter()
	r.RegisterAll(
		escrow.RegisterQuery,
		token.RegisterQuery,
		rent.RegisterQuery,
		sigs.RegisterQuery,
		orm.RegisterQuery,
	)
	return r
}

// Stack wires up a standard router with a standard decorator chain. This
// can be passed into BaseApp.
func Stack(metrics *utils.Metrics) harbor.Handler {
	authFn := Authenticator()
	return Chain(metrics).WithHandler(Router(authFn))
}

// Initializers load the genesis state of every extension.
func Initializers() harbor.Initializer {
	return app.ChainInitializers(
		token.Initializer{},
		rent.Initializer{},
	)
}

// Application constructs a basic ABCI application with the given
// arguments. If you are not sure what to use for the Handler, just use
// Stack().
func Application(name string, h harbor.Handler, tx harbor.TxDecoder, dbPath string, debug bool) (app.BaseApp, error) {
	ctx := context.Background()
	kv, err := CommitKVStore(dbPath)
	if err != nil {
		return app.BaseApp{}, errors.Wrap(err, "cannot create database instance")
	}
	store, err := app.NewStoreApp(name, kv, QueryRouter(), ctx)
	if err != nil {
		return app.BaseApp{}, errors.Wrap(err, "cannot load application state")
	}
	store.WithInit(Initializers())
	return app.NewBaseApp(store, tx, h, debug), nil
}

// NewMetrics registers the transaction metrics with reg. A nil reg disables
// them.
func NewMetrics(reg prometheus.Registerer) (*utils.Metrics, error) {
	if reg == nil {
		return nil, nil
	}
	return utils.NewMetrics(reg)
}

// CommitKVStore returns an initialized KVStore that persists the data to
// the named path. An empty path creates an in memory store.
func CommitKVStore(dbPath string) (harbor.CommitKVStore, error) {
	// memory backed case, just for testing
	if dbPath == "" {
		return iavl.MockCommitStore(), nil
	}

	path, err := filepath.Abs(dbPath)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "invalid database name %q", dbPath)
	}

	// Some external calls accidentally add a ".db", which is now removed
	path = strings.TrimSuffix(path, filepath.Ext(path))

	// Split the database name into it's components (dir, name)
	dir := filepath.Dir(path)
	name := filepath.Base(path)
	return iavl.NewCommitStore(dir, name)
}
