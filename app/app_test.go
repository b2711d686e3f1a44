package app

import (
	"context"
	"testing"

	"github.com/safeharbor/harbor"
	"github.com/safeharbor/harbor/errors"
	"github.com/safeharbor/harbor/harbortest"
	"github.com/safeharbor/harbor/orm"
	"github.com/safeharbor/harbor/x/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	abci "github.com/tendermint/tendermint/abci/types"
)

// pathDecoder decodes a transaction that only carries the message path.
func pathDecoder(raw []byte) (harbor.Tx, error) {
	if len(raw) == 0 {
		return nil, errors.Wrap(errors.ErrInput, "empty tx")
	}
	return &harbortest.Tx{Msg: &harbortest.Msg{RoutePath: string(raw)}}, nil
}

type genesisWriter struct{}

func (genesisWriter) FromGenesis(opts harbor.Options, db harbor.KVStore) error {
	var value string
	if err := opts.ReadOptions("value", &value); err != nil {
		return err
	}
	return db.Set([]byte("genesis"), []byte(value))
}

func newTestApp(t *testing.T, kv harbor.CommitKVStore) BaseApp {
	t.Helper()

	r := NewRouter()
	r.Handle("test/write", &harbortest.WriteHandler{Key: []byte("written"), Value: []byte("yes")})
	r.Handle("test/fail", &harbortest.WriteHandler{Key: []byte("failed"), Value: []byte("yes"), Err: errors.ErrState})

	qr := harbor.NewQueryRouter()
	orm.RegisterQuery(qr)

	store, err := NewStoreApp("test", kv, qr, context.Background())
	require.NoError(t, err)
	store.WithInit(ChainInitializers(genesisWriter{}))

	handler := ChainDecorators(
		utils.NewRecovery(),
		utils.NewSavepoint().OnCheck().OnDeliver(),
	).WithHandler(r)
	return NewBaseApp(store, pathDecoder, handler, false)
}

func TestBaseApp(t *testing.T) {
	kv, cleanup := harbortest.CommitKVStore(t)
	defer cleanup()
	app := newTestApp(t, kv)

	app.InitChain(abci.RequestInitChain{
		ChainId:       "test-chain-1",
		AppStateBytes: []byte(`{"value": "hello"}`),
	})
	assert.Equal(t, "test-chain-1", app.GetChainID())

	app.BeginBlock(abci.RequestBeginBlock{Header: abci.Header{Height: 1}})
	assert.Equal(t, uint32(0), app.CheckTx([]byte("test/write")).Code)
	dres := app.DeliverTx([]byte("test/write"))
	assert.Equal(t, uint32(0), dres.Code, dres.Log)

	dres = app.DeliverTx([]byte("test/fail"))
	assert.Equal(t, errors.ErrState.ABCICode(), dres.Code)
	dres = app.DeliverTx([]byte("test/missing"))
	assert.Equal(t, errors.ErrNotFound.ABCICode(), dres.Code)
	dres = app.DeliverTx(nil)
	assert.Equal(t, errors.ErrInput.ABCICode(), dres.Code)

	// nothing is visible before the commit
	qres := app.Query(abci.RequestQuery{Path: "/", Data: []byte("written")})
	require.Equal(t, uint32(0), qres.Code, qres.Log)
	var empty ResultSet
	require.NoError(t, empty.Unmarshal(qres.Value))
	assert.Empty(t, empty.Results)

	app.EndBlock(abci.RequestEndBlock{Height: 1})
	cres := app.Commit()
	assert.NotEmpty(t, cres.Data)

	abciStore := NewABCIStore(app)
	val, err := abciStore.Get([]byte("written"))
	require.NoError(t, err)
	assert.Equal(t, []byte("yes"), val)
	val, err = abciStore.Get([]byte("genesis"))
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), val)
	ok, err := abciStore.Has([]byte("failed"))
	require.NoError(t, err)
	assert.False(t, ok)

	itr, err := abciStore.Iterator(nil, nil)
	require.NoError(t, err)
	models, err := orm.ConsumeIterator(itr)
	require.NoError(t, err)
	// the chain id, the genesis value and the delivered write
	assert.Len(t, models, 3)

	_, err = abciStore.Iterator([]byte("a"), []byte("z"))
	assert.True(t, errors.ErrInput.Is(err))

	qres = app.Query(abci.RequestQuery{Path: "/unknown"})
	assert.Equal(t, errors.ErrNotFound.ABCICode(), qres.Code)

	info := app.Info(abci.RequestInfo{})
	assert.Equal(t, int64(1), info.LastBlockHeight)
	assert.Equal(t, cres.Data, info.LastBlockAppHash)
	assert.Equal(t, "test", info.Data)
}

func TestStoreAppReload(t *testing.T) {
	kv, cleanup := harbortest.CommitKVStore(t)
	defer cleanup()
	app := newTestApp(t, kv)

	app.InitChain(abci.RequestInitChain{
		ChainId:       "test-chain-1",
		AppStateBytes: []byte(`{}`),
	})
	app.BeginBlock(abci.RequestBeginBlock{Header: abci.Header{Height: 1}})
	app.Commit()

	// a second genesis is rejected
	assert.Panics(t, func() {
		app.InitChain(abci.RequestInitChain{ChainId: "test-chain-2", AppStateBytes: []byte(`{}`)})
	})

	restarted := newTestApp(t, kv)
	assert.Equal(t, "test-chain-1", restarted.GetChainID())
	height, ok := harbor.GetHeight(restarted.BlockContext())
	assert.True(t, ok)
	assert.Equal(t, int64(1), height)
}

func TestStoreAppRequiresGenesis(t *testing.T) {
	kv, cleanup := harbortest.CommitKVStore(t)
	defer cleanup()
	app := newTestApp(t, kv)

	assert.Panics(t, func() {
		app.InitChain(abci.RequestInitChain{ChainId: "test-chain-1"})
	})
	assert.Panics(t, func() {
		app.InitChain(abci.RequestInitChain{ChainId: "bad", AppStateBytes: []byte(`{}`)})
	})
}
