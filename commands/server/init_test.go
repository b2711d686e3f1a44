package server

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/safeharbor/harbor/errors"
	"github.com/safeharbor/harbor/harbortest/assert"
	"github.com/tendermint/tendermint/libs/log"
)

const tendermintGenesis = `{
  "genesis_time": "2019-05-20T10:00:00.000000Z",
  "chain_id": "test-chain-tspYJj",
  "validators": [
    {
      "pub_key": {"type": "tendermint/PubKeyEd25519", "value": "fJg5Ep+zqbXYXaP9zImqGAUW7qXBLUk1fuVcqY3Slvk="},
      "power": "10",
      "name": ""
    }
  ],
  "app_hash": ""
}`

// setupHome creates a home directory with a genesis file as written by
// "tendermint init".
func setupHome(t *testing.T) string {
	t.Helper()
	home, err := ioutil.TempDir("", "harbor-server")
	assert.Nil(t, err)
	assert.Nil(t, os.Mkdir(filepath.Join(home, DirConfig), 0755))
	genFile := filepath.Join(home, DirConfig, GenesisFile)
	assert.Nil(t, ioutil.WriteFile(genFile, []byte(tendermintGenesis), 0600))
	return home
}

func TestInit(t *testing.T) {
	home := setupHome(t)
	defer os.RemoveAll(home)

	var gotArgs []string
	gen := func(args []string) (json.RawMessage, error) {
		gotArgs = args
		return json.RawMessage(`{"token": {"mints": []}}`), nil
	}

	logger := log.NewNopLogger()
	err := InitCmd(gen, logger, home, []string{"USDC"})
	assert.Nil(t, err)
	assert.Equal(t, []string{"USDC"}, gotArgs)

	raw, err := ioutil.ReadFile(filepath.Join(home, DirConfig, GenesisFile))
	assert.Nil(t, err)
	var doc GenesisDoc
	assert.Nil(t, json.Unmarshal(raw, &doc))

	// keep old values, and add our values
	assert.Equal(t, json.RawMessage(`"test-chain-tspYJj"`), doc["chain_id"])
	assert.Equal(t, json.RawMessage(`"2019-05-20T10:00:00.000000Z"`), doc[GenesisTimeKey])
	if len(doc["validators"]) == 0 {
		t.Fatal("genesis validators lost")
	}
	var state map[string]json.RawMessage
	assert.Nil(t, json.Unmarshal(doc[AppStateKey], &state))
	if _, ok := state["token"]; !ok {
		t.Fatalf("token section missing: %s", doc[AppStateKey])
	}

	err = InitCmd(gen, logger, home, nil)
	assert.IsErr(t, errors.ErrState, err)
}

func TestInitRequiresGenesis(t *testing.T) {
	home, err := ioutil.TempDir("", "harbor-server")
	assert.Nil(t, err)
	defer os.RemoveAll(home)

	gen := func([]string) (json.RawMessage, error) {
		t.Fatal("options must not be generated")
		return nil, nil
	}
	err = InitCmd(gen, log.NewNopLogger(), home, nil)
	assert.IsErr(t, errors.ErrNotFound, err)
}

func TestInitPropagatesGeneratorError(t *testing.T) {
	home := setupHome(t)
	defer os.RemoveAll(home)

	gen := func([]string) (json.RawMessage, error) {
		return nil, errors.Wrap(errors.ErrInput, "bad symbol")
	}
	err := InitCmd(gen, log.NewNopLogger(), home, nil)
	assert.IsErr(t, errors.ErrInput, err)
}
