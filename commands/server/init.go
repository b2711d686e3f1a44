package server

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/safeharbor/harbor/errors"
	"github.com/tendermint/tendermint/libs/log"
)

const (
	// DirConfig is the directory inside the home that holds the genesis
	// file and the node configuration.
	DirConfig = "config"

	// GenesisFile is the name of the tendermint genesis file.
	GenesisFile = "genesis.json"

	// AppStateKey is the genesis section that the application reads.
	AppStateKey = "app_state"

	// GenesisTimeKey is set by tendermint when the genesis is created.
	GenesisTimeKey = "genesis_time"
)

// GenOptions can parse command-line arguments to generate the default
// app_state for the genesis file. This is application specific.
type GenOptions func(args []string) (json.RawMessage, error)

// GenesisDoc involves some tendermint-specific structures we don't want to
// parse, so we just grab it into a raw object format and set one key.
type GenesisDoc map[string]json.RawMessage

// InitCmd adds the application state produced by gen to the genesis file
// created by "tendermint init" in the given home directory. It refuses to
// overwrite an existing app_state.
func InitCmd(gen GenOptions, logger log.Logger, home string, args []string) error {
	genFile := filepath.Join(home, DirConfig, GenesisFile)
	if !fileExists(genFile) {
		return errors.Wrapf(errors.ErrNotFound, "genesis file %q, run tendermint init first", genFile)
	}

	options, err := gen(args)
	if err != nil {
		return err
	}
	if err := addGenesisOptions(genFile, options); err != nil {
		return err
	}
	logger.Info("App state written to genesis file", "path", genFile)
	return nil
}

func addGenesisOptions(filename string, options json.RawMessage) error {
	raw, err := ioutil.ReadFile(filename)
	if err != nil {
		return errors.Wrap(err, "cannot read genesis file")
	}

	var doc GenesisDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	if v, ok := doc[AppStateKey]; ok && len(v) > 0 && string(v) != "null" {
		return errors.Wrap(errors.ErrState, "app state already set")
	}

	doc[AppStateKey] = options
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	return ioutil.WriteFile(filename, out, 0600)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}
