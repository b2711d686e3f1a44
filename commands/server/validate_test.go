package server

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/safeharbor/harbor"
	"github.com/safeharbor/harbor/errors"
	"github.com/safeharbor/harbor/harbortest/assert"
)

type symbolInitializer struct{}

func (symbolInitializer) FromGenesis(opts harbor.Options, db harbor.KVStore) error {
	var symbols []string
	if err := opts.ReadOptions("symbols", &symbols); err != nil {
		return err
	}
	if len(symbols) == 0 {
		return errors.Wrap(errors.ErrEmpty, "symbols")
	}
	for _, s := range symbols {
		if err := db.Set([]byte(s), []byte{1}); err != nil {
			return err
		}
	}
	return nil
}

func TestValidateGenesis(t *testing.T) {
	dir, err := ioutil.TempDir("", "harbor-validate")
	assert.Nil(t, err)
	defer os.RemoveAll(dir)

	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		assert.Nil(t, ioutil.WriteFile(path, []byte(content), 0600))
		return path
	}
	valid := write("valid.json", `{"app_state": {"symbols": ["USDC", "WSOL"]}}`)
	empty := write("empty.json", `{"app_state": {"symbols": []}}`)
	noState := write("nostate.json", `{"chain_id": "test-chain-1"}`)
	broken := write("broken.json", `{"app_state": `)

	cases := map[string]struct {
		paths   []string
		wantErr *errors.Error
	}{
		"valid":           {paths: []string{valid}},
		"no files":        {paths: nil},
		"initializer err": {paths: []string{valid, empty}, wantErr: errors.ErrEmpty},
		"missing state":   {paths: []string{noState}, wantErr: errors.ErrEmpty},
		"invalid json":    {paths: []string{broken}, wantErr: errors.ErrInput},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			err := ValidateGenesis(symbolInitializer{}, tc.paths)
			if tc.wantErr == nil {
				assert.Nil(t, err)
				return
			}
			assert.IsErr(t, tc.wantErr, err)
		})
	}

	err = ValidateGenesis(symbolInitializer{}, []string{filepath.Join(dir, "missing.json")})
	if err == nil {
		t.Fatal("missing file must fail")
	}
}
