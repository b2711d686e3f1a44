package app

import (
	"github.com/safeharbor/harbor"
)

// ChainInitializers lets you initialize many extensions with one function.
func ChainInitializers(inits ...harbor.Initializer) harbor.Initializer {
	return chainInitializer{inits}
}

type chainInitializer struct {
	inits []harbor.Initializer
}

// FromGenesis will pass opts to all Initializers in the list, aborting at
// the first error.
func (c chainInitializer) FromGenesis(opts harbor.Options, kv harbor.KVStore) error {
	for _, i := range c.inits {
		if err := i.FromGenesis(opts, kv); err != nil {
			return err
		}
	}
	return nil
}
