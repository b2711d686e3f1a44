package rent

import (
	"github.com/safeharbor/harbor"
	"github.com/safeharbor/harbor/gconf"
	"github.com/safeharbor/harbor/x"
)

// RegisterRoutes registers the configuration update handler.
func RegisterRoutes(r harbor.Registry, auth x.Authenticator) {
	r.Handle(UpdateConfigurationMsg{}.Path(), gconf.NewUpdateConfigurationHandler(confPkg, &Configuration{}, auth))
}

// RegisterQuery exposes deposits under "/rents" and "/rents/payer".
func RegisterQuery(qr harbor.QueryRouter) {
	NewDepositBucket().Register("rents", qr)
}

// Initializer loads the rent configuration from the "conf" genesis
// section.
type Initializer struct{}

var _ harbor.Initializer = Initializer{}

func (Initializer) FromGenesis(opts harbor.Options, db harbor.KVStore) error {
	return gconf.InitConfig(db, opts, confPkg, &Configuration{})
}
