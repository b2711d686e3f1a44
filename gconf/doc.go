/*
Package gconf implements a configuration store intended to be used as a
global, in-database configuration.

Each extension keeps at most one configuration entity, stored under the
"_c:<package name>" key. A configuration is loaded from the genesis file
with InitConfig and can later be changed by its owner through
UpdateConfigurationHandler.

Not being able to load a configuration is a critical condition for an
extension, there is no recovery path for the client and the node operator
must fix the genesis.
*/
package gconf
