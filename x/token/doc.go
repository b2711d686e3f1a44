/*
Package token implements fungible assets and the holding accounts that
keep them.

Every asset is described by a Mint. A balance of a mint is kept in a
holding account, whose address is derived from the owner address and the
mint address. Funds can only leave an account when its owner is
authenticated. The owner may be a key, or an address that has no key at
all and is authenticated by the extension that derived it.
*/
package token
