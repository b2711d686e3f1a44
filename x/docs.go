/*
Package x contains the extensions of the escrow ledger.

Extensions implement common functionality (Handler, Decorator, etc.) and
are combined together to construct an application. Each sub-package owns a
part of the state: holding accounts and mints (token), storage deposits
(rent), signatures (sigs) and escrows (escrow).

Note that protobuf types in exported code will be prefixed by the package,
so follow standard go naming conventions and avoid stutter. Use eg.
`escrow.CreateMsg` in place of `escrow.CreateEscrowMsg`.
*/
package x
