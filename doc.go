/*
Package harbor defines the common interfaces that tie together the
escrow ledger: storage, conditions and addresses, transactions, handlers
and decorators, as well as the simplest components where an interface
would be too much overhead.

The context is passed through context.Context between the app, the
decorators and the handlers. There exist two functions for every value of
type T kept in the context:

  WithXYZ(Context, T) Context
  GetXYZ(Context) (val T, ok bool)

WithXYZ panics if the value was previously set, so that lower level code
cannot overwrite what the application established (for example the block
height or the chain ID).
*/
package harbor
