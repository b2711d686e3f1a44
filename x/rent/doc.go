/*
Package rent charges for the state a program allocates.

Allocating a record costs (AccountOverhead + size) * LamportsPerByte of the
configured rent mint. The payment is moved to the rent pool and recorded as
a Deposit of the allocated address. Releasing the allocation returns the
whole deposit to a recipient of the caller's choice.
*/
package rent
