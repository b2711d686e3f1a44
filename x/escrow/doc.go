/*
Package escrow implements a trustless two party token swap.

A maker locks a deposit of one asset in a vault and names the amount of a
second asset it wants in return. Any taker that pays that amount to the
maker receives the whole vault. Until then the maker can cancel and get the
deposit back.

Every escrow lives at an address derived from the maker and a seed chosen
by the maker, so that the same maker can run many escrows side by side. The
record address is a program address: no private key controls it, and the
vault it owns can only be emptied by this package while it executes a take
or a refund.

Storage for the record and the vault is paid by the maker through x/rent
and returned when the escrow closes.
*/
package escrow
