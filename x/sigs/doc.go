/*
Package sigs provides the authentication middleware. It verifies the
signatures of a transaction, keeps a sequence per signer for replay
protection and exposes the signers to the handlers as conditions.
*/
package sigs
