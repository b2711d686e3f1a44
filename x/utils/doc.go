/*
Package utils holds the decorators every application stack needs: a
savepoint making each transaction atomic, panic recovery, request logging,
action tagging and prometheus metrics.
*/
package utils
