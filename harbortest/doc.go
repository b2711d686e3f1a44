/*
Package harbortest provides mocks and helpers for testing extensions.

Use Auth or CtxAuth in place of a signature decorator, Tx and Msg in place
of a decoded transaction and Handler or Decorator to count calls made by a
router or a decorator chain.
*/
package harbortest
