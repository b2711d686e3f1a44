/*
Package errors implements the error kinds shared by all harbor extensions.

Reuse the kinds declared in this package whenever possible and register a
custom kind only when no existing one describes the failure. Extensions
register their own kinds with Register(code, description), choosing a code
that is unique within the application. Each code is returned to the client as
the ABCI result code, so a client can branch on it.

Create an instance of a kind with ErrXyz.New("...") or wrap an existing error
with errors.Wrap(err, "..."). The innermost wrap records a stack trace.
Do not create instances in package level variables, the stack trace would
point at the program initialization.

Formatting an error:

	%s is the error message
	%+v is the message with the full stack trace
*/
package errors
