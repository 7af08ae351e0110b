package cqrs

// Result represents the outcome of handling a command.
//
// Successful is the success marker; Value optionally carries data produced by
// the handler (for example the identifier of a created entity). Failures are
// reported through the error return of the handler, not through Result.
type Result struct {
	Successful bool
	Value      any
}
