package fixtures

// EchoQuery asks for its input to be echoed back.
type EchoQuery struct {
	Input string
}

// EchoResult wraps the echoed string.
type EchoResult struct {
	Output string
}

// TestQuery is a configurable test query.
type TestQuery struct {
	ID string
}

// TestQueryResult is the result type paired with TestQuery.
type TestQueryResult struct {
	Value string
}
