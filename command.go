package cqrs

// Command is the marker interface for messages expressing an intent to change
// state. A command carries no identity beyond its concrete type and payload;
// the bus routes it by runtime type to exactly one handler.
type Command interface{}
