package cqrs

// InstrumentationVersion is reported by the otel subpackage alongside the
// instrumentation scope name.
const InstrumentationVersion = "0.1.0"
