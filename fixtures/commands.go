package fixtures

// TestCommand is a configurable test command.
type TestCommand struct {
	ID   string
	Data string
}

// TestCommandBuilder provides a fluent API for constructing test commands.
type TestCommandBuilder struct {
	id   string
	data string
}

// NewTestCommand creates a new TestCommandBuilder with sensible defaults.
func NewTestCommand() *TestCommandBuilder {
	return &TestCommandBuilder{
		id:   "command-1",
		data: "",
	}
}

// WithID sets the command ID.
func (b *TestCommandBuilder) WithID(id string) *TestCommandBuilder {
	b.id = id
	return b
}

// WithData sets custom data on the command.
func (b *TestCommandBuilder) WithData(data string) *TestCommandBuilder {
	b.data = data
	return b
}

// Build constructs the TestCommand.
func (b *TestCommandBuilder) Build() TestCommand {
	return TestCommand{
		ID:   b.id,
		Data: b.data,
	}
}

// Common pre-built commands for quick testing.
var (
	CreateOrderCmd = TestCommand{ID: "order-1", Data: "create"}
	UpdateOrderCmd = TestCommand{ID: "order-1", Data: "update"}
	DeleteOrderCmd = TestCommand{ID: "order-1", Data: "delete"}
)

// GreetCommand is a realistic command with a string payload, used by the
// end-to-end tests.
type GreetCommand struct {
	Greeting string
}
