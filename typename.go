package cqrs

import "github.com/goccy/go-reflect"

// TypeName returns the fully qualified name of v's dynamic type, e.g.
// "orders.CreateOrder" or "*orders.OrderResult". It is the key under which
// handlers are registered and looked up.
func TypeName(v any) string {
	t := reflect.TypeOf(v)
	if t == nil {
		return "<nil>"
	}
	return t.String()
}
