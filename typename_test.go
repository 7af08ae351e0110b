package cqrs

import "testing"

func TestTypeName(t *testing.T) {
	tests := []struct {
		name string
		v    any
		want string
	}{
		{name: "struct value", v: testCmd{}, want: "cqrs.testCmd"},
		{name: "struct pointer", v: &testCmd{}, want: "*cqrs.testCmd"},
		{name: "typed nil pointer", v: (*testCmd)(nil), want: "*cqrs.testCmd"},
		{name: "nil interface", v: nil, want: "<nil>"},
		{name: "builtin", v: "hello", want: "string"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TypeName(tt.v); got != tt.want {
				t.Errorf("TypeName(%v) = %q, want %q", tt.v, got, tt.want)
			}
		})
	}
}
