// Package stack resolves the deployment stack (prod, test, ...) the process
// runs in. The stack selects which settings override is layered on top of the
// defaults.
package stack

import (
	"errors"
	"fmt"
	"os"
)

// EnvVar is the environment variable holding the stack name.
const EnvVar = "STACK"

// Stack identifies a deployment environment.
type Stack int

const (
	// Prod is the production stack.
	Prod Stack = iota + 1
	// Test is the test stack.
	Test
)

// ErrMissingVar is returned when EnvVar is not set.
var ErrMissingVar = errors.New("environment variable not set")

// UnrecognizedError reports a stack name outside the known set.
type UnrecognizedError struct {
	Value string
}

func (e *UnrecognizedError) Error() string {
	return fmt.Sprintf("unrecognized stack: %s", e.Value)
}

// names is the wire form of every known stack. Order defines All().
var names = []struct {
	stack Stack
	name  string
}{
	{Prod, "prod"},
	{Test, "test"},
}

// All returns the known stacks in declaration order.
func All() []Stack {
	out := make([]Stack, 0, len(names))
	for _, n := range names {
		out = append(out, n.stack)
	}
	return out
}

// Parse maps a stack name to its Stack. Matching is exact and case sensitive.
func Parse(s string) (Stack, error) {
	for _, n := range names {
		if n.name == s {
			return n.stack, nil
		}
	}
	return 0, &UnrecognizedError{Value: s}
}

// String returns the lowercase name used in settings file names and EnvVar.
func (s Stack) String() string {
	for _, n := range names {
		if n.stack == s {
			return n.name
		}
	}
	return fmt.Sprintf("stack(%d)", int(s))
}

// MarshalText implements encoding.TextMarshaler.
func (s Stack) MarshalText() ([]byte, error) {
	for _, n := range names {
		if n.stack == s {
			return []byte(n.name), nil
		}
	}
	return nil, fmt.Errorf("marshal stack %d: unknown value", int(s))
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Stack) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Lookup reads EnvVar through lookup and parses it.
func Lookup(lookup func(string) (string, bool)) (Stack, error) {
	raw, ok := lookup(EnvVar)
	if !ok {
		return 0, fmt.Errorf("read stack from env var %q: %w", EnvVar, ErrMissingVar)
	}
	s, err := Parse(raw)
	if err != nil {
		return 0, fmt.Errorf("parse stack from env var %q: %w", EnvVar, err)
	}
	return s, nil
}

// FromEnv reads the stack from the process environment.
func FromEnv() (Stack, error) {
	return Lookup(os.LookupEnv)
}
