package activation

import (
	"fmt"
	"strings"
)

// Type identifies an activation function exposed by the Dispatcher.
type Type int

// Supported activations.
const (
	TypeLogit Type = iota
	TypePReLU
)

var typeNames = map[Type]string{
	TypeLogit: "logit",
	TypePReLU: "prelu",
}

// Types returns every supported activation in declaration order.
func Types() []Type {
	return []Type{TypeLogit, TypePReLU}
}

// String returns the lower-case activation name.
func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// FromName returns the activation with the given name (case-insensitive).
func FromName(name string) (Type, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for t, n := range typeNames {
		if n == name {
			return t, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown activation %q", ErrInvalidInput, name)
}
