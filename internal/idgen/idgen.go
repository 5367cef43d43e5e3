// Package idgen issues opaque identifiers for simulation runs. NewFunc can be
// replaced in tests.
package idgen

import "github.com/google/uuid"

var NewFunc = func() string { return uuid.New().String() }

// New returns a new globally unique identifier.
func New() string { return NewFunc() }
