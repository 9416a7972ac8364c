// Package id supplies unique identifiers for versions and changes.
// The Generator interface exists so tests can substitute a deterministic
// sequence; production code uses UUIDv4.
package id

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

// Generator produces identifiers that never repeat within a process.
type Generator interface {
	NewID() string
}

// UUID generates random UUIDv4 identifiers.
type UUID struct{}

// NewID returns a fresh UUIDv4 string.
func (UUID) NewID() string {
	return uuid.NewString()
}

// Sequence generates "prefix-1", "prefix-2", ... for deterministic tests.
// Safe for concurrent use.
type Sequence struct {
	prefix string
	n      atomic.Int64
}

// NewSequence returns a sequential generator with the given prefix.
func NewSequence(prefix string) *Sequence {
	return &Sequence{prefix: prefix}
}

// NewID returns the next identifier in the sequence.
func (s *Sequence) NewID() string {
	return fmt.Sprintf("%s-%d", s.prefix, s.n.Add(1))
}
