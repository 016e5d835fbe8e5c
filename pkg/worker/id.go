package worker

import "github.com/google/uuid"

// IDGenerator produces identifiers for records created without one.
type IDGenerator interface {
	NewID() string
}

// IDGeneratorFunc adapts a function into an IDGenerator.
type IDGeneratorFunc func() string

// NewID calls the underlying function.
func (fn IDGeneratorFunc) NewID() string {
	return fn()
}

// UUIDGenerator issues random (v4) UUID strings.
type UUIDGenerator struct{}

// NewID returns a fresh UUID string.
func (UUIDGenerator) NewID() string {
	return uuid.NewString()
}

// DefaultIDGenerator is used when callers do not inject their own generator.
var DefaultIDGenerator IDGenerator = UUIDGenerator{}
