// Package idgen supplies unique identifiers for section creation. The source
// is an interface so tests can pin ids.
package idgen

import "github.com/google/uuid"

type Source interface {
	NextID() string
}

type UUIDSource struct{}

func NewUUIDSource() UUIDSource { return UUIDSource{} }

func (UUIDSource) NextID() string { return uuid.NewString() }
