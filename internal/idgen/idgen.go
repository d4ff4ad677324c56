// Package idgen hands out opaque identifiers for purchase orders.
package idgen

import (
	"io"
	"math/rand"
	"sync"

	"github.com/google/uuid"
)

// Generator returns a new identifier on every call.
type Generator interface {
	New() uuid.UUID
}

type randomGenerator struct{}

// NewRandom returns a generator backed by crypto/rand (UUIDv4).
func NewRandom() Generator {
	return randomGenerator{}
}

func (randomGenerator) New() uuid.UUID {
	return uuid.New()
}

// seededGenerator yields a reproducible sequence for tests.
type seededGenerator struct {
	mu  sync.Mutex
	src io.Reader
}

// NewSeeded returns a generator producing the same UUIDv4 sequence for the
// same seed.
func NewSeeded(seed int64) Generator {
	return &seededGenerator{src: rand.New(rand.NewSource(seed))}
}

func (g *seededGenerator) New() uuid.UUID {
	g.mu.Lock()
	defer g.mu.Unlock()
	id, err := uuid.NewRandomFromReader(g.src)
	if err != nil {
		// math/rand readers never fail
		panic(err)
	}
	return id
}
