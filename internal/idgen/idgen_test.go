package idgen

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestSeededIsReproducible(t *testing.T) {
	a, b := NewSeeded(42), NewSeeded(42)
	for i := 0; i < 10; i++ {
		x, y := a.New(), b.New()
		assert.Equal(t, x, y)
		assert.Equal(t, uuid.Version(4), x.Version())
	}
	assert.NotEqual(t, NewSeeded(1).New(), NewSeeded(2).New())
}

func TestRandomIsUnique(t *testing.T) {
	g := NewRandom()
	seen := make(map[uuid.UUID]struct{})
	for i := 0; i < 1000; i++ {
		id := g.New()
		_, dup := seen[id]
		assert.False(t, dup)
		seen[id] = struct{}{}
	}
}
