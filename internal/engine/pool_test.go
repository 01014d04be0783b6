package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/minigame-arcade/internal/core"
)

func TestPoolSpawnAssignsIDsInOrder(t *testing.T) {
	p := NewEntityPool()
	a := p.Spawn(Entity{Kind: "fish"})
	b := p.Spawn(Entity{Kind: "fish", Consumed: true})

	assert.Equal(t, 1, a.ID)
	assert.Equal(t, 2, b.ID)
	assert.False(t, b.Consumed, "spawned entities start live")
	assert.Equal(t, []*Entity{a, b}, p.Items())
}

func TestPoolAdvance(t *testing.T) {
	p := NewEntityPool()
	e := p.Spawn(Entity{Pos: core.V(10, 10), Vel: core.V(-3, 1)})

	p.Advance(1)
	p.Advance(1)
	assert.Equal(t, core.V(4, 12), e.Pos)
}

func TestPoolCullIdempotent(t *testing.T) {
	p := NewEntityPool()
	p.Spawn(Entity{Kind: "in", Pos: core.V(50, 50)})
	p.Spawn(Entity{Kind: "out", Pos: core.V(-31, 50)})
	p.Spawn(Entity{Kind: "in", Pos: core.V(100, 100)})
	p.Spawn(Entity{Kind: "out", Pos: core.V(50, 200)})

	bounds := core.NewBox(-30, 0, 200, 150)
	credited := 0
	onCull := func(*Entity) { credited++ }

	removed := p.Cull(bounds, onCull)
	first := append([]*Entity(nil), p.Items()...)

	again := p.Cull(bounds, onCull)

	assert.Equal(t, 2, removed)
	assert.Zero(t, again)
	assert.Equal(t, first, p.Items())
	assert.Equal(t, 2, credited, "avoided credit is awarded once per entity")
}

func TestPoolSweepRemovesConsumed(t *testing.T) {
	p := NewEntityPool()
	a := p.Spawn(Entity{Kind: "a"})
	b := p.Spawn(Entity{Kind: "b"})
	c := p.Spawn(Entity{Kind: "c"})
	b.Consumed = true

	assert.Equal(t, 1, p.Sweep())
	assert.Equal(t, []*Entity{a, c}, p.Items())
	assert.Zero(t, p.Sweep())
}

func TestPoolTrySpawnRateExact(t *testing.T) {
	values := make([]float64, 100)
	for i := range values {
		values[i] = float64(i) / 100
	}
	rng := NewSequence(values...)
	p := NewEntityPool()

	const n = 1000
	const prob = 0.25
	spawned := 0
	for i := 0; i < n; i++ {
		if _, ok := p.TrySpawn(rng, prob, func(RNG) Entity { return Entity{Kind: "x"} }); ok {
			spawned++
		}
	}

	assert.Equal(t, int(n*prob), spawned)
	assert.Equal(t, n, rng.Drawn(), "one draw per attempt")
}

func TestPoolTrySpawnRateSeeded(t *testing.T) {
	rng := NewRNG(42)
	p := NewEntityPool()

	const n = 10000
	const prob = 0.02
	for i := 0; i < n; i++ {
		p.TrySpawn(rng, prob, func(RNG) Entity { return Entity{Kind: "heart"} })
	}

	// three standard deviations around n*p
	assert.InDelta(t, n*prob, float64(p.Len()), 45)
}

func TestPoolTrySpawnClampsProbability(t *testing.T) {
	p := NewEntityPool()
	rng := NewSequence(0.999)

	_, ok := p.TrySpawn(rng, 5, func(RNG) Entity { return Entity{} })
	assert.True(t, ok)
	_, ok = p.TrySpawn(rng, -1, func(RNG) Entity { return Entity{} })
	assert.False(t, ok)
}

func TestPoolResetRestartsIDs(t *testing.T) {
	p := NewEntityPool()
	p.Spawn(Entity{})
	p.Spawn(Entity{})
	p.Reset()

	require.Zero(t, p.Len())
	assert.Equal(t, 1, p.Spawn(Entity{}).ID)
}

func TestPoolCountAndRemoveIf(t *testing.T) {
	p := NewEntityPool()
	p.Spawn(Entity{Kind: "heart"})
	p.Spawn(Entity{Kind: "rock"})
	p.Spawn(Entity{Kind: "heart"})

	assert.Equal(t, 2, p.Count("heart"))
	assert.Equal(t, 1, p.RemoveIf(func(e *Entity) bool { return e.Kind == "rock" }))
	assert.Equal(t, 2, p.Len())
}
