package engine

import (
	"github.com/vovakirdan/minigame-arcade/internal/core"
)

// Entity is a transient non-player object: a collectible, a hazard or a marker.
type Entity struct {
	ID     int
	Kind   string
	Pos    core.Vec
	Vel    core.Vec
	Radius float64
	W, H   float64

	Points int
	Color  core.Color
	Tag    string

	Consumed bool
	Passed   bool
}

// Box returns the entity's box centered on its position.
func (e *Entity) Box() core.Box {
	return core.Centered(e.Pos, e.W, e.H)
}

// EntityPool is the ordered set of live entities of one game instance.
// Order is spawn order and is the order collisions are evaluated in.
type EntityPool struct {
	items  []*Entity
	nextID int
}

// NewEntityPool returns an empty pool.
func NewEntityPool() *EntityPool {
	return &EntityPool{nextID: 1}
}

// Spawn adds e to the end of the pool and assigns it an id.
func (p *EntityPool) Spawn(e Entity) *Entity {
	e.ID = p.nextID
	p.nextID++
	e.Consumed = false
	ent := &e
	p.items = append(p.items, ent)
	return ent
}

// TrySpawn draws once from rng and spawns build(rng) with probability prob.
// At most one entity is spawned per call.
func (p *EntityPool) TrySpawn(rng RNG, prob float64, build func(RNG) Entity) (*Entity, bool) {
	prob = core.ClampF(prob, 0, 1)
	if rng.Float64() >= prob {
		return nil, false
	}
	return p.Spawn(build(rng)), true
}

// Advance moves every entity by its velocity times dt.
func (p *EntityPool) Advance(dt float64) {
	for _, e := range p.items {
		e.Pos = e.Pos.Add(e.Vel.Scale(dt))
	}
}

// Cull removes entities whose position lies outside bounds. onCull, when
// non-nil, is called once for each removed entity before removal.
// It returns the number of removed entities.
func (p *EntityPool) Cull(bounds core.Box, onCull func(*Entity)) int {
	return p.filter(func(e *Entity) bool {
		if bounds.Contains(e.Pos) {
			return true
		}
		if onCull != nil {
			onCull(e)
		}
		return false
	})
}

// Sweep removes consumed entities and returns how many were removed.
func (p *EntityPool) Sweep() int {
	return p.filter(func(e *Entity) bool { return !e.Consumed })
}

// RemoveIf removes entities matching pred.
func (p *EntityPool) RemoveIf(pred func(*Entity) bool) int {
	return p.filter(func(e *Entity) bool { return !pred(e) })
}

func (p *EntityPool) filter(keep func(*Entity) bool) int {
	valid := p.items[:0]
	removed := 0
	for _, e := range p.items {
		if keep(e) {
			valid = append(valid, e)
		} else {
			removed++
		}
	}
	for i := len(valid); i < len(p.items); i++ {
		p.items[i] = nil
	}
	p.items = valid
	return removed
}

// Items returns the live entities in pool order. The slice must not be
// retained across ticks.
func (p *EntityPool) Items() []*Entity {
	return p.items
}

// Len returns the number of live entities.
func (p *EntityPool) Len() int {
	return len(p.items)
}

// Count returns the number of live entities of the given kind.
func (p *EntityPool) Count(kind string) int {
	n := 0
	for _, e := range p.items {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

// Reset removes every entity and restarts id assignment.
func (p *EntityPool) Reset() {
	clear(p.items)
	p.items = p.items[:0]
	p.nextID = 1
}
