package engine

import (
	"math"

	"github.com/vovakirdan/minigame-arcade/internal/core"
)

// OutcomeKind is what a collision does.
type OutcomeKind int

const (
	OutcomeNone    OutcomeKind = iota
	OutcomeCollect             // consume entity, add score/health
	OutcomeDamage              // consume entity, subtract health/score
	OutcomeBlocked             // hazard contact, the game ends
	OutcomePass                // informational, e.g. a missed goal
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeNone:
		return "none"
	case OutcomeCollect:
		return "collect"
	case OutcomeDamage:
		return "damage"
	case OutcomeBlocked:
		return "blocked"
	case OutcomePass:
		return "pass"
	default:
		return "unknown"
	}
}

// Outcome is the effect of one actor/entity hit.
type Outcome struct {
	Kind   OutcomeKind
	Entity *Entity
	Score  int
	Health float64 // signed health delta
	Cue    Cue
	// Keep leaves the entity in the pool after Collect or Damage.
	Keep    bool
	Message string
	// Counter names a world counter incremented when the outcome applies.
	Counter string
}

// HitTest decides whether the actor touches an entity.
type HitTest func(a *Actor, e *Entity) bool

// Proximity hits when the distance between centers is strictly less than
// threshold. A threshold of zero uses the sum of both radii.
// Equality is a miss.
func Proximity(threshold float64) HitTest {
	return func(a *Actor, e *Entity) bool {
		t := threshold
		if t == 0 {
			t = a.Radius + e.Radius
		}
		return core.Dist(a.Pos, e.Pos) < t
	}
}

// SameCell hits when actor and entity occupy the same grid cell.
// Positions are rounded to the nearest integer cell.
func SameCell() HitTest {
	return func(a *Actor, e *Entity) bool {
		return cellOf(a.Pos) == cellOf(e.Pos)
	}
}

// RangeOverlap hits when the actor and entity boxes overlap.
// Touching edges do not overlap.
func RangeOverlap() HitTest {
	return func(a *Actor, e *Entity) bool {
		return a.Box().Overlaps(e.Box())
	}
}

type cell struct{ x, y int }

func cellOf(p core.Vec) cell {
	return cell{x: int(math.Round(p.X)), y: int(math.Round(p.Y))}
}

// Cell returns the rounded grid cell of a position.
func Cell(p core.Vec) (x, y int) {
	c := cellOf(p)
	return c.x, c.y
}

// CollisionRule evaluates the actor against the pool.
type CollisionRule struct {
	Test HitTest
	// Resolve turns a hit into an outcome. OutcomeNone ignores the hit.
	Resolve func(e *Entity) Outcome
	// MaxHits caps the number of outcomes per evaluation; zero is unlimited.
	MaxHits int
}

// Enabled reports whether the rule has a test configured.
func (r CollisionRule) Enabled() bool {
	return r.Test != nil && r.Resolve != nil
}

// Evaluate tests every live entity in pool order and returns the outcomes of
// all hits. Evaluation stops after the first Blocked outcome.
func (r CollisionRule) Evaluate(a *Actor, p *EntityPool) []Outcome {
	if !r.Enabled() {
		return nil
	}
	var out []Outcome
	for _, e := range p.Items() {
		if e.Consumed || !r.Test(a, e) {
			continue
		}
		o := r.Resolve(e)
		if o.Kind == OutcomeNone {
			continue
		}
		o.Entity = e
		out = append(out, o)
		if o.Kind == OutcomeBlocked {
			break
		}
		if r.MaxHits > 0 && len(out) >= r.MaxHits {
			break
		}
	}
	return out
}

// Probe evaluates a single entity against the rule's test, used by games that
// check placement on demand instead of every tick.
func (r CollisionRule) Probe(a *Actor, e *Entity) bool {
	return r.Test != nil && r.Test(a, e)
}
