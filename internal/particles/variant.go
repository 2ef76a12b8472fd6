package particles

import (
	"math"
	"math/rand"

	"shieldhero-quiz/internal/domain"
)

// Variant is the physics and appearance rule set of a pool.
type Variant int

const (
	Fire Variant = iota
	Ice
)

func (v Variant) String() string {
	if v == Ice {
		return "ice"
	}
	return "fire"
}

// VariantFor returns the variant tied to a theme mode.
func VariantFor(mode domain.Mode) Variant {
	if mode == domain.ModeShield {
		return Ice
	}
	return Fire
}

// Bounds is the visible canvas size.
type Bounds struct {
	W float64
	H float64
}

// Particle is one pooled element. Life doubles as opacity for ice.
type Particle struct {
	X, Y       float64
	VX, VY     float64
	Size       float64
	Life       float64
	Decay      float64
	Phase      float64
	PhaseSpeed float64
	Color      string
}

type rules interface {
	reset(p *Particle, b Bounds, rng *rand.Rand)
	update(p *Particle)
	exhausted(p *Particle, b Bounds) bool
	alpha(p *Particle) float64
	burstColors() []string
}

const edgeMargin = 20

type fireRules struct{}

func (fireRules) reset(p *Particle, b Bounds, rng *rand.Rand) {
	*p = Particle{
		X:     rng.Float64() * b.W,
		Y:     b.H + 10,
		Size:  rng.Float64()*3 + 1,
		VY:    -(rng.Float64()*2 + 1),
		VX:    (rng.Float64() - 0.5) * 0.5,
		Life:  1,
		Decay: rng.Float64()*0.01 + 0.005,
		Color: "#ff4444",
	}
	if rng.Float64() > 0.5 {
		p.Color = "#ff8800"
	}
}

func (fireRules) update(p *Particle) {
	p.Y += p.VY
	p.X += p.VX + math.Sin(p.Y*0.01)*0.3
	p.Life -= p.Decay
}

func (fireRules) exhausted(p *Particle, b Bounds) bool {
	return p.Life <= 0 || p.Y < -edgeMargin || p.X < -edgeMargin || p.X > b.W+edgeMargin
}

func (fireRules) alpha(p *Particle) float64 {
	return clamp01(p.Life * 0.7)
}

func (fireRules) burstColors() []string {
	return []string{"#ff4444", "#ff8800", "#ffcc00", "#ff6666"}
}

type iceRules struct{}

func (iceRules) reset(p *Particle, b Bounds, rng *rand.Rand) {
	*p = Particle{
		X:          rng.Float64() * b.W,
		Y:          -10 - rng.Float64()*200,
		Size:       rng.Float64()*3 + 0.6,
		VY:         rng.Float64()*0.6 + 0.2,
		VX:         (rng.Float64() - 0.5) * 0.8,
		Life:       rng.Float64()*0.8 + 0.2,
		Decay:      0.0005,
		Phase:      rng.Float64() * math.Pi * 2,
		PhaseSpeed: rng.Float64()*0.02 + 0.005,
		Color:      "#b4ffff",
	}
}

func (iceRules) update(p *Particle) {
	p.Y += p.VY
	p.Phase += p.PhaseSpeed
	p.X += math.Sin(p.Phase)*0.4 + p.VX
	p.Life -= p.Decay
}

func (iceRules) exhausted(p *Particle, b Bounds) bool {
	return p.Life <= 0 || p.Y > b.H+10 || p.X < -edgeMargin || p.X > b.W+edgeMargin
}

func (iceRules) alpha(p *Particle) float64 {
	return clamp01(p.Life)
}

func (iceRules) burstColors() []string {
	return []string{"#00b8b8", "#00ffaa", "#33cccc", "#00ff88"}
}

func rulesFor(v Variant) rules {
	if v == Ice {
		return iceRules{}
	}
	return fireRules{}
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
