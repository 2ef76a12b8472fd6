package particles

import (
	"math"
	"math/rand"
	"sync/atomic"
	"time"

	"shieldhero-quiz/internal/domain"
)

// Config sizes the pools and tunes degradation.
type Config struct {
	FireCount           int
	IceCount            int
	LowPerformanceLimit int
	BurstSize           int
	MaxTransient        int
	FrameBudget         time.Duration
	SlowFrameThreshold  int
}

// DefaultConfig returns the tuned pool sizes and frame budget.
func DefaultConfig() Config {
	return Config{
		FireCount:           60,
		IceCount:            40,
		LowPerformanceLimit: 20,
		BurstSize:           20,
		MaxTransient:        60,
		FrameBudget:         16670 * time.Microsecond,
		SlowFrameThreshold:  10,
	}
}

// transientDecay lets burst particles fade in about a second at 60 fps.
const transientDecay = 0.015

// Dot is the instantaneous drawing state of one particle.
type Dot struct {
	Variant Variant
	X, Y    float64
	Size    float64
	Alpha   float64
	Color   string
}

// Canvas receives draw calls. Implementations must not feed state back into the system.
type Canvas interface {
	Clear()
	Dot(d Dot)
}

type pool struct {
	variant   Variant
	rules     rules
	base      []Particle
	transient []Particle
}

// System owns one pool per variant; only the active variant is stepped and drawn.
type System struct {
	cfg     Config
	rng     *rand.Rand
	bounds  Bounds
	pools   [2]*pool
	active  atomic.Int32
	ready   bool
	monitor frameMonitor
}

// NewSystem creates an uninitialized system. Frames no-op until Init.
func NewSystem(cfg Config, rng *rand.Rand) *System {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	s := &System{cfg: cfg, rng: rng}
	s.monitor = frameMonitor{budget: cfg.FrameBudget, threshold: cfg.SlowFrameThreshold}
	return s
}

// Init fills both pools once. Later calls only update the bounds.
func (s *System) Init(b Bounds) {
	s.bounds = b
	if s.ready {
		return
	}
	s.pools[Fire] = s.newPool(Fire, s.cfg.FireCount)
	s.pools[Ice] = s.newPool(Ice, s.cfg.IceCount)
	s.ready = true
}

func (s *System) newPool(v Variant, n int) *pool {
	p := &pool{variant: v, rules: rulesFor(v), base: make([]Particle, n)}
	for i := range p.base {
		p.rules.reset(&p.base[i], s.bounds, s.rng)
	}
	p.transient = make([]Particle, 0, s.cfg.MaxTransient)
	return p
}

// Ready reports whether the pools exist.
func (s *System) Ready() bool {
	return s.ready
}

// Resize updates the bounds used by future resets.
func (s *System) Resize(b Bounds) {
	s.bounds = b
}

// Bounds returns the current canvas size.
func (s *System) Bounds() Bounds {
	return s.bounds
}

// Center returns the middle of the canvas, the default burst origin.
func (s *System) Center() domain.Point {
	return domain.Point{X: s.bounds.W / 2, Y: s.bounds.H / 2}
}

// SetMode selects the variant matching mode.
func (s *System) SetMode(mode domain.Mode) {
	s.active.Store(int32(VariantFor(mode)))
}

// Active returns the variant stepped and drawn by frames.
func (s *System) Active() Variant {
	return Variant(s.active.Load())
}

// Burst appends BurstSize transient particles of mode's variant at origin with
// outward radial velocity. The oldest transients are dropped beyond MaxTransient.
func (s *System) Burst(mode domain.Mode, origin domain.Point) {
	if !s.ready {
		return
	}
	p := s.pools[VariantFor(mode)]
	colors := p.rules.burstColors()
	n := s.cfg.BurstSize
	for i := 0; i < n; i++ {
		var part Particle
		p.rules.reset(&part, s.bounds, s.rng)
		angle := math.Pi * 2 * float64(i) / float64(n)
		speed := 1 + s.rng.Float64()*2
		part.X, part.Y = origin.X, origin.Y
		part.VX = math.Cos(angle) * speed
		part.VY = math.Sin(angle) * speed
		part.Size = s.rng.Float64()*4 + 4
		part.Life = 1
		part.Decay = transientDecay
		part.Color = colors[s.rng.Intn(len(colors))]
		p.pushTransient(part, s.cfg.MaxTransient)
	}
}

func (p *pool) pushTransient(part Particle, limit int) {
	if limit <= 0 {
		return
	}
	if len(p.transient) >= limit {
		drop := len(p.transient) - limit + 1
		copy(p.transient, p.transient[drop:])
		p.transient = p.transient[:len(p.transient)-drop]
	}
	p.transient = append(p.transient, part)
}

// Step advances the active variant by one frame observed at now.
func (s *System) Step(now time.Time) {
	if !s.ready {
		return
	}
	s.monitor.observe(now)
	p := s.pools[s.Active()]
	limit := s.renderLimit(p)
	for i := 0; i < limit; i++ {
		part := &p.base[i]
		p.rules.update(part)
		if p.rules.exhausted(part, s.bounds) {
			p.rules.reset(part, s.bounds, s.rng)
		}
	}

	live := p.transient[:0]
	for _, part := range p.transient {
		p.rules.update(&part)
		if !p.rules.exhausted(&part, s.bounds) {
			live = append(live, part)
		}
	}
	p.transient = live
}

// Draw renders the active variant's current state without changing it.
func (s *System) Draw(c Canvas) {
	if !s.ready || c == nil {
		return
	}
	p := s.pools[s.Active()]
	limit := s.renderLimit(p)
	for i := 0; i < limit; i++ {
		c.Dot(p.dot(&p.base[i]))
	}
	for i := range p.transient {
		c.Dot(p.dot(&p.transient[i]))
	}
}

// Frame clears the canvas, steps and draws. It no-ops before Init.
func (s *System) Frame(now time.Time, c Canvas) {
	if !s.ready {
		return
	}
	s.Step(now)
	if c != nil {
		c.Clear()
	}
	s.Draw(c)
}

func (p *pool) dot(part *Particle) Dot {
	return Dot{
		Variant: p.variant,
		X:       part.X,
		Y:       part.Y,
		Size:    part.Size,
		Alpha:   p.rules.alpha(part),
		Color:   part.Color,
	}
}

func (s *System) renderLimit(p *pool) int {
	n := len(p.base)
	if s.monitor.low && s.cfg.LowPerformanceLimit > 0 && s.cfg.LowPerformanceLimit < n {
		return s.cfg.LowPerformanceLimit
	}
	return n
}

// PoolSize returns the base pool length of v.
func (s *System) PoolSize(v Variant) int {
	if !s.ready {
		return 0
	}
	return len(s.pools[v].base)
}

// TransientCount returns the live burst particles of v.
func (s *System) TransientCount(v Variant) int {
	if !s.ready {
		return 0
	}
	return len(s.pools[v].transient)
}

// Rendered returns how many base particles of the active variant a frame touches.
func (s *System) Rendered() int {
	if !s.ready {
		return 0
	}
	return s.renderLimit(s.pools[s.Active()])
}

// LowPerformance reports whether sustained slow frames shrank the rendered subset.
func (s *System) LowPerformance() bool {
	return s.monitor.low
}

type frameMonitor struct {
	budget    time.Duration
	threshold int
	last      time.Time
	slow      int
	low       bool
}

func (m *frameMonitor) observe(now time.Time) {
	if m.last.IsZero() {
		m.last = now
		return
	}
	if now.Sub(m.last) > m.budget {
		m.slow++
		if m.slow > m.threshold {
			m.low = true
		}
	} else if m.slow > 0 {
		m.slow--
	}
	m.last = now
}
