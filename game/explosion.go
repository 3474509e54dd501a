package game

import (
	"image/color"
	"math"
	"math/rand"
	"time"
)

// Particle is one fragment of an explosion
type Particle struct {
	X, Y        float64
	VX, VY      float64
	Radius      float64
	StartRadius float64
	Alpha       float64
	Color       color.RGBA
}

// ExplosionSpec describes a burst of particles
type ExplosionSpec struct {
	Particles int
	MaxRadius float64
	Duration  time.Duration
	MinSpeed  float64
	MaxSpeed  float64
	Colors    []color.RGBA
}

var fireColors = []color.RGBA{
	{255, 0, 0, 255},
	{255, 165, 0, 255},
	{255, 255, 0, 255},
}

// Explosion presets
var (
	ExplosionDefault = ExplosionSpec{Particles: 20, MaxRadius: 35, Duration: 450 * time.Millisecond, MinSpeed: 1, MaxSpeed: 3.5, Colors: fireColors}
	ExplosionSpark   = ExplosionSpec{Particles: 7, MaxRadius: 18, Duration: 250 * time.Millisecond, MinSpeed: 1, MaxSpeed: 3.5, Colors: fireColors}
	ExplosionHit     = ExplosionSpec{Particles: 12, MaxRadius: 30, Duration: 350 * time.Millisecond, MinSpeed: 1, MaxSpeed: 3.5, Colors: fireColors}
	ExplosionCrash   = ExplosionSpec{Particles: 30, MaxRadius: 50, Duration: 450 * time.Millisecond, MinSpeed: 1, MaxSpeed: 3.5, Colors: fireColors}
	ExplosionPhase   = ExplosionSpec{Particles: 30, MaxRadius: 60, Duration: 600 * time.Millisecond, MinSpeed: 1, MaxSpeed: 3.5, Colors: []color.RGBA{{255, 0, 255, 255}}}
	ExplosionBoss    = ExplosionSpec{Particles: 100, MaxRadius: 150, Duration: 2000 * time.Millisecond, MinSpeed: 1, MaxSpeed: 3.5, Colors: fireColors}
)

// Explosion is a short-lived cosmetic particle burst
type Explosion struct {
	Created   time.Duration
	Duration  time.Duration
	Particles []Particle
}

// NewExplosion scatters spec.Particles fragments from (x, y)
func NewExplosion(x, y float64, spec ExplosionSpec, now time.Duration, rng *rand.Rand) *Explosion {
	colors := spec.Colors
	if len(colors) == 0 {
		colors = fireColors
	}
	e := &Explosion{
		Created:   now,
		Duration:  spec.Duration,
		Particles: make([]Particle, spec.Particles),
	}
	for i := range e.Particles {
		angle := rng.Float64() * 2 * math.Pi
		speed := spec.MinSpeed + rng.Float64()*(spec.MaxSpeed-spec.MinSpeed)
		radius := spec.MaxRadius * (0.08 + rng.Float64()*0.10)
		e.Particles[i] = Particle{
			X:           x,
			Y:           y,
			VX:          math.Cos(angle) * speed,
			VY:          math.Sin(angle) * speed,
			Radius:      radius,
			StartRadius: radius,
			Alpha:       255,
			Color:       colors[rng.Intn(len(colors))],
		}
	}
	return e
}

// Update moves and fades every particle; it returns false once the explosion has expired
func (e *Explosion) Update(now time.Duration) bool {
	age := now - e.Created
	if age > e.Duration {
		return false
	}
	fade := 1.0
	if e.Duration > 0 {
		fade = 1 - float64(age)/float64(e.Duration)
	}
	for i := range e.Particles {
		p := &e.Particles[i]
		p.X += p.VX
		p.Y += p.VY
		p.Alpha = math.Max(0, 255*fade)
		p.Radius = p.StartRadius * fade
	}
	return true
}
