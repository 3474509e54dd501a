package main

import (
	"image/color"
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const starCount = 90

type star struct {
	x, y  float64
	speed float64
	size  float64
}

// Starfield is a scrolling backdrop. It only moves while the game is live.
type Starfield struct {
	stars []star
	w, h  float64
}

// NewStarfield scatters stars over a w×h area
func NewStarfield(w, h float64, rng *rand.Rand) *Starfield {
	sf := &Starfield{stars: make([]star, starCount), w: w, h: h}
	for i := range sf.stars {
		sf.stars[i] = star{
			x:     rng.Float64() * w,
			y:     rng.Float64() * h,
			speed: 0.3 + rng.Float64()*1.7,
			size:  0.6 + rng.Float64()*1.2,
		}
	}
	return sf
}

// Step scrolls every star down by its own speed and wraps at the bottom edge
func (sf *Starfield) Step() {
	for i := range sf.stars {
		s := &sf.stars[i]
		s.y += s.speed
		if s.y > sf.h {
			s.y -= sf.h
		}
	}
}

// Resize rescales star positions onto a new area
func (sf *Starfield) Resize(w, h float64) {
	if w == sf.w && h == sf.h {
		return
	}
	for i := range sf.stars {
		sf.stars[i].x *= w / sf.w
		sf.stars[i].y *= h / sf.h
	}
	sf.w, sf.h = w, h
}

// Draw paints the stars; faster stars are brighter
func (sf *Starfield) Draw(dst *ebiten.Image) {
	for _, s := range sf.stars {
		b := uint8(90 + s.speed*80)
		vector.DrawFilledCircle(dst, float32(s.x), float32(s.y), float32(s.size), color.RGBA{b, b, b, 255}, true)
	}
}
