package game

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCollide(t *testing.T) {
	tests := []struct {
		name string
		a, b Rect
		want bool
	}{
		{"overlap", Rect{0, 0, 10, 10}, Rect{5, 5, 10, 10}, true},
		{"contained", Rect{0, 0, 100, 100}, Rect{40, 40, 5, 5}, true},
		{"touching edges", Rect{0, 0, 10, 10}, Rect{10, 0, 10, 10}, true},
		{"left of", Rect{0, 0, 10, 10}, Rect{11, 0, 10, 10}, false},
		{"above", Rect{0, 0, 10, 10}, Rect{0, 10.5, 10, 10}, false},
		{"diagonal apart", Rect{0, 0, 10, 10}, Rect{20, 20, 10, 10}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Collide(tt.a, tt.b))
			assert.Equal(t, tt.want, Collide(tt.b, tt.a), "collision must be symmetric")
		})
	}
}

func TestCollideProperties(t *testing.T) {
	rng := testRNG()
	randRect := func(r *rand.Rand) Rect {
		return Rect{X: r.Float64()*200 - 100, Y: r.Float64()*200 - 100, W: r.Float64()*50 + 1, H: r.Float64()*50 + 1}
	}

	for i := 0; i < 500; i++ {
		a, b := randRect(rng), randRect(rng)
		assert.Equal(t, Collide(a, b), Collide(b, a))
		assert.True(t, Collide(a, a))

		separated := a.Right() < b.X || b.Right() < a.X || a.Bottom() < b.Y || b.Bottom() < a.Y
		if separated {
			assert.False(t, Collide(a, b), "separated rects %v %v", a, b)
		}
	}
}

func TestFirstHit(t *testing.T) {
	targets := []Rect{{100, 100, 10, 10}, {0, 0, 10, 10}, {5, 5, 10, 10}}
	at := func(i int) Rect { return targets[i] }

	assert.Equal(t, 1, FirstHit(Rect{2, 2, 4, 4}, len(targets), at, nil))
	assert.Equal(t, 2, FirstHit(Rect{2, 2, 4, 4}, len(targets), at, func(i int) bool { return i == 1 }))
	assert.Equal(t, -1, FirstHit(Rect{50, 50, 4, 4}, len(targets), at, nil))
}

func TestRectClamp(t *testing.T) {
	bounds := Rect{0, 0, 100, 100}

	assert.Equal(t, Rect{0, 90, 10, 10}, Rect{-5, 120, 10, 10}.Clamp(bounds))
	assert.Equal(t, Rect{90, 120, 10, 10}, Rect{95, 120, 10, 10}.ClampX(bounds))
	assert.Equal(t, Rect{-10, 0, 120, 10}, Rect{30, 0, 120, 10}.Clamp(bounds), "oversized rect is centered")
}

func TestRectInflateKeepsCenter(t *testing.T) {
	r := Rect{10, 20, 30, 40}
	big := r.Inflate(30, 52)

	assert.InDelta(t, r.CenterX(), big.CenterX(), 1e-9)
	assert.InDelta(t, r.CenterY(), big.CenterY(), 1e-9)
	assert.InDelta(t, 60.0, big.W, 1e-9)
	assert.InDelta(t, 92.0, big.H, 1e-9)
}

func TestMapRange(t *testing.T) {
	assert.InDelta(t, 450.0, MapRange(0.5, 0.12, 0.88, 0, 900), 1e-9)
	assert.InDelta(t, 0.0, MapRange(0.12, 0.12, 0.88, 0, 900), 1e-9)
	assert.InDelta(t, 900.0, MapRange(0.88, 0.12, 0.88, 0, 900), 1e-9)
	assert.Equal(t, 7.0, MapRange(0.5, 0.3, 0.3, 7, 20), "zero-width input maps to output minimum")
}
