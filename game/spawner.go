package game

import (
	"math"
	"math/rand"
)

const (
	// spawnIntervalStep is how many frames each level shaves off the spawn interval
	spawnIntervalStep = 4

	// variantRollShift is added to the variant roll per level above 1
	variantRollShift = 0.03
)

// variantThresholds partition the variant roll: below the first is normal,
// then shooter, then chaser, and anything at or past the last is a dodger.
var variantThresholds = [...]float64{0.35, 0.60, 0.80}

// Spawner emits regular enemies on a frame timer
type Spawner struct {
	timer int
}

// SpawnInterval returns the number of frames between spawns at level
func SpawnInterval(level int, cfg EnemyConfig) int {
	return max(cfg.MinSpawnInterval, cfg.SpawnInterval-spawnIntervalStep*(level-1))
}

// RollVariant maps a shifted roll onto a variant
func RollVariant(roll float64) Variant {
	for i, t := range variantThresholds {
		if roll < t {
			return Variants[i]
		}
	}
	return VariantDodger
}

// VariantOdds returns the probability of each variant (indexed like Variants)
// for a uniform roll in [0,1) shifted by the level bonus.
func VariantOdds(level int) [4]float64 {
	lo := variantRollShift * float64(level-1)
	hi := lo + 1

	var odds [4]float64
	prev := math.Inf(-1)
	for i := range odds {
		next := math.Inf(1)
		if i < len(variantThresholds) {
			next = variantThresholds[i]
		}
		odds[i] = math.Max(0, math.Min(hi, next)-math.Max(lo, prev))
		prev = next
	}
	return odds
}

// Tick advances the spawn timer and returns a new enemy when it fires
func (s *Spawner) Tick(level int, cfg Config, rng *rand.Rand) *Enemy {
	s.timer++
	if s.timer < SpawnInterval(level, cfg.Enemy) {
		return nil
	}
	s.timer = 0

	x := float64(rng.Intn(int(cfg.ScreenWidth-cfg.Enemy.Width) + 1))
	roll := rng.Float64() + variantRollShift*float64(level-1)
	return NewEnemy(x, -cfg.Enemy.Height, RollVariant(roll), level, cfg, rng)
}

// Reset rewinds the spawn timer
func (s *Spawner) Reset() {
	s.timer = 0
}
