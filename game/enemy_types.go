package game

import "math"

// Variant defines the behavioral subtype of an enemy
type Variant int

const (
	VariantNormal  Variant = iota // Drifts down, occasionally aims, sidesteps close shots
	VariantShooter                // Fires aimed shots on a cooldown
	VariantChaser                 // Steers toward the player
	VariantDodger                 // Fast and evasive, fragile
)

// Variants lists every enemy variant in spawn-roll order
var Variants = []Variant{VariantNormal, VariantShooter, VariantChaser, VariantDodger}

func (v Variant) String() string {
	switch v {
	case VariantNormal:
		return "normal"
	case VariantShooter:
		return "shooter"
	case VariantChaser:
		return "chaser"
	case VariantDodger:
		return "dodger"
	}
	return "unknown"
}

// VariantStats holds per-variant parameters for a given level
type VariantStats struct {
	Health int

	// SpeedY is the vertical speed in pixels per frame
	SpeedY float64

	// ShotCooldown is the number of frames between aimed shots
	ShotCooldown int

	// DodgeCooldown is the number of frames after a dodge starts before another may begin
	DodgeCooldown int
	DodgeDuration int

	// Aggressiveness caps chase steering relative to SpeedY
	Aggressiveness float64

	// Detection box inflation, as multiples of the enemy's own width and height
	DetectW, DetectH float64
}

// GetVariantStats returns the stats of variant v at level
func GetVariantStats(v Variant, level int, cfg EnemyConfig) VariantStats {
	lvl := float64(level)
	stats := VariantStats{
		Health:        1,
		SpeedY:        cfg.BaseSpeed + (lvl-1)*cfg.SpeedPerLevel,
		ShotCooldown:  cfg.ShotCooldown,
		DodgeCooldown: cfg.DodgeCooldown,
		DodgeDuration: cfg.DodgeDuration,
	}

	switch v {
	case VariantNormal:
		stats.Health = roundInt((1 + lvl/4) * 1.5)
		stats.DodgeCooldown = 0
		stats.DetectW, stats.DetectH = 1, 1
	case VariantShooter:
		stats.Health = roundInt((1 + lvl/3) * 1.5)
		stats.ShotCooldown = max(20, roundInt((100-(lvl-1)*7)*0.8))
		stats.DetectW, stats.DetectH = 1, 1.3
	case VariantChaser:
		stats.Health = roundInt((2 + lvl/2) * 1.5)
		stats.Aggressiveness = 0.45*1.2 + (lvl-1)*0.02
		stats.DetectW, stats.DetectH = 1, 1.3
	case VariantDodger:
		stats.Health = roundInt(1.5)
		stats.SpeedY *= 1.2 * 1.1
		stats.DodgeCooldown = cfg.DodgerCooldown
		stats.DetectW, stats.DetectH = 1.5, 2
	}
	return stats
}

func roundInt(f float64) int {
	return int(math.Round(f))
}
