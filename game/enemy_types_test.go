package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetVariantStats(t *testing.T) {
	cfg := DefaultConfig().Enemy

	tests := []struct {
		variant  Variant
		level    int
		health   int
		cooldown int
	}{
		{VariantNormal, 1, 2, 120},
		{VariantNormal, 4, 3, 120},
		{VariantShooter, 1, 2, 80},
		{VariantShooter, 6, 5, 52},
		{VariantShooter, 13, 8, 20},
		{VariantChaser, 1, 4, 120},
		{VariantChaser, 4, 6, 120},
		{VariantDodger, 1, 2, 120},
		{VariantDodger, 9, 2, 120},
	}
	for _, tt := range tests {
		t.Run(tt.variant.String(), func(t *testing.T) {
			stats := GetVariantStats(tt.variant, tt.level, cfg)
			assert.Equal(t, tt.health, stats.Health)
			assert.Equal(t, tt.cooldown, stats.ShotCooldown)
			assert.Equal(t, 15, stats.DodgeDuration)
		})
	}
}

func TestVariantSpeedScalesWithLevel(t *testing.T) {
	cfg := DefaultConfig().Enemy

	assert.InDelta(t, 2.2, GetVariantStats(VariantNormal, 1, cfg).SpeedY, 1e-9)
	assert.InDelta(t, 2.7, GetVariantStats(VariantNormal, 3, cfg).SpeedY, 1e-9)
	assert.InDelta(t, 2.2*1.32, GetVariantStats(VariantDodger, 1, cfg).SpeedY, 1e-9)
	assert.InDelta(t, 0.58, GetVariantStats(VariantChaser, 3, cfg).Aggressiveness, 1e-9)
}

func TestVariantDodgeCooldowns(t *testing.T) {
	cfg := DefaultConfig().Enemy

	assert.Equal(t, 0, GetVariantStats(VariantNormal, 1, cfg).DodgeCooldown)
	assert.Equal(t, 45, GetVariantStats(VariantShooter, 1, cfg).DodgeCooldown)
	assert.Equal(t, 45, GetVariantStats(VariantChaser, 1, cfg).DodgeCooldown)
	assert.Equal(t, 35, GetVariantStats(VariantDodger, 1, cfg).DodgeCooldown)
}
