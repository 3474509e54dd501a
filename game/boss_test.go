package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBossHealth(t *testing.T) {
	cfg := DefaultConfig().Boss

	assert.Equal(t, 40, BossHealth(3, cfg))
	assert.Equal(t, 60, BossHealth(4, cfg))
	assert.Equal(t, 80, BossHealth(5, cfg))
}

func TestBossEntersThenAttacks(t *testing.T) {
	cfg := DefaultConfig()
	ctx := newAIContext(&cfg, RectAt(450, 600, 55, 45))
	b := NewBoss(3, cfg)
	require.Less(t, b.Rect.Bottom(), 1.0, "boss starts above the viewport")

	for i := 0; i < 1000 && b.State == BossEntering; i++ {
		b.Update(ctx)
	}
	assert.Equal(t, BossPhase1Attack, b.State)
	assert.GreaterOrEqual(t, b.Rect.Y, cfg.Boss.TopOffset)
	assert.Less(t, b.Rect.Y, cfg.Boss.TopOffset+cfg.Enemy.BaseSpeed)
}

func TestBossPhase1Fan(t *testing.T) {
	cfg := DefaultConfig()
	ctx := newAIContext(&cfg, RectAt(450, 600, 55, 45))
	ctx.now = time.Second

	b := NewBoss(3, cfg)
	b.Rect.Y = cfg.Boss.TopOffset
	b.setState(BossPhase1Attack)

	shots, shift := b.Update(ctx)
	assert.False(t, shift)
	require.Len(t, shots, 4)
	for _, s := range shots {
		assert.Equal(t, OwnerBoss, s.Owner)
		assert.Greater(t, s.VY, 0.0)
	}

	shots, _ = b.Update(ctx)
	assert.Empty(t, shots, "cooldown has not elapsed")

	ctx.now += cfg.Boss.ShootCooldown + time.Millisecond
	shots, _ = b.Update(ctx)
	assert.Len(t, shots, 4)
}

func TestBossPhaseTransition(t *testing.T) {
	cfg := DefaultConfig()
	ctx := newAIContext(&cfg, RectAt(450, 600, 55, 45))

	b := NewBoss(3, cfg)
	b.Rect.Y = cfg.Boss.TopOffset
	b.setState(BossPhase1Attack)

	b.Health = b.MaxHealth / 2
	_, shift := b.Update(ctx)
	assert.False(t, shift, "exactly half is not below half")

	b.Health--
	_, shift = b.Update(ctx)
	require.True(t, shift)
	assert.Equal(t, BossPhaseTransition, b.State)
	assert.Equal(t, 2, b.Phase)

	speed := b.SpeedX
	for i := 0; i < cfg.Boss.TransitionLen+1; i++ {
		b.Update(ctx)
		assert.True(t, Collide(b.Rect, ctx.viewport))
		assert.GreaterOrEqual(t, b.Rect.X, 0.0)
		assert.LessOrEqual(t, b.Rect.Right(), cfg.ScreenWidth)
	}
	assert.Equal(t, BossPhase2Attack, b.State)
	assert.Equal(t, 550*time.Millisecond, b.ShootCooldown)
	assert.InDelta(t, speed*1.3, b.SpeedX, 1e-9)
}

func TestBossCooldownFloor(t *testing.T) {
	cfg := DefaultConfig()
	ctx := newAIContext(&cfg, RectAt(450, 600, 55, 45))

	b := NewBoss(3, cfg)
	b.ShootCooldown = 350 * time.Millisecond
	b.setState(BossPhaseTransition)
	for b.State == BossPhaseTransition {
		b.Update(ctx)
	}
	assert.Equal(t, cfg.Boss.MinCooldown, b.ShootCooldown)
}

func TestBossPhase2Volley(t *testing.T) {
	cfg := DefaultConfig()
	ctx := newAIContext(&cfg, RectAt(100, 600, 55, 45))
	ctx.now = time.Second

	b := NewBoss(3, cfg)
	b.Rect.Y = cfg.Boss.TopOffset
	b.Phase = 2
	b.setState(BossPhase2Attack)

	shots, _ := b.Update(ctx)
	require.Len(t, shots, 5)
	for _, s := range shots {
		assert.Greater(t, s.VY, 0.0)
		assert.Less(t, s.VX, 0.0, "player is left of every muzzle")
	}
}

func TestBossBouncesOffEdges(t *testing.T) {
	cfg := DefaultConfig()
	ctx := newAIContext(&cfg, RectAt(450, 600, 55, 45))

	b := NewBoss(3, cfg)
	b.Rect.Y = cfg.Boss.TopOffset
	b.Rect.X = cfg.ScreenWidth - b.Rect.W - 1
	b.LastShot = time.Hour
	b.setState(BossPhase1Attack)

	b.Update(ctx)
	assert.Less(t, b.SpeedX, 0.0)
}

func TestBossHealthFraction(t *testing.T) {
	b := NewBoss(3, DefaultConfig())
	assert.InDelta(t, 1.0, b.HealthFraction(), 1e-9)

	b.Health = 10
	assert.InDelta(t, 0.25, b.HealthFraction(), 1e-9)

	b.Health = -3
	assert.Zero(t, b.HealthFraction())
}
