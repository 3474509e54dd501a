package game

import (
	"math"
	"time"

	"github.com/jakecoffman/cp"
)

// BossState is the current stage of a boss fight
type BossState int

const (
	BossEntering BossState = iota
	BossPhase1Attack
	BossPhaseTransition
	BossPhase2Attack
)

func (s BossState) String() string {
	switch s {
	case BossEntering:
		return "entering"
	case BossPhase1Attack:
		return "phase1"
	case BossPhaseTransition:
		return "transition"
	case BossPhase2Attack:
		return "phase2"
	}
	return "unknown"
}

// Boss is the single heavy enemy of a boss fight
type Boss struct {
	Rect      Rect
	Health    int
	MaxHealth int
	Phase     int
	State     BossState

	SpeedX        float64
	ShootCooldown time.Duration
	LastShot      time.Duration

	stateFrames int
}

// BossHealth returns the starting health of a boss fought at level
func BossHealth(level int, cfg BossConfig) int {
	scale := 1 + cfg.HealthPerLevel*float64(level-cfg.TriggerLevel)
	return max(1, int(float64(cfg.BaseHealth)*scale))
}

// NewBoss places a fresh boss just above the viewport, horizontally centered
func NewBoss(level int, cfg Config) *Boss {
	health := BossHealth(level, cfg.Boss)
	return &Boss{
		Rect:          Rect{X: cfg.ScreenWidth/2 - cfg.Boss.Width/2, Y: -cfg.Boss.Height, W: cfg.Boss.Width, H: cfg.Boss.Height},
		Health:        health,
		MaxHealth:     health,
		Phase:         1,
		State:         BossEntering,
		SpeedX:        cfg.Boss.Speed,
		ShootCooldown: cfg.Boss.ShootCooldown,
	}
}

// HealthFraction returns the remaining health in [0,1]
func (b *Boss) HealthFraction() float64 {
	if b.MaxHealth <= 0 {
		return 0
	}
	return math.Max(0, float64(b.Health)/float64(b.MaxHealth))
}

// Update advances the boss one frame. It returns the shots fired and whether
// the boss just entered its phase transition.
func (b *Boss) Update(ctx *aiContext) (shots []*Projectile, phaseShift bool) {
	cfg := ctx.cfg
	b.stateFrames++

	switch b.State {
	case BossEntering:
		b.Rect.Y += cfg.Enemy.BaseSpeed * 0.5
		if b.Rect.Y >= cfg.Boss.TopOffset {
			b.setState(BossPhase1Attack)
		}

	case BossPhase1Attack:
		b.bounce(ctx.viewport)
		if b.ready(ctx.now) {
			shots = b.fan(ctx)
		}
		if b.Phase == 1 && float64(b.Health) < float64(b.MaxHealth)*cfg.Boss.PhaseFactor {
			b.Phase = 2
			b.setState(BossPhaseTransition)
			phaseShift = true
		}

	case BossPhaseTransition:
		b.Rect = b.Rect.Move(float64(ctx.rng.Intn(11)-5), float64(ctx.rng.Intn(5)-2)).Clamp(ctx.viewport)
		if b.stateFrames > cfg.Boss.TransitionLen {
			b.ShootCooldown = max(cfg.Boss.MinCooldown, b.ShootCooldown-150*time.Millisecond)
			b.SpeedX *= 1.3
			b.setState(BossPhase2Attack)
		}

	case BossPhase2Attack:
		b.bounce(ctx.viewport)
		if b.ready(ctx.now) {
			shots = b.volley(ctx)
		}
	}
	return shots, phaseShift
}

func (b *Boss) setState(s BossState) {
	b.State = s
	b.stateFrames = 0
}

// bounce moves horizontally and reverses on touching either viewport edge
func (b *Boss) bounce(viewport Rect) {
	b.Rect.X += b.SpeedX
	if b.Rect.X < viewport.X || b.Rect.Right() > viewport.Right() {
		b.SpeedX = -b.SpeedX
	}
}

func (b *Boss) ready(now time.Duration) bool {
	if now-b.LastShot > b.ShootCooldown {
		b.LastShot = now
		return true
	}
	return false
}

// fan spreads 3+phase shots across the lower half-plane
func (b *Boss) fan(ctx *aiContext) []*Projectile {
	n := 3 + b.Phase
	spread := math.Pi / float64(n+1)
	speed := ctx.cfg.Enemy.BulletSpeed + 1.5 + float64(b.Phase)

	shots := make([]*Projectile, 0, n)
	for i := 0; i < n; i++ {
		angle := float64(i+1)*spread - math.Pi/2 + (ctx.rng.Float64()*0.2 - 0.1)
		vel := cp.ForAngle(angle).Mult(speed)
		if vel.Y <= 0 {
			vel.Y = speed
		}
		x := b.Rect.CenterX() + float64((i-n/2)*20)
		shots = append(shots, b.shot(ctx.cfg, x, vel))
	}
	return shots
}

// volley fires five shots from a row of muzzles, each aimed at the player's
// column on the bottom edge of the screen
func (b *Boss) volley(ctx *aiContext) []*Projectile {
	speed := ctx.cfg.Enemy.BulletSpeed + 3 + float64(b.Phase)

	shots := make([]*Projectile, 0, 5)
	for i := -2; i <= 2; i++ {
		x := b.Rect.CenterX() + float64(i*30)
		aim := cp.Vector{X: ctx.player.CenterX() - x, Y: ctx.viewport.H}
		dist := aim.Length()
		if dist == 0 {
			dist = 1
		}
		vel := aim.Mult(speed / dist)
		if vel.Y <= 0 {
			vel.Y = speed
		}
		shots = append(shots, b.shot(ctx.cfg, x, vel))
	}
	return shots
}

func (b *Boss) shot(cfg *Config, x float64, vel cp.Vector) *Projectile {
	return &Projectile{
		Rect:  Rect{X: x - cfg.Enemy.BulletWidth/2, Y: b.Rect.Bottom(), W: cfg.Enemy.BulletWidth, H: cfg.Enemy.BulletHeight},
		VX:    vel.X,
		VY:    vel.Y,
		Owner: OwnerBoss,
	}
}
