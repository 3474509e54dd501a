package game

import (
	"math"
	"math/rand"
	"time"

	"github.com/jakecoffman/cp"
)

// AIState is the current behavior of an enemy
type AIState int

const (
	AIEntering AIState = iota
	AIPatrolling
	AIChasing
	AIAimingShot
	AIDodging
)

func (s AIState) String() string {
	switch s {
	case AIEntering:
		return "entering"
	case AIPatrolling:
		return "patrolling"
	case AIChasing:
		return "chasing"
	case AIAimingShot:
		return "aiming"
	case AIDodging:
		return "dodging"
	}
	return "unknown"
}

const (
	// Dodgers ignore shots whose center is more than this far above their own
	dodgerLookahead = 50.0

	// Chasers stop steering when this close to the player's column
	chaseDeadZone = 5.0

	shooterFireLine = 0.55
	chaserFireLine  = 0.65
)

// Enemy is a regular enemy driven by a per-instance state machine
type Enemy struct {
	Rect    Rect
	Variant Variant

	// Level is the player level at spawn time; it scales stats and the kill reward
	Level  int
	Health int
	State  AIState

	stats       VariantStats
	stateFrames int
	shotTimer   int
	dodgeTimer  int
	dodgeDir    float64
	patrolDir   float64
	patrolMin   float64
	patrolMax   float64
	entryRow    float64
	speedX      float64

	dead bool
}

// NewEnemy creates an enemy of variant v with its top-left corner at (x, y)
func NewEnemy(x, y float64, v Variant, level int, cfg Config, rng *rand.Rand) *Enemy {
	stats := GetVariantStats(v, level, cfg.Enemy)
	e := &Enemy{
		Rect:      Rect{X: x, Y: y, W: cfg.Enemy.Width, H: cfg.Enemy.Height},
		Variant:   v,
		Level:     level,
		Health:    stats.Health,
		State:     AIEntering,
		stats:     stats,
		shotTimer: rng.Intn(stats.ShotCooldown/2 + 1),
		dodgeDir:  1,
		patrolDir: 1,
		entryRow:  float64(30 + rng.Intn(41)),
	}
	if rng.Float64() < 0.5 {
		e.patrolDir = -1
	}
	e.patrolMin, e.patrolMax = x-50, x+50
	return e
}

// Stats returns the variant parameters this enemy was created with
func (e *Enemy) Stats() VariantStats {
	return e.stats
}

// ApplyDamage subtracts amount from health and reports whether the enemy is destroyed
func (e *Enemy) ApplyDamage(amount int) bool {
	e.Health -= amount
	return e.Health <= 0
}

// Gone reports whether the enemy has fallen past the despawn line
func (e *Enemy) Gone(cfg Config) bool {
	return e.Rect.Y > cfg.ScreenHeight+cfg.Enemy.DespawnMargin
}

// aiContext is what an enemy can observe during one frame
type aiContext struct {
	now      time.Duration
	player   Rect
	shots    []*Projectile
	viewport Rect
	cfg      *Config
	rng      *rand.Rand
}

// Update advances the enemy by one frame and returns the projectile it fired, if any
func (e *Enemy) Update(ctx *aiContext) *Projectile {
	var shot *Projectile
	e.stateFrames++
	e.speedX = 0

	// Dodging takes priority over whatever the current state would do this frame.
	e.detectDodge(ctx)

	speedY := e.stats.SpeedY
	switch e.State {
	case AIEntering:
		e.Rect.Y += speedY * 0.6
		if e.Rect.Y > e.entryRow {
			if e.Variant == VariantChaser {
				e.setState(AIChasing)
			} else {
				e.enterPatrol(ctx)
			}
		}

	case AIPatrolling:
		e.Rect.Y += speedY
		switch {
		case e.Rect.X <= e.patrolMin:
			e.patrolDir = 1
		case e.Rect.X >= e.patrolMax:
			e.patrolDir = -1
		}
		e.speedX = e.patrolSpeed() * e.patrolDir
		switch e.Variant {
		case VariantShooter:
			if e.Rect.CenterY() < ctx.viewport.H*shooterFireLine {
				e.tickShotTimer()
			}
		case VariantNormal:
			if ctx.rng.Float64() < ctx.cfg.Enemy.AimChance {
				e.setState(AIAimingShot)
			}
		case VariantChaser, VariantDodger:
		}

	case AIChasing:
		e.Rect.Y += speedY * 0.9
		dx := ctx.player.CenterX() - e.Rect.CenterX()
		if math.Abs(dx) > chaseDeadZone {
			e.speedX = math.Copysign(math.Min(math.Abs(dx*0.05), speedY*e.stats.Aggressiveness), dx)
		}
		if e.Rect.CenterY() < ctx.viewport.H*chaserFireLine {
			e.tickShotTimer()
		}

	case AIAimingShot:
		e.Rect.Y += speedY * 0.3
		if e.stateFrames > ctx.cfg.Enemy.AimFrames {
			shot = e.fire(ctx)
			e.shotTimer = e.stats.ShotCooldown + ctx.rng.Intn(21) - 10
			e.dodgeDir = 1
			if ctx.rng.Float64() < 0.5 {
				e.dodgeDir = -1
			}
			e.setState(AIDodging)
		}

	case AIDodging:
		e.Rect.Y += speedY * 0.8
		e.speedX = (speedY*2.5 + float64(e.Level)*0.3) * e.dodgeDir
		if e.stateFrames > e.stats.DodgeDuration {
			e.enterPatrol(ctx)
		}
	}

	if e.dodgeTimer > 0 {
		e.dodgeTimer--
	}

	e.Rect.X += e.speedX
	e.Rect = e.Rect.ClampX(ctx.viewport)
	return shot
}

func (e *Enemy) setState(s AIState) {
	e.State = s
	e.stateFrames = 0
}

func (e *Enemy) tickShotTimer() {
	e.shotTimer--
	if e.shotTimer <= 0 {
		e.setState(AIAimingShot)
	}
}

func (e *Enemy) patrolSpeed() float64 {
	return e.stats.SpeedY*0.5 + float64(e.Level)*0.1
}

// enterPatrol switches to patrolling with freshly rolled bounds around the current column
func (e *Enemy) enterPatrol(ctx *aiContext) {
	e.setState(AIPatrolling)
	e.patrolMin = math.Max(20, e.Rect.X-float64(40+ctx.rng.Intn(41)))
	e.patrolMax = math.Min(ctx.viewport.W-e.Rect.W-20, e.Rect.X+float64(40+ctx.rng.Intn(41)))
}

// detectDodge starts a dodge when a player shot enters the variant's detection box
func (e *Enemy) detectDodge(ctx *aiContext) {
	if e.dodgeTimer > 0 {
		return
	}
	box := e.Rect.Inflate(e.Rect.W*e.stats.DetectW, e.Rect.H*e.stats.DetectH)
	for _, s := range ctx.shots {
		if s.dead || !Collide(box, s.Rect) {
			continue
		}
		if e.Variant == VariantDodger && s.Rect.CenterY() <= e.Rect.CenterY()-dodgerLookahead {
			continue
		}
		e.dodgeTimer = e.stats.DodgeCooldown + e.stats.DodgeDuration
		e.dodgeDir = -1
		if s.Rect.CenterX() < e.Rect.CenterX() {
			e.dodgeDir = 1
		}
		e.setState(AIDodging)
		return
	}
}

// fire launches one shot toward the player's bottom edge
func (e *Enemy) fire(ctx *aiContext) *Projectile {
	cfg := ctx.cfg.Enemy
	aim := cp.Vector{
		X: ctx.player.CenterX() - e.Rect.CenterX(),
		Y: ctx.player.Bottom() - e.Rect.Bottom(),
	}
	dist := aim.Length()
	if dist == 0 {
		dist = 1
	}
	speed := 2*cfg.BulletSpeed + 0.5*float64(e.Level)
	vel := aim.Mult(speed / dist)
	if vel.Y <= 0 {
		vel.Y = 2 * cfg.BulletSpeed
	}
	return &Projectile{
		Rect:  Rect{X: e.Rect.CenterX() - cfg.BulletWidth/2, Y: e.Rect.Bottom(), W: cfg.BulletWidth, H: cfg.BulletHeight},
		VX:    vel.X,
		VY:    vel.Y,
		Owner: OwnerEnemy,
	}
}
