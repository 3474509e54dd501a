package game

import "time"

// Snapshot is a read-only copy of everything a presentation sink may draw.
// Nothing in it aliases session memory.
type Snapshot struct {
	Frame uint64
	Time  time.Duration

	State          State
	Score          int
	Level          int
	Lives          int
	NextLevelScore int

	Viewport    Rect
	Player      PlayerView
	Enemies     []EnemyView
	Projectiles []ProjectileView
	Boss        *BossView
	PowerUps    []PowerUpView
	Explosions  []ExplosionView

	// Banner is true while the level-up banner is showing
	Banner bool

	// Calibration is the start handshake progress in [0,1]
	Calibration float64
	LastError   string

	Debug DebugInfo
}

// PlayerView is the drawable state of the player ship
type PlayerView struct {
	Rect       Rect
	Invincible bool
	Shielded   bool
	MultiShot  bool
}

// EnemyView is the drawable state of one enemy
type EnemyView struct {
	Rect    Rect
	Variant Variant
	State   AIState
	Health  int
}

// ProjectileView is the drawable state of one shot
type ProjectileView struct {
	Rect  Rect
	Owner Owner
}

// BossView is the drawable state of the boss
type BossView struct {
	Rect           Rect
	Phase          int
	State          BossState
	HealthFraction float64
}

// PowerUpView is the drawable state of a pickup
type PowerUpView struct {
	Rect Rect
	Kind PowerUpKind
}

// ExplosionView holds a copy of an explosion's particles
type ExplosionView struct {
	Particles []Particle
}

// DebugInfo is the debug overlay payload
type DebugInfo struct {
	Enabled     bool
	FPS         float64
	Enemies     int
	Projectiles int
	PowerUps    int
	Explosions  int
	State       string
	RunID       string
}

// Snapshot copies the current session state
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		Time:           s.now,
		State:          s.state,
		Score:          s.score,
		Level:          s.level,
		Lives:          s.player.Lives,
		NextLevelScore: int(s.threshold),
		Viewport:       s.cfg.Viewport(),
		Player: PlayerView{
			Rect:       s.player.Rect,
			Invincible: s.player.Invincible(s.now),
			Shielded:   s.player.ShieldActive,
			MultiShot:  s.player.MultiShotActive,
		},
		Banner:      s.state == StateLevelUp,
		Calibration: s.calibration,
	}
	if s.lastErr != nil {
		snap.LastError = s.lastErr.Error()
	}

	snap.Enemies = make([]EnemyView, 0, len(s.enemies))
	for _, e := range s.enemies {
		snap.Enemies = append(snap.Enemies, EnemyView{Rect: e.Rect, Variant: e.Variant, State: e.State, Health: e.Health})
	}

	snap.Projectiles = make([]ProjectileView, 0, len(s.playerShots)+len(s.enemyShots)+len(s.bossShots))
	for _, group := range [][]*Projectile{s.playerShots, s.enemyShots, s.bossShots} {
		for _, p := range group {
			snap.Projectiles = append(snap.Projectiles, ProjectileView{Rect: p.Rect, Owner: p.Owner})
		}
	}

	if s.boss != nil {
		snap.Boss = &BossView{
			Rect:           s.boss.Rect,
			Phase:          s.boss.Phase,
			State:          s.boss.State,
			HealthFraction: s.boss.HealthFraction(),
		}
	}

	snap.PowerUps = make([]PowerUpView, 0, len(s.powerUps))
	for _, p := range s.powerUps {
		snap.PowerUps = append(snap.PowerUps, PowerUpView{Rect: p.Rect, Kind: p.Kind})
	}

	snap.Explosions = make([]ExplosionView, 0, len(s.explosions))
	for _, e := range s.explosions {
		snap.Explosions = append(snap.Explosions, ExplosionView{Particles: append([]Particle(nil), e.Particles...)})
	}

	snap.Debug = DebugInfo{
		Enabled:     s.debug,
		Enemies:     len(snap.Enemies),
		Projectiles: len(snap.Projectiles),
		PowerUps:    len(snap.PowerUps),
		Explosions:  len(snap.Explosions),
		State:       s.state.String(),
	}
	return snap
}
