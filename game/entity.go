package game

import (
	"math/rand"
	"time"
)

// Player is the pointer-controlled ship
type Player struct {
	Rect Rect

	// Velocity derived from the change in mapped pointer position
	VX, VY float64

	// Lives left (never negative)
	Lives int

	InvincibleUntil time.Duration

	ShieldActive bool
	ShieldUntil  time.Duration

	MultiShotActive bool
	MultiShotUntil  time.Duration

	// ShootCooldown is the current minimum gap between volleys
	ShootCooldown time.Duration
	LastShot      time.Duration
	hasShot       bool
}

// newPlayer places a fresh ship at its starting spot
func newPlayer(cfg Config) Player {
	return Player{
		Rect:          RectAt(cfg.ScreenWidth/2, cfg.ScreenHeight*0.75, cfg.Player.Width, cfg.Player.Height),
		Lives:         cfg.Player.Lives,
		ShootCooldown: cfg.Player.ShootCooldown,
	}
}

// Invincible reports whether the post-hit grace window is open at now
func (p *Player) Invincible(now time.Duration) bool {
	return now < p.InvincibleUntil
}

// Vulnerable reports whether a hit at now would cost a life
func (p *Player) Vulnerable(now time.Duration) bool {
	return p.Lives > 0 && !p.Invincible(now) && !p.ShieldActive
}

// canShoot reports whether the weapon cooldown has elapsed
func (p *Player) canShoot(now time.Duration) bool {
	return !p.hasShot || now-p.LastShot > p.ShootCooldown
}

// expireEffects turns off power-ups whose timers ran out
func (p *Player) expireEffects(now time.Duration, baseCooldown time.Duration) {
	if p.ShieldActive && now > p.ShieldUntil {
		p.ShieldActive = false
	}
	if p.MultiShotActive && now > p.MultiShotUntil {
		p.MultiShotActive = false
		p.ShootCooldown = baseCooldown
	}
}

// Owner tags who fired a projectile
type Owner int

const (
	OwnerPlayer Owner = iota
	OwnerEnemy
	OwnerBoss
)

func (o Owner) String() string {
	switch o {
	case OwnerPlayer:
		return "player"
	case OwnerEnemy:
		return "enemy"
	case OwnerBoss:
		return "boss"
	}
	return "unknown"
}

// Projectile is a straight-flying shot
type Projectile struct {
	Rect   Rect
	VX, VY float64
	Owner  Owner

	dead bool
}

// Step advances the projectile one frame and reports whether it is still on screen
func (p *Projectile) Step(viewport Rect) bool {
	if p.Owner == OwnerPlayer {
		// Player shots are culled on the frame after they clear the top edge.
		if p.Rect.Bottom() <= 0 {
			return false
		}
		p.Rect = p.Rect.Move(p.VX, p.VY)
		return true
	}
	p.Rect = p.Rect.Move(p.VX, p.VY)
	return Collide(p.Rect, viewport)
}

// PowerUpKind is the effect granted on pickup
type PowerUpKind int

const (
	PowerUpShield PowerUpKind = iota
	PowerUpMultiShot
)

func (k PowerUpKind) String() string {
	switch k {
	case PowerUpShield:
		return "shield"
	case PowerUpMultiShot:
		return "multi_shot"
	}
	return "unknown"
}

// randomPowerUpKind picks either kind with equal odds
func randomPowerUpKind(rng *rand.Rand) PowerUpKind {
	if rng.Intn(2) == 0 {
		return PowerUpShield
	}
	return PowerUpMultiShot
}

// PowerUp is a falling pickup
type PowerUp struct {
	Rect Rect
	Kind PowerUpKind

	dead bool
}

// Step drops the pickup and reports whether it is still above the bottom edge
func (p *PowerUp) Step(speed, screenHeight float64) bool {
	if p.Rect.Y >= screenHeight {
		return false
	}
	p.Rect = p.Rect.Move(0, speed)
	return true
}

// apply grants the pickup's effect to the player
func (k PowerUpKind) apply(p *Player, now time.Duration, cfg Config) {
	switch k {
	case PowerUpShield:
		p.ShieldActive = true
		p.ShieldUntil = now + cfg.PowerUp.ShieldLength
	case PowerUpMultiShot:
		p.MultiShotActive = true
		p.MultiShotUntil = now + cfg.PowerUp.MultiShotLength
		p.ShootCooldown = cfg.Player.ShootCooldown / 2
	}
}

// compact drops every element marked dead, preserving order
func compact[T any](items []*T, dead func(*T) bool) []*T {
	kept := items[:0]
	for _, it := range items {
		if !dead(it) {
			kept = append(kept, it)
		}
	}
	for i := len(kept); i < len(items); i++ {
		items[i] = nil
	}
	return kept
}
