package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func playerShotAt(r Rect) *Projectile {
	return &Projectile{Rect: RectAt(r.CenterX(), r.CenterY(), 7, 22), VY: -15, Owner: OwnerPlayer}
}

func TestNormalEnemyTakesTwoHits(t *testing.T) {
	s := newPlayingSession()
	s.player.Rect = RectAt(450, 650, 55, 45)
	e := NewEnemy(400, 100, VariantNormal, 1, s.cfg, s.rng)
	s.enemies = []*Enemy{e}

	s.playerShots = []*Projectile{playerShotAt(e.Rect)}
	s.resolveCollisions(time.Second)
	assert.Equal(t, 1, e.Health)
	assert.Equal(t, 0, s.score)
	assert.Len(t, s.enemies, 1)
	assert.Empty(t, s.playerShots)
	assert.Len(t, s.explosions, 1)

	s.playerShots = []*Projectile{playerShotAt(e.Rect)}
	s.resolveCollisions(time.Second)
	assert.Equal(t, 15, s.score)
	assert.Empty(t, s.enemies)
}

func TestKillScoreUsesEnemyLevel(t *testing.T) {
	s := newPlayingSession()
	s.player.Rect = RectAt(450, 650, 55, 45)
	e := NewEnemy(400, 100, VariantDodger, 4, s.cfg, s.rng)
	e.Health = 1
	s.enemies = []*Enemy{e}
	s.playerShots = []*Projectile{playerShotAt(e.Rect)}

	s.resolveCollisions(time.Second)
	assert.Equal(t, 60, s.score)
}

func TestShotDamagesOnlyFirstEnemy(t *testing.T) {
	s := newPlayingSession()
	s.player.Rect = RectAt(450, 650, 55, 45)
	a := NewEnemy(400, 100, VariantChaser, 1, s.cfg, s.rng)
	b := NewEnemy(405, 105, VariantChaser, 1, s.cfg, s.rng)
	s.enemies = []*Enemy{a, b}
	s.playerShots = []*Projectile{playerShotAt(Rect{X: 410, Y: 110, W: 10, H: 10})}

	s.resolveCollisions(time.Second)
	assert.Equal(t, 3, a.Health)
	assert.Equal(t, 4, b.Health)
}

func TestShotsSkipEnemyKilledThisFrame(t *testing.T) {
	s := newPlayingSession()
	s.player.Rect = RectAt(450, 650, 55, 45)
	a := NewEnemy(400, 100, VariantNormal, 1, s.cfg, s.rng)
	b := NewEnemy(400, 100, VariantNormal, 1, s.cfg, s.rng)
	a.Health = 1
	s.enemies = []*Enemy{a, b}
	s.playerShots = []*Projectile{playerShotAt(a.Rect), playerShotAt(a.Rect)}

	s.resolveCollisions(time.Second)
	require.Len(t, s.enemies, 1)
	assert.Same(t, b, s.enemies[0])
	assert.Equal(t, 1, b.Health)
	assert.Equal(t, 15, s.score)
}

func TestPlayerRamsEnemy(t *testing.T) {
	s := newPlayingSession()
	now := 10 * time.Second
	s.player.Rect = RectAt(450, 600, 55, 45)
	e := NewEnemy(430, 590, VariantNormal, 1, s.cfg, s.rng)
	s.enemies = []*Enemy{e}

	s.resolveCollisions(now)

	assert.Equal(t, 2, s.player.Lives)
	assert.Equal(t, now+s.cfg.Player.Invincibility, s.player.InvincibleUntil)
	assert.True(t, s.player.Invincible(now))
	assert.Empty(t, s.enemies)
	assert.Len(t, s.explosions, 2)
	assert.Equal(t, StatePlaying, s.state)
}

func TestProtectionGatesDamage(t *testing.T) {
	tests := []struct {
		name    string
		protect func(p *Player, now time.Duration)
	}{
		{"invincible", func(p *Player, now time.Duration) { p.InvincibleUntil = now + time.Second }},
		{"shield", func(p *Player, now time.Duration) { p.ShieldActive, p.ShieldUntil = true, now + time.Second }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newPlayingSession()
			s.state = StateBossFight
			now := 10 * time.Second
			s.player.Rect = RectAt(450, 600, 55, 45)
			tt.protect(&s.player, now)

			pr := s.player.Rect
			for i := 0; i < 5; i++ {
				s.enemies = append(s.enemies, NewEnemy(pr.X, pr.Y, VariantNormal, 1, s.cfg, s.rng))
				s.enemyShots = append(s.enemyShots, &Projectile{Rect: RectAt(pr.CenterX(), pr.CenterY(), 7, 14), Owner: OwnerEnemy})
				s.bossShots = append(s.bossShots, &Projectile{Rect: RectAt(pr.CenterX(), pr.CenterY(), 7, 14), Owner: OwnerBoss})
			}

			s.resolveCollisions(now)
			assert.Equal(t, 3, s.player.Lives)
			assert.Len(t, s.enemies, 5)
			assert.Len(t, s.enemyShots, 5)
			assert.Len(t, s.bossShots, 5)
		})
	}
}

func TestAtMostOneLifePerFrame(t *testing.T) {
	s := newPlayingSession()
	now := 10 * time.Second
	s.player.Rect = RectAt(450, 600, 55, 45)
	pr := s.player.Rect

	s.enemies = []*Enemy{NewEnemy(pr.X, pr.Y, VariantNormal, 1, s.cfg, s.rng)}
	s.enemyShots = []*Projectile{{Rect: RectAt(pr.CenterX(), pr.CenterY(), 7, 14), Owner: OwnerEnemy}}
	s.bossShots = []*Projectile{{Rect: RectAt(pr.CenterX(), pr.CenterY(), 7, 14), Owner: OwnerBoss}}

	s.resolveCollisions(now)
	assert.Equal(t, 2, s.player.Lives)
	assert.Empty(t, s.bossShots, "boss shot is resolved first")
	assert.Len(t, s.enemies, 1)
	assert.Len(t, s.enemyShots, 1)
}

func TestLastLifeEndsGame(t *testing.T) {
	s := newPlayingSession()
	s.player.Lives = 1
	s.player.Rect = RectAt(450, 600, 55, 45)
	pr := s.player.Rect
	s.enemyShots = []*Projectile{{Rect: RectAt(pr.CenterX(), pr.CenterY(), 7, 14), Owner: OwnerEnemy}}

	s.resolveCollisions(10 * time.Second)
	assert.Equal(t, 0, s.player.Lives)
	assert.Equal(t, StateGameOver, s.state)

	s.loseLife(11 * time.Second)
	assert.Equal(t, 0, s.player.Lives, "lives never go negative")
}

func TestBossDeath(t *testing.T) {
	s := newPlayingSession()
	s.state = StateBossFight
	s.level = 3
	s.score = 1000
	s.player.Rect = RectAt(450, 650, 55, 45)
	s.boss = NewBoss(3, s.cfg)
	s.boss.Rect.Y = s.cfg.Boss.TopOffset
	s.boss.Health = 1
	center := s.boss.Rect.Center()

	s.playerShots = []*Projectile{playerShotAt(s.boss.Rect), playerShotAt(s.boss.Rect)}
	s.resolveCollisions(time.Second)

	assert.Equal(t, 1000+20+750*3, s.score)
	assert.Nil(t, s.boss)
	assert.Equal(t, StatePlaying, s.state)
	require.Len(t, s.powerUps, 1)
	assert.InDelta(t, center.X, s.powerUps[0].Rect.CenterX(), 1e-9)
	assert.InDelta(t, center.Y, s.powerUps[0].Rect.CenterY(), 1e-9)
	assert.Equal(t, s.cfg.PowerUp.BossDropSize, s.powerUps[0].Rect.W)
	assert.Len(t, s.playerShots, 1, "shots after the kill are not consumed")
}

func TestBossHitScores(t *testing.T) {
	s := newPlayingSession()
	s.state = StateBossFight
	s.player.Rect = RectAt(450, 650, 55, 45)
	s.boss = NewBoss(3, s.cfg)
	s.boss.Rect.Y = s.cfg.Boss.TopOffset

	s.playerShots = []*Projectile{playerShotAt(s.boss.Rect), playerShotAt(s.boss.Rect), playerShotAt(s.boss.Rect)}
	s.resolveCollisions(time.Second)

	assert.Equal(t, 60, s.score)
	assert.Equal(t, 37, s.boss.Health)
	assert.Len(t, s.explosions, 3)
}

func TestPowerUpPickup(t *testing.T) {
	s := newPlayingSession()
	now := 5 * time.Second
	s.player.Rect = RectAt(450, 600, 55, 45)

	s.powerUps = []*PowerUp{
		{Rect: RectAt(450, 600, 36, 36), Kind: PowerUpMultiShot},
		{Rect: RectAt(450, 600, 36, 36), Kind: PowerUpShield},
	}
	s.resolveCollisions(now)

	require.Len(t, s.powerUps, 1, "only the first overlapping pickup is taken")
	assert.True(t, s.player.MultiShotActive)
	assert.Equal(t, now+s.cfg.PowerUp.MultiShotLength, s.player.MultiShotUntil)
	assert.Equal(t, s.cfg.Player.ShootCooldown/2, s.player.ShootCooldown)
	assert.False(t, s.player.ShieldActive)

	s.resolveCollisions(now)
	assert.Empty(t, s.powerUps)
	assert.True(t, s.player.ShieldActive)
	assert.Equal(t, now+s.cfg.PowerUp.ShieldLength, s.player.ShieldUntil)
}

func TestEffectsExpire(t *testing.T) {
	cfg := DefaultConfig()
	p := newPlayer(cfg)
	PowerUpShield.apply(&p, 0, cfg)
	PowerUpMultiShot.apply(&p, 0, cfg)

	p.expireEffects(cfg.PowerUp.ShieldLength, cfg.Player.ShootCooldown)
	assert.True(t, p.ShieldActive)

	p.expireEffects(cfg.PowerUp.ShieldLength+time.Millisecond, cfg.Player.ShootCooldown)
	assert.False(t, p.ShieldActive)
	assert.True(t, p.MultiShotActive)

	p.expireEffects(cfg.PowerUp.MultiShotLength+time.Millisecond, cfg.Player.ShootCooldown)
	assert.False(t, p.MultiShotActive)
	assert.Equal(t, cfg.Player.ShootCooldown, p.ShootCooldown)
}
