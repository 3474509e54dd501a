package game

import (
	"log/slog"
	"time"
)

// resolveCollisions runs every collision pass of a frame in a fixed order.
// Entities removed by one pass are marked dead and skipped by the later ones;
// each collection is compacted once at the end.
func (s *Session) resolveCollisions(now time.Duration) {
	s.playerShotsVsBoss()
	s.bossShotsVsPlayer(now)
	s.playerShotsVsEnemies()
	s.playerVsEnemies(now)
	s.playerVsEnemyShots(now)
	s.playerVsPowerUps(now)

	s.playerShots = compact(s.playerShots, isDeadShot)
	s.bossShots = compact(s.bossShots, isDeadShot)
	s.enemyShots = compact(s.enemyShots, isDeadShot)
	s.enemies = compact(s.enemies, isDeadEnemy)
	s.powerUps = compact(s.powerUps, isDeadPowerUp)
}

// playerShotsVsBoss: every overlapping shot costs the boss one health point
func (s *Session) playerShotsVsBoss() {
	if s.boss == nil || s.state != StateBossFight {
		return
	}
	for _, b := range s.playerShots {
		if b.dead || !Collide(b.Rect, s.boss.Rect) {
			continue
		}
		b.dead = true
		s.boss.Health--
		s.score += s.cfg.Boss.HitScore
		s.explode(b.Rect.CenterX(), b.Rect.CenterY(), ExplosionSpark)
		if s.boss.Health <= 0 {
			s.killBoss()
			return
		}
	}
}

// killBoss pays out the kill reward and always drops one power-up
func (s *Session) killBoss() {
	c := s.boss.Rect.Center()
	s.score += s.cfg.Boss.KillScore * s.level
	s.explode(c.X, c.Y, ExplosionBoss)
	s.dropPowerUp(c.X, c.Y, s.cfg.PowerUp.BossDropSize)
	s.log.Info("boss destroyed", slog.Int("level", s.level), slog.Int("score", s.score))
	s.boss = nil
	s.setState(StatePlaying)
}

func (s *Session) bossShotsVsPlayer(now time.Duration) {
	if !s.player.Vulnerable(now) {
		return
	}
	i := FirstHit(s.player.Rect, len(s.bossShots),
		func(i int) Rect { return s.bossShots[i].Rect },
		func(i int) bool { return s.bossShots[i].dead })
	if i < 0 {
		return
	}
	s.bossShots[i].dead = true
	s.explode(s.player.Rect.CenterX(), s.player.Rect.CenterY(), ExplosionDefault)
	s.loseLife(now)
}

// playerShotsVsEnemies: a shot damages only the first live enemy it overlaps
func (s *Session) playerShotsVsEnemies() {
	for _, b := range s.playerShots {
		if b.dead {
			continue
		}
		i := FirstHit(b.Rect, len(s.enemies),
			func(i int) Rect { return s.enemies[i].Rect },
			func(i int) bool { return s.enemies[i].dead })
		if i < 0 {
			continue
		}
		e := s.enemies[i]
		b.dead = true
		s.explode(e.Rect.CenterX(), e.Rect.CenterY(), ExplosionHit)
		if e.ApplyDamage(1) {
			e.dead = true
			s.score += s.cfg.Enemy.KillScore * e.Level
			if s.rng.Float64() < s.dropChance() {
				s.dropPowerUp(e.Rect.CenterX(), e.Rect.CenterY(), s.cfg.PowerUp.Size)
			}
		}
	}
}

func (s *Session) playerVsEnemies(now time.Duration) {
	if !s.player.Vulnerable(now) {
		return
	}
	i := FirstHit(s.player.Rect, len(s.enemies),
		func(i int) Rect { return s.enemies[i].Rect },
		func(i int) bool { return s.enemies[i].dead })
	if i < 0 {
		return
	}
	e := s.enemies[i]
	e.dead = true
	s.explode(s.player.Rect.CenterX(), s.player.Rect.CenterY(), ExplosionCrash)
	s.explode(e.Rect.CenterX(), e.Rect.CenterY(), ExplosionDefault)
	s.loseLife(now)
}

func (s *Session) playerVsEnemyShots(now time.Duration) {
	if !s.player.Vulnerable(now) {
		return
	}
	i := FirstHit(s.player.Rect, len(s.enemyShots),
		func(i int) Rect { return s.enemyShots[i].Rect },
		func(i int) bool { return s.enemyShots[i].dead })
	if i < 0 {
		return
	}
	s.enemyShots[i].dead = true
	s.explode(s.player.Rect.CenterX(), s.player.Rect.CenterY(), ExplosionDefault)
	s.loseLife(now)
}

func (s *Session) playerVsPowerUps(now time.Duration) {
	i := FirstHit(s.player.Rect, len(s.powerUps),
		func(i int) Rect { return s.powerUps[i].Rect },
		func(i int) bool { return s.powerUps[i].dead })
	if i < 0 {
		return
	}
	pu := s.powerUps[i]
	pu.dead = true
	pu.Kind.apply(&s.player, now, s.cfg)
	s.log.Debug("power-up collected", slog.String("kind", pu.Kind.String()))
}

// loseLife takes one life and opens the grace window, or ends the game
func (s *Session) loseLife(now time.Duration) {
	if s.player.Lives <= 0 {
		return
	}
	s.player.Lives--
	if s.player.Lives > 0 {
		s.player.InvincibleUntil = now + s.cfg.Player.Invincibility
		return
	}
	s.setState(StateGameOver)
}

func (s *Session) dropChance() float64 {
	return s.cfg.PowerUp.DropChance + s.cfg.PowerUp.DropPerLevel*float64(s.level-1)
}

// dropPowerUp spawns a random pickup of the given size centered on (x, y)
func (s *Session) dropPowerUp(x, y, size float64) {
	s.powerUps = append(s.powerUps, &PowerUp{
		Rect: RectAt(x, y, size, size),
		Kind: randomPowerUpKind(s.rng),
	})
}
