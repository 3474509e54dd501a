package game

import (
	"log/slog"
	"math/rand"
	"time"
)

// State is the top-level game state
type State int

const (
	StateInstructions State = iota
	StatePlaying
	StateLevelUp
	StateBossFight
	StatePausedNoHand
	StateGameOver
)

func (s State) String() string {
	switch s {
	case StateInstructions:
		return "instructions"
	case StatePlaying:
		return "playing"
	case StateLevelUp:
		return "level_up"
	case StateBossFight:
		return "boss_fight"
	case StatePausedNoHand:
		return "paused_no_hand"
	case StateGameOver:
		return "game_over"
	}
	return "unknown"
}

// thresholdGrowth scales how much further each level's score target moves
const thresholdGrowth = 0.2

// Session owns every entity collection and counter of one game
type Session struct {
	cfg Config
	log *slog.Logger
	rng *rand.Rand

	state       State
	resumeState State

	level     int
	score     int
	threshold float64

	player      Player
	enemies     []*Enemy
	playerShots []*Projectile
	enemyShots  []*Projectile
	bossShots   []*Projectile
	powerUps    []*PowerUp
	explosions  []*Explosion
	boss        *Boss
	spawner     Spawner

	now         time.Duration
	bannerUntil time.Duration
	startGrace  bool
	calibration float64
	lastErr     error
	debug       bool
}

// NewSession creates a session on the instructions screen
func NewSession(cfg Config, rng *rand.Rand, log *slog.Logger) *Session {
	if log == nil {
		log = slog.Default()
	}
	s := &Session{
		cfg:   cfg,
		log:   log.With("component", "session"),
		rng:   rng,
		debug: cfg.Debug.Enabled,
	}
	s.reset()
	return s
}

// reset puts every counter and collection back to a new game
func (s *Session) reset() {
	s.state = StateInstructions
	s.resumeState = StatePlaying
	s.level = 1
	s.score = 0
	s.threshold = float64(s.cfg.Level.ScoreBase)
	s.player = newPlayer(s.cfg)
	s.enemies = nil
	s.playerShots = nil
	s.enemyShots = nil
	s.bossShots = nil
	s.powerUps = nil
	s.explosions = nil
	s.boss = nil
	s.spawner.Reset()
	s.bannerUntil = 0
	s.startGrace = false
	s.calibration = 0
	s.lastErr = nil
}

func (s *Session) State() State    { return s.state }
func (s *Session) Level() int      { return s.level }
func (s *Session) Score() int      { return s.score }
func (s *Session) Lives() int      { return s.player.Lives }
func (s *Session) Debug() bool     { return s.debug }
func (s *Session) Config() Config  { return s.cfg }
func (s *Session) Boss() *Boss     { return s.boss }
func (s *Session) Player() *Player { return &s.player }

// NextLevelScore returns the score that triggers the next level-up
func (s *Session) NextLevelScore() float64 { return s.threshold }

// Reconfigure swaps the tuning used from the next frame on. Live entities
// keep the stats they were created with.
func (s *Session) Reconfigure(cfg Config) {
	s.cfg = cfg
	s.log.Info("config reloaded")
}

func (s *Session) setState(next State) {
	if next == s.state {
		return
	}
	s.log.Info("state change",
		slog.String("from", s.state.String()),
		slog.String("to", next.String()),
		slog.Int("level", s.level),
		slog.Int("score", s.score),
	)
	s.state = next
}

// Step advances the session by one frame at timestamp now
func (s *Session) Step(in Input, now time.Duration) {
	s.now = now
	s.explosions = compact(s.explosions, func(e *Explosion) bool { return !e.Update(now) })

	switch s.state {
	case StateInstructions, StateGameOver:
		return
	case StatePausedNoHand:
		if in.Pointer == nil {
			return
		}
		s.setState(s.resumeState)
	case StateLevelUp:
		if now > s.bannerUntil {
			s.finishLevelUp()
		}
		return
	case StatePlaying, StateBossFight:
		if in.Pointer == nil {
			s.resumeState = s.state
			s.setState(StatePausedNoHand)
			return
		}
	}

	if s.startGrace {
		s.player.InvincibleUntil = now + s.cfg.Player.Invincibility
		s.startGrace = false
	}
	s.player.expireEffects(now, s.cfg.Player.ShootCooldown)

	s.movePlayer(*in.Pointer)
	if in.Fire {
		s.fire(now)
	}

	s.advance(now)
	s.resolveCollisions(now)

	if s.state == StatePlaying && float64(s.score) >= s.threshold {
		s.levelUp(now)
	}
}

// advance moves every projectile, spawns, and runs enemy and boss AI
func (s *Session) advance(now time.Duration) {
	viewport := s.cfg.Viewport()

	for _, b := range s.playerShots {
		b.dead = !b.Step(viewport)
	}
	s.playerShots = compact(s.playerShots, isDeadShot)

	for _, b := range s.enemyShots {
		b.dead = !b.Step(viewport)
	}
	s.enemyShots = compact(s.enemyShots, isDeadShot)

	if s.state == StatePlaying {
		if e := s.spawner.Tick(s.level, s.cfg, s.rng); e != nil {
			s.enemies = append(s.enemies, e)
		}
	}

	ctx := &aiContext{
		now:      now,
		player:   s.player.Rect,
		shots:    s.playerShots,
		viewport: viewport,
		cfg:      &s.cfg,
		rng:      s.rng,
	}
	for _, e := range s.enemies {
		if shot := e.Update(ctx); shot != nil {
			s.enemyShots = append(s.enemyShots, shot)
		}
		if e.Gone(s.cfg) {
			e.dead = true
		}
	}
	s.enemies = compact(s.enemies, isDeadEnemy)

	if s.boss != nil && s.state == StateBossFight {
		shots, phaseShift := s.boss.Update(ctx)
		s.bossShots = append(s.bossShots, shots...)
		if phaseShift {
			c := s.boss.Rect.Center()
			s.explode(c.X, c.Y, ExplosionPhase)
			s.log.Info("boss phase change", slog.Int("phase", s.boss.Phase), slog.Int("health", s.boss.Health))
		}
	}

	// Boss shots outlive the boss and keep flying after the fight ends.
	for _, b := range s.bossShots {
		b.dead = !b.Step(viewport)
	}
	s.bossShots = compact(s.bossShots, isDeadShot)

	fall := s.cfg.Enemy.BaseSpeed * s.cfg.PowerUp.FallFactor
	for _, p := range s.powerUps {
		p.dead = !p.Step(fall, s.cfg.ScreenHeight)
	}
	s.powerUps = compact(s.powerUps, isDeadPowerUp)
}

// movePlayer maps the normalized pointer onto the playable area
func (s *Session) movePlayer(p Pointer) {
	cfg := s.cfg
	top := cfg.PlayableTop()
	prev := s.player.Rect

	cx := MapRange(p.X, cfg.Input.MinX, cfg.Input.MaxX, 0, cfg.ScreenWidth)
	cy := MapRange(p.Y, cfg.Input.MinY, cfg.Input.MaxY, top, cfg.ScreenHeight-cfg.Player.Height/2)

	bounds := Rect{X: 0, Y: top, W: cfg.ScreenWidth, H: cfg.ScreenHeight - top}
	s.player.Rect = RectAt(cx, cy, cfg.Player.Width, cfg.Player.Height).Clamp(bounds)
	s.player.VX = s.player.Rect.X - prev.X
	s.player.VY = s.player.Rect.Y - prev.Y
}

// fire launches a volley if the weapon is off cooldown
func (s *Session) fire(now time.Duration) {
	if !s.player.canShoot(now) {
		return
	}
	pc := s.cfg.Player
	r := s.player.Rect

	s.addPlayerShot(r.CenterX()-pc.BulletWidth/2, r.Y)
	if s.player.MultiShotActive {
		wingY := r.CenterY() - pc.BulletHeight/2
		s.addPlayerShot(r.X, wingY)
		s.addPlayerShot(r.Right()-pc.BulletWidth, wingY)
	}
	s.player.LastShot = now
	s.player.hasShot = true
}

func (s *Session) addPlayerShot(x, y float64) {
	pc := s.cfg.Player
	s.playerShots = append(s.playerShots, &Projectile{
		Rect:  Rect{X: x, Y: y, W: pc.BulletWidth, H: pc.BulletHeight},
		VY:    -pc.BulletSpeed,
		Owner: OwnerPlayer,
	})
}

// levelUp advances the level and shows the banner
func (s *Session) levelUp(now time.Duration) {
	s.level++
	s.threshold += float64(s.cfg.Level.ScoreBase) * (1 + thresholdGrowth*float64(s.level))
	s.bannerUntil = now + s.cfg.Level.BannerLength
	s.player.InvincibleUntil = now + s.cfg.Player.Invincibility + s.cfg.Level.ExtraGrace
	s.log.Info("level up", slog.Int("level", s.level), slog.Float64("next", s.threshold))
	s.setState(StateLevelUp)
}

// finishLevelUp leaves the banner for a boss fight or regular play
func (s *Session) finishLevelUp() {
	if s.level >= s.cfg.Boss.TriggerLevel && s.boss == nil {
		s.startBossFight()
		return
	}
	s.setState(StatePlaying)
}

func (s *Session) startBossFight() {
	clear(s.enemies)
	s.enemies = s.enemies[:0]
	s.boss = NewBoss(s.level, s.cfg)
	s.log.Info("boss fight", slog.Int("level", s.level), slog.Int("health", s.boss.Health))
	s.setState(StateBossFight)
}

// explode queues a cosmetic explosion centered on (x, y)
func (s *Session) explode(x, y float64, spec ExplosionSpec) {
	s.explosions = append(s.explosions, NewExplosion(x, y, spec, s.now, s.rng))
}

func isDeadShot(p *Projectile) bool { return p.dead }
func isDeadEnemy(e *Enemy) bool     { return e.dead }
func isDeadPowerUp(p *PowerUp) bool { return p.dead }
