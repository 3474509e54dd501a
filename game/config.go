package game

import (
	"errors"
	"fmt"
	"time"
)

// Config holds every tunable gameplay constant
type Config struct {
	// ScreenWidth is the viewport width in world pixels
	ScreenWidth float64 `yaml:"screen_width"`

	// ScreenHeight is the viewport height in world pixels
	ScreenHeight float64 `yaml:"screen_height"`

	// TickRate is the number of simulation frames per second
	TickRate int `yaml:"tick_rate"`

	Player      PlayerConfig      `yaml:"player"`
	Enemy       EnemyConfig       `yaml:"enemy"`
	Boss        BossConfig        `yaml:"boss"`
	Level       LevelConfig       `yaml:"level"`
	PowerUp     PowerUpConfig     `yaml:"power_up"`
	Input       InputConfig       `yaml:"input"`
	Calibration CalibrationConfig `yaml:"calibration"`
	Debug       DebugConfig       `yaml:"debug"`
}

// PlayerConfig holds player ship and weapon settings
type PlayerConfig struct {
	Width         float64       `yaml:"width"`
	Height        float64       `yaml:"height"`
	Lives         int           `yaml:"lives"`
	Invincibility time.Duration `yaml:"invincibility"`
	ShootCooldown time.Duration `yaml:"shoot_cooldown"`
	BulletWidth   float64       `yaml:"bullet_width"`
	BulletHeight  float64       `yaml:"bullet_height"`
	BulletSpeed   float64       `yaml:"bullet_speed"`
}

// EnemyConfig holds regular enemy settings
type EnemyConfig struct {
	Width            float64 `yaml:"width"`
	Height           float64 `yaml:"height"`
	BaseSpeed        float64 `yaml:"base_speed"`
	SpeedPerLevel    float64 `yaml:"speed_per_level"`
	BulletSpeed      float64 `yaml:"bullet_speed"`
	BulletWidth      float64 `yaml:"bullet_width"`
	BulletHeight     float64 `yaml:"bullet_height"`
	ShotCooldown     int     `yaml:"shot_cooldown_frames"`
	DodgeCooldown    int     `yaml:"dodge_cooldown_frames"`
	DodgerCooldown   int     `yaml:"dodger_cooldown_frames"`
	DodgeDuration    int     `yaml:"dodge_duration_frames"`
	AimFrames        int     `yaml:"aim_frames"`
	AimChance        float64 `yaml:"aim_chance"`
	DespawnMargin    float64 `yaml:"despawn_margin"`
	SpawnInterval    int     `yaml:"spawn_interval_frames"`
	MinSpawnInterval int     `yaml:"min_spawn_interval_frames"`
	KillScore        int     `yaml:"kill_score"`
}

// BossConfig holds boss fight settings
type BossConfig struct {
	Width          float64       `yaml:"width"`
	Height         float64       `yaml:"height"`
	TopOffset      float64       `yaml:"top_offset"`
	BaseHealth     int           `yaml:"base_health"`
	HealthPerLevel float64       `yaml:"health_per_level"`
	Speed          float64       `yaml:"speed"`
	ShootCooldown  time.Duration `yaml:"shoot_cooldown"`
	MinCooldown    time.Duration `yaml:"min_cooldown"`
	TriggerLevel   int           `yaml:"trigger_level"`
	PhaseFactor    float64       `yaml:"phase_factor"`
	TransitionLen  int           `yaml:"transition_frames"`
	HitScore       int           `yaml:"hit_score"`
	KillScore      int           `yaml:"kill_score"`
}

// LevelConfig holds progression settings
type LevelConfig struct {
	ScoreBase    int           `yaml:"score_base"`
	BannerLength time.Duration `yaml:"banner"`
	ExtraGrace   time.Duration `yaml:"extra_grace"`
}

// PowerUpConfig holds pickup settings
type PowerUpConfig struct {
	Size            float64       `yaml:"size"`
	BossDropSize    float64       `yaml:"boss_drop_size"`
	DropChance      float64       `yaml:"drop_chance"`
	DropPerLevel    float64       `yaml:"drop_per_level"`
	FallFactor      float64       `yaml:"fall_factor"`
	ShieldLength    time.Duration `yaml:"shield"`
	MultiShotLength time.Duration `yaml:"multi_shot"`
}

// InputConfig describes how the normalized pointer maps onto the viewport
type InputConfig struct {
	MinX float64 `yaml:"min_x"`
	MaxX float64 `yaml:"max_x"`
	MinY float64 `yaml:"min_y"`
	MaxY float64 `yaml:"max_y"`
}

// CalibrationConfig controls the start handshake
type CalibrationConfig struct {
	Timeout     time.Duration `yaml:"timeout"`
	Detections  int           `yaml:"detections"`
	MissPenalty int           `yaml:"miss_penalty"`
}

// DebugConfig controls the debug overlay and the frame profiler
type DebugConfig struct {
	Enabled         bool          `yaml:"enabled"`
	FPSWindow       time.Duration `yaml:"fps_window"`
	ProfileBelow    float64       `yaml:"profile_below_fps"`
	ProfileLength   time.Duration `yaml:"profile_length"`
	ProfileCooldown time.Duration `yaml:"profile_cooldown"`
}

// DefaultConfig returns the stock tuning
func DefaultConfig() Config {
	return Config{
		ScreenWidth:  900,
		ScreenHeight: 700,
		TickRate:     90,
		Player: PlayerConfig{
			Width:         55,
			Height:        45,
			Lives:         3,
			Invincibility: 2500 * time.Millisecond,
			ShootCooldown: 280 * time.Millisecond,
			BulletWidth:   7,
			BulletHeight:  22,
			BulletSpeed:   15,
		},
		Enemy: EnemyConfig{
			Width:            45,
			Height:           35,
			BaseSpeed:        2.2,
			SpeedPerLevel:    0.25,
			BulletSpeed:      4.5,
			BulletWidth:      7,
			BulletHeight:     14,
			ShotCooldown:     120,
			DodgeCooldown:    45,
			DodgerCooldown:   35,
			DodgeDuration:    15,
			AimFrames:        20,
			AimChance:        0.005,
			DespawnMargin:    20,
			SpawnInterval:    65,
			MinSpawnInterval: 15,
			KillScore:        15,
		},
		Boss: BossConfig{
			Width:          150,
			Height:         120,
			TopOffset:      40,
			BaseHealth:     40,
			HealthPerLevel: 0.5,
			Speed:          2.5,
			ShootCooldown:  700 * time.Millisecond,
			MinCooldown:    300 * time.Millisecond,
			TriggerLevel:   3,
			PhaseFactor:    0.5,
			TransitionLen:  120,
			HitScore:       20,
			KillScore:      750,
		},
		Level: LevelConfig{
			ScoreBase:    400,
			BannerLength: 2500 * time.Millisecond,
			ExtraGrace:   1000 * time.Millisecond,
		},
		PowerUp: PowerUpConfig{
			Size:            36,
			BossDropSize:    40,
			DropChance:      0.08,
			DropPerLevel:    0.01,
			FallFactor:      0.6,
			ShieldLength:    7000 * time.Millisecond,
			MultiShotLength: 8000 * time.Millisecond,
		},
		Input: InputConfig{
			MinX: 0.12,
			MaxX: 0.88,
			MinY: 0.2,
			MaxY: 0.8,
		},
		Calibration: CalibrationConfig{
			Timeout:     30 * time.Second,
			Detections:  15,
			MissPenalty: 2,
		},
		Debug: DebugConfig{
			FPSWindow:       500 * time.Millisecond,
			ProfileBelow:    55,
			ProfileLength:   5 * time.Second,
			ProfileCooldown: 10 * time.Second,
		},
	}
}

// Viewport returns the playfield rectangle
func (c Config) Viewport() Rect {
	return Rect{W: c.ScreenWidth, H: c.ScreenHeight}
}

// TickInterval returns the duration of one simulation frame
func (c Config) TickInterval() time.Duration {
	if c.TickRate <= 0 {
		return time.Second / 90
	}
	return time.Second / time.Duration(c.TickRate)
}

// PlayableTop is the highest row the player ship may reach
func (c Config) PlayableTop() float64 {
	return c.ScreenHeight / 3
}

// Validate reports every out-of-range setting
func (c Config) Validate() error {
	var errs []error
	positive := func(name string, v float64) {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %v", name, v))
		}
	}

	positive("screen_width", c.ScreenWidth)
	positive("screen_height", c.ScreenHeight)
	positive("tick_rate", float64(c.TickRate))
	positive("player.width", c.Player.Width)
	positive("player.height", c.Player.Height)
	positive("player.lives", float64(c.Player.Lives))
	positive("player.bullet_speed", c.Player.BulletSpeed)
	positive("enemy.width", c.Enemy.Width)
	positive("enemy.height", c.Enemy.Height)
	positive("enemy.base_speed", c.Enemy.BaseSpeed)
	positive("enemy.min_spawn_interval_frames", float64(c.Enemy.MinSpawnInterval))
	positive("boss.base_health", float64(c.Boss.BaseHealth))
	positive("boss.trigger_level", float64(c.Boss.TriggerLevel))
	positive("level.score_base", float64(c.Level.ScoreBase))
	positive("calibration.detections", float64(c.Calibration.Detections))
	positive("calibration.timeout", float64(c.Calibration.Timeout))

	if c.Enemy.Width >= c.ScreenWidth {
		errs = append(errs, errors.New("enemy.width must be smaller than screen_width"))
	}
	if c.Boss.PhaseFactor <= 0 || c.Boss.PhaseFactor >= 1 {
		errs = append(errs, fmt.Errorf("boss.phase_factor must be in (0,1), got %v", c.Boss.PhaseFactor))
	}
	if c.PowerUp.DropChance < 0 || c.PowerUp.DropChance > 1 {
		errs = append(errs, fmt.Errorf("power_up.drop_chance must be in [0,1], got %v", c.PowerUp.DropChance))
	}
	if c.Input.MinX < 0 || c.Input.MaxX > 1 || c.Input.MinY < 0 || c.Input.MaxY > 1 {
		errs = append(errs, errors.New("input mapping range must lie within [0,1]"))
	}

	return errors.Join(errs...)
}
