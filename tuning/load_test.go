package tuning

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fingershooter/game"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultsMatchStockConfig(t *testing.T) {
	cfg, err := Defaults()
	require.NoError(t, err)
	assert.Equal(t, game.DefaultConfig(), cfg)
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, game.DefaultConfig(), cfg)
}

func TestLoadOverlaysPartialFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "tuning.yaml", `
level:
  score_base: 500
boss:
  shoot_cooldown: 900ms
debug:
  enabled: true
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	want := game.DefaultConfig()
	want.Level.ScoreBase = 500
	want.Boss.ShootCooldown = 900 * time.Millisecond
	want.Debug.Enabled = true
	assert.Equal(t, want, cfg)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, err.Error(), "tuning: load")
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "bad.yaml", "player: [unclosed")
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tuning: unmarshal")
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	path := writeFile(t, t.TempDir(), "bad.yaml", `
screen_width: -5
boss:
  phase_factor: 1.5
`)
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tuning: invalid")
	assert.Contains(t, err.Error(), "screen_width must be positive")
	assert.Contains(t, err.Error(), "boss.phase_factor")
}

func TestParseKeepsBaseUntouched(t *testing.T) {
	base := game.DefaultConfig()
	cfg, err := Parse([]byte("tick_rate: 60"), base, "inline")
	require.NoError(t, err)
	assert.Equal(t, 60, cfg.TickRate)
	assert.Equal(t, 90, base.TickRate)
}
