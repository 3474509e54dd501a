package term

import (
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fingershooter/game"
)

// polledInputs accumulates commands across polls while keeping the latest pointer
type polledInputs struct {
	mu       sync.Mutex
	src      *Source
	last     game.Input
	commands []game.Command
}

func (p *polledInputs) poll() game.Input {
	p.mu.Lock()
	defer p.mu.Unlock()
	in := p.src.Poll()
	p.commands = append(p.commands, in.Commands...)
	p.last = in
	return in
}

func (p *polledInputs) sawCommand(cmd game.Command) bool {
	p.poll()
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, c := range p.commands {
		if c == cmd {
			return true
		}
	}
	return false
}

func newTestSource(t *testing.T) (*Source, tcell.SimulationScreen) {
	t.Helper()
	screen := newTestScreen(t)
	src := NewSource(screen, game.DefaultConfig(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	t.Cleanup(func() { _ = src.Close() })
	return src, screen
}

func TestSourceStartsWithHandPresent(t *testing.T) {
	src, _ := newTestSource(t)
	in := src.Poll()
	require.NotNil(t, in.Pointer)
	assert.False(t, in.Fire)
	assert.Empty(t, in.Commands)
}

func TestSourceKeyCommands(t *testing.T) {
	src, screen := newTestSource(t)
	polled := &polledInputs{src: src}

	screen.InjectKey(tcell.KeyEnter, 0, tcell.ModNone)
	screen.InjectKey(tcell.KeyRune, 'd', tcell.ModNone)
	screen.InjectKey(tcell.KeyRune, 'r', tcell.ModNone)
	screen.InjectKey(tcell.KeyEscape, 0, tcell.ModNone)

	for _, cmd := range []game.Command{game.CommandStart, game.CommandToggleDebug, game.CommandRestart, game.CommandQuit} {
		assert.Eventually(t, func() bool { return polled.sawCommand(cmd) }, 2*time.Second, 10*time.Millisecond, cmd.String())
	}
}

func TestSourceHandToggle(t *testing.T) {
	src, screen := newTestSource(t)

	screen.InjectKey(tcell.KeyRune, 'h', tcell.ModNone)
	assert.Eventually(t, func() bool { return src.Poll().Pointer == nil }, 2*time.Second, 10*time.Millisecond)

	screen.InjectKey(tcell.KeyRune, 'h', tcell.ModNone)
	assert.Eventually(t, func() bool { return src.Poll().Pointer != nil }, 2*time.Second, 10*time.Millisecond)
}

func TestSourceMouseSteersAndFires(t *testing.T) {
	src, screen := newTestSource(t)
	cfg := game.DefaultConfig()
	want := PointerAt(cfg, NewGrid(90, 72, cfg.Viewport()), 20, 50)

	screen.InjectMouse(20, 50, tcell.Button1, tcell.ModNone)
	assert.Eventually(t, func() bool {
		in := src.Poll()
		return in.Fire && in.Pointer != nil && *in.Pointer == *want
	}, 2*time.Second, 10*time.Millisecond)

	screen.InjectMouse(20, 50, tcell.ButtonNone, tcell.ModNone)
	assert.Eventually(t, func() bool { return !src.Poll().Fire }, 2*time.Second, 10*time.Millisecond)
}

func TestSourceSpaceTogglesAutoFire(t *testing.T) {
	src, screen := newTestSource(t)

	screen.InjectKey(tcell.KeyRune, ' ', tcell.ModNone)
	assert.Eventually(t, func() bool { return src.Poll().Fire }, 2*time.Second, 10*time.Millisecond)
}

func TestSourceCloseIsIdempotent(t *testing.T) {
	src, _ := newTestSource(t)
	require.NoError(t, src.Close())
	assert.NoError(t, src.Close())
}
