package main

import (
	"math/rand"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"

	"fingershooter/game"
)

// App is the ebiten.Game of the desktop frontend. It runs on ebiten's thread
// and reaches the simulation only through the input latch and snapshot cell.
type App struct {
	latch    *game.InputLatch
	cell     *game.SnapshotCell
	renderer *Renderer
	mouse    mouseInput

	done     chan struct{}
	stopOnce sync.Once

	mu  sync.Mutex
	cfg game.Config
}

// NewApp creates the window-side half of the game
func NewApp(cfg game.Config, latch *game.InputLatch, cell *game.SnapshotCell, rng *rand.Rand) *App {
	return &App{
		latch:    latch,
		cell:     cell,
		renderer: NewRenderer(cfg.Viewport(), rng),
		done:     make(chan struct{}),
		cfg:      cfg,
	}
}

// SetConfig swaps the tuning used for pointer mapping and layout
func (a *App) SetConfig(cfg game.Config) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.cfg = cfg
}

func (a *App) config() game.Config {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.cfg
}

// Stop makes the next Update end the ebiten run loop
func (a *App) Stop() {
	a.stopOnce.Do(func() { close(a.done) })
}

// Update samples input for the simulation loop
func (a *App) Update() error {
	select {
	case <-a.done:
		return ebiten.Termination
	default:
	}

	a.mouse.read(a.config(), a.latch)
	if snap, ok := a.cell.Latest(); ok {
		a.renderer.Update(snap)
	}
	return nil
}

// Draw renders the latest snapshot
func (a *App) Draw(screen *ebiten.Image) {
	snap, ok := a.cell.Latest()
	if !ok {
		screen.Fill(colorBackground)
		return
	}
	a.renderer.Draw(screen, snap)
}

// Layout returns the game's screen size
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	cfg := a.config()
	return int(cfg.ScreenWidth), int(cfg.ScreenHeight)
}
