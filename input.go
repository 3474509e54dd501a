package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"fingershooter/game"
)

// commandKeys maps edge-triggered keys onto session commands
var commandKeys = []struct {
	key ebiten.Key
	cmd game.Command
}{
	{ebiten.KeyEnter, game.CommandStart},
	{ebiten.KeyF1, game.CommandToggleDebug},
	{ebiten.KeyD, game.CommandToggleDebug},
	{ebiten.KeyR, game.CommandRestart},
	{ebiten.KeyEscape, game.CommandQuit},
	{ebiten.KeyQ, game.CommandQuit},
}

// mouseInput turns the cursor and buttons into pointer state. The hand is
// considered lost when the cursor leaves the window or H has hidden it.
type mouseInput struct {
	handHidden bool
}

// read polls ebiten and publishes the result into latch
func (m *mouseInput) read(cfg game.Config, latch *game.InputLatch) {
	for _, k := range commandKeys {
		if inpututil.IsKeyJustPressed(k.key) {
			latch.Push(k.cmd)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		m.handHidden = !m.handHidden
	}

	fire := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) || ebiten.IsKeyPressed(ebiten.KeySpace)
	x, y := ebiten.CursorPosition()
	latch.Set(m.pointer(cfg, x, y), fire)
}

func (m *mouseInput) pointer(cfg game.Config, x, y int) *game.Pointer {
	if m.handHidden || !cursorInside(cfg, x, y) {
		return nil
	}
	p := game.PointerAt(cfg, float64(x), float64(y))
	return &p
}

func cursorInside(cfg game.Config, x, y int) bool {
	return x >= 0 && y >= 0 && float64(x) < cfg.ScreenWidth && float64(y) < cfg.ScreenHeight
}
