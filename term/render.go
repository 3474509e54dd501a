package term

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"fingershooter/game"
)

var (
	styleHUD     = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	styleStatus  = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleMessage = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleError   = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleBorder  = tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	stylePlayer  = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	styleShield  = tcell.StyleDefault.Foreground(tcell.ColorAqua).Bold(true)
	styleBoss    = tcell.StyleDefault.Foreground(tcell.ColorFuchsia)
)

// variantGlyphs holds the rune and style of each enemy variant
var variantGlyphs = map[game.Variant]struct {
	r     rune
	style tcell.Style
}{
	game.VariantNormal:  {'v', tcell.StyleDefault.Foreground(tcell.ColorRed)},
	game.VariantShooter: {'W', tcell.StyleDefault.Foreground(tcell.ColorOrange)},
	game.VariantChaser:  {'X', tcell.StyleDefault.Foreground(tcell.ColorPurple)},
	game.VariantDodger:  {'z', tcell.StyleDefault.Foreground(tcell.ColorTeal)},
}

// Renderer draws snapshots onto a tcell screen
type Renderer struct {
	screen tcell.Screen
}

// NewRenderer returns a renderer for an initialized screen
func NewRenderer(screen tcell.Screen) *Renderer {
	return &Renderer{screen: screen}
}

// Draw paints one snapshot and shows it
func (r *Renderer) Draw(snap game.Snapshot) {
	cols, rows := r.screen.Size()
	g := NewGrid(cols, rows, snap.Viewport)

	r.screen.Clear()
	r.drawHUD(g, snap)

	for _, pu := range snap.PowerUps {
		glyph := 'S'
		if pu.Kind == game.PowerUpMultiShot {
			glyph = 'M'
		}
		r.fill(g, pu.Rect, glyph, tcell.StyleDefault.Foreground(tcell.ColorLime).Reverse(true))
	}
	if snap.Boss != nil {
		r.fill(g, snap.Boss.Rect, '#', styleBoss)
	}
	for _, e := range snap.Enemies {
		glyph := variantGlyphs[e.Variant]
		r.fill(g, e.Rect, glyph.r, glyph.style)
		if snap.Debug.Enabled {
			c0, r0, _, _ := g.Span(e.Rect)
			r.text(c0, r0-1, tcell.StyleDefault.Foreground(tcell.ColorGray), fmt.Sprintf("%s/%s/%d", e.Variant, e.State, e.Health))
		}
	}
	for _, p := range snap.Projectiles {
		r.fill(g, p.Rect, projectileRune(p.Owner), projectileStyle(p.Owner))
	}
	if snap.State != game.StateInstructions {
		r.drawPlayer(g, snap)
	}
	for _, e := range snap.Explosions {
		for _, p := range e.Particles {
			if p.Alpha <= 0 {
				continue
			}
			glyph := '*'
			if p.Alpha < 128 {
				glyph = '.'
			}
			col, row := g.ToCell(p.X, p.Y)
			r.set(g, col, row, glyph, tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(p.Color.R), int32(p.Color.G), int32(p.Color.B))))
		}
	}

	r.drawMessages(g, snap)
	r.drawStatus(g, snap)
	r.screen.Show()
}

func (r *Renderer) drawPlayer(g Grid, snap game.Snapshot) {
	style := stylePlayer
	switch {
	case snap.Player.Shielded:
		style = styleShield
	case snap.Player.Invincible && snap.Frame/8%2 == 0:
		style = style.Dim(true)
	}
	glyph := 'A'
	if snap.Player.MultiShot {
		glyph = 'W'
	}
	r.fill(g, snap.Player.Rect, glyph, style)
}

func (r *Renderer) drawHUD(g Grid, snap game.Snapshot) {
	hud := fmt.Sprintf(" SCORE %d  LEVEL %d  LIVES %s  NEXT %d",
		snap.Score, snap.Level, strings.Repeat("♥", max(0, snap.Lives)), snap.NextLevelScore)
	r.text(0, 0, styleHUD, hud)

	if snap.Boss != nil {
		const width = 20
		filled := int(snap.Boss.HealthFraction*width + 0.5)
		bar := fmt.Sprintf("BOSS P%d [%s%s]", snap.Boss.Phase, strings.Repeat("=", filled), strings.Repeat(" ", width-filled))
		r.text(g.Cols-len(bar)-1, 0, styleBoss, bar)
	}
}

func (r *Renderer) drawMessages(g Grid, snap game.Snapshot) {
	mid := hudRows + g.PlayRows()/2
	switch snap.State {
	case game.StateInstructions:
		r.center(g, mid-3, styleMessage, "F I N G E R   S H O O T E R")
		r.center(g, mid-1, styleHUD, "steer with the mouse or the arrow keys")
		r.center(g, mid, styleHUD, "hold the left button or press space to fire")
		r.center(g, mid+1, styleHUD, "h hides the hand, d toggles debug, q quits")
		r.center(g, mid+3, styleMessage, "press enter to calibrate and start")
		if snap.Calibration > 0 && snap.Calibration < 1 {
			const width = 30
			filled := int(snap.Calibration * width)
			r.center(g, mid+5, styleHUD, fmt.Sprintf("calibrating [%s%s] %3.0f%%",
				strings.Repeat("#", filled), strings.Repeat(".", width-filled), snap.Calibration*100))
		}
		if snap.LastError != "" {
			r.center(g, mid+6, styleError, snap.LastError)
		}
	case game.StatePausedNoHand:
		r.center(g, mid, styleMessage, "HAND LOST")
		r.center(g, mid+1, styleHUD, "move the mouse or press h to resume")
	case game.StateLevelUp:
		r.center(g, mid, styleMessage, fmt.Sprintf("LEVEL %d", snap.Level))
	case game.StateGameOver:
		r.center(g, mid, styleError, "GAME OVER")
		r.center(g, mid+1, styleHUD, fmt.Sprintf("final score %d, press r to restart", snap.Score))
	}
}

func (r *Renderer) drawStatus(g Grid, snap game.Snapshot) {
	row := g.StatusRow()
	if !snap.Debug.Enabled {
		r.text(0, row, styleBorder, strings.Repeat("─", g.Cols))
		return
	}
	d := snap.Debug
	runID := d.RunID
	if len(runID) > 8 {
		runID = runID[:8]
	}
	r.text(0, row, styleStatus, fmt.Sprintf(" fps %.1f  enemies %d  shots %d  pickups %d  fx %d  %s  run %s",
		d.FPS, d.Enemies, d.Projectiles, d.PowerUps, d.Explosions, d.State, runID))
}

// fill paints every playfield cell covered by rect
func (r *Renderer) fill(g Grid, rect game.Rect, glyph rune, style tcell.Style) {
	c0, r0, c1, r1 := g.Span(rect)
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			r.set(g, col, row, glyph, style)
		}
	}
}

func (r *Renderer) set(g Grid, col, row int, glyph rune, style tcell.Style) {
	if !g.InPlayfield(col, row) {
		return
	}
	r.screen.SetContent(col, row, glyph, nil, style)
}

func (r *Renderer) text(col, row int, style tcell.Style, s string) {
	for _, ch := range s {
		r.screen.SetContent(col, row, ch, nil, style)
		col++
	}
}

func (r *Renderer) center(g Grid, row int, style tcell.Style, s string) {
	r.text(max(0, (g.Cols-len([]rune(s)))/2), row, style, s)
}

func projectileRune(o game.Owner) rune {
	switch o {
	case game.OwnerPlayer:
		return '|'
	case game.OwnerEnemy:
		return 'o'
	case game.OwnerBoss:
		return '@'
	}
	return '?'
}

func projectileStyle(o game.Owner) tcell.Style {
	switch o {
	case game.OwnerPlayer:
		return tcell.StyleDefault.Foreground(tcell.ColorAqua)
	case game.OwnerEnemy:
		return tcell.StyleDefault.Foreground(tcell.ColorRed)
	case game.OwnerBoss:
		return tcell.StyleDefault.Foreground(tcell.ColorFuchsia)
	}
	return tcell.StyleDefault
}
