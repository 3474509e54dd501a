package main

import (
	"fmt"
	"image/color"
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"fingershooter/game"
)

const lineHeight = 16

var (
	colorBackground = color.RGBA{10, 10, 30, 255}
	colorText       = color.RGBA{255, 255, 255, 255}
	colorHighlight  = color.RGBA{255, 220, 0, 255}
	colorError      = color.RGBA{255, 80, 80, 255}
	colorDim        = color.RGBA{160, 160, 160, 255}
	colorPlayer     = color.RGBA{0, 200, 255, 255}
	colorShield     = color.RGBA{0, 255, 255, 160}
	colorBoss       = color.RGBA{180, 0, 180, 255}
	colorBossRage   = color.RGBA{255, 40, 120, 255}
	colorBarBack    = color.RGBA{100, 0, 0, 255}
	colorBarFill    = color.RGBA{0, 255, 0, 255}
)

// variantColors gives each enemy variant its body color
var variantColors = map[game.Variant]color.RGBA{
	game.VariantNormal:  {220, 40, 40, 255},
	game.VariantShooter: {255, 140, 0, 255},
	game.VariantChaser:  {160, 60, 255, 255},
	game.VariantDodger:  {0, 200, 160, 255},
}

// Renderer draws snapshots with ebiten vector primitives
type Renderer struct {
	face  text.Face
	stars *Starfield
}

// NewRenderer creates a renderer for a viewport of the given size
func NewRenderer(vp game.Rect, rng *rand.Rand) *Renderer {
	return &Renderer{
		face:  text.NewGoXFace(basicfont.Face7x13),
		stars: NewStarfield(vp.W, vp.H, rng),
	}
}

// Update advances renderer-local animation for the latest snapshot
func (r *Renderer) Update(snap game.Snapshot) {
	r.stars.Resize(snap.Viewport.W, snap.Viewport.H)
	if live(snap.State) {
		r.stars.Step()
	}
}

// Draw renders one snapshot
func (r *Renderer) Draw(screen *ebiten.Image, snap game.Snapshot) {
	screen.Fill(colorBackground)
	r.stars.Draw(screen)

	for _, pu := range snap.PowerUps {
		r.drawPowerUp(screen, pu)
	}
	if snap.Boss != nil {
		r.drawBoss(screen, snap.Boss, snap.Viewport)
	}
	for _, e := range snap.Enemies {
		r.drawEnemy(screen, e, snap.Debug.Enabled)
	}
	for _, p := range snap.Projectiles {
		fillRect(screen, p.Rect, projectileColor(p.Owner))
	}
	if snap.State != game.StateInstructions {
		r.drawPlayer(screen, snap)
	}
	for _, e := range snap.Explosions {
		for _, p := range e.Particles {
			if p.Alpha <= 0 || p.Radius <= 0 {
				continue
			}
			clr := color.NRGBA{p.Color.R, p.Color.G, p.Color.B, uint8(p.Alpha)}
			vector.DrawFilledCircle(screen, float32(p.X), float32(p.Y), float32(p.Radius), clr, true)
		}
	}

	r.drawHUD(screen, snap)
	r.drawMessages(screen, snap)
	if snap.Debug.Enabled {
		r.drawDebug(screen, snap)
	}
}

func live(s game.State) bool {
	return s == game.StatePlaying || s == game.StateBossFight || s == game.StateLevelUp
}

func (r *Renderer) drawPlayer(screen *ebiten.Image, snap game.Snapshot) {
	pv := snap.Player
	// Blink while invincible.
	if pv.Invincible && snap.Frame/8%2 == 1 {
		return
	}
	rect := pv.Rect
	body := colorPlayer
	if pv.MultiShot {
		body = colorHighlight
	}
	// Fuselage and wings.
	fillRect(screen, game.Rect{X: rect.CenterX() - rect.W/6, Y: rect.Y, W: rect.W / 3, H: rect.H}, body)
	fillRect(screen, game.Rect{X: rect.X, Y: rect.CenterY(), W: rect.W, H: rect.H / 4}, body)
	vector.DrawFilledCircle(screen, float32(rect.CenterX()), float32(rect.Y+rect.H/4), float32(rect.W/10), colorText, true)

	if pv.Shielded {
		radius := max(rect.W, rect.H) * 0.75
		vector.StrokeCircle(screen, float32(rect.CenterX()), float32(rect.CenterY()), float32(radius), 2, colorShield, true)
	}
}

func (r *Renderer) drawEnemy(screen *ebiten.Image, e game.EnemyView, debug bool) {
	clr := variantColors[e.Variant]
	fillRect(screen, e.Rect, clr)
	vector.StrokeRect(screen, float32(e.Rect.X), float32(e.Rect.Y), float32(e.Rect.W), float32(e.Rect.H), 1, colorText, true)
	if e.State == game.AIAimingShot {
		vector.StrokeLine(screen, float32(e.Rect.CenterX()), float32(e.Rect.Bottom()),
			float32(e.Rect.CenterX()), float32(e.Rect.Bottom()+12), 2, colorHighlight, true)
	}
	if debug {
		r.print(screen, fmt.Sprintf("%s %s hp%d", e.Variant, e.State, e.Health), e.Rect.X, e.Rect.Y-14, colorDim)
	}
}

func (r *Renderer) drawBoss(screen *ebiten.Image, b *game.BossView, vp game.Rect) {
	clr := colorBoss
	if b.Phase > 1 {
		clr = colorBossRage
	}
	fillRect(screen, b.Rect, clr)
	vector.StrokeRect(screen, float32(b.Rect.X), float32(b.Rect.Y), float32(b.Rect.W), float32(b.Rect.H), 3, colorText, true)

	// Health bar across the top of the screen.
	const barH = 8
	barW := vp.W * 0.6
	x := (vp.W - barW) / 2
	vector.DrawFilledRect(screen, float32(x), 24, float32(barW), barH, colorBarBack, true)
	vector.DrawFilledRect(screen, float32(x), 24, float32(barW*b.HealthFraction), barH, colorBarFill, true)
}

func (r *Renderer) drawPowerUp(screen *ebiten.Image, pu game.PowerUpView) {
	label, clr := "S", color.RGBA{0, 180, 255, 255}
	if pu.Kind == game.PowerUpMultiShot {
		label, clr = "M", color.RGBA{255, 200, 0, 255}
	}
	vector.DrawFilledCircle(screen, float32(pu.Rect.CenterX()), float32(pu.Rect.CenterY()), float32(pu.Rect.W/2), clr, true)
	r.print(screen, label, pu.Rect.CenterX()-3, pu.Rect.CenterY()-7, colorText)
}

func (r *Renderer) drawHUD(screen *ebiten.Image, snap game.Snapshot) {
	r.print(screen, fmt.Sprintf("Score: %d", snap.Score), 10, 8, colorText)
	r.print(screen, fmt.Sprintf("Level: %d", snap.Level), 10, 8+lineHeight, colorText)
	r.print(screen, fmt.Sprintf("Next: %d", snap.NextLevelScore), 10, 8+2*lineHeight, colorDim)

	lives := fmt.Sprintf("Lives: %d", snap.Lives)
	w, _ := text.Measure(lives, r.face, lineHeight)
	r.print(screen, lives, snap.Viewport.W-w-10, 8, colorText)
}

func (r *Renderer) drawMessages(screen *ebiten.Image, snap game.Snapshot) {
	mid := snap.Viewport.H / 2
	switch snap.State {
	case game.StateInstructions:
		r.center(screen, "FINGER SHOOTER", mid-4*lineHeight, colorHighlight, snap.Viewport)
		r.center(screen, "Move the mouse to steer, hold the left button or space to fire", mid-2*lineHeight, colorText, snap.Viewport)
		r.center(screen, "H hides the hand, D toggles debug, Esc quits", mid-lineHeight, colorText, snap.Viewport)
		r.center(screen, "Press Enter to calibrate and start", mid+lineHeight, colorHighlight, snap.Viewport)
		if snap.Calibration > 0 && snap.Calibration < 1 {
			const barW, barH = 300, 12
			x := float32((snap.Viewport.W - barW) / 2)
			y := float32(mid + 3*lineHeight)
			vector.StrokeRect(screen, x, y, barW, barH, 1, colorText, true)
			vector.DrawFilledRect(screen, x, y, float32(barW*snap.Calibration), barH, colorBarFill, true)
		}
		if snap.LastError != "" {
			r.center(screen, snap.LastError, mid+5*lineHeight, colorError, snap.Viewport)
		}
	case game.StatePausedNoHand:
		r.center(screen, "HAND LOST", mid-lineHeight, colorHighlight, snap.Viewport)
		r.center(screen, "Bring the cursor back into the window", mid, colorText, snap.Viewport)
	case game.StateLevelUp:
		r.center(screen, fmt.Sprintf("LEVEL %d", snap.Level), mid, colorHighlight, snap.Viewport)
	case game.StateGameOver:
		r.center(screen, "GAME OVER", mid-lineHeight, colorError, snap.Viewport)
		r.center(screen, fmt.Sprintf("Final score %d, press R to restart", snap.Score), mid+lineHeight, colorText, snap.Viewport)
	}
}

func (r *Renderer) drawDebug(screen *ebiten.Image, snap game.Snapshot) {
	d := snap.Debug
	lines := []string{
		fmt.Sprintf("FPS: %.1f", d.FPS),
		fmt.Sprintf("State: %s", d.State),
		fmt.Sprintf("Enemies: %d  Shots: %d", d.Enemies, d.Projectiles),
		fmt.Sprintf("Pickups: %d  FX: %d", d.PowerUps, d.Explosions),
		fmt.Sprintf("Run: %s", d.RunID),
	}
	y := snap.Viewport.H - float64(len(lines))*lineHeight - 8
	for _, line := range lines {
		r.print(screen, line, 10, y, colorDim)
		y += lineHeight
	}
}

func (r *Renderer) print(screen *ebiten.Image, s string, x, y float64, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, s, r.face, op)
}

func (r *Renderer) center(screen *ebiten.Image, s string, y float64, clr color.Color, vp game.Rect) {
	w, _ := text.Measure(s, r.face, lineHeight)
	r.print(screen, s, (vp.W-w)/2, y, clr)
}

func fillRect(screen *ebiten.Image, rect game.Rect, clr color.Color) {
	vector.DrawFilledRect(screen, float32(rect.X), float32(rect.Y), float32(rect.W), float32(rect.H), clr, true)
}

func projectileColor(o game.Owner) color.RGBA {
	switch o {
	case game.OwnerPlayer:
		return color.RGBA{255, 255, 0, 255}
	case game.OwnerEnemy:
		return color.RGBA{255, 60, 60, 255}
	case game.OwnerBoss:
		return color.RGBA{255, 0, 255, 255}
	}
	return colorText
}
