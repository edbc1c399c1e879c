package game

import (
	"fmt"
	"image/color"
	"time"

	"github.com/aquilax/go-perlin"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// borderWidth is the pixel gap between the window edge and the field.
const borderWidth = 24

// backdropCell is the size of one background shading cell.
const backdropCell = 32

// Game is the ebiten shell around a Session. It owns presentation state
// only; all simulation state lives in the session and is read back through
// snapshots after each tick.
type Game struct {
	width  int
	height int
	offX   float64
	offY   float64

	session *Session
	tier    DifficultyTier
	advisor Advisor

	// Deterministic backdrop shading, generated once from perlin noise.
	backdrop []backdropPatch

	prevKeys map[ebiten.Key]bool
	showHint bool
}

// backdropPatch is one subtly shaded background cell.
type backdropPatch struct {
	x, y  float32
	shade uint8
}

// New creates the shell with a fresh session at the given tier. advisor may
// be nil for hint-less play.
func New(tier DifficultyTier, advisor Advisor) *Game {
	cfg := ScenarioFor(tier)
	g := &Game{
		width:    int(cfg.FieldWidth) + 2*borderWidth,
		height:   int(cfg.FieldHeight) + 2*borderWidth,
		offX:     borderWidth,
		offY:     borderWidth,
		session:  NewSession(cfg, advisor),
		tier:     tier,
		advisor:  advisor,
		prevKeys: make(map[ebiten.Key]bool),
		showHint: true,
	}
	g.initBackdrop(cfg)
	return g
}

// initBackdrop samples perlin noise into a fixed grid of shade patches.
func (g *Game) initBackdrop(cfg ScenarioConfig) {
	p := perlin.NewPerlin(2, 2, 3, 7)
	cols := int(cfg.FieldWidth)/backdropCell + 1
	rows := int(cfg.FieldHeight)/backdropCell + 1
	g.backdrop = make([]backdropPatch, 0, cols*rows)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			n := p.Noise2D(float64(c)*0.13, float64(r)*0.13) // [-1,1]
			shade := uint8(18 + (n+1)*6)
			g.backdrop = append(g.backdrop, backdropPatch{
				x:     float32(c * backdropCell),
				y:     float32(r * backdropCell),
				shade: shade,
			})
		}
	}
}

// keyPressed is an edge-triggered key check.
func (g *Game) keyPressed(k ebiten.Key) bool {
	now := ebiten.IsKeyPressed(k)
	was := g.prevKeys[k]
	g.prevKeys[k] = now
	return now && !was
}

// Update runs one simulation tick from mouse input.
func (g *Game) Update() error {
	if g.keyPressed(ebiten.KeyR) {
		cfg := ScenarioFor(g.tier)
		cfg.Seed = time.Now().UnixNano()
		g.session = NewSession(cfg, g.advisor)
	}
	if g.keyPressed(ebiten.KeyH) {
		g.showHint = !g.showHint
	}
	if g.keyPressed(ebiten.KeyC) {
		g.copyDebugReport()
	}

	mx, my := ebiten.CursorPosition()
	in := InputSample{
		X:       float64(mx) - g.offX,
		Y:       float64(my) - g.offY,
		Present: true,
		Trigger: ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
	}
	g.session.Update(time.Now(), in)
	return nil
}

// Draw renders the current session snapshot.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 12, G: 14, B: 20, A: 255})
	for _, bp := range g.backdrop {
		vector.DrawFilledRect(screen,
			float32(g.offX)+bp.x, float32(g.offY)+bp.y,
			backdropCell, backdropCell,
			color.RGBA{R: bp.shade, G: bp.shade, B: bp.shade + 6, A: 255}, false)
	}

	snap := g.session.Snapshot()
	ox := float32(g.offX)
	oy := float32(g.offY)

	// Danger line above the anchor.
	dangerY := oy + float32(snap.AnchorY-dangerMargin)
	vector.StrokeLine(screen, ox, dangerY, ox+float32(g.session.Field().Width()), dangerY,
		1, color.RGBA{R: 180, G: 60, B: 60, A: 160}, false)

	for _, b := range snap.Bubbles {
		vector.DrawFilledCircle(screen, ox+float32(b.X), oy+float32(b.Y),
			bubbleRadius-1, b.Color.RGBA(), true)
	}

	for _, p := range g.session.Particles().Items() {
		vector.DrawFilledCircle(screen, ox+float32(p.X), oy+float32(p.Y),
			3, p.Color.RGBA(), false)
	}

	// Slingshot band while aiming, projectile always.
	if snap.LauncherState == LauncherAiming {
		vector.StrokeLine(screen,
			ox+float32(snap.AnchorX), oy+float32(snap.AnchorY),
			ox+float32(snap.ProjectileX), oy+float32(snap.ProjectileY),
			2, color.RGBA{R: 200, G: 200, B: 200, A: 200}, true)
	}
	vector.DrawFilledCircle(screen,
		ox+float32(snap.ProjectileX), oy+float32(snap.ProjectileY),
		bubbleRadius-1, snap.ProjectileColor.RGBA(), true)

	// Advisor suggestion marker.
	if g.showHint && snap.Hint != nil && snap.Hint.Cell != nil {
		hx, hy := CellToPixel(snap.Hint.Cell.Row, snap.Hint.Cell.Col, g.session.Field().Width())
		vector.StrokeCircle(screen, ox+float32(hx), oy+float32(hy),
			bubbleRadius+4, 2, color.RGBA{R: 240, G: 240, B: 120, A: 220}, true)
	}

	g.drawHUD(screen, snap)
}

func (g *Game) drawHUD(screen *ebiten.Image, snap SessionSnapshot) {
	hud := fmt.Sprintf("score %d  tier %s  shot %s", snap.Score, g.tier, snap.LauncherState)
	ebitenutil.DebugPrintAt(screen, hud, borderWidth, 2)
	if g.showHint && snap.Hint != nil && snap.Hint.Message != "" {
		ebitenutil.DebugPrintAt(screen, snap.Hint.Message, borderWidth, g.height-18)
	}
	switch {
	case snap.GameOver:
		ebitenutil.DebugPrintAt(screen, "GAME OVER - R to restart", g.width/2-70, g.height/2)
	case snap.Cleared:
		ebitenutil.DebugPrintAt(screen, "FIELD CLEARED - R to restart", g.width/2-80, g.height/2)
	case snap.Status.AdvisorDown:
		ebitenutil.DebugPrintAt(screen, "advisor unavailable", borderWidth, 16)
	case snap.Status.ShotDropped:
		ebitenutil.DebugPrintAt(screen, "no landing cell, shot discarded", borderWidth, 16)
	}
}

// Layout reports the fixed window size.
func (g *Game) Layout(int, int) (int, int) {
	return g.width, g.height
}
