package game

import (
	"math"
	"time"
)

const (
	// captureRadius is how close the trigger must engage to the resting
	// projectile to begin a draw.
	captureRadius = 100.0

	// maxDrawDistance is the radial clamp on the draw; overdraw is never
	// allowed.
	maxDrawDistance = 180.0

	// minDrawDistance is the release threshold. A release at or below it
	// cancels the shot; the draw must be strictly greater to fire.
	minDrawDistance = 30.0

	// Launch multiplier range. The interpolation between them is quadratic
	// in the normalised draw ratio so full draws pay off disproportionately.
	// Feel tuning: keep the easing quadratic, not linear.
	minVelocityMul = 0.035
	maxVelocityMul = 0.13

	// frictionPerTick is the multiplicative per-tick velocity decay.
	frictionPerTick = 0.995

	// gravityPerTick is added to vy each tick. Tunable; zero by default.
	gravityPerTick = 0.0

	// flightTimeout forces a shot that never resolves back to the anchor.
	flightTimeout = 5 * time.Second

	// subStepLength is the maximum movement per collision sub-step; keeping
	// it under a radius prevents tunnelling through bubbles at high speed.
	subStepLength = bubbleRadius * 0.8

	// Landing search window: rows beyond the lowest occupied row that are
	// scanned for an empty cell, and the one-time extension used when the
	// window is exhausted.
	landingRowBuffer = 2
	landingRowExtend = 6
)

// LauncherState is the projectile state machine phase. The projectile is in
// exactly one phase; it is never flying and aimed at once.
type LauncherState uint8

const (
	LauncherResting LauncherState = iota // at anchor, waiting for a grab
	LauncherAiming                       // drawn, tracking input
	LauncherFlying                       // in flight
)

func (s LauncherState) String() string {
	switch s {
	case LauncherResting:
		return "resting"
	case LauncherAiming:
		return "aiming"
	case LauncherFlying:
		return "flying"
	default:
		return "unknown"
	}
}

// InputSample is the per-tick input source contract. Present=false means no
// pointer/hand was detected this tick and is treated exactly like a released
// trigger.
type InputSample struct {
	X, Y    float64
	Present bool
	Trigger bool
}

// ShotOutcome reports how a flight ended. Returned once per resolved shot;
// nil on all other ticks.
type ShotOutcome struct {
	Landed   *Bubble // placed bubble, nil when the shot was discarded
	Dropped  bool    // landing window exhausted even after extension
	TimedOut bool    // flight exceeded flightTimeout
}

// Launcher is the single projectile in play: slingshot draw, flight and
// landing resolution. One shot exists at a time; no history is kept.
type Launcher struct {
	field *BubbleField

	state LauncherState
	x, y  float64
	vx    float64
	vy    float64
	color BubbleColor

	flightStart time.Time
}

// NewLauncher creates a launcher resting at the field anchor.
func NewLauncher(field *BubbleField, c BubbleColor) *Launcher {
	ax, ay := field.Anchor()
	return &Launcher{field: field, state: LauncherResting, x: ax, y: ay, color: c}
}

// State returns the current state machine phase.
func (l *Launcher) State() LauncherState { return l.state }

// Position returns the projectile centre.
func (l *Launcher) Position() (x, y float64) { return l.x, l.y }

// Color returns the colour of the loaded projectile.
func (l *Launcher) Color() BubbleColor { return l.color }

// Reload sets the colour of the next shot. Only meaningful while resting.
func (l *Launcher) Reload(c BubbleColor) {
	if l.state == LauncherResting {
		l.color = c
	}
}

// DrawDistance returns the current draw length while aiming, else 0.
func (l *Launcher) DrawDistance() float64 {
	if l.state != LauncherAiming {
		return 0
	}
	ax, ay := l.field.Anchor()
	return math.Hypot(l.x-ax, l.y-ay)
}

// Update advances the state machine one tick and returns a ShotOutcome when
// a flight resolved this tick.
func (l *Launcher) Update(now time.Time, in InputSample) *ShotOutcome {
	switch l.state {
	case LauncherResting:
		l.updateResting(in)
		return nil
	case LauncherAiming:
		return l.updateAiming(now, in)
	case LauncherFlying:
		return l.updateFlying(now)
	}
	return nil
}

func (l *Launcher) updateResting(in InputSample) {
	ax, ay := l.field.Anchor()
	l.x, l.y = ax, ay
	l.vx, l.vy = 0, 0
	if !in.Present || !in.Trigger {
		return
	}
	if math.Hypot(in.X-ax, in.Y-ay) <= captureRadius {
		l.state = LauncherAiming
	}
}

func (l *Launcher) updateAiming(now time.Time, in InputSample) *ShotOutcome {
	ax, ay := l.field.Anchor()
	if !in.Present || !in.Trigger {
		// Release. Sub-threshold draws cancel; must be strictly beyond
		// minDrawDistance to fire.
		draw := math.Hypot(l.x-ax, l.y-ay)
		if draw > minDrawDistance {
			l.launch(now, ax, ay, draw)
		} else {
			l.snapBack()
		}
		return nil
	}
	// Track the input, radially clamped to the maximum draw.
	dx := in.X - ax
	dy := in.Y - ay
	if dist := math.Hypot(dx, dy); dist > maxDrawDistance {
		scale := maxDrawDistance / dist
		dx *= scale
		dy *= scale
	}
	l.x = ax + dx
	l.y = ay + dy
	return nil
}

// launch converts the draw into flight velocity. The multiplier eases
// quadratically from minVelocityMul to maxVelocityMul over the normalised
// draw ratio.
func (l *Launcher) launch(now time.Time, ax, ay, draw float64) {
	ratio := draw / maxDrawDistance
	if ratio > 1 {
		ratio = 1
	}
	mul := minVelocityMul + (maxVelocityMul-minVelocityMul)*ratio*ratio
	l.vx = (ax - l.x) * mul
	l.vy = (ay - l.y) * mul
	l.state = LauncherFlying
	l.flightStart = now
}

// snapBack returns the projectile to the anchor with zero velocity.
func (l *Launcher) snapBack() {
	ax, ay := l.field.Anchor()
	l.x, l.y = ax, ay
	l.vx, l.vy = 0, 0
	l.state = LauncherResting
}

func (l *Launcher) updateFlying(now time.Time) *ShotOutcome {
	if now.Sub(l.flightStart) > flightTimeout {
		l.snapBack()
		return &ShotOutcome{TimedOut: true}
	}

	speed := math.Hypot(l.vx, l.vy)
	steps := int(math.Ceil(speed / subStepLength))
	if steps < 1 {
		steps = 1
	}
	sx := l.vx / float64(steps)
	sy := l.vy / float64(steps)

	for i := 0; i < steps; i++ {
		l.x += sx
		l.y += sy

		// Elastic reflection off the side walls, no energy loss.
		if l.x < bubbleRadius {
			l.x = 2*bubbleRadius - l.x
			l.vx = -l.vx
			sx = -sx
		} else if l.x > l.field.Width()-bubbleRadius {
			l.x = 2*(l.field.Width()-bubbleRadius) - l.x
			l.vx = -l.vx
			sx = -sx
		}

		// Remaining sub-steps are discarded the moment a collision lands.
		if l.y <= bubbleRadius || l.touchesField() {
			out := l.resolveLanding()
			l.snapBack()
			return out
		}
	}

	l.vx *= frictionPerTick
	l.vy *= frictionPerTick
	l.vy += gravityPerTick
	return nil
}

// touchesField reports whether the projectile overlaps any active bubble.
func (l *Launcher) touchesField() bool {
	for _, b := range l.field.ActiveBubbles() {
		if math.Hypot(b.X-l.x, b.Y-l.y) < collisionRadius {
			return true
		}
	}
	return false
}

// resolveLanding snaps the projectile to the nearest empty cell and places
// a bubble of the loaded colour there. The snap is a Euclidean
// nearest-centre choice over a bounded row window, not the geometric hex
// face that was struck; the approximation is accepted for simplicity.
func (l *Launcher) resolveLanding() *ShotOutcome {
	cell, ok := l.nearestFreeCell(landingRowBuffer)
	if !ok {
		// Window exhausted: widen once, then give the shot up rather than
		// crash or overwrite.
		cell, ok = l.nearestFreeCell(landingRowExtend)
		if !ok {
			return &ShotOutcome{Dropped: true}
		}
	}
	b, err := l.field.Place(l.color, cell)
	if err != nil {
		// Occupied cells are filtered out by the scan, so this is a logic
		// error; degrade to a dropped shot.
		return &ShotOutcome{Dropped: true}
	}
	return &ShotOutcome{Landed: b}
}

// nearestFreeCell scans rows 0..maxOccupied+buffer for the empty cell whose
// centre is closest to the projectile.
func (l *Launcher) nearestFreeCell(buffer int) (Cell, bool) {
	maxRow := l.field.MaxOccupiedRow() + buffer
	if maxRow < buffer {
		maxRow = buffer
	}
	best := Cell{}
	bestDist := math.MaxFloat64
	found := false
	for row := 0; row <= maxRow; row++ {
		cols := ColumnsInRow(row, l.field.Width())
		for col := 0; col < cols; col++ {
			cell := Cell{Row: row, Col: col}
			if l.field.ActiveAt(cell) != nil {
				continue
			}
			x, y := CellToPixel(row, col, l.field.Width())
			d := math.Hypot(x-l.x, y-l.y)
			if d < bestDist {
				bestDist = d
				best = cell
				found = true
			}
		}
	}
	return best, found
}
