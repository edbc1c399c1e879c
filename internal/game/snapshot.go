package game

// The presentation layer reads immutable snapshots after each tick instead
// of reaching into live state; rendering never mutates the core.

// BubbleView is a render-ready copy of one active bubble.
type BubbleView struct {
	X, Y  float64
	Color BubbleColor
}

// SessionSnapshot is the full read-only view of a session after a tick.
type SessionSnapshot struct {
	Tick    int
	Score   int
	Bubbles []BubbleView

	ProjectileX     float64
	ProjectileY     float64
	ProjectileColor BubbleColor
	LauncherState   LauncherState

	AnchorX float64
	AnchorY float64

	Hint   *HintResponse // current aim suggestion, nil when none
	Status SessionStatus

	GameOver bool
	Cleared  bool
}

// Snapshot captures the current session state for rendering.
func (s *Session) Snapshot() SessionSnapshot {
	snap := SessionSnapshot{
		Tick:          s.tick,
		Score:         s.score,
		LauncherState: s.launcher.State(),
		Status:        s.status,
		GameOver:      s.field.GameOver(),
		Cleared:       s.field.Cleared(),
	}
	snap.ProjectileX, snap.ProjectileY = s.launcher.Position()
	snap.ProjectileColor = s.launcher.Color()
	snap.AnchorX, snap.AnchorY = s.field.Anchor()
	if s.hint != nil {
		h := *s.hint
		snap.Hint = &h
	}
	for _, b := range s.field.ActiveBubbles() {
		snap.Bubbles = append(snap.Bubbles, BubbleView{X: b.X, Y: b.Y, Color: b.Color})
	}
	return snap
}
