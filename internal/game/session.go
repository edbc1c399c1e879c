package game

import (
	"fmt"
	"math/rand"
	"time"
)

// ScenarioConfig is the full set of scenario/difficulty parameters for one
// session. Zero values are filled in by NewSession where sensible.
type ScenarioConfig struct {
	Tier        DifficultyTier
	FieldWidth  float64
	FieldHeight float64

	InitialRows    int
	GapProbability float64

	// CeilingInterval is the wall-clock cadence of ceiling advances.
	// Zero or negative disables escalation entirely (the relaxed tier).
	CeilingInterval time.Duration

	// ScanInterval is the wall-clock cadence of targeting scans fed to the
	// advisor. Ignored when no advisor is attached.
	ScanInterval time.Duration

	// DropFloating enables the optional disconnected-bubble sweep after
	// each pop. Off by default, matching the source behaviour.
	DropFloating bool

	Locale string
	Seed   int64
}

// ScenarioFor returns the preset configuration for a difficulty tier.
func ScenarioFor(tier DifficultyTier) ScenarioConfig {
	cfg := ScenarioConfig{
		Tier:           tier,
		FieldWidth:     14 * bubbleDiameter,
		FieldHeight:    960,
		InitialRows:    4,
		GapProbability: 0.25,
		ScanInterval:   4 * time.Second,
		Locale:         "en",
		Seed:           time.Now().UnixNano(),
	}
	switch tier {
	case TierSteady:
		cfg.CeilingInterval = 25 * time.Second
	case TierFrantic:
		cfg.CeilingInterval = 12 * time.Second
		cfg.GapProbability = 0.15
		cfg.InitialRows = 5
	}
	return cfg
}

// SessionStatus carries the observable degrade flags for the presentation
// layer. Reset at the start of every tick; nothing in the core terminates
// the process.
type SessionStatus struct {
	ShotDropped  bool // landing window exhausted, shot discarded
	ShotTimedOut bool // flight timeout returned the shot to anchor
	AdvisorDown  bool // last advisor call failed; play continues hint-less
}

// Session is the single simulation-state owner: one logical tick per call
// to Update, driven externally at the display rate. All core mutation
// happens inside Update; the advisor call is the only concurrency and it
// never blocks the tick loop.
type Session struct {
	cfg ScenarioConfig
	rng *rand.Rand

	field    *BubbleField
	launcher *Launcher
	match    *MatchEngine
	analyzer *TargetingAnalyzer

	advisor Advisor // optional
	mailbox hintMailbox
	hint    *HintResponse

	particles ParticleArena
	log       *SimLog

	tick   int
	score  int
	status SessionStatus

	started     bool
	lastCeiling time.Time
	lastScan    time.Time

	shotsFired   int
	shotsLanded  int
	clustersDone int
}

// NewSession builds a session from a scenario. advisor may be nil.
func NewSession(cfg ScenarioConfig, advisor Advisor) *Session {
	if cfg.FieldWidth <= 0 {
		cfg.FieldWidth = 14 * bubbleDiameter
	}
	if cfg.FieldHeight <= 0 {
		cfg.FieldHeight = 960
	}
	if cfg.ScanInterval <= 0 {
		cfg.ScanInterval = 4 * time.Second
	}
	rng := rand.New(rand.NewSource(cfg.Seed)) // #nosec G404 -- game only
	field := NewBubbleField(cfg.FieldWidth, cfg.FieldHeight)
	field.Populate(cfg.InitialRows, cfg.GapProbability, rng)

	s := &Session{
		cfg:      cfg,
		rng:      rng,
		field:    field,
		match:    NewMatchEngine(field),
		analyzer: NewTargetingAnalyzer(field),
		advisor:  advisor,
		log:      NewSimLog(false),
	}
	s.launcher = NewLauncher(field, s.nextShotColor())
	return s
}

// SetLog swaps in an externally owned SimLog (the harness does this to run
// verbose).
func (s *Session) SetLog(sl *SimLog) { s.log = sl }

// Field exposes the bubble field for read-only inspection.
func (s *Session) Field() *BubbleField { return s.field }

// Launcher exposes the projectile state machine for read-only inspection.
func (s *Session) Launcher() *Launcher { return s.launcher }

// Score returns the accumulated score.
func (s *Session) Score() int { return s.score }

// Tick returns the number of completed ticks.
func (s *Session) Tick() int { return s.tick }

// Status returns the degrade flags raised during the last tick.
func (s *Session) Status() SessionStatus { return s.status }

// Hint returns the most recent advisor recommendation, or nil.
func (s *Session) Hint() *HintResponse { return s.hint }

// Particles exposes the pop-burst arena for the renderer.
func (s *Session) Particles() *ParticleArena { return &s.particles }

// Over reports a terminal field: lost or fully cleared.
func (s *Session) Over() bool { return s.field.GameOver() || s.field.Cleared() }

// ScanTargets runs a targeting scan on demand. This is the same analysis
// the advisor receives; bots use it directly to choose shots.
func (s *Session) ScanTargets() []CandidateTarget { return s.analyzer.Scan() }

// nextShotColor draws a legal colour: one still present on the field, so
// every shot can in principle match. Falls back to a uniform draw on an
// empty field.
func (s *Session) nextShotColor() BubbleColor {
	avail := s.field.AvailableColors().Colors()
	if len(avail) == 0 {
		return randomColor(s.rng)
	}
	return avail[s.rng.Intn(len(avail))]
}

// Update runs one simulation tick. now must come from a monotonic clock so
// ceiling-advance and scan cadence are frame-rate independent.
func (s *Session) Update(now time.Time, in InputSample) {
	s.tick++
	s.status = SessionStatus{}
	if !s.started {
		s.started = true
		s.lastCeiling = now
		s.lastScan = now.Add(-s.cfg.ScanInterval) // first scan fires immediately
	}

	// Previous tick's pops are reclaimed at the top of the next tick.
	s.field.Compact()

	if s.field.GameOver() || s.field.Cleared() {
		s.particles.Update()
		return
	}

	if outcome := s.launcher.Update(now, in); outcome != nil {
		s.resolveOutcome(outcome)
	}

	if s.cfg.CeilingInterval > 0 && now.Sub(s.lastCeiling) >= s.cfg.CeilingInterval {
		s.lastCeiling = now
		lost := s.field.AdvanceCeiling(s.rng)
		s.log.Add(s.tick, "ceiling", "advance",
			fmt.Sprintf("max row now %d", s.field.MaxOccupiedRow()), float64(s.field.MaxOccupiedRow()))
		if lost {
			s.log.Add(s.tick, "field", "game_over", "bubble crossed danger line", 0)
		}
	}

	s.pollAdvisor(now)
	s.particles.Update()

	s.log.AddVerbose(s.tick, "shot", "state", s.launcher.State().String(), 0)
}

// resolveOutcome handles a finished flight: placement, matching, optional
// floating sweep, reload.
func (s *Session) resolveOutcome(out *ShotOutcome) {
	s.shotsFired++
	switch {
	case out.TimedOut:
		s.status.ShotTimedOut = true
		s.log.Add(s.tick, "shot", "timeout", "flight exceeded limit, returned to anchor", 0)
	case out.Dropped:
		s.status.ShotDropped = true
		s.log.Add(s.tick, "shot", "dropped", "no free landing cell", 0)
	case out.Landed != nil:
		s.shotsLanded++
		b := out.Landed
		s.log.Add(s.tick, "shot", "landed",
			fmt.Sprintf("%s at (%d,%d)", b.Color, b.Cell.Row, b.Cell.Col), 0)
		res := s.match.Resolve(b)
		if res.Matched {
			s.clustersDone++
			s.score += res.Score
			s.log.Add(s.tick, "match", "popped",
				fmt.Sprintf("%s x%d (+%d)", b.Color, len(res.Cells), res.Score), float64(len(res.Cells)))
			for _, cell := range res.Cells {
				x, y := CellToPixel(cell.Row, cell.Col, s.field.Width())
				s.particles.spawnBurst(x, y, b.Color, s.rng)
			}
			if s.cfg.DropFloating {
				if cells, bonus := DropFloating(s.field); len(cells) > 0 {
					s.score += bonus
					s.log.Add(s.tick, "match", "dropped_floating",
						fmt.Sprintf("%d bubbles (+%d)", len(cells), bonus), float64(len(cells)))
				}
			}
			if s.field.Cleared() {
				s.log.Add(s.tick, "field", "cleared", "all bubbles popped", 0)
			}
		}
		if s.field.NoteDanger() {
			s.log.Add(s.tick, "field", "game_over", "bubble crossed danger line", 0)
		}
	}
	s.launcher.Reload(s.nextShotColor())
}

// pollAdvisor kicks off a background hint request on the scan cadence and
// consumes any delivered result. The tick loop never waits on the advisor;
// a result may straddle many ticks or never come.
func (s *Session) pollAdvisor(now time.Time) {
	if resp, failed := s.mailbox.take(); resp != nil || failed {
		if failed {
			s.status.AdvisorDown = true
			s.hint = nil
			s.log.Add(s.tick, "advisor", "failed", "continuing without recommendation", 0)
		} else {
			s.hint = resp
			s.log.Add(s.tick, "advisor", "hint", resp.Message, 0)
		}
	}

	if s.advisor == nil || now.Sub(s.lastScan) < s.cfg.ScanInterval {
		return
	}
	s.lastScan = now
	if !s.mailbox.tryBegin() {
		return // one outstanding request max; this scan is dropped
	}
	req := HintRequest{
		Candidates:     s.analyzer.Scan(),
		MaxOccupiedRow: s.field.MaxOccupiedRow(),
		Tier:           s.cfg.Tier,
		Locale:         s.cfg.Locale,
	}
	s.log.Add(s.tick, "target", "scan", fmt.Sprintf("%d candidates", len(req.Candidates)), float64(len(req.Candidates)))
	go func() {
		resp, err := s.advisor.Recommend(req)
		s.mailbox.deliver(resp, err)
	}()
}
