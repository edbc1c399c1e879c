package game

import "time"

// TestSim is a headless session harness used exclusively by tests and the
// headless-report tool. It mirrors the shell's Update loop but drives a
// simulated monotonic clock and scripted input, so wall-clock mechanics
// (ceiling cadence, flight timeout, scan cadence) are deterministic.
type TestSim struct {
	Session *Session
	SimLog  *SimLog

	cfg     ScenarioConfig
	advisor Advisor
	verbose bool
	tickDT  time.Duration
	now     time.Time

	pending []placement
}

type placement struct {
	cell  Cell
	color BubbleColor
}

// simOptionKind controls the pass in which an option is applied.
type simOptionKind int

const (
	simOptInfra  simOptionKind = iota // scenario config, seed, clock, verbose
	simOptBubble                      // explicit bubble placements
)

// SimOption is a builder function applied to a TestSim during construction.
type SimOption struct {
	kind simOptionKind
	fn   func(*TestSim)
}

// WithFieldSize sets the grid width in even-row columns and the field
// height in world units.
func WithFieldSize(cols int, height float64) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.cfg.FieldWidth = float64(cols) * bubbleDiameter
		ts.cfg.FieldHeight = height
	}}
}

// WithSeed sets the RNG seed for deterministic runs.
func WithSeed(seed int64) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) { ts.cfg.Seed = seed }}
}

// WithVerbose enables per-tick verbose logging.
func WithVerbose(v bool) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) { ts.verbose = v }}
}

// WithRows populates the given number of initial rows with the given gap
// probability. The harness default is an empty field.
func WithRows(rows int, gapProbability float64) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.cfg.InitialRows = rows
		ts.cfg.GapProbability = gapProbability
	}}
}

// WithCeilingInterval sets the wall-clock escalation cadence; zero disables.
func WithCeilingInterval(d time.Duration) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) { ts.cfg.CeilingInterval = d }}
}

// WithScanInterval sets the targeting scan cadence.
func WithScanInterval(d time.Duration) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) { ts.cfg.ScanInterval = d }}
}

// WithDropFloating enables the optional disconnected-bubble sweep.
func WithDropFloating(on bool) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) { ts.cfg.DropFloating = on }}
}

// WithTier sets the difficulty tier passed to the advisor.
func WithTier(t DifficultyTier) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) { ts.cfg.Tier = t }}
}

// WithAdvisor attaches an advisor implementation.
func WithAdvisor(a Advisor) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) { ts.advisor = a }}
}

// WithTickDuration sets the simulated per-tick clock step (default 16ms).
func WithTickDuration(d time.Duration) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) { ts.tickDT = d }}
}

// WithBubbleAt places a bubble of the given colour at (row, col), applied
// after any populated rows.
func WithBubbleAt(row, col int, c BubbleColor) SimOption {
	return SimOption{simOptBubble, func(ts *TestSim) {
		ts.pending = append(ts.pending, placement{cell: Cell{Row: row, Col: col}, color: c})
	}}
}

// NewTestSim constructs a harness in two ordered passes: infrastructure
// options first, then explicit bubble placements once the field exists.
func NewTestSim(opts ...SimOption) *TestSim {
	ts := &TestSim{
		cfg: ScenarioConfig{
			FieldWidth:  12 * bubbleDiameter,
			FieldHeight: 960,
			Seed:        1,
		},
		tickDT: 16 * time.Millisecond,
		now:    time.Unix(0, 0),
	}
	for _, o := range opts {
		if o.kind == simOptInfra {
			o.fn(ts)
		}
	}
	ts.Session = NewSession(ts.cfg, ts.advisor)
	ts.SimLog = NewSimLog(ts.verbose)
	ts.Session.SetLog(ts.SimLog)
	for _, o := range opts {
		if o.kind == simOptBubble {
			o.fn(ts)
		}
	}
	for _, p := range ts.pending {
		if _, err := ts.Session.Field().Place(p.color, p.cell); err != nil {
			panic(err) // misconfigured test scenario
		}
	}
	if len(ts.pending) > 0 {
		// The session drew its first shot colour before these placements
		// existed; redraw it from the final field.
		ts.Session.launcher.Reload(ts.Session.nextShotColor())
	}
	return ts
}

// Now returns the simulated clock.
func (ts *TestSim) Now() time.Time { return ts.now }

// Step runs one tick with the given input sample.
func (ts *TestSim) Step(in InputSample) {
	ts.now = ts.now.Add(ts.tickDT)
	ts.Session.Update(ts.now, in)
}

// RunTicks advances n ticks with no input present.
func (ts *TestSim) RunTicks(n int) {
	for i := 0; i < n; i++ {
		ts.Step(InputSample{})
	}
}

// RunUntil advances up to maxTicks, stopping early when predicate returns
// true. Returns the tick at which it was satisfied, or -1.
func (ts *TestSim) RunUntil(predicate func(*TestSim) bool, maxTicks int) int {
	for i := 0; i < maxTicks; i++ {
		ts.Step(InputSample{})
		if predicate(ts) {
			return ts.Session.Tick()
		}
	}
	return -1
}

// Shoot scripts a full slingshot gesture: grab at the anchor, drag to the
// given offset from it over a few ticks, release. The shot then flies under
// RunTicks/RunUntil control.
func (ts *TestSim) Shoot(drawDX, drawDY float64) {
	ax, ay := ts.Session.Field().Anchor()
	ts.Step(InputSample{X: ax, Y: ay, Present: true, Trigger: true})
	for i := 1; i <= 4; i++ {
		f := float64(i) / 4
		ts.Step(InputSample{X: ax + drawDX*f, Y: ay + drawDY*f, Present: true, Trigger: true})
	}
	ts.Step(InputSample{})
}

// ShootAndResolve scripts a shot and runs until the launcher returns to
// rest. Returns the tick of resolution, or -1 if the shot never settled.
func (ts *TestSim) ShootAndResolve(drawDX, drawDY float64, maxTicks int) int {
	ts.Shoot(drawDX, drawDY)
	return ts.RunUntil(func(ts *TestSim) bool {
		return ts.Session.Launcher().State() == LauncherResting
	}, maxTicks)
}
