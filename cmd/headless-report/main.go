package main

import (
	"flag"
	"fmt"
	"math"
	"time"

	"hexpop/internal/game"
)

// runStats aggregates one headless bot run.
type runStats struct {
	runIndex int
	seed     int64

	ticks    int
	shots    int
	score    int
	clusters int
	dropped  int
	ceilings int
	cleared  bool
	lost     bool

	grade game.RunGrade
}

func main() {
	var runs int
	var maxShots int
	var seedBase int64
	var seedStep int64
	var rows int
	var gap float64
	var ceilingMS int

	flag.IntVar(&runs, "runs", 10, "number of headless bot runs")
	flag.IntVar(&maxShots, "shots", 60, "shot budget per run")
	flag.Int64Var(&seedBase, "seed-base", 42, "base RNG seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.IntVar(&rows, "rows", 4, "initial populated rows")
	flag.Float64Var(&gap, "gap", 0.2, "gap probability for initial rows")
	flag.IntVar(&ceilingMS, "ceiling-ms", 0, "ceiling advance interval in ms (0 = disabled)")
	flag.Parse()

	if runs <= 0 || maxShots <= 0 {
		fmt.Println("error: -runs and -shots must be > 0")
		return
	}

	fmt.Printf("=== Headless Bot Report ===\n")
	fmt.Printf("runs=%d shots=%d rows=%d gap=%.2f ceiling=%dms seed_base=%d\n\n",
		runs, maxShots, rows, gap, ceilingMS, seedBase)

	all := make([]runStats, 0, runs)
	for i := 0; i < runs; i++ {
		seed := seedBase + int64(i)*seedStep
		stats := runBot(i+1, seed, maxShots, rows, gap, ceilingMS)
		all = append(all, stats)
		printRun(stats)
	}
	printSummary(all)
}

// runBot plays one session with a greedy targeting bot: every shot aims at
// the reachable cluster worth the most points.
func runBot(runIndex int, seed int64, maxShots, rows int, gap float64, ceilingMS int) runStats {
	opts := []game.SimOption{
		game.WithSeed(seed),
		game.WithRows(rows, gap),
	}
	if ceilingMS > 0 {
		opts = append(opts, game.WithCeilingInterval(time.Duration(ceilingMS)*time.Millisecond))
	}
	ts := game.NewTestSim(opts...)

	stats := runStats{runIndex: runIndex, seed: seed}
	for stats.shots = 0; stats.shots < maxShots && !ts.Session.Over(); stats.shots++ {
		dx, dy := aimAtBest(ts)
		if ts.ShootAndResolve(dx, dy, 2000) < 0 {
			break // shot never settled; give the run up
		}
	}

	stats.ticks = ts.Session.Tick()
	stats.score = ts.Session.Score()
	stats.clusters = ts.SimLog.CountCategory("match", "popped")
	stats.dropped = ts.SimLog.CountCategory("shot", "dropped")
	stats.ceilings = ts.SimLog.CountCategory("ceiling", "advance")
	stats.cleared = ts.Session.Field().Cleared()
	stats.lost = ts.Session.Field().GameOver()
	stats.grade = game.GradeRun(ts.Session.Stats(), stats.cleared, stats.lost)
	return stats
}

// aimAtBest returns the draw offset for the highest-value candidate, or a
// straight full draw upward when nothing is reachable.
func aimAtBest(ts *game.TestSim) (dx, dy float64) {
	cands := ts.Session.ScanTargets()
	ax, ay := ts.Session.Field().Anchor()
	if len(cands) == 0 {
		return 0, 175
	}
	best := cands[0]
	bestValue := -1
	for _, c := range cands {
		if v := c.ClusterSize * c.PointsEach; v > bestValue {
			bestValue = v
			best = c
		}
	}
	tx, ty := game.CellToPixel(best.Cell.Row, best.Cell.Col, ts.Session.Field().Width())
	dist := math.Hypot(tx-ax, ty-ay)
	if dist == 0 {
		return 0, 175
	}
	// Draw opposite the target direction at near-full power.
	return -(tx - ax) / dist * 175, -(ty - ay) / dist * 175
}

func printRun(s runStats) {
	outcome := "budget spent"
	if s.cleared {
		outcome = "cleared"
	} else if s.lost {
		outcome = "lost"
	}
	fmt.Printf("run %2d seed=%-6d shots=%-3d score=%-6d clusters=%-3d dropped=%-2d ceilings=%-2d ticks=%-6d %s\n",
		s.runIndex, s.seed, s.shots, s.score, s.clusters, s.dropped, s.ceilings, s.ticks, outcome)
	fmt.Printf("       %s\n", s.grade.Format())
}

func printSummary(all []runStats) {
	if len(all) == 0 {
		return
	}
	var score, clusters, shots, clearedN int
	var gradeSum float64
	for _, s := range all {
		score += s.score
		clusters += s.clusters
		shots += s.shots
		gradeSum += s.grade.Score
		if s.cleared {
			clearedN++
		}
	}
	n := len(all)
	fmt.Printf("\nmean score=%.1f  mean clusters=%.1f  mean shots=%.1f  mean grade=%.0f  cleared %d/%d\n",
		float64(score)/float64(n), float64(clusters)/float64(n), float64(shots)/float64(n),
		gradeSum/float64(n), clearedN, n)
}
