package game

import (
	"fmt"
	"strings"
)

// Grading thresholds.
const (
	gradeMinShots    = 3
	gradeTargetYield = 400.0 // points per landed shot considered excellent
)

// SessionStats are the run counters a session accumulates. Read-only copy;
// the headless report and the grader consume it after a run.
type SessionStats struct {
	Ticks        int
	Score        int
	ShotsFired   int
	ShotsLanded  int
	ClustersDone int
}

// Stats returns a copy of the session's run counters.
func (s *Session) Stats() SessionStats {
	return SessionStats{
		Ticks:        s.tick,
		Score:        s.score,
		ShotsFired:   s.shotsFired,
		ShotsLanded:  s.shotsLanded,
		ClustersDone: s.clustersDone,
	}
}

// RunGrade is the computed grade for one finished run.
type RunGrade struct {
	Grade string  // A+, A, B+, B, C+, C, D, F
	Score float64 // 0-100

	// Component scores (0-100; -1 = not enough data to grade).
	AccuracyScore float64 // landed shots that completed a cluster
	YieldScore    float64 // points extracted per landed shot
	ControlScore  float64 // shots that resolved onto the field at all

	GoodTraits []string
	BadTraits  []string
}

// GradeRun grades a finished run from its counters and terminal state.
// Runs shorter than gradeMinShots get a neutral C.
func GradeRun(st SessionStats, cleared, lost bool) RunGrade {
	g := RunGrade{
		AccuracyScore: -1,
		YieldScore:    -1,
		ControlScore:  -1,
	}
	if st.ShotsFired < gradeMinShots {
		g.Score = 55
		g.Grade = letterGrade(g.Score)
		return g
	}

	popRate := gradeFrac(st.ClustersDone, st.ShotsLanded)
	landRate := gradeFrac(st.ShotsLanded, st.ShotsFired)
	yield := 0.0
	if st.ShotsLanded > 0 {
		yield = float64(st.Score) / float64(st.ShotsLanded)
	}

	g.AccuracyScore = gradeClamp(popRate * 100)
	g.ControlScore = gradeClamp(landRate * 100)
	g.YieldScore = gradeClamp(yield / gradeTargetYield * 100)

	g.Score = 0.45*g.AccuracyScore + 0.35*g.YieldScore + 0.20*g.ControlScore
	if cleared {
		g.Score = gradeClamp(g.Score + 10)
	}
	if lost {
		g.Score = gradeClamp(g.Score - 10)
	}
	g.Grade = letterGrade(g.Score)

	if popRate > 0.5 {
		g.GoodTraits = append(g.GoodTraits, "efficient_popper")
	}
	if yield > gradeTargetYield {
		g.GoodTraits = append(g.GoodTraits, "combo_hunter")
	}
	if cleared {
		g.GoodTraits = append(g.GoodTraits, "board_clearer")
	}
	if popRate < 0.2 {
		g.BadTraits = append(g.BadTraits, "wasted_shots")
	}
	if landRate < 0.7 {
		g.BadTraits = append(g.BadTraits, "timeout_prone")
	}
	return g
}

// Format renders the grade as a single report line plus optional traits.
func (g RunGrade) Format() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "grade %-2s (%.0f)", g.Grade, g.Score)
	if g.AccuracyScore >= 0 {
		fmt.Fprintf(&sb, "  accuracy=%.0f yield=%.0f control=%.0f",
			g.AccuracyScore, g.YieldScore, g.ControlScore)
	}
	if len(g.GoodTraits) > 0 {
		fmt.Fprintf(&sb, "  good: %s", strings.Join(g.GoodTraits, ", "))
	}
	if len(g.BadTraits) > 0 {
		fmt.Fprintf(&sb, "  bad: %s", strings.Join(g.BadTraits, ", "))
	}
	return sb.String()
}

func gradeFrac(num, denom int) float64 {
	if denom <= 0 {
		return 0
	}
	return float64(num) / float64(denom)
}

func gradeClamp(s float64) float64 {
	if s < 0 {
		return 0
	}
	if s > 100 {
		return 100
	}
	return s
}

// letterGrade maps a 0-100 score to a letter grade.
func letterGrade(score float64) string {
	switch {
	case score >= 93:
		return "A+"
	case score >= 85:
		return "A"
	case score >= 78:
		return "B+"
	case score >= 70:
		return "B"
	case score >= 62:
		return "C+"
	case score >= 55:
		return "C"
	case score >= 45:
		return "D"
	default:
		return "F"
	}
}
