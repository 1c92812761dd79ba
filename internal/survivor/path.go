package survivor

import (
	"fmt"
	"strings"

	"github.com/segmentio/fasthash/jody"
	"gonum.org/v1/gonum/floats"
)

// Pick is one week's selection in a candidate path.
type Pick struct {
	Week           int
	Team           Team
	Opponent       Team
	WinProbability float64
	PickPercentage *float64
	AdjustedScore  float64
}

// CandidatePath is an ordered sequence of picks, one per remaining week,
// unique in both team and week.  Paths are created by one solver
// invocation and never mutated afterwards; alternates are separate
// instances.
type CandidatePath struct {
	Picks []Pick
	// SkippedWeeks lists weeks matched to a dummy or sentinel-cost team:
	// weeks with no viable pick, reported rather than hidden.
	SkippedWeeks []int

	WinOutProbability float64
	AggregateScore    float64
}

func newCandidatePath(picks []Pick, skipped []int) *CandidatePath {
	probs := make([]float64, len(picks))
	scores := make([]float64, len(picks))
	for i, p := range picks {
		probs[i] = p.WinProbability
		scores[i] = p.AdjustedScore
	}

	winOut := 0.0
	if len(picks) > 0 {
		winOut = floats.Prod(probs)
	}

	return &CandidatePath{
		Picks:             picks,
		SkippedWeeks:      skipped,
		WinOutProbability: winOut,
		AggregateScore:    floats.Sum(scores),
	}
}

// FirstPick returns the pick for the earliest week in the path.
func (p *CandidatePath) FirstPick() (Pick, bool) {
	if len(p.Picks) == 0 {
		return Pick{}, false
	}
	return p.Picks[0], true
}

// Teams returns the set of teams selected along the path.
func (p *CandidatePath) Teams() TeamSet {
	s := make(TeamSet, len(p.Picks))
	for _, pick := range p.Picks {
		s.Add(pick.Team)
	}
	return s
}

// Hash returns an identity hash over the exact (week, team) sequence,
// suitable for exact-sequence deduplication.
func (p *CandidatePath) Hash() uint64 {
	h := jody.HashString64("")
	for _, pick := range p.Picks {
		h = jody.AddUint64(h, uint64(pick.Week))
		h = jody.AddString64(h, string(pick.Team))
	}
	return h
}

func (p *CandidatePath) String() string {
	var b strings.Builder
	for _, pick := range p.Picks {
		opp := ""
		if pick.Opponent != "" {
			opp = fmt.Sprintf(" vs %s", pick.Opponent)
		}
		b.WriteString(fmt.Sprintf("  Week %2d: %-4s%s (%.1f%%)\n", pick.Week, pick.Team, opp, pick.WinProbability*100))
	}
	for _, week := range p.SkippedWeeks {
		b.WriteString(fmt.Sprintf("  Week %2d: no viable pick\n", week))
	}
	b.WriteString(fmt.Sprintf("  win-out %.2f%%, score %.3f\n", p.WinOutProbability*100, p.AggregateScore))
	return b.String()
}
