package survivor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pathFor(teams []Team, probs []float64, scores []float64) *CandidatePath {
	picks := make([]Pick, len(teams))
	for i := range teams {
		picks[i] = Pick{
			Week:           i + 1,
			Team:           teams[i],
			WinProbability: probs[i],
			AdjustedScore:  scores[i],
		}
	}
	return newCandidatePath(picks, nil)
}

func TestRankPaths_OrdersByAggregateScore(t *testing.T) {
	cfg := DefaultConfig()
	// The ranking key is the aggregate pool-adjusted score, not the
	// win-out probability.
	safe := pathFor([]Team{"AAA", "BBB"}, []float64{0.8, 0.8}, []float64{0.6, 0.6})
	contrarian := pathFor([]Team{"CCC", "DDD"}, []float64{0.7, 0.7}, []float64{0.7, 0.7})

	ranked := RankPaths([]*CandidatePath{safe, contrarian}, cfg)
	require.Len(t, ranked, 2)

	first, _ := ranked[0].FirstPick()
	assert.Equal(t, Team("CCC"), first.Team)
	assert.Greater(t, safe.WinOutProbability, contrarian.WinOutProbability,
		"the demoted path should still have the higher win-out probability")
}

func TestRankPaths_TruncatesToTopK(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TopK = 2

	paths := []*CandidatePath{
		pathFor([]Team{"AAA"}, []float64{0.7}, []float64{0.5}),
		pathFor([]Team{"BBB"}, []float64{0.7}, []float64{0.6}),
		pathFor([]Team{"CCC"}, []float64{0.7}, []float64{0.7}),
	}

	ranked := RankPaths(paths, cfg)
	require.Len(t, ranked, 2)
	first, _ := ranked[0].FirstPick()
	second, _ := ranked[1].FirstPick()
	assert.Equal(t, Team("CCC"), first.Team)
	assert.Equal(t, Team("BBB"), second.Team)
}

func TestRankPaths_TieBreaksByTeam(t *testing.T) {
	cfg := DefaultConfig()
	paths := []*CandidatePath{
		pathFor([]Team{"ZZZ"}, []float64{0.7}, []float64{0.5}),
		pathFor([]Team{"AAA"}, []float64{0.7}, []float64{0.5}),
	}

	ranked := RankPaths(paths, cfg)
	require.Len(t, ranked, 2)
	first, _ := ranked[0].FirstPick()
	assert.Equal(t, Team("AAA"), first.Team, "ties break by ascending team identifier")
}

func TestRankPaths_DedupesOnFirstPick(t *testing.T) {
	cfg := DefaultConfig()
	better := pathFor([]Team{"AAA", "BBB"}, []float64{0.8, 0.7}, []float64{0.7, 0.7})
	worse := pathFor([]Team{"AAA", "CCC"}, []float64{0.8, 0.6}, []float64{0.7, 0.5})

	ranked := RankPaths([]*CandidatePath{worse, better}, cfg)
	require.Len(t, ranked, 1)
	assert.Equal(t, better.AggregateScore, ranked[0].AggregateScore,
		"dedup must keep the higher-scoring path")
}

func TestRankPaths_FewerThanK(t *testing.T) {
	cfg := DefaultConfig()
	ranked := RankPaths([]*CandidatePath{pathFor([]Team{"AAA"}, []float64{0.7}, []float64{0.5})}, cfg)
	assert.Len(t, ranked, 1, "fewer than K paths in means fewer than K out, never an error")
}

func TestDedupeExact(t *testing.T) {
	a := pathFor([]Team{"AAA", "BBB"}, []float64{0.8, 0.7}, []float64{0.7, 0.7})
	b := pathFor([]Team{"AAA", "BBB"}, []float64{0.8, 0.7}, []float64{0.7, 0.7})
	c := pathFor([]Team{"AAA", "CCC"}, []float64{0.8, 0.7}, []float64{0.7, 0.7})

	out := DedupeExact([]*CandidatePath{a, b, c})
	require.Len(t, out, 2)
	assert.Same(t, a, out[0])
	assert.Same(t, c, out[1])
}

func TestCandidatePath_Hash(t *testing.T) {
	a := pathFor([]Team{"AAA", "BBB"}, []float64{0.8, 0.7}, []float64{0.7, 0.7})
	b := pathFor([]Team{"BBB", "AAA"}, []float64{0.8, 0.7}, []float64{0.7, 0.7})
	assert.NotEqual(t, a.Hash(), b.Hash(), "order matters in the identity hash")
}
