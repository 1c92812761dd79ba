package survivor

import (
	"math"

	"github.com/atgjack/prob"
)

// SpreadToProbability converts a team's own point spread (negative means
// the team is favored) into a win probability.  The logistic form and its
// scale constant are an empirical calibration, not a statistical law.
func SpreadToProbability(spread float64, cfg Config) float64 {
	p := 1 / (1 + math.Pow(10, spread/cfg.SpreadScale))
	return ClampProbability(p, cfg.Epsilon)
}

// MoneylineToProbability converts an American-odds moneyline into an
// implied win probability.
func MoneylineToProbability(moneyline int, cfg Config) float64 {
	m := float64(moneyline)
	var p float64
	if moneyline < 0 {
		p = -m / (-m + 100)
	} else {
		p = 100 / (m + 100)
	}
	return ClampProbability(p, cfg.Epsilon)
}

// ClampProbability restricts a probability to [eps, 1-eps] so that a
// -log(p) cost stays finite downstream.
func ClampProbability(p, eps float64) float64 {
	if p < eps {
		return eps
	}
	if p > 1-eps {
		return 1 - eps
	}
	return p
}

// RatingModel projects win probabilities for matchups with no posted
// market line, using a normal distribution over the rating difference.
type RatingModel struct {
	dist     prob.Normal
	homeBias float64
	ratings  map[Team]float64
}

// NewRatingModel makes a model from per-team ratings, the standard
// deviation of the rating system's errors, and its home-field bias in
// points.
func NewRatingModel(ratings map[Team]float64, stdDev, homeBias float64) *RatingModel {
	return &RatingModel{
		dist:     prob.Normal{Mu: 0, Sigma: stdDev},
		homeBias: homeBias,
		ratings:  ratings,
	}
}

// Predict returns the win probability and expected margin of victory for
// the matchup's team.  A positive margin favors the team.
func (m *RatingModel) Predict(matchup Matchup, cfg Config) (p float64, margin float64) {
	margin = m.ratings[matchup.Team] - m.ratings[matchup.Opponent]
	if matchup.Home {
		margin += m.homeBias
	} else {
		margin -= m.homeBias
	}
	p = ClampProbability(m.dist.Cdf(margin), cfg.Epsilon)
	return p, margin
}

// Rating returns the model's rating for a team, and whether it has one.
func (m *RatingModel) Rating(t Team) (float64, bool) {
	r, ok := m.ratings[t]
	return r, ok
}
