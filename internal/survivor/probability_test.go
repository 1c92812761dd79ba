package survivor

import (
	"math"
	"testing"
)

func TestSpreadToProbability_Symmetry(t *testing.T) {
	cfg := DefaultConfig()
	spreads := []float64{0, 1.5, 3, 6.5, 10, 14, 21}
	for _, s := range spreads {
		p1 := SpreadToProbability(s, cfg)
		p2 := SpreadToProbability(-s, cfg)
		if math.Abs(p1+p2-1) > 1e-9 {
			t.Errorf("spread %g: probabilities %g and %g do not sum to 1", s, p1, p2)
		}
	}
}

func TestSpreadToProbability_Monotone(t *testing.T) {
	cfg := DefaultConfig()
	prev := 1.0
	for s := -30.0; s <= 30.0; s += 0.5 {
		p := SpreadToProbability(s, cfg)
		if p > prev {
			t.Fatalf("probability increased from %g to %g at spread %g", prev, p, s)
		}
		prev = p
	}
}

func TestSpreadToProbability_Clamp(t *testing.T) {
	cfg := DefaultConfig()
	if p := SpreadToProbability(-1000, cfg); p != 1-cfg.Epsilon {
		t.Errorf("huge favorite spread should clamp to %g, got %g", 1-cfg.Epsilon, p)
	}
	if p := SpreadToProbability(1000, cfg); p != cfg.Epsilon {
		t.Errorf("huge underdog spread should clamp to %g, got %g", cfg.Epsilon, p)
	}
}

func TestMoneylineToProbability(t *testing.T) {
	cfg := DefaultConfig()
	tests := []struct {
		name      string
		moneyline int
		want      float64
	}{
		{"even favorite", -100, 0.5},
		{"even underdog", 100, 0.5},
		{"-150 favorite", -150, 0.6},
		{"-200 favorite", -200, 2.0 / 3.0},
		{"+200 underdog", 200, 1.0 / 3.0},
		{"+300 underdog", 300, 0.25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MoneylineToProbability(tt.moneyline, cfg)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("moneyline %d: got %g, want %g", tt.moneyline, got, tt.want)
			}
		})
	}
}

func TestMoneylineToProbability_FavoriteOrder(t *testing.T) {
	cfg := DefaultConfig()
	// A -200 favorite wins more often than a -110 favorite.
	if MoneylineToProbability(-200, cfg) <= MoneylineToProbability(-110, cfg) {
		t.Error("-200 favorite should have higher probability than -110 favorite")
	}
	if MoneylineToProbability(-110, cfg) <= MoneylineToProbability(120, cfg) {
		t.Error("favorite should have higher probability than underdog")
	}
}

func TestRatingModel_Predict(t *testing.T) {
	cfg := DefaultConfig()
	ratings := map[Team]float64{"AAA": 10, "BBB": 0}
	m := NewRatingModel(ratings, 13, 2.5)

	pHome, marginHome := m.Predict(Matchup{Team: "AAA", Opponent: "BBB", Home: true}, cfg)
	if marginHome != 12.5 {
		t.Errorf("home margin: got %g, want 12.5", marginHome)
	}
	if pHome <= 0.5 {
		t.Errorf("stronger home team should be favored, got %g", pHome)
	}

	pAway, marginAway := m.Predict(Matchup{Team: "AAA", Opponent: "BBB", Home: false}, cfg)
	if marginAway != 7.5 {
		t.Errorf("away margin: got %g, want 7.5", marginAway)
	}
	if pAway >= pHome {
		t.Errorf("playing away should reduce the probability: %g >= %g", pAway, pHome)
	}

	// Mirror matchup probabilities sum to 1 on a neutral margin model.
	pBBB, _ := m.Predict(Matchup{Team: "BBB", Opponent: "AAA", Home: false}, cfg)
	if math.Abs(pHome+pBBB-1) > 1e-9 {
		t.Errorf("mirror probabilities should sum to 1, got %g + %g", pHome, pBBB)
	}
}
