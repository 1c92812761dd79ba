package oddsfeed

import (
	"github.com/gridironlab/survivor/internal/survivor"
)

// PickPercentages maps team -> week -> crowd pick percentage in [0,1].
type PickPercentages map[survivor.Team]map[int]float64

// BuildTable merges market lines, rating projections, and crowd pick
// percentages into the single (team, week) table the optimizer consumes.
// A posted line beats the rating projection wherever both exist (in
// practice books only quote the current week, so lines decide the current
// week and the model fills the future).  Moneylines are preferred over
// spreads when a line carries both.  Matchups with neither a line nor a
// rated opponent get no entry; the optimizer treats them as
// sentinel-cost cells.
func BuildTable(season *survivor.Season, lines []Line, model *survivor.RatingModel, pickPcts PickPercentages, cfg survivor.Config) (*survivor.Table, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	byTeamWeek := make(map[survivor.Team]map[int]Line, len(lines))
	for _, line := range lines {
		weeks, ok := byTeamWeek[line.Team]
		if !ok {
			weeks = make(map[int]Line)
			byTeamWeek[line.Team] = weeks
		}
		weeks[line.Week] = line
	}

	table := survivor.NewTable(season.NumWeeks())
	for week := 1; week <= season.NumWeeks(); week++ {
		slate, _ := season.Week(week)
		for _, team := range slate.Teams() {
			matchup, _ := slate.Matchup(team)

			p, ok := probabilityFor(byTeamWeek[team][week], matchup, model, cfg)
			if !ok {
				continue
			}

			entry := survivor.Entry{Opponent: matchup.Opponent, WinProbability: p}
			if pct, ok := pickPcts[team][week]; ok {
				pctCopy := pct
				entry.PickPercentage = &pctCopy
			}
			table.Set(team, week, entry)
		}
	}

	return table, nil
}

func probabilityFor(line Line, matchup survivor.Matchup, model *survivor.RatingModel, cfg survivor.Config) (float64, bool) {
	switch {
	case line.HasMoneyline:
		return survivor.MoneylineToProbability(line.Moneyline, cfg), true
	case line.HasSpread:
		return survivor.SpreadToProbability(line.Spread, cfg), true
	case model != nil:
		if _, ok := model.Rating(matchup.Team); !ok {
			return 0, false
		}
		if _, ok := model.Rating(matchup.Opponent); !ok {
			return 0, false
		}
		p, _ := model.Predict(matchup, cfg)
		return p, true
	default:
		return 0, false
	}
}
