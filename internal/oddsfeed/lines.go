// Package oddsfeed assembles the optimizer's input table from market
// lines, rating projections, and crowd pick percentages.
package oddsfeed

import (
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gridironlab/survivor/internal/survivor"
)

// Line is one team's market quote for a single game.  Spread and
// moneyline are each optional; a feed row may carry either or both.
type Line struct {
	Team         survivor.Team
	Opponent     survivor.Team
	Week         int
	Spread       float64
	HasSpread    bool
	Moneyline    int
	HasMoneyline bool
}

// MakeLines fetches a CSV line feed.  The expected columns are
// week,team,opponent,spread,moneyline with a header row; blank spread or
// moneyline fields mean the market has not posted that quote.
func MakeLines(url string) ([]Line, error) {
	resp, err := http.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("line feed returned status %s", resp.Status)
	}

	reader := csv.NewReader(resp.Body)

	// first line contains the header information
	if _, err := reader.Read(); err != nil {
		return nil, err
	}

	var lines []Line
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(record) < 5 {
			return nil, fmt.Errorf("line feed record has %d fields, expected 5", len(record))
		}

		week, err := strconv.Atoi(record[0])
		if err != nil {
			return nil, fmt.Errorf("bad week %q in line feed: %v", record[0], err)
		}

		line := Line{
			Team:     survivor.Team(record[1]),
			Opponent: survivor.Team(record[2]),
			Week:     week,
		}
		if record[3] != "" {
			line.Spread, err = strconv.ParseFloat(record[3], 64)
			if err != nil {
				return nil, fmt.Errorf("bad spread %q in line feed: %v", record[3], err)
			}
			line.HasSpread = true
		}
		if record[4] != "" {
			line.Moneyline, err = strconv.Atoi(record[4])
			if err != nil {
				return nil, fmt.Errorf("bad moneyline %q in line feed: %v", record[4], err)
			}
			line.HasMoneyline = true
		}

		lines = append(lines, line)
	}

	return lines, nil
}
