package survivor

import (
	"fmt"
	"io/ioutil"
	"sort"
	"strings"

	yaml "gopkg.in/yaml.v2"
)

// Matchup is one team's game in a given week.
type Matchup struct {
	Team     Team
	Opponent Team
	Home     bool
}

// WeekSlate is the set of matchups scheduled for one week.  Teams on bye
// are simply absent.
type WeekSlate struct {
	Week  int
	Games map[Team]Matchup
}

// Matchup returns the given team's game this week, if it has one.
func (s WeekSlate) Matchup(t Team) (Matchup, bool) {
	m, ok := s.Games[t]
	return m, ok
}

// Teams returns the teams with a game this week, in ascending order.
func (s WeekSlate) Teams() TeamList {
	out := make(TeamList, 0, len(s.Games))
	for t := range s.Games {
		out = append(out, t)
	}
	sort.Sort(out)
	return out
}

// Season is the full remaining-season schedule, one slate per week.
// Division membership is informational only and never consulted by the
// optimizer.
type Season struct {
	weeks     []WeekSlate
	divisions map[Team]string
}

// NumWeeks returns the number of weeks in the season.
func (s *Season) NumWeeks() int {
	return len(s.weeks)
}

// Week returns the slate for a 1-based week number.
func (s *Season) Week(w int) (WeekSlate, bool) {
	if w < 1 || w > len(s.weeks) {
		return WeekSlate{}, false
	}
	return s.weeks[w-1], true
}

// Division returns the team's division, or the empty string if unknown.
func (s *Season) Division(t Team) string {
	return s.divisions[t]
}

// TeamList generates a sorted list of every team appearing in the season.
func (s *Season) TeamList() TeamList {
	set := make(TeamSet)
	for _, week := range s.weeks {
		for t := range week.Games {
			set.Add(t)
		}
	}
	return set.List()
}

type seasonYAML struct {
	Teams     map[Team][]string `yaml:"teams"`
	Divisions map[Team]string   `yaml:"divisions"`
}

// MakeSeason parses a schedule YAML file.  Each team maps to an ordered
// list of opponents, one per week: a bare identifier for a home game, an
// "@" prefix for an away game, and "BYE" (or an empty string) for a bye.
func MakeSeason(fileName string) (*Season, error) {
	schedYaml, err := ioutil.ReadFile(fileName)
	if err != nil {
		return nil, err
	}

	var doc seasonYAML
	err = yaml.Unmarshal(schedYaml, &doc)
	if err != nil {
		return nil, err
	}

	return BuildSeason(doc.Teams, doc.Divisions)
}

// BuildSeason assembles a Season from per-team opponent lists in the same
// notation MakeSeason reads from YAML.
func BuildSeason(teams map[Team][]string, divisions map[Team]string) (*Season, error) {
	nWeeks := 0
	for team, opponents := range teams {
		if nWeeks != 0 && len(opponents) != nWeeks {
			return nil, fmt.Errorf("schedule for team %s has %d weeks, expected %d", team, len(opponents), nWeeks)
		}
		nWeeks = len(opponents)
	}

	weeks := make([]WeekSlate, nWeeks)
	for w := range weeks {
		weeks[w] = WeekSlate{Week: w + 1, Games: make(map[Team]Matchup)}
	}

	for team, opponents := range teams {
		for w, locTeam := range opponents {
			home, opponent := splitLocTeam(locTeam)
			if opponent == "" {
				continue // bye
			}
			weeks[w].Games[team] = Matchup{Team: team, Opponent: opponent, Home: home}
		}
	}

	// Within one week each team appears in at most one matchup.
	for _, slate := range weeks {
		for team, m := range slate.Games {
			if other, ok := slate.Games[m.Opponent]; ok && other.Opponent != team {
				return nil, fmt.Errorf("week %d schedule is inconsistent: %s plays %s but %s plays %s", slate.Week, team, m.Opponent, m.Opponent, other.Opponent)
			}
		}
	}

	return &Season{weeks: weeks, divisions: divisions}, nil
}

func splitLocTeam(locTeam string) (home bool, opponent Team) {
	if locTeam == "BYE" || locTeam == "" {
		return false, ""
	}
	if strings.HasPrefix(locTeam, "@") {
		return false, Team(locTeam[1:])
	}
	return true, Team(locTeam)
}

func (s *Season) String() string {
	tl := s.TeamList()
	var b strings.Builder

	b.WriteString("      ")
	for week := 1; week <= s.NumWeeks(); week++ {
		b.WriteString(fmt.Sprintf("%-5d ", week))
	}
	b.WriteString("\n")

	for _, team := range tl {
		b.WriteString(fmt.Sprintf("%4s: ", team))
		for _, slate := range s.weeks {
			m, ok := slate.Games[team]
			if !ok {
				b.WriteString("      ")
				continue
			}
			if m.Home {
				b.WriteString(fmt.Sprintf(" %-4s ", m.Opponent))
			} else {
				b.WriteString(fmt.Sprintf("@%-4s ", m.Opponent))
			}
		}
		b.WriteString("\n")
	}

	return b.String()
}
