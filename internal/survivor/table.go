package survivor

import (
	"fmt"
	"io"
	"io/ioutil"
	"sort"
	"strings"

	yaml "gopkg.in/yaml.v2"
)

// Entry is one (team, week) cell of the assembled probability table.
type Entry struct {
	Opponent       Team
	WinProbability float64
	// PickPercentage is the fraction of the pool expected to pick this
	// team this week.  Nil when the crowd split is unknown.
	PickPercentage *float64
}

// Table maps every (team, week) with a scheduled game to its win
// probability and crowd pick percentage.  Assembly of the table (merging
// live odds with projections) happens upstream; the table itself is plain
// data.
type Table struct {
	numWeeks int
	entries  map[Team]map[int]Entry
}

// NewTable creates an empty table covering 1-based weeks 1..numWeeks.
func NewTable(numWeeks int) *Table {
	return &Table{
		numWeeks: numWeeks,
		entries:  make(map[Team]map[int]Entry),
	}
}

// NumWeeks returns the final week number covered by the table.
func (t *Table) NumWeeks() int {
	return t.numWeeks
}

// Set records the entry for a team and week.
func (t *Table) Set(team Team, week int, e Entry) {
	weeks, ok := t.entries[team]
	if !ok {
		weeks = make(map[int]Entry)
		t.entries[team] = weeks
	}
	weeks[week] = e
}

// Get returns the entry for a team and week, if the team plays that week.
func (t *Table) Get(team Team, week int) (Entry, bool) {
	e, ok := t.entries[team][week]
	return e, ok
}

// Teams returns every team in the table, in ascending order.
func (t *Table) Teams() TeamList {
	out := make(TeamList, 0, len(t.entries))
	for team := range t.entries {
		out = append(out, team)
	}
	sort.Sort(out)
	return out
}

// TeamsInWeek returns the teams with an entry in the given week, in
// ascending order.
func (t *Table) TeamsInWeek(week int) TeamList {
	out := make(TeamList, 0, len(t.entries))
	for team, weeks := range t.entries {
		if _, ok := weeks[week]; ok {
			out = append(out, team)
		}
	}
	sort.Sort(out)
	return out
}

// Validate checks every entry before optimization.  Win probabilities must
// lie strictly inside (0,1) and pick percentages inside [0,1]; the
// optimizer refuses out-of-range data rather than silently producing a
// wrong path.
func (t *Table) Validate() error {
	for _, team := range t.Teams() {
		weeks := t.entries[team]
		for week, e := range weeks {
			if week < 1 || week > t.numWeeks {
				return fmt.Errorf("entry for team %s in week %d lies outside the season (1..%d)", team, week, t.numWeeks)
			}
			if e.WinProbability <= 0 || e.WinProbability >= 1 {
				return &InvalidProbabilityError{Team: team, Week: week, Value: e.WinProbability}
			}
			if e.PickPercentage != nil && (*e.PickPercentage < 0 || *e.PickPercentage > 1) {
				return fmt.Errorf("invalid pick percentage %g for team %s in week %d: must lie in [0,1]", *e.PickPercentage, team, week)
			}
		}
	}
	return nil
}

type tableYAML struct {
	Weeks   int         `yaml:"weeks"`
	Entries []entryYAML `yaml:"entries"`
}

type entryYAML struct {
	Team           Team     `yaml:"team"`
	Week           int      `yaml:"week"`
	Opponent       Team     `yaml:"opponent,omitempty"`
	WinProbability float64  `yaml:"win_probability"`
	PickPercentage *float64 `yaml:"pick_percentage,omitempty"`
}

// MakeTable parses a probability table YAML file.
func MakeTable(fileName string) (*Table, error) {
	tableYaml, err := ioutil.ReadFile(fileName)
	if err != nil {
		return nil, err
	}

	var doc tableYAML
	err = yaml.Unmarshal(tableYaml, &doc)
	if err != nil {
		return nil, err
	}
	if doc.Weeks <= 0 {
		return nil, fmt.Errorf("table must declare a positive number of weeks, got %d", doc.Weeks)
	}

	t := NewTable(doc.Weeks)
	for _, e := range doc.Entries {
		t.Set(e.Team, e.Week, Entry{
			Opponent:       e.Opponent,
			WinProbability: e.WinProbability,
			PickPercentage: e.PickPercentage,
		})
	}

	return t, nil
}

// WriteYAML serializes the table in the format MakeTable reads.
func (t *Table) WriteYAML(w io.Writer) error {
	doc := tableYAML{Weeks: t.numWeeks}
	for _, team := range t.Teams() {
		weeks := t.entries[team]
		weekNums := make([]int, 0, len(weeks))
		for week := range weeks {
			weekNums = append(weekNums, week)
		}
		sort.Ints(weekNums)
		for _, week := range weekNums {
			e := weeks[week]
			doc.Entries = append(doc.Entries, entryYAML{
				Team:           team,
				Week:           week,
				Opponent:       e.Opponent,
				WinProbability: e.WinProbability,
				PickPercentage: e.PickPercentage,
			})
		}
	}

	out, err := yaml.Marshal(doc)
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}

func (t *Table) String() string {
	teams := t.Teams()

	var buffer strings.Builder

	buffer.WriteString("     ")
	for week := 1; week <= t.numWeeks; week++ {
		buffer.WriteString(fmt.Sprintf(" %-8d ", week))
	}
	buffer.WriteString("\n")
	for _, team := range teams {
		buffer.WriteString(fmt.Sprintf("%-4s ", team))
		for week := 1; week <= t.numWeeks; week++ {
			e, ok := t.entries[team][week]
			if !ok {
				buffer.WriteString("   ----   ")
				continue
			}
			buffer.WriteString(fmt.Sprintf("  %5.3f   ", e.WinProbability))
		}
		buffer.WriteString("\n")
	}

	return buffer.String()
}
