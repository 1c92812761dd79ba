package survivor

import (
	"io/ioutil"
	"sort"

	yaml "gopkg.in/yaml.v2"
)

// Team identifies a league franchise.
type Team string

// TeamList implements the sort.Interface interface and represents a list of Teams.
type TeamList []Team

// Len calculates the length of the TeamList (implements sort.Interface interface)
func (t TeamList) Len() int {
	return len(t)
}

// Less reports whether (implements sort.Interface interface)
func (t TeamList) Less(i, j int) bool {
	return t[i] < t[j]
}

// Swap swaps the elements with indexes i and j (implements sort.Interface interface)
func (t TeamList) Swap(i, j int) {
	t[i], t[j] = t[j], t[i]
}

// Clone clones the list.
func (t TeamList) Clone() TeamList {
	out := make(TeamList, t.Len())
	copy(out, t)
	return out
}

// TeamSet is an unordered collection of unique teams.
type TeamSet map[Team]struct{}

// NewTeamSet builds a TeamSet from the given teams.
func NewTeamSet(teams ...Team) TeamSet {
	s := make(TeamSet, len(teams))
	for _, t := range teams {
		s[t] = struct{}{}
	}
	return s
}

// Contains reports whether the given team is in the set.
func (s TeamSet) Contains(t Team) bool {
	_, ok := s[t]
	return ok
}

// Add adds a team to the set.
func (s TeamSet) Add(t Team) {
	s[t] = struct{}{}
}

// List returns the members of the set in ascending order.
func (s TeamSet) List() TeamList {
	out := make(TeamList, 0, len(s))
	for t := range s {
		out = append(out, t)
	}
	sort.Sort(out)
	return out
}

// MakeUsedTeams parses a YAML file containing a list of team identifiers
// already picked in completed weeks.
func MakeUsedTeams(fileName string) (TeamSet, error) {
	usedYaml, err := ioutil.ReadFile(fileName)
	if err != nil {
		return nil, err
	}

	var used []Team
	err = yaml.Unmarshal(usedYaml, &used)
	if err != nil {
		return nil, err
	}

	return NewTeamSet(used...), nil
}
