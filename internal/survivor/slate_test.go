package survivor

import (
	"io/ioutil"
	"path/filepath"
	"testing"
)

func writeTempYAML(t *testing.T, doc string) string {
	t.Helper()
	file := filepath.Join(t.TempDir(), "schedule.yaml")
	if err := ioutil.WriteFile(file, []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}
	return file
}

func TestMakeSeason(t *testing.T) {
	doc := `teams:
  AAA: [BBB, "@CCC", BYE]
  BBB: ["@AAA", BYE, CCC]
  CCC: [BYE, AAA, "@BBB"]
divisions:
  AAA: North
  BBB: North
  CCC: South
`
	season, err := MakeSeason(writeTempYAML(t, doc))
	if err != nil {
		t.Fatal(err)
	}

	if season.NumWeeks() != 3 {
		t.Fatalf("weeks: got %d, want 3", season.NumWeeks())
	}

	slate, ok := season.Week(1)
	if !ok {
		t.Fatal("week 1 missing")
	}
	m, ok := slate.Matchup("AAA")
	if !ok || m.Opponent != "BBB" || !m.Home {
		t.Errorf("AAA week 1: got %+v", m)
	}
	m, ok = slate.Matchup("BBB")
	if !ok || m.Opponent != "AAA" || m.Home {
		t.Errorf("BBB week 1: got %+v", m)
	}
	if _, ok := slate.Matchup("CCC"); ok {
		t.Error("CCC is on bye in week 1")
	}

	if got := slate.Teams(); len(got) != 2 || got[0] != "AAA" || got[1] != "BBB" {
		t.Errorf("week 1 teams: got %v", got)
	}

	if season.Division("CCC") != "South" {
		t.Errorf("division: got %q", season.Division("CCC"))
	}
}

func TestMakeSeason_InconsistentWeeks(t *testing.T) {
	doc := `teams:
  AAA: [BBB, BYE]
  BBB: ["@AAA"]
`
	if _, err := MakeSeason(writeTempYAML(t, doc)); err == nil {
		t.Error("expected an error for ragged schedules")
	}
}

func TestBuildSeason_InconsistentMatchups(t *testing.T) {
	// AAA says it plays BBB, but BBB says it plays CCC.
	teams := map[Team][]string{
		"AAA": {"BBB"},
		"BBB": {"CCC"},
		"CCC": {"BBB"},
	}
	if _, err := BuildSeason(teams, nil); err == nil {
		t.Error("expected an error for inconsistent matchups")
	}
}
