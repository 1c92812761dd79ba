package survivor

import "fmt"

// InvalidProbabilityError reports a win probability outside the open
// interval (0,1) before clamping was applied upstream.
type InvalidProbabilityError struct {
	Team  Team
	Week  int
	Value float64
}

func (e *InvalidProbabilityError) Error() string {
	return fmt.Sprintf("invalid win probability %g for team %s in week %d: must lie in (0,1)", e.Value, e.Team, e.Week)
}

// InfeasibleSlateError reports a week for which no path entry can be
// assigned at all.
type InfeasibleSlateError struct {
	Week   int
	Reason string
}

func (e *InfeasibleSlateError) Error() string {
	return fmt.Sprintf("week %d is infeasible: %s", e.Week, e.Reason)
}

// UnavailableTeamError reports a first-week pick that cannot be forced,
// either because the team was already used or because it has no game in
// the requested week.
type UnavailableTeamError struct {
	Team Team
	Week int
}

func (e *UnavailableTeamError) Error() string {
	return fmt.Sprintf("team %s is not available in week %d (already used or no game)", e.Team, e.Week)
}
