package survivor

import (
	"fmt"
	"math"
	"runtime"
	"sort"
	"sync"

	"gonum.org/v1/gonum/mat"
)

// Optimizer finds the pick paths that maximize the probability of
// surviving every remaining week, subject to each team being used at most
// once across the whole season.  One Optimizer holds only read-only
// inputs, so independent requests may run concurrently.
type Optimizer struct {
	table *Table
	used  TeamSet
	tier  PoolTier
	cfg   Config
}

// NewOptimizer validates the inputs eagerly and builds an optimizer.  The
// used-team set is treated as read-only ground truth.
func NewOptimizer(table *Table, used TeamSet, pool PoolContext, cfg Config) (*Optimizer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := table.Validate(); err != nil {
		return nil, err
	}
	if used == nil {
		used = make(TeamSet)
	}
	tier := pool.Tier(cfg)
	if _, ok := cfg.ProbabilityWeights[tier]; !ok {
		return nil, fmt.Errorf("unknown pool tier %q", tier)
	}
	return &Optimizer{
		table: table,
		used:  used,
		tier:  tier,
		cfg:   cfg,
	}, nil
}

// eligibleTeams returns the teams not yet used (and not excluded) that
// have at least one entry in the given week range, in ascending order.
func (o *Optimizer) eligibleTeams(fromWeek, toWeek int, exclude TeamSet) TeamList {
	out := make(TeamList, 0)
	for _, team := range o.table.Teams() {
		if o.used.Contains(team) || exclude.Contains(team) {
			continue
		}
		for week := fromWeek; week <= toWeek; week++ {
			if _, ok := o.table.Get(team, week); ok {
				out = append(out, team)
				break
			}
		}
	}
	sort.Sort(out)
	return out
}

// OptimizePath finds the optimal path from currentWeek through endWeek
// (the final table week when endWeek is zero).  A non-empty force pins
// that team as the currentWeek pick and optimizes the remainder, which is
// exactly optimal given the pinned first pick.  A currentWeek beyond the
// season yields an empty path: nothing left to optimize is a valid
// terminal state, not an error.
func (o *Optimizer) OptimizePath(currentWeek, endWeek int, force Team) (*CandidatePath, error) {
	if endWeek <= 0 || endWeek > o.table.NumWeeks() {
		endWeek = o.table.NumWeeks()
	}
	if currentWeek < 1 {
		return nil, fmt.Errorf("current week must be at least 1, got %d", currentWeek)
	}
	if currentWeek > endWeek {
		return newCandidatePath(nil, nil), nil
	}

	if force == "" {
		teams := o.eligibleTeams(currentWeek, endWeek, nil)
		return o.solveWeeks(currentWeek, endWeek, teams, nil)
	}

	entry, ok := o.table.Get(force, currentWeek)
	if !ok || o.used.Contains(force) {
		return nil, &UnavailableTeamError{Team: force, Week: currentWeek}
	}
	first := o.makePick(force, currentWeek, entry)

	teams := o.eligibleTeams(currentWeek+1, endWeek, NewTeamSet(force))
	return o.solveWeeks(currentWeek+1, endWeek, teams, []Pick{first})
}

// solveWeeks runs one balanced assignment over weeks fromWeek..toWeek and
// the given team columns, prepending any already-pinned picks.
func (o *Optimizer) solveWeeks(fromWeek, toWeek int, teams TeamList, pinned []Pick) (*CandidatePath, error) {
	nWeeks := toWeek - fromWeek + 1
	if nWeeks <= 0 {
		return newCandidatePath(pinned, nil), nil
	}
	if len(teams) == 0 {
		if len(pinned) == 0 {
			return nil, &InfeasibleSlateError{Week: fromWeek, Reason: "no eligible teams remain"}
		}
		// The pinned pick exhausted the pool: every later week is open.
		skipped := make([]int, 0, nWeeks)
		for week := fromWeek; week <= toWeek; week++ {
			skipped = append(skipped, week)
		}
		return newCandidatePath(append([]Pick(nil), pinned...), skipped), nil
	}

	// Pad with dummy columns when fewer teams than weeks remain, so every
	// week still receives an assignment.  A pool with fewer usable teams
	// than weeks is a likely-loss scenario, but it still resolves to a
	// path.
	nCols := len(teams)
	if nCols < nWeeks {
		nCols = nWeeks
	}

	cost := mat.NewDense(nWeeks, nCols, nil)
	for i := 0; i < nWeeks; i++ {
		week := fromWeek + i
		for j := 0; j < nCols; j++ {
			if j >= len(teams) {
				cost.Set(i, j, sentinelCost)
				continue
			}
			entry, ok := o.table.Get(teams[j], week)
			if !ok {
				cost.Set(i, j, sentinelCost)
				continue
			}
			p := ClampProbability(entry.WinProbability, o.cfg.Epsilon)
			cost.Set(i, j, -math.Log(p))
		}
	}

	assignment, _, err := solveAssignment(cost)
	if err != nil {
		return nil, err
	}

	picks := append([]Pick(nil), pinned...)
	var skipped []int
	for i, j := range assignment {
		week := fromWeek + i
		if j >= len(teams) || cost.At(i, j) >= sentinelCost {
			skipped = append(skipped, week)
			continue
		}
		entry, _ := o.table.Get(teams[j], week)
		picks = append(picks, o.makePick(teams[j], week, entry))
	}
	sort.Slice(picks, func(a, b int) bool { return picks[a].Week < picks[b].Week })

	return newCandidatePath(picks, skipped), nil
}

func (o *Optimizer) makePick(team Team, week int, entry Entry) Pick {
	p := ClampProbability(entry.WinProbability, o.cfg.Epsilon)
	return Pick{
		Week:           week,
		Team:           team,
		Opponent:       entry.Opponent,
		WinProbability: p,
		PickPercentage: entry.PickPercentage,
		AdjustedScore:  AdjustedScore(p, entry.PickPercentage, o.tier, o.cfg),
	}
}

// PickFailure records a first-week choice whose re-solve failed.
type PickFailure struct {
	Team Team
	Err  error
}

// Result is a ranked set of candidate paths plus any per-first-pick
// failures collected along the way.
type Result struct {
	Paths    []*CandidatePath
	Failures []PickFailure
}

// TopPicks evaluates every eligible team playing in currentWeek as a
// pinned first pick, re-solving the rest of the season for each, and
// returns the top-K paths ranked by aggregate pool-adjusted score.
// Re-solves fan out across a bounded worker pool; one failure is reported
// per first-week team and does not abort its siblings.
func (o *Optimizer) TopPicks(currentWeek int) (*Result, error) {
	if currentWeek < 1 {
		return nil, fmt.Errorf("current week must be at least 1, got %d", currentWeek)
	}
	if currentWeek > o.table.NumWeeks() {
		return &Result{}, nil
	}

	candidates := make(TeamList, 0)
	for _, team := range o.table.TeamsInWeek(currentWeek) {
		if !o.used.Contains(team) {
			candidates = append(candidates, team)
		}
	}
	if len(candidates) == 0 {
		return nil, &InfeasibleSlateError{Week: currentWeek, Reason: "no eligible team has a game"}
	}

	type forceResult struct {
		path *CandidatePath
		err  error
	}
	results := make([]forceResult, len(candidates))

	workers := o.cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > len(candidates) {
		workers = len(candidates)
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				path, err := o.OptimizePath(currentWeek, 0, candidates[idx])
				results[idx] = forceResult{path: path, err: err}
			}
		}()
	}
	for i := range candidates {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	// Join in first-week-team order to keep the output deterministic.
	res := &Result{}
	paths := make([]*CandidatePath, 0, len(candidates))
	for i, team := range candidates {
		if results[i].err != nil {
			res.Failures = append(res.Failures, PickFailure{Team: team, Err: results[i].err})
			continue
		}
		paths = append(paths, results[i].path)
	}

	res.Paths = RankPaths(paths, o.cfg)
	return res, nil
}
