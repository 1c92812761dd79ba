package survivor

import "sort"

// RankPaths deduplicates candidate paths on their first-week team, orders
// them by aggregate pool-adjusted score descending (so pool size decides
// which of several similarly-survivable paths comes first), and truncates
// to the configured K.  Ties break toward the ascending first-pick team
// identifier.  Valid input never fails; fewer than K paths in means fewer
// than K out.
func RankPaths(paths []*CandidatePath, cfg Config) []*CandidatePath {
	sorted := make([]*CandidatePath, len(paths))
	copy(sorted, paths)

	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].AggregateScore != sorted[j].AggregateScore {
			return sorted[i].AggregateScore > sorted[j].AggregateScore
		}
		fi, oki := sorted[i].FirstPick()
		fj, okj := sorted[j].FirstPick()
		if oki && okj {
			return fi.Team < fj.Team
		}
		return okj
	})

	seen := make(TeamSet)
	out := make([]*CandidatePath, 0, cfg.TopK)
	for _, path := range sorted {
		first, ok := path.FirstPick()
		if ok {
			if seen.Contains(first.Team) {
				continue
			}
			seen.Add(first.Team)
		}
		out = append(out, path)
		if len(out) == cfg.TopK {
			break
		}
	}

	return out
}

// DedupeExact removes paths whose exact (week, team) sequence repeats,
// keeping the first occurrence.
func DedupeExact(paths []*CandidatePath) []*CandidatePath {
	seen := make(map[uint64]struct{}, len(paths))
	out := make([]*CandidatePath, 0, len(paths))
	for _, path := range paths {
		h := path.Hash()
		if _, ok := seen[h]; ok {
			continue
		}
		seen[h] = struct{}{}
		out = append(out, path)
	}
	return out
}
