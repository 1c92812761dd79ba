package survivor

// PoolContext describes the pool a pick will be played in.  TierOverride
// forces a tier instead of deriving one from the size; it exists for
// testing and edge cases.
type PoolContext struct {
	Size         int
	TierOverride PoolTier
}

// Tier resolves the pool tier, honoring the override when present.
func (pc PoolContext) Tier(cfg Config) PoolTier {
	if pc.TierOverride != "" {
		return pc.TierOverride
	}
	return cfg.Tier(pc.Size)
}

// AdjustedScore combines a raw win probability with a crowd pick
// percentage into a single comparable score.  Raw probability alone is
// the right metric only in a one-entrant pool; as the pool grows,
// surviving with a team everyone else also picked buys no
// differentiation, so contrarian value weighs in more heavily.  A nil
// pickPct means the crowd split is unknown and degrades to the
// configured neutral default.
func AdjustedScore(p float64, pickPct *float64, tier PoolTier, cfg Config) float64 {
	pct := cfg.NeutralPickPct
	if pickPct != nil {
		pct = *pickPct
	}
	return cfg.ProbabilityWeights[tier]*p + cfg.ContrarianWeights[tier]*(1-pct)
}
