package survivor

import (
	"fmt"
	"io/ioutil"

	yaml "gopkg.in/yaml.v2"
)

// PoolTier is a pool-size category controlling the probability-vs-contrarian
// weighting of the adjusted score.
type PoolTier string

const (
	TierSmall     PoolTier = "small"
	TierMedium    PoolTier = "medium"
	TierLarge     PoolTier = "large"
	TierVeryLarge PoolTier = "very_large"
)

// Tiers lists every pool tier in escalating size order.
var Tiers = []PoolTier{TierSmall, TierMedium, TierLarge, TierVeryLarge}

// Config collects every tunable of the scorer and optimizer.  It is passed
// explicitly into the components that need it; there is no process-wide
// state, so concurrent requests with different pool contexts cannot
// interfere.
type Config struct {
	// Inclusive upper pool sizes for the small, medium, and large tiers.
	// Anything above LargeMax is very_large.
	SmallMax  int `yaml:"small_max"`
	MediumMax int `yaml:"medium_max"`
	LargeMax  int `yaml:"large_max"`

	// Per-tier weights on raw win probability and contrarian value.  The
	// pair must sum to 1 for each tier, with the probability weight
	// strictly decreasing as the tier escalates.
	ProbabilityWeights map[PoolTier]float64 `yaml:"w_p_by_tier"`
	ContrarianWeights  map[PoolTier]float64 `yaml:"w_c_by_tier"`

	// NeutralPickPct substitutes for a missing crowd pick percentage.
	NeutralPickPct float64 `yaml:"neutral_pick_pct"`

	// TopK is the number of ranked candidate paths to return.
	TopK int `yaml:"top_k"`

	// Epsilon clamps probabilities away from 0 and 1 so -log(p) costs
	// stay finite.
	Epsilon float64 `yaml:"epsilon"`

	// SpreadScale is the calibration constant of the logistic
	// spread-to-probability conversion.  Empirical, not a law.
	SpreadScale float64 `yaml:"spread_scale"`

	// Workers bounds the fan-out when evaluating alternative first picks.
	// Zero means one worker per CPU.
	Workers int `yaml:"workers"`
}

// DefaultConfig returns the stock configuration.
func DefaultConfig() Config {
	return Config{
		SmallMax:  9,
		MediumMax: 49,
		LargeMax:  199,
		ProbabilityWeights: map[PoolTier]float64{
			TierSmall:     0.95,
			TierMedium:    0.85,
			TierLarge:     0.70,
			TierVeryLarge: 0.55,
		},
		ContrarianWeights: map[PoolTier]float64{
			TierSmall:     0.05,
			TierMedium:    0.15,
			TierLarge:     0.30,
			TierVeryLarge: 0.45,
		},
		NeutralPickPct: 0.5,
		TopK:           5,
		Epsilon:        1e-4,
		SpreadScale:    14,
	}
}

// MakeConfig parses a YAML configuration file, overlaying it on the
// defaults.  An empty file name returns the defaults unchanged.
func MakeConfig(fileName string) (Config, error) {
	cfg := DefaultConfig()
	if fileName == "" {
		return cfg, cfg.Validate()
	}

	cfgYaml, err := ioutil.ReadFile(fileName)
	if err != nil {
		return cfg, err
	}

	err = yaml.Unmarshal(cfgYaml, &cfg)
	if err != nil {
		return cfg, err
	}

	return cfg, cfg.Validate()
}

// Validate checks the internal consistency of the configuration.
func (c Config) Validate() error {
	if c.SmallMax <= 0 || c.MediumMax <= c.SmallMax || c.LargeMax <= c.MediumMax {
		return fmt.Errorf("tier maxima must be increasing, got %d/%d/%d", c.SmallMax, c.MediumMax, c.LargeMax)
	}
	if c.Epsilon <= 0 || c.Epsilon >= 0.5 {
		return fmt.Errorf("epsilon must lie in (0,0.5), got %g", c.Epsilon)
	}
	if c.TopK <= 0 {
		return fmt.Errorf("top_k must be positive, got %d", c.TopK)
	}
	if c.NeutralPickPct < 0 || c.NeutralPickPct > 1 {
		return fmt.Errorf("neutral_pick_pct must lie in [0,1], got %g", c.NeutralPickPct)
	}
	if c.SpreadScale <= 0 {
		return fmt.Errorf("spread_scale must be positive, got %g", c.SpreadScale)
	}

	const tol = 1e-9
	prev := 2.0
	for _, tier := range Tiers {
		wp, ok := c.ProbabilityWeights[tier]
		if !ok {
			return fmt.Errorf("missing probability weight for tier %s", tier)
		}
		wc, ok := c.ContrarianWeights[tier]
		if !ok {
			return fmt.Errorf("missing contrarian weight for tier %s", tier)
		}
		if wp+wc < 1-tol || wp+wc > 1+tol {
			return fmt.Errorf("weights for tier %s must sum to 1, got %g", tier, wp+wc)
		}
		if wp >= prev {
			return fmt.Errorf("probability weight must strictly decrease with tier, but %s has %g", tier, wp)
		}
		prev = wp
	}

	return nil
}

// Tier derives the pool tier for a given pool size.
func (c Config) Tier(poolSize int) PoolTier {
	switch {
	case poolSize <= c.SmallMax:
		return TierSmall
	case poolSize <= c.MediumMax:
		return TierMedium
	case poolSize <= c.LargeMax:
		return TierLarge
	default:
		return TierVeryLarge
	}
}
