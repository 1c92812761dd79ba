package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/gridironlab/survivor/internal/survivor"
)

var configFile = flag.String("config", "", "YAML `file` of tier thresholds, weights, and other tunables (defaults apply when empty)")
var tableFile = flag.String("table", "table.yaml", "YAML `file` containing the assembled win-probability table")
var usedFile = flag.String("used", "", "YAML `file` listing teams already picked in completed weeks")
var weekNumber = flag.Int("week", 1, "current week `number` (starting at 1)")
var poolSize = flag.Int("pool", 1, "`number` of entries in the pool")
var tierOverride = flag.String("tier", "", "force a pool `tier` (small, medium, large, very_large) instead of deriving it")
var nTop = flag.Int("n", 0, "`number` of top paths to report (overrides top_k from the config)")
var verbose = flag.Bool("v", false, "enable debug logging")

func main() {
	flag.Parse()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if *verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	cfg, err := survivor.MakeConfig(*configFile)
	if err != nil {
		log.WithError(err).Fatal("failed to load configuration")
	}
	if *nTop > 0 {
		cfg.TopK = *nTop
	}

	table, err := survivor.MakeTable(*tableFile)
	if err != nil {
		log.WithError(err).WithField("file", *tableFile).Fatal("failed to load probability table")
	}
	log.WithFields(logrus.Fields{
		"teams": len(table.Teams()),
		"weeks": table.NumWeeks(),
	}).Info("loaded probability table")
	log.Debugf("table:\n%s", table)

	used := make(survivor.TeamSet)
	if *usedFile != "" {
		used, err = survivor.MakeUsedTeams(*usedFile)
		if err != nil {
			log.WithError(err).WithField("file", *usedFile).Fatal("failed to load used teams")
		}
	}
	log.WithField("used", used.List()).Info("loaded used teams")

	pool := survivor.PoolContext{Size: *poolSize, TierOverride: survivor.PoolTier(*tierOverride)}
	log.WithFields(logrus.Fields{
		"size": pool.Size,
		"tier": pool.Tier(cfg),
	}).Info("pool context")

	opt, err := survivor.NewOptimizer(table, used, pool, cfg)
	if err != nil {
		log.WithError(err).Fatal("failed to build optimizer")
	}

	result, err := opt.TopPicks(*weekNumber)
	if err != nil {
		log.WithError(err).Fatal("optimization failed")
	}

	for _, failure := range result.Failures {
		log.WithError(failure.Err).WithField("team", failure.Team).Warn("first pick could not be evaluated")
	}

	if len(result.Paths) == 0 {
		fmt.Printf("No picks remain for week %d: season complete.\n", *weekNumber)
		os.Exit(0)
	}

	fmt.Printf("Top %d picks for week %d (%s pool of %d):\n", len(result.Paths), *weekNumber, pool.Tier(cfg), pool.Size)
	for i, path := range result.Paths {
		first, _ := path.FirstPick()
		fmt.Printf("\n#%d %s\n%s", i+1, first.Team, path)
	}
}
