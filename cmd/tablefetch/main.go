// Command tablefetch assembles the optimizer's probability table from
// season data stored in Firestore, optionally overlaying a live CSV line
// feed, and writes it as YAML for cmd/survivor to consume.
package main

import (
	"context"
	"flag"
	"os"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go"
	"github.com/sirupsen/logrus"
	"google.golang.org/api/iterator"

	"github.com/gridironlab/survivor/internal/oddsfeed"
	"github.com/gridironlab/survivor/internal/survivor"
)

var projectID = flag.String("project", "", "Google Cloud `project` to use")
var linesURL = flag.String("lines", "", "`URL` of a CSV line feed to overlay on the rating projections")
var configFile = flag.String("config", "", "YAML `file` of optimizer tunables (defaults apply when empty)")
var outFile = flag.String("out", "", "output `file` for the table YAML (stdout when empty)")

var log = logrus.New()

// TeamSchedule is one team's schedule document under a schedules doc.
type TeamSchedule struct {
	Team      string   `firestore:"team"`
	Opponents []string `firestore:"opponents"`
	Division  string   `firestore:"division"`
}

// TeamRating is one team's rating document under a ratings doc.
type TeamRating struct {
	Team   string  `firestore:"team"`
	Rating float64 `firestore:"rating"`
}

// RatingMeta describes the rating system's calibration for the season.
type RatingMeta struct {
	StandardDeviation float64 `firestore:"std_dev"`
	HomeBias          float64 `firestore:"home_bias"`
}

// PickPercentage is one crowd pick-percentage document.
type PickPercentage struct {
	Team       string  `firestore:"team"`
	Week       int     `firestore:"week"`
	Percentage float64 `firestore:"percentage"`
}

func check(err error, msg string) {
	if err != nil {
		log.WithError(err).Fatal(msg)
	}
}

func main() {
	ctx := context.Background()
	flag.Parse()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := survivor.MakeConfig(*configFile)
	check(err, "failed to load configuration")

	conf := &firebase.Config{ProjectID: *projectID}
	app, err := firebase.NewApp(ctx, conf)
	check(err, "failed to initialize firebase app")

	fs, err := app.Firestore(ctx)
	check(err, "failed to connect to firestore")
	defer fs.Close()

	// Most recent season drives everything else.
	iter := fs.Collection("seasons").OrderBy("start", firestore.Desc).Limit(1).Documents(ctx)
	seasonDoc, err := iter.Next()
	check(err, "failed to find a season")
	iter.Stop()
	log.WithField("season", seasonDoc.Ref.ID).Info("using season")

	season := fetchSeason(ctx, fs, seasonDoc.Ref)
	log.WithFields(logrus.Fields{
		"teams": len(season.TeamList()),
		"weeks": season.NumWeeks(),
	}).Info("built schedule")
	log.Debugf("schedule:\n%s", season)

	model := fetchRatingModel(ctx, fs, seasonDoc.Ref)
	pickPcts := fetchPickPercentages(ctx, fs, seasonDoc.Ref)

	var lines []oddsfeed.Line
	if *linesURL != "" {
		lines, err = oddsfeed.MakeLines(*linesURL)
		check(err, "failed to fetch line feed")
		log.WithField("lines", len(lines)).Info("fetched line feed")
	}

	table, err := oddsfeed.BuildTable(season, lines, model, pickPcts, cfg)
	check(err, "failed to assemble table")

	out := os.Stdout
	if *outFile != "" {
		out, err = os.Create(*outFile)
		check(err, "failed to create output file")
		defer out.Close()
	}
	check(table.WriteYAML(out), "failed to write table")
}

func fetchSeason(ctx context.Context, fs *firestore.Client, seasonRef *firestore.DocumentRef) *survivor.Season {
	iter := fs.Collection("schedules").Where("season", "==", seasonRef).Limit(1).Documents(ctx)
	scheduleDoc, err := iter.Next()
	check(err, "failed to find a schedule for the season")
	iter.Stop()

	teams := make(map[survivor.Team][]string)
	divisions := make(map[survivor.Team]string)

	iter = scheduleDoc.Ref.Collection("teams").Documents(ctx)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		check(err, "failed to read team schedule")

		var ts TeamSchedule
		check(doc.DataTo(&ts), "failed to decode team schedule")
		teams[survivor.Team(ts.Team)] = ts.Opponents
		if ts.Division != "" {
			divisions[survivor.Team(ts.Team)] = ts.Division
		}
	}
	iter.Stop()

	season, err := survivor.BuildSeason(teams, divisions)
	check(err, "failed to build season from schedule")
	return season
}

func fetchRatingModel(ctx context.Context, fs *firestore.Client, seasonRef *firestore.DocumentRef) *survivor.RatingModel {
	iter := fs.Collection("ratings").Where("season", "==", seasonRef).OrderBy("timestamp", firestore.Desc).Limit(1).Documents(ctx)
	ratingDoc, err := iter.Next()
	check(err, "failed to find ratings for the season")
	iter.Stop()

	var meta RatingMeta
	check(ratingDoc.DataTo(&meta), "failed to decode rating metadata")
	log.WithFields(logrus.Fields{
		"std_dev":   meta.StandardDeviation,
		"home_bias": meta.HomeBias,
	}).Info("rating calibration")

	ratings := make(map[survivor.Team]float64)
	iter = ratingDoc.Ref.Collection("teams").Documents(ctx)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		check(err, "failed to read team rating")

		var tr TeamRating
		check(doc.DataTo(&tr), "failed to decode team rating")
		ratings[survivor.Team(tr.Team)] = tr.Rating
	}
	iter.Stop()

	return survivor.NewRatingModel(ratings, meta.StandardDeviation, meta.HomeBias)
}

func fetchPickPercentages(ctx context.Context, fs *firestore.Client, seasonRef *firestore.DocumentRef) oddsfeed.PickPercentages {
	pcts := make(oddsfeed.PickPercentages)

	iter := fs.Collection("pick_percentages").Where("season", "==", seasonRef).Documents(ctx)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		check(err, "failed to read pick percentage")

		var pp PickPercentage
		check(doc.DataTo(&pp), "failed to decode pick percentage")
		team := survivor.Team(pp.Team)
		if pcts[team] == nil {
			pcts[team] = make(map[int]float64)
		}
		pcts[team][pp.Week] = pp.Percentage
	}
	iter.Stop()

	return pcts
}
