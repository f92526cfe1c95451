package main

import (
	"context"
	"os"
	"time"

	"mathsearch/engine"
	"mathsearch/experiments"
	"mathsearch/game"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	plan := defaultPlan()
	if len(os.Args) > 1 {
		loaded, err := engine.LoadLessonPlan(os.Args[1])
		if err != nil {
			log.Fatal().Err(err).Msg("failed to load lesson plan")
		}
		plan = loaded
	}

	cfg := engine.Config{
		Goroutines:  8,
		Simulations: 250,
		Metrics:     true,
	}

	log.Info().Str("plan", plan.Name).Msg("running lesson")
	start := time.Now()
	results, err := experiments.RunLesson(
		context.Background(),
		game.HeuristicOracle{},
		engine.NewGenerator(uint64(time.Now().UnixNano())),
		plan,
		cfg,
		4,
	)
	if err != nil {
		log.Fatal().Err(err).Msg("lesson run failed")
	}

	solved := 0
	for _, result := range results {
		if result.Solved {
			solved++
		}
	}
	log.Info().
		Int("solved", solved).
		Int("total", len(results)).
		Dur("duration", time.Since(start)).
		Msg("lesson complete")

	if err := experiments.WriteResults("experiments/out", plan.Name, results); err != nil {
		log.Fatal().Err(err).Msg("failed to write results")
	}
}

func defaultPlan() engine.LessonPlan {
	return engine.LessonPlan{
		Name: "combine-like-terms",
		Exercises: []engine.Exercise{
			{
				Name:        "two terms",
				Kind:        "likeTerms",
				Terms:       2,
				Problems:    20,
				MaxMoves:    7,
				Simulations: 250,
				Solved:      "singleTerm",
			},
			{
				Name:        "three terms",
				Kind:        "likeTerms",
				Terms:       3,
				Problems:    10,
				MaxMoves:    15,
				Simulations: 250,
				Solved:      "singleTerm",
			},
			{
				Name:        "four terms",
				Kind:        "likeTerms",
				Terms:       4,
				Problems:    5,
				MaxMoves:    25,
				Simulations: 750,
				Solved:      "singleTerm",
			},
			{
				Name:        "constant sums",
				Kind:        "constants",
				Terms:       3,
				Problems:    10,
				MaxMoves:    10,
				Simulations: 250,
				Solved:      "singleConstant",
			},
		},
	}
}
