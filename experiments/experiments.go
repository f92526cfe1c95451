// Package experiments runs batches of episodes. Episodes are independent,
// so a batch fans out across a worker pool; each episode owns its search
// tree and shares nothing with the others beyond the read-only oracle.
package experiments

import (
	"context"
	"fmt"
	"sync"

	"mathsearch/engine"
	"mathsearch/experiments/metrics"
	"mathsearch/game"

	"github.com/rs/zerolog/log"
)

// RunLesson plays every problem of a lesson plan across the given number of
// episode workers and returns the results in no particular order. Problems
// are generated up front from the source so the set is reproducible
// regardless of worker scheduling.
func RunLesson(ctx context.Context, oracle game.Oracle, source engine.ProblemSource, plan engine.LessonPlan, cfg engine.Config, workers int) ([]engine.Result, error) {
	if workers <= 0 {
		workers = 1
	}

	type job struct {
		problem engine.Problem
		cfg     engine.Config
	}
	var jobs []job
	for _, exercise := range plan.Exercises {
		exerciseCfg := cfg
		if exercise.Simulations > 0 {
			exerciseCfg.Simulations = exercise.Simulations
			exerciseCfg.Duration = 0
		}
		for i := 0; i < exercise.Problems; i++ {
			problem, err := source.NextProblem(exercise)
			if err != nil {
				return nil, fmt.Errorf("exercise %q: %w", exercise.Name, err)
			}
			jobs = append(jobs, job{problem: problem, cfg: exerciseCfg})
		}
	}

	queue := make(chan job, len(jobs))
	for _, j := range jobs {
		queue <- j
	}
	close(queue)

	results := make(chan engine.Result, len(jobs))
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range queue {
				if ctx.Err() != nil {
					return
				}
				results <- engine.RunEpisode(ctx, oracle, j.cfg, j.problem)
			}
		}()
	}
	wg.Wait()
	close(results)

	collected := make([]engine.Result, 0, len(jobs))
	for result := range results {
		collected = append(collected, result)
	}
	return collected, ctx.Err()
}

// WriteResults flattens episode results into records and writes one CSV per
// run under outDir.
func WriteResults(outDir, name string, results []engine.Result) error {
	writer, err := metrics.NewWriter(outDir)
	if err != nil {
		return err
	}

	records := make([]metrics.EpisodeRecord, len(results))
	for i, result := range results {
		records[i] = toRecord(result)
	}
	if err := writer.WriteEpisodes(name, records); err != nil {
		return err
	}
	log.Info().Str("dir", writer.Dir()).Int("episodes", len(records)).Msg("wrote episode records")
	return nil
}

func toRecord(result engine.Result) metrics.EpisodeRecord {
	record := metrics.EpisodeRecord{
		ID:          result.ID.String(),
		Lesson:      result.Lesson,
		Input:       result.Input,
		Final:       result.Final,
		Solved:      result.Solved,
		ParseFailed: result.Err != nil,
		Moves:       result.Moves,
		Duration:    result.Duration,
	}
	for _, search := range result.Searches {
		record.Simulations += search.Simulations
		record.OracleCalls += search.OracleCalls
		record.OracleFailures += search.OracleFailures
	}
	return record
}
