package engine

import (
	"context"
	"fmt"
	"os"
	"strings"

	"mathsearch/game"

	"golang.org/x/exp/rand"
	"gopkg.in/yaml.v3"
)

// Exercise is one rung of a lesson plan: a problem family at a fixed
// difficulty, with the move and simulation budgets that fit it.
type Exercise struct {
	Name        string `yaml:"name"`
	Kind        string `yaml:"kind"` // likeTerms | constants
	Terms       int    `yaml:"terms"`
	Problems    int    `yaml:"problems"`
	MaxMoves    int    `yaml:"maxMoves"`
	Simulations int    `yaml:"simulations"`
	Solved      string `yaml:"solved"` // singleConstant | singleTerm | simplified
}

type LessonPlan struct {
	Name      string     `yaml:"name"`
	Exercises []Exercise `yaml:"exercises"`
}

// LoadLessonPlan reads a YAML lesson plan from disk.
func LoadLessonPlan(path string) (LessonPlan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return LessonPlan{}, fmt.Errorf("failed to read lesson plan: %w", err)
	}
	var plan LessonPlan
	if err := yaml.Unmarshal(data, &plan); err != nil {
		return LessonPlan{}, fmt.Errorf("failed to parse lesson plan: %w", err)
	}
	for i, exercise := range plan.Exercises {
		if _, err := SolvedPredicate(exercise.Solved); err != nil {
			return LessonPlan{}, fmt.Errorf("exercise %q: %w", exercise.Name, err)
		}
		if exercise.Problems <= 0 || exercise.MaxMoves <= 0 {
			return LessonPlan{}, fmt.Errorf("exercise %q needs positive problems and maxMoves", exercise.Name)
		}
		if exercise.Kind == "" {
			plan.Exercises[i].Kind = "likeTerms"
		}
	}
	return plan, nil
}

// SolvedPredicate resolves a lesson plan's solved-shape name.
func SolvedPredicate(name string) (game.Solved, error) {
	switch name {
	case "singleConstant":
		return game.SingleConstant, nil
	case "singleTerm":
		return game.SingleTerm, nil
	case "", "simplified":
		return game.Simplified, nil
	default:
		return nil, fmt.Errorf("unknown solved predicate %q", name)
	}
}

// Generator produces random problems per exercise kind. The seed fixes the
// problem sequence so lesson runs are reproducible.
type Generator struct {
	rng *rand.Rand
}

func NewGenerator(seed uint64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

var variables = []string{"x", "y", "z", "a", "b", "n"}

func (g *Generator) NextProblem(exercise Exercise) (Problem, error) {
	solved, err := SolvedPredicate(exercise.Solved)
	if err != nil {
		return Problem{}, err
	}

	terms := exercise.Terms
	if terms < 2 {
		terms = 2
	}

	var text string
	switch exercise.Kind {
	case "likeTerms":
		text = g.likeTermsProblem(terms)
	case "constants":
		text = g.constantsProblem(terms)
	default:
		return Problem{}, fmt.Errorf("unknown problem kind %q", exercise.Kind)
	}

	return Problem{
		Lesson:   exercise.Name,
		Text:     text,
		Solved:   solved,
		MaxMoves: exercise.MaxMoves,
	}, nil
}

// likeTermsProblem builds a sum of like variable terms, e.g.
// "19y + 20y + 17y" for three terms.
func (g *Generator) likeTermsProblem(terms int) string {
	variable := variables[g.rng.Intn(len(variables))]
	parts := make([]string, terms)
	for i := range parts {
		parts[i] = fmt.Sprintf("%d%s", g.randCoefficient(), variable)
	}
	return strings.Join(parts, " + ")
}

// constantsProblem builds a pure-constant sum for arithmetic drills.
func (g *Generator) constantsProblem(terms int) string {
	parts := make([]string, terms)
	for i := range parts {
		parts[i] = fmt.Sprintf("%d", g.randCoefficient())
	}
	return strings.Join(parts, " + ")
}

func (g *Generator) randCoefficient() int {
	return 1 + g.rng.Intn(20)
}

// RunLesson plays every exercise of a plan in order and returns the episode
// results. Per-exercise simulation budgets override the baseline config.
func RunLesson(ctx context.Context, oracle game.Oracle, source ProblemSource, plan LessonPlan, cfg Config) ([]Result, error) {
	var results []Result
	for _, exercise := range plan.Exercises {
		exerciseCfg := cfg
		if exercise.Simulations > 0 {
			exerciseCfg.Simulations = exercise.Simulations
			exerciseCfg.Duration = 0
		}
		for i := 0; i < exercise.Problems; i++ {
			if ctx.Err() != nil {
				return results, ctx.Err()
			}
			problem, err := source.NextProblem(exercise)
			if err != nil {
				return results, fmt.Errorf("exercise %q: %w", exercise.Name, err)
			}
			results = append(results, RunEpisode(ctx, oracle, exerciseCfg, problem))
		}
	}
	return results, nil
}
