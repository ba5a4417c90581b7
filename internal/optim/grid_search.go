package optim

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/san-kum/thermosim/internal/experiment"
)

var ErrUnknownMetric = errors.New("optim: metric not reported")

const defaultWorkers = 4

// Trial is one evaluated parameter combination.
type Trial struct {
	Params map[string]float64
	Value  float64
}

// GridSearch evaluates every combination of the parameter ranges and keeps
// the one with the lowest metric value.
type GridSearch struct {
	paramNames []string
	ranges     [][]float64
	workers    int
}

func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges, workers: defaultWorkers}
}

// Combinations lists the grid in odometer order, last parameter fastest.
func (g *GridSearch) Combinations() []map[string]float64 {
	if len(g.paramNames) == 0 || len(g.paramNames) != len(g.ranges) {
		return nil
	}
	total := 1
	for _, r := range g.ranges {
		total *= len(r)
	}

	combos := make([]map[string]float64, 0, total)
	idx := make([]int, len(g.ranges))
	for n := 0; n < total; n++ {
		params := make(map[string]float64, len(g.paramNames))
		for i, name := range g.paramNames {
			params[name] = g.ranges[i][idx[i]]
		}
		combos = append(combos, params)

		for i := len(idx) - 1; i >= 0; i-- {
			idx[i]++
			if idx[i] < len(g.ranges[i]) {
				break
			}
			idx[i] = 0
		}
	}
	return combos
}

// Search runs one experiment per combination on a small worker pool.
// Trials come back in Combinations order.
func (g *GridSearch) Search(
	ctx context.Context,
	buildExperiment func(params map[string]float64) (*experiment.Experiment, error),
	metricName string,
) (Trial, []Trial, error) {
	combos := g.Combinations()
	if len(combos) == 0 {
		return Trial{}, nil, fmt.Errorf("optim: empty grid")
	}

	trials := make([]Trial, len(combos))
	errs := make([]error, len(combos))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < min(g.workers, len(combos)); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				trials[i], errs[i] = g.evaluate(ctx, combos[i], buildExperiment, metricName)
			}
		}()
	}

feed:
	for i := range combos {
		select {
		case jobs <- i:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return Trial{}, nil, err
	}
	if err := errors.Join(errs...); err != nil {
		return Trial{}, nil, err
	}

	best := Trial{Value: math.Inf(1)}
	for _, tr := range trials {
		if tr.Value < best.Value {
			best = tr
		}
	}
	return best, trials, nil
}

func (g *GridSearch) evaluate(
	ctx context.Context,
	params map[string]float64,
	buildExperiment func(map[string]float64) (*experiment.Experiment, error),
	metricName string,
) (Trial, error) {
	exp, err := buildExperiment(params)
	if err != nil {
		return Trial{}, err
	}

	result, err := exp.Run(ctx)
	if err != nil {
		return Trial{}, err
	}

	val, ok := result.Metrics[metricName]
	if !ok {
		return Trial{}, fmt.Errorf("%w: %s", ErrUnknownMetric, metricName)
	}
	return Trial{Params: params, Value: val}, nil
}
