package experiment

import (
	"context"
	"sync"

	"github.com/san-kum/thermosim/internal/config"
	"github.com/san-kum/thermosim/internal/thermo"
)

// Ensemble repeats one config over consecutive seeds in parallel. The
// particle systems are random, so seeds change bubble and steam counts
// while the temperature trace stays the same.
type Ensemble struct {
	cfg      *config.Config
	registry *Registry
	numRuns  int
}

func NewEnsemble(cfg *config.Config, registry *Registry, numRuns int) *Ensemble {
	return &Ensemble{cfg: cfg, registry: registry, numRuns: max(numRuns, 1)}
}

func (e *Ensemble) Run(ctx context.Context) ([]*thermo.Result, error) {
	results := make([]*thermo.Result, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			cfgCopy := *e.cfg
			cfgCopy.Seed = e.cfg.Seed + int64(idx)

			exp := New(&cfgCopy)
			if err := exp.Setup(e.registry, e.registry.DefaultMetrics(cfgCopy.Controller)); err != nil {
				errs[idx] = err
				return
			}
			results[idx], errs[idx] = exp.Run(ctx)
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}

// MeanMetrics averages each metric across results.
func MeanMetrics(results []*thermo.Result) map[string]float64 {
	mean := make(map[string]float64)
	if len(results) == 0 {
		return mean
	}
	for _, r := range results {
		for name, v := range r.Metrics {
			mean[name] += v
		}
	}
	for name := range mean {
		mean[name] /= float64(len(results))
	}
	return mean
}
