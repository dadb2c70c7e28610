// Package sweep runs a scenario over a grid of parameter values, board sizes
// and repetitions, one independent board per run.
package sweep

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"runtime"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"mad-grid/internal/config"
	"mad-grid/internal/core"
	"mad-grid/internal/results"
)

// Plan describes a sweep.
type Plan struct {
	Scenario string
	// Base parameters apply to every run; swept values override them.
	Base map[string]string
	// Params maps a parameter key to the values to sweep over.
	Params map[string][]string
	// Sizes lists board sizes. An empty list runs the scenario's own size.
	Sizes       []core.Size
	Repetitions int
	MaxSteps    int
	Workers     int
	Seed        int64
	Collisions  []config.CollisionRule
	// ID tags the sweep. Run assigns a UUIDv7 when it is empty.
	ID string
}

// FromFile builds a plan from a run file. The file must carry a sweep block.
func FromFile(f config.File) (Plan, error) {
	if f.Sweep == nil {
		return Plan{}, fmt.Errorf("run file for %q has no sweep block", f.Scenario)
	}
	p := Plan{
		Scenario:    f.Scenario,
		Base:        maps.Clone(f.Params),
		Params:      maps.Clone(f.Sweep.Params),
		Repetitions: f.Sweep.Repetitions,
		MaxSteps:    f.Sweep.MaxSteps,
		Workers:     f.Sweep.Workers,
		Seed:        f.Seed,
		Collisions:  f.Collisions,
	}
	if p.MaxSteps == 0 {
		p.MaxSteps = f.Steps
	}
	for _, s := range f.Sweep.Sizes {
		size, err := config.ParseSize(s)
		if err != nil {
			return Plan{}, err
		}
		p.Sizes = append(p.Sizes, size)
	}
	return p, nil
}

// Job is one run of a plan.
type Job struct {
	Run    int
	Rep    int
	Size   core.Size
	Seed   int64
	Params map[string]string
}

// Jobs expands the plan into its Cartesian product. Jobs are ordered by
// parameter combination (keys sorted), then size, then repetition. A
// repetition uses seed Seed+rep, so every combination sees the same seeds.
func (p Plan) Jobs() []Job {
	keys := slices.Sorted(maps.Keys(p.Params))
	combos := []map[string]string{{}}
	for _, k := range keys {
		vals := p.Params[k]
		if len(vals) == 0 {
			continue
		}
		next := make([]map[string]string, 0, len(combos)*len(vals))
		for _, c := range combos {
			for _, v := range vals {
				m := maps.Clone(c)
				m[k] = v
				next = append(next, m)
			}
		}
		combos = next
	}

	sizes := p.Sizes
	if len(sizes) == 0 {
		sizes = []core.Size{{}}
	}
	reps := max(p.Repetitions, 1)

	jobs := make([]Job, 0, len(combos)*len(sizes)*reps)
	for _, c := range combos {
		for _, s := range sizes {
			for rep := 0; rep < reps; rep++ {
				jobs = append(jobs, Job{
					Run:    len(jobs),
					Rep:    rep,
					Size:   s,
					Seed:   p.Seed + int64(rep),
					Params: c,
				})
			}
		}
	}
	return jobs
}

func (p Plan) config(j Job) map[string]string {
	cfg := maps.Clone(p.Base)
	if cfg == nil {
		cfg = make(map[string]string)
	}
	maps.Copy(cfg, j.Params)
	if j.Size.W > 0 && j.Size.H > 0 {
		cfg["w"] = strconv.Itoa(j.Size.W)
		cfg["h"] = strconv.Itoa(j.Size.H)
	}
	return cfg
}

// NewID returns a fresh time-ordered sweep identifier.
func NewID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// Summary reports what a sweep did.
type Summary struct {
	SweepID string
	Runs    int
	Failed  int
	Elapsed time.Duration
}

type outcome struct {
	row results.Row
	err error
}

// Run executes every job of p on a worker pool and writes one row per
// successful run to sink, in run order. Failed runs are logged and their
// errors joined into the returned error.
func Run(ctx context.Context, p Plan, sink results.Sink, log *slog.Logger) (Summary, error) {
	if log == nil {
		log = slog.Default()
	}
	if _, ok := core.Scenarios()[p.Scenario]; !ok {
		return Summary{}, fmt.Errorf("unknown scenario %q (available: %v)", p.Scenario, core.Names())
	}
	if p.MaxSteps <= 0 {
		return Summary{}, fmt.Errorf("sweep %s: max steps must be positive", p.Scenario)
	}
	sweepID := p.ID
	if sweepID == "" {
		id, err := NewID()
		if err != nil {
			return Summary{}, err
		}
		sweepID = id
	}
	workers := p.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	all := p.Jobs()
	sum := Summary{SweepID: sweepID, Runs: len(all)}
	log.Info("sweep start", "sweep", sum.SweepID, "scenario", p.Scenario, "runs", len(all), "workers", workers)

	jobs := make(chan Job)
	outs := make(chan outcome)
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				row, err := p.runOne(ctx, j)
				outs <- outcome{row: row, err: err}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(outs)
	}()

	go func() {
		defer close(jobs)
		for _, j := range all {
			select {
			case jobs <- j:
			case <-ctx.Done():
				return
			}
		}
	}()

	start := time.Now()
	var rows []results.Row
	var errs []error
	for o := range outs {
		if o.err != nil {
			sum.Failed++
			errs = append(errs, o.err)
			log.Error("run failed", "sweep", sum.SweepID, "err", o.err)
			continue
		}
		log.Debug("run done", "run", o.row.Run, "steps", o.row.Steps, "seconds", o.row.Seconds)
		rows = append(rows, o.row)
	}
	sum.Elapsed = time.Since(start)

	slices.SortFunc(rows, func(a, b results.Row) int { return a.Run - b.Run })
	for _, r := range rows {
		if err := sink.Write(r); err != nil {
			return sum, fmt.Errorf("write run %d: %w", r.Run, err)
		}
	}
	if err := ctx.Err(); err != nil {
		errs = append(errs, err)
	}
	log.Info("sweep done", "sweep", sum.SweepID, "runs", len(rows), "failed", sum.Failed, "took", sum.Elapsed.Round(time.Millisecond))
	return sum, errors.Join(errs...)
}

func (p Plan) runOne(ctx context.Context, j Job) (results.Row, error) {
	s, err := core.New(p.Scenario, p.config(j))
	if err != nil {
		return results.Row{}, err
	}
	b := s.Board()
	if len(p.Collisions) > 0 {
		if err := (config.File{Collisions: p.Collisions}).Apply(b.CollisionMap()); err != nil {
			return results.Row{}, fmt.Errorf("run %d: %w", j.Run, err)
		}
	}
	if err := s.Reset(j.Seed); err != nil {
		return results.Row{}, fmt.Errorf("run %d: reset: %w", j.Run, err)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return results.Row{}, err
	}
	start := time.Now()
	for b.Running() && b.StepCount() < p.MaxSteps {
		if err := ctx.Err(); err != nil {
			return results.Row{}, fmt.Errorf("run %d: %w", j.Run, err)
		}
		if err := b.Step(); err != nil {
			return results.Row{}, fmt.Errorf("run %d: %w", j.Run, err)
		}
	}

	return results.Row{
		RunID:   id.String(),
		Run:     j.Run,
		Size:    s.Size(),
		Steps:   b.StepCount(),
		Seconds: time.Since(start).Seconds(),
		Data:    s.Parameters().Map(),
		Values:  b.Values(),
		States:  b.Census(),
	}, nil
}
