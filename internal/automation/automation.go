package automation

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"sort"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/24dai03-saifchaus/algonexus/internal/experiment"
	"github.com/24dai03-saifchaus/algonexus/internal/input"
)

// Scenario defines a scripted sequence of trace requests
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is a single request. Input and Target are raw text, parsed
// the same way as interactive input.
type ScenarioStep struct {
	Algorithm string `yaml:"algorithm"`
	Input     string `yaml:"input"`
	Target    string `yaml:"target"`
	SaveAs    string `yaml:"save_as"`
}

func (s ScenarioStep) Config() experiment.Config {
	return experiment.Config{
		Algorithm: s.Algorithm,
		Input:     input.ParseDataset(s.Input),
		Target:    input.ParseTarget(s.Target),
	}
}

// Saver persists a result and returns its run id.
type Saver interface {
	Save(result *experiment.Result) (string, error)
}

// StepResult pairs a scenario step with its outcome.
type StepResult struct {
	Step   ScenarioStep
	Result *experiment.Result
	RunID  string
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScenario(data)
}

func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("scenario %q has no steps", scenario.Name)
	}
	return &scenario, nil
}

// RunScenario executes all steps in order. Steps with save_as set, or every
// step when saveAll is true, are persisted through saver when it is non-nil.
func RunScenario(ctx context.Context, scenario *Scenario, registry *experiment.Registry, saver Saver, saveAll bool, log *slog.Logger) ([]StepResult, error) {
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		log.Info("running step", "step", i+1, "of", len(scenario.Steps), "algorithm", step.Algorithm)

		res, err := experiment.Generate(ctx, registry, step.Config())
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		sr := StepResult{Step: step, Result: res}
		if saver != nil && (saveAll || step.SaveAs != "") {
			id, err := saver.Save(res)
			if err != nil {
				return results, fmt.Errorf("step %d save: %w", i+1, err)
			}
			sr.RunID = id
			log.Info("saved run", "step", i+1, "run_id", id, "label", step.SaveAs)
		}
		results = append(results, sr)
	}

	return results, nil
}

// SizeSweep generates traces over a range of dataset sizes.
type SizeSweep struct {
	Algorithm string
	MinSize   int
	MaxSize   int
	Stride    int
	MaxValue  int
	Seed      int64
}

// SweepResult holds the metrics for one sweep size.
type SweepResult struct {
	Size    int
	Steps   int
	Metrics map[string]float64
}

// RunSweep executes a size sweep. Datasets are random, and searches use a
// target drawn from the dataset.
func RunSweep(ctx context.Context, sweep *SizeSweep, registry *experiment.Registry, log *slog.Logger) ([]SweepResult, error) {
	if sweep.MinSize < 1 || sweep.MaxSize < sweep.MinSize {
		return nil, fmt.Errorf("invalid sweep range %d..%d", sweep.MinSize, sweep.MaxSize)
	}
	stride := sweep.Stride
	if stride < 1 {
		stride = 1
	}
	maxValue := sweep.MaxValue
	if maxValue < 1 {
		maxValue = 100
	}
	rng := newRand(sweep.Seed)

	var cfgs []experiment.Config
	for n := sweep.MinSize; n <= sweep.MaxSize; n += stride {
		values, target := input.Random(rng, n, maxValue)
		cfgs = append(cfgs, experiment.Config{Algorithm: sweep.Algorithm, Input: values, Target: target})
	}

	batch, err := experiment.RunBatch(ctx, registry, cfgs)
	if err != nil {
		return nil, err
	}

	results := make([]SweepResult, len(batch))
	for i, res := range batch {
		results[i] = SweepResult{
			Size:    len(res.Config.Input),
			Steps:   len(res.Trace),
			Metrics: res.Metrics,
		}
		log.Debug("sweep", "size", results[i].Size, "steps", results[i].Steps)
	}
	return results, nil
}

// RandomTrialsConfig defines repeated runs over random datasets of one size.
type RandomTrialsConfig struct {
	Algorithm string
	Size      int
	MaxValue  int
	NumTrials int
	Seed      int64
}

// TrialStats summarizes one metric across trials.
type TrialStats struct {
	Metric string
	Min    float64
	Max    float64
	Mean   float64
}

// RunRandomTrials generates NumTrials traces and summarizes every metric.
func RunRandomTrials(ctx context.Context, cfg *RandomTrialsConfig, registry *experiment.Registry) ([]TrialStats, error) {
	if cfg.NumTrials < 1 || cfg.Size < 1 {
		return nil, fmt.Errorf("need at least one trial of size >= 1")
	}
	maxValue := cfg.MaxValue
	if maxValue < 1 {
		maxValue = 100
	}
	rng := newRand(cfg.Seed)

	cfgs := make([]experiment.Config, cfg.NumTrials)
	for i := range cfgs {
		values, target := input.Random(rng, cfg.Size, maxValue)
		cfgs[i] = experiment.Config{Algorithm: cfg.Algorithm, Input: values, Target: target}
	}

	batch, err := experiment.RunBatch(ctx, registry, cfgs)
	if err != nil {
		return nil, err
	}

	acc := map[string]*TrialStats{}
	var order []string
	for _, res := range batch {
		for name, v := range res.Metrics {
			st, ok := acc[name]
			if !ok {
				st = &TrialStats{Metric: name, Min: v, Max: v}
				acc[name] = st
				order = append(order, name)
			}
			if v < st.Min {
				st.Min = v
			}
			if v > st.Max {
				st.Max = v
			}
			st.Mean += v / float64(len(batch))
		}
	}

	sort.Strings(order)
	stats := make([]TrialStats, len(order))
	for i, name := range order {
		stats[i] = *acc[name]
	}
	return stats, nil
}

func newRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}
