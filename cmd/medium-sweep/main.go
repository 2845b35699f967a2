package main

import (
	"flag"
	"fmt"
	"runtime"
	"sort"
	"strings"
	"sync"

	"dirac-ca/internal/sims/dirac"
)

type kvList []string

func (l *kvList) String() string {
	return strings.Join(*l, ",")
}

func (l *kvList) Set(value string) error {
	*l = append(*l, value)
	return nil
}

type candidate struct {
	damping   float64
	waveSpeed float64
	threshold float64
}

func (c candidate) String() string {
	return fmt.Sprintf("damping=%.2f speed=%.2f threshold=%.2f", c.damping, c.waveSpeed, c.threshold)
}

type runResult struct {
	cand candidate

	energy      float64
	peak        float64
	matter      int
	anti        int
	nucleated   uint64
	annihilated uint64
}

func main() {
	steps := flag.Int("steps", 400, "number of ticks to simulate per candidate")
	workers := flag.Int("workers", runtime.NumCPU(), "parallel candidate evaluations")
	rows := flag.Int("rows", 160, "automaton rows for sweep runs")
	cols := flag.Int("cols", 160, "automaton cols for sweep runs")
	seed := flag.Int64("seed", 1337, "seed used for deterministic runs")
	var overrides kvList
	flag.Var(&overrides, "set", "parameter override in key=value form (repeatable)")
	flag.Parse()

	base := map[string]string{
		"rows": fmt.Sprint(*rows),
		"cols": fmt.Sprint(*cols),
		"seed": fmt.Sprint(*seed),
	}
	for _, kv := range overrides {
		parts := strings.SplitN(kv, "=", 2)
		if len(parts) != 2 {
			continue
		}
		base[parts[0]] = parts[1]
	}

	dampings := []float64{0.05, 0.12, 0.30, 0.80}
	speeds := []float64{0.15, 0.30, 0.50}
	thresholds := []float64{0.35, 0.55, 0.80}

	var candidates []candidate
	for _, d := range dampings {
		for _, s := range speeds {
			for _, t := range thresholds {
				candidates = append(candidates, candidate{damping: d, waveSpeed: s, threshold: t})
			}
		}
	}

	jobs := make(chan candidate, len(candidates))
	results := make([]runResult, 0, len(candidates))
	var mu sync.Mutex
	var wg sync.WaitGroup

	n := *workers
	if n < 1 {
		n = 1
	}
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for cand := range jobs {
				res := evaluate(base, cand, *steps, *seed)
				mu.Lock()
				results = append(results, res)
				mu.Unlock()
			}
		}()
	}
	for _, cand := range candidates {
		jobs <- cand
	}
	close(jobs)
	wg.Wait()

	sort.Slice(results, func(i, j int) bool {
		if results[i].nucleated != results[j].nucleated {
			return results[i].nucleated > results[j].nucleated
		}
		return results[i].energy > results[j].energy
	})

	fmt.Printf("%-44s %10s %8s %8s %8s %10s %10s\n",
		"candidate", "energy", "peak", "matter", "anti", "nucleated", "annihil.")
	for _, r := range results {
		fmt.Printf("%-44s %10.3f %8.3f %8d %8d %10d %10d\n",
			r.cand, r.energy, r.peak, r.matter, r.anti, r.nucleated, r.annihilated)
	}

	if len(results) > 0 {
		printWinner(base, results[0].cand)
	}
}

// printWinner reprints the best candidate as a full parameter listing, ready
// to paste back as -set overrides.
func printWinner(base map[string]string, cand candidate) {
	cfg := dirac.FromMap(base)
	cfg.Params.Medium.Damping = cand.damping
	cfg.Params.Medium.WaveSpeed = cand.waveSpeed
	cfg.Params.Nucleation.Threshold = cand.threshold

	fmt.Printf("\nbest candidate parameters:\n")
	for _, group := range dirac.NewWithConfig(cfg).Parameters().Groups {
		fmt.Printf("  %s\n", group.Name)
		for _, p := range group.Params {
			fmt.Printf("    %-18s %s\n", p.Key, p.Value)
		}
	}
}

// evaluate runs one deterministic seeded simulation for the candidate and
// collects its end-state measurements.
func evaluate(base map[string]string, cand candidate, steps int, seed int64) runResult {
	cfg := dirac.FromMap(base)
	cfg.Params.Medium.Damping = cand.damping
	cfg.Params.Medium.WaveSpeed = cand.waveSpeed
	cfg.Params.Nucleation.Threshold = cand.threshold

	world := dirac.NewWithConfig(cfg)
	world.Reset(seed)
	for i := 0; i < steps; i++ {
		world.Step()
	}

	return runResult{
		cand:        cand,
		energy:      world.FieldEnergy(),
		peak:        world.FieldPeak(),
		matter:      world.MatterCount(),
		anti:        world.AntimatterCount(),
		nucleated:   world.TotalNucleated(),
		annihilated: world.TotalAnnihilated(),
	}
}
