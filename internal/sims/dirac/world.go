package dirac

import (
	"slices"

	"dirac-ca/internal/core"
	pkgcore "dirac-ca/pkg/core"
)

// World couples the two-population automaton to the wave medium and owns the
// per-generation pipeline: automaton step, source rebuild, field
// integration, nucleation scan, nucleation, annihilation impulses. All
// methods assume single-threaded use; callers serialize mutations with
// Step.
type World struct {
	cfg Config

	auto *Automaton
	med  *Medium
	cp   *coupler
	det  *detector
	inj  *injector

	rng *pkgcore.RNG

	generation       uint64
	totalAnnihilated uint64
	totalNucleated   uint64

	display []uint8
}

// Snapshot is an immutable view of the simulation handed to renderers.
type Snapshot struct {
	Generation uint64

	Rows int
	Cols int
	Wrap bool

	Matter     []Cell
	Antimatter []Cell

	MediumRows int
	MediumCols int
	Amplitude  []float32

	PendingAnnihilations  int
	ConsumedAnnihilations uint64
	TotalNucleated        uint64

	FieldEnergy float64
}

// New returns a World with the given dimensions and default tunables.
func New(rows, cols int) *World {
	cfg := DefaultConfig()
	cfg.Rows = rows
	cfg.Cols = cols
	return NewWithConfig(cfg)
}

// NewWithConfig returns a World configured from the provided options. All
// numeric tunables are clamped to their documented ranges.
func NewWithConfig(cfg Config) *World {
	cfg = sanitizeConfig(cfg)
	w := &World{
		cfg: cfg,
		rng: pkgcore.NewRNG(cfg.Seed),
	}
	topo := core.Topology{Rows: cfg.Rows, Cols: cfg.Cols, Wrap: cfg.Wrap}
	w.auto = newAutomaton(topo)
	w.rewire(topo)
	return w
}

// rewire rebuilds every grid-shaped component except the automaton for a new
// topology. The medium comes back zeroed.
func (w *World) rewire(topo core.Topology) {
	med := mediumTopology(topo)
	w.med = newMedium(med, w.cfg.Params.Medium, w.rng)
	w.cp = newCoupler(topo, med)
	w.det = newDetector(med)
	w.inj = &injector{}
	w.display = make([]uint8, topo.Count())
	w.generation = 0
	w.rebuildDisplay()
}

// Name returns the simulation identifier.
func (w *World) Name() string { return "dirac" }

// Size reports the automaton grid dimensions.
func (w *World) Size() core.Size { return core.Size{W: w.cfg.Cols, H: w.cfg.Rows} }

// Cells exposes the current display buffer.
func (w *World) Cells() []uint8 { return w.display }

// Generation returns the automaton generation counter.
func (w *World) Generation() uint64 { return w.generation }

// Population returns the live-cell count of one species.
func (w *World) Population(pop Population) int { return w.auto.Count(pop) }

// MatterCount returns the matter population size.
func (w *World) MatterCount() int { return w.auto.Count(Matter) }

// AntimatterCount returns the antimatter population size.
func (w *World) AntimatterCount() int { return w.auto.Count(Antimatter) }

// FieldEnergy returns the medium's sum of squared amplitudes.
func (w *World) FieldEnergy() float64 { return w.med.Energy() }

// FieldPeak returns the medium's largest absolute amplitude.
func (w *World) FieldPeak() float64 { return w.med.Peak() }

// TotalAnnihilated returns the running count of consumed annihilation events.
func (w *World) TotalAnnihilated() uint64 { return w.totalAnnihilated }

// TotalNucleated returns the running count of cells created by nucleation.
func (w *World) TotalNucleated() uint64 { return w.totalNucleated }

// AmplitudeField exposes the medium amplitude buffer and its dimensions for
// overlay rendering. Read-only.
func (w *World) AmplitudeField() ([]float32, int, int) {
	return w.med.Amplitude(), w.med.topo.Cols, w.med.topo.Rows
}

// Reset seeds both populations at the configured density over a cleared
// field, deterministically for a given seed.
func (w *World) Reset(seed int64) {
	if seed == 0 {
		seed = w.cfg.Seed
	}
	w.rng.Reseed(seed)
	w.auto.Clear()
	w.med.Clear()
	w.generation = 0
	w.totalAnnihilated = 0
	w.totalNucleated = 0
	w.inj = &injector{}
	w.scatter(w.cfg.Params.RandomizeDensity)
	w.rebuildDisplay()
}

// Step advances the coupled system by one generation. The whole pipeline
// runs to completion before returning; steps are atomic with respect to all
// shared state.
func (w *World) Step() {
	w.auto.Step()
	w.generation++

	w.cp.rebuildSource(w.auto.matter, w.auto.anti, w.med.source)
	w.med.Integrate(w.generation)
	w.med.tickCooldowns()

	nuclei := w.det.scan(w.med, w.cp, w.cfg.Params.Nucleation, w.cfg.Params.AntimatterEnabled)
	for _, nu := range nuclei {
		w.totalNucleated += uint64(w.auto.Nucleate(nu.cells, nu.pop))
	}

	// Event order comes from map iteration; sort so the capped impulse pass
	// stays deterministic run-over-run.
	events := w.auto.events
	slices.Sort(events)
	w.totalAnnihilated += uint64(len(events))
	w.inj.apply(w.med, w.cp, events, w.generation,
		w.cfg.Params.ImpulseStrength, w.cfg.Params.MaxImpulsesPerTick)
	w.auto.events = w.auto.events[:0]

	w.rebuildDisplay()
}

// PaintCell adds or removes a single matter cell. The resulting annihilation
// pass is silent: manual draws never inject a medium impulse.
func (w *World) PaintCell(r, c int, mode PaintMode) bool {
	ok := w.auto.Paint(r, c, mode)
	if ok {
		w.rebuildDisplay()
	}
	return ok
}

// Clear empties both populations, the medium, and all counters.
func (w *World) Clear() {
	w.auto.Clear()
	w.med.Clear()
	w.generation = 0
	w.totalAnnihilated = 0
	w.totalNucleated = 0
	w.inj = &injector{}
	w.rebuildDisplay()
}

// Randomize repopulates both live sets at the given density over the
// current field. Density is clamped to [0, 1].
func (w *World) Randomize(density float64) {
	w.auto.Clear()
	w.scatter(clampFloat(density, 0, 1))
	w.rebuildDisplay()
}

// scatter fills the automaton with random disjoint matter and antimatter
// cells totalling roughly density of the grid.
func (w *World) scatter(density float64) {
	total := w.auto.topo.Count()
	for i := 0; i < total; i++ {
		roll := w.rng.Float64()
		if roll >= density {
			continue
		}
		if w.cfg.Params.AntimatterEnabled && roll >= density/2 {
			w.auto.anti[i] = struct{}{}
		} else {
			w.auto.matter[i] = struct{}{}
		}
	}
}

// SeedPattern bulk-adds coordinates to one population with the same
// semantics as nucleation: out-of-range cells wrap or drop per topology and
// the annihilation pass emits events consumed on the next Step.
func (w *World) SeedPattern(cells []Cell, pop Population) int {
	if pop == Antimatter && !w.cfg.Params.AntimatterEnabled {
		return 0
	}
	added := w.auto.Nucleate(cells, pop)
	w.rebuildDisplay()
	return added
}

// Resize changes the automaton dimensions. Cells whose coordinates remain
// within the new bounds survive; the rest are dropped. The medium is
// reallocated and zeroed.
func (w *World) Resize(rows, cols int) {
	rows = clampInt(rows, minGridDim, maxGridDim)
	cols = clampInt(cols, minGridDim, maxGridDim)
	if rows == w.cfg.Rows && cols == w.cfg.Cols {
		return
	}
	w.cfg.Rows, w.cfg.Cols = rows, cols

	topo := core.Topology{Rows: rows, Cols: cols, Wrap: w.cfg.Wrap}
	w.auto.resize(topo)
	w.rewire(topo)
}

// SetTopology switches between bounded and toroidal addressing.
func (w *World) SetTopology(wrap bool) {
	if wrap == w.cfg.Wrap {
		return
	}
	w.cfg.Wrap = wrap
	w.auto.setWrap(wrap)
	w.med.setWrap(wrap)
	w.det.setWrap(wrap)
	w.cp.auto.Wrap = wrap
	w.cp.med.Wrap = wrap
}

// SetMediumParams replaces the medium tunables, clamping every value to its
// documented range.
func (w *World) SetMediumParams(p MediumParams) {
	p = sanitizeMedium(p)
	w.cfg.Params.Medium = p
	w.med.setParams(p)
}

// SetNucleationParams replaces the nucleation tunables with clamping.
func (w *World) SetNucleationParams(p NucleationParams) {
	w.cfg.Params.Nucleation = sanitizeNucleation(p)
}

// Snapshot returns a read-only copy of the observable state.
func (w *World) Snapshot() Snapshot {
	amp := make([]float32, len(w.med.curr))
	copy(amp, w.med.curr)
	return Snapshot{
		Generation:            w.generation,
		Rows:                  w.cfg.Rows,
		Cols:                  w.cfg.Cols,
		Wrap:                  w.cfg.Wrap,
		Matter:                w.auto.Cells(Matter),
		Antimatter:            w.auto.Cells(Antimatter),
		MediumRows:            w.med.topo.Rows,
		MediumCols:            w.med.topo.Cols,
		Amplitude:             amp,
		PendingAnnihilations:  len(w.auto.events),
		ConsumedAnnihilations: w.totalAnnihilated,
		TotalNucleated:        w.totalNucleated,
		FieldEnergy:           w.med.Energy(),
	}
}

func init() {
	core.Register("dirac", func(cfg map[string]string) core.Sim {
		return NewWithConfig(FromMap(cfg))
	})
}
