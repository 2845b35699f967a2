package dirac

import (
	"math"

	"dirac-ca/internal/core"
	pkgcore "dirac-ca/pkg/core"
)

const (
	minGridDim = 8
	maxGridDim = 1024

	minMediumDim = 16
	maxMediumDim = 256

	// fieldClamp bounds every read feeding a nonlinear term.
	fieldClamp = 2.0
)

// mediumDim applies the downsampling rule to one automaton dimension: half
// resolution, bounded to [minMediumDim, maxMediumDim], never finer than the
// automaton itself.
func mediumDim(n int) int {
	d := n / 2
	if d < minMediumDim {
		d = minMediumDim
	}
	if d > maxMediumDim {
		d = maxMediumDim
	}
	if d > n {
		d = n
	}
	if d < 1 {
		d = 1
	}
	return d
}

func mediumTopology(auto core.Topology) core.Topology {
	return core.Topology{
		Rows: mediumDim(auto.Rows),
		Cols: mediumDim(auto.Cols),
		Wrap: auto.Wrap,
	}
}

// Medium is the dense damped nonlinear wave field coupled to the automaton.
// Amplitude history lives in three buffers rotated by pointer swap; all
// scratch buffers are allocated once per resize.
type Medium struct {
	topo core.Topology

	prev []float32
	curr []float32
	next []float32

	lap  []float32
	lap2 []float32

	memory   []float32
	source   []float32
	cooldown []int32
	visited  []bool

	phase   float64
	lastGen uint64
	hasGen  bool

	params MediumParams
	rng    *pkgcore.RNG
}

func newMedium(topo core.Topology, params MediumParams, rng *pkgcore.RNG) *Medium {
	total := topo.Count()
	return &Medium{
		topo:     topo,
		prev:     make([]float32, total),
		curr:     make([]float32, total),
		next:     make([]float32, total),
		lap:      make([]float32, total),
		lap2:     make([]float32, total),
		memory:   make([]float32, total),
		source:   make([]float32, total),
		cooldown: make([]int32, total),
		visited:  make([]bool, total),
		params:   params,
		rng:      rng,
	}
}

// Topology returns the medium grid addressing rules.
func (m *Medium) Topology() core.Topology { return m.topo }

// Amplitude exposes the current amplitude buffer. Callers must treat it as
// read-only.
func (m *Medium) Amplitude() []float32 { return m.curr }

// Energy returns the sum of squared amplitudes.
func (m *Medium) Energy() float64 {
	total := 0.0
	for _, u := range m.curr {
		v := float64(finite(u))
		total += v * v
	}
	return total
}

// Peak returns the largest absolute amplitude.
func (m *Medium) Peak() float64 {
	peak := 0.0
	for _, u := range m.curr {
		v := math.Abs(float64(finite(u)))
		if v > peak {
			peak = v
		}
	}
	return peak
}

func (m *Medium) setParams(p MediumParams) { m.params = p }

func (m *Medium) setWrap(wrap bool) { m.topo.Wrap = wrap }

// zeroField clears the amplitude history and the memory layer. Source,
// cooldowns and the hop phase survive; they belong to the coupling layer.
func (m *Medium) zeroField() {
	for i := range m.curr {
		m.prev[i] = 0
		m.curr[i] = 0
		m.next[i] = 0
		m.memory[i] = 0
	}
}

// Clear resets all medium state including cooldowns and the hop phase.
func (m *Medium) Clear() {
	m.zeroField()
	for i := range m.source {
		m.source[i] = 0
		m.cooldown[i] = 0
	}
	m.phase = 0
	m.lastGen = 0
	m.hasGen = false
}

// Integrate advances the field by the configured per-generation time budget
// split into equal substeps. The budget is fixed per automaton generation,
// decoupling visual refresh rate from physical determinism. If the driving
// generation counter regresses or jumps by more than one the entire field is
// reset to zero instead of attempting catch-up.
func (m *Medium) Integrate(gen uint64) {
	if m.hasGen && gen != m.lastGen+1 {
		m.zeroField()
	}
	m.lastGen = gen
	m.hasGen = true

	steps := m.params.Substeps
	if steps < 1 {
		steps = 1
	}
	h := m.params.GenerationDt / float64(steps)
	for s := 0; s < steps; s++ {
		m.substep(h)
	}
}

func (m *Medium) substep(h float64) {
	p := m.params

	// The leaky memory layer updates before the main stencil so the feedback
	// term sees this substep's input.
	r := p.MemoryRate
	for i, u := range m.curr {
		prev := float64(finite(m.memory[i]))
		m.memory[i] = float32((1-r)*prev + r*clamp64(float64(finite(u)), -fieldClamp, fieldClamp))
	}

	if p.NoiseIntensity > 0 && p.NoiseAmplitude > 0 {
		m.sprinkleNoise()
	}

	// Hop forcing is a phase accumulator, not a sine drive: every full 2π
	// crossing injects one discrete kick of the source map into u, with the
	// opposite sign into u_prev so the kick also perturbs velocity.
	m.phase += 2 * math.Pi * p.HopHz * h
	if turns := int(m.phase / (2 * math.Pi)); turns > 0 {
		m.phase -= float64(turns) * 2 * math.Pi
		k := float32(turns) * float32(p.HopStrength)
		if k != 0 {
			for i, s := range m.source {
				if s == 0 {
					continue
				}
				m.curr[i] += k * s
				m.prev[i] -= k * s
			}
		}
	}

	laplacian(m.topo, m.curr, m.lap)
	laplacian(m.topo, m.lap, m.lap2)

	gh := p.Damping * h / 2
	h2 := h * h
	velGain := 1 - gh
	denom := 1 + gh
	for i := range m.next {
		u := float64(finite(m.curr[i]))
		up := float64(finite(m.prev[i]))
		uc := clamp64(u, -fieldClamp, fieldClamp)
		mem := clamp64(float64(finite(m.memory[i])), -fieldClamp, fieldClamp)

		accel := p.WaveSpeed*float64(m.lap[i]) -
			p.Dispersion*float64(m.lap2[i]) -
			p.Nonlinearity*uc*uc*uc +
			p.MemoryCoupling*mem

		v := (2*u - up*velGain + h2*accel) / denom
		if math.IsNaN(v) || math.IsInf(v, 0) {
			v = 0
		}
		m.next[i] = float32(v)
	}

	m.prev, m.curr, m.next = m.curr, m.next, m.prev
}

// sprinkleNoise splats random signed square or disk blobs into the current
// amplitude buffer. The expected blob count scales with grid area times
// intensity; the fractional remainder fires probabilistically so low
// intensities still produce occasional blobs.
func (m *Medium) sprinkleNoise() {
	p := m.params
	expected := p.NoiseIntensity * float64(m.topo.Count()) / 4096
	count := int(expected)
	if m.rng.Float64() < expected-float64(count) {
		count++
	}
	for b := 0; b < count; b++ {
		r0 := m.rng.IntN(m.topo.Rows)
		c0 := m.rng.IntN(m.topo.Cols)
		radius := 1 + m.rng.IntN(3)
		amp := float32(p.NoiseAmplitude * (0.25 + 0.75*m.rng.Float64()))
		if m.rng.Bool() {
			amp = -amp
		}
		disk := m.rng.Bool()
		r2 := radius * radius
		for dr := -radius; dr <= radius; dr++ {
			for dc := -radius; dc <= radius; dc++ {
				if disk && dr*dr+dc*dc > r2 {
					continue
				}
				rr, cc, ok := m.topo.Resolve(r0+dr, c0+dc)
				if !ok {
					continue
				}
				m.curr[m.topo.Index(rr, cc)] += amp
			}
		}
	}
}

// tickCooldowns decrements every active per-cell cooldown by one generation.
func (m *Medium) tickCooldowns() {
	for i, c := range m.cooldown {
		if c > 0 {
			m.cooldown[i] = c - 1
		}
	}
}

// laplacian writes the 5-point discrete Laplacian of src into dst. Reads are
// scrubbed of non-finite values so a corrupted cell cannot propagate through
// the stencil; on a bounded grid missing neighbors contribute zero.
func laplacian(t core.Topology, src, dst []float32) {
	rows, cols := t.Rows, t.Cols
	for r := 0; r < rows; r++ {
		base := r * cols
		for c := 0; c < cols; c++ {
			i := base + c
			sum := -4 * finite(src[i])
			sum += sampleField(t, src, r-1, c)
			sum += sampleField(t, src, r+1, c)
			sum += sampleField(t, src, r, c-1)
			sum += sampleField(t, src, r, c+1)
			dst[i] = sum
		}
	}
}

func sampleField(t core.Topology, buf []float32, r, c int) float32 {
	rr, cc, ok := t.Resolve(r, c)
	if !ok {
		return 0
	}
	return finite(buf[rr*t.Cols+cc])
}

// finite replaces NaN and infinities with zero.
func finite(v float32) float32 {
	f := float64(v)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return v
}

func clamp64(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
