package dirac

import (
	"math"
	"testing"

	"dirac-ca/internal/core"
	pkgcore "dirac-ca/pkg/core"
)

func quietMediumParams() MediumParams {
	p := DefaultConfig().Params.Medium
	p.HopHz = 0
	p.HopStrength = 0
	p.NoiseIntensity = 0
	p.MemoryCoupling = 0
	p.MemoryRate = 0
	p.Nonlinearity = 0
	p.Dispersion = 0
	return p
}

func testMedium(p MediumParams) *Medium {
	topo := core.Topology{Rows: 32, Cols: 32, Wrap: true}
	return newMedium(topo, p, pkgcore.NewRNG(1))
}

// seedBump writes a smooth stationary bump into the field.
func seedBump(m *Medium, r0, c0 int) {
	for dr := -2; dr <= 2; dr++ {
		for dc := -2; dc <= 2; dc++ {
			rr, cc, ok := m.topo.Resolve(r0+dr, c0+dc)
			if !ok {
				continue
			}
			d2 := float64(dr*dr + dc*dc)
			m.curr[m.topo.Index(rr, cc)] = float32(math.Exp(-d2 / 3))
		}
	}
	copy(m.prev, m.curr)
}

func TestEnergyDecaysWithDamping(t *testing.T) {
	p := quietMediumParams()
	p.Damping = 2.0
	p.WaveSpeed = 0.15
	m := testMedium(p)
	seedBump(m, 16, 16)

	last := m.Energy()
	if last <= 0 {
		t.Fatal("initial field must carry energy")
	}
	for gen := uint64(1); gen <= 30; gen++ {
		m.Integrate(gen)
		e := m.Energy()
		if e > last+1e-6 {
			t.Fatalf("generation %d: energy rose from %g to %g with damping and no forcing", gen, last, e)
		}
		last = e
	}
}

func TestNonFiniteValuesAreScrubbed(t *testing.T) {
	p := quietMediumParams()
	p.WaveSpeed = 0.3
	p.Nonlinearity = 0.5
	m := testMedium(p)
	seedBump(m, 10, 10)
	m.curr[5] = float32(math.NaN())
	m.curr[6] = float32(math.Inf(1))
	m.prev[7] = float32(math.Inf(-1))

	for gen := uint64(1); gen <= 3; gen++ {
		m.Integrate(gen)
	}
	for i, u := range m.curr {
		f := float64(u)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			t.Fatalf("cell %d is non-finite after integration: %v", i, u)
		}
	}
}

func TestGenerationSkipResetsField(t *testing.T) {
	p := quietMediumParams()
	p.WaveSpeed = 0.3
	p.Damping = 0.05
	m := testMedium(p)
	seedBump(m, 16, 16)

	m.Integrate(1)
	if m.Energy() <= 0 {
		t.Fatal("field should still carry energy after one generation")
	}

	// Jump by more than one: the field resets to zero rather than catching up.
	m.Integrate(5)
	if e := m.Energy(); e != 0 {
		t.Fatalf("generation jump should zero the field, energy=%g", e)
	}

	seedBump(m, 16, 16)
	m.Integrate(6)
	if m.Energy() <= 0 {
		t.Fatal("successor generation should integrate normally")
	}

	// Regression resets too.
	m.Integrate(2)
	if e := m.Energy(); e != 0 {
		t.Fatalf("generation regression should zero the field, energy=%g", e)
	}
}

func TestHopForcingInjectsSource(t *testing.T) {
	p := quietMediumParams()
	p.WaveSpeed = 0.2
	p.Damping = 0.05
	// One full phase turn per substep: every substep fires a hop.
	p.HopHz = 16
	p.HopStrength = 1
	m := testMedium(p)
	m.source[m.topo.Index(16, 16)] = 0.5

	m.Integrate(1)
	if m.Energy() == 0 {
		t.Fatal("hop forcing over a nonzero source must energize the field")
	}
}

func TestHopFiresOncePerCompletedTurn(t *testing.T) {
	run := func(hz float64) float32 {
		p := quietMediumParams()
		p.WaveSpeed = 0
		p.Damping = 0
		p.HopHz = hz
		p.HopStrength = 1
		p.Substeps = 1
		p.GenerationDt = 1
		m := testMedium(p)
		m.source[0] = 1
		m.Integrate(1)
		return m.curr[0]
	}

	one := run(1)
	if one == 0 {
		t.Fatal("a single completed turn must kick the field")
	}
	// Four turns complete within the single substep; each contributes a kick.
	if four := run(4); four != 4*one {
		t.Fatalf("four completed turns kicked %g, want %g", four, 4*one)
	}
}

func TestHopPhaseBelowThresholdIsSilent(t *testing.T) {
	p := quietMediumParams()
	p.HopHz = 0.1 // phase never completes a turn within one generation
	p.HopStrength = 1
	m := testMedium(p)
	m.source[0] = 1

	m.Integrate(1)
	if e := m.Energy(); e != 0 {
		t.Fatalf("no hop should fire before the phase completes a turn, energy=%g", e)
	}
}

func TestAmbientNoisePerturbsField(t *testing.T) {
	p := quietMediumParams()
	p.NoiseIntensity = 1
	p.NoiseAmplitude = 0.5
	m := testMedium(p)

	for gen := uint64(1); gen <= 5; gen++ {
		m.Integrate(gen)
	}
	if m.Energy() == 0 {
		t.Fatal("ambient noise should perturb an empty field")
	}
}

func TestMediumDownsampling(t *testing.T) {
	cases := []struct {
		auto int
		want int
	}{
		{8, 8},      // tiny grids map 1:1
		{24, 16},    // floor of the bounded range
		{192, 96},   // half resolution
		{1024, 256}, // ceiling of the bounded range
	}
	for _, tc := range cases {
		if got := mediumDim(tc.auto); got != tc.want {
			t.Fatalf("mediumDim(%d) = %d, want %d", tc.auto, got, tc.want)
		}
	}
}
