package dirac

import (
	"reflect"
	"testing"

	"dirac-ca/internal/core"
	pkgcore "dirac-ca/pkg/core"
)

func detectorFixture(wrap bool) (*Medium, *coupler, *detector) {
	auto := core.Topology{Rows: 64, Cols: 64, Wrap: wrap}
	med := mediumTopology(auto)
	m := newMedium(med, quietMediumParams(), pkgcore.NewRNG(1))
	return m, newCoupler(auto, med), newDetector(med)
}

func defaultNucleation() NucleationParams {
	return NucleationParams{
		Enabled:     true,
		Threshold:   0.3,
		Cooldown:    5,
		MaxPerScan:  8,
		RadiusScale: 2.5,
		MaxRadius:   6,
	}
}

// hotBlock writes a uniform block into the amplitude buffer; large enough to
// survive the detector's two blur passes.
func hotBlock(m *Medium, r0, c0, size int, value float32) {
	for dr := 0; dr < size; dr++ {
		for dc := 0; dc < size; dc++ {
			rr, cc, ok := m.topo.Resolve(r0+dr, c0+dc)
			if !ok {
				continue
			}
			m.curr[m.topo.Index(rr, cc)] = value
		}
	}
}

func TestScanEmitsMatterNucleus(t *testing.T) {
	m, cp, d := detectorFixture(true)
	hotBlock(m, 12, 12, 6, 1.0)

	nuclei := d.scan(m, cp, defaultNucleation(), true)
	if len(nuclei) != 1 {
		t.Fatalf("expected one nucleus, got %d", len(nuclei))
	}
	if nuclei[0].pop != Matter {
		t.Fatal("positive region should nucleate matter")
	}
	if len(nuclei[0].cells) == 0 {
		t.Fatal("nucleus must carry cells")
	}
}

func TestScanEmitsAntimatterNucleus(t *testing.T) {
	m, cp, d := detectorFixture(true)
	hotBlock(m, 12, 12, 6, -1.0)

	nuclei := d.scan(m, cp, defaultNucleation(), true)
	if len(nuclei) != 1 || nuclei[0].pop != Antimatter {
		t.Fatalf("negative region should nucleate antimatter, got %v", nuclei)
	}
}

func TestScanSkipsAntimatterWhenDisabled(t *testing.T) {
	m, cp, d := detectorFixture(true)
	hotBlock(m, 12, 12, 6, -1.0)

	nuclei := d.scan(m, cp, defaultNucleation(), false)
	if len(nuclei) != 0 {
		t.Fatalf("disabled antimatter should suppress negative nuclei, got %d", len(nuclei))
	}
}

func TestScanDeterministic(t *testing.T) {
	m, cp, d := detectorFixture(true)
	hotBlock(m, 4, 4, 5, 0.9)
	hotBlock(m, 20, 18, 5, -0.8)

	run := func() []nucleus {
		d.offset = 0
		for i := range m.cooldown {
			m.cooldown[i] = 0
		}
		return d.scan(m, cp, defaultNucleation(), true)
	}

	first := run()
	second := run()
	if len(first) == 0 {
		t.Fatal("fixture should produce nuclei")
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("scan with identical field and offset diverged:\n%v\n%v", first, second)
	}
}

func TestCooldownSuppressesRefire(t *testing.T) {
	m, cp, d := detectorFixture(true)
	hotBlock(m, 12, 12, 6, 1.0)
	p := defaultNucleation()

	if nuclei := d.scan(m, cp, p, true); len(nuclei) != 1 {
		t.Fatalf("first scan should fire, got %d nuclei", len(nuclei))
	}

	// The region stays above threshold, but every member cell is cooling.
	for tick := 0; tick < p.Cooldown; tick++ {
		if nuclei := d.scan(m, cp, p, true); len(nuclei) != 0 {
			t.Fatalf("scan during cooldown tick %d should be silent, got %d nuclei", tick, len(nuclei))
		}
		m.tickCooldowns()
	}

	if nuclei := d.scan(m, cp, p, true); len(nuclei) != 1 {
		t.Fatal("expired cooldown should allow the region to fire again")
	}
}

func TestScanRespectsPerScanCap(t *testing.T) {
	m, cp, d := detectorFixture(true)
	// Four well-separated hot regions.
	hotBlock(m, 2, 2, 5, 1.0)
	hotBlock(m, 2, 20, 5, 1.0)
	hotBlock(m, 20, 2, 5, 1.0)
	hotBlock(m, 20, 20, 5, 1.0)

	p := defaultNucleation()
	p.MaxPerScan = 2
	if nuclei := d.scan(m, cp, p, true); len(nuclei) != 2 {
		t.Fatalf("cap of 2 should bound nuclei per scan, got %d", len(nuclei))
	}
}

func TestScanDisabled(t *testing.T) {
	m, cp, d := detectorFixture(true)
	hotBlock(m, 12, 12, 6, 1.0)

	p := defaultNucleation()
	p.Enabled = false
	if nuclei := d.scan(m, cp, p, true); nuclei != nil {
		t.Fatalf("disabled detector must not scan, got %v", nuclei)
	}
}

func TestSmallOvershootEmitsBlock(t *testing.T) {
	m, cp, d := detectorFixture(true)
	// Barely above threshold: overshoot wants the fixed 2x2 block.
	hotBlock(m, 12, 12, 6, 0.35)

	p := defaultNucleation()
	nuclei := d.scan(m, cp, p, true)
	if len(nuclei) != 1 {
		t.Fatalf("expected one nucleus, got %d", len(nuclei))
	}
	if len(nuclei[0].cells) != 4 {
		t.Fatalf("small overshoot should emit a 2x2 block, got %d cells", len(nuclei[0].cells))
	}
}

func TestLargeOvershootEmitsDisk(t *testing.T) {
	m, cp, d := detectorFixture(true)
	hotBlock(m, 12, 12, 8, 1.8)

	p := defaultNucleation()
	nuclei := d.scan(m, cp, p, true)
	if len(nuclei) != 1 {
		t.Fatalf("expected one nucleus, got %d", len(nuclei))
	}
	if len(nuclei[0].cells) <= 4 {
		t.Fatalf("large overshoot should emit a filled disk, got %d cells", len(nuclei[0].cells))
	}
}
