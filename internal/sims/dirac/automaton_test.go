package dirac

import (
	"sort"
	"testing"

	"dirac-ca/internal/core"
)

func sortCells(cells []Cell) []Cell {
	out := append([]Cell(nil), cells...)
	sort.Slice(out, func(i, j int) bool {
		if out[i].R != out[j].R {
			return out[i].R < out[j].R
		}
		return out[i].C < out[j].C
	})
	return out
}

func assertCells(t *testing.T, a *Automaton, pop Population, want []Cell) {
	t.Helper()
	got := sortCells(a.Cells(pop))
	want = sortCells(want)
	if len(got) != len(want) {
		t.Fatalf("population %d: got %d cells %v, want %d %v", pop, len(got), got, len(want), want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("population %d: got %v, want %v", pop, got, want)
		}
	}
}

func TestBlinkerOscillation(t *testing.T) {
	for _, wrap := range []bool{false, true} {
		a := newAutomaton(core.Topology{Rows: 7, Cols: 7, Wrap: wrap})
		horizontal := []Cell{{R: 3, C: 2}, {R: 3, C: 3}, {R: 3, C: 4}}
		vertical := []Cell{{R: 2, C: 3}, {R: 3, C: 3}, {R: 4, C: 3}}
		a.Nucleate(horizontal, Matter)

		a.Step()
		assertCells(t, a, Matter, vertical)

		a.Step()
		assertCells(t, a, Matter, horizontal)
	}
}

func TestBlinkerBothPopulations(t *testing.T) {
	a := newAutomaton(core.Topology{Rows: 16, Cols: 16, Wrap: true})
	a.Nucleate([]Cell{{R: 3, C: 2}, {R: 3, C: 3}, {R: 3, C: 4}}, Matter)
	a.Nucleate([]Cell{{R: 10, C: 9}, {R: 10, C: 10}, {R: 10, C: 11}}, Antimatter)

	a.Step()
	a.Step()

	assertCells(t, a, Matter, []Cell{{R: 3, C: 2}, {R: 3, C: 3}, {R: 3, C: 4}})
	assertCells(t, a, Antimatter, []Cell{{R: 10, C: 9}, {R: 10, C: 10}, {R: 10, C: 11}})
}

func TestNucleateOverlapAnnihilates(t *testing.T) {
	a := newAutomaton(core.Topology{Rows: 8, Cols: 8, Wrap: false})
	a.Nucleate([]Cell{{R: 2, C: 2}}, Matter)
	a.Nucleate([]Cell{{R: 2, C: 2}}, Antimatter)

	if a.Count(Matter) != 0 || a.Count(Antimatter) != 0 {
		t.Fatalf("overlap should annihilate, got matter=%d anti=%d", a.Count(Matter), a.Count(Antimatter))
	}
	if len(a.events) != 1 {
		t.Fatalf("expected exactly one annihilation event, got %d", len(a.events))
	}
	r, c := a.topo.Coords(a.events[0])
	if r != 2 || c != 2 {
		t.Fatalf("event at (%d,%d), want (2,2)", r, c)
	}
}

func TestPaintAnnihilationIsSilent(t *testing.T) {
	a := newAutomaton(core.Topology{Rows: 8, Cols: 8, Wrap: false})
	a.Nucleate([]Cell{{R: 4, C: 4}}, Antimatter)
	a.events = a.events[:0]

	if !a.Paint(4, 4, PaintDraw) {
		t.Fatal("in-bounds paint should succeed")
	}
	if a.Count(Matter) != 0 || a.Count(Antimatter) != 0 {
		t.Fatalf("paint onto antimatter should annihilate, got matter=%d anti=%d",
			a.Count(Matter), a.Count(Antimatter))
	}
	if len(a.events) != 0 {
		t.Fatalf("paint-triggered annihilation must not emit events, got %d", len(a.events))
	}
}

func TestPaintOutOfRangeDropped(t *testing.T) {
	a := newAutomaton(core.Topology{Rows: 8, Cols: 8, Wrap: true})
	if a.Paint(-1, 3, PaintDraw) {
		t.Fatal("paint never wraps; out-of-range coordinates are dropped")
	}
	if a.Count(Matter) != 0 {
		t.Fatalf("dropped paint should not add cells, got %d", a.Count(Matter))
	}
}

func TestNucleateWrapsOrDrops(t *testing.T) {
	wrapped := newAutomaton(core.Topology{Rows: 8, Cols: 8, Wrap: true})
	if n := wrapped.Nucleate([]Cell{{R: -1, C: 9}}, Matter); n != 1 {
		t.Fatalf("toroidal nucleate should wrap, added %d", n)
	}
	if !wrapped.Alive(7, 1, Matter) {
		t.Fatal("(-1,9) should wrap to (7,1)")
	}

	bounded := newAutomaton(core.Topology{Rows: 8, Cols: 8, Wrap: false})
	if n := bounded.Nucleate([]Cell{{R: -1, C: 9}}, Matter); n != 0 {
		t.Fatalf("bounded nucleate should drop out-of-range cells, added %d", n)
	}
}

func TestSetsStayDisjoint(t *testing.T) {
	a := newAutomaton(core.Topology{Rows: 24, Cols: 24, Wrap: true})
	block := func(r0, c0, size int) []Cell {
		var cells []Cell
		for r := 0; r < size; r++ {
			for c := 0; c < size; c++ {
				cells = append(cells, Cell{R: r0 + r, C: c0 + c})
			}
		}
		return cells
	}
	a.Nucleate(block(4, 4, 5), Matter)
	a.Nucleate(block(6, 6, 5), Antimatter)

	check := func() {
		for key := range a.matter {
			if _, ok := a.anti[key]; ok {
				r, c := a.topo.Coords(key)
				t.Fatalf("cell (%d,%d) is live in both populations", r, c)
			}
		}
	}
	check()
	for i := 0; i < 12; i++ {
		a.Step()
		check()
		total := a.topo.Count()
		if a.Count(Matter) > total || a.Count(Antimatter) > total {
			t.Fatalf("population exceeds grid: matter=%d anti=%d total=%d",
				a.Count(Matter), a.Count(Antimatter), total)
		}
	}
}
