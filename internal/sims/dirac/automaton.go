package dirac

import "dirac-ca/internal/core"

// Population selects one of the two automaton species.
type Population uint8

const (
	// Matter is the positive-sign population.
	Matter Population = iota
	// Antimatter is the negative-sign population.
	Antimatter
)

// PaintMode selects what PaintCell does to the matter set.
type PaintMode uint8

const (
	// PaintDraw adds the cell to the matter population.
	PaintDraw PaintMode = iota
	// PaintErase removes the cell from the matter population.
	PaintErase
)

// Cell is an automaton coordinate.
type Cell struct {
	R int
	C int
}

type cellSet map[int]struct{}

// Automaton owns the two sparse live-cell sets and steps the life rule for
// both populations. After every public mutation the annihilation pass
// restores the invariant that no cell key belongs to both sets.
type Automaton struct {
	topo core.Topology

	matter cellSet
	anti   cellSet

	// counts is scratch for neighbor tallies, reused across steps.
	counts map[int]uint8

	// events collects cell keys annihilated with emission requested. The
	// world drains it once per generation.
	events []int
}

func newAutomaton(topo core.Topology) *Automaton {
	return &Automaton{
		topo:   topo,
		matter: cellSet{},
		anti:   cellSet{},
		counts: map[int]uint8{},
	}
}

// Topology returns the automaton addressing rules.
func (a *Automaton) Topology() core.Topology { return a.topo }

// Count returns the live-cell count of the given population.
func (a *Automaton) Count(pop Population) int {
	if pop == Antimatter {
		return len(a.anti)
	}
	return len(a.matter)
}

// Alive reports whether (r, c) is live in the given population.
func (a *Automaton) Alive(r, c int, pop Population) bool {
	if !a.topo.Contains(r, c) {
		return false
	}
	key := a.topo.Index(r, c)
	if pop == Antimatter {
		_, ok := a.anti[key]
		return ok
	}
	_, ok := a.matter[key]
	return ok
}

// Cells returns a copy of the live coordinates of the given population.
func (a *Automaton) Cells(pop Population) []Cell {
	set := a.matter
	if pop == Antimatter {
		set = a.anti
	}
	out := make([]Cell, 0, len(set))
	for key := range set {
		r, c := a.topo.Coords(key)
		out = append(out, Cell{R: r, C: c})
	}
	return out
}

// Step advances both populations by one generation of the birth/survival
// rule, then runs the annihilation pass with event emission.
func (a *Automaton) Step() {
	a.matter = a.evolve(a.matter)
	a.anti = a.evolve(a.anti)
	a.annihilate(true)
}

// evolve runs the classic rule on one population: a live cell survives with
// 2-3 same-population neighbors, a dead cell is born with exactly 3. The
// sparse neighbor tally only visits cells adjacent to live ones.
func (a *Automaton) evolve(cur cellSet) cellSet {
	counts := a.counts
	clear(counts)
	for key := range cur {
		r, c := a.topo.Coords(key)
		for dr := -1; dr <= 1; dr++ {
			for dc := -1; dc <= 1; dc++ {
				if dr == 0 && dc == 0 {
					continue
				}
				nr, nc, ok := a.topo.Resolve(r+dr, c+dc)
				if !ok {
					continue
				}
				counts[a.topo.Index(nr, nc)]++
			}
		}
	}
	next := make(cellSet, len(cur))
	for key, n := range counts {
		switch n {
		case 3:
			next[key] = struct{}{}
		case 2:
			if _, alive := cur[key]; alive {
				next[key] = struct{}{}
			}
		}
	}
	return next
}

// annihilate deletes every key common to both sets. It iterates the smaller
// set and probes the larger, bounding cost by min(|matter|, |anti|). When
// emit is set each removed key is appended to the pending event list.
func (a *Automaton) annihilate(emit bool) {
	small, large := a.matter, a.anti
	if len(large) < len(small) {
		small, large = large, small
	}
	for key := range small {
		if _, ok := large[key]; !ok {
			continue
		}
		delete(small, key)
		delete(large, key)
		if emit {
			a.events = append(a.events, key)
		}
	}
}

// Paint adds or removes a single matter cell. Out-of-range coordinates are
// dropped. Annihilation runs without event emission: a manual draw never
// injects a medium impulse.
func (a *Automaton) Paint(r, c int, mode PaintMode) bool {
	if !a.topo.Contains(r, c) {
		return false
	}
	key := a.topo.Index(r, c)
	if mode == PaintErase {
		delete(a.matter, key)
		return true
	}
	a.matter[key] = struct{}{}
	a.annihilate(false)
	return true
}

// Nucleate bulk-adds coordinates to the target population, wrapping or
// dropping them per the topology, then runs annihilation with event
// emission. It returns the number of coordinates that landed on the grid.
func (a *Automaton) Nucleate(cells []Cell, pop Population) int {
	target := a.matter
	if pop == Antimatter {
		target = a.anti
	}
	added := 0
	for _, cell := range cells {
		r, c, ok := a.topo.Resolve(cell.R, cell.C)
		if !ok {
			continue
		}
		target[a.topo.Index(r, c)] = struct{}{}
		added++
	}
	if added > 0 {
		a.annihilate(true)
	}
	return added
}

// Clear empties both populations and the pending event list.
func (a *Automaton) Clear() {
	clear(a.matter)
	clear(a.anti)
	a.events = a.events[:0]
}

// setWrap switches between bounded and toroidal neighbor resolution.
func (a *Automaton) setWrap(wrap bool) { a.topo.Wrap = wrap }

// resize re-keys every surviving cell into the new bounds and drops the
// rest. Shrinking loses cells by design.
func (a *Automaton) resize(topo core.Topology) {
	old := a.topo
	a.topo = topo
	a.matter = rekey(a.matter, old, topo)
	a.anti = rekey(a.anti, old, topo)
	a.events = a.events[:0]
}

func rekey(set cellSet, old, next core.Topology) cellSet {
	out := make(cellSet, len(set))
	for key := range set {
		r, c := old.Coords(key)
		if !next.Contains(r, c) {
			continue
		}
		out[next.Index(r, c)] = struct{}{}
	}
	return out
}
