package dirac

import "dirac-ca/internal/core"

// coupler maps automaton coordinates onto the lower-resolution medium grid
// and back, and rebuilds the signed source-density buffer each generation.
type coupler struct {
	auto core.Topology
	med  core.Topology

	scratch []float32
}

func newCoupler(auto, med core.Topology) *coupler {
	return &coupler{auto: auto, med: med, scratch: make([]float32, med.Count())}
}

// mapKey maps an automaton cell key to the nearest medium cell index.
func (cp *coupler) mapKey(key int) int {
	r, c := cp.auto.Coords(key)
	return cp.mapCell(r, c)
}

func (cp *coupler) mapCell(r, c int) int {
	mr := r * cp.med.Rows / cp.auto.Rows
	mc := c * cp.med.Cols / cp.auto.Cols
	if mr >= cp.med.Rows {
		mr = cp.med.Rows - 1
	}
	if mc >= cp.med.Cols {
		mc = cp.med.Cols - 1
	}
	return mr*cp.med.Cols + mc
}

// mapBack maps a medium cell index to the automaton cell at the center of
// the region it covers.
func (cp *coupler) mapBack(idx int) Cell {
	mr, mc := cp.med.Coords(idx)
	r := (2*mr + 1) * cp.auto.Rows / (2 * cp.med.Rows)
	c := (2*mc + 1) * cp.auto.Cols / (2 * cp.med.Cols)
	if r >= cp.auto.Rows {
		r = cp.auto.Rows - 1
	}
	if c >= cp.auto.Cols {
		c = cp.auto.Cols - 1
	}
	return Cell{R: r, C: c}
}

// rebuildSource accumulates a signed unit contribution per live cell (+1
// matter, -1 antimatter) into the medium cell it maps onto, normalized by
// the cell-area ratio so amplitude is resolution-independent, then applies
// one box blur pass so multi-cell structures emit broader wavefronts than
// single cells.
func (cp *coupler) rebuildSource(matter, anti cellSet, dst []float32) {
	for i := range dst {
		dst[i] = 0
	}
	unit := float32(cp.med.Count()) / float32(cp.auto.Count())
	for key := range matter {
		dst[cp.mapKey(key)] += unit
	}
	for key := range anti {
		dst[cp.mapKey(key)] -= unit
	}
	boxBlur(cp.med, dst, cp.scratch)
}

// boxBlur replaces buf with its 3x3 box average. Topology-aware: wrapped
// neighbors participate, missing neighbors on a bounded grid contribute
// zero.
func boxBlur(t core.Topology, buf, scratch []float32) {
	rows, cols := t.Rows, t.Cols
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			var sum float32
			for dr := -1; dr <= 1; dr++ {
				for dc := -1; dc <= 1; dc++ {
					rr, cc, ok := t.Resolve(r+dr, c+dc)
					if !ok {
						continue
					}
					sum += buf[rr*cols+cc]
				}
			}
			scratch[r*cols+c] = sum / 9
		}
	}
	copy(buf, scratch)
}
