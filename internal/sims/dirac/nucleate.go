package dirac

import (
	"math"

	"dirac-ca/internal/core"
)

// scanStride is the rotating-offset advance between scans. Prime and large
// so consecutive scans start from unrelated positions and no grid region is
// structurally favored.
const scanStride = 7919

// nucleus is one pending batch of automaton cells for a single population.
type nucleus struct {
	pop   Population
	cells []Cell
}

// detector finds threshold-crossing connected regions of the smoothed
// medium and turns them into automaton cell batches.
type detector struct {
	med core.Topology

	blur    []float32
	scratch []float32
	stack   []int
	region  []int

	offset int
}

func newDetector(med core.Topology) *detector {
	total := med.Count()
	return &detector{
		med:     med,
		blur:    make([]float32, total),
		scratch: make([]float32, total),
	}
}

func (d *detector) setWrap(wrap bool) { d.med.Wrap = wrap }

// scan walks the smoothed amplitude buffer from a rotating start offset and
// flood-fills every unvisited, cooldown-expired cell beyond the signed
// threshold into a maximal connected same-sign region. Each region receives
// a cooldown on all member cells and emits either a 2x2 stable block (small
// overshoot) or a filled disk (large overshoot) centered on the mapped peak.
// At most p.MaxPerScan nuclei come out of one pass.
func (d *detector) scan(m *Medium, cp *coupler, p NucleationParams, antiEnabled bool) []nucleus {
	if !p.Enabled {
		return nil
	}
	total := d.med.Count()
	if total == 0 || len(m.curr) != total {
		return nil
	}

	// Two blur passes over a copy of the amplitude buffer suppress speckle
	// that would otherwise nucleate single-cell noise.
	for i, u := range m.curr {
		d.blur[i] = finite(u)
	}
	boxBlur(d.med, d.blur, d.scratch)
	boxBlur(d.med, d.blur, d.scratch)

	visited := m.visited
	for i := range visited {
		visited[i] = false
	}

	start := d.offset % total
	d.offset = (d.offset + scanStride) % total

	tau := float32(p.Threshold)
	var out []nucleus
	for n := 0; n < total && len(out) < p.MaxPerScan; n++ {
		idx := start + n
		if idx >= total {
			idx -= total
		}
		if visited[idx] {
			continue
		}
		if m.cooldown[idx] > 0 {
			visited[idx] = true
			continue
		}
		v := d.blur[idx]
		if v < tau && v > -tau {
			continue
		}

		sign := float32(1)
		if v < 0 {
			sign = -1
		}
		peakIdx, peakVal := idx, v

		d.stack = append(d.stack[:0], idx)
		d.region = d.region[:0]
		visited[idx] = true
		for len(d.stack) > 0 {
			j := d.stack[len(d.stack)-1]
			d.stack = d.stack[:len(d.stack)-1]
			d.region = append(d.region, j)
			if sign*d.blur[j] > sign*peakVal {
				peakIdx, peakVal = j, d.blur[j]
			}
			jr, jc := d.med.Coords(j)
			d.grow(jr-1, jc, sign, tau, visited, m.cooldown)
			d.grow(jr+1, jc, sign, tau, visited, m.cooldown)
			d.grow(jr, jc-1, sign, tau, visited, m.cooldown)
			d.grow(jr, jc+1, sign, tau, visited, m.cooldown)
		}

		// A fixed-length cooldown on every member cell keeps the region from
		// refiring while it is still hot, independent of generation length.
		for _, j := range d.region {
			m.cooldown[j] = int32(p.Cooldown)
		}

		pop := Matter
		if sign < 0 {
			pop = Antimatter
			if !antiEnabled {
				continue
			}
		}

		peak := cp.mapBack(peakIdx)
		overshoot := float64(sign*peakVal) - p.Threshold
		if overshoot < 0 {
			overshoot = 0
		}
		radius := p.RadiusScale * math.Sqrt(overshoot/p.Threshold)
		if radius > p.MaxRadius {
			radius = p.MaxRadius
		}

		var cells []Cell
		if radius < 2 {
			cells = []Cell{
				{R: peak.R, C: peak.C},
				{R: peak.R, C: peak.C + 1},
				{R: peak.R + 1, C: peak.C},
				{R: peak.R + 1, C: peak.C + 1},
			}
		} else {
			cells = diskCells(peak, int(radius))
		}
		out = append(out, nucleus{pop: pop, cells: cells})
	}
	return out
}

// grow pushes a 4-connected neighbor onto the flood-fill stack if it is
// unvisited, not under cooldown, and at-or-beyond the signed threshold.
func (d *detector) grow(r, c int, sign, tau float32, visited []bool, cooldown []int32) {
	rr, cc, ok := d.med.Resolve(r, c)
	if !ok {
		return
	}
	j := rr*d.med.Cols + cc
	if visited[j] || cooldown[j] > 0 {
		return
	}
	if sign*d.blur[j] < tau {
		return
	}
	visited[j] = true
	d.stack = append(d.stack, j)
}

// diskCells rasterizes a filled disk of automaton coordinates around the
// center. Coordinates may be out of range; Nucleate wraps or drops them.
func diskCells(center Cell, radius int) []Cell {
	if radius < 1 {
		radius = 1
	}
	r2 := radius * radius
	cells := make([]Cell, 0, (2*radius+1)*(2*radius+1))
	for dr := -radius; dr <= radius; dr++ {
		for dc := -radius; dc <= radius; dc++ {
			if dr*dr+dc*dc > r2 {
				continue
			}
			cells = append(cells, Cell{R: center.R + dr, C: center.C + dc})
		}
	}
	return cells
}
