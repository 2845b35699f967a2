package dirac

// injector converts annihilation events into localized medium impulses: a
// positive kick at the mapped cell balanced by equal negative fractions on
// its direct neighbors, written oppositely into u and u_prev so the impulse
// carries forward velocity. A processed-generation token guarantees each
// generation's event list is consumed exactly once.
type injector struct {
	processed    uint64
	hasProcessed bool
}

// apply injects up to maxEvents pending annihilation coordinates into the
// medium and returns how many were applied.
func (in *injector) apply(m *Medium, cp *coupler, events []int, gen uint64, strength float64, maxEvents int) int {
	if in.hasProcessed && in.processed == gen {
		return 0
	}
	in.processed = gen
	in.hasProcessed = true

	if strength <= 0 || len(events) == 0 {
		return 0
	}
	applied := 0
	for _, key := range events {
		if applied >= maxEvents {
			break
		}
		idx := cp.mapKey(key)
		r, c := m.topo.Coords(idx)

		var neighbors [4]int
		count := 0
		for _, off := range [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
			rr, cc, ok := m.topo.Resolve(r+off[0], c+off[1])
			if !ok {
				continue
			}
			neighbors[count] = rr*m.topo.Cols + cc
			count++
		}

		amp := float32(strength)
		m.curr[idx] += amp
		m.prev[idx] -= amp
		if count > 0 {
			// Splitting the full amplitude across the surviving neighbors
			// keeps the impulse net-zero even on a bounded edge.
			frac := amp / float32(count)
			for i := 0; i < count; i++ {
				n := neighbors[i]
				m.curr[n] -= frac
				m.prev[n] += frac
			}
		}
		applied++
	}
	return applied
}
