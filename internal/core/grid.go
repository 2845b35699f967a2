package core

// Topology describes the addressing rules of a rows-by-cols grid. When Wrap
// is true coordinates wrap toroidally; on a bounded grid out-of-range
// coordinates do not resolve to any cell.
type Topology struct {
	Rows int
	Cols int
	Wrap bool
}

// Count returns the number of cells in the grid.
func (t Topology) Count() int { return t.Rows * t.Cols }

// Index returns the linear row-major index for in-range coordinates (r, c).
func (t Topology) Index(r, c int) int { return r*t.Cols + c }

// Coords inverts Index.
func (t Topology) Coords(idx int) (int, int) { return idx / t.Cols, idx % t.Cols }

// Contains reports whether (r, c) addresses a cell without wrapping.
func (t Topology) Contains(r, c int) bool {
	return r >= 0 && r < t.Rows && c >= 0 && c < t.Cols
}

// Resolve maps (r, c) onto the grid. Under toroidal wrapping it always
// succeeds; on a bounded grid ok reports whether the coordinates are in
// range.
func (t Topology) Resolve(r, c int) (rr, cc int, ok bool) {
	if t.Wrap {
		r = (r%t.Rows + t.Rows) % t.Rows
		c = (c%t.Cols + t.Cols) % t.Cols
		return r, c, true
	}
	if !t.Contains(r, c) {
		return 0, 0, false
	}
	return r, c, true
}
