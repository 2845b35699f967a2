package core

import "testing"

func TestTopologyResolveToroidal(t *testing.T) {
	topo := Topology{Rows: 5, Cols: 7, Wrap: true}

	cases := []struct {
		r, c   int
		wr, wc int
	}{
		{-1, -1, 4, 6},
		{5, 7, 0, 0},
		{2, 3, 2, 3},
		{-6, 15, 4, 1},
	}
	for _, tc := range cases {
		r, c, ok := topo.Resolve(tc.r, tc.c)
		if !ok {
			t.Fatalf("toroidal resolve (%d,%d) should succeed", tc.r, tc.c)
		}
		if r != tc.wr || c != tc.wc {
			t.Fatalf("resolve (%d,%d) = (%d,%d), want (%d,%d)", tc.r, tc.c, r, c, tc.wr, tc.wc)
		}
	}
}

func TestTopologyResolveBounded(t *testing.T) {
	topo := Topology{Rows: 5, Cols: 7, Wrap: false}

	if _, _, ok := topo.Resolve(-1, 0); ok {
		t.Fatal("bounded resolve must reject negative rows")
	}
	if _, _, ok := topo.Resolve(0, 7); ok {
		t.Fatal("bounded resolve must reject columns past the edge")
	}
	r, c, ok := topo.Resolve(4, 6)
	if !ok || r != 4 || c != 6 {
		t.Fatalf("in-range resolve failed: (%d,%d) ok=%v", r, c, ok)
	}
}

func TestTopologyIndexRoundTrip(t *testing.T) {
	topo := Topology{Rows: 9, Cols: 13}
	for r := 0; r < topo.Rows; r++ {
		for c := 0; c < topo.Cols; c++ {
			idx := topo.Index(r, c)
			rr, cc := topo.Coords(idx)
			if rr != r || cc != c {
				t.Fatalf("round trip (%d,%d) -> %d -> (%d,%d)", r, c, idx, rr, cc)
			}
		}
	}
}
