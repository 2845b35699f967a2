package main

import (
	"testing"

	"dirac-ca/internal/sims/dirac"
)

func testTuner() *tuner {
	cfg := dirac.DefaultConfig()
	cfg.Rows = 16
	cfg.Cols = 16
	return newTuner(dirac.NewWithConfig(cfg))
}

func TestTunerWalksEveryControl(t *testing.T) {
	tu := testTuner()
	if len(tu.controls) == 0 {
		t.Fatal("world must expose adjustable controls")
	}
	for range tu.controls {
		ctrl, before, ok := tu.current()
		if !ok {
			t.Fatalf("control %q does not resolve to a live value", tu.controls[tu.sel].Key)
		}
		tu.adjust(1)
		_, after, _ := tu.current()
		if after == before {
			t.Fatalf("adjusting %q left its value at %q", ctrl.Key, before)
		}
		tu.next()
	}
	if tu.sel != 0 {
		t.Fatalf("cycling all controls should wrap back to the first, sel=%d", tu.sel)
	}
}

func TestTunerRespectsBounds(t *testing.T) {
	tu := testTuner()
	for i, ctrl := range tu.controls {
		if ctrl.Key == "wave_speed" {
			tu.sel = i
			break
		}
	}
	for i := 0; i < 200; i++ {
		tu.adjust(-1)
	}
	if _, v, _ := tu.current(); v != "0" {
		t.Fatalf("wave speed should bottom out at its minimum, got %q", v)
	}
	tu.prev()
	if tu.sel != len(tu.controls)-1 {
		t.Fatalf("prev from the first control should wrap to the last, sel=%d", tu.sel)
	}
}

func TestTunerTogglesBooleans(t *testing.T) {
	tu := testTuner()
	for i, ctrl := range tu.controls {
		if ctrl.Key == "nucleation" {
			tu.sel = i
			break
		}
	}
	_, before, _ := tu.current()
	tu.adjust(1)
	_, mid, _ := tu.current()
	tu.adjust(1)
	_, after, _ := tu.current()
	if before == mid || before != after {
		t.Fatalf("toggling twice should round-trip: %q -> %q -> %q", before, mid, after)
	}
}
