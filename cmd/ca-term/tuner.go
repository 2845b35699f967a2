package main

import (
	"fmt"
	"math"
	"strconv"

	"dirac-ca/internal/core"
)

type parameterProvider interface {
	Parameters() core.ParameterSnapshot
}

// tuner walks a sim's adjustable controls from the keyboard. Selection cycles
// with tab, adjustment goes through the sim's typed setters so every change is
// clamped by the sim itself.
type tuner struct {
	controls []core.ParameterControl
	sel      int

	params parameterProvider
	floats core.FloatParameterSetter
	ints   core.IntParameterSetter
	bools  core.BoolParameterSetter
}

func newTuner(sim core.Sim) *tuner {
	t := &tuner{}
	if p, ok := sim.(core.ParameterControlsProvider); ok {
		t.controls = p.ParameterControls()
	}
	t.params, _ = sim.(parameterProvider)
	t.floats, _ = sim.(core.FloatParameterSetter)
	t.ints, _ = sim.(core.IntParameterSetter)
	t.bools, _ = sim.(core.BoolParameterSetter)
	return t
}

func (t *tuner) next() {
	if n := len(t.controls); n > 0 {
		t.sel = (t.sel + 1) % n
	}
}

func (t *tuner) prev() {
	if n := len(t.controls); n > 0 {
		t.sel = (t.sel + n - 1) % n
	}
}

// current returns the selected control and its live value from the snapshot.
func (t *tuner) current() (core.ParameterControl, string, bool) {
	if len(t.controls) == 0 || t.params == nil {
		return core.ParameterControl{}, "", false
	}
	ctrl := t.controls[t.sel]
	for _, g := range t.params.Parameters().Groups {
		for _, p := range g.Params {
			if p.Key == ctrl.Key {
				return ctrl, p.Value, true
			}
		}
	}
	return ctrl, "", false
}

func (t *tuner) adjust(dir int) {
	ctrl, value, ok := t.current()
	if !ok || dir == 0 {
		return
	}
	switch ctrl.Type {
	case core.ParamTypeFloat:
		if t.floats == nil {
			return
		}
		cur, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return
		}
		step := ctrl.Step
		if step <= 0 {
			step = 0.05
		}
		target := cur + float64(dir)*step
		if ctrl.HasMin && target < ctrl.Min {
			target = ctrl.Min
		}
		if ctrl.HasMax && target > ctrl.Max {
			target = ctrl.Max
		}
		t.floats.SetFloatParameter(ctrl.Key, target)
	case core.ParamTypeInt:
		if t.ints == nil {
			return
		}
		cur, err := strconv.Atoi(value)
		if err != nil {
			return
		}
		step := int(math.Round(ctrl.Step))
		if step <= 0 {
			step = 1
		}
		target := cur + dir*step
		if ctrl.HasMin && target < int(math.Round(ctrl.Min)) {
			target = int(math.Round(ctrl.Min))
		}
		if ctrl.HasMax && target > int(math.Round(ctrl.Max)) {
			target = int(math.Round(ctrl.Max))
		}
		t.ints.SetIntParameter(ctrl.Key, target)
	case core.ParamTypeBool:
		if t.bools == nil {
			return
		}
		t.bools.SetBoolParameter(ctrl.Key, value != "true")
	}
}

// line renders the selection for the bottom row, empty when nothing is tunable.
func (t *tuner) line() string {
	ctrl, value, ok := t.current()
	if !ok {
		return ""
	}
	return fmt.Sprintf("tune %d/%d  %s = %s   tab/shift-tab select | [ lower | ] raise",
		t.sel+1, len(t.controls), ctrl.Label, value)
}
