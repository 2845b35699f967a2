package dirac

import (
	"strconv"

	"dirac-ca/internal/core"
)

// Parameters returns the grouped tunables for presentation.
func (w *World) Parameters() core.ParameterSnapshot {
	p := w.cfg.Params
	groups := []core.ParameterGroup{
		{
			Name: "World",
			Params: []core.Parameter{
				intParam("rows", "Rows", w.cfg.Rows),
				intParam("cols", "Cols", w.cfg.Cols),
				boolParam("wrap", "Toroidal wrap", w.cfg.Wrap),
				int64Param("seed", "Seed", w.cfg.Seed),
				boolParam("antimatter", "Antimatter enabled", p.AntimatterEnabled),
				floatParam("density", "Randomize density", p.RandomizeDensity),
			},
		},
		{
			Name: "Medium",
			Params: []core.Parameter{
				floatParam("wave_speed", "Wave speed squared", p.Medium.WaveSpeed),
				floatParam("damping", "Damping", p.Medium.Damping),
				floatParam("dispersion", "Dispersion", p.Medium.Dispersion),
				floatParam("nonlinearity", "Cubic softening", p.Medium.Nonlinearity),
				floatParam("memory_rate", "Memory rate", p.Medium.MemoryRate),
				floatParam("memory_coupling", "Memory coupling", p.Medium.MemoryCoupling),
				floatParam("hop_hz", "Hop frequency", p.Medium.HopHz),
				floatParam("hop_strength", "Hop strength", p.Medium.HopStrength),
				floatParam("noise_intensity", "Noise intensity", p.Medium.NoiseIntensity),
				floatParam("noise_amplitude", "Noise amplitude", p.Medium.NoiseAmplitude),
				intParam("substeps", "Substeps per generation", p.Medium.Substeps),
				floatParam("generation_dt", "Time per generation", p.Medium.GenerationDt),
			},
		},
		{
			Name: "Nucleation",
			Params: []core.Parameter{
				boolParam("nucleation", "Nucleation enabled", p.Nucleation.Enabled),
				floatParam("threshold", "Threshold", p.Nucleation.Threshold),
				intParam("cooldown", "Cooldown ticks", p.Nucleation.Cooldown),
				intParam("max_per_scan", "Max nuclei per scan", p.Nucleation.MaxPerScan),
				floatParam("radius_scale", "Radius scale", p.Nucleation.RadiusScale),
				floatParam("max_radius", "Radius cap", p.Nucleation.MaxRadius),
			},
		},
		{
			Name: "Annihilation",
			Params: []core.Parameter{
				floatParam("impulse_strength", "Impulse strength", p.ImpulseStrength),
				intParam("max_impulses", "Max impulses per tick", p.MaxImpulsesPerTick),
			},
		},
	}
	return core.ParameterSnapshot{Groups: groups}
}

// ParameterControls lists the tunables adjustable from the viewers.
func (w *World) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{Key: "wave_speed", Label: "Wave speed", Type: core.ParamTypeFloat, Step: 0.02, Min: 0, Max: 1, HasMin: true, HasMax: true},
		{Key: "damping", Label: "Damping", Type: core.ParamTypeFloat, Step: 0.02, Min: 0, Max: 5, HasMin: true, HasMax: true},
		{Key: "nonlinearity", Label: "Nonlinearity", Type: core.ParamTypeFloat, Step: 0.05, Min: 0, Max: 2, HasMin: true, HasMax: true},
		{Key: "hop_strength", Label: "Hop strength", Type: core.ParamTypeFloat, Step: 0.05, Min: 0, Max: 4, HasMin: true, HasMax: true},
		{Key: "noise_intensity", Label: "Noise", Type: core.ParamTypeFloat, Step: 0.05, Min: 0, Max: 1, HasMin: true, HasMax: true},
		{Key: "threshold", Label: "Nucleation threshold", Type: core.ParamTypeFloat, Step: 0.05, Min: 0.05, Max: 4, HasMin: true, HasMax: true},
		{Key: "cooldown", Label: "Cooldown ticks", Type: core.ParamTypeInt, Step: 10, Min: 1, Max: 600, HasMin: true, HasMax: true},
		{Key: "nucleation", Label: "Nucleation", Type: core.ParamTypeBool},
		{Key: "antimatter", Label: "Antimatter", Type: core.ParamTypeBool},
	}
}

// SetFloatParameter updates a float tunable by key, clamping to its range.
// It reports whether the key was recognized.
func (w *World) SetFloatParameter(key string, value float64) bool {
	m := w.cfg.Params.Medium
	switch key {
	case "wave_speed":
		m.WaveSpeed = value
	case "damping":
		m.Damping = value
	case "dispersion":
		m.Dispersion = value
	case "nonlinearity":
		m.Nonlinearity = value
	case "memory_rate":
		m.MemoryRate = value
	case "memory_coupling":
		m.MemoryCoupling = value
	case "hop_hz":
		m.HopHz = value
	case "hop_strength":
		m.HopStrength = value
	case "noise_intensity":
		m.NoiseIntensity = value
	case "noise_amplitude":
		m.NoiseAmplitude = value
	case "generation_dt":
		m.GenerationDt = value
	default:
		n := w.cfg.Params.Nucleation
		switch key {
		case "threshold":
			n.Threshold = value
		case "radius_scale":
			n.RadiusScale = value
		case "max_radius":
			n.MaxRadius = value
		case "impulse_strength":
			w.cfg.Params.ImpulseStrength = clampFloat(value, 0, 4)
			return true
		case "density":
			w.cfg.Params.RandomizeDensity = clampFloat(value, 0, 1)
			return true
		default:
			return false
		}
		w.SetNucleationParams(n)
		return true
	}
	w.SetMediumParams(m)
	return true
}

// SetIntParameter updates an integer tunable by key with clamping.
func (w *World) SetIntParameter(key string, value int) bool {
	switch key {
	case "substeps":
		m := w.cfg.Params.Medium
		m.Substeps = value
		w.SetMediumParams(m)
	case "cooldown":
		n := w.cfg.Params.Nucleation
		n.Cooldown = value
		w.SetNucleationParams(n)
	case "max_per_scan":
		n := w.cfg.Params.Nucleation
		n.MaxPerScan = value
		w.SetNucleationParams(n)
	case "max_impulses":
		w.cfg.Params.MaxImpulsesPerTick = clampInt(value, 1, 256)
	default:
		return false
	}
	return true
}

// SetBoolParameter toggles a boolean tunable by key.
func (w *World) SetBoolParameter(key string, value bool) bool {
	switch key {
	case "nucleation":
		w.cfg.Params.Nucleation.Enabled = value
	case "antimatter":
		w.cfg.Params.AntimatterEnabled = value
	case "wrap":
		w.SetTopology(value)
	default:
		return false
	}
	return true
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{Key: key, Label: label, Type: core.ParamTypeInt, Value: strconv.Itoa(value)}
}

func int64Param(key, label string, value int64) core.Parameter {
	return core.Parameter{Key: key, Label: label, Type: core.ParamTypeInt, Value: strconv.FormatInt(value, 10)}
}

func floatParam(key, label string, value float64) core.Parameter {
	return core.Parameter{Key: key, Label: label, Type: core.ParamTypeFloat, Value: strconv.FormatFloat(value, 'g', -1, 64)}
}

func boolParam(key, label string, value bool) core.Parameter {
	return core.Parameter{Key: key, Label: label, Type: core.ParamTypeBool, Value: strconv.FormatBool(value)}
}
