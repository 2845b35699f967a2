package dirac

import "strconv"

// MediumParams holds the physics tunables of the wave medium. Every field has
// a documented range and is clamped into it whenever a value enters through a
// public setter or FromMap.
type MediumParams struct {
	WaveSpeed    float64 // c² in the update rule, [0, 1]
	Damping      float64 // γ, [0, 5]
	Dispersion   float64 // κ, biharmonic strength, [0, 0.5]
	Nonlinearity float64 // cubic softening gain, [0, 2]

	MemoryRate     float64 // leaky integrator rate r, [0, 0.3]
	MemoryCoupling float64 // feedback gain on the memory layer, [-1, 1]

	HopHz       float64 // discrete impulse train frequency, [0, 20]
	HopStrength float64 // amplitude per source unit on each hop, [0, 4]

	NoiseIntensity float64 // ambient blob density per area, [0, 1]
	NoiseAmplitude float64 // ambient blob amplitude, [0, 1]

	Substeps     int     // integration substeps per generation, [1, 64]
	GenerationDt float64 // total integrated time per generation, [0.01, 1]
}

// NucleationParams controls how threshold-crossing regions of the medium seed
// new automaton cells.
type NucleationParams struct {
	Enabled     bool
	Threshold   float64 // τ, [0.05, 4]
	Cooldown    int     // ticks before a fired cell may fire again, [1, 600]
	MaxPerScan  int     // distinct nuclei allowed per scan, [1, 32]
	RadiusScale float64 // scales overshoot into a nucleus radius, [0, 8]
	MaxRadius   float64 // radius cap in automaton cells, [1, 12]
}

// Params bundles all tunables of the coupled simulation.
type Params struct {
	Medium     MediumParams
	Nucleation NucleationParams

	AntimatterEnabled bool

	ImpulseStrength    float64 // annihilation impulse amplitude, [0, 4]
	MaxImpulsesPerTick int     // annihilation events applied per tick, [1, 256]

	RandomizeDensity float64 // live fraction used by Reset, [0, 1]
}

// Config controls the simulation dimensions and initial tunables.
type Config struct {
	Rows int
	Cols int
	Wrap bool

	Seed int64

	Params Params
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Rows: 192,
		Cols: 192,
		Wrap: true,
		Seed: 1337,
		Params: Params{
			Medium: MediumParams{
				WaveSpeed:      0.30,
				Damping:        0.12,
				Dispersion:     0.02,
				Nonlinearity:   0.35,
				MemoryRate:     0.05,
				MemoryCoupling: 0.15,
				HopHz:          2.0,
				HopStrength:    0.9,
				NoiseIntensity: 0,
				NoiseAmplitude: 0.15,
				Substeps:       8,
				GenerationDt:   0.5,
			},
			Nucleation: NucleationParams{
				Enabled:     true,
				Threshold:   0.55,
				Cooldown:    90,
				MaxPerScan:  6,
				RadiusScale: 2.5,
				MaxRadius:   6,
			},
			AntimatterEnabled:  true,
			ImpulseStrength:    1.2,
			MaxImpulsesPerTick: 96,
			RandomizeDensity:   0.12,
		},
	}
}

func clampFloat(v, lo, hi float64) float64 {
	if v != v { // NaN from a hostile caller collapses to the lower bound
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func sanitizeMedium(p MediumParams) MediumParams {
	p.WaveSpeed = clampFloat(p.WaveSpeed, 0, 1)
	p.Damping = clampFloat(p.Damping, 0, 5)
	p.Dispersion = clampFloat(p.Dispersion, 0, 0.5)
	p.Nonlinearity = clampFloat(p.Nonlinearity, 0, 2)
	p.MemoryRate = clampFloat(p.MemoryRate, 0, 0.3)
	p.MemoryCoupling = clampFloat(p.MemoryCoupling, -1, 1)
	p.HopHz = clampFloat(p.HopHz, 0, 20)
	p.HopStrength = clampFloat(p.HopStrength, 0, 4)
	p.NoiseIntensity = clampFloat(p.NoiseIntensity, 0, 1)
	p.NoiseAmplitude = clampFloat(p.NoiseAmplitude, 0, 1)
	p.Substeps = clampInt(p.Substeps, 1, 64)
	p.GenerationDt = clampFloat(p.GenerationDt, 0.01, 1)
	return p
}

func sanitizeNucleation(p NucleationParams) NucleationParams {
	p.Threshold = clampFloat(p.Threshold, 0.05, 4)
	p.Cooldown = clampInt(p.Cooldown, 1, 600)
	p.MaxPerScan = clampInt(p.MaxPerScan, 1, 32)
	p.RadiusScale = clampFloat(p.RadiusScale, 0, 8)
	p.MaxRadius = clampFloat(p.MaxRadius, 1, 12)
	return p
}

func sanitizeParams(p Params) Params {
	p.Medium = sanitizeMedium(p.Medium)
	p.Nucleation = sanitizeNucleation(p.Nucleation)
	p.ImpulseStrength = clampFloat(p.ImpulseStrength, 0, 4)
	p.MaxImpulsesPerTick = clampInt(p.MaxImpulsesPerTick, 1, 256)
	p.RandomizeDensity = clampFloat(p.RandomizeDensity, 0, 1)
	return p
}

func sanitizeConfig(c Config) Config {
	c.Rows = clampInt(c.Rows, minGridDim, maxGridDim)
	c.Cols = clampInt(c.Cols, minGridDim, maxGridDim)
	c.Params = sanitizeParams(c.Params)
	return c
}

// FromMap populates the config from a string map (flag-style key/value pairs).
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	geti := func(key string, dst *int) {
		if v, ok := cfg[key]; ok {
			if parsed, err := strconv.Atoi(v); err == nil {
				*dst = parsed
			}
		}
	}
	getf := func(key string, dst *float64) {
		if v, ok := cfg[key]; ok {
			if parsed, err := strconv.ParseFloat(v, 64); err == nil {
				*dst = parsed
			}
		}
	}
	getb := func(key string, dst *bool) {
		if v, ok := cfg[key]; ok {
			if parsed, err := strconv.ParseBool(v); err == nil {
				*dst = parsed
			}
		}
	}

	geti("rows", &c.Rows)
	geti("cols", &c.Cols)
	getb("wrap", &c.Wrap)
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}

	m := &c.Params.Medium
	getf("wave_speed", &m.WaveSpeed)
	getf("damping", &m.Damping)
	getf("dispersion", &m.Dispersion)
	getf("nonlinearity", &m.Nonlinearity)
	getf("memory_rate", &m.MemoryRate)
	getf("memory_coupling", &m.MemoryCoupling)
	getf("hop_hz", &m.HopHz)
	getf("hop_strength", &m.HopStrength)
	getf("noise_intensity", &m.NoiseIntensity)
	getf("noise_amplitude", &m.NoiseAmplitude)
	geti("substeps", &m.Substeps)
	getf("generation_dt", &m.GenerationDt)

	n := &c.Params.Nucleation
	getb("nucleation", &n.Enabled)
	getf("threshold", &n.Threshold)
	geti("cooldown", &n.Cooldown)
	geti("max_per_scan", &n.MaxPerScan)
	getf("radius_scale", &n.RadiusScale)
	getf("max_radius", &n.MaxRadius)

	getb("antimatter", &c.Params.AntimatterEnabled)
	getf("impulse_strength", &c.Params.ImpulseStrength)
	geti("max_impulses", &c.Params.MaxImpulsesPerTick)
	getf("density", &c.Params.RandomizeDensity)

	return sanitizeConfig(c)
}
