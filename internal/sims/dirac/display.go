package dirac

import "image/color"

const (
	displayAmpMask   = 0x0f
	displayMatterBit = 0x10
	displayAntiBit   = 0x20
)

var diracPalette = buildDiracPalette()

// Palette exposes the color palette used for rendering the coupled world.
func (w *World) Palette() []color.RGBA {
	return diracPalette
}

func buildDiracPalette() []color.RGBA {
	palette := make([]color.RGBA, 64)
	for i := range palette {
		bucket := i & displayAmpMask
		matter := i&displayMatterBit != 0
		anti := i&displayAntiBit != 0
		palette[i] = displayColorFor(bucket, matter, anti)
	}
	return palette
}

// displayColorFor shades empty cells by field amplitude (blue for negative,
// amber for positive) and draws live cells on top: matter near-white green,
// antimatter magenta.
func displayColorFor(bucket int, matter, anti bool) color.RGBA {
	if matter {
		return color.RGBA{R: 190, G: 255, B: 190, A: 255}
	}
	if anti {
		return color.RGBA{R: 235, G: 90, B: 215, A: 255}
	}

	// bucket 0..15 maps amplitude -1..+1; 7..8 straddle zero.
	t := float64(bucket)/15*2 - 1
	if t >= 0 {
		v := uint8(t * 255)
		return color.RGBA{R: v, G: v / 2, B: 0, A: 255}
	}
	v := uint8(-t * 255)
	return color.RGBA{R: 0, G: v / 3, B: v, A: 255}
}

// ampBucket quantizes an amplitude into the display's 4-bit range.
func ampBucket(u float32) uint8 {
	v := float64(finite(u))
	if v < -1 {
		v = -1
	}
	if v > 1 {
		v = 1
	}
	return uint8((v + 1) / 2 * 15)
}

// rebuildDisplay packs field shade and population bits per automaton cell.
func (w *World) rebuildDisplay() {
	amp := w.med.curr
	total := w.auto.topo.Count()
	for i := 0; i < total; i++ {
		w.display[i] = ampBucket(amp[w.cp.mapKey(i)])
	}
	for key := range w.auto.matter {
		w.display[key] = w.display[key]&displayAmpMask | displayMatterBit
	}
	for key := range w.auto.anti {
		w.display[key] = w.display[key]&displayAmpMask | displayAntiBit
	}
}
