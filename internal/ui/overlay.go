//go:build ebiten

package ui

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type amplitudeProvider interface {
	AmplitudeField() ([]float32, int, int)
}

type statsProvider interface {
	Generation() uint64
	MatterCount() int
	AntimatterCount() int
	FieldEnergy() float64
}

// Overlay draws the raw medium amplitude and a status line on top of the
// base simulation view.
type Overlay struct {
	sim   any
	scale int

	showField bool
	showStats bool

	fieldImg *ebiten.Image
	fieldBuf []byte
}

// NewOverlay constructs an overlay for the provided simulation.
func NewOverlay(sim any, scale int) *Overlay {
	return &Overlay{sim: sim, scale: scale, showStats: true}
}

// Update handles overlay key toggles.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		o.showField = !o.showField
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		o.showStats = !o.showStats
	}
}

// Draw renders the enabled overlay layers onto the screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	if o.showField {
		o.drawField(screen)
	}
	if o.showStats {
		o.drawStats(screen)
	}
}

func (o *Overlay) drawField(screen *ebiten.Image) {
	provider, ok := o.sim.(amplitudeProvider)
	if !ok {
		return
	}
	amp, w, h := provider.AmplitudeField()
	if w <= 0 || h <= 0 || len(amp) != w*h {
		return
	}
	if o.fieldImg == nil || len(o.fieldBuf) != 4*w*h {
		o.fieldImg = ebiten.NewImage(w, h)
		o.fieldBuf = make([]byte, 4*w*h)
	}
	for i, u := range amp {
		v := u
		if v > 1 {
			v = 1
		}
		if v < -1 {
			v = -1
		}
		base := i * 4
		if v >= 0 {
			o.fieldBuf[base+0] = uint8(v * 255)
			o.fieldBuf[base+1] = uint8(v * 120)
			o.fieldBuf[base+2] = 0
		} else {
			o.fieldBuf[base+0] = 0
			o.fieldBuf[base+1] = uint8(-v * 80)
			o.fieldBuf[base+2] = uint8(-v * 255)
		}
		o.fieldBuf[base+3] = 170
	}
	o.fieldImg.ReplacePixels(o.fieldBuf)

	sw, sh := screen.Bounds().Dx(), screen.Bounds().Dy()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(sw)/float64(w), float64(sh)/float64(h))
	screen.DrawImage(o.fieldImg, op)
}

func (o *Overlay) drawStats(screen *ebiten.Image) {
	stats, ok := o.sim.(statsProvider)
	if !ok {
		return
	}
	msg := fmt.Sprintf("gen %d  matter %d  anti %d  energy %.3f",
		stats.Generation(), stats.MatterCount(), stats.AntimatterCount(), stats.FieldEnergy())
	ebitenutil.DebugPrint(screen, msg)
}
