package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"dirac-ca/internal/core"
	"dirac-ca/internal/sims/dirac"

	"github.com/gdamore/tcell/v2"
)

func main() {
	rows := flag.Int("rows", 128, "automaton rows")
	cols := flag.Int("cols", 128, "automaton cols")
	wrap := flag.Bool("wrap", true, "toroidal topology")
	seed := flag.Int64("seed", 1337, "seed for simulation reset")
	tps := flag.Int("tps", 15, "simulation ticks per second")
	flag.Parse()

	cfg := dirac.DefaultConfig()
	cfg.Rows = *rows
	cfg.Cols = *cols
	cfg.Wrap = *wrap
	cfg.Seed = *seed

	world := dirac.NewWithConfig(cfg)
	world.Reset(*seed)
	tune := newTuner(world)

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("create screen: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("init screen: %v", err)
	}
	defer screen.Fini()
	screen.HideCursor()

	events := make(chan tcell.Event, 8)
	go func() {
		for {
			events <- screen.PollEvent()
		}
	}()

	fixed := core.NewFixedStep(*tps)
	frame := time.NewTicker(time.Second / 30)
	defer frame.Stop()

	paused := false
	for {
		select {
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				switch ev.Key() {
				case tcell.KeyEscape, tcell.KeyCtrlC:
					return
				case tcell.KeyTab:
					tune.next()
				case tcell.KeyBacktab:
					tune.prev()
				}
				switch ev.Rune() {
				case 'q':
					return
				case ' ':
					paused = !paused
				case 'n':
					world.Step()
				case 'r':
					world.Reset(*seed)
				case 's':
					world.Reset(time.Now().UnixNano())
				case 'c':
					world.Clear()
				case '[':
					tune.adjust(-1)
				case ']':
					tune.adjust(1)
				}
			case *tcell.EventResize:
				screen.Sync()
			}
		case <-frame.C:
			if !paused && fixed.ShouldStep() {
				world.Step()
			}
			draw(screen, world.Snapshot(), paused, tune.line())
		}
	}
}

var (
	matterStyle = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	antiStyle   = tcell.StyleDefault.Foreground(tcell.ColorFuchsia).Bold(true)
	statusStyle = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	tuneStyle   = tcell.StyleDefault.Foreground(tcell.ColorAqua)
)

// draw maps the automaton grid onto the terminal, one status row on top and a
// parameter tuning row on the bottom. Live cells win over field shading within
// each terminal cell's block.
func draw(s tcell.Screen, snap dirac.Snapshot, paused bool, tune string) {
	s.Clear()
	w, h := s.Size()
	if w < 1 || h < 2 {
		s.Show()
		return
	}
	gridH := h - 1
	if tune != "" && h > 2 {
		gridH = h - 2
	}

	occ := make([]uint8, snap.Rows*snap.Cols)
	for _, c := range snap.Matter {
		occ[c.R*snap.Cols+c.C] = 1
	}
	for _, c := range snap.Antimatter {
		occ[c.R*snap.Cols+c.C] = 2
	}

	for y := 0; y < gridH; y++ {
		r0 := y * snap.Rows / gridH
		r1 := (y + 1) * snap.Rows / gridH
		if r1 <= r0 {
			r1 = r0 + 1
		}
		for x := 0; x < w; x++ {
			c0 := x * snap.Cols / w
			c1 := (x + 1) * snap.Cols / w
			if c1 <= c0 {
				c1 = c0 + 1
			}
			var cell uint8
			for r := r0; r < r1 && r < snap.Rows; r++ {
				for c := c0; c < c1 && c < snap.Cols; c++ {
					if v := occ[r*snap.Cols+c]; v > cell {
						cell = v
					}
				}
			}
			switch cell {
			case 1:
				s.SetContent(x, y+1, 'o', nil, matterStyle)
			case 2:
				s.SetContent(x, y+1, 'x', nil, antiStyle)
			default:
				mr := r0 * snap.MediumRows / snap.Rows
				mc := c0 * snap.MediumCols / snap.Cols
				v := snap.Amplitude[mr*snap.MediumCols+mc]
				s.SetContent(x, y+1, shadeRune(v), nil, shadeStyle(v))
			}
		}
	}

	status := fmt.Sprintf("gen %d  matter %d  anti %d  energy %.3f",
		snap.Generation, len(snap.Matter), len(snap.Antimatter), snap.FieldEnergy)
	if paused {
		status += "  [paused]"
	}
	status += "  space pause | n step | r reset | c clear | q quit"
	for i, r := range status {
		if i >= w {
			break
		}
		s.SetContent(i, 0, r, nil, statusStyle)
	}
	if tune != "" && h > 2 {
		for i, r := range tune {
			if i >= w {
				break
			}
			s.SetContent(i, h-1, r, nil, tuneStyle)
		}
	}
	s.Show()
}

func shadeRune(v float32) rune {
	a := v
	if a < 0 {
		a = -a
	}
	switch {
	case a < 0.05:
		return ' '
	case a < 0.15:
		return '.'
	case a < 0.35:
		return ':'
	case a < 0.7:
		return '*'
	default:
		return '#'
	}
}

func shadeStyle(v float32) tcell.Style {
	if v >= 0 {
		return tcell.StyleDefault.Foreground(tcell.ColorOrange)
	}
	return tcell.StyleDefault.Foreground(tcell.ColorBlue)
}
