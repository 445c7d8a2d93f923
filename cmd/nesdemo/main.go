// Command nesdemo plays an iNES ROM in an Ebitengine window.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/golang/glog"

	"github.com/nes-core/gones/internal/controller"
	"github.com/nes-core/gones/internal/nes"
)

var systemVersions = map[string]nes.SystemVersion{
	"ntsc":      nes.NTSC,
	"pal":       nes.PAL,
	"dendy":     nes.Dendy,
	"rgb":       nes.RGB,
	"brazil":    nes.BrazilFamiclone,
	"argentina": nes.ArgentinaFamiclone,
}

func main() {
	defer glog.Flush()

	var (
		romFile = flag.String("rom", "", "path to an iNES ROM file")
		system  = flag.String("system", "ntsc", "console timing variant: ntsc, pal, dendy, rgb, brazil, argentina")
		scale   = flag.Int("scale", 3, "window scale factor applied to the 256x240 picture")
	)
	flag.Parse()

	if *romFile == "" {
		glog.Fatalf("nesdemo: -rom is required")
	}

	version, ok := systemVersions[*system]
	if !ok {
		glog.Fatalf("nesdemo: unknown -system %q", *system)
	}

	f, err := os.Open(*romFile)
	if err != nil {
		glog.Fatalf("nesdemo: open rom: %v", err)
	}
	defer f.Close()

	machine := nes.New(version)
	if err := machine.SetROM(f); err != nil {
		glog.Fatalf("nesdemo: %v", err)
	}
	machine.On()

	glog.Infof("nesdemo: loaded %s, system=%s clock=%.6fMHz", *romFile, *system, version.ClockMHz())

	g := newGame(machine)

	ebiten.SetWindowSize(256*(*scale), 240*(*scale))
	ebiten.SetWindowTitle(fmt.Sprintf("nesdemo - %s", *romFile))
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(g); err != nil {
		glog.Fatalf("nesdemo: %v", err)
	}
}

// keyMap binds the keyboard to player 1's pad. There is no UI for
// player 2; a second pad exists on the bus but nothing drives it here.
var keyMap = map[ebiten.Key]controller.Button{
	ebiten.KeyZ:          controller.ButtonA,
	ebiten.KeyX:          controller.ButtonB,
	ebiten.KeySpace:      controller.ButtonSelect,
	ebiten.KeyEnter:      controller.ButtonStart,
	ebiten.KeyArrowUp:    controller.ButtonUp,
	ebiten.KeyArrowDown:  controller.ButtonDown,
	ebiten.KeyArrowLeft:  controller.ButtonLeft,
	ebiten.KeyArrowRight: controller.ButtonRight,
}

// game adapts nes.NES to ebiten.Game: it owns the emulation loop,
// uploads completed frames into a texture, and forwards key state to
// player 1's controller every tick.
type game struct {
	machine     *nes.NES
	frameImage  *ebiten.Image
	rgba        []byte
	framesDrawn uint64
}

func newGame(machine *nes.NES) *game {
	return &game{
		machine:    machine,
		frameImage: ebiten.NewImage(256, 240),
		rgba:       make([]byte, 256*240*4),
	}
}

// stepBudget bounds how many CPU instructions Update will execute
// while waiting for a frame, so a ROM that never produces one (a bad
// dump, a crashed CPU) can't hang the host loop forever.
const stepBudget = 1 << 20

// Update runs the emulator forward by exactly one composited frame
// and applies the current key state to player 1's pad.
func (g *game) Update() error {
	g.applyInput()

	for i := 0; i < stepBudget; i++ {
		g.machine.Step()
		if g.machine.PollFrame() {
			g.uploadFrame()
			return nil
		}
	}
	glog.Warningf("nesdemo: no frame completed within %d CPU steps", stepBudget)
	return nil
}

func (g *game) applyInput() {
	for key, button := range keyMap {
		g.machine.SetButton(nes.Player1, button, ebiten.IsKeyPressed(key))
	}
}

// uploadFrame converts the facade's packed RGB triples into the RGBA
// pixels Ebitengine's WritePixels expects and pushes them to the
// texture drawn in Draw.
func (g *game) uploadFrame() {
	src := g.machine.Frame()
	for i, n := 0, len(src)/3; i < n; i++ {
		g.rgba[i*4+0] = src[i*3+0]
		g.rgba[i*4+1] = src[i*3+1]
		g.rgba[i*4+2] = src[i*3+2]
		g.rgba[i*4+3] = 0xFF
	}
	g.frameImage.WritePixels(g.rgba)
	g.framesDrawn++
}

func (g *game) Draw(screen *ebiten.Image) {
	op := &ebiten.DrawImageOptions{}
	sw, sh := screen.Bounds().Dx(), screen.Bounds().Dy()
	scaleX := float64(sw) / 256
	scaleY := float64(sh) / 240
	scale := scaleX
	if scaleY < scale {
		scale = scaleY
	}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate((float64(sw)-256*scale)/2, (float64(sh)-240*scale)/2)
	screen.DrawImage(g.frameImage, op)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}
