// Package display implements spec.md's renderer collaborator contract
// (§6) as an ebiten.Game: it pulls the 256x240 palette-index screen the
// PPU frame producer builds, translates it through the fixed NES color
// table, and blits it to a window. ppu.Screen itself has no ebiten
// import; this package is the only place that bridges the two.
package display

import (
	"github.com/hajimehoshi/ebiten/v2"

	"nescore/internal/logx"
	"nescore/internal/ppu"
)

// Machine is the host's view of the running emulator: advance it by one
// display frame and retrieve the screen it produced. The core is
// instruction-stepped, not cycle-stepped (spec.md §1's non-goal), so one
// RunFrame call runs CPU instructions, triggering NMI at vblank, until a
// frame is ready.
type Machine interface {
	RunFrame() (*ppu.Screen, error)
}

// Game adapts a Machine to ebiten.Game.
type Game struct {
	machine Machine
	scale   int
	log     *logx.Logger

	pixels [ppu.ScreenWidth * ppu.ScreenHeight * 4]uint8
	img    *ebiten.Image
	err    error
}

// NewGame constructs a Game driving machine, rendered at the given
// integer window scale.
func NewGame(machine Machine, scale int) *Game {
	if scale < 1 {
		scale = 1
	}
	return &Game{
		machine: machine,
		scale:   scale,
		log:     logx.New("DISPLAY"),
		img:     ebiten.NewImage(ppu.ScreenWidth, ppu.ScreenHeight),
	}
}

// Err returns the first error RunFrame produced, if any. ebiten's Update
// return value surfaces this to RunGame's caller as well.
func (g *Game) Err() error { return g.err }

func (g *Game) Update() error {
	if g.err != nil {
		return g.err
	}
	screen, err := g.machine.RunFrame()
	if err != nil {
		g.err = err
		g.log.Errorf("frame halted: %v", err)
		return err
	}
	g.blit(screen)
	return nil
}

func (g *Game) blit(screen *ppu.Screen) {
	for y := 0; y < ppu.ScreenHeight; y++ {
		for x := 0; x < ppu.ScreenWidth; x++ {
			r, gr, b, a := rgba(screen[y][x])
			i := (y*ppu.ScreenWidth + x) * 4
			g.pixels[i] = r
			g.pixels[i+1] = gr
			g.pixels[i+2] = b
			g.pixels[i+3] = a
		}
	}
	g.img.WritePixels(g.pixels[:])
}

func (g *Game) Draw(screen *ebiten.Image) {
	opts := &ebiten.DrawImageOptions{}
	opts.GeoM.Scale(float64(g.scale), float64(g.scale))
	screen.DrawImage(g.img, opts)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return ppu.ScreenWidth * g.scale, ppu.ScreenHeight * g.scale
}
