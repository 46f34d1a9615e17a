// Package keys implements the "keyboard collaborator contract" (spec.md
// §6): a function yielding, for any scancode, a boolean down-state. It is
// the only place in this host layer that imports ebiten's input package.
package keys

import "github.com/hajimehoshi/ebiten/v2"

// Keyboard satisfies joypad.KeySource by reading ebiten's live key state.
// Scancodes are ebiten.Key values, exposed to the rest of the host as
// plain ints so the joypad port itself never imports ebiten.
type Keyboard struct{}

// New constructs a Keyboard collaborator.
func New() *Keyboard { return &Keyboard{} }

// Pressed reports whether the given ebiten key is currently held down.
func (Keyboard) Pressed(scancode int) bool {
	return ebiten.IsKeyPressed(ebiten.Key(scancode))
}

// byName maps the host-readable key names hostconfig accepts to ebiten
// key constants, covering the keys the default layout and a reasonable
// remap use.
var byName = map[string]ebiten.Key{
	"W": ebiten.KeyW, "A": ebiten.KeyA, "S": ebiten.KeyS, "D": ebiten.KeyD,
	"J": ebiten.KeyJ, "K": ebiten.KeyK, "X": ebiten.KeyX, "Z": ebiten.KeyZ,
	"Up": ebiten.KeyArrowUp, "Down": ebiten.KeyArrowDown,
	"Left": ebiten.KeyArrowLeft, "Right": ebiten.KeyArrowRight,
	"Enter": ebiten.KeyEnter, "Space": ebiten.KeySpace,
	"RShift": ebiten.KeyShiftRight, "RCtrl": ebiten.KeyControlRight,
	"N": ebiten.KeyN, "M": ebiten.KeyM,
}

// ScancodeByName resolves a host-readable key name (as stored in
// hostconfig.KeyMapping) to the int scancode joypad.Bindings expects.
func ScancodeByName(name string) (int, bool) {
	k, ok := byName[name]
	return int(k), ok
}
