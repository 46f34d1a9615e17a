// Package hostconfig holds the host layer's small JSON-backed
// configuration: window scale, NES-to-host key bindings, and the debug
// log toggle. spec.md's CLI scope is a single positional ROM path with no
// core-mandated flags (spec.md §6); this config covers only what the
// ebiten host needs beyond that.
package hostconfig

import (
	"encoding/json"
	"fmt"
	"os"

	"nescore/internal/joypad"
)

// KeyMapping names the host keyboard key, as a name the host's scancode
// lookup resolves (e.g. "W", "Enter", "Up"), bound to each logical NES
// button.
type KeyMapping struct {
	Up     string `json:"up"`
	Down   string `json:"down"`
	Left   string `json:"left"`
	Right  string `json:"right"`
	A      string `json:"a"`
	B      string `json:"b"`
	Start  string `json:"start"`
	Select string `json:"select"`
}

// Config is the host's full configuration surface.
type Config struct {
	WindowScale int        `json:"window_scale"`
	Keys        KeyMapping `json:"keys"`
	DebugLog    bool       `json:"debug_log"`
}

// Default returns the host's default configuration: a 2x window scale and
// the teacher's WASD+JK key layout.
func Default() *Config {
	return &Config{
		WindowScale: 2,
		Keys: KeyMapping{
			Up: "W", Down: "S", Left: "A", Right: "D",
			A: "J", B: "K", Start: "Enter", Select: "Space",
		},
		DebugLog: false,
	}
}

// LoadFromFile reads a JSON config file, falling back to Default for any
// field the file omits. A missing file is not an error: Default is
// returned unchanged.
func LoadFromFile(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// Bindings translates the configured key names into joypad.Bindings
// through a name-to-scancode resolver (typically ebiten's key lookup),
// keeping this package free of any ebiten import.
func (c *Config) Bindings(scancode func(name string) (int, bool)) joypad.Bindings {
	bindings := joypad.Bindings{}
	add := func(button joypad.Button, name string) {
		if name == "" {
			return
		}
		if code, ok := scancode(name); ok {
			bindings[button] = code
		}
	}
	add(joypad.Up, c.Keys.Up)
	add(joypad.Down, c.Keys.Down)
	add(joypad.Left, c.Keys.Left)
	add(joypad.Right, c.Keys.Right)
	add(joypad.A, c.Keys.A)
	add(joypad.B, c.Keys.B)
	add(joypad.Start, c.Keys.Start)
	add(joypad.Select, c.Keys.Select)
	return bindings
}
