package hostconfig

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFromFileMissingReturnsDefault(t *testing.T) {
	cfg, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.json"))
	if err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}
	if cfg.WindowScale != 2 {
		t.Fatalf("WindowScale = %d, want default 2", cfg.WindowScale)
	}
}

func TestLoadFromFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"window_scale": 4, "debug_log": true}`), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}
	if cfg.WindowScale != 4 || !cfg.DebugLog {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestBindingsResolvesOnlyConfiguredKeys(t *testing.T) {
	cfg := Default()
	cfg.Keys.Select = ""
	resolved := map[string]int{"W": 1, "S": 2, "A": 3, "D": 4, "J": 5, "K": 6, "Enter": 7}
	lookup := func(name string) (int, bool) {
		code, ok := resolved[name]
		return code, ok
	}
	bindings := cfg.Bindings(lookup)
	if len(bindings) != 7 {
		t.Fatalf("got %d bindings, want 7 (Select left unbound)", len(bindings))
	}
}
