// Command nescore runs the NES emulator core against a single ROM file.
//
// Usage: nescore [-config path] <path-to-rom>
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"nescore/internal/cartridge"
	"nescore/internal/host/display"
	"nescore/internal/host/keys"
	"nescore/internal/host/machine"
	"nescore/internal/hostconfig"
	"nescore/internal/logx"
)

const exitArgError = 1

// buildVersion is overridden at build time via -ldflags "-X main.buildVersion=...".
var buildVersion = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	log := logx.New("MAIN")

	configPath := flag.String("config", "", "path to an optional host config file")
	showVersion := flag.Bool("version", false, "print the build version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println("nescore " + buildVersion)
		return 0
	}

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: nescore [-config path] <path-to-rom>")
		return exitArgError
	}
	romPath := flag.Arg(0)

	cfg := hostconfig.Default()
	if *configPath != "" {
		loaded, err := hostconfig.LoadFromFile(*configPath)
		if err != nil {
			log.Errorf("loading config: %v", err)
			return exitArgError
		}
		cfg = loaded
	}
	log.SetSilent(!cfg.DebugLog)

	cart, err := cartridge.Load(romPath)
	if err != nil {
		log.Errorf("loading cartridge: %v", err)
		return 2
	}

	keyboard := keys.New()
	bindings := cfg.Bindings(keys.ScancodeByName)
	m, err := machine.New(cart, keyboard, bindings)
	if err != nil {
		log.Errorf("starting machine: %v", err)
		return 2
	}

	game := display.NewGame(m, cfg.WindowScale)
	width, height := cfg.WindowScale*256, cfg.WindowScale*240
	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowTitle("nescore")

	if err := ebiten.RunGame(game); err != nil {
		log.Errorf("run loop: %v", err)
		return 3
	}
	return 0
}
