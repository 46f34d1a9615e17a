// Package logx wraps the standard library logger with the bracket-tag
// component convention used throughout the host layer ([CPU], [PPU],
// [CARTRIDGE], ...). The core packages (bus, cpu, ppu, cartridge, ram,
// joypad) never import this: they return errors and let the host decide
// whether, and how, to log them.
package logx

import (
	"log"
	"os"
)

// Logger prefixes every line with a bracketed component tag.
type Logger struct {
	tag    string
	std    *log.Logger
	silent bool
}

// New constructs a Logger tagged with component, writing to stderr.
func New(component string) *Logger {
	return &Logger{
		tag: "[" + component + "] ",
		std: log.New(os.Stderr, "", log.LstdFlags),
	}
}

// SetSilent suppresses Printf and Warnf output from this logger (used when
// the host's debug-log toggle is off). Errorf and Fatalf always write.
func (l *Logger) SetSilent(silent bool) { l.silent = silent }

func (l *Logger) Printf(format string, args ...any) {
	if l.silent {
		return
	}
	l.std.Printf(l.tag+format, args...)
}

func (l *Logger) Warnf(format string, args ...any) {
	if l.silent {
		return
	}
	l.std.Printf(l.tag+"WARN: "+format, args...)
}

func (l *Logger) Errorf(format string, args ...any) {
	l.std.Printf(l.tag+"ERROR: "+format, args...)
}

func (l *Logger) Fatalf(format string, args ...any) {
	l.std.Fatalf(l.tag+format, args...)
}
