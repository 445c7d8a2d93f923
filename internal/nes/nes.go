// Package nes is the system facade: it owns a CPU, bus, PPU, and pair
// of controllers, and wires them together the way a real NES's
// backplane does. Everything reachable from the outside world — ROM
// loading, powering on, stepping, polling a frame — goes through NES.
package nes

import (
	"fmt"
	"io"

	"github.com/nes-core/gones/internal/bus"
	"github.com/nes-core/gones/internal/controller"
	"github.com/nes-core/gones/internal/cpu"
	"github.com/nes-core/gones/internal/mapper"
	"github.com/nes-core/gones/internal/rom"
)

// SystemVersion selects the console timing variant to emulate. Only
// the clock frequency differs between variants; the core itself has
// no region-specific behavior beyond what a host uses for pacing.
type SystemVersion int

const (
	NTSC SystemVersion = iota
	PAL
	Dendy
	RGB
	BrazilFamiclone
	ArgentinaFamiclone
)

// clockMHz is each variant's master clock frequency, reported to hosts
// through ClockMHz; the emulation core itself is driven entirely by
// CPU/PPU cycle counts, not wall-clock time.
var clockMHz = map[SystemVersion]float64{
	NTSC:               1.789773,
	RGB:                1.789773,
	PAL:                1.662607,
	Dendy:              1.773448,
	ArgentinaFamiclone: 1.787806,
	BrazilFamiclone:    1.791028,
}

// ClockMHz returns v's master clock frequency in MHz.
func (v SystemVersion) ClockMHz() float64 {
	return clockMHz[v]
}

// Player identifies which of the two controller ports a button event
// targets.
type Player int

const (
	Player1 Player = iota
	Player2
)

// NES is a fully wired system: one CPU driving one bus, which in turn
// owns the PPU, both controller ports, and the currently loaded
// cartridge's mapper.
type NES struct {
	version SystemVersion
	bus     *bus.Bus
	cpu     *cpu.CPU
}

// New constructs a system with no cartridge loaded. Call SetROM before
// On/Reset to bring up a running machine.
func New(version SystemVersion) *NES {
	b := bus.New()
	return &NES{
		version: version,
		bus:     b,
		cpu:     cpu.New(b),
	}
}

// SetROM parses and loads a cartridge image from r, replacing any
// cartridge currently installed.
func (n *NES) SetROM(r io.Reader) error {
	img, err := rom.Load(r)
	if err != nil {
		return fmt.Errorf("nes: load rom: %w", err)
	}
	m, err := mapper.New(img)
	if err != nil {
		return fmt.Errorf("nes: %w", err)
	}
	n.bus.SetCartridge(m)
	return nil
}

// On powers up the system: equivalent to holding the console's RESET
// line low at startup.
func (n *NES) On() {
	n.cpu.Interrupt(cpu.InterruptReset)
}

// Reset performs a warm reset, as if the console's front-panel RESET
// button were pressed.
func (n *NES) Reset() {
	n.cpu.Reset()
	n.bus.PPU.Reset()
}

// Step executes exactly one CPU instruction (and the PPU dots it
// corresponds to), returning the number of CPU cycles spent.
func (n *NES) Step() uint8 {
	return n.cpu.Step()
}

// PollFrame reports and clears whether a new frame has finished
// compositing since the last call.
func (n *NES) PollFrame() bool {
	return n.bus.PPU.ConsumeFrameReady()
}

// Frame returns the most recently composited frame as packed RGB
// triples, row-major, 256x240.
func (n *NES) Frame() []uint8 {
	return n.bus.PPU.FrameBuffer()
}

// SetButton updates one button's held state on the given player's
// controller.
func (n *NES) SetButton(player Player, button controller.Button, pressed bool) {
	switch player {
	case Player1:
		n.bus.Pad1.SetButton(button, pressed)
	case Player2:
		n.bus.Pad2.SetButton(button, pressed)
	}
}
