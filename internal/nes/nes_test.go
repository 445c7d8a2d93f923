package nes

import (
	"bytes"
	"testing"

	"github.com/nes-core/gones/internal/controller"
)

// buildNROM assembles a minimal one-bank iNES v1 image with the reset
// vector pointed at a NOP at $8000; the rest of PRG-ROM is zero bytes.
func buildNROM() []byte {
	header := make([]byte, 16)
	copy(header, []byte("NES\x1A"))
	header[4] = 1 // 1x16KiB PRG
	header[5] = 1 // 1x8KiB CHR

	prg := make([]byte, 16*1024)
	prg[0] = 0xEA // NOP, at $8000 (and its $C000 mirror)
	prg[0x3FFC] = 0x00
	prg[0x3FFD] = 0x80 // reset vector $FFFC/$FFFD -> $8000

	chr := make([]byte, 8*1024)

	raw := append(append(append([]byte{}, header...), prg...), chr...)
	return raw
}

func TestSetROMThenOnRunsFromResetVector(t *testing.T) {
	n := New(NTSC)
	if err := n.SetROM(bytes.NewReader(buildNROM())); err != nil {
		t.Fatalf("SetROM: %v", err)
	}

	n.On()
	n.Step()

	if n.cpu.PC != 0x8001 {
		t.Fatalf("PC after reset and one NOP = %#04x, want 0x8001", n.cpu.PC)
	}
	if got := n.Frame(); len(got) != 256*240*3 {
		t.Fatalf("len(Frame()) = %d, want %d", len(got), 256*240*3)
	}
}

func TestSetButtonRoutesToCorrectPad(t *testing.T) {
	n := New(NTSC)
	n.SetButton(Player1, controller.ButtonA, true)
	n.SetButton(Player2, controller.ButtonA, false)

	n.bus.Pad1.Write(1)
	n.bus.Pad1.Write(0)
	n.bus.Pad2.Write(1)
	n.bus.Pad2.Write(0)

	if got := n.bus.Pad1.Read(); got != 1 {
		t.Fatalf("Pad1.Read() = %d, want 1 (button A pressed)", got)
	}
	if got := n.bus.Pad2.Read(); got != 0 {
		t.Fatalf("Pad2.Read() = %d, want 0 (button A not pressed)", got)
	}
}

func TestUnsupportedMapperRejectedBySetROM(t *testing.T) {
	header := make([]byte, 16)
	copy(header, []byte("NES\x1A"))
	header[4] = 1
	header[5] = 1
	header[6] = 0xF0 // flag6 upper nibble = mapper number's low nibble -> mapper 15, unsupported

	prg := make([]byte, 16*1024)
	chr := make([]byte, 8*1024)
	raw := append(append(append([]byte{}, header...), prg...), chr...)

	n := New(NTSC)
	if err := n.SetROM(bytes.NewReader(raw)); err == nil {
		t.Fatalf("SetROM with unsupported mapper = nil error, want error")
	}
}

func TestClockMHzDiffersByVersion(t *testing.T) {
	if NTSC.ClockMHz() == PAL.ClockMHz() {
		t.Fatalf("NTSC and PAL clock frequencies equal, want different")
	}
}
