package ppu

import (
	"testing"

	"github.com/nes-core/gones/internal/rom"
)

type fakeMapper struct {
	chr       [0x2000]uint8
	mirroring rom.Mirroring
}

func (f *fakeMapper) Read(addr uint16) uint8             { return 0 }
func (f *fakeMapper) Write(addr uint16, value uint8)      {}
func (f *fakeMapper) ReadCHR(addr uint16) uint8           { return f.chr[addr] }
func (f *fakeMapper) WriteCHR(addr uint16, value uint8)   { f.chr[addr] = value }
func (f *fakeMapper) Mirroring() rom.Mirroring            { return f.mirroring }

func newTestPPU() *PPU {
	return New(&fakeMapper{mirroring: rom.MirrorHorizontal})
}

func TestFrameBufferSize(t *testing.T) {
	p := newTestPPU()
	if got := len(p.FrameBuffer()); got != screenWidth*screenHeight*3 {
		t.Fatalf("len(FrameBuffer()) = %d, want %d", got, screenWidth*screenHeight*3)
	}
}

func TestConsecutiveStatusReadsClearVBlank(t *testing.T) {
	p := newTestPPU()
	p.status = 0x80

	first := p.ReadRegister(2)
	if first&0x80 == 0 {
		t.Fatalf("first $2002 read = %#02x, want bit 7 set", first)
	}
	second := p.ReadRegister(2)
	if second&0x80 != 0 {
		t.Fatalf("second $2002 read = %#02x, want bit 7 clear", second)
	}
}

func TestStatusReadResetsWriteToggle(t *testing.T) {
	p := newTestPPU()
	p.WriteRegister(6, 0x21) // first $2006 write flips w to true
	if !p.w {
		t.Fatalf("w after first $2006 write = false, want true")
	}
	p.ReadRegister(2)
	if p.w {
		t.Fatalf("w after $2002 read = true, want false")
	}
}

func TestPaletteMirroring(t *testing.T) {
	cases := []struct{ mirror, base uint16 }{
		{0x3F10, 0x3F00},
		{0x3F14, 0x3F04},
		{0x3F18, 0x3F08},
		{0x3F1C, 0x3F0C},
	}
	for _, c := range cases {
		p := newTestPPU()
		p.v = c.mirror
		p.writeData(0x20)
		if got := p.readVRAMBus(c.base); got != 0x20 {
			t.Fatalf("mirror %#04x -> base %#04x = %#02x, want 0x20", c.mirror, c.base, got)
		}
	}
}

func TestWriteAddrLatchesVOnSecondWrite(t *testing.T) {
	p := newTestPPU()
	p.WriteRegister(6, 0x21)
	p.WriteRegister(6, 0x05)
	if p.v != 0x2105 {
		t.Fatalf("v = %#04x, want 0x2105", p.v)
	}
	if p.w {
		t.Fatalf("w after two $2006 writes = true, want false")
	}
}

func TestWriteCtrlSetsNametableBitsInT(t *testing.T) {
	p := newTestPPU()
	p.WriteRegister(0, 0x03)
	if p.t&0x0C00 != 0x0C00 {
		t.Fatalf("t nametable bits = %#04x, want 0x0C00 set", p.t&0x0C00)
	}
}

func TestWriteCtrlRaisesNMIOnRisingEdgeDuringVBlank(t *testing.T) {
	p := newTestPPU()
	p.status = 0x80
	p.WriteRegister(0, 0x80)
	if !p.ConsumeNMI() {
		t.Fatalf("ConsumeNMI() = false, want true after ctrl bit7 0->1 during VBlank")
	}
}

func TestVBlankRaisedAtScanline241Dot1(t *testing.T) {
	p := newTestPPU()
	p.mask = 0x00 // rendering disabled keeps Step()'s scroll logic inert
	p.scanline, p.cycle = 241, 1
	p.Step()
	if p.status&0x80 == 0 {
		t.Fatalf("status after scanline241/dot1 = %#02x, want bit 7 set", p.status)
	}
}

func TestFrameReadyRaisedEnteringPostRenderScanline(t *testing.T) {
	p := newTestPPU()
	p.mask = 0x00
	p.scanline, p.cycle = 240, 0
	p.Step()
	if !p.ConsumeFrameReady() {
		t.Fatalf("ConsumeFrameReady() = false, want true entering post-render scanline")
	}
}

func TestStepAdvancesCycleAndScanline(t *testing.T) {
	p := newTestPPU()
	p.cycle = cyclesPerScanline - 1
	p.scanline = 10
	p.Step()
	if p.cycle != 0 || p.scanline != 11 {
		t.Fatalf("(cycle, scanline) = (%d, %d), want (0, 11)", p.cycle, p.scanline)
	}
}

func TestCHRFallsThroughToMapper(t *testing.T) {
	fm := &fakeMapper{mirroring: rom.MirrorVertical}
	fm.chr[0x0010] = 0x55
	p := New(fm)
	if got := p.readVRAMBus(0x0010); got != 0x55 {
		t.Fatalf("readVRAMBus(0x10) = %#02x, want 0x55", got)
	}
}
