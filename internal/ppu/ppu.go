// Package ppu implements the NES picture processing unit: the
// scanline/dot timing state machine, the background shift-register
// pipeline, sprite evaluation, and the composited frame buffer.
package ppu

import (
	"github.com/nes-core/gones/internal/mapper"
	"github.com/nes-core/gones/internal/memory"
)

const (
	vramSize         = 0x800
	scanlinesPerFrame = 262
	cyclesPerScanline = 341

	screenWidth  = 256
	screenHeight = 240
)

type sprite struct {
	y, tile, attr, x uint8
}

// PPU is a single NTSC picture processing unit wired to one cartridge
// mapper. It has no goroutines or timers of its own: Step must be
// called once per PPU dot; the CPU does so through the bus that owns
// the PPU.
type PPU struct {
	ctrl, mask, status, oamAddr uint8

	v, t uint16
	x    uint8
	w    bool

	oddFrame bool

	vramBuffer uint8
	openBus    uint8

	vram    *memory.Region
	palette [32]uint8
	cart    mapper.Mapper

	oam          [64]sprite
	secondaryOAM [8]uint8
	spriteCache  [256]uint16

	triggerNMI bool
	cycle      int
	scanline   int

	frameReady  bool
	frameBuffer [screenWidth * screenHeight * 3]uint8

	ntByte, atByte                 uint8
	atLatchLo, atLatchHi           uint8
	ptLatchLo, ptLatchHi           uint8
	atShifterLo, atShifterHi       uint8
	ptShifterLo, ptShifterHi       uint16
}

// New constructs a PPU bound to the given cartridge mapper. cart may be
// nil before a ROM is loaded; SetCartridge must be called before Step.
func New(cart mapper.Mapper) *PPU {
	p := &PPU{
		vram: memory.NewRegion(vramSize),
		cart: cart,
	}
	for i := range p.secondaryOAM {
		p.secondaryOAM[i] = 0xFF
	}
	for i := range p.spriteCache {
		p.spriteCache[i] = 0xFFFF
	}
	return p
}

// SetCartridge rebinds the PPU to a newly loaded cartridge's mapper.
func (p *PPU) SetCartridge(cart mapper.Mapper) {
	p.cart = cart
}

// Reset restores power-on state. Power-on/reset leave the OAM and
// nametable contents undefined on real hardware; this implementation
// zeroes them for determinism.
func (p *PPU) Reset() {
	p.ctrl, p.mask, p.status, p.oamAddr = 0, 0, 0, 0
	p.v, p.t, p.x, p.w = 0, 0, 0, false
	p.oddFrame = false
	p.vramBuffer = 0
	p.openBus = 0
	p.cycle, p.scanline = 0, 0
	p.triggerNMI, p.frameReady = false, false
	p.vram.Clear()
	p.palette = [32]uint8{}
	p.oam = [64]sprite{}
	for i := range p.secondaryOAM {
		p.secondaryOAM[i] = 0xFF
	}
	for i := range p.spriteCache {
		p.spriteCache[i] = 0xFFFF
	}
}

// FrameBuffer returns the last composited frame as packed RGB triples,
// row-major, 256x240.
func (p *PPU) FrameBuffer() []uint8 {
	return p.frameBuffer[:]
}

// ConsumeNMI reports and clears whether this Step produced a VBlank
// NMI edge.
func (p *PPU) ConsumeNMI() bool {
	fired := p.triggerNMI
	p.triggerNMI = false
	return fired
}

// ConsumeFrameReady reports and clears whether a fresh frame completed.
func (p *PPU) ConsumeFrameReady() bool {
	ready := p.frameReady
	p.frameReady = false
	return ready
}

// Step advances the PPU by exactly one dot.
func (p *PPU) Step() {
	render := p.renderingEnabled()

	switch scanlineKind(p.scanline) {
	case kindPreRender:
		if p.cycle == 0 {
			p.oddFrame = !p.oddFrame
		}
		if render {
			p.loadPixel()
			p.loadShiftRegisters()
		}
	case kindVisible:
		if render {
			p.evaluateSprites()
			p.loadPixel()
			p.loadShiftRegisters()
		}
	case kindPostRender:
		if p.cycle == 0 {
			p.frameReady = true
		}
	case kindVBlank:
		if p.scanline == 241 && p.cycle == 1 {
			p.status |= 0x80
			if p.ctrl&0x80 != 0 {
				p.triggerNMI = true
			}
		}
	}

	skip := p.scanline == 261 && p.cycle == 339 && p.oddFrame && render
	if skip {
		p.cycle = 0
		p.scanline = 0
	} else {
		p.cycle++
		if p.cycle >= cyclesPerScanline {
			p.cycle = 0
			p.scanline = (p.scanline + 1) % scanlinesPerFrame
		}
	}

	p.updateScroll()
}

type scanlineKindT int

const (
	kindVisible scanlineKindT = iota
	kindPostRender
	kindVBlank
	kindPreRender
)

func scanlineKind(scanline int) scanlineKindT {
	switch {
	case scanline <= 239:
		return kindVisible
	case scanline == 240:
		return kindPostRender
	case scanline <= 260:
		return kindVBlank
	default:
		return kindPreRender
	}
}
