// Package bus wires CPU address space 0x0000-0xFFFF to CPU RAM, the
// PPU, the controllers, and the cartridge mapper.
package bus

import (
	"github.com/nes-core/gones/internal/controller"
	"github.com/nes-core/gones/internal/mapper"
	"github.com/nes-core/gones/internal/memory"
	"github.com/nes-core/gones/internal/ppu"
)

const ramSize = 0x800

// Bus owns CPU RAM and the PPU, and routes every CPU-visible address
// to the right component. It has no behavior of its own beyond
// decoding — the CPU drives timing by stepping PPU directly and adding
// the cycles it spends to Cycles.
type Bus struct {
	ram *memory.Region
	PPU *ppu.PPU

	Pad1, Pad2 controller.Pad

	cart mapper.Mapper

	Cycles uint64
	Reset  bool

	dmaPending bool
	dmaPage    uint8

	controllerStrobe bool
}

// New constructs a bus with no cartridge loaded; SetCartridge must be
// called before Read/Write reach PRG space meaningfully.
func New() *Bus {
	return &Bus{
		ram: memory.NewRegion(ramSize),
		PPU: ppu.New(nil),
	}
}

// SetCartridge rebinds the bus (and its PPU) to a freshly loaded
// cartridge's mapper.
func (b *Bus) SetCartridge(cart mapper.Mapper) {
	b.cart = cart
	b.PPU.SetCartridge(cart)
}

// ignorePPUWrites suppresses the handful of PPU registers hardware
// leaves disconnected for the first ~29658 CPU cycles after reset,
// before internal PPU state has stabilized.
func (b *Bus) ignorePPUWrites() bool {
	return b.Reset && b.Cycles < 29658
}

// Read performs a CPU-side memory read.
func (b *Bus) Read(addr uint16) uint8 {
	switch {
	case addr < 0x2000:
		return b.ram.Read(uint32(addr & 0x7FF))
	case addr < 0x4000:
		return b.PPU.ReadRegister(addr & 7)
	case addr == 0x4016:
		return b.Pad1.Read()
	case addr == 0x4017:
		return b.Pad2.Read()
	case addr < 0x4020:
		return 0
	default:
		if b.cart == nil {
			return 0
		}
		return b.cart.Read(addr)
	}
}

// Write performs a CPU-side memory write.
func (b *Bus) Write(addr uint16, value uint8) {
	switch {
	case addr < 0x2000:
		b.ram.Write(uint32(addr&0x7FF), value)
	case addr < 0x4000:
		b.writePPURegister(addr&7, value)
	case addr == 0x4014:
		b.dmaPending = true
		b.dmaPage = value
	case addr == 0x4016:
		b.Pad1.Write(value)
		b.Pad2.Write(value)
	case addr == 0x4017:
		// APU frame counter: stubbed, out of scope for the core.
	case addr < 0x4020:
		// Remaining APU/IO registers: ignored.
	default:
		if b.cart != nil {
			b.cart.Write(addr, value)
		}
	}
}

func (b *Bus) writePPURegister(reg uint16, value uint8) {
	switch reg {
	case 0, 1, 5, 6:
		if b.ignorePPUWrites() {
			return
		}
	}
	b.PPU.WriteRegister(reg, value)
}

// DMAPending reports and clears a queued OAM DMA request from a $4014
// write, returning the source page.
func (b *Bus) DMAPending() (page uint8, pending bool) {
	if !b.dmaPending {
		return 0, false
	}
	b.dmaPending = false
	return b.dmaPage, true
}

// RunDMA copies 256 bytes from page*0x100 into OAM via the PPU's
// $2004 write path, matching real hardware's CPU-bus-driven DMA.
func (b *Bus) RunDMA(page uint8) {
	base := uint16(page) << 8
	for i := 0; i < 256; i++ {
		value := b.Read(base + uint16(i))
		b.PPU.WriteRegister(4, value)
	}
}
