package ppu

import "github.com/nes-core/gones/internal/rom"

// readVRAMBus resolves the PPU's own 14-bit address space: pattern
// tables through the cartridge mapper, nametables through mirrored
// VRAM, and palette RAM directly.
func (p *PPU) readVRAMBus(addr uint16) uint8 {
	a := addr & 0x3FFF
	switch {
	case a < 0x2000:
		if p.cart != nil {
			return p.cart.ReadCHR(a)
		}
		return 0
	case a < 0x3F00:
		return p.vram.Read(uint32(p.mapNametableAddr(a)))
	case a < 0x4000:
		return p.paletteRead((a - 0x3F00) % 0x20)
	default:
		return p.openBus
	}
}

func (p *PPU) writeVRAMBus(addr uint16, value uint8) {
	a := addr & 0x3FFF
	p.openBus = value
	switch {
	case a < 0x2000:
		if p.cart != nil {
			p.cart.WriteCHR(a, value)
		}
	case a < 0x3000:
		p.vram.Write(uint32(p.mapNametableAddr(a)), value)
	case a < 0x3F00:
		p.writeVRAMBus(a-0x1000, value)
	case a < 0x4000:
		p.palette[(a-0x3F00)%0x20] = value
		if (a-0x3F00)%0x20%4 == 0 {
			p.palette[((a-0x3F00)%0x20)^0x10] = value
		}
	}
}

func (p *PPU) paletteRead(idx uint16) uint8 {
	return p.palette[idx]
}

// mapNametableAddr folds a 0x2000-0x3FFF nametable address down into
// the PPU's 2KiB physical VRAM according to cartridge mirroring.
func (p *PPU) mapNametableAddr(addr uint16) uint16 {
	a := addr
	if a >= 0x3000 {
		a -= 0x1000
	}

	nametable := (a - 0x2000) >> 10 & 0x3
	offset := (a - 0x2000) & 0x3FF

	mirroring := rom.MirrorHorizontal
	if p.cart != nil {
		mirroring = p.cart.Mirroring()
	}

	var table uint16
	switch mirroring {
	case rom.MirrorHorizontal:
		if nametable < 2 {
			table = 0
		} else {
			table = 1
		}
	case rom.MirrorVertical:
		table = nametable & 0x1
	case rom.MirrorSingleScreen:
		table = 0
	case rom.MirrorFourScreen:
		table = nametable
	}

	return table*0x400 + offset
}
