package mapper

import (
	"github.com/nes-core/gones/internal/memory"
	"github.com/nes-core/gones/internal/rom"
)

// mapper0 is NROM: fixed 16KiB or 32KiB PRG-ROM, fixed 8KiB CHR-ROM or
// CHR-RAM, no bank switching at all.
type mapper0 struct {
	prg []uint8
	chr []uint8

	chrRAM    *memory.Region
	prgRAM    *memory.Region
	mirroring rom.Mirroring
}

func newMapper0(img *rom.Image) *mapper0 {
	chr, chrRAM := chrStorage(img)
	return &mapper0{
		prg:       img.PRG,
		chr:       chr,
		chrRAM:    chrRAM,
		prgRAM:    memory.NewRegion(8 * 1024),
		mirroring: img.Header.Mirroring,
	}
}

func (m *mapper0) Read(addr uint16) uint8 {
	switch {
	case addr >= 0x6000 && addr <= 0x7FFF:
		return m.prgRAM.Read(uint32(addr - 0x6000))
	case addr >= 0x8000:
		off := int(addr-0x8000) % len(m.prg)
		return m.prg[off]
	default:
		return 0
	}
}

func (m *mapper0) Write(addr uint16, value uint8) {
	switch {
	case addr >= 0x6000 && addr <= 0x7FFF:
		m.prgRAM.Write(uint32(addr-0x6000), value)
	default:
		// Writes into $8000-$FFFF target PRG-ROM and are ignored: NROM
		// has no registers to shift into.
	}
}

func (m *mapper0) ReadCHR(addr uint16) uint8 {
	if m.chr != nil {
		return m.chr[int(addr)%len(m.chr)]
	}
	return m.chrRAM.Read(uint32(addr))
}

func (m *mapper0) WriteCHR(addr uint16, value uint8) {
	if m.chr != nil {
		return // CHR-ROM: writes have no effect.
	}
	m.chrRAM.Write(uint32(addr), value)
}

func (m *mapper0) Mirroring() rom.Mirroring {
	return m.mirroring
}
