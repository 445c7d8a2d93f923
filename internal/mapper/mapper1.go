package mapper

import (
	"github.com/nes-core/gones/internal/memory"
	"github.com/nes-core/gones/internal/rom"
)

// mapper1 is MMC1 (SxROM): a 5-bit serial shift register feeding four
// internal registers (control, chrBank0, chrBank1, prgBank) that select
// among switchable 4KiB/8KiB CHR banks and 16KiB/32KiB PRG banks.
type mapper1 struct {
	prg []uint8
	chr []uint8

	chrRAM *memory.Region
	prgRAM *memory.Region

	shiftRegister uint8
	shiftCount    uint8

	control  uint8
	chrBank0 uint8
	chrBank1 uint8
	prgBank  uint8

	mirroring rom.Mirroring
}

func newMapper1(img *rom.Image) *mapper1 {
	chr, chrRAM := chrStorage(img)
	return &mapper1{
		prg:           img.PRG,
		chr:           chr,
		chrRAM:        chrRAM,
		prgRAM:        memory.NewRegion(8 * 1024),
		shiftRegister: 0x10,
		control:       0x0C,
		mirroring:     img.Header.Mirroring,
	}
}

func (m *mapper1) chrLen() int {
	if m.chr != nil {
		return len(m.chr)
	}
	return m.chrRAM.Len()
}

func (m *mapper1) chrAddr(addr uint16) uint32 {
	chrMode := (m.control >> 4) & 1
	var bank, base uint32
	if chrMode == 0 {
		bank = uint32(m.chrBank0 & 0x1E)
		base = uint32(addr)
	} else if addr < 0x1000 {
		bank = uint32(m.chrBank0)
		base = uint32(addr)
	} else {
		bank = uint32(m.chrBank1)
		base = uint32(addr) - 0x1000
	}
	return (base + bank*0x1000) % uint32(m.chrLen())
}

func (m *mapper1) ReadCHR(addr uint16) uint8 {
	off := m.chrAddr(addr)
	if m.chr != nil {
		return m.chr[off]
	}
	return m.chrRAM.Read(off)
}

func (m *mapper1) WriteCHR(addr uint16, value uint8) {
	if m.chr != nil {
		return
	}
	m.chrRAM.Write(m.chrAddr(addr), value)
}

func (m *mapper1) prgAddr(addr uint16) uint32 {
	prgMode := (m.control >> 2) & 0x3
	var mapped uint32
	switch prgMode {
	case 0, 1:
		bank := uint32(m.prgBank & 0x0E)
		mapped = uint32(addr-0x8000) + bank*0x4000
	case 2:
		if addr < 0xC000 {
			mapped = uint32(addr - 0x8000)
		} else {
			mapped = uint32(addr-0xC000) + uint32(m.prgBank)*0x4000
		}
	case 3:
		if addr >= 0xC000 {
			mapped = uint32(addr-0xC000) + uint32(len(m.prg)-0x4000)
		} else {
			mapped = uint32(addr-0x8000) + uint32(m.prgBank)*0x4000
		}
	}
	return mapped % uint32(len(m.prg))
}

func (m *mapper1) Read(addr uint16) uint8 {
	switch {
	case addr >= 0x6000 && addr <= 0x7FFF:
		return m.prgRAM.Read(uint32(addr - 0x6000))
	case addr >= 0x8000:
		return m.prg[m.prgAddr(addr)]
	default:
		return 0
	}
}

func (m *mapper1) Write(addr uint16, value uint8) {
	switch {
	case addr >= 0x6000 && addr <= 0x7FFF:
		m.prgRAM.Write(uint32(addr-0x6000), value)
	case addr >= 0x8000:
		m.writeRegister(addr, value)
	}
}

// writeRegister implements the 5-write serial-shift protocol shared by
// every MMC1 register: a write with bit 7 set resets the shifter and
// forces PRG mode 3; otherwise the incoming bit is shifted in from the
// top, and the fifth write commits the accumulated 5-bit value to
// whichever register the address selects.
func (m *mapper1) writeRegister(addr uint16, value uint8) {
	if value&0x80 != 0 {
		m.shiftRegister = 0x10
		m.shiftCount = 0
		m.control |= 0x0C
		return
	}

	m.shiftRegister = (m.shiftRegister >> 1) | ((value & 1) << 4)
	m.shiftCount++

	if m.shiftCount != 5 {
		return
	}

	committed := m.shiftRegister
	switch addr & 0x6000 {
	case 0x0000:
		m.control = committed
	case 0x2000:
		m.chrBank0 = committed
	case 0x4000:
		m.chrBank1 = committed
	case 0x6000:
		m.prgBank = committed
	}
	m.shiftRegister = 0x10
	m.shiftCount = 0
}

func (m *mapper1) Mirroring() rom.Mirroring {
	switch m.control & 0x03 {
	case 0:
		return rom.MirrorSingleScreen
	case 1:
		return rom.MirrorSingleScreen
	case 2:
		return rom.MirrorVertical
	default:
		return rom.MirrorHorizontal
	}
}
