// Package mapper implements cartridge mapper chips: the address
// translation and bank-switching logic sitting between the CPU/PPU
// buses and raw PRG/CHR storage.
package mapper

import (
	"fmt"

	"github.com/nes-core/gones/internal/memory"
	"github.com/nes-core/gones/internal/rom"
)

// Mapper is the interface the bus and PPU use to reach cartridge
// storage. addr is always in the caller's own address space — CPU
// space (0x4020-0xFFFF) for Read/Write, pattern-table space
// (0x0000-0x1FFF) for ReadCHR/WriteCHR.
type Mapper interface {
	Read(addr uint16) uint8
	Write(addr uint16, value uint8)
	ReadCHR(addr uint16) uint8
	WriteCHR(addr uint16, value uint8)

	// Mirroring reports the current nametable mirroring mode. NROM
	// returns the cartridge header's fixed value; MMC1 switches it at
	// runtime from its control register. Keeping it a method means the
	// PPU never needs a type switch.
	Mirroring() rom.Mirroring
}

// New selects and constructs the mapper named by the cartridge header.
// Unsupported mapper numbers are a fatal load-time error, matching
// spec.md's cartridge-rejection requirement.
func New(img *rom.Image) (Mapper, error) {
	switch img.Header.MapperNumber {
	case 0:
		return newMapper0(img), nil
	case 1:
		return newMapper1(img), nil
	default:
		return nil, fmt.Errorf("mapper: unsupported mapper number %d", img.Header.MapperNumber)
	}
}

// chrStorage picks CHR-ROM when present, otherwise allocates the
// declared (or default 8KiB) CHR-RAM region.
func chrStorage(img *rom.Image) (rom []uint8, ram *memory.Region) {
	if len(img.CHR) > 0 {
		return img.CHR, nil
	}
	size := img.Header.CHRRAMSize
	if size == 0 {
		size = 8 * 1024
	}
	return nil, memory.NewRegion(int(size))
}
