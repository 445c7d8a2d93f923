package rom

import (
	"fmt"
	"io"

	"github.com/golang/glog"
)

// Image is a fully loaded cartridge: the parsed header plus the raw
// PRG/CHR banks a mapper reads from. CHR is nil when the cartridge
// declares CHR-RAM instead of CHR-ROM.
type Image struct {
	Header Header
	PRG    []byte
	CHR    []byte
}

// Load reads an iNES/NES 2.0 image from r in full and parses it.
func Load(r io.Reader) (*Image, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("rom: read: %w", err)
	}
	return loadBytes(raw)
}

func loadBytes(raw []byte) (*Image, error) {
	if len(raw) < headerSize {
		return nil, fmt.Errorf("rom: file too short for a header (%d bytes)", len(raw))
	}
	if raw[0] != 'N' || raw[1] != 'E' || raw[2] != 'S' || raw[3] != 0x1A {
		return nil, fmt.Errorf("rom: bad magic number %q", raw[:4])
	}

	header, err := parseHeader(raw)
	if err != nil {
		return nil, err
	}
	if header.PRGROMSize == 0 {
		return nil, fmt.Errorf("rom: header declares zero PRG-ROM banks")
	}

	offset := headerSize
	if header.Trainer {
		offset += 512
	}

	prgEnd := offset + int(header.PRGROMSize)
	if prgEnd > len(raw) {
		return nil, fmt.Errorf("rom: file too short for declared PRG-ROM size (%d bytes needed, have %d)", prgEnd, len(raw))
	}
	prg := raw[offset:prgEnd]

	var chr []byte
	if header.CHRROMSize > 0 {
		chrEnd := prgEnd + int(header.CHRROMSize)
		if chrEnd > len(raw) {
			return nil, fmt.Errorf("rom: file too short for declared CHR-ROM size (%d bytes needed, have %d)", chrEnd, len(raw))
		}
		chr = raw[prgEnd:chrEnd]
	}

	glog.V(1).Infof("rom: loaded mapper=%d prg=%dKiB chr=%dKiB mirroring=%s version=%d",
		header.MapperNumber, header.PRGROMSize/1024, header.CHRROMSize/1024, header.Mirroring, header.Version)

	return &Image{Header: header, PRG: prg, CHR: chr}, nil
}
