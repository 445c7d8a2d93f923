package ppu

// ReadRegister handles a CPU read from one of the eight PPU registers
// aliased across $2000-$3FFF (caller has already reduced addr to 0-7).
func (p *PPU) ReadRegister(reg uint16) uint8 {
	switch reg & 7 {
	case 2:
		return p.readStatus()
	case 4:
		return p.readOAMData()
	case 7:
		return p.readData()
	default:
		return p.openBus
	}
}

// WriteRegister handles a CPU write to one of the eight PPU registers.
func (p *PPU) WriteRegister(reg uint16, value uint8) {
	p.openBus = value
	switch reg & 7 {
	case 0:
		p.writeCtrl(value)
	case 1:
		p.mask = value
	case 3:
		p.oamAddr = value
	case 4:
		p.writeOAMData(value)
	case 5:
		p.writeScroll(value)
	case 6:
		p.writeAddr(value)
	case 7:
		p.writeData(value)
	}
}

func (p *PPU) writeCtrl(value uint8) {
	oldCtrl := p.ctrl
	p.ctrl = value
	if oldCtrl&0x80 == 0 && value&0x80 != 0 && p.status&0x80 != 0 {
		p.triggerNMI = true
	}
	p.t = (p.t &^ 0x0C00) | ((uint16(value) & 0x3) << 10)
}

func (p *PPU) readStatus() uint8 {
	data := p.status
	p.status &^= 0x80
	p.w = false
	p.openBus = (data & 0xE0) | (p.openBus & 0x1F)
	return data
}

// readOAMData is a simplified stand-in for the real $2004 read, which
// on hardware depends on rendering state and secondary-OAM timing.
func (p *PPU) readOAMData() uint8 {
	return 0xFF
}

func (p *PPU) writeOAMData(value uint8) {
	idx := p.oamAddr / 4
	field := p.oamAddr % 4
	switch field {
	case 0:
		p.oam[idx].y = value
	case 1:
		p.oam[idx].tile = value
	case 2:
		p.oam[idx].attr = value
	case 3:
		p.oam[idx].x = value
	}
	p.oamAddr++
}

func (p *PPU) writeScroll(value uint8) {
	if !p.w {
		p.x = value & 0x07
		p.t = (p.t &^ 0x001F) | (uint16(value) >> 3)
	} else {
		p.t = (p.t &^ 0x73E0) | ((uint16(value) & 0xF8) << 2) | ((uint16(value) & 0x07) << 12)
	}
	p.w = !p.w
}

func (p *PPU) writeAddr(value uint8) {
	if !p.w {
		p.t = (p.t &^ 0xFF00) | ((uint16(value) & 0x3F) << 8)
	} else {
		p.t = (p.t &^ 0x00FF) | uint16(value)
		p.v = p.t
	}
	p.w = !p.w
}

func (p *PPU) readData() uint8 {
	var data uint8
	if p.v&0x3FFF >= 0x3F00 {
		data = p.readVRAMBus(p.v)
	} else {
		data = p.vramBuffer
		p.vramBuffer = p.readVRAMBus(p.v)
	}
	p.incrementVRAMAddr()
	return data
}

func (p *PPU) writeData(value uint8) {
	p.writeVRAMBus(p.v, value)
	p.incrementVRAMAddr()
}

func (p *PPU) incrementVRAMAddr() {
	increment := uint16(1)
	if p.ctrl&0x04 != 0 {
		increment = 32
	}
	p.v = (p.v + increment) & 0x7FFF
}
