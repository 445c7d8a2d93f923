package ppu

// evaluateSprites runs the three fixed points of the sprite pipeline
// within a visible scanline: clearing secondary OAM at dot 1, scanning
// primary OAM for in-range sprites at dot 65, and fetching pattern
// bytes for the found sprites at dot 257.
func (p *PPU) evaluateSprites() {
	switch p.cycle {
	case 1:
		for i := range p.secondaryOAM {
			p.secondaryOAM[i] = 0xFF
		}
	case 65:
		p.scanSecondaryOAM()
	case 257:
		p.fetchSpritePatterns()
	}
}

func (p *PPU) scanSecondaryOAM() {
	scanline := uint16(p.scanline)
	height := uint16(p.spriteHeight())

	found := 0
	overflowScanStart := -1
	for i, s := range p.oam {
		y := uint16(s.y)
		if y <= scanline && scanline < y+height {
			if found < 8 {
				p.secondaryOAM[found] = uint8(i)
				found++
			} else {
				overflowScanStart = i
				break
			}
		}
	}

	if overflowScanStart >= 0 {
		p.status |= 0x20
	}
}

func (p *PPU) fetchSpritePatterns() {
	for i := range p.spriteCache {
		p.spriteCache[i] = 0xFFFF
	}

	height := p.spriteHeight()

	for slot := 0; slot < 8; slot++ {
		j := p.secondaryOAM[slot]
		if j == 0xFF {
			break
		}
		s := p.oam[j]

		vFlip := s.attr&0x80 != 0
		hFlip := s.attr&0x40 != 0

		row := uint8(uint16(p.scanline) - uint16(s.y))

		var table uint16
		var tileNum uint8
		var fineRow uint8

		if height == 8 {
			if vFlip {
				fineRow = 7 - row
			} else {
				fineRow = row
			}
			table = (uint16(p.ctrl) & 0x08) << 9
			tileNum = s.tile
		} else {
			if vFlip {
				fineRow = 15 - row
			} else {
				fineRow = row
			}
			table = (uint16(s.tile) & 1) << 12
			tileNum = (s.tile &^ 1) | (fineRow >> 3)
			fineRow &= 0x7
		}

		addr := table | (uint16(tileNum) << 4) | uint16(fineRow)
		ptLo := p.readVRAMBus(addr)
		ptHi := p.readVRAMBus(addr + 8)

		if hFlip {
			ptLo = reverseByte(ptLo)
			ptHi = reverseByte(ptHi)
		}

		palette := s.attr & 0x03
		x := int(s.x)
		xMax := x + 8
		if xMax > 256 {
			xMax = 256
		}

		for col := xMax - 1; col >= x; col-- {
			if p.spriteCache[col] == 0xFFFF {
				sp := uint16((palette<<2)|((ptHi&1)<<1)|(ptLo&1))
				if sp&3 != 0 {
					var isSpriteZero uint16
					if j == 0 {
						isSpriteZero = 1
					}
					priority := uint16((s.attr >> 5) & 1)
					p.spriteCache[col] = (isSpriteZero << 15) | (priority << 8) | sp
				}
			}
			ptHi >>= 1
			ptLo >>= 1
		}
	}
}

func reverseByte(x uint8) uint8 {
	x = (x&0xAA)>>1 | (x&0x55)<<1
	x = (x&0xCC)>>2 | (x&0x33)<<2
	x = (x&0xF0)>>4 | (x&0x0F)<<4
	return x
}

// loadShiftRegisters runs the repeating 8-dot background fetch
// schedule across dots 1-256 and 321-336, plus the two dummy nametable
// fetches at 337/339 real hardware performs for MMC3-style IRQ timing.
func (p *PPU) loadShiftRegisters() {
	switch {
	case p.cycle >= 1 && p.cycle <= 256, p.cycle >= 321 && p.cycle <= 336:
		switch (p.cycle - 1) % 8 {
		case 0:
			p.ntByte = p.fetchNametableByte()
		case 2:
			p.atByte = p.fetchAttributeByte()
			if p.coarseY()&2 != 0 {
				p.atByte >>= 4
			}
			if p.coarseX()&2 != 0 {
				p.atByte >>= 2
			}
		case 4:
			addr := p.bgPatternTableAddress() + uint16(p.ntByte)*16 + p.fineY()
			p.ptLatchLo = p.readVRAMBus(addr)
		case 6:
			addr := p.bgPatternTableAddress() + uint16(p.ntByte)*16 + p.fineY()
			p.ptLatchHi = p.readVRAMBus(addr + 8)
		case 7:
			p.reloadShifters()
		}
	case p.cycle >= 257 && p.cycle <= 320:
		if p.cycle == 257 {
			p.reloadShifters()
		}
	case p.cycle == 337, p.cycle == 339:
		p.ntByte = p.fetchNametableByte()
	}
}

func (p *PPU) reloadShifters() {
	p.ptShifterLo = (p.ptShifterLo &^ 0x00FF) | uint16(p.ptLatchLo)
	p.ptShifterHi = (p.ptShifterHi &^ 0x00FF) | uint16(p.ptLatchHi)
	p.atLatchLo = p.atByte & 1
	p.atLatchHi = p.atByte & 2
}

func (p *PPU) fetchNametableByte() uint8 {
	addr := 0x2000 | (p.v & 0x0FFF)
	return p.readVRAMBus(addr)
}

func (p *PPU) fetchAttributeByte() uint8 {
	addr := 0x23C0 | (p.v & 0x0C00) | ((p.v >> 4) & 0x38) | ((p.v >> 2) & 0x07)
	return p.readVRAMBus(addr)
}

// loadPixel composites and writes one pixel into the frame buffer for
// the current (scanline, cycle), then advances the background shifters.
func (p *PPU) loadPixel() {
	if p.scanline >= 240 || p.cycle > 256 || p.cycle == 0 {
		return
	}

	var bgPixel, bgPalette uint8
	if p.maskBgEnabled() {
		if p.cycle >= 8 || p.maskBgLeftEnabled() {
			fineX := p.x & 0x7
			shift := 15 - uint16(fineX)
			bgPixel = uint8((((p.ptShifterHi >> shift) & 1) << 1) | ((p.ptShifterLo >> shift) & 1))
			bgPalette = ((((p.atShifterHi >> (7 - fineX)) & 1) << 1) | ((p.atShifterLo >> (7 - fineX)) & 1)) << 2
		}
	}

	var spritePixel, spritePalette uint8
	var spritePriority bool
	if p.maskSpriteEnabled() {
		if p.cycle >= 8 || p.maskSpriteLeftEnabled() {
			x := p.cycle - 1
			sp := p.spriteCache[x]
			if sp != 0xFFFF {
				if sp>>15 == 1 && bgPixel != 0 && x != 0xFF {
					p.status |= 0x40
				}
				spritePriority = (sp>>8)&1 != 0
				paletteAndPixel := sp & 0xFF
				spritePixel = uint8(paletteAndPixel & 0x03)
				if spritePixel != 0 {
					spritePalette = uint8((paletteAndPixel & 0x0C) | 0x10)
				}
			}
		}
	}

	var finalPixel, finalPalette uint8
	switch {
	case bgPixel == 0 && spritePixel == 0:
		finalPixel, finalPalette = 0, 0
	case bgPixel == 0:
		finalPixel, finalPalette = spritePixel, spritePalette
	case spritePixel == 0:
		finalPixel, finalPalette = bgPixel, bgPalette
	case spritePriority:
		finalPixel, finalPalette = bgPixel, bgPalette
	default:
		finalPixel, finalPalette = spritePixel, spritePalette
	}

	var paletteIdx uint8
	if finalPixel != 0 {
		paletteIdx = finalPalette | finalPixel
	}

	color := p.paletteRead(uint16(paletteIdx)) & 0x3F
	x := p.cycle - 1
	y := p.scanline
	idx := (y*screenWidth + x) * 3

	p.frameBuffer[idx] = masterPalette[int(color)*3]
	p.frameBuffer[idx+1] = masterPalette[int(color)*3+1]
	p.frameBuffer[idx+2] = masterPalette[int(color)*3+2]

	p.ptShifterLo <<= 1
	p.ptShifterHi <<= 1
	p.atShifterLo = (p.atShifterLo << 1) | p.atLatchLo
	p.atShifterHi = (p.atShifterHi << 1) | p.atLatchHi
}

// updateScroll runs the v/t scroll-register transfer schedule that
// applies regardless of whether the current dot also fetches a tile.
func (p *PPU) updateScroll() {
	if !p.renderingEnabled() {
		return
	}
	if p.scanline >= 240 && p.scanline != 261 {
		return
	}

	if (p.cycle > 0 && p.cycle <= 256) || (p.cycle >= 321 && p.cycle <= 336) {
		if p.cycle%8 == 0 {
			p.incrementCoarseX()
		}
	}
	if p.cycle == 256 {
		p.incrementY()
	}
	if p.cycle == 257 {
		p.copyHorizontalBits()
	}
	if p.scanline == 261 && p.cycle >= 280 && p.cycle <= 304 {
		p.copyVerticalBits()
	}
}

func (p *PPU) incrementCoarseX() {
	if p.v&0x001F == 31 {
		p.v &^= 0x001F
		p.v ^= 0x0400
	} else {
		p.v++
	}
}

func (p *PPU) incrementY() {
	if p.v&0x7000 != 0x7000 {
		p.v += 0x1000
		return
	}
	p.v &^= 0x7000
	y := (p.v & 0x03E0) >> 5
	switch y {
	case 29:
		y = 0
		p.v ^= 0x0800
	case 31:
		y = 0
	default:
		y++
	}
	p.v = (p.v &^ 0x03E0) | (y << 5)
}

func (p *PPU) copyHorizontalBits() {
	p.v = (p.v &^ 0x041F) | (p.t & 0x041F)
}

func (p *PPU) copyVerticalBits() {
	const yMask = 0x7000 | 0x0800 | 0x03E0
	p.v = (p.v &^ uint16(yMask)) | (p.t & yMask)
}

func (p *PPU) fineY() uint16    { return (p.v >> 12) & 7 }
func (p *PPU) coarseY() uint16  { return (p.v & 0x03E0) >> 5 }
func (p *PPU) coarseX() uint16  { return p.v & 0x001F }

func (p *PPU) spriteHeight() uint8 {
	if p.ctrl&0x20 != 0 {
		return 16
	}
	return 8
}

func (p *PPU) bgPatternTableAddress() uint16 {
	if p.ctrl&0x10 != 0 {
		return 0x1000
	}
	return 0
}

func (p *PPU) renderingEnabled() bool     { return p.mask&0x18 != 0 }
func (p *PPU) maskBgEnabled() bool        { return p.mask&0x08 != 0 }
func (p *PPU) maskSpriteEnabled() bool    { return p.mask&0x10 != 0 }
func (p *PPU) maskBgLeftEnabled() bool    { return p.mask&0x02 != 0 }
func (p *PPU) maskSpriteLeftEnabled() bool { return p.mask&0x04 != 0 }
