package cpu

// AddressingMode identifies how an instruction's operand address is
// computed.
type AddressingMode int

const (
	ModeImplied AddressingMode = iota
	ModeAccumulator
	ModeImmediate
	ModeZeroPage
	ModeZeroPageX
	ModeZeroPageY
	ModeAbsolute
	ModeAbsoluteX
	ModeAbsoluteY
	ModeIndirect
	ModeIndirectX
	ModeIndirectY
	ModeRelative
)

// fetchOperandAddr computes the effective address for every mode
// except Implied/Accumulator/Immediate (use fetchOperand for those),
// advancing PC past the operand bytes and returning any page-crossing
// cycle penalty.
func (c *CPU) fetchOperandAddr(mode AddressingMode) (uint16, uint8) {
	switch mode {
	case ModeAbsolute:
		lo := uint16(c.readByte(c.PC))
		c.PC++
		hi := uint16(c.readByte(c.PC))
		c.PC++
		return hi<<8 | lo, 0

	case ModeAbsoluteX:
		lo := uint16(c.readByte(c.PC))
		c.PC++
		hi := uint16(c.readByte(c.PC))
		c.PC++
		base := hi<<8 | lo
		addr := base + uint16(c.X)
		return addr, pageBoundaryCycle(addr, base)

	case ModeAbsoluteY:
		lo := uint16(c.readByte(c.PC))
		c.PC++
		hi := uint16(c.readByte(c.PC))
		c.PC++
		base := hi<<8 | lo
		addr := base + uint16(c.Y)
		return addr, pageBoundaryCycle(addr, base)

	case ModeAccumulator, ModeImmediate, ModeImplied:
		return 0, 0

	case ModeIndirect:
		addrLo := uint16(c.readByte(c.PC))
		c.PC++
		addrHi := uint16(c.readByte(c.PC))
		c.PC++
		addr := addrHi<<8 | addrLo

		// Hardware bug: a pointer at $xxFF wraps the high-byte fetch
		// back to $xx00 instead of crossing into the next page.
		hiAddr := addr + 1
		if addrLo&0xFF == 0xFF {
			hiAddr = addr & 0xFF00
		}

		targetLo := uint16(c.readByte(addr))
		targetHi := uint16(c.readByte(hiAddr))
		return targetHi<<8 | targetLo, 0

	case ModeIndirectX:
		zp := c.readByte(c.PC)
		c.PC++
		effective := zp + c.X
		targetLo := uint16(c.readByte(uint16(effective)))
		targetHi := uint16(c.readByte(uint16(effective + 1)))
		return targetHi<<8 | targetLo, 0

	case ModeIndirectY:
		zp := c.readByte(c.PC)
		c.PC++
		baseLo := uint16(c.readByte(uint16(zp)))
		baseHi := uint16(c.readByte(uint16(zp + 1)))
		base := baseHi<<8 | baseLo
		addr := base + uint16(c.Y)
		return addr, pageBoundaryCycle(addr, base)

	case ModeRelative:
		offset := int8(c.readByte(c.PC))
		c.PC++
		addr := uint16(int32(c.PC) + int32(offset))
		return addr, pageBoundaryCycle(c.PC, addr)

	case ModeZeroPage:
		addr := uint16(c.readByte(c.PC))
		c.PC++
		return addr, 0

	case ModeZeroPageX:
		addr := c.readByte(c.PC)
		c.PC++
		return uint16(addr + c.X), 0

	case ModeZeroPageY:
		addr := c.readByte(c.PC)
		c.PC++
		return uint16(addr + c.Y), 0

	default:
		return 0, 0
	}
}

// fetchOperand reads an Immediate-mode operand byte, advancing PC.
func (c *CPU) fetchOperand() uint8 {
	addr := c.PC
	c.PC++
	return c.readByte(addr)
}

func pageBoundaryCycle(addr1, addr2 uint16) uint8 {
	if addr1&0xFF00 != addr2&0xFF00 {
		return 1
	}
	return 0
}
