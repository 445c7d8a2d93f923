package cpu

// instructionFunc executes one opcode's semantics and returns any
// extra cycles beyond the table's minCycles (page-crossing penalties,
// taken-branch penalties).
type instructionFunc func(*CPU, AddressingMode) uint8

type instruction struct {
	fn        instructionFunc
	mode      AddressingMode
	minCycles uint8
}

// opcodeTable maps every one of the 256 possible opcode bytes to its
// handler, addressing mode, and base cycle count, official and
// undocumented alike.
var opcodeTable = [256]instruction{
	{brk, ModeImplied, 7}, {ora, ModeIndirectX, 6}, {jam, ModeImplied, 0}, {slo, ModeIndirectX, 8}, // x00
	{nop, ModeZeroPage, 3}, {ora, ModeZeroPage, 3}, {asl, ModeZeroPage, 5}, {slo, ModeZeroPage, 5}, // x04
	{php, ModeImplied, 3}, {ora, ModeImmediate, 2}, {asl, ModeAccumulator, 2}, {anc, ModeImmediate, 4}, // x08
	{nop, ModeAbsolute, 4}, {ora, ModeAbsolute, 4}, {asl, ModeAbsolute, 6}, {slo, ModeAbsolute, 6}, // x0C
	{bpl, ModeRelative, 2}, {ora, ModeIndirectY, 5}, {jam, ModeImplied, 0}, {slo, ModeIndirectY, 8}, // x10
	{nop, ModeZeroPageX, 4}, {ora, ModeZeroPageX, 4}, {asl, ModeZeroPageX, 6}, {slo, ModeZeroPageX, 6}, // x14
	{clc, ModeImplied, 2}, {ora, ModeAbsoluteY, 4}, {nop, ModeImplied, 2}, {slo, ModeAbsoluteY, 7}, // x18
	{nop, ModeAbsoluteX, 4}, {ora, ModeAbsoluteX, 4}, {asl, ModeAbsoluteX, 7}, {slo, ModeAbsoluteX, 7}, // x1C
	{jsr, ModeAbsolute, 6}, {and, ModeIndirectX, 6}, {jam, ModeImplied, 0}, {rla, ModeIndirectX, 8}, // x20
	{bit, ModeZeroPage, 3}, {and, ModeZeroPage, 3}, {rol, ModeZeroPage, 5}, {rla, ModeZeroPage, 5}, // x24
	{plp, ModeImplied, 4}, {and, ModeImmediate, 2}, {rol, ModeAccumulator, 2}, {anc, ModeImmediate, 2}, // x28
	{bit, ModeAbsolute, 4}, {and, ModeAbsolute, 4}, {rol, ModeAbsolute, 6}, {rla, ModeAbsolute, 6}, // x2C
	{bmi, ModeRelative, 2}, {and, ModeIndirectY, 5}, {jam, ModeImplied, 0}, {rla, ModeIndirectY, 8}, // x30
	{nop, ModeZeroPageX, 4}, {and, ModeZeroPageX, 4}, {rol, ModeZeroPageX, 6}, {rla, ModeZeroPageX, 6}, // x34
	{sec, ModeImplied, 2}, {and, ModeAbsoluteY, 4}, {nop, ModeImplied, 2}, {rla, ModeAbsoluteY, 7}, // x38
	{nop, ModeAbsoluteX, 4}, {and, ModeAbsoluteX, 4}, {rol, ModeAbsoluteX, 7}, {rla, ModeAbsoluteX, 7}, // x3C
	{rti, ModeImplied, 6}, {eor, ModeIndirectX, 6}, {jam, ModeImplied, 0}, {sre, ModeIndirectX, 8}, // x40
	{nop, ModeZeroPage, 3}, {eor, ModeZeroPage, 3}, {lsr, ModeZeroPage, 5}, {sre, ModeZeroPage, 5}, // x44
	{pha, ModeImplied, 3}, {eor, ModeImmediate, 2}, {lsr, ModeAccumulator, 2}, {alr, ModeImmediate, 2}, // x48
	{jmp, ModeAbsolute, 3}, {eor, ModeAbsolute, 4}, {lsr, ModeAbsolute, 6}, {sre, ModeAbsolute, 6}, // x4C
	{bvc, ModeRelative, 2}, {eor, ModeIndirectY, 5}, {jam, ModeImplied, 0}, {sre, ModeIndirectY, 8}, // x50
	{nop, ModeZeroPageX, 4}, {eor, ModeZeroPageX, 4}, {lsr, ModeZeroPageX, 6}, {sre, ModeZeroPageX, 6}, // x54
	{cli, ModeImplied, 2}, {eor, ModeAbsoluteY, 4}, {nop, ModeImplied, 2}, {sre, ModeAbsoluteY, 7}, // x58
	{nop, ModeAbsoluteX, 4}, {eor, ModeAbsoluteX, 4}, {lsr, ModeAbsoluteX, 7}, {sre, ModeAbsoluteX, 7}, // x5C
	{rts, ModeImplied, 6}, {adc, ModeIndirectX, 6}, {jam, ModeImplied, 0}, {rra, ModeIndirectX, 8}, // x60
	{nop, ModeZeroPage, 3}, {adc, ModeZeroPage, 3}, {ror, ModeZeroPage, 5}, {rra, ModeZeroPage, 5}, // x64
	{pla, ModeImplied, 4}, {adc, ModeImmediate, 2}, {ror, ModeAccumulator, 2}, {arr, ModeImmediate, 2}, // x68
	{jmp, ModeIndirect, 5}, {adc, ModeAbsolute, 4}, {ror, ModeAbsolute, 6}, {rra, ModeAbsolute, 6}, // x6C
	{bvs, ModeRelative, 2}, {adc, ModeIndirectY, 5}, {jam, ModeImplied, 0}, {rra, ModeIndirectY, 8}, // x70
	{nop, ModeZeroPageX, 4}, {adc, ModeZeroPageX, 4}, {ror, ModeZeroPageX, 6}, {rra, ModeZeroPageX, 6}, // x74
	{sei, ModeImplied, 2}, {adc, ModeAbsoluteY, 4}, {nop, ModeImplied, 2}, {rra, ModeAbsoluteY, 7}, // x78
	{nop, ModeAbsoluteX, 4}, {adc, ModeAbsoluteX, 4}, {ror, ModeAbsoluteX, 7}, {rra, ModeAbsoluteX, 7}, // x7C
	{nop, ModeImmediate, 2}, {sta, ModeIndirectX, 6}, {nop, ModeImmediate, 2}, {sax, ModeIndirectX, 6}, // x80
	{sty, ModeZeroPage, 3}, {sta, ModeZeroPage, 3}, {stx, ModeZeroPage, 3}, {sax, ModeZeroPage, 3}, // x84
	{dey, ModeImplied, 2}, {nop, ModeImmediate, 2}, {txa, ModeImplied, 2}, {ane, ModeImmediate, 2}, // x88
	{sty, ModeAbsolute, 4}, {sta, ModeAbsolute, 4}, {stx, ModeAbsolute, 4}, {sax, ModeAbsolute, 4}, // x8C
	{bcc, ModeRelative, 2}, {sta, ModeIndirectY, 6}, {jam, ModeImplied, 0}, {sha, ModeIndirectY, 6}, // x90
	{sty, ModeZeroPageX, 4}, {sta, ModeZeroPageX, 4}, {stx, ModeZeroPageY, 4}, {sax, ModeZeroPageY, 4}, // x94
	{tya, ModeImplied, 2}, {sta, ModeAbsoluteY, 5}, {txs, ModeImplied, 2}, {tas, ModeAbsoluteY, 5}, // x98
	{shy, ModeAbsoluteX, 5}, {sta, ModeAbsoluteX, 5}, {shx, ModeAbsoluteY, 5}, {sha, ModeAbsoluteY, 5}, // x9C
	{ldy, ModeImmediate, 2}, {lda, ModeIndirectX, 6}, {ldx, ModeImmediate, 2}, {lax, ModeIndirectX, 6}, // xA0
	{ldy, ModeZeroPage, 3}, {lda, ModeZeroPage, 3}, {ldx, ModeZeroPage, 3}, {lax, ModeZeroPage, 3}, // xA4
	{tay, ModeImplied, 2}, {lda, ModeImmediate, 2}, {tax, ModeImplied, 2}, {lxa, ModeImmediate, 2}, // xA8
	{ldy, ModeAbsolute, 4}, {lda, ModeAbsolute, 4}, {ldx, ModeAbsolute, 4}, {lax, ModeAbsolute, 4}, // xAC
	{bcs, ModeRelative, 2}, {lda, ModeIndirectY, 5}, {jam, ModeImplied, 0}, {lax, ModeIndirectY, 5}, // xB0
	{ldy, ModeZeroPageX, 4}, {lda, ModeZeroPageX, 4}, {ldx, ModeZeroPageY, 4}, {lax, ModeZeroPageY, 4}, // xB4
	{clv, ModeImplied, 2}, {lda, ModeAbsoluteY, 4}, {tsx, ModeImplied, 2}, {las, ModeAbsoluteY, 4}, // xB8
	{ldy, ModeAbsoluteX, 4}, {lda, ModeAbsoluteX, 4}, {ldx, ModeAbsoluteY, 4}, {lax, ModeAbsoluteY, 4}, // xBC
	{cpy, ModeImmediate, 2}, {cmp, ModeIndirectX, 6}, {nop, ModeImmediate, 2}, {dcp, ModeIndirectX, 8}, // xC0
	{cpy, ModeZeroPage, 3}, {cmp, ModeZeroPage, 3}, {dec, ModeZeroPage, 5}, {dcp, ModeZeroPage, 5}, // xC4
	{iny, ModeImplied, 2}, {cmp, ModeImmediate, 2}, {dex, ModeImplied, 2}, {sbx, ModeImmediate, 2}, // xC8
	{cpy, ModeAbsolute, 4}, {cmp, ModeAbsolute, 4}, {dec, ModeAbsolute, 6}, {dcp, ModeAbsolute, 6}, // xCC
	{bne, ModeRelative, 2}, {cmp, ModeIndirectY, 5}, {jam, ModeImplied, 0}, {dcp, ModeIndirectY, 8}, // xD0
	{nop, ModeZeroPageX, 4}, {cmp, ModeZeroPageX, 4}, {dec, ModeZeroPageX, 6}, {dcp, ModeZeroPageX, 6}, // xD4
	{cld, ModeImplied, 2}, {cmp, ModeAbsoluteY, 4}, {nop, ModeImplied, 2}, {dcp, ModeAbsoluteY, 7}, // xD8
	{nop, ModeAbsoluteX, 4}, {cmp, ModeAbsoluteX, 4}, {dec, ModeAbsoluteX, 7}, {dcp, ModeAbsoluteX, 7}, // xDC
	{cpx, ModeImmediate, 2}, {sbc, ModeIndirectX, 6}, {nop, ModeImmediate, 2}, {isc, ModeIndirectX, 8}, // xE0
	{cpx, ModeZeroPage, 3}, {sbc, ModeZeroPage, 3}, {inc, ModeZeroPage, 5}, {isc, ModeZeroPage, 5}, // xE4
	{inx, ModeImplied, 2}, {sbc, ModeImmediate, 2}, {nop, ModeImplied, 2}, {sbc, ModeImmediate, 2}, // xE8
	{cpx, ModeAbsolute, 4}, {sbc, ModeAbsolute, 4}, {inc, ModeAbsolute, 6}, {isc, ModeAbsolute, 6}, // xEC
	{beq, ModeRelative, 2}, {sbc, ModeIndirectY, 5}, {jam, ModeImplied, 0}, {isc, ModeIndirectY, 8}, // xF0
	{nop, ModeZeroPageX, 4}, {sbc, ModeZeroPageX, 4}, {inc, ModeZeroPageX, 6}, {isc, ModeZeroPageX, 6}, // xF4
	{sed, ModeImplied, 2}, {sbc, ModeAbsoluteY, 4}, {nop, ModeImplied, 2}, {isc, ModeAbsoluteY, 7}, // xF8
	{nop, ModeAbsoluteX, 4}, {sbc, ModeAbsoluteX, 4}, {inc, ModeAbsoluteX, 7}, {isc, ModeAbsoluteX, 7}, // xFC
}

// Access instructions.

func lda(c *CPU, mode AddressingMode) uint8 {
	var data uint8
	var cycles uint8
	if mode == ModeImmediate {
		data = c.fetchOperand()
	} else {
		addr, extra := c.fetchOperandAddr(mode)
		data = c.readByte(addr)
		cycles = extra
	}
	c.A = data
	c.setZeroNegative(c.A)
	return cycles
}

func sta(c *CPU, mode AddressingMode) uint8 {
	addr, cycles := c.fetchOperandAddr(mode)
	c.writeByte(addr, c.A)
	return cycles
}

func ldx(c *CPU, mode AddressingMode) uint8 {
	var data, cycles uint8
	if mode == ModeImmediate {
		data = c.fetchOperand()
	} else {
		addr, extra := c.fetchOperandAddr(mode)
		data, cycles = c.readByte(addr), extra
	}
	c.X = data
	c.setZeroNegative(c.X)
	return cycles
}

func stx(c *CPU, mode AddressingMode) uint8 {
	addr, cycles := c.fetchOperandAddr(mode)
	c.writeByte(addr, c.X)
	return cycles
}

func ldy(c *CPU, mode AddressingMode) uint8 {
	var data, cycles uint8
	if mode == ModeImmediate {
		data = c.fetchOperand()
	} else {
		addr, extra := c.fetchOperandAddr(mode)
		data, cycles = c.readByte(addr), extra
	}
	c.Y = data
	c.setZeroNegative(c.Y)
	return cycles
}

func sty(c *CPU, mode AddressingMode) uint8 {
	addr, cycles := c.fetchOperandAddr(mode)
	c.writeByte(addr, c.Y)
	return cycles
}

// Transfer instructions.

func tax(c *CPU, _ AddressingMode) uint8 { c.X = c.A; c.setZeroNegative(c.A); return 0 }
func txa(c *CPU, _ AddressingMode) uint8 { c.A = c.X; c.setZeroNegative(c.X); return 0 }
func tay(c *CPU, _ AddressingMode) uint8 { c.Y = c.A; c.setZeroNegative(c.A); return 0 }
func tya(c *CPU, _ AddressingMode) uint8 { c.A = c.Y; c.setZeroNegative(c.Y); return 0 }

// Arithmetic instructions.

func adc(c *CPU, mode AddressingMode) uint8 {
	var data, cycles uint8
	if mode == ModeImmediate {
		data = c.fetchOperand()
	} else {
		addr, extra := c.fetchOperandAddr(mode)
		data, cycles = c.readByte(addr), extra
	}

	result := uint16(c.A) + uint16(data) + uint16(c.carryBit())
	final := uint8(result)
	c.SetFlag(FlagCarry, result > 0xFF)
	c.SetFlag(FlagZero, final == 0)
	c.SetFlag(FlagNegative, final&0x80 != 0)
	c.SetFlag(FlagOverflow, (c.A^final)&(data^final)&0x80 != 0)
	c.A = final
	return cycles
}

func sbc(c *CPU, mode AddressingMode) uint8 {
	var data, cycles uint8
	if mode == ModeImmediate {
		data = c.fetchOperand()
	} else {
		addr, extra := c.fetchOperandAddr(mode)
		data, cycles = c.readByte(addr), extra
	}

	borrow := 1 - c.carryBit()
	result := c.A - data - borrow

	c.SetFlag(FlagCarry, int16(c.A)-int16(data)-int16(borrow) >= 0)
	c.setZeroNegative(result)
	c.SetFlag(FlagOverflow, (c.A^result)&(^(data^result))&0x80 != 0)
	c.A = result
	return cycles
}

func inc(c *CPU, mode AddressingMode) uint8 {
	addr, cycles := c.fetchOperandAddr(mode)
	result := c.readByte(addr) + 1
	c.setZeroNegative(result)
	c.writeByte(addr, result)
	return cycles
}

func dec(c *CPU, mode AddressingMode) uint8 {
	addr, cycles := c.fetchOperandAddr(mode)
	result := c.readByte(addr) - 1
	c.setZeroNegative(result)
	c.writeByte(addr, result)
	return cycles
}

func inx(c *CPU, _ AddressingMode) uint8 { c.X++; c.setZeroNegative(c.X); return 0 }
func dex(c *CPU, _ AddressingMode) uint8 { c.X--; c.setZeroNegative(c.X); return 0 }
func iny(c *CPU, _ AddressingMode) uint8 { c.Y++; c.setZeroNegative(c.Y); return 0 }
func dey(c *CPU, _ AddressingMode) uint8 { c.Y--; c.setZeroNegative(c.Y); return 0 }

// Shift instructions.

func asl(c *CPU, mode AddressingMode) uint8 {
	if mode == ModeAccumulator {
		c.SetFlag(FlagCarry, c.A&0x80 != 0)
		c.A <<= 1
		c.setZeroNegative(c.A)
		return 0
	}
	addr, cycles := c.fetchOperandAddr(mode)
	data := c.readByte(addr)
	c.SetFlag(FlagCarry, data&0x80 != 0)
	result := data << 1
	c.setZeroNegative(result)
	c.writeByte(addr, result)
	return cycles
}

func lsr(c *CPU, mode AddressingMode) uint8 {
	if mode == ModeAccumulator {
		c.SetFlag(FlagCarry, c.A&0x1 != 0)
		c.A >>= 1
		c.setZeroNegative(c.A)
		return 0
	}
	addr, cycles := c.fetchOperandAddr(mode)
	data := c.readByte(addr)
	c.SetFlag(FlagCarry, data&0x1 != 0)
	result := data >> 1
	c.writeByte(addr, result)
	c.setZeroNegative(result)
	return cycles
}

func rol(c *CPU, mode AddressingMode) uint8 {
	oldCarry := c.carryBit()
	if mode == ModeAccumulator {
		c.SetFlag(FlagCarry, c.A&0x80 != 0)
		c.A = (c.A << 1) | oldCarry
		c.setZeroNegative(c.A)
		return 0
	}
	addr, cycles := c.fetchOperandAddr(mode)
	data := c.readByte(addr)
	c.SetFlag(FlagCarry, data&0x80 != 0)
	result := (data << 1) | oldCarry
	c.setZeroNegative(result)
	c.writeByte(addr, result)
	return cycles
}

func ror(c *CPU, mode AddressingMode) uint8 {
	var oldCarry uint8
	if c.carryBit() != 0 {
		oldCarry = 0x80
	}
	if mode == ModeAccumulator {
		c.SetFlag(FlagCarry, c.A&0x1 != 0)
		c.A = (c.A >> 1) | oldCarry
		c.setZeroNegative(c.A)
		return 0
	}
	addr, cycles := c.fetchOperandAddr(mode)
	data := c.readByte(addr)
	c.SetFlag(FlagCarry, data&0x1 != 0)
	result := (data >> 1) | oldCarry
	c.setZeroNegative(result)
	c.writeByte(addr, result)
	return cycles
}

// Bitwise instructions.

func and(c *CPU, mode AddressingMode) uint8 {
	var data, cycles uint8
	if mode == ModeImmediate {
		data = c.fetchOperand()
	} else {
		addr, extra := c.fetchOperandAddr(mode)
		data, cycles = c.readByte(addr), extra
	}
	c.A &= data
	c.setZeroNegative(c.A)
	return cycles
}

func ora(c *CPU, mode AddressingMode) uint8 {
	var data, cycles uint8
	if mode == ModeImmediate {
		data = c.fetchOperand()
	} else {
		addr, extra := c.fetchOperandAddr(mode)
		data, cycles = c.readByte(addr), extra
	}
	c.A |= data
	c.setZeroNegative(c.A)
	return cycles
}

func eor(c *CPU, mode AddressingMode) uint8 {
	var data, cycles uint8
	if mode == ModeImmediate {
		data = c.fetchOperand()
	} else {
		addr, extra := c.fetchOperandAddr(mode)
		data, cycles = c.readByte(addr), extra
	}
	c.A ^= data
	c.setZeroNegative(c.A)
	return cycles
}

func bit(c *CPU, mode AddressingMode) uint8 {
	addr, cycles := c.fetchOperandAddr(mode)
	data := c.readByte(addr)
	c.SetFlag(FlagZero, c.A&data == 0)
	c.SetFlag(FlagOverflow, data&0x40 != 0)
	c.SetFlag(FlagNegative, data&0x80 != 0)
	return cycles
}

// Compare instructions.

func cmp(c *CPU, mode AddressingMode) uint8 {
	var data, cycles uint8
	if mode == ModeImmediate {
		data = c.fetchOperand()
	} else {
		addr, extra := c.fetchOperandAddr(mode)
		data, cycles = c.readByte(addr), extra
	}
	result := c.A - data
	c.SetFlag(FlagCarry, c.A >= data)
	c.SetFlag(FlagZero, c.A == data)
	c.SetFlag(FlagNegative, result&0x80 != 0)
	return cycles
}

func cpx(c *CPU, mode AddressingMode) uint8 {
	var data, cycles uint8
	if mode == ModeImmediate {
		data = c.fetchOperand()
	} else {
		addr, extra := c.fetchOperandAddr(mode)
		data, cycles = c.readByte(addr), extra
	}
	result := c.X - data
	c.SetFlag(FlagCarry, c.X >= data)
	c.SetFlag(FlagZero, c.X == data)
	c.SetFlag(FlagNegative, result&0x80 != 0)
	return cycles
}

func cpy(c *CPU, mode AddressingMode) uint8 {
	var data, cycles uint8
	if mode == ModeImmediate {
		data = c.fetchOperand()
	} else {
		addr, extra := c.fetchOperandAddr(mode)
		data, cycles = c.readByte(addr), extra
	}
	result := c.Y - data
	c.SetFlag(FlagCarry, c.Y >= data)
	c.SetFlag(FlagZero, c.Y == data)
	c.SetFlag(FlagNegative, result&0x80 != 0)
	return cycles
}

// Branch instructions.

func branch(c *CPU, mode AddressingMode, condition bool) uint8 {
	addr, pageCross := c.fetchOperandAddr(mode)
	if !condition {
		return 0
	}
	c.PC = addr
	return 1 + pageCross
}

func bcc(c *CPU, mode AddressingMode) uint8 { return branch(c, mode, !c.GetFlag(FlagCarry)) }
func bcs(c *CPU, mode AddressingMode) uint8 { return branch(c, mode, c.GetFlag(FlagCarry)) }
func beq(c *CPU, mode AddressingMode) uint8 { return branch(c, mode, c.GetFlag(FlagZero)) }
func bne(c *CPU, mode AddressingMode) uint8 { return branch(c, mode, !c.GetFlag(FlagZero)) }
func bpl(c *CPU, mode AddressingMode) uint8 { return branch(c, mode, !c.GetFlag(FlagNegative)) }
func bmi(c *CPU, mode AddressingMode) uint8 { return branch(c, mode, c.GetFlag(FlagNegative)) }
func bvc(c *CPU, mode AddressingMode) uint8 { return branch(c, mode, !c.GetFlag(FlagOverflow)) }
func bvs(c *CPU, mode AddressingMode) uint8 { return branch(c, mode, c.GetFlag(FlagOverflow)) }

// Jump instructions.

func jmp(c *CPU, mode AddressingMode) uint8 {
	addr, cycles := c.fetchOperandAddr(mode)
	c.PC = addr
	return cycles
}

func jsr(c *CPU, mode AddressingMode) uint8 {
	target, cycles := c.fetchOperandAddr(mode)
	returnAddr := c.PC - 1
	c.stackPush(uint8(returnAddr >> 8))
	c.stackPush(uint8(returnAddr))
	c.PC = target
	return cycles
}

func rts(c *CPU, _ AddressingMode) uint8 {
	lo := uint16(c.stackPop())
	hi := uint16(c.stackPop())
	c.PC = (hi<<8 | lo) + 1
	return 0
}

func brk(c *CPU, _ AddressingMode) uint8 {
	c.Interrupt(InterruptBRK)
	return 0
}

func rti(c *CPU, _ AddressingMode) uint8 {
	c.P = c.stackPop()
	c.SetFlag(FlagBreak, false)
	lo := uint16(c.stackPop())
	hi := uint16(c.stackPop())
	c.PC = hi<<8 | lo
	return 0
}

// Stack instructions.

func pha(c *CPU, _ AddressingMode) uint8 {
	c.stackPush(c.A)
	return 0
}

func pla(c *CPU, _ AddressingMode) uint8 {
	data := c.stackPop()
	c.setZeroNegative(data)
	c.A = data
	return 0
}

func php(c *CPU, _ AddressingMode) uint8 {
	c.stackPush(c.P | 0x30)
	return 0
}

func plp(c *CPU, _ AddressingMode) uint8 {
	data := c.stackPop()
	c.SetFlag(FlagCarry, data&0x1 != 0)
	c.SetFlag(FlagZero, data&0x2 != 0)
	c.updateInterruptDisablePending = true
	c.updateInterruptDisableValue = data & 0x4
	c.SetFlag(FlagBreak, false)
	c.SetFlag(FlagDecimal, data&0x8 != 0)
	c.SetFlag(FlagOverflow, data&0x40 != 0)
	c.SetFlag(FlagNegative, data&0x80 != 0)
	return 0
}

func txs(c *CPU, _ AddressingMode) uint8 { c.SP = c.X; return 0 }

func tsx(c *CPU, _ AddressingMode) uint8 {
	c.X = c.SP
	c.SetFlag(FlagZero, c.SP == 0)
	c.SetFlag(FlagNegative, c.SP&0x80 != 0)
	return 0
}

// Flag instructions.

func clc(c *CPU, _ AddressingMode) uint8 { c.SetFlag(FlagCarry, false); return 0 }
func sec(c *CPU, _ AddressingMode) uint8 { c.SetFlag(FlagCarry, true); return 0 }
func cli(c *CPU, _ AddressingMode) uint8 {
	c.updateInterruptDisablePending = true
	c.updateInterruptDisableValue = 0
	return 0
}
func sei(c *CPU, _ AddressingMode) uint8 {
	c.updateInterruptDisablePending = true
	c.updateInterruptDisableValue = 1
	return 0
}
func cld(c *CPU, _ AddressingMode) uint8 { c.SetFlag(FlagDecimal, false); return 0 }
func sed(c *CPU, _ AddressingMode) uint8 { c.SetFlag(FlagDecimal, true); return 0 }
func clv(c *CPU, _ AddressingMode) uint8 { c.SetFlag(FlagOverflow, false); return 0 }

// Undocumented opcodes.

func nop(c *CPU, mode AddressingMode) uint8 {
	switch mode {
	case ModeImplied:
		return 0
	case ModeImmediate:
		c.fetchOperand()
		return 0
	default:
		_, cycles := c.fetchOperandAddr(mode)
		return cycles
	}
}

// jam models a CPU lockup opcode. Real hardware halts the bus; the
// emulated core treats it as a zero-cycle no-op so a ROM that hits one
// by mistake doesn't wedge the host process.
func jam(_ *CPU, _ AddressingMode) uint8 { return 0 }

func slo(c *CPU, mode AddressingMode) uint8 {
	addr, cycles := c.fetchOperandAddr(mode)
	data := c.readByte(addr)
	c.SetFlag(FlagCarry, data&0x80 != 0)
	data <<= 1
	c.writeByte(addr, data)
	c.A |= data
	c.setZeroNegative(c.A)
	return cycles
}

func ane(c *CPU, _ AddressingMode) uint8 {
	// Unstable on real silicon; only well-defined for operand 0.
	c.fetchOperand()
	c.A = 0
	c.SetFlag(FlagZero, true)
	c.SetFlag(FlagNegative, false)
	return 0
}

func anc(c *CPU, _ AddressingMode) uint8 {
	operand := c.fetchOperand()
	c.A &= operand
	c.SetFlag(FlagCarry, c.A&0x80 != 0)
	c.setZeroNegative(c.A)
	return 0
}

func sre(c *CPU, mode AddressingMode) uint8 {
	addr, cycles := c.fetchOperandAddr(mode)
	data := c.readByte(addr)
	c.SetFlag(FlagCarry, data&0x01 != 0)
	data >>= 1
	c.writeByte(addr, data)
	c.A ^= data
	c.setZeroNegative(c.A)
	return cycles
}

func rla(c *CPU, mode AddressingMode) uint8 {
	addr, cycles := c.fetchOperandAddr(mode)
	data := c.readByte(addr)
	carryIn := c.carryBit()
	c.SetFlag(FlagCarry, data&0x80 != 0)
	data = (data << 1) | carryIn
	c.writeByte(addr, data)
	c.A &= data
	c.setZeroNegative(c.A)
	return cycles
}

func sax(c *CPU, mode AddressingMode) uint8 {
	addr, cycles := c.fetchOperandAddr(mode)
	c.writeByte(addr, c.A&c.X)
	return cycles
}

func rra(c *CPU, mode AddressingMode) uint8 {
	addr, cycles := c.fetchOperandAddr(mode)
	data := c.readByte(addr)
	oldCarry := c.carryBit()
	c.SetFlag(FlagCarry, data&0x01 != 0)
	data = (data >> 1) | (oldCarry << 7)
	c.writeByte(addr, data)

	carryIn := c.carryBit()
	temp := uint16(c.A) + uint16(data) + uint16(carryIn)
	c.SetFlag(FlagCarry, temp > 0xFF)
	result := uint8(temp)
	c.SetFlag(FlagOverflow, (c.A^result)&(data^result)&0x80 != 0)
	c.A = result
	c.setZeroNegative(result)
	return cycles
}

func dcp(c *CPU, mode AddressingMode) uint8 {
	addr, cycles := c.fetchOperandAddr(mode)
	data := c.readByte(addr) - 1
	c.writeByte(addr, data)
	result := c.A - data
	c.SetFlag(FlagCarry, c.A >= data)
	c.SetFlag(FlagZero, result == 0)
	c.SetFlag(FlagNegative, result&0x80 != 0)
	return cycles
}

func isc(c *CPU, mode AddressingMode) uint8 {
	addr, cycles := c.fetchOperandAddr(mode)
	data := c.readByte(addr) + 1
	c.writeByte(addr, data)

	carry := c.carryBit()
	value := ^data
	temp := uint16(c.A) + uint16(value) + uint16(carry)
	c.SetFlag(FlagCarry, temp > 0xFF)
	result := uint8(temp)
	c.SetFlag(FlagOverflow, (c.A^result)&(c.A^data)&0x80 != 0)
	c.A = result
	c.setZeroNegative(result)
	return cycles
}

func lxa(c *CPU, _ AddressingMode) uint8 {
	// Unstable on real silicon like ANE; A and X are both fixed to 0.
	c.fetchOperand()
	c.A = 0
	c.X = c.A
	c.SetFlag(FlagZero, true)
	c.SetFlag(FlagNegative, false)
	return 0
}

func las(c *CPU, mode AddressingMode) uint8 {
	addr, cycles := c.fetchOperandAddr(mode)
	data := c.readByte(addr)
	result := data & c.SP
	c.A = result
	c.X = result
	c.SP = result
	c.setZeroNegative(result)
	return cycles
}

func lax(c *CPU, mode AddressingMode) uint8 {
	addr, cycles := c.fetchOperandAddr(mode)
	data := c.readByte(addr)
	c.A = data
	c.X = c.A
	c.setZeroNegative(c.X)
	return cycles
}

func sbx(c *CPU, _ AddressingMode) uint8 {
	operand := c.fetchOperand()
	temp := c.A & c.X
	result := temp - operand
	c.X = result
	c.setZeroNegative(result)
	c.SetFlag(FlagCarry, temp >= operand)
	return 0
}

func sha(c *CPU, mode AddressingMode) uint8 {
	addr, cycles := c.fetchOperandAddr(mode)
	value := c.A & c.X & (uint8(addr>>8) + 1)
	c.writeByte(addr, value)
	return cycles
}

func shx(c *CPU, mode AddressingMode) uint8 {
	addr, cycles := c.fetchOperandAddr(mode)
	highByte := uint8(addr >> 8)
	value := c.X & (highByte + 1)

	effectiveAddr := addr
	if (addr&0xFF)+uint16(c.Y) > 0xFF {
		effectiveAddr = uint16(value)<<8 | ((addr & 0xFF) + uint16(c.Y))
	}
	c.writeByte(effectiveAddr, value)
	return cycles
}

func shy(c *CPU, mode AddressingMode) uint8 {
	addr, cycles := c.fetchOperandAddr(mode)
	highByte := uint8(addr >> 8)
	value := c.Y & (highByte + 1)

	effectiveAddr := addr
	if (addr&0xFF)+uint16(c.X) > 0xFF {
		effectiveAddr = uint16(value)<<8 | ((addr & 0xFF) + uint16(c.X))
	}
	c.writeByte(effectiveAddr, value)
	return cycles
}

func tas(c *CPU, mode AddressingMode) uint8 {
	addr, cycles := c.fetchOperandAddr(mode)
	c.SP = c.A & c.X
	value := c.SP & (uint8(addr>>8) + 1)
	c.writeByte(addr, value)
	return cycles
}

func arr(c *CPU, _ AddressingMode) uint8 {
	operand := c.fetchOperand()
	c.A &= operand

	oldCarry := c.carryBit()
	var signBit uint8
	if oldCarry != 0 {
		signBit = 0x80
	}
	c.A = (c.A >> 1) | signBit

	c.SetFlag(FlagCarry, c.A&0x40 != 0)
	c.SetFlag(FlagOverflow, ((c.A>>6)^(c.A>>5))&0x01 != 0)
	c.setZeroNegative(c.A)
	return 0
}

func alr(c *CPU, _ AddressingMode) uint8 {
	operand := c.fetchOperand()
	c.A &= operand
	c.SetFlag(FlagCarry, c.A&0x1 != 0)
	c.A >>= 1
	c.setZeroNegative(c.A)
	return 0
}
