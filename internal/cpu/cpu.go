// Package cpu implements the 6502 core: registers, addressing modes,
// the full official and undocumented opcode set, and interrupt
// sequencing. It drives the system's timing — every Step charges the
// bus's cycle counter and walks the PPU forward in step.
package cpu

import (
	"github.com/nes-core/gones/internal/bus"
)

// StatusFlag is one bit of the processor status register P.
type StatusFlag uint8

const (
	FlagCarry            StatusFlag = 0x01
	FlagZero             StatusFlag = 0x02
	FlagInterruptDisable StatusFlag = 0x04
	FlagDecimal          StatusFlag = 0x08
	FlagBreak            StatusFlag = 0x10
	FlagUnused           StatusFlag = 0x20
	FlagOverflow         StatusFlag = 0x40
	FlagNegative         StatusFlag = 0x80
)

// Interrupt identifies which of the four 6502 interrupt vectors to
// service.
type Interrupt int

const (
	InterruptNMI Interrupt = iota
	InterruptReset
	InterruptIRQ
	InterruptBRK
)

const (
	nmiVector   = 0xFFFA
	resetVector = 0xFFFC
	irqVector   = 0xFFFE
)

// CPU is a single 6502 core wired to one bus. It owns no goroutines;
// Step executes exactly one instruction and advances the PPU the
// corresponding number of dots.
type CPU struct {
	A, X, Y uint8
	PC      uint16
	SP      uint8
	P       uint8

	bus *bus.Bus

	// updateInterruptDisable defers the I flag update one instruction,
	// matching real 6502 behavior where SEI/CLI/PLP take effect only
	// after the instruction following them has been fetched.
	updateInterruptDisablePending bool
	updateInterruptDisableValue   uint8
}

// New constructs a CPU wired to b. Call Reset before Step to bring the
// core to its documented power-up/reset state.
func New(b *bus.Bus) *CPU {
	return &CPU{
		PC:  0xFFFC,
		P:   0x24,
		bus: b,
	}
}

// Reset performs the RESET sequence: load PC from the reset vector,
// retreat SP by 3, set the interrupt-disable flag, and charge the bus
// for the 7 cycles (21 PPU dots) real hardware spends settling.
func (c *CPU) Reset() {
	c.bus.Reset = true
	c.PC = c.readWord(resetVector)
	c.SP = c.SP - 3
	c.bus.Cycles = 7
	c.SetFlag(FlagInterruptDisable, true)
	for i := uint64(0); i < c.bus.Cycles*3; i++ {
		c.bus.PPU.Step()
	}
}

// Step executes one instruction: service a pending OAM DMA, apply any
// deferred interrupt-disable update, fetch and dispatch the next
// opcode, then walk the PPU forward 3 dots per CPU cycle spent,
// raising an NMI the instant the PPU signals one.
func (c *CPU) Step() uint8 {
	if page, pending := c.bus.DMAPending(); pending {
		c.bus.RunDMA(page)
		c.bus.Cycles += 514
	}

	if c.updateInterruptDisablePending {
		c.SetFlag(FlagInterruptDisable, c.updateInterruptDisableValue != 0)
		c.updateInterruptDisablePending = false
	}

	opcode := c.readByte(c.PC)
	c.PC++
	instr := opcodeTable[opcode]

	extra := instr.fn(c, instr.mode)
	cycles := instr.minCycles + extra

	for i := uint8(0); i < cycles*3; i++ {
		c.bus.PPU.Step()
		if c.bus.PPU.ConsumeNMI() {
			c.Interrupt(InterruptNMI)
		}
	}

	c.bus.Cycles += uint64(cycles)
	return cycles
}

// Interrupt services one of the four interrupt types.
func (c *CPU) Interrupt(kind Interrupt) {
	switch kind {
	case InterruptBRK:
		c.PC++
		c.stackPush(uint8(c.PC >> 8))
		c.stackPush(uint8(c.PC))
		c.SetFlag(FlagBreak, true)
		c.SetFlag(FlagUnused, true)
		c.stackPush(c.P)
		c.SetFlag(FlagBreak, false)
		c.SetFlag(FlagInterruptDisable, true)
		c.PC = c.readWord(irqVector)
	case InterruptNMI:
		c.stackPush(uint8(c.PC >> 8))
		c.stackPush(uint8(c.PC))
		c.SetFlag(FlagBreak, false)
		c.SetFlag(FlagUnused, true)
		c.stackPush(c.P)
		c.SetFlag(FlagInterruptDisable, true)
		c.PC = c.readWord(nmiVector)
	case InterruptIRQ:
		// A no-op: nothing in the core raises an IRQ (the APU frame
		// sequencer that would raise this is out of scope).
	case InterruptReset:
		c.Reset()
	}
}

// SetFlag sets or clears one bit of P.
func (c *CPU) SetFlag(flag StatusFlag, value bool) {
	if value {
		c.P |= uint8(flag)
	} else {
		c.P &^= uint8(flag)
	}
}

// GetFlag reports whether one bit of P is set.
func (c *CPU) GetFlag(flag StatusFlag) bool {
	return c.P&uint8(flag) != 0
}

func (c *CPU) setZeroNegative(data uint8) {
	c.SetFlag(FlagZero, data == 0)
	c.SetFlag(FlagNegative, data&0x80 != 0)
}

func (c *CPU) carryBit() uint8 {
	return c.P & 0x01
}

func (c *CPU) readByte(addr uint16) uint8 {
	return c.bus.Read(addr)
}

func (c *CPU) writeByte(addr uint16, value uint8) {
	c.bus.Write(addr, value)
}

func (c *CPU) readWord(addr uint16) uint16 {
	lo := uint16(c.readByte(addr))
	hi := uint16(c.readByte(addr + 1))
	return hi<<8 | lo
}

func (c *CPU) stackPush(value uint8) {
	c.writeByte(0x0100|uint16(c.SP), value)
	c.SP--
}

func (c *CPU) stackPop() uint8 {
	c.SP++
	return c.readByte(0x0100 | uint16(c.SP))
}
