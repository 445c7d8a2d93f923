package cpu

import (
	"testing"

	"github.com/nes-core/gones/internal/bus"
	"github.com/nes-core/gones/internal/mapper"
	"github.com/nes-core/gones/internal/rom"
)

// newTestSystem builds a bus backed by a 32KiB NROM image so tests can
// plant opcode bytes directly at any $8000-$FFFF address and point PC
// at them without going through the Reset vector.
func newTestSystem(t *testing.T) (*CPU, []byte) {
	t.Helper()
	prg := make([]byte, 0x8000)
	img := &rom.Image{
		Header: rom.Header{MapperNumber: 0, Mirroring: rom.MirrorHorizontal},
		PRG:    prg,
	}
	m, err := mapper.New(img)
	if err != nil {
		t.Fatalf("mapper.New: %v", err)
	}
	b := bus.New()
	b.SetCartridge(m)
	c := New(b)
	return c, prg
}

func TestResetLoadsVectorAndSettlesCycles(t *testing.T) {
	c, prg := newTestSystem(t)
	prg[0x7FFC] = 0x00
	prg[0x7FFD] = 0x80 // reset vector -> $8000

	c.Reset()

	if c.PC != 0x8000 {
		t.Fatalf("PC = %#04x, want 0x8000", c.PC)
	}
	if c.SP != 0xFD {
		t.Fatalf("SP = %#02x, want 0xFD", c.SP)
	}
	if c.bus.Cycles != 7 {
		t.Fatalf("bus.Cycles = %d, want 7", c.bus.Cycles)
	}
	if !c.GetFlag(FlagInterruptDisable) {
		t.Fatalf("InterruptDisable flag clear after reset, want set")
	}
}

func TestLDAImmediateSetsZeroFlag(t *testing.T) {
	c, prg := newTestSystem(t)
	prg[0x0000] = 0xA9 // LDA #$00
	prg[0x0001] = 0x00
	c.PC = 0x8000

	cycles := c.Step()

	if c.A != 0 {
		t.Fatalf("A = %#02x, want 0", c.A)
	}
	if !c.GetFlag(FlagZero) {
		t.Fatalf("Zero flag clear, want set")
	}
	if c.GetFlag(FlagNegative) {
		t.Fatalf("Negative flag set, want clear")
	}
	if cycles != 2 {
		t.Fatalf("cycles = %d, want 2", cycles)
	}
}

func TestLDAImmediateSetsNegativeFlag(t *testing.T) {
	c, prg := newTestSystem(t)
	prg[0x0000] = 0xA9 // LDA #$80
	prg[0x0001] = 0x80
	c.PC = 0x8000

	c.Step()

	if c.A != 0x80 {
		t.Fatalf("A = %#02x, want 0x80", c.A)
	}
	if !c.GetFlag(FlagNegative) {
		t.Fatalf("Negative flag clear, want set")
	}
	if c.GetFlag(FlagZero) {
		t.Fatalf("Zero flag set, want clear")
	}
}

func TestLDAAbsoluteXPageCrossPenalty(t *testing.T) {
	c, prg := newTestSystem(t)
	prg[0x0000] = 0xBD // LDA $80FF,X
	prg[0x0001] = 0xFF
	prg[0x0002] = 0x80
	prg[0x0100] = 0x42 // $8100 after X pushes it across the page
	c.PC = 0x8000
	c.X = 1

	cycles := c.Step()

	if c.A != 0x42 {
		t.Fatalf("A = %#02x, want 0x42", c.A)
	}
	if cycles != 5 {
		t.Fatalf("cycles = %d, want 5 (4 base + 1 page-cross)", cycles)
	}
}

func TestLDAAbsoluteXNoPageCross(t *testing.T) {
	c, prg := newTestSystem(t)
	prg[0x0000] = 0xBD // LDA $8010,X
	prg[0x0001] = 0x10
	prg[0x0002] = 0x80
	prg[0x0011] = 0x99
	c.PC = 0x8000
	c.X = 1

	cycles := c.Step()

	if c.A != 0x99 {
		t.Fatalf("A = %#02x, want 0x99", c.A)
	}
	if cycles != 4 {
		t.Fatalf("cycles = %d, want 4", cycles)
	}
}

func TestADCSetsCarryAndOverflow(t *testing.T) {
	c, prg := newTestSystem(t)
	prg[0x0000] = 0x69 // ADC #$10
	prg[0x0001] = 0x10
	c.PC = 0x8000
	c.A = 0x7F // 127 + 16 overflows into negative

	c.Step()

	if c.A != 0x8F {
		t.Fatalf("A = %#02x, want 0x8F", c.A)
	}
	if !c.GetFlag(FlagOverflow) {
		t.Fatalf("Overflow flag clear, want set")
	}
	if c.GetFlag(FlagCarry) {
		t.Fatalf("Carry flag set, want clear")
	}
}

func TestADCCarryChain(t *testing.T) {
	c, prg := newTestSystem(t)
	prg[0x0000] = 0x69 // ADC #$01
	prg[0x0001] = 0x01
	c.PC = 0x8000
	c.A = 0xFF

	c.Step()

	if c.A != 0x00 {
		t.Fatalf("A = %#02x, want 0", c.A)
	}
	if !c.GetFlag(FlagCarry) {
		t.Fatalf("Carry flag clear, want set")
	}
	if !c.GetFlag(FlagZero) {
		t.Fatalf("Zero flag clear, want set")
	}
}

func TestSBCBorrowClearsCarry(t *testing.T) {
	c, prg := newTestSystem(t)
	prg[0x0000] = 0xE9 // SBC #$01
	prg[0x0001] = 0x01
	c.PC = 0x8000
	c.A = 0x00
	c.SetFlag(FlagCarry, true) // no incoming borrow

	c.Step()

	if c.A != 0xFF {
		t.Fatalf("A = %#02x, want 0xFF", c.A)
	}
	if c.GetFlag(FlagCarry) {
		t.Fatalf("Carry flag set, want clear (borrow occurred)")
	}
}

func TestBranchTakenAddsCycleAndCrossesPage(t *testing.T) {
	c, prg := newTestSystem(t)
	prg[0x00FD] = 0xF0 // BEQ at $80FD
	prg[0x00FE] = 0x01 // +1, pushing the target past $80FF into $8100
	c.PC = 0x80FD
	c.SetFlag(FlagZero, true)

	cycles := c.Step()

	if c.PC != 0x8100 {
		t.Fatalf("PC = %#04x, want 0x8100", c.PC)
	}
	if cycles != 4 {
		t.Fatalf("cycles = %d, want 4 (2 base + 1 taken + 1 page-cross)", cycles)
	}
}

func TestBranchNotTakenStaysBase(t *testing.T) {
	c, prg := newTestSystem(t)
	prg[0x0000] = 0xF0 // BEQ
	prg[0x0001] = 0x10
	c.PC = 0x8000
	c.SetFlag(FlagZero, false)

	cycles := c.Step()

	if c.PC != 0x8002 {
		t.Fatalf("PC = %#04x, want 0x8002", c.PC)
	}
	if cycles != 2 {
		t.Fatalf("cycles = %d, want 2", cycles)
	}
}

func TestJSRAndRTSRoundTrip(t *testing.T) {
	c, prg := newTestSystem(t)
	prg[0x0000] = 0x20 // JSR $9000
	prg[0x0001] = 0x00
	prg[0x0002] = 0x90
	prg[0x1000] = 0x60 // RTS at $9000
	c.PC = 0x8000
	c.SP = 0xFD

	c.Step() // JSR
	if c.PC != 0x9000 {
		t.Fatalf("PC after JSR = %#04x, want 0x9000", c.PC)
	}

	c.Step() // RTS
	if c.PC != 0x8003 {
		t.Fatalf("PC after RTS = %#04x, want 0x8003", c.PC)
	}
	if c.SP != 0xFD {
		t.Fatalf("SP after RTS round trip = %#02x, want 0xFD", c.SP)
	}
}

func TestPHPSetsBreakAndUnusedOnStack(t *testing.T) {
	c, prg := newTestSystem(t)
	prg[0x0000] = 0x08 // PHP
	c.PC = 0x8000
	c.SP = 0xFD
	c.P = 0x00

	c.Step()

	pushed := c.bus.Read(0x01FD)
	if pushed&0x30 != 0x30 {
		t.Fatalf("pushed P = %#02x, want bits 4 and 5 set", pushed)
	}
}

func TestPLPDefersInterruptDisable(t *testing.T) {
	c, prg := newTestSystem(t)
	prg[0x0000] = 0x28 // PLP
	prg[0x0001] = 0xEA // NOP
	c.PC = 0x8000
	c.SP = 0xFC
	c.bus.Write(0x01FD, 0x04) // stacked P with only InterruptDisable set
	c.P = 0x00

	c.Step() // PLP: defers the I-flag update
	if c.GetFlag(FlagInterruptDisable) {
		t.Fatalf("InterruptDisable applied immediately after PLP, want deferred")
	}

	c.Step() // NOP: deferred update now applies
	if !c.GetFlag(FlagInterruptDisable) {
		t.Fatalf("InterruptDisable not applied after following instruction")
	}
}

func TestBRKPushesReturnAddressAndSetsVector(t *testing.T) {
	c, prg := newTestSystem(t)
	prg[0x0000] = 0x00 // BRK
	prg[0x7FFE] = 0x00
	prg[0x7FFF] = 0x90 // IRQ/BRK vector -> $9000
	c.PC = 0x8000
	c.SP = 0xFD
	c.P = 0x20

	c.Step()

	if c.PC != 0x9000 {
		t.Fatalf("PC after BRK = %#04x, want 0x9000", c.PC)
	}
	if !c.GetFlag(FlagInterruptDisable) {
		t.Fatalf("InterruptDisable clear after BRK, want set")
	}
	// Three pushes (PC hi, PC lo, P) land at $01FD, $01FC, $01FB in order.
	pushedP := c.bus.Read(0x01FB)
	if pushedP&0x10 == 0 {
		t.Fatalf("status on stack = %#02x, want Break set", pushedP)
	}
}

func TestIndirectJMPPageWrapBug(t *testing.T) {
	c, prg := newTestSystem(t)
	prg[0x0000] = 0x6C // JMP ($80FF), opcode byte also doubles as the
	// "wrapped" high byte read back from $8000 below
	prg[0x0001] = 0xFF
	prg[0x0002] = 0x80
	prg[0x00FF] = 0x34 // low byte of the target, at pointer $80FF

	c.PC = 0x8000
	cycles := c.Step()

	// Real hardware fails to carry into the high byte of the pointer
	// when its low byte is $FF, so the high byte is mistakenly read
	// back from $8000 (prg[0x0000], the opcode itself) instead of
	// $8100.
	want := uint16(prg[0x0000])<<8 | 0x34
	if c.PC != want {
		t.Fatalf("PC = %#04x, want %#04x", c.PC, want)
	}
	if cycles != 5 {
		t.Fatalf("cycles = %d, want 5", cycles)
	}
}

func TestStackPushPopRoundTrip(t *testing.T) {
	c, _ := newTestSystem(t)
	c.SP = 0xFD
	c.stackPush(0x42)
	if c.SP != 0xFC {
		t.Fatalf("SP after push = %#02x, want 0xFC", c.SP)
	}
	if got := c.stackPop(); got != 0x42 {
		t.Fatalf("stackPop() = %#02x, want 0x42", got)
	}
	if c.SP != 0xFD {
		t.Fatalf("SP after pop = %#02x, want 0xFD", c.SP)
	}
}
