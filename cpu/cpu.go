// Package cpu implements a cycle-accounting interpreter for the MOS 6502
// microprocessor: given a 64 KiB memory image and an initial register state,
// it executes one instruction at a time, mutating memory and registers
// exactly as the physical chip would, and reports the cycles each step cost.
package cpu

import (
	"go6502/mem"
)

// Status register P bits, packed into a single byte with C as the LSB. Bit 5
// (FlagU) always reads 1; PHP/PLP move the whole byte in one operation.
const (
	FlagC byte = 1 << iota // carry
	FlagZ                  // zero
	FlagI                  // interrupt disable
	FlagD                  // decimal mode
	FlagB                  // break (pushed-byte only)
	FlagU                  // unused, always reads 1
	FlagV                  // overflow
	FlagN                  // sign
)

// CPU holds the complete architectural state: A, X, Y, SP, PC, and P, plus
// the running cycle counter. It has no memory of its own; it operates
// against a *mem.Memory passed in at construction.
type CPU struct {
	Mem *mem.Memory

	A, X, Y byte
	SP      byte
	PC      uint16
	P       byte

	TotalCycles uint64

	// extraCycles and jumping are per-step scratch, reset at the start of
	// every Step call.
	extraCycles int
	jumping     bool
}

// New returns a CPU wired to the given memory. Callers must still call
// Reset before stepping.
func New(m *mem.Memory) *CPU {
	return &CPU{Mem: m}
}

func (c *CPU) flagSet(f byte) bool { return c.P&f != 0 }

func (c *CPU) setFlag(f byte, v bool) {
	if v {
		c.P |= f
	} else {
		c.P &^= f
	}
}

// carryIn returns the carry flag as 0 or 1, for use in ADC/SBC/ROL/ROR.
func (c *CPU) carryIn() byte {
	if c.flagSet(FlagC) {
		return 1
	}
	return 0
}

// setNZ sets N and Z from an 8-bit result. Every register load and compare
// result runs through this.
func (c *CPU) setNZ(v byte) {
	c.setFlag(FlagZ, v == 0)
	c.setFlag(FlagN, v&0x80 != 0)
}

// push writes v to the stack page ($0100-$01FF) at the current SP, then
// decrements SP. SP wraps modulo 256 by virtue of being a byte.
func (c *CPU) push(v byte) {
	c.Mem.Write(0x0100|uint16(c.SP), v)
	c.SP--
}

// pull increments SP, then reads the byte now under it.
func (c *CPU) pull() byte {
	c.SP++
	return c.Mem.Read(0x0100 | uint16(c.SP))
}

// Reset initializes registers. If pcOrVector is negative, its absolute value
// is the address of a little-endian word to load into PC; otherwise PC is
// set directly to pcOrVector.
func (c *CPU) Reset(a, x, y, sp, p byte, pcOrVector int32) {
	c.A = a
	c.X = x
	c.Y = y
	c.SP = sp
	c.P = p
	c.setFlag(FlagI, true)
	c.setFlag(FlagU, true)

	if pcOrVector < 0 {
		c.PC = c.Mem.ReadWord(uint16(-pcOrVector))
	} else {
		c.PC = uint16(pcOrVector)
	}

	c.TotalCycles = 0
}

// NMI pushes PC and P (B clear), sets I, and jumps through the NMI vector
// ($FFFA/$FFFB). Not part of the core fetch-decode-execute loop — there is no
// timed asynchronous interrupt delivery here — but the vector-pushing
// sequence is identical to BRK's and is exposed for callers that want to
// simulate a pending interrupt between steps.
func (c *CPU) NMI() {
	c.interrupt(0xfffa, false)
}

// IRQ behaves like NMI but honors the interrupt-disable flag and uses the
// IRQ/BRK vector ($FFFE/$FFFF).
func (c *CPU) IRQ() {
	if c.flagSet(FlagI) {
		return
	}
	c.interrupt(0xfffe, false)
}

func (c *CPU) interrupt(vector uint16, brk bool) {
	c.push(byte(c.PC >> 8))
	c.push(byte(c.PC))
	pushed := c.P | FlagU
	if brk {
		pushed |= FlagB
	} else {
		pushed &^= FlagB
	}
	c.push(pushed)
	c.setFlag(FlagI, true)
	c.PC = c.Mem.ReadWord(vector)
}

// isStore reports whether mnemonic is one of the register stores (STA, STX,
// STY), which are exempt from the page-cross cycle penalty per spec §4.C.
func isStore(mnemonic string) bool {
	return mnemonic == "STA" || mnemonic == "STX" || mnemonic == "STY"
}

// Step executes exactly one instruction: fetch the opcode at PC, resolve its
// table entry, decode its operand, invoke the semantic, advance PC unless the
// semantic jumped, and account cycles. If verbose is true, the trace line for
// this step (registers as they stood before execution) is printed to stdout.
// Returns the number of cycles this step consumed.
func (c *CPU) Step(verbose bool) uint64 {
	opcodeAddr := c.PC
	opByte := c.Mem.Read(opcodeAddr)
	entry := opcodeTable[opByte]

	c.extraCycles = 0
	c.jumping = false

	op := c.decodeOperand(entry.Mode, opcodeAddr)

	if verbose {
		c.printTrace(opcodeAddr, opByte, entry)
	}

	entry.Semantic(c, op)

	if !c.jumping {
		c.PC = opcodeAddr + uint16(instructionLength[entry.Mode])
	}

	// Bit 5 reads 1 after every step, whatever was left in P beforehand.
	c.P |= FlagU

	// Stores never pay the page-cross penalty, nor does the 7-cycle
	// read-modify-write-absx form; both rules belong to the driver, not the
	// decoder, since the decoder has no notion of which semantic is running.
	if entry.Cycles == 7 || isStore(entry.Mnemonic) {
		c.extraCycles = 0
	}

	total := uint64(entry.Cycles) + uint64(c.extraCycles)
	c.TotalCycles += total
	return total
}
