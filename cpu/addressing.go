package cpu

// AddressingMode identifies one of the 6502's addressing modes, including
// the bug-free IND mode (no stock opcode emits it) and the distinct
// JMPIndBug mode that $6C actually uses.
type AddressingMode int

const (
	Implied AddressingMode = iota
	Accumulator
	Immediate
	ZeroPage
	ZeroPageX
	ZeroPageY
	Absolute
	AbsoluteX
	AbsoluteY
	Indirect    // plain 16-bit indirect; not emitted by the stock table
	IndirectX   // XIND
	IndirectY   // INDY
	Relative
	JMPIndBug // $6C JMP (indirect), page-boundary bug preserved
)

// instructionLength gives the total instruction length in bytes (opcode plus
// operand bytes) for each mode.
var instructionLength = [...]byte{
	Implied:     1,
	Accumulator: 1,
	Immediate:   2,
	ZeroPage:    2,
	ZeroPageX:   2,
	ZeroPageY:   2,
	Absolute:    3,
	AbsoluteX:   3,
	AbsoluteY:   3,
	Indirect:    3,
	IndirectX:   2,
	IndirectY:   2,
	Relative:    2,
	JMPIndBug:   3,
}

// operand is the tagged result the decoder returns: either "the operand
// lives in memory at addr" or "the operand is the accumulator".
type operand struct {
	addr          uint16
	isAccumulator bool
}

func (c *CPU) readOperand(op operand) byte {
	if op.isAccumulator {
		return c.A
	}
	return c.Mem.Read(op.addr)
}

func (c *CPU) writeOperand(op operand, v byte) {
	if op.isAccumulator {
		c.A = v
		return
	}
	c.Mem.Write(op.addr, v)
}

// decodeOperand computes the effective address (or accumulator) for mode,
// given that the opcode byte was fetched from opcodeAddr. It never mutates
// c.PC: PC advancement is the driver's job at the end of the step, not the
// decoder's, so every operand byte is read relative to opcodeAddr instead of
// an incrementing cursor.
//
// Page-cross extra cycles for AbsoluteX, AbsoluteY, and IndirectY are
// accounted here by incrementing c.extraCycles; the driver is responsible for
// suppressing that cycle where the rule says it shouldn't apply (stores, and
// RMW AbsoluteX forms).
func (c *CPU) decodeOperand(mode AddressingMode, opcodeAddr uint16) operand {
	switch mode {

	case Implied:
		return operand{}

	case Accumulator:
		return operand{isAccumulator: true}

	case Immediate:
		return operand{addr: opcodeAddr + 1}

	case ZeroPage:
		return operand{addr: uint16(c.Mem.Read(opcodeAddr + 1))}

	case ZeroPageX:
		return operand{addr: uint16(byte(c.Mem.Read(opcodeAddr+1) + c.X))}

	case ZeroPageY:
		return operand{addr: uint16(byte(c.Mem.Read(opcodeAddr+1) + c.Y))}

	case Absolute:
		return operand{addr: c.Mem.ReadWord(opcodeAddr + 1)}

	case AbsoluteX:
		base := c.Mem.ReadWord(opcodeAddr + 1)
		eff := base + uint16(c.X)
		if byte(eff) < c.X {
			c.extraCycles++
		}
		return operand{addr: eff}

	case AbsoluteY:
		base := c.Mem.ReadWord(opcodeAddr + 1)
		eff := base + uint16(c.Y)
		if byte(eff) < c.Y {
			c.extraCycles++
		}
		return operand{addr: eff}

	case Indirect:
		ptr := c.Mem.ReadWord(opcodeAddr + 1)
		return operand{addr: c.Mem.ReadWord(ptr)}

	case JMPIndBug:
		ptr := c.Mem.ReadWord(opcodeAddr + 1)
		lo := c.Mem.Read(ptr)
		var hi byte
		if ptr&0x00ff == 0x00ff {
			hi = c.Mem.Read(ptr & 0xff00) // the bug: high byte from same page
		} else {
			hi = c.Mem.Read(ptr + 1)
		}
		return operand{addr: uint16(hi)<<8 | uint16(lo)}

	case IndirectX:
		zp := byte(c.Mem.Read(opcodeAddr+1) + c.X)
		var lo, hi byte
		if zp == 0xff {
			lo = c.Mem.Read(0x00ff)
			hi = c.Mem.Read(0x0000)
		} else {
			lo = c.Mem.Read(uint16(zp))
			hi = c.Mem.Read(uint16(zp) + 1)
		}
		return operand{addr: uint16(hi)<<8 | uint16(lo)}

	case IndirectY:
		zp := c.Mem.Read(opcodeAddr + 1)
		var lo, hi byte
		if zp == 0xff {
			lo = c.Mem.Read(0x00ff)
			hi = c.Mem.Read(0x0000)
		} else {
			lo = c.Mem.Read(uint16(zp))
			hi = c.Mem.Read(uint16(zp) + 1)
		}
		base := uint16(hi)<<8 | uint16(lo)
		eff := base + uint16(c.Y)
		if byte(eff) < c.Y {
			c.extraCycles++
		}
		return operand{addr: eff}

	case Relative:
		offset := int8(c.Mem.Read(opcodeAddr + 1))
		target := opcodeAddr + 2 + uint16(offset)
		return operand{addr: target}
	}

	return operand{}
}

// takeBranch applies a taken branch's cycle penalties and jumps. c.PC still
// holds the opcode address at this point (the driver only advances it after
// the semantic returns), so the fall-through address the page-cross check
// compares against is c.PC+2.
func (c *CPU) takeBranch(op operand) {
	next := c.PC + 2
	c.extraCycles++
	if op.addr&0xff00 != next&0xff00 {
		c.extraCycles++
	}
	c.PC = op.addr
	c.jumping = true
}
