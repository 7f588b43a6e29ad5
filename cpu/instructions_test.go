package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"go6502/mem"
)

func newInstrCPU() *CPU {
	m := &mem.Memory{}
	c := New(m)
	c.Reset(0, 0, 0, 0xfd, 0x20, 0)
	return c
}

func TestSBCBinaryBorrow(t *testing.T) {
	c := newInstrCPU()
	c.A = 0x05
	c.setFlag(FlagC, true) // no incoming borrow
	op := operand{addr: 0x0300}
	c.writeOperand(op, 0x0a)
	opSBC(c, op)
	assert.Equal(t, byte(0xfb), c.A)
	assert.False(t, c.flagSet(FlagC)) // borrow occurred
}

func TestSBCDecimal(t *testing.T) {
	c := newInstrCPU()
	c.setFlag(FlagD, true)
	c.setFlag(FlagC, true)
	c.A = 0x42
	op := operand{addr: 0x0300}
	c.writeOperand(op, 0x15)
	opSBC(c, op)
	assert.Equal(t, byte(0x27), c.A)
	assert.True(t, c.flagSet(FlagC))
}

func TestASLShiftsByOneBit(t *testing.T) {
	c := newInstrCPU()
	c.A = 0b0100_0001
	op := operand{isAccumulator: true}
	opASL(c, op)
	assert.Equal(t, byte(0b1000_0010), c.A)
	assert.False(t, c.flagSet(FlagC))
}

func TestLSRSetsCarryFromBit0(t *testing.T) {
	c := newInstrCPU()
	c.A = 0b0000_0011
	op := operand{isAccumulator: true}
	opLSR(c, op)
	assert.Equal(t, byte(0b0000_0001), c.A)
	assert.True(t, c.flagSet(FlagC))
}

func TestROLPullsInCarry(t *testing.T) {
	c := newInstrCPU()
	c.A = 0x80
	c.setFlag(FlagC, true)
	op := operand{isAccumulator: true}
	opROL(c, op)
	assert.Equal(t, byte(0x01), c.A)
	assert.True(t, c.flagSet(FlagC))
}

func TestRORPullsInCarry(t *testing.T) {
	c := newInstrCPU()
	c.A = 0x01
	c.setFlag(FlagC, true)
	op := operand{isAccumulator: true}
	opROR(c, op)
	assert.Equal(t, byte(0x80), c.A)
	assert.True(t, c.flagSet(FlagC))
}

func TestCompareSetsCarryWhenRegisterGreaterOrEqual(t *testing.T) {
	c := newInstrCPU()
	c.A = 0x10
	op := operand{addr: 0x0300}
	c.writeOperand(op, 0x05)
	opCMP(c, op)
	assert.True(t, c.flagSet(FlagC))
	assert.False(t, c.flagSet(FlagZ))
}

func TestCompareEqualSetsZero(t *testing.T) {
	c := newInstrCPU()
	c.X = 0x20
	op := operand{addr: 0x0300}
	c.writeOperand(op, 0x20)
	opCPX(c, op)
	assert.True(t, c.flagSet(FlagZ))
	assert.True(t, c.flagSet(FlagC))
}

func TestBITSetsZeroFromANDButNAndVFromOperandBits(t *testing.T) {
	c := newInstrCPU()
	c.A = 0x00
	op := operand{addr: 0x0300}
	c.writeOperand(op, 0xc0)
	opBIT(c, op)
	assert.True(t, c.flagSet(FlagZ))
	assert.True(t, c.flagSet(FlagN))
	assert.True(t, c.flagSet(FlagV))
}

func TestINCDECWrapAtByteBoundary(t *testing.T) {
	c := newInstrCPU()
	op := operand{addr: 0x0300}
	c.writeOperand(op, 0xff)
	opINC(c, op)
	assert.Equal(t, byte(0x00), c.readOperand(op))
	assert.True(t, c.flagSet(FlagZ))

	c.writeOperand(op, 0x00)
	opDEC(c, op)
	assert.Equal(t, byte(0xff), c.readOperand(op))
	assert.True(t, c.flagSet(FlagN))
}

func TestBRKPushesReturnAddressAndStatusThenJumpsThroughVector(t *testing.T) {
	c := newInstrCPU()
	c.SP = 0xff
	c.PC = 0x1000
	c.Mem.Write(0xfffe, 0x00)
	c.Mem.Write(0xffff, 0x40)
	opBRK(c, operand{})
	assert.Equal(t, uint16(0x4000), c.PC)
	assert.Equal(t, byte(0xfc), c.SP)
	pushedP := c.Mem.Read(0x01fd)
	assert.True(t, pushedP&FlagB != 0)
	assert.True(t, c.flagSet(FlagI))
}

func TestRTIDoesNotIncrementPulledPC(t *testing.T) {
	c := newInstrCPU()
	c.SP = 0xfc
	c.Mem.Write(0x01fd, 0x00) // P
	c.Mem.Write(0x01fe, 0x34) // PC lo
	c.Mem.Write(0x01ff, 0x12) // PC hi
	opRTI(c, operand{})
	assert.Equal(t, uint16(0x1234), c.PC)
	assert.Equal(t, byte(0xff), c.SP)
}

func TestOpNOPIsExerciseForIllegalOpcodeBinding(t *testing.T) {
	c := newInstrCPU()
	before := *c
	opNOP(c, operand{addr: 0x0300})
	assert.Equal(t, before, *c)
}

func TestTransferInstructionsDoNotAffectUnrelatedRegisters(t *testing.T) {
	c := newInstrCPU()
	c.A = 0x7f
	opTAX(c, operand{})
	assert.Equal(t, byte(0x7f), c.X)
	opTAY(c, operand{})
	assert.Equal(t, byte(0x7f), c.Y)
	assert.Equal(t, byte(0x7f), c.X)
	c.SP = 0x33
	opTSX(c, operand{})
	assert.Equal(t, byte(0x33), c.X)
	assert.Equal(t, byte(0x7f), c.A)
	assert.Equal(t, byte(0x7f), c.Y)
}

func TestFlagOps(t *testing.T) {
	c := newInstrCPU()
	opSEC(c, operand{})
	assert.True(t, c.flagSet(FlagC))
	opCLC(c, operand{})
	assert.False(t, c.flagSet(FlagC))
	opSED(c, operand{})
	assert.True(t, c.flagSet(FlagD))
	opCLD(c, operand{})
	assert.False(t, c.flagSet(FlagD))
	opSEI(c, operand{})
	assert.True(t, c.flagSet(FlagI))
	opCLI(c, operand{})
	assert.False(t, c.flagSet(FlagI))
	c.setFlag(FlagV, true)
	opCLV(c, operand{})
	assert.False(t, c.flagSet(FlagV))
}
