package cpu

import (
	"fmt"
	"strings"
)

// printTrace writes one verbose trace line for the step about to execute at
// opcodeAddr. Registers are printed as they stood before the semantic runs.
func (c *CPU) printTrace(opcodeAddr uint16, opByte byte, entry opcodeEntry) {
	fmt.Println(c.traceLine(opcodeAddr, opByte, entry))
}

func (c *CPU) traceLine(opcodeAddr uint16, opByte byte, entry opcodeEntry) string {
	length := instructionLength[entry.Mode]

	raw := make([]string, 0, 3)
	raw = append(raw, fmt.Sprintf("%02X", opByte))
	for i := byte(1); i < length; i++ {
		raw = append(raw, fmt.Sprintf("%02X", c.Mem.Read(opcodeAddr+uint16(i))))
	}
	bytesField := strings.Join(raw, " ")

	cyc := (c.TotalCycles * 3) % 341

	return fmt.Sprintf(
		"%04X  %-8s  %-10s A:%02X X:%02X Y:%02X P:%02X SP:%02X CYC:%3d",
		opcodeAddr, bytesField, entry.Mnemonic,
		c.A, c.X, c.Y, c.P, c.SP, cyc,
	)
}
