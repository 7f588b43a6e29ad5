package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"go6502/cpu"
	"go6502/dump"
	"go6502/loader"
	"go6502/mem"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "go6502",
		Short: "A cycle-accounting MOS 6502 interpreter",
	}

	var loadAddr uint16
	var trace bool
	var steps int
	var useResetVector bool

	runCmd := &cobra.Command{
		Use:   "run <image>",
		Short: "Load an image and step the CPU",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := buildCPU(args[0], loadAddr, useResetVector)
			if err != nil {
				return err
			}
			runSteps(c, steps, trace)
			return nil
		},
	}
	runCmd.Flags().Uint16Var(&loadAddr, "addr", 0x8000, "Address to load the image at")
	runCmd.Flags().BoolVar(&trace, "trace", false, "Print a verbose trace line per step")
	runCmd.Flags().IntVar(&steps, "steps", 1000, "Maximum number of instructions to execute")
	runCmd.Flags().BoolVar(&useResetVector, "use-reset-vector", false, "Start PC from the $FFFC reset vector instead of --addr")

	dumpCmd := &cobra.Command{
		Use:   "dump <image> <out>",
		Short: "Load an image, step it, then write the full memory image to a file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := buildCPU(args[0], loadAddr, useResetVector)
			if err != nil {
				return err
			}
			runSteps(c, steps, trace)
			return dump.WriteFile(args[1], c.Mem)
		},
	}
	dumpCmd.Flags().Uint16Var(&loadAddr, "addr", 0x8000, "Address to load the image at")
	dumpCmd.Flags().BoolVar(&trace, "trace", false, "Print a verbose trace line per step")
	dumpCmd.Flags().IntVar(&steps, "steps", 1000, "Maximum number of instructions to execute")
	dumpCmd.Flags().BoolVar(&useResetVector, "use-reset-vector", false, "Start PC from the $FFFC reset vector instead of --addr")

	debugCmd := &cobra.Command{
		Use:   "debug <image>",
		Short: "Load an image and single-step it interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			program, err := loader.Load(args[0])
			if err != nil {
				return err
			}
			c := cpu.New(&mem.Memory{})
			c.Reset(0, 0, 0, 0xfd, 0, int32(loadAddr))
			return cpu.Debug(c, program, loadAddr)
		},
	}
	debugCmd.Flags().Uint16Var(&loadAddr, "addr", 0x8000, "Address to load the image at")

	rootCmd.AddCommand(runCmd, dumpCmd, debugCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// buildCPU loads the image at path into a fresh CPU at loadAddr, optionally
// honoring the $FFFC reset vector instead.
func buildCPU(path string, loadAddr uint16, useResetVector bool) (*cpu.CPU, error) {
	program, err := loader.Load(path)
	if err != nil {
		return nil, err
	}
	m := &mem.Memory{}
	m.LoadImage(program, loadAddr)
	c := cpu.New(m)
	if useResetVector {
		c.Reset(0, 0, 0, 0xfd, 0, -0xfffc)
	} else {
		c.Reset(0, 0, 0, 0xfd, 0, int32(loadAddr))
	}
	return c, nil
}

// runSteps executes up to maxSteps instructions, stopping early if a
// top-level BRK is hit (recognized as the opcode byte $00 at the current PC
// before it executes).
func runSteps(c *cpu.CPU, maxSteps int, trace bool) {
	for i := 0; i < maxSteps; i++ {
		if c.Mem.Read(c.PC) == 0x00 {
			fmt.Printf("BRK at $%04X, stopping after %d steps\n", c.PC, i)
			return
		}
		c.Step(trace)
	}
}
