// Package main provides the entry point for bhtsim.
// bhtsim runs a MIPS32 program and reports how a direct-mapped Branch
// History Table predicted its conditional branches.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/sarchlab/bhtsim/emu"
	"github.com/sarchlab/bhtsim/loader"
	"github.com/sarchlab/bhtsim/timing/core"
)

var (
	configPath = flag.String("config", "", "Path to predictor configuration JSON file")
	entries    = flag.Int("entries", 16, "Number of BHT entries (power of 2)")
	history    = flag.Int("history", 1, "History length of each entry (1 or 2)")
	bias       = flag.Bool("bias", false, "Initial prediction: taken")
	btbSize    = flag.Int("btb", 0, "Number of BTB entries (power of 2, 0 disables)")
	maxInsts   = flag.Uint64("max", 0, "Maximum instructions to execute (0 for no limit)")
	verbose    = flag.Bool("v", false, "Verbose output")
)

func main() {
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Usage: bhtsim [options] <program.elf|program.hex>\n")
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	programPath := flag.Arg(0)

	config, err := buildConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	prog, err := loader.Load(programPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading program: %v\n", err)
		os.Exit(1)
	}

	if *verbose {
		fmt.Printf("Loaded: %s\n", programPath)
		fmt.Printf("Entry point: 0x%08X\n", prog.EntryPoint)
		fmt.Printf("Segments: %d\n", len(prog.Segments))
	}

	exitCode, err := run(prog, config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	os.Exit(int(exitCode))
}

// buildConfig loads the config file, if any, and applies explicitly set
// flags on top of it.
func buildConfig() (*core.Config, error) {
	config := core.DefaultConfig()
	if *configPath != "" {
		var err error
		config, err = core.LoadConfig(*configPath)
		if err != nil {
			return nil, err
		}
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "entries":
			config.BHT.NumEntries = *entries
		case "history":
			config.BHT.HistoryLength = *history
		case "bias":
			config.BHT.InitialBias = *bias
		case "btb":
			config.BTBSize = *btbSize
		case "max":
			config.MaxInstructions = *maxInsts
		}
	})

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// run executes the program with the predictor attached and prints the
// report.
func run(prog *loader.Program, config *core.Config) (int64, error) {
	emulator := emu.NewEmulator(
		emu.WithStackPointer(prog.InitialSP),
		emu.WithMaxInstructions(config.MaxInstructions),
	)
	emulator.LoadProgram(prog.EntryPoint, prog.NewMemory())

	c, err := core.NewCore(config, emulator.RegFile())
	if err != nil {
		return 1, err
	}

	exitCode, runErr := c.Run(emulator)

	fmt.Printf("\n")
	printReport(os.Stdout, c, emulator.InstructionCount(), exitCode, *verbose)

	return exitCode, runErr
}
