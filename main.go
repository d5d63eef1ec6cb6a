// Package main provides the entry point for bhtsim.
// bhtsim models a direct-mapped Branch History Table driven by a MIPS32
// functional emulator.
//
// For the full CLI, use: go run ./cmd/bhtsim
package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Println("bhtsim - Branch History Table Simulator")
	fmt.Println("")
	fmt.Println("Usage: bhtsim [options] <program.elf|program.hex>")
	fmt.Println("")
	fmt.Println("Options:")
	fmt.Println("  -entries   Number of BHT entries (power of 2)")
	fmt.Println("  -history   History length of each entry (1 or 2)")
	fmt.Println("  -bias      Initial prediction: taken")
	fmt.Println("  -btb       Number of BTB entries (0 disables)")
	fmt.Println("  -config    Path to predictor configuration JSON file")
	fmt.Println("  -v         Verbose output")
	fmt.Println("")
	fmt.Println("Run 'go run ./cmd/bhtsim' for the full CLI.")

	if len(os.Args) > 1 {
		fmt.Println("\nNote: You provided arguments. Use 'go run ./cmd/bhtsim' instead.")
	}
}
