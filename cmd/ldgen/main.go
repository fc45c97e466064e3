package main

import (
	"fmt"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "generate":
		err = cmdGenerate(os.Args[2:])
	case "regions":
		err = cmdRegions(os.Args[2:])
	case "graph":
		err = cmdGraph(os.Args[2:])
	case "help", "-h", "--help":
		usage()
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", os.Args[1])
		usage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `ldgen — MCU linker script generator

Usage:
  ldgen generate --devices <dir|file> --out <dir>   Generate one .ld script per device
  ldgen regions  --device <file>                    Print a device's classified MEMORY command
  ldgen graph    --device <file> [--out <file>]     Render section/region bindings as DOT

Flags:
  generate:
    --devices   device description JSON file, or a directory of them
    --out       output root; script paths follow the selected convention
    --paths     path convention: toolchain (default) or lowercase
    --strict    fail a device on its first malformed region
    -v          print classification diagnostics (dropped regions etc.)
  regions, graph:
    --device    one device description JSON file
`)
}
