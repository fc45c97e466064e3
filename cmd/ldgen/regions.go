package main

import (
	"flag"
	"fmt"
	"os"

	"ldgen/internal/classify"
	"ldgen/internal/device"
	"ldgen/internal/ldscript"
)

func cmdRegions(args []string) error {
	fs := flag.NewFlagSet("regions", flag.ExitOnError)
	devFile := fs.String("device", "", "device description JSON file")
	strict := fs.Bool("strict", false, "fail on the first malformed region")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *devFile == "" {
		return fmt.Errorf("--device is required")
	}

	dev, err := device.LoadFile(*devFile)
	if err != nil {
		return err
	}

	mode := classify.ModeBestEffort
	if *strict {
		mode = classify.ModeStrict
	}
	var diags classify.Diags
	regs, err := ldscript.Regions(dev, ldscript.Options{Mode: mode, Diags: &diags})
	if err != nil {
		return err
	}

	fmt.Println("MEMORY")
	fmt.Println("{")
	for _, r := range regs {
		fmt.Printf("  %s\n", r.MemoryLine())
	}
	fmt.Println("}")

	for _, d := range diags.Items() {
		fmt.Fprintf(os.Stderr, "%s: %s\n", dev.Name, d)
	}
	return nil
}
