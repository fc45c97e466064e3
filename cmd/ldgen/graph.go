package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/zboralski/lattice/render"

	"ldgen/internal/device"
	"ldgen/internal/layout"
	"ldgen/internal/ldscript"
)

func cmdGraph(args []string) error {
	fs := flag.NewFlagSet("graph", flag.ExitOnError)
	devFile := fs.String("device", "", "device description JSON file")
	outFile := fs.String("out", "", "write DOT here instead of stdout")

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

	plan, err := ldscript.Plan(dev, ldscript.Options{})
	if err != nil {
		return err
	}

	g := layout.BuildBindingGraph(plan)
	dot := render.DOT(g, strings.ToLower(dev.Name))

	if *outFile == "" {
		fmt.Print(dot)
		return nil
	}
	if err := os.WriteFile(*outFile, []byte(dot), 0644); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	fmt.Fprintf(os.Stderr, "wrote %s\n", *outFile)
	return nil
}
