package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"ldgen/internal/classify"
	"ldgen/internal/device"
	"ldgen/internal/ldscript"
	"ldgen/internal/output"
)

func cmdGenerate(args []string) error {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	devices := fs.String("devices", "", "device description JSON file or directory")
	outDir := fs.String("out", "", "output directory")
	paths := fs.String("paths", "toolchain", "path convention: toolchain or lowercase")
	strict := fs.Bool("strict", false, "fail a device on its first malformed region")
	verbose := fs.Bool("v", false, "print classification diagnostics")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *devices == "" || *outDir == "" {
		return fmt.Errorf("--devices and --out are required")
	}

	var strategy output.PathStrategy
	switch *paths {
	case "toolchain":
		strategy = output.ToolchainPath
	case "lowercase":
		strategy = output.LowercasePath
	default:
		return fmt.Errorf("unknown path convention %q", *paths)
	}

	devs, loadErrs, err := loadDevices(*devices)
	if err != nil {
		return err
	}

	mode := classify.ModeBestEffort
	if *strict {
		mode = classify.ModeStrict
	}

	// Per-device failures are isolated: report, skip, keep going.
	// Descriptions that failed to load count as failed devices.
	failed := len(loadErrs)
	for _, lerr := range loadErrs {
		fmt.Fprintf(os.Stderr, "%v\n", lerr)
	}
	for _, dev := range devs {
		var diags classify.Diags
		rel := strategy(dev.Name, dev.Family)
		err := output.WriteScript(*outDir, rel, func(w io.Writer) error {
			return ldscript.Generate(dev, w, ldscript.Options{Mode: mode, Diags: &diags})
		})
		if *verbose {
			for _, d := range diags.Items() {
				fmt.Fprintf(os.Stderr, "%s: %s\n", dev.Name, d)
			}
		}
		if err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "%s: %v\n", dev.Name, err)
			continue
		}
		fmt.Fprintf(os.Stderr, "wrote %s\n", rel)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d devices failed", failed, len(devs)+len(loadErrs))
	}
	return nil
}

func loadDevices(path string) ([]*device.Device, []error, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, nil, fmt.Errorf("stat: %w", err)
	}
	if info.IsDir() {
		devs, failed, err := device.LoadDir(path)
		if err != nil {
			return nil, nil, err
		}
		if len(devs) == 0 && len(failed) == 0 {
			return nil, nil, fmt.Errorf("no device descriptions in %s", path)
		}
		return devs, failed, nil
	}
	dev, err := device.LoadFile(path)
	if err != nil {
		return nil, nil, err
	}
	return []*device.Device{dev}, nil, nil
}
