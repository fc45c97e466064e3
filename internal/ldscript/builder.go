// Package ldscript assembles complete linker scripts: the MEMORY
// command from a classified region registry and the architecture's
// fixed SECTIONS sequence, with the boundary symbols and assertions
// the runtime startup code consumes.
package ldscript

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"ldgen/internal/classify"
	"ldgen/internal/device"
	"ldgen/internal/mmap"
)

var (
	ErrUnknownRegion = errors.New("ldscript: section bound to unknown region")
	ErrNoProfile     = errors.New("ldscript: no profile for architecture family")
)

// Default sizes for the overridable heap and stack symbols.
const (
	DefaultHeapSize  = 0x200
	DefaultStackSize = 0x400
)

// Binding names one section and the canonical region it is routed to.
// Sections without a region (debug information) have Region "".
type Binding struct {
	Section string
	Region  string
}

// section is one step of a profile's fixed emission sequence.
type section struct {
	name   string
	region string
	emit   func(e *emitter, g *genCtx)
}

// genCtx carries the per-generation state: one device, one registry.
// It exists for exactly one Generate or Plan call, so nothing leaks
// between devices.
type genCtx struct {
	dev *device.Device
	reg mmap.Registry
}

// profile is the per-architecture strategy: classification table,
// invocation preamble and the fixed section sequence.
type profile interface {
	table() classify.Table
	preamble(e *emitter, g *genCtx)
	sections(dev *device.Device) []section
	epilogue(e *emitter, g *genCtx)
}

func profileFor(family device.Family) (profile, error) {
	switch family {
	case device.FamilyARM:
		return cortexMProfile{}, nil
	case device.FamilyMIPS32:
		return mips32Profile{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrNoProfile, family)
	}
}

// Options controls one generation run.
type Options struct {
	Mode  classify.Mode
	Diags *classify.Diags // optional sink for dropped/skipped regions
}

// Generate writes the complete linker script for one device. The
// region registry is created fresh for this call; a failure leaves no
// state behind for the next device.
func Generate(dev *device.Device, w io.Writer, opts Options) error {
	prof, err := profileFor(dev.Family)
	if err != nil {
		return err
	}

	g := &genCtx{dev: dev}
	if err := populate(prof, g, opts); err != nil {
		return err
	}

	secs := prof.sections(dev)
	if err := checkBindings(secs, &g.reg, dev.Name); err != nil {
		return err
	}

	e := &emitter{w: w}
	writeHeader(e, dev)
	prof.preamble(e, g)
	writeMemory(e, &g.reg)
	e.line("SECTIONS")
	e.line("{")
	for i, s := range secs {
		if i > 0 {
			e.blank()
		}
		s.emit(e, g)
	}
	e.line("}")
	prof.epilogue(e, g)
	if e.err != nil {
		return fmt.Errorf("ldscript: %s: %w", dev.Name, e.err)
	}
	return nil
}

// Plan returns the ordered section→region bindings the script for this
// device would contain, without emitting anything.
func Plan(dev *device.Device, opts Options) ([]Binding, error) {
	prof, err := profileFor(dev.Family)
	if err != nil {
		return nil, err
	}
	g := &genCtx{dev: dev}
	if err := populate(prof, g, opts); err != nil {
		return nil, err
	}
	secs := prof.sections(dev)
	if err := checkBindings(secs, &g.reg, dev.Name); err != nil {
		return nil, err
	}
	out := make([]Binding, 0, len(secs))
	for _, s := range secs {
		out = append(out, Binding{Section: s.name, Region: s.region})
	}
	return out, nil
}

// Regions classifies the device and returns its sorted canonical
// regions, for inspection commands.
func Regions(dev *device.Device, opts Options) ([]mmap.Region, error) {
	prof, err := profileFor(dev.Family)
	if err != nil {
		return nil, err
	}
	g := &genCtx{dev: dev}
	if err := populate(prof, g, opts); err != nil {
		return nil, err
	}
	return g.reg.SortedByStart(), nil
}

func populate(prof profile, g *genCtx, opts Options) error {
	diags := opts.Diags
	if diags == nil {
		diags = &classify.Diags{}
	}
	g.reg.Clear()
	if err := classify.Apply(prof.table(), g.dev, &g.reg, diags, opts.Mode); err != nil {
		return err
	}
	return classify.ApplyConfigRegs(g.dev, &g.reg, opts.Mode, diags)
}

func checkBindings(secs []section, rg *mmap.Registry, devName string) error {
	for _, s := range secs {
		if s.region == "" {
			continue
		}
		if _, err := rg.FindByName(s.region); err != nil {
			return fmt.Errorf("%w: %s: %s > %s", ErrUnknownRegion, devName, s.name, s.region)
		}
	}
	return nil
}

func writeHeader(e *emitter, dev *device.Device) {
	e.line("/*")
	e.p(" * Linker script for %s.\n", dev.Name)
	e.line(" *")
	e.line(" * Generated by ldgen from the vendor-supplied device memory map.")
	e.line(" * This file is provided as-is, without warranty of any kind; it may")
	e.line(" * be used, copied and modified freely for any purpose.")
	e.line(" */")
	e.blank()
}

func writeMemory(e *emitter, rg *mmap.Registry) {
	e.line("MEMORY")
	e.line("{")
	for _, r := range rg.SortedByStart() {
		e.p("  %s\n", r.MemoryLine())
	}
	e.line("}")
	e.blank()
}

// configRegSections builds one KEEPed section per config-register
// descriptor, routed to the same-named region. Shared by all profiles.
func configRegSections(dev *device.Device) []section {
	secs := make([]section, 0, len(dev.ConfigRegs))
	for _, cr := range dev.ConfigRegs {
		name := strings.ToLower(cr.Name)
		secs = append(secs, section{
			name:   "." + name,
			region: name,
			emit: func(e *emitter, g *genCtx) {
				e.p("  .%s : {\n", name)
				e.p("    KEEP(*(.%s))\n", name)
				e.p("  } > %s\n", name)
			},
		})
	}
	return secs
}
