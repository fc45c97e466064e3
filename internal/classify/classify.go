// Package classify decides which raw vendor regions become canonical
// linker regions, what they are renamed to and what access mask they
// receive. The policy is a declarative per-architecture rule table;
// emission never looks at vendor names.
package classify

import (
	"fmt"
	"strings"

	"ldgen/internal/device"
	"ldgen/internal/mmap"
)

// Rule matches one class of vendor region and describes its canonical
// form. A nil Names list matches any region of the given type. An
// empty Canonical keeps the vendor name, lower-cased.
type Rule struct {
	Type      mmap.Type
	Names     []string // case-insensitive exact matches
	Prefixes  []string // case-insensitive prefix matches
	Canonical string
	Access    mmap.Access
	Tagged    bool // move the region into Segment before registering
	Segment   mmap.Segment
}

func (r Rule) matches(typ mmap.Type, name string) bool {
	if typ != r.Type {
		return false
	}
	if len(r.Names) == 0 && len(r.Prefixes) == 0 {
		return true
	}
	for _, n := range r.Names {
		if strings.EqualFold(name, n) {
			return true
		}
	}
	for _, p := range r.Prefixes {
		if len(name) >= len(p) && strings.EqualFold(name[:len(p)], p) {
			return true
		}
	}
	return false
}

// Table is an ordered rule list; the first matching rule wins.
type Table []Rule

// TableFor returns the classification table for an architecture family.
func TableFor(family device.Family) Table {
	switch family {
	case device.FamilyMIPS32:
		return mips32Table
	default:
		return cortexMTable
	}
}

// Classify maps one raw vendor region to its canonical form. The
// second result is false when no rule matches (the region is dropped,
// which is not an error: vendor catalogs list more regions than one
// architecture profile consumes).
func (t Table) Classify(raw device.RawRegion) (mmap.Region, bool, error) {
	typ, err := raw.VendorType()
	if err != nil {
		return mmap.Region{}, false, err
	}
	for _, rule := range t {
		if !rule.matches(typ, raw.Name) {
			continue
		}
		reg, err := mmap.NewRegion(raw.Name, 0, uint32(raw.Start), uint32(raw.End), typ)
		if err != nil {
			return mmap.Region{}, false, err
		}
		name := rule.Canonical
		if name == "" {
			name = strings.ToLower(raw.Name)
		}
		reg.SetName(name)
		reg.SetAccess(rule.Access)
		if rule.Tagged {
			reg = reg.InSegment(rule.Segment)
		}
		return reg, true, nil
	}
	return mmap.Region{}, false, nil
}

// Apply classifies every raw region of a device into the registry.
// Unmatched regions and, in best-effort mode, malformed ones are
// recorded in diags and skipped. A duplicate canonical name is always
// fatal.
func Apply(t Table, dev *device.Device, rg *mmap.Registry, diags *Diags, mode Mode) error {
	for _, raw := range dev.Regions {
		reg, ok, err := t.Classify(raw)
		if err != nil {
			if mode == ModeStrict {
				return fmt.Errorf("classify: %s: %w", dev.Name, err)
			}
			kind := DiagBounds
			if _, verr := raw.VendorType(); verr != nil {
				kind = DiagBadType
			}
			diags.Addf(raw.Name, kind, "%v", err)
			continue
		}
		if !ok {
			diags.Addf(raw.Name, DiagDropped, "no rule for type %q", raw.Type)
			continue
		}
		if err := rg.Add(reg); err != nil {
			return fmt.Errorf("classify: %s: %w", dev.Name, err)
		}
	}
	return nil
}

// ApplyConfigRegs registers one same-named region per config-register
// descriptor. Every descriptor is kept; there is no drop rule.
func ApplyConfigRegs(dev *device.Device, rg *mmap.Registry, mode Mode, diags *Diags) error {
	for _, cr := range dev.ConfigRegs {
		if a := mmap.Align(uint32(cr.Start), 4); a != uint32(cr.Start) {
			diags.Addf(cr.Name, DiagMisaligned, "config word at 0x%08X is not word-aligned", uint32(cr.Start))
		}
		reg, err := mmap.NewRegion(strings.ToLower(cr.Name), mmap.Read|mmap.Write,
			uint32(cr.Start), uint32(cr.End), mmap.Fuse)
		if err != nil {
			if mode == ModeStrict {
				return fmt.Errorf("classify: %s: %w", dev.Name, err)
			}
			diags.Addf(cr.Name, DiagBounds, "%v", err)
			continue
		}
		if err := rg.Add(reg); err != nil {
			return fmt.Errorf("classify: %s: %w", dev.Name, err)
		}
	}
	return nil
}
