// Package device defines the read-only device view the generator
// consumes: name, architecture family, raw vendor memory regions,
// cache flag and config-register descriptors. Devices load from the
// structured JSON descriptions the catalog exporter produces; the
// vendor's own description format is parsed upstream, never here.
package device

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"ldgen/internal/mmap"
)

var (
	ErrNoName        = errors.New("device: missing device name")
	ErrBadFamily     = errors.New("device: unknown architecture family")
	ErrBadVendorType = errors.New("device: unknown vendor memory type")
)

// Family tags the architecture profile a device belongs to.
type Family string

const (
	FamilyARM    Family = "arm"
	FamilyMIPS32 Family = "mips32"
)

func (f Family) valid() bool {
	return f == FamilyARM || f == FamilyMIPS32
}

// HexUint32 is a uint32 that unmarshals from either a JSON number or a
// "0x"-prefixed hex string.
type HexUint32 uint32

func (h *HexUint32) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		v, err := strconv.ParseUint(s, 0, 32)
		if err != nil {
			return fmt.Errorf("device: address %q: %w", s, err)
		}
		*h = HexUint32(v)
		return nil
	}
	var v uint64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	if v > 0xFFFFFFFF {
		return fmt.Errorf("device: address 0x%X exceeds 32 bits", v)
	}
	*h = HexUint32(v)
	return nil
}

func (h HexUint32) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", "0x"+strconv.FormatUint(uint64(h), 16))), nil
}

// RawRegion is one vendor-reported memory region, untouched by
// classification.
type RawRegion struct {
	Name  string    `json:"name"`
	Type  string    `json:"type"`
	Start HexUint32 `json:"start"`
	End   HexUint32 `json:"end"`
}

// VendorType maps the JSON type tag onto the mmap type enum.
func (r RawRegion) VendorType() (mmap.Type, error) {
	switch strings.ToLower(r.Type) {
	case "", "unspecified":
		return mmap.Unspecified, nil
	case "boot":
		return mmap.Boot, nil
	case "code":
		return mmap.Code, nil
	case "sram":
		return mmap.SRAM, nil
	case "ebi":
		return mmap.EBI, nil
	case "sqi":
		return mmap.SQI, nil
	case "sdram":
		return mmap.SDRAM, nil
	case "fuse":
		return mmap.Fuse, nil
	case "peripheral":
		return mmap.Peripheral, nil
	default:
		return mmap.Unspecified, fmt.Errorf("%w: %q", ErrBadVendorType, r.Type)
	}
}

// ConfigReg describes one device configuration register (fuse word)
// that needs its own identically-named region and section.
type ConfigReg struct {
	Name  string    `json:"name"`
	Start HexUint32 `json:"start"`
	End   HexUint32 `json:"end"`
}

// Device is the read-only view of one catalog entry.
type Device struct {
	Name       string      `json:"name"`
	Family     Family      `json:"family"`
	Series     string      `json:"series,omitempty"`
	Cache      bool        `json:"cache"`
	Regions    []RawRegion `json:"regions"`
	ConfigRegs []ConfigReg `json:"configRegs,omitempty"`
}

func (d *Device) validate() error {
	if d.Name == "" {
		return ErrNoName
	}
	if !d.Family.valid() {
		return fmt.Errorf("%w: %q (%s)", ErrBadFamily, d.Family, d.Name)
	}
	return nil
}

// LoadFile reads and validates one device description.
func LoadFile(path string) (*Device, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("device: read: %w", err)
	}
	var d Device
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("device: parse %s: %w", filepath.Base(path), err)
	}
	if err := d.validate(); err != nil {
		return nil, fmt.Errorf("device: %s: %w", filepath.Base(path), err)
	}
	return &d, nil
}

// LoadDir loads every *.json description in dir, in lexical order.
// A file that fails to load is reported in failed and skipped; the
// rest of the directory still loads, so one malformed description
// never takes the whole batch down.
func LoadDir(dir string) (devs []*Device, failed []error, err error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("device: read dir: %w", err)
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".json") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	for _, n := range names {
		d, err := LoadFile(filepath.Join(dir, n))
		if err != nil {
			failed = append(failed, err)
			continue
		}
		devs = append(devs, d)
	}
	return devs, failed, nil
}
