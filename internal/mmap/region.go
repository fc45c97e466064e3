// Package mmap models a microcontroller's physical memory map: named
// address-space regions with access permissions, and the registry a
// script builder fills while classifying a device.
package mmap

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrRegionBounds  = errors.New("mmap: region end precedes start")
	ErrDuplicateName = errors.New("mmap: duplicate region name")
	ErrNotFound      = errors.New("mmap: region not found")
)

// Access is a bitmask of linker-script region attributes.
type Access uint8

const (
	Read Access = 1 << iota
	Write
	Exec
	NoExec
)

// String renders the attribute list in the fixed r,w,x,!x order the
// MEMORY command uses. An empty mask renders as "".
func (a Access) String() string {
	var sb strings.Builder
	if a&Read != 0 {
		sb.WriteByte('r')
	}
	if a&Write != 0 {
		sb.WriteByte('w')
	}
	if a&Exec != 0 {
		sb.WriteByte('x')
	}
	if a&NoExec != 0 {
		sb.WriteString("!x")
	}
	return sb.String()
}

// Type tags a region with the vendor-reported memory kind. It is set
// at ingestion and never changed afterwards.
type Type int

const (
	Unspecified Type = iota
	Boot
	Code
	SRAM
	EBI
	SQI
	SDRAM
	Fuse
	Peripheral
)

func (t Type) String() string {
	switch t {
	case Boot:
		return "boot"
	case Code:
		return "code"
	case SRAM:
		return "sram"
	case EBI:
		return "ebi"
	case SQI:
		return "sqi"
	case SDRAM:
		return "sdram"
	case Fuse:
		return "fuse"
	case Peripheral:
		return "peripheral"
	default:
		return "unspecified"
	}
}

// Segment selects a MIPS address-space view by fixing the top three
// address bits; the low 29 bits of the physical address are kept.
// ARM targets never apply segment tags.
type Segment uint32

const (
	SegPhysical Segment = 0x0 // 0x00000000
	SegUseg     Segment = 0x2 // 0x40000000
	SegKseg0    Segment = 0x4 // 0x80000000
	SegKseg2    Segment = 0x6 // 0xC0000000
)

const segMask = 0xE0000000

// Region is one contiguous span of address space destined for the
// MEMORY command. The name is rewritten during classification; type,
// start and length are fixed at construction.
type Region struct {
	name   string
	typ    Type
	access Access
	start  uint32
	length uint32
}

// NewRegion builds a region from its address bounds. The length is
// derived as end-start; end < start is an ingestion error.
func NewRegion(name string, access Access, start, end uint32, typ Type) (Region, error) {
	if end < start {
		return Region{}, fmt.Errorf("%w: %s [0x%08X,0x%08X)", ErrRegionBounds, name, start, end)
	}
	return Region{name: name, typ: typ, access: access, start: start, length: end - start}, nil
}

func (r Region) Name() string   { return r.name }
func (r Region) Type() Type     { return r.typ }
func (r Region) Access() Access { return r.access }
func (r Region) Start() uint32  { return r.start }
func (r Region) Length() uint32 { return r.length }

// SetName renames the region. Used by the classifier only; regions are
// never renamed once placed in a registry.
func (r *Region) SetName(name string) { r.name = name }

// SetAccess replaces the access mask. Classifier use only.
func (r *Region) SetAccess(a Access) { r.access = a }

// InSegment returns a copy of the region with its start address moved
// into the given MIPS segment view. The original is untouched.
func (r Region) InSegment(seg Segment) Region {
	out := r
	out.start = uint32(seg)<<29 | r.start&^uint32(segMask)
	return out
}

// memoryNameWidth is the column the attribute list starts in.
const memoryNameWidth = 32

// MemoryLine renders the region as one line of a MEMORY command:
//
//	rom                             (rx) : ORIGIN = 0x00400000, LENGTH = 0x200000
//
// The attribute block is omitted entirely when the mask is empty.
func (r Region) MemoryLine() string {
	name := r.name
	if len(name) < memoryNameWidth {
		name += strings.Repeat(" ", memoryNameWidth-len(name))
	} else {
		// Names at or past the column width still get a separator.
		name += " "
	}
	if attrs := r.access.String(); attrs != "" {
		return fmt.Sprintf("%s(%s) : ORIGIN = 0x%08X, LENGTH = 0x%X", name, attrs, r.start, r.length)
	}
	return fmt.Sprintf("%s : ORIGIN = 0x%08X, LENGTH = 0x%X", name, r.start, r.length)
}
