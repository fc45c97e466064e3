package classify

import "ldgen/internal/mmap"

// cortexMTable is the ARM Cortex-M profile. External-bus regions keep
// their vendor name (lower-cased) and carry no attribute list: the
// script routes nothing there by default, the application opts in.
var cortexMTable = Table{
	{Type: mmap.Code, Names: []string{"IFLASH"}, Canonical: "rom", Access: mmap.Read | mmap.Exec},
	{Type: mmap.Code, Names: []string{"ITCM"}, Canonical: "itcm", Access: mmap.Read | mmap.Write | mmap.Exec},
	{Type: mmap.SRAM, Names: []string{"IRAM", "HSRAM"}, Canonical: "ram", Access: mmap.Read | mmap.Write | mmap.Exec},
	{Type: mmap.SRAM, Names: []string{"DTCM"}, Canonical: "dtcm", Access: mmap.Read | mmap.Write | mmap.Exec},
	{Type: mmap.EBI},
	{Type: mmap.SQI},
	{Type: mmap.SDRAM},
}

// mips32Table is the MIPS32 (PIC32-style) profile. Code and RAM move
// into the cached kseg0 view; fuse regions stay at their physical
// address so the config words land where the programmer expects them.
var mips32Table = Table{
	{Type: mmap.Boot, Prefixes: []string{"BFM", "BOOT"}, Canonical: "kseg0_boot_mem",
		Access: mmap.Read | mmap.Exec, Tagged: true, Segment: mmap.SegKseg0},
	{Type: mmap.Code, Prefixes: []string{"IFLASH", "PFM", "CODE"}, Canonical: "kseg0_program_mem",
		Access: mmap.Read | mmap.Exec, Tagged: true, Segment: mmap.SegKseg0},
	{Type: mmap.SRAM, Canonical: "kseg0_data_mem",
		Access: mmap.Read | mmap.Write | mmap.NoExec, Tagged: true, Segment: mmap.SegKseg0},
	{Type: mmap.Fuse, Access: mmap.Read | mmap.Write, Tagged: true, Segment: mmap.SegPhysical},
	// External-bus windows live in the mapped kseg2 view on PIC32.
	{Type: mmap.EBI, Tagged: true, Segment: mmap.SegKseg2},
	{Type: mmap.SQI, Tagged: true, Segment: mmap.SegKseg2},
	{Type: mmap.SDRAM, Tagged: true, Segment: mmap.SegKseg2},
}
