package ldscript

import (
	"ldgen/internal/classify"
	"ldgen/internal/device"
)

// mips32Profile emits the PIC32-style MIPS32 script: reset vector in
// boot flash, program text in the cached kseg0 program view, one
// KEEPed section per config register, data and stack in kseg0 RAM.
type mips32Profile struct{}

func (mips32Profile) table() classify.Table {
	return classify.TableFor(device.FamilyMIPS32)
}

func (mips32Profile) preamble(e *emitter, g *genCtx) {
	e.line(`OUTPUT_FORMAT("elf32-tradlittlemips")`)
	e.line("OUTPUT_ARCH(mips)")
	e.line("SEARCH_DIR(.)")
	e.line("ENTRY(_reset)")
	e.blank()
	e.p("HEAP_SIZE = DEFINED(__heap_size__) ? __heap_size__ : 0x%X;\n", DefaultHeapSize)
	e.p("STACK_SIZE = DEFINED(__stack_size__) ? __stack_size__ : 0x%X;\n", DefaultStackSize)
	e.blank()
}

func (p mips32Profile) sections(dev *device.Device) []section {
	secs := []section{
		{name: ".reset", region: "kseg0_boot_mem", emit: emitMipsReset},
	}
	secs = append(secs, configRegSections(dev)...)
	secs = append(secs,
		section{name: ".text", region: "kseg0_program_mem", emit: emitMipsText},
		section{name: ".data", region: "kseg0_data_mem", emit: emitMipsData},
		section{name: ".bss", region: "kseg0_data_mem", emit: emitMipsBss},
		section{name: ".heap", region: "kseg0_data_mem", emit: emitMipsHeap},
		section{name: ".stack", region: "kseg0_data_mem", emit: emitMipsStack},
		section{name: "debug", emit: emitMipsDebug},
	)
	return secs
}

func (mips32Profile) epilogue(e *emitter, g *genCtx) {
	e.blank()
	e.line(`ASSERT(__StackLimit >= _eheap, "region kseg0_data_mem overflowed: reserved stack does not fit")`)
}

func emitMipsReset(e *emitter, g *genCtx) {
	e.line("  .reset :")
	e.line("  {")
	e.line("    KEEP(*(.reset))")
	e.line("    KEEP(*(.reset.startup))")
	e.line("    KEEP(*(.bev_handler))")
	e.line("  } > kseg0_boot_mem")
}

func emitMipsText(e *emitter, g *genCtx) {
	e.line("  .text :")
	e.line("  {")
	e.line("    . = ALIGN(4);")
	e.line("    _sfixed = .;")
	e.line("    KEEP(*(.vector_dispatch))")
	e.line("    __evectors = .;")
	e.line("    *(.text .text.* .gnu.linkonce.t.*)")
	e.line("    *(.mips16.fn.*) *(.mips16.call.*)")
	e.line("    *(.rodata .rodata* .gnu.linkonce.r.*)")
	e.line("    . = ALIGN(4);")
	e.line("    KEEP(*(.init))")
	e.line("    KEEP(*(.fini))")
	e.line("    . = ALIGN(4);")
	e.line("    __init_array_start = .;")
	e.line("    KEEP(*(SORT(.init_array.*)))")
	e.line("    KEEP(*(.init_array))")
	e.line("    __init_array_end = .;")
	e.line("    . = ALIGN(4);")
	e.line("    _efixed = .;")
	e.line("    _etext = .;")
	e.line("  } > kseg0_program_mem")
}

func emitMipsData(e *emitter, g *genCtx) {
	e.line("  /* Image stored in program flash, copied to RAM by the startup code. */")
	e.line("  .data : AT (_etext)")
	e.line("  {")
	e.line("    . = ALIGN(4);")
	e.line("    _srelocate = .;")
	e.line("    __data_start__ = .;")
	e.line("    *(.data .data.* .gnu.linkonce.d.*)")
	e.line("    . = ALIGN(16);")
	e.line("    _gp = . + 0x7FF0;")
	e.line("    *(.sdata .sdata.* .gnu.linkonce.s.*)")
	e.line("    . = ALIGN(4);")
	e.line("    _erelocate = .;")
	e.line("    __data_end__ = .;")
	e.line("  } > kseg0_data_mem")
}

func emitMipsBss(e *emitter, g *genCtx) {
	e.line("  .bss (NOLOAD) :")
	e.line("  {")
	e.line("    . = ALIGN(4);")
	e.line("    _sbss = .;")
	e.line("    __bss_start__ = .;")
	e.line("    *(.sbss .sbss.* .gnu.linkonce.sb.*)")
	e.line("    *(.bss .bss.* .gnu.linkonce.b.*)")
	e.line("    *(COMMON)")
	e.line("    . = ALIGN(4);")
	e.line("    _ebss = .;")
	e.line("    __bss_end__ = .;")
	e.line("  } > kseg0_data_mem")
}

func emitMipsHeap(e *emitter, g *genCtx) {
	e.line("  .heap (NOLOAD) :")
	e.line("  {")
	e.line("    . = ALIGN(8);")
	e.line("    _sheap = .;")
	e.line("    . = . + HEAP_SIZE;")
	e.line("    . = ALIGN(8);")
	e.line("    _eheap = .;")
	e.line("  } > kseg0_data_mem")
}

func emitMipsStack(e *emitter, g *genCtx) {
	e.line("  .stack ORIGIN(kseg0_data_mem) + LENGTH(kseg0_data_mem) - STACK_SIZE (NOLOAD) :")
	e.line("  {")
	e.line("    . = ALIGN(8);")
	e.line("    _sstack = .;")
	e.line("    __StackLimit = .;")
	e.line("    . = . + STACK_SIZE;")
	e.line("    . = ALIGN(8);")
	e.line("    _estack = .;")
	e.line("    __StackTop = .;")
	e.line("  } > kseg0_data_mem")
	e.line("  PROVIDE(_stack = __StackTop);")
}

func emitMipsDebug(e *emitter, g *genCtx) {
	e.line("  /* DWARF sections stay in the ELF image, never in device memory. */")
	e.line("  .debug_info     0 : { *(.debug_info) }")
	e.line("  .debug_abbrev   0 : { *(.debug_abbrev) }")
	e.line("  .debug_line     0 : { *(.debug_line .debug_line.*) }")
	e.line("  .debug_str      0 : { *(.debug_str) }")
	e.line("  .debug_frame    0 : { *(.debug_frame) }")
	e.line("  .debug_ranges   0 : { *(.debug_ranges) }")
	e.line("  .debug_loc      0 : { *(.debug_loc) }")
	e.line("  .comment        0 : { *(.comment) }")
}
