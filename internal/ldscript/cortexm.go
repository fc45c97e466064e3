package ldscript

import (
	"ldgen/internal/classify"
	"ldgen/internal/device"
)

// cortexMProfile emits the ARM Cortex-M script: vectors and program
// text in rom, initialized data relocated to ram, then persistent,
// bss, heap and a downward-growing stack at the top of ram.
type cortexMProfile struct{}

func (cortexMProfile) table() classify.Table {
	return classify.TableFor(device.FamilyARM)
}

func (cortexMProfile) preamble(e *emitter, g *genCtx) {
	e.line(`OUTPUT_FORMAT("elf32-littlearm", "elf32-littlearm", "elf32-littlearm")`)
	e.line("OUTPUT_ARCH(arm)")
	e.line("SEARCH_DIR(.)")
	e.line("ENTRY(Reset_Handler)")
	e.blank()
	e.line("/* Overridable from the linker command line, e.g. -Wl,--defsym,__stack_size__=0x800. */")
	e.p("HEAP_SIZE = DEFINED(__heap_size__) ? __heap_size__ : 0x%X;\n", DefaultHeapSize)
	e.p("STACK_SIZE = DEFINED(__stack_size__) ? __stack_size__ : 0x%X;\n", DefaultStackSize)
	e.blank()
}

func (p cortexMProfile) sections(dev *device.Device) []section {
	secs := []section{
		{name: ".vectors", region: "rom", emit: emitVectors},
		{name: ".text", region: "rom", emit: emitText},
		{name: ".ARM.exidx", region: "rom", emit: emitExidx},
		{name: ".relocate", region: "ram", emit: emitRelocate},
		{name: ".persistent", region: "ram", emit: emitPersistent},
		{name: ".bss", region: "ram", emit: emitBss},
		{name: ".heap", region: "ram", emit: emitHeap},
		{name: ".stack", region: "ram", emit: emitStack},
		{name: ".ARM.attributes", emit: emitArmAttributes},
	}
	return append(secs, configRegSections(dev)...)
}

func (cortexMProfile) epilogue(e *emitter, g *genCtx) {
	e.blank()
	e.line(`ASSERT(__StackLimit >= _eheap, "region ram overflowed: reserved stack does not fit")`)
}

func emitVectors(e *emitter, g *genCtx) {
	e.line("  .vectors :")
	e.line("  {")
	e.line("    . = ALIGN(4);")
	e.line("    _sfixed = .;")
	e.line("    KEEP(*(.vectors .vectors.*))")
	e.line("    __evectors = .;")
	e.line("  } > rom")
}

func emitText(e *emitter, g *genCtx) {
	e.line("  .text :")
	e.line("  {")
	e.line("    . = ALIGN(4);")
	e.line("    *(.text .text.* .gnu.linkonce.t.*)")
	e.line("    *(.glue_7t) *(.glue_7)")
	e.line("    *(.rodata .rodata* .gnu.linkonce.r.*)")
	e.line("    *(.ARM.extab* .gnu.linkonce.armextab.*)")
	e.blank()
	e.line("    /* C static constructors and destructors. */")
	e.line("    . = ALIGN(4);")
	e.line("    KEEP(*(.init))")
	e.line("    . = ALIGN(4);")
	e.line("    __preinit_array_start = .;")
	e.line("    KEEP(*(.preinit_array))")
	e.line("    __preinit_array_end = .;")
	e.blank()
	e.line("    . = ALIGN(4);")
	e.line("    __init_array_start = .;")
	e.line("    KEEP(*(SORT(.init_array.*)))")
	e.line("    KEEP(*(.init_array))")
	e.line("    __init_array_end = .;")
	e.blank()
	e.line("    . = ALIGN(4);")
	e.line("    KEEP(*(.fini))")
	e.line("    . = ALIGN(4);")
	e.line("    __fini_array_start = .;")
	e.line("    KEEP(*(SORT(.fini_array.*)))")
	e.line("    KEEP(*(.fini_array))")
	e.line("    __fini_array_end = .;")
	e.blank()
	e.line("    . = ALIGN(4);")
	e.line("    KEEP(*(.eh_frame*))")
	e.line("    _efixed = .;")
	e.line("  } > rom")
}

func emitExidx(e *emitter, g *genCtx) {
	e.line("  /* Stack-unwind tables, consumed by the C++ exception runtime. */")
	e.line("  PROVIDE_HIDDEN(__exidx_start = .);")
	e.line("  .ARM.exidx :")
	e.line("  {")
	e.line("    *(.ARM.exidx* .gnu.linkonce.armexidx.*)")
	e.line("  } > rom")
	e.line("  PROVIDE_HIDDEN(__exidx_end = .);")
	e.blank()
	e.line("  . = ALIGN(4);")
	e.line("  _etext = .;")
}

// emitRelocate writes the initialized-data block, copied from rom to
// ram by the startup code. On cached devices the cache-bypass data
// sub-block is split out on a 32-byte boundary so MPU and cache
// maintenance can treat it as whole lines.
func emitRelocate(e *emitter, g *genCtx) {
	e.line("  .relocate : AT (_etext)")
	e.line("  {")
	e.line("    . = ALIGN(4);")
	e.line("    _srelocate = .;")
	e.line("    __data_start__ = .;")
	e.line("    *(.ramfunc .ramfunc.*)")
	e.line("    *(.data .data.* .gnu.linkonce.d.*)")
	if g.dev.Cache {
		e.line("    . = ALIGN(32);")
		e.line("    __data_nocache_start__ = .;")
		e.line("    *(.data_nocache .data_nocache.*)")
		e.line("    . = ALIGN(32);")
		e.line("    __data_nocache_end__ = .;")
	} else {
		e.line("    . = ALIGN(4);")
	}
	e.line("    _erelocate = .;")
	e.line("    __data_end__ = .;")
	e.line("  } > ram")
}

func emitPersistent(e *emitter, g *genCtx) {
	e.line("  /* Survives reset: startup code neither loads nor zeroes it. */")
	e.line("  .persistent (NOLOAD) :")
	e.line("  {")
	e.line("    . = ALIGN(4);")
	e.line("    _spersistent = .;")
	e.line("    *(.persistent .persistent.*)")
	e.line("    _epersistent = .;")
	e.line("  } > ram")
}

func emitBss(e *emitter, g *genCtx) {
	e.line("  .bss (NOLOAD) :")
	e.line("  {")
	e.line("    . = ALIGN(4);")
	e.line("    _sbss = .;")
	e.line("    _szero = .;")
	e.line("    __bss_start__ = .;")
	e.line("    *(.bss .bss.* .gnu.linkonce.b.*)")
	e.line("    *(COMMON)")
	e.line("    . = ALIGN(4);")
	e.line("    _ebss = .;")
	e.line("    _ezero = .;")
	e.line("    __bss_end__ = .;")
	e.line("  } > ram")
}

func emitHeap(e *emitter, g *genCtx) {
	e.line("  .heap (NOLOAD) :")
	e.line("  {")
	e.line("    . = ALIGN(8);")
	e.line("    _sheap = .;")
	e.line("    __HeapBase = .;")
	e.line("    . = . + HEAP_SIZE;")
	e.line("    . = ALIGN(8);")
	e.line("    _eheap = .;")
	e.line("    __HeapLimit = .;")
	e.line("  } > ram")
}

func emitStack(e *emitter, g *genCtx) {
	e.line("  /* Reserved at the top of ram; the stack grows down from __StackTop. */")
	e.line("  .stack ORIGIN(ram) + LENGTH(ram) - STACK_SIZE (NOLOAD) :")
	e.line("  {")
	e.line("    . = ALIGN(8);")
	e.line("    _sstack = .;")
	e.line("    __StackLimit = .;")
	e.line("    . = . + STACK_SIZE;")
	e.line("    . = ALIGN(8);")
	e.line("    _estack = .;")
	e.line("    __StackTop = .;")
	e.line("  } > ram")
	e.line("  PROVIDE(_stack = __StackTop);")
}

func emitArmAttributes(e *emitter, g *genCtx) {
	e.line("  .ARM.attributes 0 : { *(.ARM.attributes) }")
}
