package ldscript

import (
	"errors"
	"strings"
	"testing"

	"ldgen/internal/classify"
	"ldgen/internal/device"
)

func same70(t *testing.T, cache bool) *device.Device {
	t.Helper()
	return &device.Device{
		Name:   "ATSAME70Q21B",
		Family: device.FamilyARM,
		Cache:  cache,
		Regions: []device.RawRegion{
			{Name: "IFLASH", Type: "code", Start: 0x00400000, End: 0x00600000},
			{Name: "IRAM", Type: "sram", Start: 0x20400000, End: 0x20460000},
		},
	}
}

func pic32(t *testing.T) *device.Device {
	t.Helper()
	return &device.Device{
		Name:   "PIC32MZ2048EFH144",
		Family: device.FamilyMIPS32,
		Regions: []device.RawRegion{
			{Name: "BFM", Type: "boot", Start: 0x1FC00000, End: 0x1FC74000},
			{Name: "PFM", Type: "code", Start: 0x1D000000, End: 0x1D200000},
			{Name: "RAM", Type: "sram", Start: 0x00000000, End: 0x00080000},
		},
		ConfigRegs: []device.ConfigReg{
			{Name: "DEVCFG0", Start: 0x1FC0FFCC, End: 0x1FC0FFD0},
		},
	}
}

func generate(t *testing.T, dev *device.Device) string {
	t.Helper()
	var sb strings.Builder
	if err := Generate(dev, &sb, Options{}); err != nil {
		t.Fatal(err)
	}
	return sb.String()
}

func TestGenerateSame70Memory(t *testing.T) {
	script := generate(t, same70(t, true))

	wantROM := "rom                             (rx) : ORIGIN = 0x00400000, LENGTH = 0x200000"
	wantRAM := "ram                             (rwx) : ORIGIN = 0x20400000, LENGTH = 0x60000"
	if !strings.Contains(script, wantROM) {
		t.Errorf("MEMORY lacks rom line:\n%s", script)
	}
	if !strings.Contains(script, wantRAM) {
		t.Errorf("MEMORY lacks ram line:\n%s", script)
	}
	if strings.Index(script, wantROM) > strings.Index(script, wantRAM) {
		t.Error("rom must precede ram (ascending start address)")
	}

	// Exactly two regions in the MEMORY block.
	mem := script[strings.Index(script, "MEMORY"):]
	mem = mem[:strings.Index(mem, "}")]
	if n := strings.Count(mem, "ORIGIN"); n != 2 {
		t.Errorf("MEMORY holds %d regions, want 2:\n%s", n, mem)
	}
}

func TestGenerateCacheAlignment(t *testing.T) {
	cached := generate(t, same70(t, true))
	if !strings.Contains(cached, ". = ALIGN(32);") {
		t.Error("cached device: data block missing 32-byte alignment")
	}
	if !strings.Contains(cached, ".data_nocache") {
		t.Error("cached device: missing cache-bypass sub-block")
	}

	uncached := generate(t, same70(t, false))
	if strings.Contains(uncached, ". = ALIGN(32);") {
		t.Error("uncached device: unexpected 32-byte alignment")
	}
	if strings.Contains(uncached, ".data_nocache") {
		t.Error("uncached device: unexpected cache-bypass sub-block")
	}
	if !strings.Contains(uncached, ". = ALIGN(4);") {
		t.Error("uncached device: data block missing 4-byte alignment")
	}
}

func TestGenerateInvocationMetadata(t *testing.T) {
	script := generate(t, same70(t, true))
	for _, want := range []string{
		`OUTPUT_FORMAT("elf32-littlearm"`,
		"OUTPUT_ARCH(arm)",
		"SEARCH_DIR(.)",
		"ENTRY(Reset_Handler)",
		"HEAP_SIZE = DEFINED(__heap_size__) ? __heap_size__ : 0x200;",
		"STACK_SIZE = DEFINED(__stack_size__) ? __stack_size__ : 0x400;",
	} {
		if !strings.Contains(script, want) {
			t.Errorf("script missing %q", want)
		}
	}
}

func TestGenerateStartupSymbols(t *testing.T) {
	script := generate(t, same70(t, true))
	for _, sym := range []string{
		"_sfixed", "__evectors", "_etext", "__data_start__",
		"_sbss", "_eheap", "__StackTop", "__StackLimit",
	} {
		if !strings.Contains(script, sym) {
			t.Errorf("script missing startup symbol %s", sym)
		}
	}
	if !strings.Contains(script, `ASSERT(__StackLimit >= _eheap`) {
		t.Error("script missing stack assertion")
	}
}

func TestGenerateBindingError(t *testing.T) {
	dev := same70(t, true)
	dev.Regions = dev.Regions[:1] // drop IRAM; .relocate > ram cannot bind
	var sb strings.Builder
	err := Generate(dev, &sb, Options{})
	if !errors.Is(err, ErrUnknownRegion) {
		t.Fatalf("err = %v, want ErrUnknownRegion", err)
	}
	if sb.Len() != 0 {
		t.Error("binding failure wrote partial output")
	}
}

func TestGenerateNoLeakBetweenDevices(t *testing.T) {
	withEBI := same70(t, true)
	withEBI.Regions = append(withEBI.Regions,
		device.RawRegion{Name: "EBI_CS0", Type: "ebi", Start: 0x60000000, End: 0x61000000})

	first := generate(t, withEBI)
	if !strings.Contains(first, "ebi_cs0") {
		t.Fatal("first script missing its own ebi region")
	}
	second := generate(t, same70(t, true))
	if strings.Contains(second, "ebi_cs0") {
		t.Error("region leaked from previous device's generation")
	}
}

func TestGenerateMips32(t *testing.T) {
	script := generate(t, pic32(t))

	// Code and RAM moved into the kseg0 view.
	for _, want := range []string{
		"ORIGIN = 0x9D000000, LENGTH = 0x200000",
		"ORIGIN = 0x9FC00000, LENGTH = 0x74000",
		"ORIGIN = 0x80000000, LENGTH = 0x80000",
		"kseg0_program_mem",
		"kseg0_boot_mem",
		"kseg0_data_mem",
		"ENTRY(_reset)",
		`OUTPUT_FORMAT("elf32-tradlittlemips")`,
	} {
		if !strings.Contains(script, want) {
			t.Errorf("script missing %q", want)
		}
	}

	// Config register gets a same-named region and a KEEPed section.
	if !strings.Contains(script, "devcfg0                         (rw) : ORIGIN = 0x1FC0FFCC, LENGTH = 0x4") {
		t.Errorf("MEMORY missing devcfg0 region:\n%s", script)
	}
	if !strings.Contains(script, "KEEP(*(.devcfg0))") {
		t.Error("missing config register section")
	}
	if !strings.Contains(script, "} > devcfg0") {
		t.Error("config register section not routed to its region")
	}
}

func TestPlanBindings(t *testing.T) {
	plan, err := Plan(same70(t, true), Options{})
	if err != nil {
		t.Fatal(err)
	}
	first := plan[0]
	if first.Section != ".vectors" || first.Region != "rom" {
		t.Errorf("plan[0] = %+v, want .vectors > rom", first)
	}
	var stack bool
	for _, b := range plan {
		if b.Section == ".stack" && b.Region == "ram" {
			stack = true
		}
	}
	if !stack {
		t.Error("plan missing .stack > ram binding")
	}
}

func TestRegionsSorted(t *testing.T) {
	regs, err := Regions(same70(t, true), Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(regs) != 2 || regs[0].Name() != "rom" || regs[1].Name() != "ram" {
		t.Fatalf("unexpected regions: %v", regs)
	}
}

func TestGenerateRecordsDrops(t *testing.T) {
	dev := same70(t, true)
	dev.Regions = append(dev.Regions,
		device.RawRegion{Name: "PERIPHERALS", Type: "peripheral", Start: 0x40000000, End: 0x60000000})
	var diags classify.Diags
	var sb strings.Builder
	if err := Generate(dev, &sb, Options{Diags: &diags}); err != nil {
		t.Fatal(err)
	}
	if diags.Len() != 1 || diags.Items()[0].Kind != classify.DiagDropped {
		t.Fatalf("diags = %v, want one dropped diag", diags.Items())
	}
}
