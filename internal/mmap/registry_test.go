package mmap

import (
	"errors"
	"testing"
)

func TestRegistrySortedByStart(t *testing.T) {
	var rg Registry
	for _, r := range []Region{
		mustRegion(t, "ram", Read|Write|Exec, 0x20000000, 0x20010000, SRAM),
		mustRegion(t, "rom", Read|Exec, 0x1D000000, 0x1D200000, Code),
		mustRegion(t, "itcm", Read|Write|Exec, 0x00000000, 0x00008000, Code),
	} {
		if err := rg.Add(r); err != nil {
			t.Fatal(err)
		}
	}

	sorted := rg.SortedByStart()
	want := []uint32{0x00000000, 0x1D000000, 0x20000000}
	for i, r := range sorted {
		if r.Start() != want[i] {
			t.Errorf("sorted[%d].Start() = 0x%08X, want 0x%08X", i, r.Start(), want[i])
		}
	}

	// Insertion order inside the registry is untouched.
	if first, _ := rg.FindByName("ram"); first.Start() != 0x20000000 {
		t.Error("FindByName returned wrong region after sort")
	}
}

func TestRegistryDuplicateName(t *testing.T) {
	var rg Registry
	if err := rg.Add(mustRegion(t, "ram", Read|Write, 0x20000000, 0x20010000, SRAM)); err != nil {
		t.Fatal(err)
	}
	err := rg.Add(mustRegion(t, "ram", Read|Write, 0x20400000, 0x20410000, SRAM))
	if !errors.Is(err, ErrDuplicateName) {
		t.Fatalf("err = %v, want ErrDuplicateName", err)
	}
}

func TestRegistryClear(t *testing.T) {
	var rg Registry
	if err := rg.Add(mustRegion(t, "rom", Read|Exec, 0x1D000000, 0x1D200000, Code)); err != nil {
		t.Fatal(err)
	}
	rg.Clear()
	if rg.Len() != 0 {
		t.Fatalf("Len() = %d after Clear, want 0", rg.Len())
	}
	if _, err := rg.FindByName("rom"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}

	// Re-adding the same region reproduces the same sorted view.
	if err := rg.Add(mustRegion(t, "rom", Read|Exec, 0x1D000000, 0x1D200000, Code)); err != nil {
		t.Fatal(err)
	}
	sorted := rg.SortedByStart()
	if len(sorted) != 1 || sorted[0].MemoryLine() != "rom                             (rx) : ORIGIN = 0x1D000000, LENGTH = 0x200000" {
		t.Errorf("unexpected view after clear and re-add: %v", sorted)
	}
}

func TestRegistryFindByName(t *testing.T) {
	var rg Registry
	if err := rg.Add(mustRegion(t, "dtcm", Read|Write|Exec, 0x20000000, 0x20020000, SRAM)); err != nil {
		t.Fatal(err)
	}
	r, err := rg.FindByName("dtcm")
	if err != nil {
		t.Fatal(err)
	}
	if r.Length() != 0x20000 {
		t.Errorf("length = 0x%X, want 0x20000", r.Length())
	}
}
