package output

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"ldgen/internal/device"
)

func TestToolchainPath(t *testing.T) {
	cases := []struct {
		name   string
		family device.Family
		want   string
	}{
		{"ATSAME70Q21B", device.FamilyARM, filepath.Join("ATSAME70Q21B", "ATSAME70Q21B.ld")},
		{"SAME70Q21B", device.FamilyARM, filepath.Join("ATSAME70Q21B", "ATSAME70Q21B.ld")},
		{"atsamv71q21", device.FamilyARM, filepath.Join("ATSAMV71Q21", "ATSAMV71Q21.ld")},
		{"PIC32MZ2048EFH144", device.FamilyMIPS32, filepath.Join("p32mz2048efh144", "p32mz2048efh144.ld")},
		// The family-prefix rewrite only applies when the prefix is there.
		{"M5123X", device.FamilyMIPS32, filepath.Join("m5123x", "m5123x.ld")},
	}
	for _, c := range cases {
		if got := ToolchainPath(c.name, c.family); got != c.want {
			t.Errorf("ToolchainPath(%q, %s) = %q, want %q", c.name, c.family, got, c.want)
		}
	}
}

func TestLowercasePath(t *testing.T) {
	want := filepath.Join("atsame70q21b", "atsame70q21b.ld")
	if got := LowercasePath("ATSAME70Q21B", device.FamilyARM); got != want {
		t.Errorf("LowercasePath = %q, want %q", got, want)
	}
}

func TestWriteScript(t *testing.T) {
	dir := t.TempDir()
	rel := filepath.Join("dev", "dev.ld")
	err := WriteScript(dir, rel, func(w io.Writer) error {
		_, err := fmt.Fprintln(w, "MEMORY {}")
		return err
	})
	if err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(filepath.Join(dir, rel))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "MEMORY {}\n" {
		t.Errorf("content = %q", data)
	}
}

func TestWriteScriptDiscardsOnError(t *testing.T) {
	dir := t.TempDir()
	rel := filepath.Join("dev", "dev.ld")
	genErr := errors.New("binding failed")
	err := WriteScript(dir, rel, func(w io.Writer) error {
		fmt.Fprintln(w, "partial output")
		return genErr
	})
	if !errors.Is(err, genErr) {
		t.Fatalf("err = %v, want gen error", err)
	}
	if _, err := os.Stat(filepath.Join(dir, rel)); !os.IsNotExist(err) {
		t.Fatal("failed generation left a script behind")
	}
	// No stray temp files either.
	entries, err := os.ReadDir(filepath.Join(dir, "dev"))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Fatalf("leftover files: %v", entries)
	}
}

func TestWriteScriptKeepsPrevious(t *testing.T) {
	dir := t.TempDir()
	rel := filepath.Join("dev", "dev.ld")
	if err := WriteScript(dir, rel, func(w io.Writer) error {
		_, err := fmt.Fprint(w, "good")
		return err
	}); err != nil {
		t.Fatal(err)
	}
	err := WriteScript(dir, rel, func(w io.Writer) error {
		return errors.New("boom")
	})
	if err == nil {
		t.Fatal("expected error")
	}
	data, err := os.ReadFile(filepath.Join(dir, rel))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "good" {
		t.Errorf("previous script clobbered: %q", data)
	}
}
