// Package output places generated scripts on disk: it resolves the
// per-device relative path and writes files atomically so a failed
// generation never leaves a partial script behind.
package output

import (
	"path/filepath"
	"strings"

	"ldgen/internal/device"
)

// PathStrategy maps a device to its script path relative to the output
// root. Two conventions exist historically and downstream tooling
// depends on the exact spelling of each, so both stay available and
// the caller picks one.
type PathStrategy func(name string, family device.Family) string

// ToolchainPath follows the vendor toolchain layout. ARM devices gain
// the "AT" order-code prefix if missing and stay upper-case; MIPS
// devices lose the "PIC" family prefix and become the lower-case
// "p32..." processor spelling.
func ToolchainPath(name string, family device.Family) string {
	var base string
	switch family {
	case device.FamilyMIPS32:
		base = strings.ToLower(name)
		if rest, ok := strings.CutPrefix(base, "pic"); ok {
			base = "p" + rest
		}
	default:
		base = strings.ToUpper(name)
		if !strings.HasPrefix(base, "AT") {
			base = "AT" + base
		}
	}
	return filepath.Join(base, base+".ld")
}

// LowercasePath lower-cases the device name for both directory and
// file, regardless of family.
func LowercasePath(name string, _ device.Family) string {
	base := strings.ToLower(name)
	return filepath.Join(base, base+".ld")
}
