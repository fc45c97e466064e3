package output

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// WriteScript runs gen against a temp file in the target directory and
// renames it into place only on success. On any failure the temp file
// is removed and the previous script, if any, stays untouched.
func WriteScript(baseDir, relPath string, gen func(w io.Writer) error) error {
	path := filepath.Join(baseDir, relPath)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("output: mkdir: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp*")
	if err != nil {
		return fmt.Errorf("output: create: %w", err)
	}

	if err := gen(tmp); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("output: close: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("output: rename: %w", err)
	}
	return nil
}
