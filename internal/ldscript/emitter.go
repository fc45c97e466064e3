package ldscript

import (
	"fmt"
	"io"
)

// emitter wraps the output stream and latches the first write error so
// section templates can print without checking every call.
type emitter struct {
	w   io.Writer
	err error
}

func (e *emitter) p(format string, args ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}

func (e *emitter) line(s string) {
	e.p("%s\n", s)
}

func (e *emitter) blank() {
	e.p("\n")
}
