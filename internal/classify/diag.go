package classify

import "fmt"

// DiagKind classifies a diagnostic message.
type DiagKind string

const (
	DiagDropped    DiagKind = "dropped" // vendor region matched no rule
	DiagBounds     DiagKind = "bounds"  // region end precedes start
	DiagBadType    DiagKind = "bad_type"
	DiagMisaligned DiagKind = "misaligned"
)

// Diag records a non-fatal issue encountered while classifying one
// device's raw regions.
type Diag struct {
	Region string   `json:"region"`
	Kind   DiagKind `json:"kind"`
	Msg    string   `json:"msg"`
}

func (d Diag) String() string {
	return fmt.Sprintf("[%s] %s: %s", d.Kind, d.Region, d.Msg)
}

// Diags accumulates diagnostics.
type Diags struct {
	items []Diag
}

func (d *Diags) Add(region string, kind DiagKind, msg string) {
	d.items = append(d.items, Diag{Region: region, Kind: kind, Msg: msg})
}

func (d *Diags) Addf(region string, kind DiagKind, format string, args ...any) {
	d.items = append(d.items, Diag{Region: region, Kind: kind, Msg: fmt.Sprintf(format, args...)})
}

func (d *Diags) Items() []Diag { return d.items }
func (d *Diags) Len() int      { return len(d.items) }

// Mode controls how ingestion problems are handled.
type Mode int

const (
	ModeBestEffort Mode = iota // skip bad regions, accumulate diags
	ModeStrict                 // first ingestion problem returns an error
)
