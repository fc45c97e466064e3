// Package layout turns a device's section→region bindings into a
// graph for visual inspection of where the script routes each section.
package layout

import (
	"github.com/zboralski/lattice"

	"ldgen/internal/ldscript"
)

// BuildBindingGraph constructs a lattice.Graph from a script plan.
// Each section and each region becomes a node; each binding becomes an
// edge from section to region. Unbound sections (debug information)
// are skipped.
func BuildBindingGraph(plan []ldscript.Binding) *lattice.Graph {
	g := &lattice.Graph{}
	seen := make(map[string]bool)
	node := func(name string) {
		if !seen[name] {
			seen[name] = true
			g.Nodes = append(g.Nodes, name)
		}
	}
	for _, b := range plan {
		if b.Region == "" {
			continue
		}
		node(b.Section)
		node(b.Region)
		g.Edges = append(g.Edges, lattice.Edge{
			Caller: b.Section,
			Callee: b.Region,
		})
	}
	g.Dedup()
	return g
}
