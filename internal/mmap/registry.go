package mmap

import (
	"fmt"

	"golang.org/x/exp/slices"
)

// Registry collects the canonical regions for one device while a
// script builder classifies it. Not safe for concurrent use; one
// registry belongs to exactly one generation call.
type Registry struct {
	regions []Region
}

// Add appends a classified region. Two regions with the same final
// name would make the MEMORY command ambiguous, so duplicates fail.
func (rg *Registry) Add(r Region) error {
	for _, have := range rg.regions {
		if have.name == r.name {
			return fmt.Errorf("%w: %s", ErrDuplicateName, r.name)
		}
	}
	rg.regions = append(rg.regions, r)
	return nil
}

// Clear drops all regions. Must run before reusing a registry for the
// next device; stale regions would otherwise leak into its script.
func (rg *Registry) Clear() {
	rg.regions = rg.regions[:0]
}

// Len reports the number of regions held.
func (rg *Registry) Len() int { return len(rg.regions) }

// FindByName returns the region with the given canonical name.
func (rg *Registry) FindByName(name string) (Region, error) {
	for _, r := range rg.regions {
		if r.name == name {
			return r, nil
		}
	}
	return Region{}, fmt.Errorf("%w: %s", ErrNotFound, name)
}

// SortedByStart returns the regions ordered by ascending start
// address, stable on ties. The registry itself keeps insertion order;
// callers must take a fresh sorted view for every emission.
func (rg *Registry) SortedByStart() []Region {
	out := slices.Clone(rg.regions)
	slices.SortStableFunc(out, func(a, b Region) int {
		switch {
		case a.start < b.start:
			return -1
		case a.start > b.start:
			return 1
		default:
			return 0
		}
	})
	return out
}
