// Package naming turns a sidecar metadata dump into named variables and
// substitutes them into a filename pattern.
//
// The pipeline is ParseMetadata -> Derive -> Merge -> FormatPattern. Every
// function is pure and safe for concurrent use.
package naming

import "sort"

// Vars maps a variable name to its value. Raw metadata, derived variables
// and the merged set all share this shape.
type Vars map[string]string

// Keys returns the variable names in sorted order.
func (v Vars) Keys() []string {
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Merge builds a new Vars from derived, then overlays every raw entry on top
// of it. Raw values win on collision. Neither input is modified.
func Merge(derived, raw Vars) Vars {
	out := make(Vars, len(derived)+len(raw))
	for k, v := range derived {
		out[k] = v
	}
	for k, v := range raw {
		out[k] = v
	}
	return out
}
