// Package diff computes structural differences between two decoded JSON
// values, classifying them as added, removed or changed and locating each
// one with a dotted/bracketed path (e.g. "a.b[2].c").
package diff

import (
	"fmt"
	"reflect"
	"sort"
)

// Entry locates a value that exists on only one side of a comparison.
type Entry struct {
	Path  string
	Value any
}

// Change locates a value present on both sides with different contents.
type Change struct {
	Path string
	Old  any
	New  any
}

// Result groups differences by kind. Within each slice, entries appear in
// traversal discovery order: depth-first, sorted keys at each mapping level,
// ascending indices at each sequence level.
type Result struct {
	Added   []Entry
	Removed []Entry
	Changed []Change
}

// Empty reports whether the comparison found no differences.
func (r Result) Empty() bool {
	return len(r.Added) == 0 && len(r.Removed) == 0 && len(r.Changed) == 0
}

// Diff compares two JSON-like values, i.e. the shapes encoding/json produces
// when decoding into any: nil, bool, float64, string, []any, map[string]any.
// It never fails; values of mismatched shapes collapse into a single Changed
// entry at the current path.
func Diff(a, b any) Result {
	var r Result
	walk(a, b, "", &r)
	return r
}

func walk(a, b any, path string, r *Result) {
	switch av := a.(type) {
	case map[string]any:
		if bv, ok := b.(map[string]any); ok {
			walkMaps(av, bv, path, r)
			return
		}
	case []any:
		if bv, ok := b.([]any); ok {
			walkSlices(av, bv, path, r)
			return
		}
	}
	if !reflect.DeepEqual(a, b) {
		if path == "" {
			// An empty path denotes the whole value.
			path = "(value)"
		}
		r.Changed = append(r.Changed, Change{Path: path, Old: a, New: b})
	}
}

// walkMaps iterates the union of keys in sorted order so that output is
// deterministic regardless of payload key ordering.
func walkMaps(a, b map[string]any, path string, r *Result) {
	keys := make([]string, 0, len(a)+len(b))
	for k := range a {
		keys = append(keys, k)
	}
	for k := range b {
		if _, ok := a[k]; !ok {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	for _, k := range keys {
		p := childPath(path, k)
		va, inA := a[k]
		vb, inB := b[k]
		switch {
		case !inA:
			r.Added = append(r.Added, Entry{Path: p, Value: vb})
		case !inB:
			r.Removed = append(r.Removed, Entry{Path: p, Value: va})
		default:
			walk(va, vb, p, r)
		}
	}
}

func walkSlices(a, b []any, path string, r *Result) {
	n := max(len(a), len(b))
	for i := 0; i < n; i++ {
		p := fmt.Sprintf("%s[%d]", path, i)
		switch {
		case i >= len(a):
			r.Added = append(r.Added, Entry{Path: p, Value: b[i]})
		case i >= len(b):
			r.Removed = append(r.Removed, Entry{Path: p, Value: a[i]})
		default:
			walk(a[i], b[i], p, r)
		}
	}
}

func childPath(parent, key string) string {
	if parent == "" {
		return key
	}
	return parent + "." + key
}
