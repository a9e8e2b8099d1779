// Package match evaluates a compiled query.Node against a document
// value, implementing the engine's path-resolution and per-operator
// matching semantics.
package match

import (
	"strconv"

	"github.com/omniql-engine/matchql/internal/query"
	"github.com/omniql-engine/matchql/internal/value"
)

// MaxDepth bounds the path/fan-out recursion so a pathological document
// (self-referential only through repeated wrapping, or simply very
// deep) cannot exhaust the goroutine stack. It is far above any
// document this engine expects to see in practice.
const MaxDepth = 200

// leafMode selects how a terminal predicate consults the value found
// once a condition's path segments are exhausted.
type leafMode int

const (
	// leafFanOut tries the terminal on the node itself and, if that
	// fails and the node is an array, on each element in turn. This is
	// the default for scalar comparison operators, matching Mongo's
	// "a condition on a field also matches if any array element at
	// that field satisfies it" rule.
	leafFanOut leafMode = iota

	// leafDirect tries the terminal only on the node itself. Operators
	// whose terminal already has its own array-aware logic ($size,
	// $elemMatch, $all) use this so traverse does not also fan out.
	leafDirect
)

// traverse walks doc by segments, preferring a map-key lookup over an
// array-index interpretation whenever the current node is actually a
// map (so a numeric-looking field name on a document is never
// shadowed by array-index semantics), and falling back to fanning out
// over array elements with the segment unconsumed whenever a plain
// index lookup doesn't apply or doesn't match. absent is returned
// when a map lacks the next key or a non-container value sits where
// the path continues; an array there defers to its elements, so an
// empty array yields false rather than absent.
func traverse(doc value.Value, segments []string, terminal func(value.Value) bool, mode leafMode, absent bool) bool {
	return traverseDepth(doc, segments, terminal, mode, absent, 0)
}

func traverseDepth(doc value.Value, segments []string, terminal func(value.Value) bool, mode leafMode, absent bool, depth int) bool {
	if depth > MaxDepth {
		return false
	}
	if len(segments) == 0 {
		return evalLeaf(doc, terminal, mode)
	}

	key, rest := segments[0], segments[1:]
	switch doc.Kind() {
	case value.KindMap:
		if v, ok := doc.AsMap().Get(key); ok {
			return traverseDepth(v, rest, terminal, mode, absent, depth+1)
		}
		return absent
	case value.KindArray:
		arr := doc.AsArray()
		if query.IsIndexCandidate(key) {
			if idx, err := strconv.Atoi(key); err == nil && idx >= 0 && idx < len(arr) {
				if traverseDepth(arr[idx], rest, terminal, mode, absent, depth+1) {
					return true
				}
			}
		}
		for _, el := range arr {
			if traverseDepth(el, segments, terminal, mode, absent, depth+1) {
				return true
			}
		}
		return false
	default:
		return absent
	}
}

func evalLeaf(doc value.Value, terminal func(value.Value) bool, mode leafMode) bool {
	if terminal(doc) {
		return true
	}
	if mode == leafDirect {
		return false
	}
	if doc.Kind() != value.KindArray {
		return false
	}
	for _, el := range doc.AsArray() {
		if terminal(el) {
			return true
		}
	}
	return false
}
