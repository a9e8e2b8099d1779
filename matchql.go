// Package matchql compiles a MongoDB find-filter style query document
// into a reusable predicate over dynamically shaped Go documents.
package matchql

import (
	"time"

	"github.com/omniql-engine/matchql/internal/match"
	"github.com/omniql-engine/matchql/internal/metrics"
	"github.com/omniql-engine/matchql/internal/query"
	"github.com/omniql-engine/matchql/internal/value"
)

// Predicate is a compiled query, ready to test documents against. A
// Predicate is immutable once built and safe for concurrent Test
// calls from multiple goroutines.
type Predicate struct {
	raw  any
	node *query.Node
	reg  *metrics.Registry
}

// New compiles query into a Predicate. Compilation never fails: a
// structurally malformed piece of the query evaluates to false rather
// than panicking or erroring, and a negating operator around it ($nin,
// $not, $nor) negates that false, so such a query can still match.
// Call Validate separately to surface structural problems.
func New(q any) *Predicate {
	return &Predicate{raw: q, node: query.Compile(q)}
}

// NewInstrumented compiles query exactly as New does, and attaches
// reg so every Test call is recorded against it.
func NewInstrumented(q any, reg *metrics.Registry) *Predicate {
	p := New(q)
	p.reg = reg
	return p
}

// Validate structurally checks the predicate's source query and
// returns p so it can be chained with New: `p, err := New(q).Validate()`.
// A non-nil error is always a *query.StructuralError.
func (p *Predicate) Validate() (*Predicate, error) {
	err := query.Validate(p.raw)
	if p.reg != nil {
		p.reg.ObserveValidation(err == nil)
	}
	if err != nil {
		return p, err
	}
	return p, nil
}

// Test reports whether doc matches the predicate. It never panics and
// never returns an error: any shape mismatch between the query and
// the document degrades to a non-match.
func (p *Predicate) Test(doc any) bool {
	if p.reg == nil {
		return match.Eval(p.node, value.From(doc))
	}
	start := time.Now()
	result := match.Eval(p.node, value.From(doc))
	p.reg.ObserveTest(time.Since(start), result)
	return result
}

// Raw returns the original, uncompiled query value passed to New.
func (p *Predicate) Raw() any { return p.raw }
