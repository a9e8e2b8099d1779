package query

import (
	"math"

	"github.com/omniql-engine/matchql/internal/value"
)

// Compile builds the matcher's internal representation from a raw
// query. It never fails: a structurally malformed piece compiles to a
// node that evaluates the way this engine's runtime-mismatch contract
// already defines (e.g. a non-list $and argument is simply "false"),
// so Test stays total regardless of whether Validate was ever called.
func Compile(raw any) *Node {
	return compileQuery(value.From(raw))
}

func compileQuery(q value.Value) *Node {
	if q.Kind() != value.KindMap {
		return &Node{Kind: NodeInvalid}
	}

	clauses := make([]*Node, 0, q.AsMap().Len())
	q.AsMap().Range(func(key string, val value.Value) bool {
		clauses = append(clauses, compileKey(key, val))
		return true
	})
	if len(clauses) == 0 {
		return &Node{Kind: NodeAnd} // empty query: matches every document
	}
	if len(clauses) == 1 {
		return clauses[0]
	}
	return &Node{Kind: NodeAnd, Children: clauses}
}

func compileKey(key string, val value.Value) *Node {
	switch key {
	case "$and":
		return compileCombinator(NodeAnd, val)
	case "$or":
		return compileCombinator(NodeOr, val)
	case "$nor":
		return compileCombinator(NodeNor, val)
	case "$where":
		if val.Kind() == value.KindFunction {
			return &Node{Kind: NodeWhere, Where: val.AsFunction()}
		}
		return &Node{Kind: NodeInvalid}
	default:
		return compileCondition(key, val)
	}
}

func compileCombinator(kind NodeKind, val value.Value) *Node {
	if val.Kind() != value.KindArray {
		return &Node{Kind: NodeInvalid}
	}
	children := make([]*Node, 0, len(val.AsArray()))
	for _, sub := range val.AsArray() {
		children = append(children, compileQuery(sub))
	}
	return &Node{Kind: kind, Children: children}
}

func compileCondition(path string, val value.Value) *Node {
	node := &Node{Kind: NodeCondition, Path: path, Segments: splitPath(path)}
	if isExpression(val) {
		node.Operators = compileExpression(path, val)
	} else {
		node.Operators = []Operator{{Kind: OpEq, Operand: val}}
	}
	return node
}

// compileExpression compiles every operator key in an expression map
// into an Operator, folding a sibling $options into $regex.
func compileExpression(path string, expr value.Value) []Operator {
	var options string
	if v, ok := expr.AsMap().Get("$options"); ok && v.Kind() == value.KindString {
		options = v.AsString()
	}

	ops := make([]Operator, 0, expr.AsMap().Len())
	expr.AsMap().Range(func(op string, arg value.Value) bool {
		switch op {
		case "$options":
			return true // consumed above; never evaluated standalone
		case "$eq":
			ops = append(ops, Operator{Kind: OpEq, Operand: arg})
		case "$ne":
			ops = append(ops, Operator{Kind: OpNe, Operand: arg})
		case "$gt":
			ops = append(ops, Operator{Kind: OpGt, Operand: arg})
		case "$gte":
			ops = append(ops, Operator{Kind: OpGte, Operand: arg})
		case "$lt":
			ops = append(ops, Operator{Kind: OpLt, Operand: arg})
		case "$lte":
			ops = append(ops, Operator{Kind: OpLte, Operand: arg})
		case "$in":
			ops = append(ops, compileIn(OpIn, arg))
		case "$nin":
			ops = append(ops, compileIn(OpNin, arg))
		case "$not":
			ops = append(ops, compileNot(path, arg))
		case "$regex":
			ops = append(ops, compileRegex(arg, options))
		case "$mod":
			ops = append(ops, compileMod(arg))
		case "$size":
			ops = append(ops, compileSize(arg))
		case "$all":
			ops = append(ops, compileAll(path, arg))
		case "$elemMatch":
			ops = append(ops, Operator{Kind: OpElemMatch, SubQuery: compileElemMatchSub(arg)})
		}
		return true
	})
	return ops
}

// compileElemMatchSub compiles $elemMatch's argument per §4.4: when the
// argument is itself an operator expression, it applies directly to the
// array element with no field path, rather than being mis-read as a
// sub-document query naming a field literally called e.g. "$gt".
func compileElemMatchSub(arg value.Value) *Node {
	if isExpression(arg) {
		return &Node{Kind: NodeCondition, Operators: compileExpression("", arg)}
	}
	return compileQuery(arg)
}

func compileIn(kind OperatorKind, arg value.Value) Operator {
	op := Operator{Kind: kind}
	if arg.Kind() != value.KindArray {
		return op
	}
	op.InList = arg.AsArray()
	for _, item := range op.InList {
		if item.Kind() == value.KindNull {
			op.InHasNullOrMissing = true
			break
		}
	}
	return op
}

func compileNot(path string, arg value.Value) Operator {
	sub := &Node{Kind: NodeCondition, Path: path, Segments: splitPath(path)}
	if isExpression(arg) {
		sub.Operators = compileExpression(path, arg)
	} else {
		sub.Operators = []Operator{{Kind: OpEq, Operand: arg}}
	}
	return Operator{Kind: OpNot, SubExpr: sub}
}

func compileRegex(arg value.Value, options string) Operator {
	switch arg.Kind() {
	case value.KindRegex:
		r := arg.AsRegex()
		flags := mergeFlags(r.Flags, options)
		re := value.NewRegex(r.Pattern, flags)
		return Operator{Kind: OpRegex, Regex: &re}
	case value.KindString:
		re := value.NewRegex(arg.AsString(), options)
		return Operator{Kind: OpRegex, Regex: &re}
	default:
		return Operator{Kind: OpRegex, Regex: nil}
	}
}

func mergeFlags(a, b string) string {
	seen := map[rune]bool{}
	out := make([]rune, 0, len(a)+len(b))
	for _, f := range a + b {
		if !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	return string(out)
}

func compileMod(arg value.Value) Operator {
	op := Operator{Kind: OpMod}
	if arg.Kind() != value.KindArray || len(arg.AsArray()) != 2 {
		return op
	}
	items := arg.AsArray()
	if items[0].Kind() != value.KindNumber || items[1].Kind() != value.KindNumber {
		return op
	}
	op.ModDivisor = math.Trunc(items[0].AsNumber())
	op.ModRemainder = math.Trunc(items[1].AsNumber())
	op.ModValid = true
	return op
}

func compileSize(arg value.Value) Operator {
	op := Operator{Kind: OpSize}
	if arg.Kind() != value.KindNumber {
		return op
	}
	op.Operand = value.Number(math.Trunc(arg.AsNumber()))
	return op
}

// compileAll distinguishes the elemMatch-form from the scalar-form per
// §4.4: every element must be a {$elemMatch: ...} wrapper for the
// rewrite to apply, otherwise it falls back to scalar containment.
func compileAll(path string, arg value.Value) Operator {
	op := Operator{Kind: OpAll}
	if arg.Kind() != value.KindArray {
		return op
	}
	items := arg.AsArray()
	if len(items) == 0 {
		return op
	}
	if allElemMatchForm(items) {
		op.AllForm = AllElemMatch
		op.AllElemMatches = make([]*Node, 0, len(items))
		for _, item := range items {
			inner, _ := item.AsMap().Get("$elemMatch")
			op.AllElemMatches = append(op.AllElemMatches, &Node{
				Kind:      NodeCondition,
				Path:      path,
				Segments:  splitPath(path),
				Operators: []Operator{{Kind: OpElemMatch, SubQuery: compileElemMatchSub(inner)}},
			})
		}
		return op
	}
	op.AllForm = AllScalar
	op.AllScalarItems = items
	return op
}

func allElemMatchForm(items []value.Value) bool {
	for _, item := range items {
		if item.Kind() != value.KindMap || !item.AsMap().Has("$elemMatch") {
			return false
		}
	}
	return true
}
