package match

import (
	"github.com/omniql-engine/matchql/internal/query"
	"github.com/omniql-engine/matchql/internal/value"
)

// Eval walks a compiled query.Node against doc and reports whether it
// matches. It never panics and never errors: a node that compiled as
// NodeInvalid, or an operator whose argument made no sense, evaluates
// to false, matching this engine's total-matching contract. The
// negating forms ($ne, $nin, $not, $nor) negate that false like any
// other result, so $nin with a non-list argument matches.
func Eval(node *query.Node, doc value.Value) bool {
	if node == nil {
		return false
	}
	switch node.Kind {
	case query.NodeAnd:
		for _, child := range node.Children {
			if !Eval(child, doc) {
				return false
			}
		}
		return true
	case query.NodeOr:
		for _, child := range node.Children {
			if Eval(child, doc) {
				return true
			}
		}
		return false
	case query.NodeNor:
		for _, child := range node.Children {
			if Eval(child, doc) {
				return false
			}
		}
		return true
	case query.NodeCondition:
		return evalCondition(node, doc)
	case query.NodeWhere:
		if node.Where == nil {
			return false
		}
		return node.Where(doc)
	case query.NodeInvalid:
		return false
	default:
		return false
	}
}

func evalCondition(node *query.Node, doc value.Value) bool {
	for _, op := range node.Operators {
		if !evalOperator(op, doc, node.Segments) {
			return false
		}
	}
	return true
}
