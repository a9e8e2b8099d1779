package match

import (
	"math"

	"github.com/omniql-engine/matchql/internal/query"
	"github.com/omniql-engine/matchql/internal/value"
)

// evalOperator applies a single compiled Operator at the condition's
// path against the whole document. Each operator resolves its own
// path independently rather than sharing a single pre-resolved value,
// since absence policy and fan-out mode differ per operator.
func evalOperator(op query.Operator, doc value.Value, segments []string) bool {
	switch op.Kind {
	case query.OpEq:
		return traverse(doc, segments, eqTerminal(op.Operand), leafFanOut, op.Operand.Kind() == value.KindNull)
	case query.OpNe:
		return !evalOperator(query.Operator{Kind: query.OpEq, Operand: op.Operand}, doc, segments)
	case query.OpGt:
		return traverse(doc, segments, gtTerminal(op.Operand), leafFanOut, false)
	case query.OpGte:
		return traverse(doc, segments, gteTerminal(op.Operand), leafFanOut, op.Operand.Kind() == value.KindNull)
	case query.OpLt:
		return traverse(doc, segments, ltTerminal(op.Operand), leafFanOut, false)
	case query.OpLte:
		return traverse(doc, segments, lteTerminal(op.Operand), leafFanOut, op.Operand.Kind() == value.KindNull)
	case query.OpIn:
		return traverse(doc, segments, inTerminal(op.InList), leafFanOut, op.InHasNullOrMissing)
	case query.OpNin:
		return !evalOperator(query.Operator{Kind: query.OpIn, InList: op.InList, InHasNullOrMissing: op.InHasNullOrMissing}, doc, segments)
	case query.OpNot:
		return !Eval(op.SubExpr, doc)
	case query.OpRegex:
		return traverse(doc, segments, regexTerminal(op.Regex), leafFanOut, false)
	case query.OpMod:
		return traverse(doc, segments, modTerminal(op), leafFanOut, false)
	case query.OpSize:
		return traverse(doc, segments, sizeTerminal(op.Operand), leafDirect, false)
	case query.OpElemMatch:
		return traverse(doc, segments, elemMatchTerminal(op.SubQuery), leafDirect, false)
	case query.OpAll:
		return evalAll(op, doc, segments)
	default:
		return false
	}
}

// eqTerminal implements $eq's extra clause: a Regex operand additionally
// matches any String leaf whose pattern it matches, mirroring inTerminal.
func eqTerminal(operand value.Value) func(value.Value) bool {
	return func(v value.Value) bool {
		if value.Equal(v, operand) {
			return true
		}
		if operand.Kind() == value.KindRegex && v.Kind() == value.KindString {
			return operand.AsRegex().MatchString(v.AsString())
		}
		return false
	}
}

func gtTerminal(operand value.Value) func(value.Value) bool {
	return func(v value.Value) bool {
		c, ok := value.Compare(v, operand)
		return ok && c > 0
	}
}

func gteTerminal(operand value.Value) func(value.Value) bool {
	return func(v value.Value) bool {
		if value.Equal(v, operand) {
			return true
		}
		c, ok := value.Compare(v, operand)
		return ok && c >= 0
	}
}

func ltTerminal(operand value.Value) func(value.Value) bool {
	return func(v value.Value) bool {
		c, ok := value.Compare(v, operand)
		return ok && c < 0
	}
}

func lteTerminal(operand value.Value) func(value.Value) bool {
	return func(v value.Value) bool {
		if value.Equal(v, operand) {
			return true
		}
		c, ok := value.Compare(v, operand)
		return ok && c <= 0
	}
}

// inTerminal implements $in/$nin's per-item match: a plain item is
// compared by deep equality, but a regex item additionally matches
// any string document value whose pattern it matches — mirroring
// Mongo's rule that a regex literal inside $in acts as a pattern test,
// not just a literal regex-object comparison.
func inTerminal(items []value.Value) func(value.Value) bool {
	return func(v value.Value) bool {
		for _, item := range items {
			if value.Equal(v, item) {
				return true
			}
			if item.Kind() == value.KindRegex && v.Kind() == value.KindString {
				if item.AsRegex().MatchString(v.AsString()) {
					return true
				}
			}
		}
		return false
	}
}

func regexTerminal(re *value.Regex) func(value.Value) bool {
	return func(v value.Value) bool {
		if re == nil || v.Kind() != value.KindString {
			return false
		}
		return re.MatchString(v.AsString())
	}
}

func modTerminal(op query.Operator) func(value.Value) bool {
	return func(v value.Value) bool {
		if !op.ModValid || op.ModDivisor == 0 || v.Kind() != value.KindNumber {
			return false
		}
		return math.Mod(math.Trunc(v.AsNumber()), op.ModDivisor) == op.ModRemainder
	}
}

func sizeTerminal(operand value.Value) func(value.Value) bool {
	return func(v value.Value) bool {
		if v.Kind() != value.KindArray || operand.Kind() != value.KindNumber {
			return false
		}
		return float64(len(v.AsArray())) == operand.AsNumber()
	}
}

func elemMatchTerminal(sub *query.Node) func(value.Value) bool {
	return func(v value.Value) bool {
		if v.Kind() != value.KindArray || sub == nil {
			return false
		}
		for _, el := range v.AsArray() {
			if Eval(sub, el) {
				return true
			}
		}
		return false
	}
}

// evalAll implements both $all forms. The scalar form requires the
// resolved value to be an array containing every listed item; the
// elemMatch form ANDs one $elemMatch sub-match per listed clause,
// each independently fanning out over the array at the same path.
func evalAll(op query.Operator, doc value.Value, segments []string) bool {
	if op.AllForm == query.AllElemMatch {
		if len(op.AllElemMatches) == 0 {
			return false
		}
		for _, node := range op.AllElemMatches {
			if !Eval(node, doc) {
				return false
			}
		}
		return true
	}

	if len(op.AllScalarItems) == 0 {
		return false
	}
	return traverse(doc, segments, allScalarTerminal(op.AllScalarItems), leafDirect, false)
}

// allScalarTerminal requires every item to either match an element of
// the leaf array or deep-equal the leaf array as a whole, the $all
// analogue of $eq's nested-array allowance.
func allScalarTerminal(items []value.Value) func(value.Value) bool {
	return func(v value.Value) bool {
		if v.Kind() != value.KindArray {
			return false
		}
		arr := v.AsArray()
		for _, item := range items {
			if value.Equal(v, item) {
				continue
			}
			found := false
			for _, el := range arr {
				if value.Equal(el, item) {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		}
		return true
	}
}
