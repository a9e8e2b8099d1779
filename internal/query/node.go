package query

import (
	"regexp"
	"strings"

	"github.com/omniql-engine/matchql/internal/value"
)

// NodeKind distinguishes a logical combinator from a single
// path/operator condition in the compiled query tree.
type NodeKind int

const (
	NodeAnd NodeKind = iota
	NodeOr
	NodeNor
	NodeCondition
	NodeWhere
	NodeInvalid // a non-object query, a non-list combinator argument or a non-callable $where; always evaluates false
)

// Node is one level of the compiled query tree produced by Compile.
// Only the fields relevant to Kind are populated; this mirrors the
// teacher's own FieldExpression shape (engine/models.FieldExpression),
// a single struct carrying optional per-variant fields rather than an
// interface hierarchy.
type Node struct {
	Kind NodeKind

	Children []*Node // NodeAnd / NodeOr / NodeNor

	Path      string   // NodeCondition
	Segments  []string // NodeCondition, precomputed from Path
	Operators []Operator

	Where value.Function // NodeWhere
}

// OperatorKind enumerates the condition operators this engine
// evaluates. $options is not its own kind — it is folded into the
// $regex operator at compile time.
type OperatorKind int

const (
	OpEq OperatorKind = iota
	OpNe
	OpGt
	OpGte
	OpLt
	OpLte
	OpIn
	OpNin
	OpNot
	OpRegex
	OpMod
	OpAll
	OpElemMatch
	OpSize
)

func (k OperatorKind) String() string {
	switch k {
	case OpEq:
		return "$eq"
	case OpNe:
		return "$ne"
	case OpGt:
		return "$gt"
	case OpGte:
		return "$gte"
	case OpLt:
		return "$lt"
	case OpLte:
		return "$lte"
	case OpIn:
		return "$in"
	case OpNin:
		return "$nin"
	case OpNot:
		return "$not"
	case OpRegex:
		return "$regex"
	case OpMod:
		return "$mod"
	case OpAll:
		return "$all"
	case OpElemMatch:
		return "$elemMatch"
	case OpSize:
		return "$size"
	default:
		return "$?"
	}
}

// AllForm distinguishes the two shapes $all's argument can take.
type AllForm int

const (
	AllScalar AllForm = iota
	AllElemMatch
)

// Operator is one condition applied at a Node's path. Fields beyond
// Kind and Operand are only meaningful for the operator that needs
// them.
type Operator struct {
	Kind    OperatorKind
	Operand value.Value // $eq/$ne/$gt/$gte/$lt/$lte operand, $size count

	SubExpr *Node // $not: the negated expression, reusing NodeCondition at the same path

	SubQuery *Node // $elemMatch: the per-element query, evaluated with an empty path context

	InList []value.Value // $in/$nin
	InHasNullOrMissing bool

	ModDivisor, ModRemainder float64
	ModValid                 bool

	Regex *value.Regex // $regex (+ $options folded in), compiled once here

	AllForm        AllForm
	AllScalarItems []value.Value
	AllElemMatches []*Node // each is a NodeCondition{Path: same path, Operators: [$elemMatch]}
}

// indexCandidate matches a path segment that could address an array
// position as well as a map key of that literal textual form.
var indexCandidate = regexp.MustCompile(`^[0-9]+$`)

// IsIndexCandidate reports whether segment looks like an array index
// (all digits). The matcher prefers the map-key interpretation first
// whenever the current node actually is a map; this only governs the
// array-addressing side of that precedence.
func IsIndexCandidate(segment string) bool {
	return indexCandidate.MatchString(segment)
}

func splitPath(path string) []string {
	if path == "" {
		return nil
	}
	return strings.Split(path, ".")
}
