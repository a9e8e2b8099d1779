package match

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/omniql-engine/matchql/internal/query"
	"github.com/omniql-engine/matchql/internal/value"
)

func eval(t *testing.T, q, doc any) bool {
	t.Helper()
	return Eval(query.Compile(q), value.From(doc))
}

func TestImplicitEquality(t *testing.T) {
	assert.True(t, eval(t, map[string]any{"a": 1}, map[string]any{"a": 1}))
	assert.False(t, eval(t, map[string]any{"a": 1}, map[string]any{"a": 2}))
}

func TestImplicitEqualityMatchesArrayElement(t *testing.T) {
	assert.True(t, eval(t, map[string]any{"a": 2}, map[string]any{"a": []any{1, 2, 3}}))
	assert.False(t, eval(t, map[string]any{"a": 9}, map[string]any{"a": []any{1, 2, 3}}))
}

func TestEqualityAgainstWholeArray(t *testing.T) {
	assert.True(t, eval(t, map[string]any{"a": []any{1, 2}}, map[string]any{"a": []any{1, 2}}))
}

func TestEqAgainstRegexOperand(t *testing.T) {
	q := map[string]any{"name": regexp.MustCompile("^al")}
	assert.True(t, eval(t, q, map[string]any{"name": "alice"}))
	assert.False(t, eval(t, q, map[string]any{"name": "bob"}))
}

func TestNeAgainstRegexOperand(t *testing.T) {
	q := map[string]any{"name": map[string]any{"$ne": regexp.MustCompile("^al")}}
	assert.False(t, eval(t, q, map[string]any{"name": "alice"}))
	assert.True(t, eval(t, q, map[string]any{"name": "bob"}))
}

func TestDottedPathTraversal(t *testing.T) {
	doc := map[string]any{"a": map[string]any{"b": map[string]any{"c": 5}}}
	assert.True(t, eval(t, map[string]any{"a.b.c": 5}, doc))
	assert.False(t, eval(t, map[string]any{"a.b.c": 6}, doc))
}

func TestArrayFanOutOnNestedPath(t *testing.T) {
	doc := map[string]any{"items": []any{
		map[string]any{"qty": 1},
		map[string]any{"qty": 5},
	}}
	assert.True(t, eval(t, map[string]any{"items.qty": 5}, doc))
	assert.False(t, eval(t, map[string]any{"items.qty": 9}, doc))
}

func TestMapKeyWinsOverArrayIndexOnMapNode(t *testing.T) {
	doc := map[string]any{"a": map[string]any{"0": "literal-key"}}
	assert.True(t, eval(t, map[string]any{"a.0": "literal-key"}, doc))
}

func TestArrayIndexAddressing(t *testing.T) {
	doc := map[string]any{"a": []any{"x", "y", "z"}}
	assert.True(t, eval(t, map[string]any{"a.1": "y"}, doc))
}

func TestComparisonOperators(t *testing.T) {
	doc := map[string]any{"age": 30}
	assert.True(t, eval(t, map[string]any{"age": map[string]any{"$gt": 18}}, doc))
	assert.False(t, eval(t, map[string]any{"age": map[string]any{"$gt": 30}}, doc))
	assert.True(t, eval(t, map[string]any{"age": map[string]any{"$gte": 30}}, doc))
	assert.True(t, eval(t, map[string]any{"age": map[string]any{"$lt": 31}}, doc))
	assert.True(t, eval(t, map[string]any{"age": map[string]any{"$lte": 30}}, doc))
}

func TestComparisonAcrossIncompatibleTypesNeverMatches(t *testing.T) {
	doc := map[string]any{"age": "thirty"}
	assert.False(t, eval(t, map[string]any{"age": map[string]any{"$gt": 18}}, doc))
}

func TestNeAbsenceSymmetry(t *testing.T) {
	// $eq:null matches a missing field, so its negation $ne:null does not.
	doc := map[string]any{"other": 1}
	assert.True(t, eval(t, map[string]any{"missing": map[string]any{"$eq": nil}}, doc))
	assert.False(t, eval(t, map[string]any{"missing": map[string]any{"$ne": nil}}, doc))
}

func TestInOperator(t *testing.T) {
	doc := map[string]any{"status": "active"}
	assert.True(t, eval(t, map[string]any{"status": map[string]any{"$in": []any{"active", "pending"}}}, doc))
	assert.False(t, eval(t, map[string]any{"status": map[string]any{"$in": []any{"closed"}}}, doc))
}

func TestInWithRegex(t *testing.T) {
	doc := map[string]any{"name": "alice"}
	assert.True(t, eval(t, map[string]any{"name": map[string]any{"$in": []any{regexp.MustCompile("^al")}}}, doc))
	assert.False(t, eval(t, map[string]any{"name": map[string]any{"$in": []any{"^al"}}}, doc), "a plain string item stays a literal, not a pattern")
}

func TestNinMatchesMissingWhenNoNullInList(t *testing.T) {
	doc := map[string]any{"other": 1}
	assert.True(t, eval(t, map[string]any{"missing": map[string]any{"$nin": []any{1, 2}}}, doc))
}

func TestNotNegatesSubExpression(t *testing.T) {
	doc := map[string]any{"age": 10}
	assert.True(t, eval(t, map[string]any{"age": map[string]any{"$not": map[string]any{"$gt": 18}}}, doc))
	assert.False(t, eval(t, map[string]any{"age": map[string]any{"$not": map[string]any{"$lt": 18}}}, doc))
}

func TestModOperator(t *testing.T) {
	doc := map[string]any{"n": 10}
	assert.True(t, eval(t, map[string]any{"n": map[string]any{"$mod": []any{5, 0}}}, doc))
	assert.False(t, eval(t, map[string]any{"n": map[string]any{"$mod": []any{3, 0}}}, doc))
}

func TestSizeOperator(t *testing.T) {
	doc := map[string]any{"tags": []any{"a", "b", "c"}}
	assert.True(t, eval(t, map[string]any{"tags": map[string]any{"$size": 3}}, doc))
	assert.False(t, eval(t, map[string]any{"tags": map[string]any{"$size": 2}}, doc))
}

func TestSizeDoesNotFanOutIntoElements(t *testing.T) {
	doc := map[string]any{"tags": []any{[]any{1, 2, 3}}}
	assert.False(t, eval(t, map[string]any{"tags": map[string]any{"$size": 3}}, doc))
}

func TestElemMatch(t *testing.T) {
	doc := map[string]any{"scores": []any{1, 5, 11}}
	assert.True(t, eval(t, map[string]any{"scores": map[string]any{"$elemMatch": map[string]any{"$gt": 10}}}, doc))
	assert.False(t, eval(t, map[string]any{"scores": map[string]any{"$elemMatch": map[string]any{"$gt": 100}}}, doc))
}

func TestAllScalarForm(t *testing.T) {
	doc := map[string]any{"tags": []any{"a", "b", "c"}}
	assert.True(t, eval(t, map[string]any{"tags": map[string]any{"$all": []any{"a", "c"}}}, doc))
	assert.False(t, eval(t, map[string]any{"tags": map[string]any{"$all": []any{"a", "z"}}}, doc))
}

func TestAllScalarFormMatchesWholeLeafArray(t *testing.T) {
	doc := map[string]any{"x": []any{"baz"}}
	assert.True(t, eval(t, map[string]any{"x": map[string]any{"$all": []any{[]any{"baz"}}}}, doc))
}

func TestAllElemMatchFormWithBareOperatorExpression(t *testing.T) {
	doc := map[string]any{"scores": []any{1, 5, 11}}
	q := map[string]any{"scores": map[string]any{"$all": []any{
		map[string]any{"$elemMatch": map[string]any{"$gt": 10}},
	}}}
	assert.True(t, eval(t, q, doc))
}

func TestAllElemMatchForm(t *testing.T) {
	doc := map[string]any{"items": []any{
		map[string]any{"k": "a", "v": 1},
		map[string]any{"k": "b", "v": 2},
	}}
	q := map[string]any{"items": map[string]any{"$all": []any{
		map[string]any{"$elemMatch": map[string]any{"k": "a"}},
		map[string]any{"$elemMatch": map[string]any{"k": "b"}},
	}}}
	assert.True(t, eval(t, q, doc))

	qMissing := map[string]any{"items": map[string]any{"$all": []any{
		map[string]any{"$elemMatch": map[string]any{"k": "z"}},
	}}}
	assert.False(t, eval(t, qMissing, doc))
}

func TestEmptyAllIsAlwaysFalse(t *testing.T) {
	doc := map[string]any{"tags": []any{"a"}}
	assert.False(t, eval(t, map[string]any{"tags": map[string]any{"$all": []any{}}}, doc))
}

func TestRegexOperator(t *testing.T) {
	doc := map[string]any{"name": "Alice"}
	assert.True(t, eval(t, map[string]any{"name": map[string]any{"$regex": "^al", "$options": "i"}}, doc))
	assert.False(t, eval(t, map[string]any{"name": map[string]any{"$regex": "^al"}}, doc))
}

func TestAndOrNorCombinators(t *testing.T) {
	doc := map[string]any{"a": 1, "b": 2}

	assert.True(t, eval(t, map[string]any{"$and": []any{
		map[string]any{"a": 1}, map[string]any{"b": 2},
	}}, doc))
	assert.False(t, eval(t, map[string]any{"$and": []any{
		map[string]any{"a": 1}, map[string]any{"b": 9},
	}}, doc))

	assert.True(t, eval(t, map[string]any{"$or": []any{
		map[string]any{"a": 9}, map[string]any{"b": 2},
	}}, doc))
	assert.False(t, eval(t, map[string]any{"$or": []any{
		map[string]any{"a": 9}, map[string]any{"b": 9},
	}}, doc))

	assert.True(t, eval(t, map[string]any{"$nor": []any{
		map[string]any{"a": 9}, map[string]any{"b": 9},
	}}, doc))
	assert.False(t, eval(t, map[string]any{"$nor": []any{
		map[string]any{"a": 1},
	}}, doc))
}

func TestCombinatorIdentities(t *testing.T) {
	doc := map[string]any{"a": 1}
	assert.True(t, eval(t, map[string]any{"$and": []any{}}, doc))
	assert.False(t, eval(t, map[string]any{"$or": []any{}}, doc))
	assert.True(t, eval(t, map[string]any{"$nor": []any{}}, doc))
}

func TestMalformedCombinatorIsFalse(t *testing.T) {
	doc := map[string]any{"a": 1}
	assert.False(t, eval(t, map[string]any{"$and": "not a list"}, doc))
}

func TestWhereEscapeHatch(t *testing.T) {
	doc := map[string]any{"a": 1, "b": 2}
	fn := func(d map[string]any) bool {
		a, _ := d["a"].(float64)
		b, _ := d["b"].(float64)
		return a+b == 3
	}
	assert.True(t, eval(t, map[string]any{"$where": fn}, doc))
}

func TestWhereNonCallableNeverMatches(t *testing.T) {
	doc := map[string]any{"a": 1}
	assert.False(t, eval(t, map[string]any{"$where": "not a function"}, doc))
}

func TestDeepEqualityOfDocuments(t *testing.T) {
	doc := map[string]any{"meta": map[string]any{"x": 1, "y": 2}}
	assert.True(t, eval(t, map[string]any{"meta": map[string]any{"$eq": map[string]any{"y": 2, "x": 1}}}, doc))
}

func TestIdempotence(t *testing.T) {
	q := map[string]any{"a": map[string]any{"$gte": 1}}
	doc := map[string]any{"a": 5}
	node := query.Compile(q)
	docVal := value.From(doc)
	first := Eval(node, docVal)
	second := Eval(node, docVal)
	assert.Equal(t, first, second)
}
