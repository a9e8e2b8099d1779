package query

import (
	"github.com/omniql-engine/matchql/internal/value"
)

var combinators = map[string]bool{"$and": true, "$or": true, "$nor": true}

var knownOperators = map[string]bool{
	"$eq": true, "$ne": true, "$gt": true, "$gte": true, "$lt": true, "$lte": true,
	"$in": true, "$nin": true, "$not": true, "$regex": true, "$options": true,
	"$mod": true, "$all": true, "$elemMatch": true, "$size": true,
}

// Validate performs the one-pass structural check described by this
// engine's query contract: it never returns a bare false, only nil or
// a *StructuralError (satisfying the "validation totality" property).
func Validate(raw any) error {
	return validateQuery(value.From(raw), "")
}

func validateQuery(q value.Value, path string) error {
	if q.Kind() != value.KindMap {
		return structuralErrorf("query", path, "query must be an object, got %s", q.Kind())
	}

	var err error
	q.AsMap().Range(func(key string, val value.Value) bool {
		if combinators[key] {
			if val.Kind() != value.KindArray {
				err = structuralErrorf(key, path, "%s requires a list argument", key)
				return false
			}
			for _, sub := range val.AsArray() {
				if verr := validateQuery(sub, path); verr != nil {
					err = verr
					return false
				}
			}
			return true
		}

		if isExpression(val) {
			if verr := validateExpression(key, val, path); verr != nil {
				err = verr
				return false
			}
			return true
		}

		// Anything else is an operand: implicit $eq, no structural check.
		return true
	})
	return err
}

// isExpression implements §4.1's classification: a plain non-empty map
// whose every key is a known condition operator.
func isExpression(v value.Value) bool {
	if v.Kind() != value.KindMap || v.AsMap().Len() == 0 {
		return false
	}
	allKnown := true
	v.AsMap().Range(func(key string, _ value.Value) bool {
		if !knownOperators[key] {
			allKnown = false
			return false
		}
		return true
	})
	return allKnown
}

func validateExpression(fieldPath string, expr value.Value, path string) error {
	var err error
	expr.AsMap().Range(func(op string, arg value.Value) bool {
		switch op {
		case "$in", "$nin":
			if arg.Kind() != value.KindArray {
				err = structuralErrorf(op, fieldPath, "requires a list argument")
				return false
			}
		case "$all":
			if arg.Kind() != value.KindArray {
				err = structuralErrorf(op, fieldPath, "requires a list argument")
				return false
			}
			if verr := validateAllArgument(fieldPath, arg.AsArray()); verr != nil {
				err = verr
				return false
			}
		case "$mod":
			if arg.Kind() != value.KindArray || len(arg.AsArray()) != 2 {
				err = structuralErrorf(op, fieldPath, "requires a 2-element list of numbers")
				return false
			}
			for _, el := range arg.AsArray() {
				if el.Kind() != value.KindNumber {
					err = structuralErrorf(op, fieldPath, "requires a 2-element list of numbers")
					return false
				}
			}
		case "$size":
			if arg.Kind() != value.KindNumber {
				err = structuralErrorf(op, fieldPath, "requires a numeric argument")
				return false
			}
		case "$not":
			// $not's argument is itself an expression map; validated
			// structurally the same way any expression is.
			if arg.Kind() != value.KindMap || arg.AsMap().Len() == 0 {
				err = structuralErrorf(op, fieldPath, "requires a non-empty object argument")
				return false
			}
			if verr := validateExpression(fieldPath, arg, path); verr != nil {
				err = verr
				return false
			}
		case "$elemMatch":
			if verr := validateQuery(arg, fieldPath); verr != nil {
				err = verr
				return false
			}
		}
		return true
	})
	return err
}

// validateAllArgument implements the elemMatch-form detection rule: if
// any element looks like a $-operator map, every element must be a
// map carrying an $elemMatch key, whose argument is validated as a
// query. Other keys beside $elemMatch are not checked.
func validateAllArgument(fieldPath string, items []value.Value) error {
	if len(items) == 0 {
		return nil
	}
	anyDollarMap := false
	for _, item := range items {
		if item.Kind() == value.KindMap {
			item.AsMap().Range(func(key string, _ value.Value) bool {
				if len(key) > 0 && key[0] == '$' {
					anyDollarMap = true
					return false
				}
				return true
			})
		}
	}
	if !anyDollarMap {
		return nil
	}
	for _, item := range items {
		if item.Kind() != value.KindMap || !item.AsMap().Has("$elemMatch") {
			return structuralErrorf("$all", fieldPath, "elemMatch-form requires every element to be {$elemMatch: ...}")
		}
		if verr := validateQuery(mustGet(item, "$elemMatch"), fieldPath); verr != nil {
			return verr
		}
	}
	return nil
}

func mustGet(m value.Value, key string) value.Value {
	v, _ := m.AsMap().Get(key)
	return v
}
