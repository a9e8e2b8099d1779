// Package valuepb bridges the document value model to
// google.golang.org/protobuf's structpb types, so a compiled
// predicate's source query (or a document tested against it) can
// cross a process boundary without a bespoke wire schema.
package valuepb

import (
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/omniql-engine/matchql/internal/value"
)

// regexPatternKey and regexFlagsKey are the struct fields used to
// round-trip a Regex through structpb, which has no native regex
// kind.
const (
	regexPatternKey = "$regex"
	regexFlagsKey   = "$options"
)

// ToStruct converts v into a structpb.Value. It never fails: a
// Function-kind Value (the $where host callable) has no wire
// representation and converts to structpb.NewNullValue().
func ToStruct(v value.Value) *structpb.Value {
	switch v.Kind() {
	case value.KindNull, value.KindFunction:
		return structpb.NewNullValue()
	case value.KindBool:
		return structpb.NewBoolValue(v.AsBool())
	case value.KindNumber:
		return structpb.NewNumberValue(v.AsNumber())
	case value.KindString:
		return structpb.NewStringValue(v.AsString())
	case value.KindRegex:
		re := v.AsRegex()
		return structpb.NewStructValue(&structpb.Struct{Fields: map[string]*structpb.Value{
			regexPatternKey: structpb.NewStringValue(re.Pattern),
			regexFlagsKey:   structpb.NewStringValue(re.Flags),
		}})
	case value.KindArray:
		items := v.AsArray()
		values := make([]*structpb.Value, len(items))
		for i, el := range items {
			values[i] = ToStruct(el)
		}
		return structpb.NewListValue(&structpb.ListValue{Values: values})
	case value.KindMap:
		fields := make(map[string]*structpb.Value, v.AsMap().Len())
		v.AsMap().Range(func(key string, mv value.Value) bool {
			fields[key] = ToStruct(mv)
			return true
		})
		return structpb.NewStructValue(&structpb.Struct{Fields: fields})
	default:
		return structpb.NewNullValue()
	}
}

// FromStruct converts a structpb.Value back into a Value. A struct
// carrying exactly the two regex round-trip keys, with a non-empty
// string pattern, is restored as a Regex rather than a Map.
func FromStruct(sv *structpb.Value) value.Value {
	if sv == nil {
		return value.Null()
	}
	switch k := sv.GetKind().(type) {
	case *structpb.Value_NullValue:
		return value.Null()
	case *structpb.Value_BoolValue:
		return value.Bool(k.BoolValue)
	case *structpb.Value_NumberValue:
		return value.Number(k.NumberValue)
	case *structpb.Value_StringValue:
		return value.String(k.StringValue)
	case *structpb.Value_ListValue:
		items := k.ListValue.GetValues()
		vals := make([]value.Value, len(items))
		for i, el := range items {
			vals[i] = FromStruct(el)
		}
		return value.Array(vals)
	case *structpb.Value_StructValue:
		fields := k.StructValue.GetFields()
		if re, ok := asRegexFields(fields); ok {
			return value.FromRegex(re)
		}
		m := value.NewOrderedMap()
		for key, fv := range fields {
			m.Set(key, FromStruct(fv))
		}
		return value.Map(m)
	default:
		return value.Null()
	}
}

func asRegexFields(fields map[string]*structpb.Value) (value.Regex, bool) {
	if len(fields) != 2 {
		return value.Regex{}, false
	}
	pattern, hasPattern := fields[regexPatternKey]
	flags, hasFlags := fields[regexFlagsKey]
	if !hasPattern || !hasFlags || pattern.GetStringValue() == "" {
		return value.Regex{}, false
	}
	return value.NewRegex(pattern.GetStringValue(), flags.GetStringValue()), true
}
