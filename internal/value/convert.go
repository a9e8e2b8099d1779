package value

import (
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// From normalizes an arbitrary Go value — JSON-decoded data,
// driver-level BSON types, or plain Go literals built by hand — into
// the Value model. It never errors: anything it does not recognize
// becomes Null, keeping Validate/Test total over whatever a host
// happens to pass in.
func From(in any) Value {
	switch v := in.(type) {
	case nil:
		return Null()
	case primitive.Null:
		return Null()
	case Value:
		return v
	case bool:
		return Bool(v)
	case string:
		return String(v)
	case int:
		return Number(float64(v))
	case int8:
		return Number(float64(v))
	case int16:
		return Number(float64(v))
	case int32:
		return Number(float64(v))
	case int64:
		return Number(float64(v))
	case uint:
		return Number(float64(v))
	case uint8:
		return Number(float64(v))
	case uint16:
		return Number(float64(v))
	case uint32:
		return Number(float64(v))
	case uint64:
		return Number(float64(v))
	case float32:
		return Number(float64(v))
	case float64:
		return Number(v)
	case *regexp.Regexp:
		if v == nil {
			return Null()
		}
		return FromRegex(NewRegex(v.String(), ""))
	case Regex:
		return FromRegex(v)
	case primitive.Regex:
		return FromRegex(NewRegex(v.Pattern, v.Options))
	case Function:
		return FromFunction(v)
	case func(doc Value) bool:
		return FromFunction(Function(v))
	case func(doc map[string]any) bool:
		return FromFunction(func(d Value) bool {
			m, ok := ToAny(d).(map[string]any)
			if !ok {
				return false
			}
			return v(m)
		})
	case []Value:
		return Array(v)
	case []any:
		return Array(fromSlice(v))
	case primitive.A:
		return Array(fromSlice(v))
	case bson.D:
		m := NewOrderedMap()
		for _, e := range v {
			m.Set(e.Key, From(e.Value))
		}
		return Map(m)
	case map[string]any:
		return Map(fromMap(v))
	case bson.M:
		return Map(fromMap(map[string]any(v)))
	case *OrderedMap:
		return Map(v)
	default:
		return Null()
	}
}

func fromSlice(in []any) []Value {
	out := make([]Value, len(in))
	for i, e := range in {
		out[i] = From(e)
	}
	return out
}

// fromMap converts a native Go map into an OrderedMap. Go maps carry
// no intrinsic order, so keys are visited in Go's randomized range
// order and recorded in whatever order that iteration yields — callers
// that need a stable order for $gt/$gte/$lt/$lte comparisons should
// build documents from bson.D instead, exactly as the teacher's own
// BSON builders prefer bson.D over bson.M wherever order matters.
func fromMap(in map[string]any) *OrderedMap {
	m := NewOrderedMap()
	for k, v := range in {
		m.Set(k, From(v))
	}
	return m
}

// ToAny converts a Value back into the plain map[string]any / []any /
// scalar shape a host's own code (or the $where callable) expects.
func ToAny(v Value) any {
	switch v.Kind() {
	case KindNull:
		return nil
	case KindBool:
		return v.AsBool()
	case KindNumber:
		return v.AsNumber()
	case KindString:
		return v.AsString()
	case KindRegex:
		r := v.AsRegex()
		return primitive.Regex{Pattern: r.Pattern, Options: r.Flags}
	case KindArray:
		arr := v.AsArray()
		out := make([]any, len(arr))
		for i, e := range arr {
			out[i] = ToAny(e)
		}
		return out
	case KindMap:
		out := make(map[string]any, v.AsMap().Len())
		v.AsMap().Range(func(key string, el Value) bool {
			out[key] = ToAny(el)
			return true
		})
		return out
	default:
		return nil
	}
}

// ToBSON converts a Value into bson.D/bson.A/scalar form suitable for
// handing to the mongo-driver directly (e.g. replaying a normalized
// query against a live collection for parity testing).
func ToBSON(v Value) any {
	switch v.Kind() {
	case KindNull:
		return primitive.Null{}
	case KindBool:
		return v.AsBool()
	case KindNumber:
		return v.AsNumber()
	case KindString:
		return v.AsString()
	case KindRegex:
		r := v.AsRegex()
		return primitive.Regex{Pattern: r.Pattern, Options: r.Flags}
	case KindArray:
		arr := v.AsArray()
		out := make(bson.A, len(arr))
		for i, e := range arr {
			out[i] = ToBSON(e)
		}
		return out
	case KindMap:
		out := make(bson.D, 0, v.AsMap().Len())
		v.AsMap().Range(func(key string, el Value) bool {
			out = append(out, bson.E{Key: key, Value: ToBSON(el)})
			return true
		})
		return out
	default:
		return nil
	}
}
