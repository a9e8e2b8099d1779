package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/omniql-engine/matchql/internal/value"
)

// Key computes a stable cache key for a raw query. Map keys are
// sorted before hashing so two queries that differ only in a native
// map's randomized iteration order still hash identically.
func Key(raw any) string {
	var b strings.Builder
	writeCanonical(&b, value.From(raw))
	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}

func writeCanonical(b *strings.Builder, v value.Value) {
	switch v.Kind() {
	case value.KindNull:
		b.WriteString("n")
	case value.KindBool:
		fmt.Fprintf(b, "b%t", v.AsBool())
	case value.KindNumber:
		fmt.Fprintf(b, "d%s", strconv.FormatFloat(v.AsNumber(), 'g', -1, 64))
	case value.KindString:
		fmt.Fprintf(b, "s%d:%s", len(v.AsString()), v.AsString())
	case value.KindRegex:
		re := v.AsRegex()
		fmt.Fprintf(b, "r%d:%s/%d:%s", len(re.Pattern), re.Pattern, len(re.Flags), re.Flags)
	case value.KindArray:
		b.WriteString("[")
		for _, el := range v.AsArray() {
			writeCanonical(b, el)
			b.WriteString(",")
		}
		b.WriteString("]")
	case value.KindMap:
		keys := append([]string(nil), v.AsMap().Keys()...)
		sort.Strings(keys)
		b.WriteString("{")
		for _, k := range keys {
			val, _ := v.AsMap().Get(k)
			fmt.Fprintf(b, "%d:%s=", len(k), k)
			writeCanonical(b, val)
			b.WriteString(",")
		}
		b.WriteString("}")
	case value.KindFunction:
		b.WriteString("fn")
	}
}
