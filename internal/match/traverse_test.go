package match

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/omniql-engine/matchql/internal/value"
)

func isFive(v value.Value) bool {
	return v.Kind() == value.KindNumber && v.AsNumber() == 5
}

func TestTraverseAbsentPathUsesPolicy(t *testing.T) {
	doc := value.From(map[string]any{"a": 1})
	assert.True(t, traverse(doc, []string{"missing"}, isFive, leafFanOut, true))
	assert.False(t, traverse(doc, []string{"missing"}, isFive, leafFanOut, false))
}

func TestTraverseLeafDirectDoesNotFanOut(t *testing.T) {
	doc := value.From(map[string]any{"a": []any{5}})
	assert.False(t, traverse(doc, []string{"a"}, isFive, leafDirect, false))
	assert.True(t, traverse(doc, []string{"a"}, isFive, leafFanOut, false))
}

func TestTraverseDepthGuardNeverPanics(t *testing.T) {
	depth := MaxDepth + 50
	segments := make([]string, depth)
	for i := range segments {
		segments[i] = "x"
	}

	var nested any = 5
	for i := 0; i < depth; i++ {
		nested = map[string]any{"x": nested}
	}
	doc := value.From(nested)

	assert.NotPanics(t, func() {
		traverse(doc, segments, isFive, leafFanOut, false)
	})
}

func BenchmarkTraverseFanOut(b *testing.B) {
	items := make([]any, 100)
	for i := range items {
		items[i] = map[string]any{"qty": i}
	}
	doc := value.From(map[string]any{"items": items})
	segments := []string{"items", "qty"}
	terminal := func(v value.Value) bool {
		return v.Kind() == value.KindNumber && v.AsNumber() == 99
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		traverse(doc, segments, terminal, leafFanOut, false)
	}
}
