package valuepb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omniql-engine/matchql/internal/value"
)

func TestRoundTripScalarsAndCollections(t *testing.T) {
	orig := value.From(map[string]any{
		"a": 1,
		"b": "hi",
		"c": []any{1, 2, 3},
		"d": nil,
		"e": true,
	})
	got := FromStruct(ToStruct(orig))
	assert.True(t, value.Equal(orig, got))
}

func TestRoundTripRegex(t *testing.T) {
	re := value.FromRegex(value.NewRegex("^a", "i"))
	got := FromStruct(ToStruct(re))
	require.Equal(t, value.KindRegex, got.Kind())
	assert.Equal(t, "^a", got.AsRegex().Pattern)
	assert.Equal(t, "i", got.AsRegex().Flags)
}

func TestFunctionHasNoWireForm(t *testing.T) {
	fn := value.FromFunction(func(value.Value) bool { return true })
	got := FromStruct(ToStruct(fn))
	assert.True(t, got.IsNull())
}
