package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseColType(t *testing.T) {
	for _, valid := range []string{"Symbol", "Timestamp", "Long", "Double"} {
		parsed, err := ParseColType(valid)
		require.NoError(t, err)
		assert.Equal(t, ColType(valid), parsed)
	}

	for _, invalid := range []string{"", "symbol", "LONG", "String", "Int"} {
		_, err := ParseColType(invalid)
		require.Error(t, err, "expected %q to be rejected", invalid)
		assert.Contains(t, err.Error(), "unknown column type")
	}
}

func TestSchema_Column(t *testing.T) {
	s := Schema{
		{Name: "ts", Type: Timestamp},
		{Name: "host", Type: Symbol},
	}

	col, ok := s.Column("host")
	require.True(t, ok)
	assert.Equal(t, Symbol, col.Type)

	_, ok = s.Column("missing")
	assert.False(t, ok)
}

func TestClassify(t *testing.T) {
	s := Schema{
		{Name: "ts", Type: Timestamp},
		{Name: "host", Type: Symbol},
		{Name: "usage", Type: Double},
		{Name: "region", Type: Symbol},
		{Name: "load", Type: Long},
		{Name: "sampled_at", Type: Timestamp},
	}

	symbols, fields := Classify(s, "ts")

	assert.Equal(t, []string{"host", "region"}, symbols)
	assert.Equal(t, []Field{
		{Name: "usage", Type: Double},
		{Name: "load", Type: Long},
		{Name: "sampled_at", Type: Timestamp},
	}, fields)
}

func TestClassify_ExcludesDesignatedSymbol(t *testing.T) {
	// The designated column is excluded whatever its declared type.
	s := Schema{
		{Name: "host", Type: Symbol},
		{Name: "usage", Type: Double},
	}

	symbols, fields := Classify(s, "host")
	assert.Empty(t, symbols)
	assert.Equal(t, []Field{{Name: "usage", Type: Double}}, fields)
}

func TestClassify_Deterministic(t *testing.T) {
	s := Schema{
		{Name: "ts", Type: Timestamp},
		{Name: "b", Type: Symbol},
		{Name: "a", Type: Symbol},
		{Name: "z", Type: Long},
		{Name: "y", Type: Double},
	}

	firstSymbols, firstFields := Classify(s, "ts")
	for i := 0; i < 10; i++ {
		symbols, fields := Classify(s, "ts")
		assert.Equal(t, firstSymbols, symbols)
		assert.Equal(t, firstFields, fields)
	}

	// Declaration order is preserved, not sorted.
	assert.Equal(t, []string{"b", "a"}, firstSymbols)
}
