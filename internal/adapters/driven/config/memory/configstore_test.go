package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore(t *testing.T) {
	seed := map[string]any{"tui.mouse": false}
	store := NewConfigStore(seed)

	seed["tui.mouse"] = true

	val, ok := store.Get("tui.mouse")
	assert.True(t, ok)
	assert.Equal(t, false, val, "seed is copied")
	assert.Equal(t, ":memory:", store.Path())
	assert.NoError(t, store.Load())
}

func TestNewConfigStore_Nil(t *testing.T) {
	store := NewConfigStore(nil)

	_, ok := store.Get("anything")
	assert.False(t, ok)
}

func TestConfigStore_Set(t *testing.T) {
	store := NewConfigStore(nil)

	require.NoError(t, store.Set("render.title", "original"))
	require.NoError(t, store.Set("render.title", "updated"))

	assert.Equal(t, "updated", store.GetString("render.title"))
}

func TestConfigStore_Set_InvalidKey(t *testing.T) {
	store := NewConfigStore(nil)

	for _, key := range []string{"", ".leading", "trailing."} {
		assert.Error(t, store.Set(key, true), key)
	}
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store := NewConfigStore(map[string]any{
		"s":     "text",
		"b":     true,
		"list":  []string{"a", "b"},
		"mixed": []any{"a", 1, "c"},
		"num":   42,
	})

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"string", store.GetString("s"), "text"},
		{"string wrong type", store.GetString("b"), ""},
		{"string missing", store.GetString("nope"), ""},
		{"bool", store.GetBool("b"), true},
		{"bool wrong type", store.GetBool("s"), false},
		{"slice", store.GetStringSlice("list"), []string{"a", "b"}},
		{"slice from toml array", store.GetStringSlice("mixed"), []string{"a", "c"}},
		{"slice wrong type", store.GetStringSlice("num"), []string(nil)},
		{"slice missing", store.GetStringSlice("nope"), []string(nil)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}

func TestConfigStore_GetStringSliceReturnsCopy(t *testing.T) {
	store := NewConfigStore(map[string]any{"list": []string{"a"}})

	got := store.GetStringSlice("list")
	got[0] = "changed"

	assert.Equal(t, []string{"a"}, store.GetStringSlice("list"))
}
