package catalog

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDUnmarshalAcceptsNumbersAndStrings(t *testing.T) {
	var got struct {
		A ID `json:"a"`
		B ID `json:"b"`
		C ID `json:"c"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a":1,"b":" UHJvZHVjdDox ","c":null}`), &got))

	assert.Equal(t, ID("1"), got.A)
	assert.Equal(t, ID("UHJvZHVjdDox"), got.B)
	assert.Equal(t, ID(""), got.C)
}

func TestIDUnmarshalRejectsObjects(t *testing.T) {
	var id ID
	assert.Error(t, json.Unmarshal([]byte(`{"x":1}`), &id))
}

func TestNewTablesKeepsFirstDuplicate(t *testing.T) {
	tables := NewTables([]Item{
		{ID: "1", Name: "Burger"},
		{ID: "1", Name: "Impostor"},
		{ID: "", Name: "Blank"},
	}, nil)

	it, ok := tables.Item("1")
	require.True(t, ok)
	assert.Equal(t, "Burger", it.Name)
	assert.Equal(t, 1, tables.Len())
}

func TestFallbackCatalog(t *testing.T) {
	fb := Fallback()

	burger, ok := fb.Item("1")
	require.True(t, ok)
	assert.Equal(t, int64(499), burger.PriceMinor)
	assert.Equal(t, "USD", burger.Currency)

	fries, ok := fb.Item("2")
	require.True(t, ok)
	assert.Equal(t, int64(149), fries.PriceMinor)

	assert.Equal(t, 12, fb.Len())
	assert.Len(t, fb.Restaurants(), 3)

	_, ok = fb.Item("999")
	assert.False(t, ok)
}

func TestNilTablesAreEmpty(t *testing.T) {
	var tables *Tables
	_, ok := tables.Item("1")
	assert.False(t, ok)
	assert.Nil(t, tables.Items())
	assert.Zero(t, tables.Len())
}
