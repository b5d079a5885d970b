package stations

import (
	"testing"

	"github.com/passbi/fuelroute/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryIndex_QueryBBox(t *testing.T) {
	idx := &MemoryIndex{stations: []models.Station{
		{ID: 1, Name: "Inside", Latitude: 40.0, Longitude: -90.0},
		{ID: 2, Name: "Outside", Latitude: 50.0, Longitude: -90.0},
		{ID: 3, Name: "EdgeInclusive", Latitude: 41.0, Longitude: -91.0},
	}}

	result, err := idx.QueryBBox(39.0, 41.0, -91.0, -89.0)
	require.NoError(t, err)
	require.Len(t, result, 2)

	names := map[string]bool{}
	for _, s := range result {
		names[s.Name] = true
	}
	assert.True(t, names["Inside"])
	assert.True(t, names["EdgeInclusive"])
	assert.False(t, names["Outside"])
}

func TestMemoryIndex_QueryBBox_EmptyIndex(t *testing.T) {
	idx := &MemoryIndex{}
	result, err := idx.QueryBBox(-90, 90, -180, 180)
	require.NoError(t, err)
	assert.Empty(t, result)
}

func TestMemoryIndex_IsLoaded(t *testing.T) {
	idx := &MemoryIndex{}
	assert.False(t, idx.IsLoaded())
	idx.loaded = true
	assert.True(t, idx.IsLoaded())
}

func TestGetMemoryIndex_Singleton(t *testing.T) {
	a := GetMemoryIndex()
	b := GetMemoryIndex()
	assert.Same(t, a, b)
}
