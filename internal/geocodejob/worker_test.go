package geocodejob

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupByCity_GroupsAndPreservesOrder(t *testing.T) {
	stations := []station{
		{id: 1, city: "Chicago", state: "IL"},
		{id: 2, city: "Denver", state: "CO"},
		{id: 3, city: "Chicago", state: "IL"},
	}

	byCity, order := groupByCity(stations)

	require.Equal(t, []string{"Chicago, IL", "Denver, CO"}, order)
	require.Len(t, byCity["Chicago, IL"], 2)
	require.Len(t, byCity["Denver, CO"], 1)
	assert.Equal(t, int64(1), byCity["Chicago, IL"][0].id)
	assert.Equal(t, int64(3), byCity["Chicago, IL"][1].id)
}

func TestGroupByCity_Empty(t *testing.T) {
	byCity, order := groupByCity(nil)
	assert.Empty(t, byCity)
	assert.Empty(t, order)
}
