package geocode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCoord(t *testing.T) {
	v, err := parseCoord("41.8781")
	require.NoError(t, err)
	assert.InDelta(t, 41.8781, v, 0.0001)
}

func TestParseCoord_Invalid(t *testing.T) {
	_, err := parseCoord("not-a-number")
	assert.Error(t, err)
}

func TestNewClientWithEndpoint(t *testing.T) {
	c := NewClientWithEndpoint("http://localhost:9999")
	assert.Equal(t, "http://localhost:9999", c.endpoint)
}
