package blobs

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeCID_Deterministic(t *testing.T) {
	a, err := ComputeCID([]byte("hello"))
	require.NoError(t, err)
	b, err := ComputeCID([]byte("hello"))
	require.NoError(t, err)
	c, err := ComputeCID([]byte("hello!"))
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	// CIDv1 base32 strings start with "b"; raw codec + sha2-256 gives "bafkrei"
	assert.True(t, strings.HasPrefix(a, "bafkrei"), a)
}

func TestObjectKey(t *testing.T) {
	assert.Equal(t, "photos/7/bafkreiabc.jpg", ObjectKey(7, "bafkreiabc"))
}
