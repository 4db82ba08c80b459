package activation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeNames(t *testing.T) {
	for _, typ := range Types() {
		got, err := FromName(typ.String())
		require.NoError(t, err)
		assert.Equal(t, typ, got)
	}

	got, err := FromName("  PReLU ")
	require.NoError(t, err)
	assert.Equal(t, TypePReLU, got)

	_, err = FromName("gelu")
	require.ErrorIs(t, err, ErrInvalidInput)

	assert.Equal(t, "Type(9)", Type(9).String())
}
