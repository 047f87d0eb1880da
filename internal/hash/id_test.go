package hash

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestID_Deterministic(t *testing.T) {
	require.Equal(t, ID("Fdri"), ID("Fdri"))
	require.NotEqual(t, ID("Fdri"), ID("Idcode"))
}

func TestID_EmptyName(t *testing.T) {
	// xxhash of the empty string is a fixed, non-zero constant.
	require.Equal(t, uint64(0xef46db3751d8e999), ID(""))
}
