package normalization

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type mode string

func TestNormalizer(t *testing.T) {
	n := NewNormalizer(map[string]mode{"separate": "separate", "Shared": "shared"}, "separate")

	require.Equal(t, mode("shared"), n.Normalize("  SHARED "))
	require.Equal(t, mode("separate"), n.Normalize("bogus"))
	require.Equal(t, []string{"separate", "shared"}, n.ValidKeys())

	v, err := n.NormalizeWithError("")
	require.NoError(t, err)
	require.Equal(t, mode("separate"), v)

	_, err = n.NormalizeWithError("global")
	require.ErrorContains(t, err, `invalid value "global"`)
}
