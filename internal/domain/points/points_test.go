package points

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFor(t *testing.T) {
	require.Equal(t, 0.0, For(0))
	require.Equal(t, 1.0, For(12))
	require.Equal(t, 10.0, For(120))
	require.InDelta(t, 0.0833, For(1), 1e-4)

	// Monotonic in minutes.
	for m := 1; m < 300; m++ {
		require.Greater(t, For(m), For(m-1))
	}
}
