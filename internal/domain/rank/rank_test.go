package rank

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOf(t *testing.T) {
	require.Equal(t, Dormant, Of(0))
	require.Equal(t, Dormant, Of(100))
	require.Equal(t, Dormant, Of(100.9))
	require.Equal(t, Initiate, Of(101))
	require.Equal(t, Grinder, Of(301))
	require.Equal(t, Executor, Of(601))
	require.Equal(t, Obsessor, Of(1001))
	require.Equal(t, Disciplinar, Of(1501))
	require.Equal(t, Sentinel, Of(2001))
	require.Equal(t, Dominus, Of(2601))
	require.Equal(t, Phantom, Of(3301))
	require.Equal(t, ApexMind, Of(4001))
	require.Equal(t, SystemOverride, Of(4701))
	require.Equal(t, SystemOverride, Of(5500.9))
	require.Equal(t, DarkensulCore, Of(5501))
	require.Equal(t, DarkensulCore, Of(99999))
}

func TestProgress(t *testing.T) {
	require.Equal(t, "Progress: 50 / 101 points", Progress(50))
	require.Equal(t, "Progress: 0 / 200 points", Progress(101))
	require.Equal(t, "Progress: 100 / 200 points", Progress(201))
	require.Equal(t, "Progress: 6000 / ∞ points", Progress(6000))
}
