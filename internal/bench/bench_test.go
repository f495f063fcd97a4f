package bench

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRunProducesOneResultPerGame(t *testing.T) {
	results, err := Run(1)
	require.NoError(t, err)
	require.Len(t, results, len(games))
	for _, r := range results {
		require.Equal(t, 1, r.Depth)
		require.Greater(t, r.Nodes, int64(0))
		require.NotEmpty(t, r.Description)
	}
}

func TestNPSZeroOnZeroElapsed(t *testing.T) {
	r := Result{Nodes: 1000, Elapsed: 0}
	require.Equal(t, int64(0), r.NPS())
}
