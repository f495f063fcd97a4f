package perft

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chego-labs/corechess/internal/board"
)

func TestCountStartpos(t *testing.T) {
	cases := []struct {
		depth int
		nodes uint64
	}{
		{1, 20},
		{2, 400},
		{3, 8902},
		{4, 197281},
	}
	pos := board.NewPosition()
	for _, c := range cases {
		got := Count(pos, c.depth)
		require.Equal(t, c.nodes, got.Nodes, "depth %d", c.depth)
	}
}

func TestCountKiwipete(t *testing.T) {
	pos, err := board.FromFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	require.NoError(t, err)

	got := Count(pos, 1)
	require.Equal(t, uint64(48), got.Nodes)
	require.Equal(t, uint64(8), got.Captures)
	require.Equal(t, uint64(2), got.Castles)

	got = Count(pos, 2)
	require.Equal(t, uint64(2039), got.Nodes)
}

func TestCountEnPassantPosition(t *testing.T) {
	pos, err := board.FromFEN("8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1")
	require.NoError(t, err)
	got := Count(pos, 1)
	require.Equal(t, uint64(14), got.Nodes)
}

func TestDivideSumsToCount(t *testing.T) {
	pos := board.NewPosition()
	div := Divide(pos, 3)
	var sum uint64
	for _, n := range div {
		sum += n
	}
	require.Equal(t, Count(pos, 3).Nodes, sum)
	require.Len(t, div, 20)
}

func TestCountZeroDepthIsOneLeaf(t *testing.T) {
	pos := board.NewPosition()
	require.Equal(t, uint64(1), Count(pos, 0).Nodes)
}
