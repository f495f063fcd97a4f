package ttable

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chego-labs/corechess/internal/board"
)

func TestProbeMiss(t *testing.T) {
	tt := New(1)
	_, _, _, _, ok := tt.Probe(0x1234, 0)
	require.False(t, ok)
}

func TestStoreThenProbe(t *testing.T) {
	tt := New(1)
	m := board.MakeMove(board.SquareE2, board.SquareE4, board.FlagDoublePush)
	tt.Store(0xabcd, 55, m, 6, BoundExact, 3)

	score, move, depth, bound, ok := tt.Probe(0xabcd, 3)
	require.True(t, ok)
	require.Equal(t, 55, score)
	require.Equal(t, m, move)
	require.Equal(t, 6, depth)
	require.Equal(t, BoundExact, bound)
}

func TestProbeHashCollisionMismatch(t *testing.T) {
	tt := New(1)
	m := board.MakeMove(board.SquareD2, board.SquareD4, board.FlagDoublePush)
	tt.Store(0x1, 10, m, 4, BoundExact, 0)
	_, _, _, _, ok := tt.Probe(0x2, 0)
	require.False(t, ok)
}

func TestDeeperEntryNotOverwrittenBySameGeneration(t *testing.T) {
	tt := New(1)
	m1 := board.MakeMove(board.SquareE2, board.SquareE4, board.FlagDoublePush)
	m2 := board.MakeMove(board.SquareD2, board.SquareD4, board.FlagDoublePush)
	tt.Store(0x55, 100, m1, 10, BoundExact, 0)
	tt.Store(0x55, -100, m2, 3, BoundExact, 0)

	score, move, depth, _, ok := tt.Probe(0x55, 0)
	require.True(t, ok)
	require.Equal(t, 100, score)
	require.Equal(t, m1, move)
	require.Equal(t, 10, depth)
}

func TestNewSearchAllowsShallowerOverwrite(t *testing.T) {
	tt := New(1)
	m1 := board.MakeMove(board.SquareE2, board.SquareE4, board.FlagDoublePush)
	m2 := board.MakeMove(board.SquareD2, board.SquareD4, board.FlagDoublePush)
	tt.Store(0x77, 100, m1, 10, BoundExact, 0)
	tt.NewSearch()
	tt.Store(0x77, -20, m2, 2, BoundExact, 0)

	score, move, depth, _, ok := tt.Probe(0x77, 0)
	require.True(t, ok)
	require.Equal(t, -20, score)
	require.Equal(t, m2, move)
	require.Equal(t, 2, depth)
}

func TestMateScoreAdjustmentRoundTrips(t *testing.T) {
	tt := New(1)
	m := board.MakeMove(board.SquareE1, board.SquareE2, board.FlagQuiet)
	const mateScore = 29998
	tt.Store(0x99, mateScore, m, 5, BoundExact, 4)

	score, _, _, _, ok := tt.Probe(0x99, 4)
	require.True(t, ok)
	require.Equal(t, mateScore, score)

	// Probing from a different ply re-roots the mate distance.
	score, _, _, _, ok = tt.Probe(0x99, 2)
	require.True(t, ok)
	require.Equal(t, mateScore+2, score)
}

func TestClearResetsEntriesAndGeneration(t *testing.T) {
	tt := New(1)
	m := board.MakeMove(board.SquareA2, board.SquareA4, board.FlagDoublePush)
	tt.NewSearch()
	tt.Store(0x42, 5, m, 1, BoundExact, 0)
	tt.Clear()
	_, _, _, _, ok := tt.Probe(0x42, 0)
	require.False(t, ok)
	require.Equal(t, uint8(0), tt.gen)
}

func TestHashfullReflectsFillRatio(t *testing.T) {
	tt := New(1)
	require.Equal(t, 0, tt.Hashfull())
	m := board.MakeMove(board.SquareB1, board.SquareC3, board.FlagQuiet)
	for i := uint64(0); i < 10; i++ {
		tt.Store(i, 0, m, 1, BoundExact, 0)
	}
	require.Greater(t, tt.Hashfull(), 0)
}
