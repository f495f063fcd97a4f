package search

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chego-labs/corechess/internal/board"
	"github.com/chego-labs/corechess/internal/ttable"
)

func newTestEngine(t *testing.T, fen string) *Engine {
	t.Helper()
	pos, err := board.FromFEN(fen)
	require.NoError(t, err)
	return NewEngine(pos, ttable.New(1))
}

func TestFindsMateInOne(t *testing.T) {
	// White plays Re1-e8#, a back-rank mate with the black king boxed in
	// by its own pawns.
	eng := newTestEngine(t, "6k1/5ppp/8/8/8/8/5PPP/4R1K1 w - - 0 1")
	tc := &TimeControl{Depth: 3}
	tc.Start(true)
	move, score := eng.Play(tc)
	require.NotEqual(t, board.NoMove, move)
	require.Greater(t, score, MateScore-maxPly)
}

func TestDetectsStalemateAsDraw(t *testing.T) {
	// Black to move, no legal moves, not in check: stalemate.
	pos, err := board.FromFEN("7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	require.NoError(t, err)
	eng := NewEngine(pos, ttable.New(1))
	score := eng.alphaBeta(1, 0, -Infinity, Infinity, true)
	require.Equal(t, 0, score)
}

func TestRepetitionIsScoredAsDraw(t *testing.T) {
	pos := board.NewPosition()
	eng := NewEngine(pos, ttable.New(1))

	playBack := func(from, to board.Square) {
		var list board.MoveList
		pos.GeneratePseudoLegal(&list)
		for i := 0; i < list.Len(); i++ {
			m := list.At(i)
			if m.Source() == from && m.Target() == to {
				require.NoError(t, pos.MakeMove(m))
				return
			}
		}
		t.Fatalf("move %s-%s not found", from, to)
	}

	// Shuffle knights back and forth to repeat the starting position twice.
	playBack(board.SquareG1, board.SquareF3)
	playBack(board.SquareG8, board.SquareF6)
	playBack(board.SquareF3, board.SquareG1)
	playBack(board.SquareF6, board.SquareG8)

	require.True(t, pos.IsRepetition())
	score := eng.alphaBeta(1, 1, -Infinity, Infinity, true)
	require.Equal(t, 0, score)
}

func TestQuiescenceStandPat(t *testing.T) {
	eng := newTestEngine(t, "4k3/8/8/8/8/8/8/4KQ2 w - - 0 1")
	score := eng.quiescence(-Infinity, Infinity, 0)
	require.Greater(t, score, 0)
}

func TestNodesExceeded(t *testing.T) {
	tc := &TimeControl{Nodes: 1000}
	require.False(t, tc.NodesExceeded(999))
	require.True(t, tc.NodesExceeded(1000))
	require.True(t, tc.NodesExceeded(1001))

	unbounded := &TimeControl{}
	require.False(t, unbounded.NodesExceeded(1<<30))
}

func TestGoNodesBudgetCapsNodeCount(t *testing.T) {
	eng := newTestEngine(t, "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	tc := &TimeControl{Nodes: 1500}
	tc.Start(true)
	eng.Play(tc)
	// An unbounded search of this middlegame position would run to
	// maxDepth (64) and visit many orders of magnitude more nodes; a tight
	// node budget must cut it off long before that.
	require.Less(t, eng.Nodes(), int64(200_000))
}

func TestIlog2(t *testing.T) {
	require.Equal(t, 0, ilog2(0))
	require.Equal(t, 0, ilog2(1))
	require.Equal(t, 1, ilog2(2))
	require.Equal(t, 3, ilog2(8))
}
