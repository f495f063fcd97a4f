package board

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStartposHasTwentyPseudoLegalMoves(t *testing.T) {
	pos := NewPosition()
	var list MoveList
	pos.GeneratePseudoLegal(&list)
	require.Equal(t, 20, list.Len())
}

func TestGenerateCapturesOnlyReturnsCapturesAndPromotions(t *testing.T) {
	pos, err := FromFEN("4k3/3P4/8/8/3p4/8/3P4/4K2R w K - 0 1")
	require.NoError(t, err)
	var list MoveList
	pos.GenerateCaptures(&list)
	for i := 0; i < list.Len(); i++ {
		flag := list.At(i).Flag()
		require.True(t, flag.IsCapture() || flag.IsPromotion())
	}
	require.Greater(t, list.Len(), 0)
}

func TestEnPassantMoveGenerated(t *testing.T) {
	pos, err := FromFEN("4k3/8/8/3pP3/8/8/8/4K3 w - d6 0 1")
	require.NoError(t, err)
	var list MoveList
	pos.GeneratePseudoLegal(&list)
	found := false
	for i := 0; i < list.Len(); i++ {
		if list.At(i).Flag() == FlagEnPassant {
			found = true
		}
	}
	require.True(t, found)
}

func TestCastlingBlockedByOccupancy(t *testing.T) {
	pos, err := FromFEN("4k3/8/8/8/8/8/8/R3K1NR w KQ - 0 1")
	require.NoError(t, err)
	var list MoveList
	pos.GeneratePseudoLegal(&list)
	for i := 0; i < list.Len(); i++ {
		require.NotEqual(t, FlagCastleKS, list.At(i).Flag(), "kingside castle blocked by knight on g1")
	}
}

func TestCastlingAvailableWhenClear(t *testing.T) {
	pos, err := FromFEN("4k3/8/8/8/8/8/8/R3K2R w KQ - 0 1")
	require.NoError(t, err)
	var list MoveList
	pos.GeneratePseudoLegal(&list)
	ks, qs := false, false
	for i := 0; i < list.Len(); i++ {
		switch list.At(i).Flag() {
		case FlagCastleKS:
			ks = true
		case FlagCastleQS:
			qs = true
		}
	}
	require.True(t, ks)
	require.True(t, qs)
}

func TestCastlingForbiddenThroughCheck(t *testing.T) {
	// Black rook on f8 attacks f1, so White cannot castle kingside.
	pos, err := FromFEN("5r1k/8/8/8/8/8/8/R3K2R w KQ - 0 1")
	require.NoError(t, err)
	var list MoveList
	pos.GeneratePseudoLegal(&list)
	for i := 0; i < list.Len(); i++ {
		require.NotEqual(t, FlagCastleKS, list.At(i).Flag())
	}
}

func TestRookAttacksMatchBruteForce(t *testing.T) {
	occ := SquareD4.Bitboard() | SquareA4.Bitboard() | SquareD8.Bitboard() | SquareG4.Bitboard()
	got := RookAttacks(SquareD4, occ)
	want := bruteForceSliderAttacks(SquareD4, occ, []int{8, -8, 1, -1})
	require.Equal(t, want, got)
}

func TestBishopAttacksMatchBruteForce(t *testing.T) {
	occ := SquareD4.Bitboard() | SquareB2.Bitboard() | SquareG7.Bitboard()
	got := BishopAttacks(SquareD4, occ)
	want := bruteForceSliderAttacks(SquareD4, occ, []int{9, -9, 7, -7})
	require.Equal(t, want, got)
}

// bruteForceSliderAttacks walks each of the four ray directions one square
// at a time, stopping after (and including) the first occupied square,
// as a reference to check the magic-bitboard lookup against.
func bruteForceSliderAttacks(from Square, occ Bitboard, deltas []int) Bitboard {
	var attacks Bitboard
	for _, d := range deltas {
		sq := int(from)
		file := from.File()
		rank := from.Rank()
		for {
			prevFile, prevRank := file, rank
			sq += d
			if sq < 0 || sq > 63 {
				break
			}
			file = Square(sq).File()
			rank = Square(sq).Rank()
			// Reject wraparound: a horizontal/diagonal step must change
			// file by exactly one (or zero for a pure vertical step).
			fileDelta := file - prevFile
			if fileDelta < 0 {
				fileDelta = -fileDelta
			}
			rankDelta := rank - prevRank
			if rankDelta < 0 {
				rankDelta = -rankDelta
			}
			if fileDelta > 1 || rankDelta > 1 {
				break
			}
			bb := Square(sq).Bitboard()
			attacks |= bb
			if occ&bb != 0 {
				break
			}
		}
	}
	return attacks
}
