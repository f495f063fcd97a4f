package uci

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chego-labs/corechess/internal/board"
)

func TestHandleUCIAnnouncesIdentityAndOptions(t *testing.T) {
	var out bytes.Buffer
	h := New(strings.NewReader(""), &out, 1)
	h.handleUCI()
	require.Contains(t, out.String(), "id name corechess")
	require.Contains(t, out.String(), "uciok")
}

func TestHandlePositionStartpos(t *testing.T) {
	var out bytes.Buffer
	h := New(strings.NewReader(""), &out, 1)
	require.NoError(t, h.handlePosition([]string{"startpos"}))
	require.Equal(t, board.NewPosition().String(), h.pos.String())
}

func TestHandlePositionStartposWithMoves(t *testing.T) {
	var out bytes.Buffer
	h := New(strings.NewReader(""), &out, 1)
	require.NoError(t, h.handlePosition([]string{"startpos", "moves", "e2e4", "e7e5"}))
	require.Equal(t, board.White, board.NewPosition().SideToMove)
	require.Equal(t, board.White, h.pos.SideToMove)
}

func TestHandlePositionFEN(t *testing.T) {
	var out bytes.Buffer
	h := New(strings.NewReader(""), &out, 1)
	fen := "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
	require.NoError(t, h.handlePosition([]string{"fen", "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R", "w", "KQkq", "-", "0", "1"}))
	require.Equal(t, fen, h.pos.String())
}

func TestHandlePositionRejectsIllegalMove(t *testing.T) {
	var out bytes.Buffer
	h := New(strings.NewReader(""), &out, 1)
	err := h.handlePosition([]string{"startpos", "moves", "e2e5"})
	require.Error(t, err)
}

func TestDispatchQuitStopsTheLoop(t *testing.T) {
	var out bytes.Buffer
	h := New(strings.NewReader(""), &out, 1)
	exit, code := h.dispatch("quit")
	require.True(t, exit)
	require.Equal(t, 0, code)
}

func TestDispatchIsReady(t *testing.T) {
	var out bytes.Buffer
	h := New(strings.NewReader(""), &out, 1)
	exit, _ := h.dispatch("isready")
	require.False(t, exit)
	require.Equal(t, "readyok\n", out.String())
}

func TestHandleSetOptionClearHash(t *testing.T) {
	var out bytes.Buffer
	h := New(strings.NewReader(""), &out, 1)
	h.tt.Store(0x1, 10, board.NoMove, 1, 0, 0)
	h.handleSetOption("setoption name Clear Hash")
	_, _, _, _, ok := h.tt.Probe(0x1, 0)
	require.False(t, ok)
}

func TestParseUCIMoveResolvesPromotion(t *testing.T) {
	pos, err := board.FromFEN("8/4P3/8/8/8/8/k7/K7 w - - 0 1")
	require.NoError(t, err)
	m, err := ParseUCIMove(pos, "e7e8q")
	require.NoError(t, err)
	require.Equal(t, board.Queen, m.Flag().PromotionType())
}

func TestParseUCIMoveRejectsUnknownSquare(t *testing.T) {
	pos := board.NewPosition()
	_, err := ParseUCIMove(pos, "e2e9")
	require.Error(t, err)
}
