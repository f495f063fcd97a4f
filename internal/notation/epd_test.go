package notation

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseBasicOpcodes(t *testing.T) {
	line := `r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - bm Qd1; id "WAC.001"; c0 "mate soon";`
	epd, err := Parse(line)
	require.NoError(t, err)
	require.Equal(t, "WAC.001", epd.ID)
	require.Equal(t, []string{"Qd1"}, epd.BestMove)
	require.Equal(t, "mate soon", epd.Comment)
	require.Equal(t, "w", epd.Position.SideToMove.String())
}

func TestParseRejectsShortLine(t *testing.T) {
	_, err := Parse("8/8/8/8/8/8/8/8 w -")
	require.Error(t, err)
}

func TestParseRejectsEmptyLine(t *testing.T) {
	_, err := Parse("   ")
	require.Error(t, err)
}

func TestParseWithoutOpcodes(t *testing.T) {
	epd, err := Parse("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq -")
	require.NoError(t, err)
	require.Empty(t, epd.ID)
	require.Nil(t, epd.BestMove)
}
