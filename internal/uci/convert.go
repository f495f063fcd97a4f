package uci

import (
	"fmt"

	"github.com/chego-labs/corechess/internal/board"
)

// ParseUCIMove resolves a UCI move string ("e2e4", "e7e8q") against pos's
// pseudo-legal moves, since the wire format alone doesn't carry the flag
// (capture/ep/castle/promotion) the packed Move encoding needs.
func ParseUCIMove(pos *board.Position, s string) (board.Move, error) {
	if len(s) < 4 {
		return board.NoMove, fmt.Errorf("uci: move %q too short", s)
	}
	from, err := board.SquareFromString(s[0:2])
	if err != nil {
		return board.NoMove, err
	}
	to, err := board.SquareFromString(s[2:4])
	if err != nil {
		return board.NoMove, err
	}
	var promo byte
	if len(s) >= 5 {
		promo = s[4]
	}

	var list board.MoveList
	pos.GeneratePseudoLegal(&list)
	for i := 0; i < list.Len(); i++ {
		m := list.At(i)
		if m.Source() != from || m.Target() != to {
			continue
		}
		flag := m.Flag()
		if flag.IsPromotion() {
			if promo == 0 {
				continue
			}
			want := promoSymbolFor(flag.PromotionType())
			if want != promo {
				continue
			}
		} else if promo != 0 {
			continue
		}
		return m, nil
	}
	return board.NoMove, fmt.Errorf("uci: no pseudo-legal move %s", s)
}

func promoSymbolFor(pt board.PieceType) byte {
	switch pt {
	case board.Knight:
		return 'n'
	case board.Bishop:
		return 'b'
	case board.Rook:
		return 'r'
	case board.Queen:
		return 'q'
	}
	return 0
}
