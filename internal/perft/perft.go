// Package perft recursively counts nodes reachable from a position to a
// given depth, the canonical correctness test for a move generator
// composed with make/unmake.
package perft

import "github.com/chego-labs/corechess/internal/board"

// Counters tallies leaf-node classification at the final ply.
type Counters struct {
	Nodes      uint64
	Captures   uint64
	EnPassant  uint64
	Castles    uint64
	Promotions uint64
}

func (c *Counters) add(o Counters) {
	c.Nodes += o.Nodes
	c.Captures += o.Captures
	c.EnPassant += o.EnPassant
	c.Castles += o.Castles
	c.Promotions += o.Promotions
}

// Count returns the perft counters for pos at the given depth.
func Count(pos *board.Position, depth int) Counters {
	if depth == 0 {
		return Counters{Nodes: 1}
	}

	var list board.MoveList
	pos.GeneratePseudoLegal(&list)

	var total Counters
	for i := 0; i < list.Len(); i++ {
		m := list.At(i)
		if err := pos.MakeMove(m); err != nil {
			continue
		}
		if !pos.IsLegalLastMove() {
			pos.UnmakeMove()
			continue
		}

		if depth == 1 {
			flag := m.Flag()
			if flag.IsCapture() {
				total.Captures++
			}
			if flag == board.FlagEnPassant {
				total.EnPassant++
			}
			if flag == board.FlagCastleKS || flag == board.FlagCastleQS {
				total.Castles++
			}
			if flag.IsPromotion() {
				total.Promotions++
			}
		}

		total.add(Count(pos, depth-1))
		pos.UnmakeMove()
	}
	return total
}

// Divide returns per-root-move subtree counts, used to localize a move
// generator discrepancy against a reference engine.
func Divide(pos *board.Position, depth int) map[string]uint64 {
	result := map[string]uint64{}
	if depth == 0 {
		return result
	}
	var list board.MoveList
	pos.GeneratePseudoLegal(&list)
	for i := 0; i < list.Len(); i++ {
		m := list.At(i)
		if err := pos.MakeMove(m); err != nil {
			continue
		}
		if !pos.IsLegalLastMove() {
			pos.UnmakeMove()
			continue
		}
		result[m.UCI()] = Count(pos, depth-1).Nodes
		pos.UnmakeMove()
	}
	return result
}
