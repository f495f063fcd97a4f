package board

import "math/rand"

// Zobrist keys, generated once from a fixed seed so successive runs of the
// engine (and the perft/bench tooling) agree on hash values.
var (
	zobristPiece     [PieceArraySize][64]uint64
	zobristEnpassant [64]uint64
	zobristCastle    [16]uint64
	zobristColor     uint64
)

func rand64(r *rand.Rand) uint64 {
	return uint64(r.Int63())<<32 ^ uint64(r.Int63())
}

func init() {
	r := rand.New(rand.NewSource(1))
	for c := Color(0); c < ColorCount; c++ {
		for pt := PieceType(Pawn); pt <= King; pt++ {
			p := MakePiece(c, pt)
			for sq := Square(0); sq < 64; sq++ {
				zobristPiece[p][sq] = rand64(r)
			}
		}
	}
	for sq := SquareA3; sq <= SquareH3; sq++ {
		zobristEnpassant[sq] = rand64(r)
	}
	for sq := SquareA6; sq <= SquareH6; sq++ {
		zobristEnpassant[sq] = rand64(r)
	}
	for i := range zobristCastle {
		zobristCastle[i] = rand64(r)
	}
	zobristColor = rand64(r)
}
