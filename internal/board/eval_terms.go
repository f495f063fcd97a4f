package board

// passedPawnBonus is indexed by rank from the pawn's own side perspective
// (rank 0/7 entries are unreachable sentinels).
var passedPawnBonus = [8]int{0, 10, 17, 15, 62, 168, 276, 0}

var mobilityWeight = [PieceTypeCount]int{0, 0, 3, 2, 2, 1, 0}

const tradingThreshold = 200
const mopUpMaterialThreshold = 500

// Evaluate returns the full static evaluation (tapered PSQT/material plus
// bishop pair, passed pawns, rook files, mobility, king shelter, trading
// bonus and mop-up), from the side-to-move's perspective, in centipawns.
func Evaluate(p *Position) int {
	phase := p.Phase
	if phase > startPhase {
		phase = startPhase
	}
	if phase < 0 {
		phase = 0
	}

	mg := p.MgScore
	eg := p.EgScore

	for _, c := range [2]Color{White, Black} {
		sign := 1
		if c == Black {
			sign = -1
		}
		mg += sign * bishopPairBonus(p, c)
		eg += sign * bishopPairBonus(p, c)
		mg += sign * passedPawnScore(p, c)
		eg += sign * passedPawnScore(p, c)
		mg += sign * rookFileScore(p, c)
		eg += sign * rookFileScore(p, c)
		if phase > 7 { // > 0.3*24
			mg += sign * mobilityScore(p, c)
			eg += sign * mobilityScore(p, c)
		}
		if phase > 12 { // > 0.5*24
			mg += sign * kingShieldScore(p, c)
		}
	}

	base := (mg*phase + eg*(startPhase-phase)) / startPhase

	base += tradingBonus(p, base, phase)
	base += mopUp(p, base, phase)

	if p.SideToMove == Black {
		return -base
	}
	return base
}

func bishopPairBonus(p *Position, c Color) int {
	if p.PieceBB(c, Bishop).Popcnt() >= 2 {
		return 40
	}
	return 0
}

func passedPawnScore(p *Position, c Color) int {
	score := 0
	pawns := p.PieceBB(c, Pawn)
	enemyPawns := p.PieceBB(c.Opposite(), Pawn)
	for pawns != 0 {
		sq := pawns.Pop()
		if PassedPawnMask(c, sq)&enemyPawns != 0 {
			continue
		}
		rank := sq.Rank()
		if c == Black {
			rank = 7 - rank
		}
		score += passedPawnBonus[rank]
	}
	return score
}

func rookFileScore(p *Position, c Color) int {
	score := 0
	ownPawns := p.PieceBB(c, Pawn)
	enemyPawns := p.PieceBB(c.Opposite(), Pawn)
	rooks := p.PieceBB(c, Rook)
	for rooks != 0 {
		sq := rooks.Pop()
		file := FileMask(sq.File())
		if file&ownPawns == 0 {
			if file&enemyPawns == 0 {
				score += 10
			} else {
				score += 4
			}
		}
	}
	return score
}

func mobilityScore(p *Position, c Color) int {
	own := p.ColorBB(c)
	all := p.AllBB()
	score := 0
	for pt := Knight; pt <= Queen; pt++ {
		bb := p.PieceBB(c, pt)
		for bb != 0 {
			sq := bb.Pop()
			var attacks Bitboard
			switch pt {
			case Knight:
				attacks = KnightAttacks(sq)
			case Bishop:
				attacks = BishopAttacks(sq, all)
			case Rook:
				attacks = RookAttacks(sq, all)
			case Queen:
				attacks = QueenAttacks(sq, all)
			}
			score += (attacks &^ own).Popcnt() * mobilityWeight[pt]
		}
	}
	return score
}

func kingShieldScore(p *Position, c Color) int {
	kingSq := p.KingSquare(c)
	pawns := p.PieceBB(c, Pawn)
	files := FileMask(kingSq.File()) | AdjacentFileMask(kingSq.File())
	var ranks Bitboard
	if c == White {
		for r := kingSq.Rank() + 1; r <= kingSq.Rank()+2 && r < 8; r++ {
			ranks |= RankBb(r)
		}
	} else {
		for r := kingSq.Rank() - 1; r >= kingSq.Rank()-2 && r >= 0; r-- {
			ranks |= RankBb(r)
		}
	}
	shieldPawns := pawns & files & ranks
	return shieldPawns.Popcnt() * 4
}

// tradingBonus nudges a winning side toward simplification: the fewer
// pieces remain, the larger the bonus for the side already ahead.
func tradingBonus(p *Position, baseEval, phase int) int {
	if baseEval > tradingThreshold {
		return (startPhase - phase)
	}
	if baseEval < -tradingThreshold {
		return -(startPhase - phase)
	}
	return 0
}

// mopUp rewards driving the losing king to the board edge and bringing the
// winning king close, once the position is clearly won and material is low.
func mopUp(p *Position, baseEval, phase int) int {
	if phase >= 10 { // 0.4*24 rounded
		return 0
	}
	if baseEval > -mopUpMaterialThreshold && baseEval < mopUpMaterialThreshold {
		return 0
	}
	winner, loser := White, Black
	sign := 1
	if baseEval < 0 {
		winner, loser = Black, White
		sign = -1
	}
	loserKing := p.KingSquare(loser)
	winnerKing := p.KingSquare(winner)
	centreDist := centreDistance(loserKing)
	kingDist := manhattan(loserKing, winnerKing)
	bonus := centreDist*4 + (14-kingDist)*2
	return sign * bonus
}

// centreDistance is the taxicab distance from sq to the nearest of the four
// central squares (d4/d5/e4/e5 in 0-indexed rank/file, 3 or 4).
func centreDistance(sq Square) int {
	return edgeGap(sq.Rank()) + edgeGap(sq.File())
}

func edgeGap(v int) int {
	if v < 3 {
		return 3 - v
	}
	if v > 4 {
		return v - 4
	}
	return 0
}

func manhattan(a, b Square) int {
	dr := a.Rank() - b.Rank()
	if dr < 0 {
		dr = -dr
	}
	df := a.File() - b.File()
	if df < 0 {
		df = -df
	}
	return dr + df
}
