package board

// MoveList is a reusable, bounded move buffer; 256 pseudo-legal moves is
// always enough headroom for any reachable chess position.
type MoveList struct {
	moves [256]Move
	n     int
}

// Reset empties the list for reuse without reallocating.
func (l *MoveList) Reset() { l.n = 0 }

func (l *MoveList) add(m Move) {
	l.moves[l.n] = m
	l.n++
}

// Len returns the number of moves currently in the list.
func (l *MoveList) Len() int { return l.n }

// At returns the i-th move.
func (l *MoveList) At(i int) Move { return l.moves[i] }

// Slice returns the populated moves as a slice (for non-hot-path callers).
func (l *MoveList) Slice() []Move { return l.moves[:l.n] }

// Swap exchanges the moves at i and j; used by move ordering's
// selection-sort pass.
func (l *MoveList) Swap(i, j int) { l.moves[i], l.moves[j] = l.moves[j], l.moves[i] }

// GeneratePseudoLegal appends every pseudo-legal move for the side to move
// into list. Moves that leave the mover's own king in check are not
// filtered here; callers apply the post-make legality test (IsLegalLastMove).
func (p *Position) GeneratePseudoLegal(list *MoveList) {
	us := p.SideToMove
	them := us.Opposite()
	own := p.colorBB[us]
	enemy := p.colorBB[them]
	empty := ^p.allBB

	p.generatePawnMoves(list, us, them, empty, enemy)
	p.generateJumpMoves(list, Knight, KnightAttacksTable, own, enemy)
	p.generateSliderMoves(list, Bishop, own, enemy)
	p.generateSliderMoves(list, Rook, own, enemy)
	p.generateSliderMoves(list, Queen, own, enemy)
	p.generateJumpMoves(list, King, KingAttacksTable, own, enemy)
	p.generateCastles(list, us)
}

// KnightAttacksTable and KingAttacksTable adapt the package-level attack
// tables to the function-pointer signature generateJumpMoves expects.
func KnightAttacksTable(sq Square) Bitboard { return KnightAttacks(sq) }
func KingAttacksTable(sq Square) Bitboard   { return KingAttacks(sq) }

func (p *Position) generateJumpMoves(list *MoveList, pt PieceType, attacks func(Square) Bitboard, own, enemy Bitboard) {
	us := p.SideToMove
	bb := p.PieceBB(us, pt)
	for bb != 0 {
		from := bb.Pop()
		targets := attacks(from) &^ own
		caps := targets & enemy
		quiets := targets &^ enemy
		for caps != 0 {
			to := caps.Pop()
			list.add(MakeMove(from, to, FlagCapture))
		}
		for quiets != 0 {
			to := quiets.Pop()
			list.add(MakeMove(from, to, FlagQuiet))
		}
	}
}

func (p *Position) generateSliderMoves(list *MoveList, pt PieceType, own, enemy Bitboard) {
	us := p.SideToMove
	bb := p.PieceBB(us, pt)
	for bb != 0 {
		from := bb.Pop()
		var attacks Bitboard
		switch pt {
		case Bishop:
			attacks = BishopAttacks(from, p.allBB)
		case Rook:
			attacks = RookAttacks(from, p.allBB)
		case Queen:
			attacks = QueenAttacks(from, p.allBB)
		}
		targets := attacks &^ own
		caps := targets & enemy
		quiets := targets &^ enemy
		for caps != 0 {
			to := caps.Pop()
			list.add(MakeMove(from, to, FlagCapture))
		}
		for quiets != 0 {
			to := quiets.Pop()
			list.add(MakeMove(from, to, FlagQuiet))
		}
	}
}

var promoFlags = [4]MoveFlag{FlagPromoN, FlagPromoB, FlagPromoR, FlagPromoQ}
var promoCaptureFlags = [4]MoveFlag{FlagPromoCaptureN, FlagPromoCaptureB, FlagPromoCaptureR, FlagPromoCaptureQ}

func (p *Position) generatePawnMoves(list *MoveList, us, them Color, empty, enemy Bitboard) {
	pawns := p.PieceBB(us, Pawn)
	var forward, startRank, promoRank int
	if us == White {
		forward, startRank, promoRank = 8, 1, 7
	} else {
		forward, startRank, promoRank = -8, 6, 0
	}

	bb := pawns
	for bb != 0 {
		from := bb.Pop()
		rank := from.Rank()
		to := Square(int(from) + forward)

		if to.Bitboard()&empty != 0 {
			if to.Rank() == promoRank {
				for _, f := range promoFlags {
					list.add(MakeMove(from, to, f))
				}
			} else {
				list.add(MakeMove(from, to, FlagQuiet))
				if rank == startRank {
					to2 := Square(int(from) + 2*forward)
					if to2.Bitboard()&empty != 0 {
						list.add(MakeMove(from, to2, FlagDoublePush))
					}
				}
			}
		}

		attacks := PawnAttacks(us, from)
		caps := attacks & enemy
		for caps != 0 {
			capTo := caps.Pop()
			if capTo.Rank() == promoRank {
				for _, f := range promoCaptureFlags {
					list.add(MakeMove(from, capTo, f))
				}
			} else {
				list.add(MakeMove(from, capTo, FlagCapture))
			}
		}

		if p.EpSquare != NoSquare && attacks&p.EpSquare.Bitboard() != 0 {
			list.add(MakeMove(from, p.EpSquare, FlagEnPassant))
		}
	}
}

func (p *Position) generateCastles(list *MoveList, us Color) {
	all := p.allBB
	them := us.Opposite()
	if us == White {
		if p.CastleRights&WhiteOO != 0 &&
			all&(SquareF1.Bitboard()|SquareG1.Bitboard()) == 0 &&
			!p.IsSquareAttacked(SquareE1, them) && !p.IsSquareAttacked(SquareF1, them) && !p.IsSquareAttacked(SquareG1, them) {
			list.add(MakeMove(SquareE1, SquareG1, FlagCastleKS))
		}
		if p.CastleRights&WhiteOOO != 0 &&
			all&(SquareB1.Bitboard()|SquareC1.Bitboard()|SquareD1.Bitboard()) == 0 &&
			!p.IsSquareAttacked(SquareE1, them) && !p.IsSquareAttacked(SquareD1, them) && !p.IsSquareAttacked(SquareC1, them) {
			list.add(MakeMove(SquareE1, SquareC1, FlagCastleQS))
		}
	} else {
		if p.CastleRights&BlackOO != 0 &&
			all&(SquareF8.Bitboard()|SquareG8.Bitboard()) == 0 &&
			!p.IsSquareAttacked(SquareE8, them) && !p.IsSquareAttacked(SquareF8, them) && !p.IsSquareAttacked(SquareG8, them) {
			list.add(MakeMove(SquareE8, SquareG8, FlagCastleKS))
		}
		if p.CastleRights&BlackOOO != 0 &&
			all&(SquareB8.Bitboard()|SquareC8.Bitboard()|SquareD8.Bitboard()) == 0 &&
			!p.IsSquareAttacked(SquareE8, them) && !p.IsSquareAttacked(SquareD8, them) && !p.IsSquareAttacked(SquareC8, them) {
			list.add(MakeMove(SquareE8, SquareC8, FlagCastleQS))
		}
	}
}

// GenerateCaptures appends only captures and promotions (for quiescence
// search), skipping quiet moves.
func (p *Position) GenerateCaptures(list *MoveList) {
	var all MoveList
	p.GeneratePseudoLegal(&all)
	for i := 0; i < all.Len(); i++ {
		m := all.At(i)
		if m.Flag().IsCapture() || m.Flag().IsPromotion() {
			list.add(m)
		}
	}
}

// IsLegalLastMove reports whether the side that just moved (the one that
// is now NOT to move) left itself in check; if so, the move must be
// unmade and discarded by the caller.
func (p *Position) IsLegalLastMove() bool {
	justMoved := p.SideToMove.Opposite()
	return !p.InCheck(justMoved)
}
