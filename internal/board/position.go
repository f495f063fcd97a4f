package board

import (
	"fmt"
	"strconv"
	"strings"
)

// undoRecord captures everything make_move needs to reverse a move without
// recomputation: captured piece (if any), prior castling rights, prior en
// passant square, prior halfmove clock, prior hash and prior mg/eg/phase.
type undoRecord struct {
	move          Move
	captured      Piece
	captureSquare Square
	castleRights  Castle
	epSquare      Square
	halfMoveClock int
	hash          uint64
	mgScore       int
	egScore       int
	phase         int
	irreversible  int
}

// Position is the full mutable chess state: bitboards, mailbox, side to
// move, castling/ep/clocks, incrementally maintained Zobrist hash and
// tapered material scores, and the undo/repetition stacks.
type Position struct {
	pieces  [PieceArraySize]Bitboard
	colorBB [ColorCount]Bitboard
	allBB   Bitboard
	board   [64]Piece

	SideToMove     Color
	CastleRights   Castle
	EpSquare       Square
	HalfMoveClock  int
	FullMoveNumber int

	Hash    uint64
	MgScore int
	EgScore int
	Phase   int

	// history holds the Zobrist hash after every move played since the
	// position was created; irreversiblePly is the index of the oldest
	// entry that could still be repeated (reset on pawn move, capture,
	// castle or loss of castling rights).
	history         []uint64
	irreversiblePly int

	undo []undoRecord
}

// NewPosition returns the standard chess starting position.
func NewPosition() *Position {
	p, err := FromFEN("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1")
	if err != nil {
		panic("board: invalid builtin startpos FEN: " + err.Error())
	}
	return p
}

var fenPieceSymbol = map[byte]Piece{
	'P': MakePiece(White, Pawn), 'N': MakePiece(White, Knight),
	'B': MakePiece(White, Bishop), 'R': MakePiece(White, Rook),
	'Q': MakePiece(White, Queen), 'K': MakePiece(White, King),
	'p': MakePiece(Black, Pawn), 'n': MakePiece(Black, Knight),
	'b': MakePiece(Black, Bishop), 'r': MakePiece(Black, Rook),
	'q': MakePiece(Black, Queen), 'k': MakePiece(Black, King),
}

var pieceToFEN = func() map[Piece]byte {
	m := map[Piece]byte{}
	for b, p := range fenPieceSymbol {
		m[p] = b
	}
	return m
}()

// FromFEN parses a six-field FEN string into a new Position, computing the
// Zobrist hash and mg/eg/phase scores from scratch.
func FromFEN(fen string) (*Position, error) {
	fields := strings.Fields(fen)
	if len(fields) != 6 {
		return nil, fmt.Errorf("board: FEN needs 6 fields, got %d", len(fields))
	}

	p := &Position{EpSquare: NoSquare}
	for i := range p.board {
		p.board[i] = NoPiece
	}

	ranks := strings.Split(fields[0], "/")
	if len(ranks) != 8 {
		return nil, fmt.Errorf("board: FEN piece placement needs 8 ranks, got %d", len(ranks))
	}
	for i, rankStr := range ranks {
		rank := 7 - i
		file := 0
		for _, ch := range []byte(rankStr) {
			if ch >= '1' && ch <= '8' {
				file += int(ch - '0')
				continue
			}
			piece, ok := fenPieceSymbol[ch]
			if !ok {
				return nil, fmt.Errorf("board: invalid FEN piece symbol %q", ch)
			}
			if file > 7 {
				return nil, fmt.Errorf("board: FEN rank %d overflows board", rank)
			}
			p.put(piece, RankFile(rank, file))
			file++
		}
		if file != 8 {
			return nil, fmt.Errorf("board: FEN rank %d has %d files, want 8", rank, file)
		}
	}

	switch fields[1] {
	case "w":
		p.SideToMove = White
	case "b":
		p.SideToMove = Black
		p.Hash ^= zobristColor
	default:
		return nil, fmt.Errorf("board: invalid FEN side to move %q", fields[1])
	}

	if fields[2] != "-" {
		for _, ch := range []byte(fields[2]) {
			switch ch {
			case 'K':
				p.CastleRights |= WhiteOO
			case 'Q':
				p.CastleRights |= WhiteOOO
			case 'k':
				p.CastleRights |= BlackOO
			case 'q':
				p.CastleRights |= BlackOOO
			default:
				return nil, fmt.Errorf("board: invalid FEN castling symbol %q", ch)
			}
		}
	}
	p.Hash ^= zobristCastle[p.CastleRights]

	if fields[3] != "-" {
		sq, err := SquareFromString(fields[3])
		if err != nil {
			return nil, fmt.Errorf("board: invalid FEN en passant square: %w", err)
		}
		p.EpSquare = sq
		p.Hash ^= zobristEnpassant[sq]
	}

	half, err := strconv.Atoi(fields[4])
	if err != nil {
		return nil, fmt.Errorf("board: invalid FEN halfmove clock %q", fields[4])
	}
	p.HalfMoveClock = half

	full, err := strconv.Atoi(fields[5])
	if err != nil {
		return nil, fmt.Errorf("board: invalid FEN fullmove number %q", fields[5])
	}
	p.FullMoveNumber = full

	p.history = append(p.history, p.Hash)
	return p, nil
}

// String renders the position as a FEN string.
func (p *Position) String() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			pc := p.board[RankFile(rank, file)]
			if pc == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteByte(pieceToFEN[pc])
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}
	sb.WriteByte(' ')
	sb.WriteString(p.SideToMove.String())
	sb.WriteByte(' ')
	sb.WriteString(p.CastleRights.String())
	sb.WriteByte(' ')
	sb.WriteString(p.EpSquare.String())
	fmt.Fprintf(&sb, " %d %d", p.HalfMoveClock, p.FullMoveNumber)
	return sb.String()
}

// put places piece p on sq, updating bitboards, mailbox, hash and tapered
// scores. sq must currently be empty.
func (p *Position) put(piece Piece, sq Square) {
	bb := sq.Bitboard()
	p.pieces[piece] |= bb
	p.colorBB[piece.Color()] |= bb
	p.allBB |= bb
	p.board[sq] = piece
	p.Hash ^= zobristPiece[piece][sq]
	mg, eg := psqtDelta(piece, sq)
	p.MgScore += mg
	p.EgScore += eg
	p.Phase += phaseWeight[piece.Type()]
}

// remove takes piece p off sq (p must be the piece occupying sq).
func (p *Position) remove(piece Piece, sq Square) {
	bb := sq.Bitboard()
	p.pieces[piece] &^= bb
	p.colorBB[piece.Color()] &^= bb
	p.allBB &^= bb
	p.board[sq] = NoPiece
	p.Hash ^= zobristPiece[piece][sq]
	mg, eg := psqtDelta(piece, sq)
	p.MgScore -= mg
	p.EgScore -= eg
	p.Phase -= phaseWeight[piece.Type()]
}

// PieceAt returns the piece occupying sq, or NoPiece.
func (p *Position) PieceAt(sq Square) Piece { return p.board[sq] }

// PieceBB returns the bitboard for a specific color+type.
func (p *Position) PieceBB(c Color, pt PieceType) Bitboard { return p.pieces[MakePiece(c, pt)] }

// ColorBB returns all pieces of a given color.
func (p *Position) ColorBB(c Color) Bitboard { return p.colorBB[c] }

// AllBB returns full board occupancy.
func (p *Position) AllBB() Bitboard { return p.allBB }

// KingSquare returns the square of c's king.
func (p *Position) KingSquare(c Color) Square {
	return Square(trailingZeros(uint64(p.pieces[MakePiece(c, King)])))
}

// TaperedScore returns the tapered centipawn score from the side-to-move's
// perspective. Additional positional terms are added by Evaluate; this is
// just the incremental PSQT/material component.
func (p *Position) TaperedScore() int {
	phase := p.Phase
	if phase > startPhase {
		phase = startPhase
	}
	if phase < 0 {
		phase = 0
	}
	score := (p.MgScore*phase + p.EgScore*(startPhase-phase)) / startPhase
	if p.SideToMove == Black {
		return -score
	}
	return score
}

// IsSquareAttacked reports whether sq is attacked by any piece of color by.
func (p *Position) IsSquareAttacked(sq Square, by Color) bool {
	enemyPawns := p.PieceBB(by, Pawn)
	if PawnAttacks(by.Opposite(), sq)&enemyPawns != 0 {
		return true
	}
	if KnightAttacks(sq)&p.PieceBB(by, Knight) != 0 {
		return true
	}
	if KingAttacks(sq)&p.PieceBB(by, King) != 0 {
		return true
	}
	bishopsQueens := p.PieceBB(by, Bishop) | p.PieceBB(by, Queen)
	if BishopAttacks(sq, p.allBB)&bishopsQueens != 0 {
		return true
	}
	rooksQueens := p.PieceBB(by, Rook) | p.PieceBB(by, Queen)
	if RookAttacks(sq, p.allBB)&rooksQueens != 0 {
		return true
	}
	return false
}

// InCheck reports whether c's king is currently attacked.
func (p *Position) InCheck(c Color) bool {
	return p.IsSquareAttacked(p.KingSquare(c), c.Opposite())
}

// castlingRookSquares returns the rook's piece, home square and post-castle
// square for a king moving to kingEnd (must be C1/G1/C8/G8).
func castlingRookSquares(kingEnd Square) (piece Piece, from, to Square) {
	switch kingEnd {
	case SquareG1:
		return MakePiece(White, Rook), SquareH1, SquareF1
	case SquareC1:
		return MakePiece(White, Rook), SquareA1, SquareD1
	case SquareG8:
		return MakePiece(Black, Rook), SquareH8, SquareF8
	case SquareC8:
		return MakePiece(Black, Rook), SquareA8, SquareD8
	}
	panic("board: invalid castle king destination")
}

// MakeMove mutates p in place applying m and pushes an undo record. m is
// assumed pseudo-legal; callers must check InCheck after making and unmake
// illegal moves (see IsLegalLastMove).
func (p *Position) MakeMove(m Move) error {
	src, dst, flag := m.Source(), m.Target(), m.Flag()
	us := p.SideToMove
	them := us.Opposite()

	moving := p.board[src]
	if moving == NoPiece || moving.Color() != us {
		return fmt.Errorf("board: make_move: no %s piece on %s", us, src)
	}

	rec := undoRecord{
		move:          m,
		captured:      NoPiece,
		captureSquare: NoSquare,
		castleRights:  p.CastleRights,
		epSquare:      p.EpSquare,
		halfMoveClock: p.HalfMoveClock,
		hash:          p.Hash,
		mgScore:       p.MgScore,
		egScore:       p.EgScore,
		phase:         p.Phase,
		irreversible:  p.irreversiblePly,
	}

	// Clear previous en passant hash contribution; recomputed below.
	if p.EpSquare != NoSquare {
		p.Hash ^= zobristEnpassant[p.EpSquare]
	}
	p.EpSquare = NoSquare

	p.remove(moving, src)

	if flag.IsCapture() {
		capSq := dst
		if flag == FlagEnPassant {
			if us == White {
				capSq = dst - 8
			} else {
				capSq = dst + 8
			}
		}
		victim := p.board[capSq]
		if victim == NoPiece {
			return fmt.Errorf("board: make_move: capture flag but no piece on %s", capSq)
		}
		p.remove(victim, capSq)
		rec.captured = victim
		rec.captureSquare = capSq
	}

	placed := moving
	if flag.IsPromotion() {
		placed = MakePiece(us, flag.PromotionType())
	}
	p.put(placed, dst)

	if flag == FlagCastleKS || flag == FlagCastleQS {
		rookPiece, rookFrom, rookTo := castlingRookSquares(dst)
		p.remove(rookPiece, rookFrom)
		p.put(rookPiece, rookTo)
	}

	// Castling-rights update: any move touching a king/rook home square
	// (as source or destination, covering rook capture on its home
	// square per the source's convention) revokes the matching bits.
	newRights := p.CastleRights &^ castleLostMask[src] &^ castleLostMask[dst]
	p.Hash ^= zobristCastle[p.CastleRights]
	p.CastleRights = newRights
	p.Hash ^= zobristCastle[p.CastleRights]

	if flag == FlagDoublePush {
		var epSq Square
		if us == White {
			epSq = src + 8
		} else {
			epSq = src - 8
		}
		// Only hash the ep square if an enemy pawn could actually
		// capture there, matching invariant I6's intent.
		if PawnAttacks(us, epSq)&p.PieceBB(them, Pawn) != 0 {
			p.EpSquare = epSq
			p.Hash ^= zobristEnpassant[epSq]
		}
	}

	if moving.Type() == Pawn || flag.IsCapture() {
		p.HalfMoveClock = 0
	} else {
		p.HalfMoveClock++
	}

	if us == Black {
		p.FullMoveNumber++
	}

	p.SideToMove = them
	p.Hash ^= zobristColor

	if moving.Type() == Pawn || flag.IsCapture() || flag == FlagCastleKS || flag == FlagCastleQS || rec.castleRights != p.CastleRights {
		p.irreversiblePly = len(p.history)
	}
	p.history = append(p.history, p.Hash)
	p.undo = append(p.undo, rec)
	return nil
}

// UnmakeMove reverses the most recent MakeMove call using the pushed undo
// record; no recomputation is needed.
func (p *Position) UnmakeMove() {
	n := len(p.undo)
	rec := p.undo[n-1]
	p.undo = p.undo[:n-1]
	p.history = p.history[:len(p.history)-1]

	them := p.SideToMove
	us := them.Opposite()
	p.SideToMove = us

	m := rec.move
	src, dst, flag := m.Source(), m.Target(), m.Flag()

	placed := p.board[dst]
	p.remove(placed, dst)

	if flag == FlagCastleKS || flag == FlagCastleQS {
		rookPiece, rookFrom, rookTo := castlingRookSquares(dst)
		p.remove(rookPiece, rookTo)
		p.put(rookPiece, rookFrom)
	}

	moving := placed
	if flag.IsPromotion() {
		moving = MakePiece(us, Pawn)
	}
	p.put(moving, src)

	if rec.captured != NoPiece {
		p.put(rec.captured, rec.captureSquare)
	}

	p.CastleRights = rec.castleRights
	p.EpSquare = rec.epSquare
	p.HalfMoveClock = rec.halfMoveClock
	p.Hash = rec.hash
	p.MgScore = rec.mgScore
	p.EgScore = rec.egScore
	p.Phase = rec.phase

	if us == Black {
		p.FullMoveNumber--
	}
	p.irreversiblePly = rec.irreversible
}

// MakeNullMove flips side to move without moving a piece; illegal while in
// check (callers must check InCheck before calling).
func (p *Position) MakeNullMove() {
	rec := undoRecord{
		move:          NoMove,
		captured:      NoPiece,
		captureSquare: NoSquare,
		castleRights:  p.CastleRights,
		epSquare:      p.EpSquare,
		halfMoveClock: p.HalfMoveClock,
		hash:          p.Hash,
		mgScore:       p.MgScore,
		egScore:       p.EgScore,
		phase:         p.Phase,
	}
	if p.EpSquare != NoSquare {
		p.Hash ^= zobristEnpassant[p.EpSquare]
		p.EpSquare = NoSquare
	}
	p.SideToMove = p.SideToMove.Opposite()
	p.Hash ^= zobristColor
	p.history = append(p.history, p.Hash)
	p.undo = append(p.undo, rec)
}

// UnmakeNullMove reverses MakeNullMove.
func (p *Position) UnmakeNullMove() {
	n := len(p.undo)
	rec := p.undo[n-1]
	p.undo = p.undo[:n-1]
	p.history = p.history[:len(p.history)-1]
	p.SideToMove = p.SideToMove.Opposite()
	p.CastleRights = rec.castleRights
	p.EpSquare = rec.epSquare
	p.HalfMoveClock = rec.halfMoveClock
	p.Hash = rec.hash
	p.MgScore = rec.mgScore
	p.EgScore = rec.egScore
	p.Phase = rec.phase
}

// IsRepetition reports whether the current hash has already occurred at
// least once since the last irreversible move (a twofold repetition,
// counting the current occurrence as the second).
func (p *Position) IsRepetition() bool {
	cur := p.Hash
	count := 0
	for i := len(p.history) - 1; i >= p.irreversiblePly; i-- {
		if p.history[i] == cur {
			count++
			if count >= 2 {
				return true
			}
		}
	}
	return false
}

// IsFiftyMoveDraw reports whether the halfmove clock has reached 100.
func (p *Position) IsFiftyMoveDraw() bool { return p.HalfMoveClock >= 100 }

// Verify checks invariants I1-I3 and returns a descriptive error if any is
// violated; intended for debug/test builds, not the hot path.
func (p *Position) Verify() error {
	if p.colorBB[White]&p.colorBB[Black] != 0 {
		return fmt.Errorf("board: verify: white/black occupancy overlap")
	}
	if p.allBB != p.colorBB[White]|p.colorBB[Black] {
		return fmt.Errorf("board: verify: allBB mismatch")
	}
	for _, c := range []Color{White, Black} {
		var union Bitboard
		for pt := Pawn; pt <= King; pt++ {
			union |= p.pieces[MakePiece(c, pt)]
		}
		if union != p.colorBB[c] {
			return fmt.Errorf("board: verify: %s figure union != color occupancy", c)
		}
		if p.pieces[MakePiece(c, King)].Popcnt() != 1 {
			return fmt.Errorf("board: verify: %s does not have exactly one king", c)
		}
	}
	return nil
}
