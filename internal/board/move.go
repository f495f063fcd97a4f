package board

// Move is a packed 16-bit move: flag(4) | target(6) | source(6).
type Move uint16

// Flag taxonomy, matching the top 4 bits of a Move.
const (
	FlagQuiet MoveFlag = iota
	FlagDoublePush
	FlagCastleKS
	FlagCastleQS
	FlagCapture
	FlagEnPassant
	_
	_
	FlagPromoN
	FlagPromoB
	FlagPromoR
	FlagPromoQ
	FlagPromoCaptureN
	FlagPromoCaptureB
	FlagPromoCaptureR
	FlagPromoCaptureQ
)

// MoveFlag is the top 4 bits of a Move.
type MoveFlag uint16

// NoMove is the zero move, used as a sentinel (never a legal move since
// source==target==a1).
const NoMove Move = 0

// NullMoveSentinel is the UCI "null move" wire value 0000; it is never
// produced by the generator and is only meaningful at the UCI boundary.
const NullMoveSentinel = "0000"

// MakeMove packs a move from its fields.
func MakeMove(source, target Square, flag MoveFlag) Move {
	return Move(flag)<<12 | Move(target)<<6 | Move(source)
}

// Source returns the origin square.
func (m Move) Source() Square { return Square(m & 0x3f) }

// Target returns the destination square.
func (m Move) Target() Square { return Square((m >> 6) & 0x3f) }

// Flag returns the move's flag.
func (m Move) Flag() MoveFlag { return MoveFlag(m >> 12) }

// IsCapture reports whether the move flag denotes any capture, including ep.
func (f MoveFlag) IsCapture() bool {
	return f == FlagCapture || f == FlagEnPassant || f >= FlagPromoCaptureN
}

// IsPromotion reports whether the move flag denotes a promotion.
func (f MoveFlag) IsPromotion() bool { return f >= FlagPromoN }

// PromotionType returns the promoted-to piece type; only valid when
// IsPromotion is true.
func (f MoveFlag) PromotionType() PieceType {
	switch f {
	case FlagPromoN, FlagPromoCaptureN:
		return Knight
	case FlagPromoB, FlagPromoCaptureB:
		return Bishop
	case FlagPromoR, FlagPromoCaptureR:
		return Rook
	case FlagPromoQ, FlagPromoCaptureQ:
		return Queen
	}
	return NoPieceType
}

var promoSymbol = map[PieceType]byte{Knight: 'n', Bishop: 'b', Rook: 'r', Queen: 'q'}

// UCI renders a move in UCI long algebraic form, e.g. "e2e4" or "e7e8q".
func (m Move) UCI() string {
	s := m.Source().String() + m.Target().String()
	if f := m.Flag(); f.IsPromotion() {
		s += string(promoSymbol[f.PromotionType()])
	}
	return s
}

func (m Move) String() string { return m.UCI() }
