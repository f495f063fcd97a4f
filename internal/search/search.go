// Package search implements iterative-deepening fail-soft alpha-beta search
// with quiescence, null-move pruning, late-move reduction, aspiration
// windows and transposition-table-backed move ordering.
package search

import (
	"math/bits"
	"time"

	"github.com/chego-labs/corechess/internal/board"
	"github.com/chego-labs/corechess/internal/ttable"
)

const (
	Infinity   = 32000
	MateScore  = 30000
	MatedScore = -MateScore
)

// Info is emitted after every completed iterative-deepening depth (and, for
// a UCI consumer, turned into an `info ...` line).
type Info struct {
	Depth, SelDepth int
	ScoreCP         int
	Mate            int // nonzero: distance to mate (sign = winner)
	Nodes           int64
	NPS             int64
	Time            time.Duration
	Hashfull        int
	PV              []board.Move
}

// Logger receives search progress; a no-op implementation is fine for
// library callers that don't need UCI output.
type Logger interface {
	Info(Info)
}

type NopLogger struct{}

func (NopLogger) Info(Info) {}

// Engine ties a mutable Position to a transposition table and per-search
// ordering state (killers/history), and drives the search.
type Engine struct {
	Pos *board.Position
	TT  *ttable.Table
	Log Logger

	order *orderingState
	nodes int64
	selDepth int
	tc    *TimeControl

	pvLine [maxPly][maxPly]board.Move
	pvLen  [maxPly]int

	rootBestMove board.Move
}

// NewEngine builds an Engine over pos and tt; pos is retained and mutated
// in place during search.
func NewEngine(pos *board.Position, tt *ttable.Table) *Engine {
	return &Engine{Pos: pos, TT: tt, Log: NopLogger{}, order: newOrderingState()}
}

// Nodes returns the node count from the most recent Play call.
func (e *Engine) Nodes() int64 { return e.nodes }

// shouldStop reports whether the search must stop now, on either the
// time-control deadline/stop flag or the `go nodes` budget.
func (e *Engine) shouldStop() bool {
	return e.tc.ShouldStop() || e.tc.NodesExceeded(e.nodes)
}

// NewGame clears the transposition table and ordering heuristics, as
// required by the UCI `ucinewgame` command.
func (e *Engine) NewGame() {
	e.TT.Clear()
	e.order.clearKillers()
	e.order.clearHistory()
}

const checkpointNodes = 2048

// Play runs iterative deepening under tc and returns the best move found
// from the deepest fully completed depth (or from depth 1 if that was cut
// short), plus its score (centipawns, from the side-to-move's perspective).
func (e *Engine) Play(tc *TimeControl) (board.Move, int) {
	e.tc = tc
	e.nodes = 0
	e.TT.NewSearch()

	maxDepth := tc.Depth
	if maxDepth <= 0 || maxDepth > 64 {
		maxDepth = 64
	}

	var bestMove board.Move
	bestScore := 0
	estimate := 0

	for depth := 1; depth <= maxDepth; depth++ {
		e.selDepth = 0
		score, completed := e.searchRoot(depth, estimate)
		if !completed {
			break
		}
		bestScore = score
		estimate = score
		bestMove = e.rootBestMove

		elapsed := tc.Elapsed()
		nps := int64(0)
		if elapsed > 0 {
			nps = int64(float64(e.nodes) / elapsed.Seconds())
		}
		info := Info{
			Depth:    depth,
			SelDepth: e.selDepth,
			Nodes:    e.nodes,
			NPS:      nps,
			Time:     elapsed,
			Hashfull: e.TT.Hashfull(),
			PV:       append([]board.Move(nil), e.pvLine[0][:e.pvLen[0]]...),
		}
		if score > MateScore-maxPly {
			info.Mate = (MateScore - score + 1) / 2
		} else if score < -MateScore+maxPly {
			info.Mate = -(MateScore + score + 1) / 2
		} else {
			info.ScoreCP = score
		}
		e.Log.Info(info)

		if e.shouldStop() {
			break
		}
		if score > MateScore-maxPly || score < -MateScore+maxPly {
			// A forced mate has been found; no need to search deeper.
			break
		}
	}

	return bestMove, bestScore
}

// searchRoot runs one iterative-deepening iteration with an aspiration
// window around estimate, widening and retrying on fail-low/fail-high.
// completed is false if the search was cut short by the time control
// before finishing this depth (its result must then be discarded); depth 1
// always reports completed, so a move is available even when stopped early.
func (e *Engine) searchRoot(depth, estimate int) (score int, completed bool) {
	delta := 50
	alpha, beta := -Infinity, Infinity
	if depth >= 4 {
		alpha, beta = estimate-delta, estimate+delta
	}

	for {
		e.pvLen[0] = 0
		score = e.alphaBeta(depth, 0, alpha, beta, true)

		if e.shouldStop() && depth > 1 {
			return 0, false
		}
		if score <= alpha {
			alpha -= delta
			delta *= 2
			if alpha < -Infinity {
				alpha = -Infinity
			}
			continue
		}
		if score >= beta {
			beta += delta
			delta *= 2
			if beta > Infinity {
				beta = Infinity
			}
			continue
		}
		return score, true
	}
}

func ilog2(x int) int {
	if x <= 0 {
		return 0
	}
	return bits.Len(uint(x)) - 1
}

// alphaBeta is the fail-soft negamax core. ply is distance from the root;
// depth is remaining plies to search. isPV marks nodes searched with the
// full window on the principal variation; it is passed down unchanged and
// the PV line is collected at every node regardless of it.
func (e *Engine) alphaBeta(depth, ply int, alpha, beta int, isPV bool) int {
	e.pvLen[ply] = ply
	if ply > e.selDepth {
		e.selDepth = ply
	}

	if ply > 0 {
		if e.Pos.IsRepetition() || e.Pos.IsFiftyMoveDraw() {
			return 0
		}
		// Mate-distance pruning.
		alpha = max(alpha, -MateScore+ply)
		beta = min(beta, MateScore-ply)
		if alpha >= beta {
			return alpha
		}
	}

	e.nodes++
	if e.nodes%checkpointNodes == 0 && e.shouldStop() {
		return 0
	}

	inCheck := e.Pos.InCheck(e.Pos.SideToMove)
	if inCheck {
		depth++
	}

	if depth <= 0 {
		return e.quiescence(alpha, beta, ply)
	}

	hash := e.Pos.Hash
	var hashMove board.Move
	if ttScore, ttMove, ttDepth, ttBound, ok := e.TT.Probe(hash, ply); ok {
		hashMove = ttMove
		if ttDepth >= depth && ply > 0 {
			switch ttBound {
			case ttable.BoundExact:
				return ttScore
			case ttable.BoundLower:
				if ttScore >= beta {
					return ttScore
				}
			case ttable.BoundUpper:
				if ttScore <= alpha {
					return ttScore
				}
			}
		}
	}

	// Null-move pruning: refuse in check, at shallow depth, or with no
	// non-pawn material (zugzwang risk).
	if !inCheck && ply > 0 && depth >= 3 && e.hasNonPawnMaterial(e.Pos.SideToMove) {
		staticEval := board.Evaluate(e.Pos)
		if staticEval >= beta {
			e.Pos.MakeNullMove()
			r := 2
			if depth >= 6 {
				r = 3
			}
			score := -e.alphaBeta(depth-1-r, ply+1, -beta, -beta+1, false)
			e.Pos.UnmakeNullMove()
			if score >= beta {
				return beta
			}
		}
	}

	var list board.MoveList
	e.Pos.GeneratePseudoLegal(&list)
	orderer := newMoveOrderer(e.Pos, &list, e.order, hashMove, ply)

	bestScore := -Infinity
	var bestMove board.Move
	legalMoves := 0
	origAlpha := alpha

	for {
		m, ok := orderer.next()
		if !ok {
			break
		}
		if err := e.Pos.MakeMove(m); err != nil {
			continue
		}
		if !e.Pos.IsLegalLastMove() {
			e.Pos.UnmakeMove()
			continue
		}
		legalMoves++

		var score int
		quiet := !m.Flag().IsCapture() && !m.Flag().IsPromotion()
		givesCheck := e.Pos.InCheck(e.Pos.SideToMove)

		if legalMoves == 1 {
			score = -e.alphaBeta(depth-1, ply+1, -beta, -alpha, isPV)
		} else {
			reduction := 0
			if quiet && !givesCheck && legalMoves >= 3 && depth >= 3 {
				reduction = 1 + ilog2(depth) + ilog2(legalMoves)
				if reduction > depth-2 {
					reduction = depth - 2
				}
				if reduction < 0 {
					reduction = 0
				}
			}
			score = -e.alphaBeta(depth-1-reduction, ply+1, -alpha-1, -alpha, false)
			if score > alpha && reduction > 0 {
				score = -e.alphaBeta(depth-1, ply+1, -alpha-1, -alpha, false)
			}
			if score > alpha && score < beta {
				score = -e.alphaBeta(depth-1, ply+1, -beta, -alpha, true)
			}
		}

		e.Pos.UnmakeMove()

		if score > bestScore {
			bestScore = score
			bestMove = m
			if score > alpha {
				alpha = score
				e.pvLine[ply][ply] = m
				childLen := e.pvLen[ply+1]
				if childLen > ply+1 {
					copy(e.pvLine[ply][ply+1:childLen], e.pvLine[ply+1][ply+1:childLen])
				}
				if childLen < ply+1 {
					childLen = ply + 1
				}
				e.pvLen[ply] = childLen
			}
		}

		if alpha >= beta {
			if quiet {
				e.order.recordKiller(ply, m)
				e.order.recordHistory(m, depth)
			}
			e.TT.Store(hash, bestScore, bestMove, depth, ttable.BoundLower, ply)
			return bestScore
		}
	}

	if legalMoves == 0 {
		if inCheck {
			return -MateScore + ply
		}
		return 0
	}

	bound := ttable.BoundUpper
	if bestScore > origAlpha {
		bound = ttable.BoundExact
	}
	e.TT.Store(hash, bestScore, bestMove, depth, bound, ply)
	if ply == 0 {
		e.rootBestMove = bestMove
	}
	return bestScore
}

// quiescence extends the search through captures and promotions only,
// until the position is quiet, using a stand-pat bound.
func (e *Engine) quiescence(alpha, beta, ply int) int {
	e.nodes++
	if ply > e.selDepth {
		e.selDepth = ply
	}
	if e.nodes%checkpointNodes == 0 && e.shouldStop() {
		return 0
	}

	standPat := board.Evaluate(e.Pos)
	if standPat >= beta {
		return standPat
	}
	if standPat > alpha {
		alpha = standPat
	}
	if ply >= maxPly-1 {
		return standPat
	}

	var list board.MoveList
	e.Pos.GenerateCaptures(&list)
	orderer := newMoveOrderer(e.Pos, &list, e.order, board.NoMove, ply)

	best := standPat
	for {
		m, ok := orderer.next()
		if !ok {
			break
		}
		if isFutile(e.Pos, standPat, alpha, m) {
			continue
		}
		if err := e.Pos.MakeMove(m); err != nil {
			continue
		}
		if !e.Pos.IsLegalLastMove() {
			e.Pos.UnmakeMove()
			continue
		}
		score := -e.quiescence(-beta, -alpha, ply+1)
		e.Pos.UnmakeMove()

		if score > best {
			best = score
			if score > alpha {
				alpha = score
			}
		}
		if alpha >= beta {
			return best
		}
	}
	return best
}

// isFutile prunes hopeless captures in quiescence: if even the best-case
// material swing can't reach alpha, skip making the move.
func isFutile(p *board.Position, standPat, alpha int, m board.Move) bool {
	if m.Flag().IsPromotion() {
		return false
	}
	victim := p.PieceAt(m.Target())
	gain := 100
	if victim != board.NoPiece {
		gain = mvvlvaValue[victim.Type()]
	}
	const futilityMargin = 100
	return standPat+gain+futilityMargin < alpha
}

func (e *Engine) hasNonPawnMaterial(c board.Color) bool {
	return e.Pos.PieceBB(c, board.Knight) != 0 ||
		e.Pos.PieceBB(c, board.Bishop) != 0 ||
		e.Pos.PieceBB(c, board.Rook) != 0 ||
		e.Pos.PieceBB(c, board.Queen) != 0
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
