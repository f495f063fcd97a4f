package search

import "github.com/chego-labs/corechess/internal/board"

// mvvlvaValue is the material value used for the MVV-LVA formula
// 10*victim - aggressor; indices follow board.PieceType.
var mvvlvaValue = [7]int{0, 100, 320, 330, 500, 900, 20000}

const maxPly = 128

// orderingState holds the per-search-tree killer and history tables.
type orderingState struct {
	killers [maxPly][2]board.Move
	history [64][64]int
}

func newOrderingState() *orderingState { return &orderingState{} }

func (o *orderingState) isKiller(ply int, m board.Move) bool {
	return o.killers[ply][0] == m || o.killers[ply][1] == m
}

func (o *orderingState) recordKiller(ply int, m board.Move) {
	if o.killers[ply][0] == m {
		return
	}
	o.killers[ply][1] = o.killers[ply][0]
	o.killers[ply][0] = m
}

func (o *orderingState) recordHistory(m board.Move, depth int) {
	o.history[m.Source()][m.Target()] += depth * depth
}

func (o *orderingState) historyScore(m board.Move) int {
	return o.history[m.Source()][m.Target()]
}

func (o *orderingState) clearKillers() { o.killers = [maxPly][2]board.Move{} }

func (o *orderingState) clearHistory() { o.history = [64][64]int{} }

// scoreMove assigns an ordering priority: hash move first, then MVV-LVA
// captures, then killers, then history-ranked quiets. Higher is searched
// first.
func (o *orderingState) scoreMove(p *board.Position, m, hashMove board.Move, ply int) int {
	if m == hashMove {
		return 1 << 30
	}
	flag := m.Flag()
	if flag.IsCapture() {
		victimSq := m.Target()
		if flag == board.FlagEnPassant {
			// Victim is a pawn regardless of target-square contents.
			return 1<<20 + 10*mvvlvaValue[board.Pawn] - mvvlvaValue[p.PieceAt(m.Source()).Type()]
		}
		victim := p.PieceAt(victimSq)
		aggressor := p.PieceAt(m.Source())
		return 1<<20 + 10*mvvlvaValue[victim.Type()] - mvvlvaValue[aggressor.Type()]
	}
	if o.isKiller(ply, m) {
		return 1 << 19
	}
	return o.historyScore(m)
}

// moveOrderer performs a selection-sort pass: rather than fully sorting the
// list up front, each call to next finds and swaps forward the
// highest-scoring remaining move, so an early beta cutoff never pays for
// ranking moves it will never search.
type moveOrderer struct {
	list    *board.MoveList
	scores  [256]int
	picked  int
}

func newMoveOrderer(p *board.Position, list *board.MoveList, o *orderingState, hashMove board.Move, ply int) *moveOrderer {
	mo := &moveOrderer{list: list}
	for i := 0; i < list.Len(); i++ {
		mo.scores[i] = o.scoreMove(p, list.At(i), hashMove, ply)
	}
	return mo
}

// next returns the next move in priority order, or ok=false when exhausted.
func (mo *moveOrderer) next() (board.Move, bool) {
	if mo.picked >= mo.list.Len() {
		return board.NoMove, false
	}
	best := mo.picked
	for i := mo.picked + 1; i < mo.list.Len(); i++ {
		if mo.scores[i] > mo.scores[best] {
			best = i
		}
	}
	if best != mo.picked {
		mo.list.Swap(mo.picked, best)
		mo.scores[mo.picked], mo.scores[best] = mo.scores[best], mo.scores[mo.picked]
	}
	m := mo.list.At(mo.picked)
	mo.picked++
	return m, true
}
