// Package ttable implements the transposition table: a fixed-size,
// power-of-two array of entries indexed by Zobrist hash, with a
// depth-and-generation replacement policy.
package ttable

import "github.com/chego-labs/corechess/internal/board"

// Bound records which side of the search window an entry's score is valid
// for.
type Bound uint8

const (
	BoundExact Bound = iota
	BoundLower
	BoundUpper
)

type entry struct {
	key   uint64
	move  board.Move
	score int16
	depth int8
	bound Bound
	gen   uint8
}

// Table is a transposition table. The zero value is not usable; call New.
type Table struct {
	entries []entry
	mask    uint64
	gen     uint8
}

// New allocates a table sized to the nearest power-of-two number of entries
// that fits within sizeMB megabytes.
func New(sizeMB int) *Table {
	if sizeMB <= 0 {
		sizeMB = 1
	}
	bytes := uint64(sizeMB) << 20
	var entrySize uint64 = 16 // approximate packed size of entry
	count := bytes / entrySize
	size := uint64(1)
	for size*2 <= count {
		size *= 2
	}
	if size == 0 {
		size = 1
	}
	return &Table{entries: make([]entry, size), mask: size - 1}
}

// Clear wipes all entries (used on ucinewgame).
func (t *Table) Clear() {
	for i := range t.entries {
		t.entries[i] = entry{}
	}
	t.gen = 0
}

// NewSearch bumps the generation counter so stale entries from a previous
// `go` command can be overwritten regardless of their stored depth.
func (t *Table) NewSearch() { t.gen++ }

func (t *Table) index(key uint64) uint64 { return key & t.mask }

// Probe looks up key. ok is false on a miss or a hash-collision mismatch.
func (t *Table) Probe(key uint64, ply int) (score int, move board.Move, depth int, bound Bound, ok bool) {
	e := &t.entries[t.index(key)]
	if e.key != key {
		return 0, board.NoMove, 0, 0, false
	}
	return unadjustMate(int(e.score), ply), e.move, int(e.depth), e.bound, true
}

// Store records a search result. Replacement favours deeper searches, and
// always replaces entries from an older generation regardless of depth.
func (t *Table) Store(key uint64, score int, move board.Move, depth int, bound Bound, ply int) {
	e := &t.entries[t.index(key)]
	if int(e.depth) > depth && e.gen == t.gen {
		// Keep the existing deeper same-generation entry, but still
		// refresh its move if it is for this key and lacked one.
		if e.key == key && move != board.NoMove && e.move == board.NoMove {
			e.move = move
		}
		return
	}
	e.key = key
	e.score = int16(adjustMate(score, ply))
	if move != board.NoMove {
		e.move = move
	}
	e.depth = int8(depth)
	e.bound = bound
	e.gen = t.gen
}

// Hashfull returns the per-mille fill ratio sampled over the first 1000
// entries, as reported in the UCI `info hashfull` field.
func (t *Table) Hashfull() int {
	n := len(t.entries)
	if n > 1000 {
		n = 1000
	}
	used := 0
	for i := 0; i < n; i++ {
		if t.entries[i].key != 0 {
			used++
		}
	}
	return used * 1000 / max(n, 1)
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

const mateScoreThreshold = 29000

// adjustMate re-roots a mate score to be ply-agnostic before storing: a
// mate distance counted from the root becomes one counted from this node.
func adjustMate(score, ply int) int {
	if score > mateScoreThreshold {
		return score + ply
	}
	if score < -mateScoreThreshold {
		return score - ply
	}
	return score
}

// unadjustMate reverses adjustMate when probing, re-rooting the stored
// value to the current search ply.
func unadjustMate(score, ply int) int {
	if score > mateScoreThreshold {
		return score - ply
	}
	if score < -mateScoreThreshold {
		return score + ply
	}
	return score
}
