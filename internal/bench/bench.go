// Package bench runs the search to a fixed depth over a small, fixed set
// of historical games and reports node counts and nodes-per-second, as a
// deterministic regression signal for search/eval changes.
package bench

import (
	"time"

	"github.com/chego-labs/corechess/internal/board"
	"github.com/chego-labs/corechess/internal/search"
	"github.com/chego-labs/corechess/internal/ttable"
	"github.com/chego-labs/corechess/internal/uci"
)

// game is a named sequence of UCI moves played from the startpos.
type game struct {
	description string
	moves       []string
}

var games = []game{
	{
		description: "Opera Game (Morphy vs Duke of Brunswick and Count Isouard, 1858)",
		moves: []string{
			"e2e4", "e7e5", "g1f3", "d7d6", "d2d4", "c8g4", "d4e5", "g4f3",
			"d1f3", "d6e5", "f1c4", "g8f6", "f3b3", "d8e7", "b1c3", "c7c6",
			"c1g5", "b7b5", "c3b5", "c6b5", "c4b5", "b8d7", "e1c1", "a8d8",
		},
	},
	{
		description: "Immortal Game (Anderssen vs Kieseritzky, 1851)",
		moves: []string{
			"e2e4", "e7e5", "f2f4", "e5f4", "f1c4", "d8h4", "e1f1", "b7b5",
			"c4b5", "g8f6", "g1f3", "h4h6", "d2d3", "f6h5", "f3h4", "h6g5",
			"h4f5", "c7c6", "g2g4", "h5f6", "h1g1", "c6b5",
		},
	},
	{
		description: "Game of the Century (Byrne vs Fischer, 1956)",
		moves: []string{
			"g1f3", "g8f6", "c2c4", "g7g6", "b1c3", "f8g7", "d2d4", "e8g8",
			"c1f4", "d7d5", "d1b3", "d5c4", "b3c4", "c7c6", "e2e4", "b8d7",
			"a1d1", "d7b6", "c4c5", "c8g4",
		},
	},
}

// Result is one game's benchmark outcome.
type Result struct {
	Description string
	Depth       int
	Nodes       int64
	Elapsed     time.Duration
}

// NPS returns nodes per second for the run.
func (r Result) NPS() int64 {
	if r.Elapsed <= 0 {
		return 0
	}
	return int64(float64(r.Nodes) / r.Elapsed.Seconds())
}

// Run plays every fixture game's move list and searches the resulting
// position to the given fixed depth, returning per-game node counts.
func Run(depth int) ([]Result, error) {
	var results []Result
	for _, g := range games {
		pos := board.NewPosition()
		for _, mv := range g.moves {
			m, err := uci.ParseUCIMove(pos, mv)
			if err != nil {
				return nil, err
			}
			if err := pos.MakeMove(m); err != nil {
				return nil, err
			}
		}

		tt := ttable.New(64)
		eng := search.NewEngine(pos, tt)
		tc := &search.TimeControl{Depth: depth}
		tc.Start(pos.SideToMove == board.White)

		start := time.Now()
		eng.Play(tc)
		elapsed := time.Since(start)

		results = append(results, Result{
			Description: g.description,
			Depth:       depth,
			Nodes:       eng.Nodes(),
			Elapsed:     elapsed,
		})
	}
	return results, nil
}
