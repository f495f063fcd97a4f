// Command perft counts move-generator nodes at fixed depths and checks
// them against the canonical node counts for standard test positions.
package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/chego-labs/corechess/internal/board"
	"github.com/chego-labs/corechess/internal/perft"
)

var knownPositions = map[string]string{
	"startpos": "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
	"kiwipete": "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
}

var expected = map[string][]uint64{
	"startpos": {1, 20, 400, 8902, 197281, 4865609},
	"kiwipete": {1, 48, 2039, 97862, 4085603, 193690690},
}

func main() {
	fen := flag.String("fen", "startpos", "position to search (name or literal FEN)")
	minDepth := flag.Int("min_depth", 1, "minimum depth")
	maxDepth := flag.Int("max_depth", 5, "maximum depth")
	split := flag.Bool("split", false, "print a divide breakdown at max_depth")
	flag.Parse()

	resolved := *fen
	if s, ok := knownPositions[*fen]; ok {
		resolved = s
	}

	pos, err := board.FromFEN(resolved)
	if err != nil {
		log.Fatalf("perft: invalid --fen: %v", err)
	}

	bar := progressbar.Default(int64(*maxDepth-*minDepth+1), "perft")
	fmt.Printf("depth       nodes   KNps     elapsed  check\n")
	for d := *minDepth; d <= *maxDepth; d++ {
		start := time.Now()
		c := perft.Count(pos, d)
		elapsed := time.Since(start)

		check := ""
		if want, ok := expected[*fen]; ok && d < len(want) {
			if c.Nodes == want[d] {
				check = "good"
			} else {
				check = fmt.Sprintf("BAD want=%d", want[d])
			}
		}
		fmt.Printf("%5d %12d %8.0f %12v  %s\n",
			d, c.Nodes, float64(c.Nodes)/elapsed.Seconds()/1e3, elapsed, check)
		bar.Add(1)
	}

	if *split {
		for uciMove, n := range perft.Divide(pos, *maxDepth) {
			fmt.Printf("%s: %d\n", uciMove, n)
		}
	}
}
