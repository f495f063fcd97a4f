// Command bench runs the fixed-depth node-count benchmark, prints each
// game's node count and nodes per second, and prints a colorized total; the
// counts are not compared against any expected values.
package main

import (
	"flag"
	"fmt"

	"github.com/fatih/color"

	"github.com/chego-labs/corechess/internal/bench"
)

func main() {
	depth := flag.Int("depth", 8, "fixed search depth for every benchmark game")
	flag.Parse()

	results, err := bench.Run(*depth)
	if err != nil {
		color.Red("bench: %v", err)
		return
	}

	total := int64(0)
	for _, r := range results {
		total += r.Nodes
		fmt.Printf("%-55s depth=%-2d nodes=%-10d nps=%d\n", r.Description, r.Depth, r.Nodes, r.NPS())
	}
	color.Green("total nodes: %d", total)
}
