// Package notation implements a small, hand-written EPD (Extended
// Position Description) reader for labelled test positions (mate-in-N,
// best-move suites); no other package in this repository calls it.
// The source repo generates its EPD grammar with goyacc; a full parser
// generator is unwarranted for the handful of opcodes this engine's tests
// actually need (bm, id, c0), so this is a direct line scanner instead.
package notation

import (
	"fmt"
	"strings"

	"github.com/chego-labs/corechess/internal/board"
)

// EPD is one parsed EPD record: a position plus its labelled opcodes.
type EPD struct {
	Position *board.Position
	ID       string
	BestMove []string // raw SAN/UCI-ish tokens from the bm opcode, unresolved
	Comment  string
}

// Parse reads a single EPD line: four FEN-style fields (no halfmove/
// fullmove counters) followed by semicolon-terminated "opcode operands;"
// groups.
func Parse(line string) (*EPD, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil, fmt.Errorf("notation: empty EPD line")
	}

	fields := strings.Fields(line)
	if len(fields) < 4 {
		return nil, fmt.Errorf("notation: EPD line needs at least 4 fields, got %d", len(fields))
	}
	fen := strings.Join(fields[0:4], " ") + " 0 1"
	pos, err := board.FromFEN(fen)
	if err != nil {
		return nil, fmt.Errorf("notation: %w", err)
	}

	rest := strings.TrimSpace(strings.Join(fields[4:], " "))
	epd := &EPD{Position: pos}
	for _, op := range splitOpcodes(rest) {
		op = strings.TrimSpace(op)
		if op == "" {
			continue
		}
		parts := strings.SplitN(op, " ", 2)
		name := parts[0]
		var operand string
		if len(parts) > 1 {
			operand = strings.Trim(parts[1], `"`)
		}
		switch name {
		case "bm":
			epd.BestMove = strings.Fields(operand)
		case "id":
			epd.ID = operand
		case "c0":
			epd.Comment = operand
		}
	}
	return epd, nil
}

// splitOpcodes splits on semicolons, respecting quoted operands that may
// themselves contain no semicolons (EPD opcodes never do, so a plain split
// is sufficient here).
func splitOpcodes(s string) []string {
	return strings.Split(s, ";")
}
