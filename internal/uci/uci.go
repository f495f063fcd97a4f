// Package uci implements the line-oriented UCI message contract: parsing
// commands and mapping them onto board/search operations, and formatting
// `info`/`bestmove` responses. Handler.Run is the line read loop over any
// io.Reader/io.Writer pair; cmd/corechess only connects it to stdin/stdout.
package uci

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/chego-labs/corechess/internal/board"
	"github.com/chego-labs/corechess/internal/corelog"
	"github.com/chego-labs/corechess/internal/search"
	"github.com/chego-labs/corechess/internal/ttable"
)

const (
	engineName   = "corechess"
	engineAuthor = "chego-labs"
	defaultHashMB = 64
)

// Handler reads UCI commands from in and writes responses to out until
// `quit` is received or in is closed.
type Handler struct {
	in  *bufio.Scanner
	out io.Writer
	mu  sync.Mutex // serializes writes to out

	pos *board.Position
	tt  *ttable.Table
	eng *search.Engine

	tc      *search.TimeControl
	group   *errgroup.Group
	cancel  context.CancelFunc
	playing bool
}

// New builds a Handler with a freshly allocated transposition table of
// hashMB megabytes.
func New(in io.Reader, out io.Writer, hashMB int) *Handler {
	if hashMB <= 0 {
		hashMB = defaultHashMB
	}
	pos := board.NewPosition()
	tt := ttable.New(hashMB)
	h := &Handler{
		in:  bufio.NewScanner(in),
		out: out,
		pos: pos,
		tt:  tt,
	}
	h.in.Buffer(make([]byte, 0, 64*1024), 1<<20)
	h.eng = search.NewEngine(h.pos, h.tt)
	h.eng.Log = &infoLogger{h: h}
	return h
}

// Run processes commands until quit/EOF and returns the process exit code.
func (h *Handler) Run() int {
	for h.in.Scan() {
		line := strings.TrimSpace(h.in.Text())
		if line == "" {
			continue
		}
		if exit, code := h.dispatch(line); exit {
			return code
		}
	}
	return 0
}

func (h *Handler) writeln(s string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	fmt.Fprintln(h.out, s)
}

func (h *Handler) dispatch(line string) (exit bool, code int) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, 0
	}
	switch fields[0] {
	case "uci":
		h.handleUCI()
	case "isready":
		h.writeln("readyok")
	case "ucinewgame":
		h.waitIdle()
		h.eng.NewGame()
	case "position":
		h.waitIdle()
		if err := h.handlePosition(fields[1:]); err != nil {
			corelog.Engine.Warningf("position: %v", err)
			h.writeln("info string " + err.Error())
		}
	case "go":
		h.waitIdle()
		h.handleGo(fields[1:])
	case "stop":
		if h.tc != nil {
			h.tc.Stop()
		}
		h.waitIdle()
	case "setoption":
		h.handleSetOption(line)
	case "quit":
		if h.tc != nil {
			h.tc.Stop()
		}
		h.waitIdle()
		return true, 0
	default:
		h.writeln("info string unknown command " + fields[0])
	}
	return false, 0
}

func (h *Handler) waitIdle() {
	if h.group == nil {
		return
	}
	h.group.Wait()
	h.group = nil
}

func (h *Handler) handleUCI() {
	h.writeln(fmt.Sprintf("id name %s", engineName))
	h.writeln(fmt.Sprintf("id author %s", engineAuthor))
	h.writeln("option name Hash type spin default 64 min 1 max 4096")
	h.writeln("option name Clear Hash type button")
	h.writeln("uciok")
}

func (h *Handler) handlePosition(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("position: missing arguments")
	}
	var pos *board.Position
	var err error
	idx := 0
	switch args[0] {
	case "startpos":
		pos = board.NewPosition()
		idx = 1
	case "fen":
		end := len(args)
		for i, a := range args[1:] {
			if a == "moves" {
				end = i + 1
				break
			}
		}
		fen := strings.Join(args[1:end], " ")
		pos, err = board.FromFEN(fen)
		if err != nil {
			return err
		}
		idx = end + 1
	default:
		return fmt.Errorf("position: expected startpos or fen, got %q", args[0])
	}

	if idx < len(args) && args[idx] == "moves" {
		idx++
		for ; idx < len(args); idx++ {
			m, err := ParseUCIMove(pos, args[idx])
			if err != nil {
				return fmt.Errorf("position: illegal move %q: %w", args[idx], err)
			}
			if err := pos.MakeMove(m); err != nil {
				return fmt.Errorf("position: applying %q: %w", args[idx], err)
			}
		}
	}

	h.pos = pos
	h.eng = search.NewEngine(h.pos, h.tt)
	h.eng.Log = &infoLogger{h: h}
	return nil
}

func (h *Handler) handleGo(args []string) {
	tc := &search.TimeControl{}
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "wtime":
			i++
			tc.WTime = parseMS(args, i)
		case "btime":
			i++
			tc.BTime = parseMS(args, i)
		case "winc":
			i++
			tc.WInc = parseMS(args, i)
		case "binc":
			i++
			tc.BInc = parseMS(args, i)
		case "movetime":
			i++
			tc.MoveTime = parseMS(args, i)
		case "movestogo":
			i++
			tc.MovesToGo = parseInt(args, i)
		case "depth":
			i++
			tc.Depth = parseInt(args, i)
		case "nodes":
			i++
			tc.Nodes = int64(parseInt(args, i))
		case "infinite":
			tc.Infinite = true
		}
	}
	tc.Start(h.pos.SideToMove == board.White)
	h.tc = tc

	ctx, cancel := context.WithCancel(context.Background())
	h.cancel = cancel
	g, _ := errgroup.WithContext(ctx)
	h.group = g
	g.Go(func() error {
		best, _ := h.eng.Play(tc)
		move := "0000"
		if best != board.NoMove {
			move = best.UCI()
		}
		h.writeln("bestmove " + move)
		return nil
	})
}

func parseMS(args []string, i int) time.Duration {
	return time.Duration(parseInt(args, i)) * time.Millisecond
}

func parseInt(args []string, i int) int {
	if i >= len(args) {
		return 0
	}
	v, _ := strconv.Atoi(args[i])
	return v
}

var setOptionRe = regexp.MustCompile(`(?i)^setoption\s+name\s+(.+?)\s*(?:\s+value\s+(.*))?$`)

func (h *Handler) handleSetOption(line string) {
	m := setOptionRe.FindStringSubmatch(line)
	if m == nil {
		return
	}
	name := strings.ToLower(strings.TrimSpace(m[1]))
	value := strings.TrimSpace(m[2])
	switch name {
	case "clear hash":
		h.tt.Clear()
	case "hash":
		mb, err := strconv.Atoi(value)
		if err == nil && mb > 0 {
			h.tt = ttable.New(mb)
			h.eng = search.NewEngine(h.pos, h.tt)
			h.eng.Log = &infoLogger{h: h}
		}
	}
}

// infoLogger adapts search.Info to the UCI `info` line format.
type infoLogger struct{ h *Handler }

func (l *infoLogger) Info(info search.Info) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "info depth %d seldepth %d", info.Depth, info.SelDepth)
	if info.Mate != 0 {
		fmt.Fprintf(&sb, " score mate %d", info.Mate)
	} else {
		fmt.Fprintf(&sb, " score cp %d", info.ScoreCP)
	}
	fmt.Fprintf(&sb, " nodes %d nps %d time %d hashfull %d",
		info.Nodes, info.NPS, info.Time.Milliseconds(), info.Hashfull)
	if len(info.PV) > 0 {
		sb.WriteString(" pv")
		for _, m := range info.PV {
			sb.WriteByte(' ')
			sb.WriteString(m.UCI())
		}
	}
	l.h.writeln(sb.String())
}
