package search

import (
	"sync/atomic"
	"time"
)

// TimeControl decides how long a single `go` search is allowed to run,
// following the UCI time-control fields (wtime/btime/winc/binc/movetime/
// depth/nodes/infinite).
type TimeControl struct {
	WTime, BTime     time.Duration
	WInc, BInc       time.Duration
	MoveTime         time.Duration
	MovesToGo        int
	Depth            int
	Nodes            int64
	Infinite         bool

	start    time.Time
	deadline time.Time
	stopped  int32
}

const safetyMargin = 25 * time.Millisecond

// Start computes the deadline for the side to move (white reports whether
// it is White) and records the search start time.
func (tc *TimeControl) Start(white bool) {
	tc.start = time.Now()
	atomic.StoreInt32(&tc.stopped, 0)

	if tc.Infinite || tc.Depth > 0 || tc.Nodes > 0 {
		tc.deadline = time.Time{}
		return
	}
	if tc.MoveTime > 0 {
		budget := tc.MoveTime - safetyMargin
		if budget < 0 {
			budget = 0
		}
		tc.deadline = tc.start.Add(budget)
		return
	}

	remaining, inc := tc.BTime, tc.BInc
	if white {
		remaining, inc = tc.WTime, tc.WInc
	}
	if remaining == 0 {
		tc.deadline = time.Time{}
		return
	}
	movesToGo := tc.MovesToGo
	if movesToGo <= 0 {
		movesToGo = 30
	}
	budget := remaining/time.Duration(movesToGo) + inc*8/10
	if budget > remaining-safetyMargin {
		budget = remaining - safetyMargin
	}
	if budget < 0 {
		budget = 0
	}
	tc.deadline = tc.start.Add(budget)
}

// Elapsed returns time since Start.
func (tc *TimeControl) Elapsed() time.Duration { return time.Since(tc.start) }

// ShouldStop reports whether the deadline has passed or Stop was called.
func (tc *TimeControl) ShouldStop() bool {
	if atomic.LoadInt32(&tc.stopped) != 0 {
		return true
	}
	if tc.deadline.IsZero() {
		return false
	}
	return time.Now().After(tc.deadline)
}

// Stop requests immediate termination (the UCI `stop` command).
func (tc *TimeControl) Stop() { atomic.StoreInt32(&tc.stopped, 1) }

// Stopped reports whether Stop has been called.
func (tc *TimeControl) Stopped() bool { return atomic.LoadInt32(&tc.stopped) != 0 }

// NodesExceeded reports whether searched has reached the `go nodes` budget;
// always false when no node budget was given.
func (tc *TimeControl) NodesExceeded(searched int64) bool {
	return tc.Nodes > 0 && searched >= tc.Nodes
}
