package negamax

import (
	"golang.org/x/sync/errgroup"

	"github.com/domino14/scorefour/board"
)

// A Task is one Solve running in the background. It works on private
// copies of the position and table, so the caller may keep using its own
// while the search runs. There is no way to stop a task early.
type Task struct {
	g    errgroup.Group
	done chan struct{}
	sol  Solution
}

// Start launches Solve on a clone of tt and returns immediately.
func (s *Solver) Start(state board.State, player board.Player, tt *TranspositionTable) *Task {
	var cloned *TranspositionTable
	if tt != nil {
		cloned = tt.Clone()
	}
	t := &Task{done: make(chan struct{})}
	t.g.Go(func() error {
		defer close(t.done)
		t.sol = s.Solve(state, player, cloned)
		return nil
	})
	return t
}

// Ready reports, without blocking, whether the search has finished.
func (t *Task) Ready() bool {
	select {
	case <-t.done:
		return true
	default:
		return false
	}
}

// Result returns the solution if the search has finished.
func (t *Task) Result() (Solution, bool) {
	if !t.Ready() {
		return Solution{}, false
	}
	return t.sol, true
}

// Wait blocks until the search finishes.
func (t *Task) Wait() Solution {
	t.g.Wait()
	return t.sol
}
