// Package game holds the state of one continuing game: the board, the
// transposition table carried from move to move, whose turn it is, and
// the AI search currently in flight, if any.
package game

import (
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/domino14/scorefour/board"
	"github.com/domino14/scorefour/negamax"
)

var (
	ErrColumnFull   = errors.New("column is full")
	ErrGameOver     = errors.New("game is over")
	ErrTaskInFlight = errors.New("an AI move is already being computed")
	ErrNoTask       = errors.New("no AI move is being computed")
)

type Game struct {
	state  board.State
	table  *negamax.TranspositionTable
	onTurn board.Player
	task   *negamax.Task

	history []board.State
	turns   int
}

// NewGame starts an empty game with first to move.
func NewGame(first board.Player) *Game {
	return &Game{
		table:  negamax.NewTranspositionTable(),
		onTurn: first,
	}
}

func (g *Game) State() board.State {
	return g.state
}

func (g *Game) Table() *negamax.TranspositionTable {
	return g.table
}

func (g *Game) OnTurn() board.Player {
	return g.onTurn
}

func (g *Game) Turn() int {
	return g.turns
}

// Winner returns the side with four in a row, or board.Empty.
func (g *Game) Winner() board.Player {
	switch {
	case g.state.Win(board.PlayerA):
		return board.PlayerA
	case g.state.Win(board.PlayerB):
		return board.PlayerB
	}
	return board.Empty
}

// Over reports whether someone has won or the board is full.
func (g *Game) Over() bool {
	return g.Winner() != board.Empty || g.state.Full()
}

// Thinking reports whether an AI move is in flight.
func (g *Game) Thinking() bool {
	return g.task != nil
}

// Play drops a stone for the side on turn into col.
func (g *Game) Play(col board.Column) error {
	if g.task != nil {
		return ErrTaskInFlight
	}
	if g.Over() {
		return ErrGameOver
	}
	next := g.state
	if !next.Add(col.X, col.Y, g.onTurn) {
		return ErrColumnFull
	}
	g.advance(next)
	return nil
}

func (g *Game) advance(next board.State) {
	g.history = append(g.history, g.state)
	g.state = next
	g.onTurn = g.onTurn.Other()
	g.turns++
}

// StartAI begins computing the move of the side on turn in the
// background. Only one search may be in flight at a time.
func (g *Game) StartAI(solver *negamax.Solver) error {
	if g.task != nil {
		return ErrTaskInFlight
	}
	if g.Over() {
		return ErrGameOver
	}
	log.Debug().Int("turn", g.turns).Str("player", g.onTurn.String()).
		Uint64("board-hash", g.state.Hash()).Msg("starting-ai-move")
	g.task = solver.Start(g.state, g.onTurn, g.table)
	return nil
}

// Poll checks the search without blocking. When it has finished, its move
// and table replace the game's and Poll returns true.
func (g *Game) Poll() bool {
	if g.task == nil {
		return false
	}
	sol, ok := g.task.Result()
	if !ok {
		return false
	}
	g.finish(sol)
	return true
}

// WaitAI blocks until the search in flight finishes and applies it.
func (g *Game) WaitAI() (negamax.Solution, error) {
	if g.task == nil {
		return negamax.Solution{}, ErrNoTask
	}
	sol := g.task.Wait()
	g.finish(sol)
	return sol, nil
}

func (g *Game) finish(sol negamax.Solution) {
	g.task = nil
	if sol.Table != nil {
		g.table = sol.Table
	}
	if sol.Found {
		g.advance(sol.State)
	}
}

// Undo takes back the last move. It returns false if there is nothing to
// take back or a search is in flight.
func (g *Game) Undo() bool {
	if g.task != nil || len(g.history) == 0 {
		return false
	}
	g.state = g.history[len(g.history)-1]
	g.history = g.history[:len(g.history)-1]
	g.onTurn = g.onTurn.Other()
	g.turns--
	return true
}
