package game

import (
	"errors"
	"os"
	"testing"
	"time"

	"github.com/matryer/is"
	"github.com/rs/zerolog"

	"github.com/domino14/scorefour/board"
	"github.com/domino14/scorefour/negamax"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	os.Exit(m.Run())
}

func TestPlayAlternates(t *testing.T) {
	is := is.New(t)
	g := NewGame(board.PlayerA)
	is.NoErr(g.Play(board.Column{X: 1, Y: 1}))
	is.Equal(g.OnTurn(), board.PlayerB)
	is.NoErr(g.Play(board.Column{X: 1, Y: 1}))
	st := g.State()
	is.Equal(st.Get(1, 1, 0), board.PlayerA)
	is.Equal(st.Get(1, 1, 1), board.PlayerB)
	is.Equal(g.Turn(), 2)

	is.NoErr(g.Play(board.Column{X: 1, Y: 1}))
	is.NoErr(g.Play(board.Column{X: 1, Y: 1}))
	err := g.Play(board.Column{X: 1, Y: 1})
	is.True(errors.Is(err, ErrColumnFull))
	is.Equal(g.OnTurn(), board.PlayerA) // a rejected move does not pass the turn
}

func TestGameOver(t *testing.T) {
	is := is.New(t)
	g := NewGame(board.PlayerA)
	for x := 0; x < 3; x++ {
		is.NoErr(g.Play(board.Column{X: x, Y: 0}))
		is.NoErr(g.Play(board.Column{X: x, Y: 3}))
	}
	is.Equal(g.Winner(), board.Empty)
	is.NoErr(g.Play(board.Column{X: 3, Y: 0}))
	is.Equal(g.Winner(), board.PlayerA)
	is.True(g.Over())
	is.True(errors.Is(g.Play(board.Column{X: 3, Y: 3}), ErrGameOver))
	is.True(errors.Is(g.StartAI(negamax.NewSolver(2)), ErrGameOver))
}

func TestUndo(t *testing.T) {
	is := is.New(t)
	g := NewGame(board.PlayerB)
	is.True(!g.Undo())
	is.NoErr(g.Play(board.Column{X: 2, Y: 3}))
	is.NoErr(g.Play(board.Column{X: 0, Y: 1}))
	is.True(g.Undo())
	is.Equal(g.OnTurn(), board.PlayerA)
	st := g.State()
	is.Equal(st.NumStones(), 1)
	is.Equal(st.Get(2, 3, 0), board.PlayerB)
	is.True(g.Undo())
	is.Equal(g.State(), board.State{})
	is.Equal(g.Turn(), 0)
}

func TestAIMoveInBackground(t *testing.T) {
	is := is.New(t)
	g := NewGame(board.PlayerA)
	is.NoErr(g.Play(board.Column{X: 0, Y: 0}))

	solver := negamax.NewSolver(4)
	is.NoErr(g.StartAI(solver))
	is.True(g.Thinking())
	is.True(errors.Is(g.StartAI(solver), ErrTaskInFlight))
	is.True(errors.Is(g.Play(board.Column{X: 1, Y: 1}), ErrTaskInFlight))
	is.True(!g.Undo())

	tableBefore := g.Table()
	deadline := time.Now().Add(time.Minute)
	for !g.Poll() {
		is.True(time.Now().Before(deadline))
		time.Sleep(time.Millisecond)
	}
	is.True(!g.Thinking())
	is.True(!g.Poll())
	is.Equal(g.OnTurn(), board.PlayerA)
	st := g.State()
	is.Equal(st.NumStones(), 2)
	is.True(g.Table() != tableBefore)
	is.True(g.Table().Len() > 0)
	is.Equal(tableBefore.Len(), 0)
}

func TestWaitAI(t *testing.T) {
	is := is.New(t)
	g := NewGame(board.PlayerB)
	_, err := g.WaitAI()
	is.True(errors.Is(err, ErrNoTask))

	is.NoErr(g.StartAI(negamax.NewSolver(1)))
	sol, err := g.WaitAI()
	is.NoErr(err)
	is.True(sol.Found)
	is.Equal(sol.Column, board.Column{X: 0, Y: 0})
	st := g.State()
	is.Equal(st.Get(0, 0, 0), board.PlayerB)
	is.Equal(g.OnTurn(), board.PlayerA)
}
