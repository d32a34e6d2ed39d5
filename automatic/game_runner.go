// Package automatic plays AI-vs-AI games without any front end, for
// benchmarking search settings against each other.
package automatic

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/cespare/xxhash"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
	"lukechampine.com/frand"

	"github.com/domino14/scorefour/board"
	"github.com/domino14/scorefour/config"
	"github.com/domino14/scorefour/game"
	"github.com/domino14/scorefour/negamax"
)

// GameResult describes one finished (or abandoned) self-play game.
type GameResult struct {
	// ID identifies the move sequence; equal sequences share an ID.
	ID        uint64
	Winner    board.Player
	Moves     []board.Column
	Final     board.State
	MoveTimes []time.Duration
}

func (r *GameResult) Transcript() string {
	return strings.Join(lo.Map(r.Moves, func(c board.Column, _ int) string {
		return c.String()
	}), " ")
}

// GameRunner plays self-play games. PlayerA always moves first.
type GameRunner struct {
	depths         [2]int
	randomPlies    int
	threads        int
	memoryFraction float64

	logStream io.Writer
	logMu     sync.Mutex

	store *ResultStore
}

// NewGameRunner reads its settings from cfg. logStream may be nil.
func NewGameRunner(cfg *config.Config, logStream io.Writer) *GameRunner {
	return &GameRunner{
		depths: [2]int{
			cfg.DepthFor(config.ConfigSelfplayDepthA),
			cfg.DepthFor(config.ConfigSelfplayDepthB),
		},
		randomPlies:    cfg.GetInt(config.ConfigSelfplayRandomPlies),
		threads:        max(1, cfg.GetInt(config.ConfigSelfplayThreads)),
		memoryFraction: cfg.GetFloat64(config.ConfigTableMemoryFraction),
		logStream:      logStream,
	}
}

// SetResultStore makes Run save every finished game to store.
func (r *GameRunner) SetResultStore(store *ResultStore) {
	r.store = store
}

func playerIndex(p board.Player) int {
	if p == board.PlayerA {
		return 0
	}
	return 1
}

// lockedWriter serializes writes from concurrent games.
type lockedWriter struct {
	mu *sync.Mutex
	w  io.Writer
}

func (l lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}

func (r *GameRunner) newSolvers() [2]*negamax.Solver {
	var solvers [2]*negamax.Solver
	for i, d := range r.depths {
		solvers[i] = negamax.NewSolver(d)
		solvers[i].SetMemoryFraction(r.memoryFraction)
		if r.logStream != nil {
			solvers[i].SetLogStream(lockedWriter{&r.logMu, r.logStream})
		}
	}
	return solvers
}

// PlayGame plays one game to the end. The first randomPlies moves are
// random; the rest come from the solvers. ctx is checked between moves.
func (r *GameRunner) PlayGame(ctx context.Context) (*GameResult, error) {
	g := game.NewGame(board.PlayerA)
	solvers := r.newSolvers()
	res := &GameResult{}

	for !g.Over() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if g.Turn() < r.randomPlies {
			st := g.State()
			cols := st.Columns()
			col := cols[frand.Intn(len(cols))]
			if err := g.Play(col); err != nil {
				return nil, err
			}
			res.Moves = append(res.Moves, col)
			continue
		}
		if err := g.StartAI(solvers[playerIndex(g.OnTurn())]); err != nil {
			return nil, err
		}
		sol, err := g.WaitAI()
		if err != nil {
			return nil, err
		}
		if !sol.Found {
			return nil, fmt.Errorf("no move found at turn %d", g.Turn())
		}
		res.Moves = append(res.Moves, sol.Column)
		res.MoveTimes = append(res.MoveTimes, sol.Elapsed)
	}
	res.Winner = g.Winner()
	res.Final = g.State()
	res.ID = xxhash.Sum64String(res.Transcript())
	log.Info().Uint64("game-id", res.ID).Str("winner", res.Winner.String()).
		Int("plies", len(res.Moves)).Str("transcript", res.Transcript()).
		Msg("game-over")
	return res, nil
}

// Run plays n games, up to threads of them at once, and summarizes them.
func (r *GameRunner) Run(ctx context.Context, n int) (*Report, error) {
	results := make([]*GameResult, n)
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(r.threads)
	for i := 0; i < n; i++ {
		eg.Go(func() error {
			res, err := r.PlayGame(ctx)
			if err != nil {
				return err
			}
			results[i] = res
			if r.store != nil {
				return r.store.Save(ctx, res, r.depths)
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	report := &Report{}
	for _, res := range results {
		report.Add(res)
	}
	return report, nil
}
