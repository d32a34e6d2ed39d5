package negamax

import (
	"fmt"
	"io"
	"time"

	"github.com/pbnjay/memory"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/domino14/scorefour/board"
)

const DefaultDepth = 6

// DefaultMemoryFraction is the share of system memory the table may grow
// to before the solver starts warning about it.
const DefaultMemoryFraction = 0.25

// Solution is the outcome of one top-level search.
type Solution struct {
	// State is the position after the chosen move. If Found is false no
	// move was possible and State is the input position.
	State  board.State
	Column board.Column
	Value  int
	Found  bool
	// Table is the table after the search and its clean pass. It is nil
	// when the transposition table is turned off.
	Table   *TranspositionTable
	Elapsed time.Duration
}

// Solver picks moves for the side to move by searching every child of the
// current position to a fixed depth.
type Solver struct {
	depth                   int
	transpositionTableOptim bool
	memoryFraction          float64

	logStream io.Writer
}

// NewSolver returns a solver searching depth plies with the
// transposition table turned on.
func NewSolver(depth int) *Solver {
	return &Solver{
		depth:                   depth,
		transpositionTableOptim: true,
		memoryFraction:          DefaultMemoryFraction,
	}
}

func (s *Solver) Depth() int {
	return s.depth
}

func (s *Solver) SetDepth(depth int) {
	s.depth = depth
}

func (s *Solver) SetTranspositionTableOptim(tt bool) {
	s.transpositionTableOptim = tt
}

func (s *Solver) SetMemoryFraction(f float64) {
	s.memoryFraction = f
}

// SetLogStream makes the solver write one YAML document per search to w,
// listing every root move with its value.
func (s *Solver) SetLogStream(w io.Writer) {
	s.logStream = w
}

type rootPlayLog struct {
	Column string `yaml:"column"`
	Value  int    `yaml:"value"`
	Alpha  int    `yaml:"alpha"`
}

type searchLog struct {
	Depth  int           `yaml:"depth"`
	Player string        `yaml:"player"`
	Board  string        `yaml:"board"`
	Plays  []rootPlayLog `yaml:"plays"`
	Chosen string        `yaml:"chosen,omitempty"`
	Value  int           `yaml:"value"`
}

// Solve chooses player's move in state. Ties go to the first column in
// enumeration order. tt is mutated and returned in the solution; a nil tt
// starts a fresh table.
func (s *Solver) Solve(state board.State, player board.Player, tt *TranspositionTable) Solution {
	tstart := time.Now()
	if s.transpositionTableOptim && tt == nil {
		tt = NewTranspositionTable()
	}
	if !s.transpositionTableOptim {
		tt = nil
	}
	log.Debug().Int("depth", s.depth).Str("player", player.String()).
		Str("board", state.String()).Msg("solve-config")

	α := -HugeNumber
	β := HugeNumber
	bestValue := -HugeNumber
	sol := Solution{State: state, Table: tt}
	var trace *searchLog
	if s.logStream != nil {
		trace = &searchLog{Depth: s.depth, Player: player.String(), Board: state.String()}
	}

	cols := state.Columns()
	for idx, child := range state.Possibilities(player) {
		var value int
		if tt != nil {
			value = -NegamaxTable(child, player.Other(), s.depth-1, -β, -α, tt)
		} else {
			value = -Negamax(child, player.Other(), s.depth-1, -β, -α)
		}
		log.Debug().Int("idx", idx).Stringer("column", cols[idx]).
			Int("value", value).Msg("root-play")
		if value > bestValue {
			bestValue = value
			sol.State = child
			sol.Column = cols[idx]
			sol.Found = true
		}
		α = max(α, value)
		if trace != nil {
			trace.Plays = append(trace.Plays, rootPlayLog{
				Column: cols[idx].String(), Value: value, Alpha: α})
		}
	}
	sol.Value = bestValue

	var stats TableStats
	var entriesBefore int
	if tt != nil {
		entriesBefore = tt.Len()
		tt.Clean()
		stats = tt.Stats()
		s.checkMemory(tt)
	}
	sol.Elapsed = time.Since(tstart)

	if trace != nil {
		if sol.Found {
			trace.Chosen = sol.Column.String()
		}
		trace.Value = bestValue
		s.writeLog(trace)
	}

	log.Info().
		Int("depth", s.depth).
		Str("player", player.String()).
		Bool("found", sol.Found).
		Stringer("column", sol.Column).
		Int("value", bestValue).
		Int("ttable-entries-before-clean", entriesBefore).
		Int("ttable-entries", stats.Entries).
		Uint64("ttable-created", stats.Created).
		Uint64("ttable-lookups", stats.Lookups).
		Uint64("ttable-hits", stats.Hits).
		Float64("time-elapsed-sec", sol.Elapsed.Seconds()).
		Msg("solve-returning")
	return sol
}

func (s *Solver) checkMemory(tt *TranspositionTable) {
	total := memory.TotalMemory()
	if total == 0 || s.memoryFraction <= 0 {
		return
	}
	used := tt.EstimatedBytes()
	if float64(used) > s.memoryFraction*float64(total) {
		log.Warn().Uint64("estimated-table-bytes", used).
			Uint64("total-system-memory-bytes", total).
			Float64("memory-fraction", s.memoryFraction).
			Msg("transposition-table-over-budget")
	}
}

func (s *Solver) writeLog(l *searchLog) {
	out, err := yaml.Marshal([]*searchLog{l})
	if err != nil {
		log.Err(err).Msg("marshal-search-log")
		return
	}
	if _, err := fmt.Fprint(s.logStream, string(out)); err != nil {
		log.Err(err).Msg("write-search-log")
	}
}
