package automatic

import (
	"fmt"
	"io"

	"github.com/aybabtme/uniplot/histogram"

	"github.com/domino14/scorefour/board"
	"github.com/domino14/scorefour/stats"
)

// Report aggregates self-play results.
type Report struct {
	Games int
	WinsA int
	WinsB int
	Draws int

	Lengths  stats.Sample
	MoveSecs stats.Sample

	seen map[uint64]bool
}

func (r *Report) Add(res *GameResult) {
	if r.seen == nil {
		r.seen = make(map[uint64]bool)
	}
	r.Games++
	switch res.Winner {
	case board.PlayerA:
		r.WinsA++
	case board.PlayerB:
		r.WinsB++
	default:
		r.Draws++
	}
	r.seen[res.ID] = true
	r.Lengths.Push(float64(len(res.Moves)))
	for _, d := range res.MoveTimes {
		r.MoveSecs.Push(d.Seconds())
	}
}

// Distinct is the number of different move sequences seen.
func (r *Report) Distinct() int {
	return len(r.seen)
}

// ScoreA is player A's points per game, counting a draw as half.
func (r *Report) ScoreA() float64 {
	if r.Games == 0 {
		return 0
	}
	return (float64(r.WinsA) + float64(r.Draws)/2) / float64(r.Games)
}

func (r *Report) Write(w io.Writer) error {
	lo, hi := r.Lengths.ConfidenceInterval(95)
	_, err := fmt.Fprintf(w,
		"games: %d (distinct: %d)\nA wins: %d  B wins: %d  draws: %d  A score: %.3f\n"+
			"plies per game: %.2f (95%% CI %.2f-%.2f)\nseconds per AI move: %.4f (stdev %.4f)\n",
		r.Games, r.Distinct(), r.WinsA, r.WinsB, r.Draws, r.ScoreA(),
		r.Lengths.Mean(), lo, hi, r.MoveSecs.Mean(), r.MoveSecs.Stdev())
	if err != nil {
		return err
	}
	if r.Lengths.Len() == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(w, "game lengths:"); err != nil {
		return err
	}
	hist := histogram.Hist(10, r.Lengths.Values())
	return histogram.Fprint(w, hist, histogram.Linear(40))
}
