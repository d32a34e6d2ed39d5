package negamax

import (
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/scorefour/board"
)

func samplePosition() board.State {
	return fromColumns(
		board.Column{X: 1, Y: 0}, board.Column{X: 2, Y: 2},
		board.Column{X: 1, Y: 0}, board.Column{X: 0, Y: 3},
	)
}

func TestTTableInsertClassifies(t *testing.T) {
	is := is.New(t)
	tt := NewTranspositionTable()
	s := samplePosition()

	tt.insert(s, board.PlayerA, 4, -10, 10, 5)
	tt.insert(s, board.PlayerA, 5, 0, 10, -3)
	tt.insert(s, board.PlayerA, 6, 0, 10, 10)

	entries := tt.Entries(s, board.PlayerA)
	is.Equal(entries, []TableEntry{
		{Score: 5, Depth: 4, Quality: TTExact},
		{Score: -3, Depth: 5, Quality: TTUpper},
		{Score: 10, Depth: 6, Quality: TTLower},
	})
	// every symmetric image carries the same entries.
	for _, img := range s.Images() {
		is.Equal(tt.Entries(img, board.PlayerA), entries)
	}
	is.Equal(tt.Len(), 3*board.NumSymmetries)
	is.Equal(tt.Stats().Created, uint64(3))
}

func TestTTableLookupExactDepthOnly(t *testing.T) {
	is := is.New(t)
	tt := NewTranspositionTable()
	s := samplePosition()
	tt.insert(s, board.PlayerA, 4, -10, 10, 5)

	α, β := -HugeNumber, HugeNumber
	v, ok := tt.lookup(&s, board.PlayerA, 4, &α, &β)
	is.True(ok)
	is.Equal(v, 5)

	_, ok = tt.lookup(&s, board.PlayerA, 3, &α, &β)
	is.True(!ok)
	_, ok = tt.lookup(&s, board.PlayerA, 5, &α, &β)
	is.True(!ok)

	img := s.Symmetry(board.RotateCW)
	v, ok = tt.lookup(&img, board.PlayerA, 4, &α, &β)
	is.True(ok)
	is.Equal(v, 5)
	is.Equal(tt.Stats().Lookups, uint64(4))
	is.Equal(tt.Stats().Hits, uint64(2))
}

func TestTTablePerspective(t *testing.T) {
	is := is.New(t)
	tt := NewTranspositionTable()
	s := samplePosition()
	tt.insert(s, board.PlayerB, 4, -10, 10, 7)

	// stored from PlayerA's side, so under the swapped position.
	sw := s
	sw.Swap()
	is.Equal(len(tt.Entries(sw, board.PlayerA)), 1)
	is.Equal(len(tt.Entries(s, board.PlayerA)), 0)

	α, β := -HugeNumber, HugeNumber
	v, ok := tt.lookup(&s, board.PlayerB, 4, &α, &β)
	is.True(ok)
	is.Equal(v, 7)
	v, ok = tt.lookup(&sw, board.PlayerA, 4, &α, &β)
	is.True(ok)
	is.Equal(v, 7)
	_, ok = tt.lookup(&s, board.PlayerA, 4, &α, &β)
	is.True(!ok)
}

func TestTTableBoundsNarrowWindow(t *testing.T) {
	is := is.New(t)
	tt := NewTranspositionTable()
	s := samplePosition()
	tt.insert(s, board.PlayerA, 4, 0, 10, -3) // upper bound -3
	tt.insert(s, board.PlayerA, 4, -20, -10, -8) // lower bound -8

	α, β := -100, 100
	_, ok := tt.lookup(&s, board.PlayerA, 4, &α, &β)
	is.True(!ok)
	is.Equal(β, -3)
	is.Equal(α, -8)

	// a window already above the upper bound closes.
	α, β = -3, 100
	v, ok := tt.lookup(&s, board.PlayerA, 4, &α, &β)
	is.True(ok)
	is.Equal(v, -3)

	// a window below the lower bound closes on the second entry.
	α, β = -100, -8
	v, ok = tt.lookup(&s, board.PlayerA, 4, &α, &β)
	is.True(ok)
	is.Equal(v, -8)
	is.Equal(β, -8)
}

func TestTTableClean(t *testing.T) {
	is := is.New(t)
	tt := NewTranspositionTable()
	a, b, c := samplePosition(), fromColumns(board.Column{X: 3, Y: 3}), fromColumns()

	tt.table[a] = []TableEntry{
		{Score: 1, Depth: 3, Quality: TTExact},
		{Score: 2, Depth: 5, Quality: TTUpper},
		{Score: 3, Depth: 4, Quality: TTUpper},
		{Score: 4, Depth: 2, Quality: TTLower},
		{Score: 5, Depth: 5, Quality: TTExact},
	}
	tt.table[b] = []TableEntry{
		{Score: 1, Depth: 4, Quality: TTUpper},
		{Score: 2, Depth: 4, Quality: TTLower},
		{Score: 3, Depth: 3, Quality: TTUpper},
		{Score: 4, Depth: 6, Quality: TTLower},
	}
	tt.table[c] = []TableEntry{
		{Score: 9, Depth: 3, Quality: TTExact},
		{Score: 9, Depth: 3, Quality: TTExact},
	}
	tt.Clean()

	is.Equal(tt.table[a], []TableEntry{{Score: 5, Depth: 5, Quality: TTExact}})
	is.Equal(tt.table[b], []TableEntry{
		{Score: 1, Depth: 4, Quality: TTUpper},
		{Score: 4, Depth: 6, Quality: TTLower},
	})
	is.Equal(tt.table[c], []TableEntry{{Score: 9, Depth: 3, Quality: TTExact}})
	is.Equal(tt.Len(), 4)
}

func TestTTableClone(t *testing.T) {
	is := is.New(t)
	tt := NewTranspositionTable()
	s := samplePosition()
	tt.insert(s, board.PlayerA, 4, -10, 10, 5)

	c := tt.Clone()
	c.insert(s, board.PlayerA, 5, -10, 10, 6)
	is.Equal(len(tt.Entries(s, board.PlayerA)), 1)
	is.Equal(len(c.Entries(s, board.PlayerA)), 2)
	is.Equal(c.Stats().Created, uint64(2))
	is.Equal(tt.Stats().Created, uint64(1))
}

func TestTTableSymmetrize(t *testing.T) {
	is := is.New(t)
	tt := NewTranspositionTable()
	s := samplePosition()
	tt.table[s] = []TableEntry{{Score: 1, Depth: 3, Quality: TTExact}}
	tt.Symmetrize()

	for _, img := range s.Images() {
		is.True(len(tt.Entries(img, board.PlayerA)) >= 1)
	}
	is.Equal(len(tt.States()), board.NumSymmetries)
	states := tt.States()
	for i := 1; i < len(states); i++ {
		is.Equal(states[i-1].Compare(&states[i]), -1)
	}
}
