package negamax

import (
	"maps"
	"slices"
	"sync/atomic"
	"unsafe"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/domino14/scorefour/board"
)

// Quality says how a table entry's score relates to the true value.
type Quality uint8

const (
	TTExact Quality = iota + 1
	TTLower
	TTUpper
)

func (q Quality) String() string {
	switch q {
	case TTExact:
		return "exact"
	case TTLower:
		return "lower"
	case TTUpper:
		return "upper"
	}
	return "invalid"
}

// TableEntry is a score computed at a given depth.
type TableEntry struct {
	Score   int
	Depth   int
	Quality Quality
}

// dominates reports whether e makes o useless: it is at least as deep and
// either exact or of the same kind.
func (e TableEntry) dominates(o TableEntry) bool {
	return e.Depth >= o.Depth && (e.Quality == TTExact || e.Quality == o.Quality)
}

// TranspositionTable maps a position, seen from PlayerA's side, to every
// score computed for it. Bounds found at different depths are kept apart
// and only an exact depth match is ever used.
//
// A table is not safe for concurrent use. It is meant to live for one
// game and be cloned before being handed to a background search.
type TranspositionTable struct {
	table map[board.State][]TableEntry

	created atomic.Uint64
	lookups atomic.Uint64
	hits    atomic.Uint64
}

// NewTranspositionTable returns an empty table.
func NewTranspositionTable() *TranspositionTable {
	return &TranspositionTable{table: make(map[board.State][]TableEntry)}
}

// TableStats are the table's running counters.
type TableStats struct {
	States  int
	Entries int
	Created uint64
	Lookups uint64
	Hits    uint64
}

func (t *TranspositionTable) Stats() TableStats {
	return TableStats{
		States:  len(t.table),
		Entries: t.Len(),
		Created: t.created.Load(),
		Lookups: t.lookups.Load(),
		Hits:    t.hits.Load(),
	}
}

// Len is the total number of entries over all positions.
func (t *TranspositionTable) Len() int {
	return lo.SumBy(lo.Values(t.table), func(entries []TableEntry) int {
		return len(entries)
	})
}

// EstimatedBytes is a rough footprint of the table's contents.
func (t *TranspositionTable) EstimatedBytes() uint64 {
	const perState = uint64(unsafe.Sizeof(board.State{})) + 24 // key + slice header
	return uint64(len(t.table))*perState +
		uint64(t.Len())*uint64(unsafe.Sizeof(TableEntry{}))
}

// Clone returns a deep copy, counters included.
func (t *TranspositionTable) Clone() *TranspositionTable {
	c := &TranspositionTable{table: maps.Clone(t.table)}
	for k, v := range c.table {
		c.table[k] = slices.Clone(v)
	}
	c.created.Store(t.created.Load())
	c.lookups.Store(t.lookups.Load())
	c.hits.Store(t.hits.Load())
	return c
}

// Entries returns a copy of the entries stored for s as seen by player.
func (t *TranspositionTable) Entries(s board.State, player board.Player) []TableEntry {
	if player == board.PlayerB {
		s.Swap()
	}
	return slices.Clone(t.table[s])
}

// lookup consults the entries for s at exactly this depth. Exact scores
// are returned directly; bounds narrow α and β, and if the window closes
// the bound that closed it is returned.
func (t *TranspositionTable) lookup(s *board.State, player board.Player, depth int,
	α, β *int) (int, bool) {

	if player == board.PlayerB {
		cpy := *s
		cpy.Swap()
		return t.lookup(&cpy, board.PlayerA, depth, α, β)
	}
	t.lookups.Add(1)
	for _, entry := range t.table[*s] {
		if entry.Depth != depth {
			continue
		}
		switch entry.Quality {
		case TTExact:
			t.hits.Add(1)
			return entry.Score, true
		case TTUpper:
			*β = min(*β, entry.Score)
		case TTLower:
			*α = max(*α, entry.Score)
		}
		if *α >= *β {
			t.hits.Add(1)
			return entry.Score, true
		}
	}
	return 0, false
}

// insert records score for s under all of its symmetric images. α and β
// are the window the search of s started with.
func (t *TranspositionTable) insert(s board.State, player board.Player, depth int,
	α, β, score int) {

	if player == board.PlayerB {
		s.Swap()
	}
	entry := TableEntry{Score: score, Depth: depth}
	switch {
	case score <= α:
		// failed low: the true value is at most score.
		entry.Quality = TTUpper
	case score >= β:
		// failed high: the true value is at least score.
		entry.Quality = TTLower
	default:
		entry.Quality = TTExact
	}
	for _, img := range s.Images() {
		t.table[img] = append(t.table[img], entry)
	}
	t.created.Add(1)
}

// Clean drops every entry that another entry for the same position
// dominates. The table is carried across moves, so this should run once
// per move to keep it from growing without bound.
func (t *TranspositionTable) Clean() {
	before := t.Len()
	for s, entries := range t.table {
		i := 0
	outer:
		for i < len(entries) {
			for j := range entries {
				if i != j && entries[j].dominates(entries[i]) {
					entries = slices.Delete(entries, i, i+1)
					continue outer
				}
			}
			i++
		}
		t.table[s] = entries
	}
	log.Debug().Int("before", before).Int("after", t.Len()).
		Int("states", len(t.table)).Msg("transposition-table-cleaned")
}

// Symmetrize copies each position's entries to its symmetric images.
// insert already does this; it is for tables filled some other way.
func (t *TranspositionTable) Symmetrize() {
	type pending struct {
		s       board.State
		entries []TableEntry
	}
	var buffer []pending
	for s, entries := range t.table {
		for id := 1; id < board.NumSymmetries; id++ {
			buffer = append(buffer, pending{s.Symmetry(id), slices.Clone(entries)})
		}
	}
	for _, p := range buffer {
		t.table[p.s] = append(t.table[p.s], p.entries...)
	}
}

// States returns the stored positions in ascending order.
func (t *TranspositionTable) States() []board.State {
	keys := slices.Collect(maps.Keys(t.table))
	slices.SortFunc(keys, func(a, b board.State) int {
		return a.Compare(&b)
	})
	return keys
}
