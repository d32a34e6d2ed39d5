package board

import (
	"github.com/cespare/xxhash"
)

// Dim is the size of the lattice along each axis.
const Dim = 4

// NumCells is the number of cells in the lattice.
const NumCells = Dim * Dim * Dim

// NumColumns is the number of columns a stone can be dropped into.
const NumColumns = Dim * Dim

// Player is the content of a cell. The search works in a fixed
// convention: PlayerA is "me", PlayerB is the opponent, and Swap
// exchanges the two labels.
type Player int8

const (
	Empty   Player = 0
	PlayerA Player = 1
	PlayerB Player = -1
)

// Other returns the opposing side.
func (p Player) Other() Player {
	return -p
}

func (p Player) String() string {
	switch p {
	case PlayerA:
		return "A"
	case PlayerB:
		return "B"
	}
	return "empty"
}

// A Column is a horizontal (x, y) coordinate. Stones fall along z.
type Column struct {
	X, Y int
}

func (c Column) index() int {
	return c.X + Dim*c.Y
}

// State is a snapshot of the 64-cell lattice, indexed by x + 4*y + 16*z.
// It is a value type; copying a State copies the board.
type State [NumCells]Player

func cellIndex(x, y, z int) int {
	return x + Dim*y + Dim*Dim*z
}

// Get returns the content of cell (x, y, z). Coordinates are expected to
// be in range.
func (s *State) Get(x, y, z int) Player {
	return s[cellIndex(x, y, z)]
}

// Add drops a stone for player into column (x, y). It returns false and
// leaves the state alone if the column is full.
func (s *State) Add(x, y int, player Player) bool {
	for z := 0; z < Dim; z++ {
		idx := cellIndex(x, y, z)
		if s[idx] == Empty {
			s[idx] = player
			return true
		}
	}
	return false
}

// Height returns the number of stones in column (x, y).
func (s *State) Height(x, y int) int {
	for z := 0; z < Dim; z++ {
		if s[cellIndex(x, y, z)] == Empty {
			return z
		}
	}
	return Dim
}

// Full returns whether every column is full.
func (s *State) Full() bool {
	for c := 0; c < NumColumns; c++ {
		if s[c+Dim*Dim*(Dim-1)] == Empty {
			return false
		}
	}
	return true
}

// Columns returns the columns that can still accept a stone, x outer and
// y inner. This order is the tie-break order of the search.
func (s *State) Columns() []Column {
	cols := make([]Column, 0, NumColumns)
	for x := 0; x < Dim; x++ {
		for y := 0; y < Dim; y++ {
			if s.Get(x, y, Dim-1) == Empty {
				cols = append(cols, Column{x, y})
			}
		}
	}
	return cols
}

// Possibilities returns one child per non-full column with player's stone
// dropped in, in the same order as Columns.
func (s *State) Possibilities(player Player) []State {
	cols := s.Columns()
	children := make([]State, len(cols))
	for i, c := range cols {
		children[i] = *s
		children[i].Add(c.X, c.Y, player)
	}
	return children
}

// Win returns whether player owns all four cells of some line.
func (s *State) Win(player Player) bool {
	for _, line := range Lines {
		if s[line[0]] == player && s[line[1]] == player &&
			s[line[2]] == player && s[line[3]] == player {
			return true
		}
	}
	return false
}

// lineWeights[n] is the credit for n stones of a single side on an
// otherwise empty line. Each step is worth more than every line holding
// one stone fewer put together.
var lineWeights = [Dim + 1]int{0, 1, 76, 76 * 76, 76 * 76 * 76}

// Value is the static evaluation from PlayerA's point of view. Lines held
// by both sides count for nothing.
func (s *State) Value() int {
	v := 0
	for _, line := range Lines {
		me, op := 0, 0
		for _, idx := range line {
			switch s[idx] {
			case PlayerA:
				me++
			case PlayerB:
				op++
			}
		}
		if op == 0 {
			v += lineWeights[me]
		} else if me == 0 {
			v -= lineWeights[op]
		}
	}
	return v
}

// Swap exchanges the two sides in place.
func (s *State) Swap() {
	for i := range s {
		s[i] = -s[i]
	}
}

// Compare orders states lexicographically over their cells. It returns
// -1, 0 or +1.
func (s *State) Compare(o *State) int {
	for i := range s {
		if s[i] < o[i] {
			return -1
		} else if s[i] > o[i] {
			return 1
		}
	}
	return 0
}

// Hash returns a 64-bit fingerprint of the board, for logging and
// deduplication. It is not used as a table key.
func (s *State) Hash() uint64 {
	var buf [NumCells]byte
	for i, p := range s {
		buf[i] = byte(p)
	}
	return xxhash.Sum64(buf[:])
}

// NumStones returns how many stones have been played.
func (s *State) NumStones() int {
	n := 0
	for _, p := range s {
		if p != Empty {
			n++
		}
	}
	return n
}
