package negamax

import (
	"math"

	"github.com/domino14/scorefour/board"
)

// thanks Wikipedia:
/*
function negamax(node, depth, α, β, color) is
    if depth = 0 or node is a terminal node then
        return color × the heuristic value of node

    childNodes := generateMoves(node)
    value := −∞
    foreach child in childNodes do
        value := max(value, −negamax(child, depth − 1, −β, −α, −color))
        α := max(α, value)
        if α ≥ β then
            break (* cut-off *)
    return value
**/

// HugeNumber stands in for infinity. It can be negated safely.
const HugeNumber = math.MaxInt32

// Below this depth the table-assisted search hands over to the plain one.
const tableMinDepth = 3

// evaluate orients the static value to player's point of view.
func evaluate(s *board.State, player board.Player) int {
	return int(player) * s.Value()
}

// terminal reports whether s should not be expanded: the search horizon
// is reached, the side that just moved has won, or the board is full.
func terminal(s *board.State, player board.Player, depth int) bool {
	return depth <= 0 || s.Win(player.Other()) || s.Full()
}

// Negamax scores s for player, who is to move, searching depth plies with
// alpha-beta pruning. The result is exact only when it falls strictly
// inside (α, β); otherwise it is a bound.
func Negamax(s board.State, player board.Player, depth int, α, β int) int {
	if terminal(&s, player, depth) {
		return evaluate(&s, player)
	}
	bestValue := -HugeNumber
	for _, child := range s.Possibilities(player) {
		value := -Negamax(child, player.Other(), depth-1, -β, -α)
		if value > bestValue {
			bestValue = value
		}
		α = max(α, bestValue)
		if α >= β {
			break // beta cut-off
		}
	}
	return bestValue
}

// NegamaxTable is Negamax with a transposition table. It returns the same
// value as Negamax for the same arguments; the table only saves work.
func NegamaxTable(s board.State, player board.Player, depth int, α, β int,
	tt *TranspositionTable) int {

	if terminal(&s, player, depth) {
		return evaluate(&s, player)
	}
	if depth < tableMinDepth {
		return Negamax(s, player, depth, α, β)
	}

	// Entries are classified against the window we were called with, not
	// the one narrowed by the lookup.
	alphaOrig, betaOrig := α, β
	if v, ok := tt.lookup(&s, player, depth, &α, &β); ok {
		return v
	}

	bestValue := -HugeNumber
	for _, child := range s.Possibilities(player) {
		value := -NegamaxTable(child, player.Other(), depth-1, -β, -α, tt)
		if value > bestValue {
			bestValue = value
		}
		α = max(α, bestValue)
		if α >= β {
			break // beta cut-off
		}
	}
	tt.insert(s, player, depth, alphaOrig, betaOrig, bestValue)
	return bestValue
}
