package board

import (
	"fmt"
	"strings"
)

func (p Player) symbol() byte {
	switch p {
	case PlayerA:
		return '+'
	case PlayerB:
		return '-'
	case Empty:
		return ' '
	}
	return '?'
}

// String renders the board on one line: for each x, the four columns
// along y separated by '|', each listed bottom to top.
func (s State) String() string {
	var sb strings.Builder
	for x := 0; x < Dim; x++ {
		if x > 0 {
			sb.WriteString("  ")
		}
		fmt.Fprintf(&sb, "%d(", x+1)
		for y := 0; y < Dim; y++ {
			if y > 0 {
				sb.WriteByte('|')
			}
			for z := 0; z < Dim; z++ {
				sb.WriteByte(s.Get(x, y, z).symbol())
			}
		}
		sb.WriteByte(')')
	}
	return sb.String()
}

// ToDisplayText draws the four layers side by side, bottom layer first.
func (s State) ToDisplayText() string {
	var sb strings.Builder
	sb.WriteString("\n")
	for z := 0; z < Dim; z++ {
		fmt.Fprintf(&sb, "  z=%d   ", z)
	}
	sb.WriteString("\n")
	for y := 0; y < Dim; y++ {
		for z := 0; z < Dim; z++ {
			sb.WriteString(" |")
			for x := 0; x < Dim; x++ {
				sb.WriteByte(s.Get(x, y, z).symbol())
			}
			sb.WriteString("|  ")
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func (c Column) String() string {
	return fmt.Sprintf("%d%d", c.X+1, c.Y+1)
}
