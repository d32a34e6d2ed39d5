package board

// NumSymmetries is the order of the symmetry group of the square.
const NumSymmetries = 8

// Symmetry ids. Each one permutes the 16 columns and is applied
// identically to every layer.
const (
	Identity = iota
	MirrorY
	MirrorX
	RotateCCW
	RotateCW
	Rotate180
	MirrorDiagonal
	MirrorAntiDiagonal
)

// Symmetries maps, for each id, a destination column to the source column
// it is read from.
var Symmetries = genSymmetries()

func genSymmetries() [NumSymmetries][NumColumns]int {
	const m = Dim - 1
	// each transform gives the source (x, y) for destination (x, y).
	transforms := [NumSymmetries]func(x, y int) (int, int){
		Identity:           func(x, y int) (int, int) { return x, y },
		MirrorY:            func(x, y int) (int, int) { return x, m - y },
		MirrorX:            func(x, y int) (int, int) { return m - x, y },
		RotateCCW:          func(x, y int) (int, int) { return m - y, x },
		RotateCW:           func(x, y int) (int, int) { return y, m - x },
		Rotate180:          func(x, y int) (int, int) { return m - x, m - y },
		MirrorDiagonal:     func(x, y int) (int, int) { return y, x },
		MirrorAntiDiagonal: func(x, y int) (int, int) { return m - y, m - x },
	}
	var perms [NumSymmetries][NumColumns]int
	for id, f := range transforms {
		for y := 0; y < Dim; y++ {
			for x := 0; x < Dim; x++ {
				sx, sy := f(x, y)
				perms[id][Column{x, y}.index()] = Column{sx, sy}.index()
			}
		}
	}
	return perms
}

// Symmetry returns the image of s under symmetry id.
func (s *State) Symmetry(id int) State {
	var out State
	perm := &Symmetries[id]
	for z := 0; z < Dim; z++ {
		layer := z * NumColumns
		for i := 0; i < NumColumns; i++ {
			out[layer+i] = s[layer+perm[i]]
		}
	}
	return out
}

// Images returns s under all symmetries, identity first.
func (s *State) Images() [NumSymmetries]State {
	var out [NumSymmetries]State
	for id := range out {
		out[id] = s.Symmetry(id)
	}
	return out
}
