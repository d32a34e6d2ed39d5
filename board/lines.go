package board

// A Line is four cell indices in a straight row through the lattice.
type Line [Dim]int

// Lines holds all 76 lines of the 4x4x4 lattice: 48 parallel to an axis,
// 24 diagonals lying in a plane, and 4 space diagonals.
var Lines = genLines()

// directions lists one of each pair of opposite step vectors: those whose
// first non-zero component is positive.
func directions() [][3]int {
	var dirs [][3]int
	for dz := -1; dz <= 1; dz++ {
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				d := [3]int{dx, dy, dz}
				for _, c := range d {
					if c < 0 {
						break
					}
					if c > 0 {
						dirs = append(dirs, d)
						break
					}
				}
			}
		}
	}
	return dirs
}

func inRange(v int) bool {
	return v >= 0 && v < Dim
}

func genLines() []Line {
	lines := make([]Line, 0, 76)
	for _, d := range directions() {
		for z := 0; z < Dim; z++ {
			for y := 0; y < Dim; y++ {
				for x := 0; x < Dim; x++ {
					ex, ey, ez := x+(Dim-1)*d[0], y+(Dim-1)*d[1], z+(Dim-1)*d[2]
					if !inRange(ex) || !inRange(ey) || !inRange(ez) {
						continue
					}
					var l Line
					for i := 0; i < Dim; i++ {
						l[i] = cellIndex(x+i*d[0], y+i*d[1], z+i*d[2])
					}
					lines = append(lines, l)
				}
			}
		}
	}
	return lines
}
