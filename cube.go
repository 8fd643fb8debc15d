package cubetrainer

import "strings"

// Color represents a facelet color.
type Color byte

const (
	White  Color = 0 // Up face when solved
	Yellow Color = 1 // Down face when solved
	Orange Color = 2 // Left face when solved
	Red    Color = 3 // Right face when solved
	Green  Color = 4 // Front face when solved
	Blue   Color = 5 // Back face when solved
)

// Colors lists every valid color.
var Colors = [6]Color{White, Yellow, Orange, Red, Green, Blue}

func (c Color) String() string {
	switch c {
	case White:
		return "W"
	case Yellow:
		return "Y"
	case Orange:
		return "O"
	case Red:
		return "R"
	case Green:
		return "G"
	case Blue:
		return "B"
	default:
		return "?"
	}
}

// Name returns the lowercase color name.
func (c Color) Name() string {
	switch c {
	case White:
		return "white"
	case Yellow:
		return "yellow"
	case Orange:
		return "orange"
	case Red:
		return "red"
	case Green:
		return "green"
	case Blue:
		return "blue"
	default:
		return "unknown"
	}
}

// Valid reports whether c is one of the six cube colors.
func (c Color) Valid() bool {
	return c <= Blue
}

// Face identifies one of the six faces of the cube.
type Face int

const (
	U Face = 0 // Up
	D Face = 1 // Down
	L Face = 2 // Left
	R Face = 3 // Right
	F Face = 4 // Front
	B Face = 5 // Back
)

// Faces lists every face in index order.
var Faces = [6]Face{U, D, L, R, F, B}

func (f Face) String() string {
	switch f {
	case U:
		return "U"
	case D:
		return "D"
	case L:
		return "L"
	case R:
		return "R"
	case F:
		return "F"
	case B:
		return "B"
	default:
		return "?"
	}
}

// Valid reports whether f is one of the six faces.
func (f Face) Valid() bool {
	return f >= U && f <= B
}

// Opposite returns the face directly across the cube from f.
func (f Face) Opposite() Face {
	switch f {
	case U:
		return D
	case D:
		return U
	case L:
		return R
	case R:
		return L
	case F:
		return B
	default:
		return F
	}
}

// faceFromLetter maps an uppercase face letter to its Face.
func faceFromLetter(r rune) (Face, bool) {
	switch r {
	case 'U':
		return U, true
	case 'D':
		return D, true
	case 'L':
		return L, true
	case 'R':
		return R, true
	case 'F':
		return F, true
	case 'B':
		return B, true
	}
	return 0, false
}

// solvedColor returns the color of a face when solved.
func solvedColor(f Face) Color {
	switch f {
	case U:
		return White
	case D:
		return Yellow
	case L:
		return Orange
	case R:
		return Red
	case F:
		return Green
	default:
		return Blue
	}
}

// State is a 3x3 cube as 54 facelets. Each face has 9 facelets indexed as
// seen from outside the face in the standard net:
//
//	0 1 2
//	3 4 5
//	6 7 8
//
// U is viewed with B along its top edge, D with F along its top edge and
// B from behind with U on top. The center (index 4) never moves.
//
// State is a value: assignment copies it, and nothing in this package
// mutates a State it was handed.
type State struct {
	facelets [6][9]Color
}

var solved = func() State {
	var s State
	for _, f := range Faces {
		for i := range s.facelets[f] {
			s.facelets[f][i] = solvedColor(f)
		}
	}
	return s
}()

// Solved returns the solved cube: white up, green front.
func Solved() State {
	return solved
}

// Facelet returns the color at index i (0-8) of face f.
func (s State) Facelet(f Face, i int) Color {
	return s.facelets[f][i]
}

// Face returns a copy of the nine facelets of f.
func (s State) Face(f Face) [9]Color {
	return s.facelets[f]
}

// IsSolved reports whether every face is a single color matching its center.
func (s State) IsSolved() bool {
	return s == solved
}

// ColorCounts returns how many facelets of each color the state holds.
func (s State) ColorCounts() map[Color]int {
	counts := make(map[Color]int, len(Colors))
	for _, face := range s.facelets {
		for _, c := range face {
			counts[c]++
		}
	}
	return counts
}

// String returns the cube as an unfolded net:
//
//	      U
//	L F R B
//	      D
func (s State) String() string {
	var b strings.Builder

	writeRow := func(f Face, row int) {
		for col := 0; col < 3; col++ {
			b.WriteString(s.facelets[f][row*3+col].String())
			b.WriteByte(' ')
		}
	}

	for row := 0; row < 3; row++ {
		b.WriteString("      ")
		writeRow(U, row)
		b.WriteByte('\n')
	}
	for row := 0; row < 3; row++ {
		for _, f := range []Face{L, F, R, B} {
			writeRow(f, row)
		}
		b.WriteByte('\n')
	}
	for row := 0; row < 3; row++ {
		b.WriteString("      ")
		writeRow(D, row)
		b.WriteByte('\n')
	}

	return b.String()
}
