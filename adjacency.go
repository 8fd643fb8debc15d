package cubetrainer

// side names one edge of a face as seen from outside that face.
type side int

const (
	sideTop side = iota
	sideRight
	sideBottom
	sideLeft
)

// sideStrips gives the three facelets along each side of a face, listed in
// the face's own clockwise order.
var sideStrips = [4][3]int{
	sideTop:    {0, 1, 2},
	sideRight:  {2, 5, 8},
	sideBottom: {8, 7, 6},
	sideLeft:   {6, 3, 0},
}

// border is a neighbouring face and the side of it that touches the turned face.
type border struct {
	face Face
	side side
}

// neighbors lists, for every face, the four faces around it in clockwise
// order starting from its top edge. This table is the only description of
// cube geometry; the turn permutations are derived from it.
var neighbors = [6][4]border{
	U: {{B, sideTop}, {R, sideTop}, {F, sideTop}, {L, sideTop}},
	D: {{F, sideBottom}, {R, sideBottom}, {B, sideBottom}, {L, sideBottom}},
	L: {{U, sideLeft}, {F, sideLeft}, {D, sideLeft}, {B, sideRight}},
	R: {{U, sideRight}, {B, sideLeft}, {D, sideRight}, {F, sideRight}},
	F: {{U, sideBottom}, {R, sideLeft}, {D, sideTop}, {L, sideRight}},
	B: {{U, sideTop}, {L, sideLeft}, {D, sideBottom}, {R, sideRight}},
}

// faceletRef addresses one facelet of the 54.
type faceletRef struct {
	face  Face
	index int
}

// ring returns the 12 facelets bordering f: four strips of three, strips in
// clockwise order around f. Reading each strip in its owner's clockwise
// order runs every strip the same way around f, so a quarter turn moves
// position k of one strip onto position k of the next.
func ring(f Face) [12]faceletRef {
	var r [12]faceletRef
	for i, n := range neighbors[f] {
		for j, idx := range sideStrips[n.side] {
			r[i*3+j] = faceletRef{face: n.face, index: idx}
		}
	}
	return r
}

// permutation maps every destination facelet to the facelet it takes its
// color from: after the move, dst[face][i] = src[p[face][i]].
type permutation [6][9]faceletRef

func identity() permutation {
	var p permutation
	for _, f := range Faces {
		for i := 0; i < 9; i++ {
			p[f][i] = faceletRef{face: f, index: i}
		}
	}
	return p
}

// clockwiseSource maps a clockwise face rotation: output[i] = input[clockwiseSource[i]].
var clockwiseSource = [9]int{6, 3, 0, 7, 4, 1, 8, 5, 2}

// counterClockwiseSource is the inverse of clockwiseSource.
var counterClockwiseSource = [9]int{2, 5, 8, 1, 4, 7, 0, 3, 6}

// quarterTurn derives the permutation of a clockwise quarter turn of f.
func quarterTurn(f Face) permutation {
	p := identity()
	for i, src := range clockwiseSource {
		p[f][i] = faceletRef{face: f, index: src}
	}

	r := ring(f)
	for i, src := range r {
		dst := r[(i+3)%len(r)]
		p[dst.face][dst.index] = src
	}
	return p
}

// inverse returns the permutation that undoes p.
func (p permutation) inverse() permutation {
	var q permutation
	for _, f := range Faces {
		for i, src := range p[f] {
			q[src.face][src.index] = faceletRef{face: f, index: i}
		}
	}
	return q
}

// apply returns a new state with p applied to s.
func (p permutation) apply(s State) State {
	var out State
	for _, f := range Faces {
		for i, src := range p[f] {
			out.facelets[f][i] = s.facelets[src.face][src.index]
		}
	}
	return out
}

// moved returns how many facelets p relocates.
func (p permutation) moved() int {
	n := 0
	for _, f := range Faces {
		for i, src := range p[f] {
			if src.face != f || src.index != i {
				n++
			}
		}
	}
	return n
}

var (
	clockwiseTurns        [6]permutation
	counterClockwiseTurns [6]permutation
)

func init() {
	for _, f := range Faces {
		clockwiseTurns[f] = quarterTurn(f)
		counterClockwiseTurns[f] = clockwiseTurns[f].inverse()
	}
}
