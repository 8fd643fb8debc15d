package cubetrainer

import "fmt"

// RotateFaceClockwise rotates the nine facelets of a single face 90 degrees
// clockwise. Index 4 is fixed.
func RotateFaceClockwise(face [9]Color) [9]Color {
	var out [9]Color
	for i, src := range clockwiseSource {
		out[i] = face[src]
	}
	return out
}

// RotateFaceCounterClockwise rotates the nine facelets of a single face 90
// degrees counter-clockwise.
func RotateFaceCounterClockwise(face [9]Color) [9]Color {
	var out [9]Color
	for i, src := range counterClockwiseSource {
		out[i] = face[src]
	}
	return out
}

// ApplyMove returns the state reached by turning one face of s. The argument
// is not modified. A half turn is two clockwise quarter turns.
func ApplyMove(s State, m Move) (State, error) {
	if !m.Valid() {
		return s, fmt.Errorf("%w: %s", ErrInvalidMove, m.debug())
	}

	switch m.Turn {
	case Half:
		quarter := Move{Face: m.Face, Turn: CW}
		once, err := ApplyMove(s, quarter)
		if err != nil {
			return s, err
		}
		return ApplyMove(once, quarter)
	case CCW:
		return counterClockwiseTurns[m.Face].apply(s), nil
	default:
		return clockwiseTurns[m.Face].apply(s), nil
	}
}

// ApplyMoves folds moves over s in order.
func ApplyMoves(s State, moves []Move) (State, error) {
	for i, m := range moves {
		next, err := ApplyMove(s, m)
		if err != nil {
			return s, fmt.Errorf("move %d: %w", i+1, err)
		}
		s = next
	}
	return s, nil
}

// Scramble returns the state from which applying alg solves the cube.
func Scramble(alg []Move) (State, error) {
	return ApplyMoves(Solved(), InverseAlgorithm(alg))
}
